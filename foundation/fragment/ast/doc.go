// File: doc.go
// Title: Fragment AST Package Documentation
// Description: Syntax tree variants, rendering, traversal and encoding.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-05
// Modified: 2026-10-11
//
// Change History:
// - 2026-10-05 v0.1.0: Initial package
// - 2026-10-11 v0.1.0: Encoding and summaries

/*
Package ast defines the syntax tree produced by the Fragment parser.

Node is a closed sum type: only the six variants in this package implement
it, and consumers switch over them exhaustively.

  - NumberLiteral, VariableReference, FunctionCall and BinaryOperation are
    expressions (Expr)
  - FunctionPrototype is a name and parameter list; an extern declaration
    is a bare prototype
  - FunctionDefinition pairs a prototype with a body; a top-level
    expression becomes a definition with an anonymous prototype

Render produces the multi-line debug form used by String. Encode produces
a Tree for YAML or JSON output. Walk and Inspect traverse depth first.
*/
package ast
