// File: doc.go
// Title: Fragment Token Package Documentation
// Description: Token values, binary operators and precedence tables shared
//              by the lexer and parser.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-03
// Modified: 2026-10-08
//
// Change History:
// - 2026-10-03 v0.1.0: Initial package
// - 2026-10-08 v0.1.0: Configurable division precedence

/*
Package token defines the lexical vocabulary of the Fragment language.

A Token is an immutable value: a Kind plus the payload that kind carries
(identifier name, numeric value, operator or raw byte) and the Position of
its first byte. Equal compares kind and payload only.

Two precedence tables are provided as PrecedenceFunc values:

	<  >   10
	+  -   20
	*      40
	/      40 in PrecedenceOf, no entry in ClassicPrecedenceOf

Any token without an entry maps to NoPrecedence (-1). The parser is handed
one of the tables at construction and never mutates it.
*/
package token
