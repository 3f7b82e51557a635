// File: doc.go
// Title: Fragment Parser Package Documentation
// Description: Recursive descent parser with precedence climbing for the
//              Fragment language.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-05
// Modified: 2026-10-11
//
// Change History:
// - 2026-10-05 v0.1.0: Initial parser
// - 2026-10-11 v0.1.0: Interactive use

/*
Package parser builds ast nodes from a token.Source.

Grammar:

	unit       := (definition | extern | expression | ";")* EOF
	definition := "def" prototype expression
	extern     := "extern" prototype
	prototype  := identifier "(" identifier* ")"
	expression := primary (operator primary)*
	primary    := number | identifier | call | "(" expression ")"
	call       := identifier "(" (expression ("," expression)*)? ")"

Binary operators are resolved by precedence climbing against the table
passed in Options.Precedence. Operators of equal precedence associate left.

The parser holds exactly one lookahead token and never backtracks. An
error aborts the construct being parsed; there is no resynchronisation.
Interactive callers recover with Reset.

Nesting depth is bounded only by the input. Each level of parentheses,
call arguments or right-leaning operators costs a few stack frames.
*/
package parser
