// File: errors.go
// Title: Parser Error Construction
// Description: Builds structured parse errors carrying the offending token,
//              source name and line.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-05
// Modified: 2026-10-05
//
// Change History:
// - 2026-10-05 v0.1.0: Initial implementation

package parser

import (
	mdwerror "github.com/msto63/fragment/foundation/core/error"
)

func (p *Parser) fail(code mdwerror.Code, op, format string, args ...interface{}) *mdwerror.Error {
	return mdwerror.Newf(format, args...).
		WithCode(code).
		WithOperation("parser."+op).
		WithLocation(p.src.SourceName(), p.current.Pos.Line).
		WithDetail("token", p.current.String()).
		WithDetail("column", p.current.Pos.Column)
}

func (p *Parser) unexpected(expected string) error {
	return p.fail(mdwerror.CodeUnexpectedToken, "parse",
		"unexpected token %s, expected %s", p.current, expected).
		WithDetail("expected", expected)
}

func (p *Parser) functionNameNotFound() error {
	return p.fail(mdwerror.CodeFunctionNameNotFound, "parsePrototype",
		"expected function name, found %s", p.current)
}

func (p *Parser) invalidOperator() error {
	return p.fail(mdwerror.CodeInvalidOperator, "parseBinaryRHS",
		"token %s has a precedence but is not a binary operator", p.current)
}

// Reported at the lexer's current line
func (p *Parser) expectedNumber() error {
	return p.fail(mdwerror.CodeExpectedNumber, "parseNumber",
		"expected number, found %s", p.current).
		WithLocation(p.src.SourceName(), p.src.Line())
}
