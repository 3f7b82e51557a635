// File: token.go
// Title: Fragment Lexical Tokens
// Description: Defines the token value type produced by the lexer and
//              consumed by the parser. Tokens are immutable values; equality
//              is structural over kind and payload.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-03
// Modified: 2026-10-05
//
// Change History:
// - 2026-10-03 v0.1.0: Initial token definitions
// - 2026-10-05 v0.1.0: Source positions on tokens

package token

import (
	"fmt"
	"strconv"
)

// Kind identifies the variant of a token
type Kind uint8

const (
	// KindBOF is the sentinel the parser holds before the first token is pulled
	KindBOF Kind = iota
	// KindEOF terminates a source unit; no token follows it
	KindEOF
	KindDef
	KindExtern
	KindIdentifier
	KindNumber
	KindOperator
	KindLeftParen
	KindRightParen
	KindSemicolon
	KindComma
	// KindUnknown carries a byte the lexer could not classify
	KindUnknown
)

var kindNames = [...]string{
	KindBOF:        "BOF",
	KindEOF:        "EOF",
	KindDef:        "DEF",
	KindExtern:     "EXTERN",
	KindIdentifier: "IDENT",
	KindNumber:     "NUMBER",
	KindOperator:   "OP",
	KindLeftParen:  "LPAREN",
	KindRightParen: "RPAREN",
	KindSemicolon:  "SEMICOLON",
	KindComma:      "COMMA",
	KindUnknown:    "UNKNOWN",
}

// String returns a string representation of the token kind
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Position is the 0-based line and column of a token's first byte
type Position struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// String returns "line:column"
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Token is one lexical unit. Only the payload field matching Kind is set.
type Token struct {
	Kind   Kind
	Name   string   // KindIdentifier
	Number float64  // KindNumber
	Op     Operator // KindOperator
	Char   byte     // KindUnknown
	Pos    Position
}

// BOF returns the beginning-of-stream sentinel
func BOF() Token { return Token{Kind: KindBOF} }

// EOF returns the end-of-input token
func EOF() Token { return Token{Kind: KindEOF} }

// Def returns the def keyword token
func Def() Token { return Token{Kind: KindDef} }

// Extern returns the extern keyword token
func Extern() Token { return Token{Kind: KindExtern} }

// Identifier returns an identifier token holding name
func Identifier(name string) Token { return Token{Kind: KindIdentifier, Name: name} }

// Number returns a numeric literal token
func Number(v float64) Token { return Token{Kind: KindNumber, Number: v} }

// BinaryOp returns a binary operator token
func BinaryOp(op Operator) Token { return Token{Kind: KindOperator, Op: op} }

// LeftParen returns a "(" token
func LeftParen() Token { return Token{Kind: KindLeftParen} }

// RightParen returns a ")" token
func RightParen() Token { return Token{Kind: KindRightParen} }

// Semicolon returns a ";" token
func Semicolon() Token { return Token{Kind: KindSemicolon} }

// Comma returns a "," token
func Comma() Token { return Token{Kind: KindComma} }

// Unknown returns an unrecognized-character token
func Unknown(ch byte) Token { return Token{Kind: KindUnknown, Char: ch} }

// At returns a copy of t positioned at pos
func (t Token) At(pos Position) Token {
	t.Pos = pos
	return t
}

// Is reports whether t has kind k
func (t Token) Is(k Kind) bool {
	return t.Kind == k
}

// Equal reports structural equality of kind and payload, ignoring position
func (t Token) Equal(other Token) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KindIdentifier:
		return t.Name == other.Name
	case KindNumber:
		return t.Number == other.Number
	case KindOperator:
		return t.Op == other.Op
	case KindUnknown:
		return t.Char == other.Char
	default:
		return true
	}
}

// String returns a compact debug form such as IDENT(foo) or OP(+)
func (t Token) String() string {
	switch t.Kind {
	case KindIdentifier:
		return "IDENT(" + t.Name + ")"
	case KindNumber:
		return "NUMBER(" + strconv.FormatFloat(t.Number, 'g', -1, 64) + ")"
	case KindOperator:
		return "OP(" + t.Op.String() + ")"
	case KindUnknown:
		return fmt.Sprintf("UNKNOWN(%q)", t.Char)
	default:
		return t.Kind.String()
	}
}

// Text returns the source spelling of the token, or its debug form for
// tokens without one
func (t Token) Text() string {
	switch t.Kind {
	case KindDef:
		return "def"
	case KindExtern:
		return "extern"
	case KindIdentifier:
		return t.Name
	case KindNumber:
		return strconv.FormatFloat(t.Number, 'g', -1, 64)
	case KindOperator:
		return t.Op.String()
	case KindLeftParen:
		return "("
	case KindRightParen:
		return ")"
	case KindSemicolon:
		return ";"
	case KindComma:
		return ","
	case KindUnknown:
		return string(t.Char)
	default:
		return t.Kind.String()
	}
}

// Keyword resolves an identifier spelling to a keyword token
func Keyword(word string) (Token, bool) {
	switch word {
	case "def":
		return Def(), true
	case "extern":
		return Extern(), true
	default:
		return Token{}, false
	}
}
