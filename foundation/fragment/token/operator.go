// File: operator.go
// Title: Binary Operators
// Description: The closed set of binary operators recognized by the lexer.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-03
// Modified: 2026-10-03
//
// Change History:
// - 2026-10-03 v0.1.0: Initial operator set

package token

// Operator is a binary operator, backed by its source byte
type Operator byte

const (
	OpAdd     Operator = '+'
	OpSub     Operator = '-'
	OpMul     Operator = '*'
	OpDiv     Operator = '/'
	OpLess    Operator = '<'
	OpGreater Operator = '>'
)

// ParseOperator maps a source byte to its operator
func ParseOperator(ch byte) (Operator, bool) {
	switch op := Operator(ch); op {
	case OpAdd, OpSub, OpMul, OpDiv, OpLess, OpGreater:
		return op, true
	default:
		return 0, false
	}
}

// String returns the operator's source spelling
func (o Operator) String() string {
	if _, ok := ParseOperator(byte(o)); !ok {
		return "?"
	}
	return string(rune(o))
}

// MarshalText encodes the operator as its spelling for YAML and JSON trees
func (o Operator) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}
