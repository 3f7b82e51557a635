// File: precedence.go
// Title: Operator Precedence Tables
// Description: Pure lookup from a token to its binary binding strength.
//              Two fixed tables exist; they differ only in whether division
//              has an entry.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-03
// Modified: 2026-10-08
//
// Change History:
// - 2026-10-03 v0.1.0: Initial precedence table
// - 2026-10-08 v0.1.0: Classic table without division

package token

// Precedence is the binding strength of a binary operator
type Precedence int

// NoPrecedence marks a token that cannot start or continue a binary expression
const NoPrecedence Precedence = -1

// Precedence tiers. Operators sharing a tier associate left.
const (
	PrecedenceComparison     Precedence = 10
	PrecedenceAdditive       Precedence = 20
	PrecedenceMultiplicative Precedence = 40
)

// Increment returns p+1, the threshold for right-hand recursion
func (p Precedence) Increment() Precedence {
	return p + 1
}

// PrecedenceFunc maps a token to its precedence
type PrecedenceFunc func(Token) Precedence

// PrecedenceOf is the default table: "/" shares the multiplicative tier.
func PrecedenceOf(t Token) Precedence {
	if t.Kind == KindOperator && t.Op == OpDiv {
		return PrecedenceMultiplicative
	}
	return ClassicPrecedenceOf(t)
}

// ClassicPrecedenceOf has no entry for "/", leaving division lexically
// valid but unusable as an infix operator.
func ClassicPrecedenceOf(t Token) Precedence {
	if t.Kind != KindOperator {
		return NoPrecedence
	}
	switch t.Op {
	case OpLess, OpGreater:
		return PrecedenceComparison
	case OpAdd, OpSub:
		return PrecedenceAdditive
	case OpMul:
		return PrecedenceMultiplicative
	default:
		return NoPrecedence
	}
}
