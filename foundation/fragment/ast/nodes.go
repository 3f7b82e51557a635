// File: nodes.go
// Title: Fragment Syntax Tree Nodes
// Description: Defines the closed set of syntax tree variants produced by the
//              parser. Every composite node exclusively owns its children;
//              trees are acyclic and never mutated after construction.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-05
// Modified: 2026-10-09
//
// Change History:
// - 2026-10-05 v0.1.0: Initial node definitions
// - 2026-10-09 v0.1.0: Source positions on nodes

package ast

import (
	"github.com/msto63/fragment/foundation/fragment/token"
)

// Node is implemented only by the variants in this file
type Node interface {
	// String returns the multi-line Render form of the node
	String() string

	// Accept dispatches to the visitor method for the node's variant
	Accept(visitor Visitor) interface{}

	// Position returns the position of the node's first token
	Position() token.Position

	node()
}

// Expr is a node that can appear inside an expression
type Expr interface {
	Node
	exprNode()
}

// NumberLiteral is a numeric constant
type NumberLiteral struct {
	Value float64
	Pos   token.Position
}

// VariableReference names a parameter or global
type VariableReference struct {
	Name string
	Pos  token.Position
}

// FunctionCall applies Callee to Args in order
type FunctionCall struct {
	Callee string
	Args   []Expr
	Pos    token.Position
}

// BinaryOperation combines two operands with an infix operator
type BinaryOperation struct {
	Op    token.Operator
	Left  Expr
	Right Expr
	Pos   token.Position
}

// FunctionPrototype is a function's name and parameter list. Extern
// declarations are bare prototypes.
type FunctionPrototype struct {
	Name   string
	Params []string
	Pos    token.Position
}

// FunctionDefinition binds a prototype to a body expression. Top-level
// expressions are wrapped in a definition with an anonymous prototype.
type FunctionDefinition struct {
	Prototype *FunctionPrototype
	Body      Expr
	Pos       token.Position
}

// IsAnonymous reports whether the prototype has no name
func (p *FunctionPrototype) IsAnonymous() bool { return p.Name == "" }

// IsAnonymous reports whether the definition wraps a top-level expression
func (d *FunctionDefinition) IsAnonymous() bool {
	return d.Prototype == nil || d.Prototype.IsAnonymous()
}

func (n *NumberLiteral) Position() token.Position      { return n.Pos }
func (n *VariableReference) Position() token.Position  { return n.Pos }
func (n *FunctionCall) Position() token.Position       { return n.Pos }
func (n *BinaryOperation) Position() token.Position    { return n.Pos }
func (n *FunctionPrototype) Position() token.Position  { return n.Pos }
func (n *FunctionDefinition) Position() token.Position { return n.Pos }

func (n *NumberLiteral) String() string      { return Render(n) }
func (n *VariableReference) String() string  { return Render(n) }
func (n *FunctionCall) String() string       { return Render(n) }
func (n *BinaryOperation) String() string    { return Render(n) }
func (n *FunctionPrototype) String() string  { return Render(n) }
func (n *FunctionDefinition) String() string { return Render(n) }

func (*NumberLiteral) node()      {}
func (*VariableReference) node()  {}
func (*FunctionCall) node()       {}
func (*BinaryOperation) node()    {}
func (*FunctionPrototype) node()  {}
func (*FunctionDefinition) node() {}

func (*NumberLiteral) exprNode()     {}
func (*VariableReference) exprNode() {}
func (*FunctionCall) exprNode()      {}
func (*BinaryOperation) exprNode()   {}

// KindOf returns the variant name of n
func KindOf(n Node) string {
	switch n.(type) {
	case *NumberLiteral:
		return "NumberLiteral"
	case *VariableReference:
		return "VariableReference"
	case *FunctionCall:
		return "FunctionCall"
	case *BinaryOperation:
		return "BinaryOperation"
	case *FunctionPrototype:
		return "FunctionPrototype"
	case *FunctionDefinition:
		return "FunctionDefinition"
	default:
		return "Invalid"
	}
}
