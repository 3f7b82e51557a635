// File: visitor.go
// Title: Syntax Tree Visitor
// Description: Visitor dispatch over the node variants plus depth-first
//              traversal helpers.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-05
// Modified: 2026-10-09
//
// Change History:
// - 2026-10-05 v0.1.0: Initial visitor
// - 2026-10-09 v0.1.0: Walk and Inspect

package ast

// Visitor has one method per node variant
type Visitor interface {
	VisitNumberLiteral(n *NumberLiteral) interface{}
	VisitVariableReference(n *VariableReference) interface{}
	VisitFunctionCall(n *FunctionCall) interface{}
	VisitBinaryOperation(n *BinaryOperation) interface{}
	VisitFunctionPrototype(n *FunctionPrototype) interface{}
	VisitFunctionDefinition(n *FunctionDefinition) interface{}
}

// BaseVisitor implements every method as a no-op. Embed it in visitors
// that only care about some variants.
type BaseVisitor struct{}

func (BaseVisitor) VisitNumberLiteral(*NumberLiteral) interface{}           { return nil }
func (BaseVisitor) VisitVariableReference(*VariableReference) interface{}   { return nil }
func (BaseVisitor) VisitFunctionCall(*FunctionCall) interface{}             { return nil }
func (BaseVisitor) VisitBinaryOperation(*BinaryOperation) interface{}       { return nil }
func (BaseVisitor) VisitFunctionPrototype(*FunctionPrototype) interface{}   { return nil }
func (BaseVisitor) VisitFunctionDefinition(*FunctionDefinition) interface{} { return nil }

func (n *NumberLiteral) Accept(v Visitor) interface{}      { return v.VisitNumberLiteral(n) }
func (n *VariableReference) Accept(v Visitor) interface{}  { return v.VisitVariableReference(n) }
func (n *FunctionCall) Accept(v Visitor) interface{}       { return v.VisitFunctionCall(n) }
func (n *BinaryOperation) Accept(v Visitor) interface{}    { return v.VisitBinaryOperation(n) }
func (n *FunctionPrototype) Accept(v Visitor) interface{}  { return v.VisitFunctionPrototype(n) }
func (n *FunctionDefinition) Accept(v Visitor) interface{} { return v.VisitFunctionDefinition(n) }

// Children returns the direct children of n in source order
func Children(n Node) []Node {
	switch n := n.(type) {
	case *FunctionCall:
		children := make([]Node, 0, len(n.Args))
		for _, arg := range n.Args {
			children = append(children, arg)
		}
		return children
	case *BinaryOperation:
		return []Node{n.Left, n.Right}
	case *FunctionDefinition:
		if n.Prototype == nil {
			return []Node{n.Body}
		}
		return []Node{n.Prototype, n.Body}
	default:
		return nil
	}
}

// Walk visits n and then its children, depth first in source order
func Walk(v Visitor, n Node) {
	if n == nil {
		return
	}
	n.Accept(v)
	for _, c := range Children(n) {
		Walk(v, c)
	}
}

// Inspect calls f for n and its descendants, depth first. Children of a
// node are skipped when f returns false for it.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}

// Depth returns the height of the tree rooted at n; a leaf has depth 1
func Depth(n Node) int {
	if n == nil {
		return 0
	}
	deepest := 0
	for _, c := range Children(n) {
		if d := Depth(c); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}
