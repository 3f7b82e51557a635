// File: encode.go
// Title: Serializable Syntax Trees
// Description: Converts syntax trees into a plain struct tree tagged for
//              YAML and JSON output.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-09
// Modified: 2026-10-09
//
// Change History:
// - 2026-10-09 v0.1.0: Initial implementation

package ast

import (
	"github.com/msto63/fragment/foundation/fragment/token"
)

// Tree is the serializable form of a node. Only the fields relevant to
// Kind are populated.
type Tree struct {
	Kind      string         `json:"kind" yaml:"kind"`
	Pos       token.Position `json:"pos" yaml:"pos"`
	Value     *float64       `json:"value,omitempty" yaml:"value,omitempty"`
	Name      string         `json:"name,omitempty" yaml:"name,omitempty"`
	Operator  string         `json:"operator,omitempty" yaml:"operator,omitempty"`
	Params    []string       `json:"params,omitempty" yaml:"params,omitempty"`
	Anonymous bool           `json:"anonymous,omitempty" yaml:"anonymous,omitempty"`
	Left      *Tree          `json:"left,omitempty" yaml:"left,omitempty"`
	Right     *Tree          `json:"right,omitempty" yaml:"right,omitempty"`
	Args      []*Tree        `json:"args,omitempty" yaml:"args,omitempty"`
	Prototype *Tree          `json:"prototype,omitempty" yaml:"prototype,omitempty"`
	Body      *Tree          `json:"body,omitempty" yaml:"body,omitempty"`
}

// Encode converts n into a Tree. A nil node encodes to nil.
func Encode(n Node) *Tree {
	if n == nil {
		return nil
	}

	t := &Tree{Kind: KindOf(n), Pos: n.Position()}
	switch n := n.(type) {
	case *NumberLiteral:
		v := n.Value
		t.Value = &v
	case *VariableReference:
		t.Name = n.Name
	case *FunctionCall:
		t.Name = n.Callee
		for _, arg := range n.Args {
			t.Args = append(t.Args, Encode(arg))
		}
	case *BinaryOperation:
		t.Operator = n.Op.String()
		t.Left = Encode(n.Left)
		t.Right = Encode(n.Right)
	case *FunctionPrototype:
		t.Name = n.Name
		t.Params = n.Params
		t.Anonymous = n.IsAnonymous()
	case *FunctionDefinition:
		t.Anonymous = n.IsAnonymous()
		if n.Prototype != nil {
			t.Prototype = Encode(n.Prototype)
		}
		t.Body = Encode(n.Body)
	}
	return t
}

// EncodeAll encodes a sequence of top-level nodes
func EncodeAll(nodes []Node) []*Tree {
	trees := make([]*Tree, 0, len(nodes))
	for _, n := range nodes {
		trees = append(trees, Encode(n))
	}
	return trees
}
