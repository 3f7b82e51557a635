// File: ast_test.go
// Title: Fragment AST Unit Tests
// Description: Tests for rendering, traversal, encoding and analysis of
//              syntax trees.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-05
// Modified: 2026-10-11
//
// Change History:
// - 2026-10-05 v0.1.0: Rendering tests
// - 2026-10-11 v0.1.0: Encoding, traversal and summary tests

package ast

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/msto63/fragment/foundation/fragment/token"
)

// def f(a) a+f(a,1)
func sampleDefinition() *FunctionDefinition {
	return &FunctionDefinition{
		Prototype: &FunctionPrototype{Name: "f", Params: []string{"a"}},
		Body: &BinaryOperation{
			Op:   token.OpAdd,
			Left: &VariableReference{Name: "a"},
			Right: &FunctionCall{
				Callee: "f",
				Args:   []Expr{&VariableReference{Name: "a"}, &NumberLiteral{Value: 1}},
			},
		},
	}
}

func TestRender(t *testing.T) {
	want := strings.Join([]string{
		"FunctionDefinition",
		"  Prototype:",
		"    FunctionPrototype",
		"      Name: f",
		"      Params: a",
		"  Body:",
		"    BinaryOperation",
		"      Operator: +",
		"      Left:",
		"        VariableReference",
		"          Name: a",
		"      Right:",
		"        FunctionCall",
		"          Callee: f",
		"          Arg 0:",
		"            VariableReference",
		"              Name: a",
		"          Arg 1:",
		"            NumberLiteral",
		"              Value: 1",
	}, "\n")

	got := sampleDefinition().String()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderLeavesAndAnonymous(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"number", &NumberLiteral{Value: 2.5}, "NumberLiteral\n  Value: 2.5"},
		{"variable", &VariableReference{Name: "x"}, "VariableReference\n  Name: x"},
		{"zero-arg call", &FunctionCall{Callee: "now"}, "FunctionCall\n  Callee: now\n  Args: (none)"},
		{"extern", &FunctionPrototype{Name: "sin", Params: []string{"x"}}, "FunctionPrototype\n  Name: sin\n  Params: x"},
		{"anonymous", &FunctionPrototype{}, "FunctionPrototype\n  Name: <anonymous>\n  Params: (none)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.node); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsAnonymous(t *testing.T) {
	if sampleDefinition().IsAnonymous() {
		t.Error("named definition reported anonymous")
	}
	top := &FunctionDefinition{Prototype: &FunctionPrototype{}, Body: &NumberLiteral{Value: 1}}
	if !top.IsAnonymous() {
		t.Error("top-level expression wrapper should be anonymous")
	}
}

type kindCollector struct {
	BaseVisitor
	kinds []string
}

func (k *kindCollector) VisitNumberLiteral(*NumberLiteral) interface{} {
	k.kinds = append(k.kinds, "num")
	return nil
}

func (k *kindCollector) VisitVariableReference(n *VariableReference) interface{} {
	k.kinds = append(k.kinds, "var:"+n.Name)
	return nil
}

func (k *kindCollector) VisitFunctionCall(n *FunctionCall) interface{} {
	k.kinds = append(k.kinds, "call:"+n.Callee)
	return nil
}

func TestWalkOrder(t *testing.T) {
	v := &kindCollector{}
	Walk(v, sampleDefinition())

	want := []string{"var:a", "call:f", "var:a", "num"}
	if diff := cmp.Diff(want, v.kinds); diff != "" {
		t.Errorf("Walk() order mismatch (-want +got):\n%s", diff)
	}
}

func TestInspectPrunes(t *testing.T) {
	var seen []string
	Inspect(sampleDefinition(), func(n Node) bool {
		seen = append(seen, KindOf(n))
		_, isCall := n.(*FunctionCall)
		return !isCall
	})

	want := []string{"FunctionDefinition", "FunctionPrototype", "BinaryOperation", "VariableReference", "FunctionCall"}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Errorf("Inspect() mismatch (-want +got):\n%s", diff)
	}
}

func TestDepth(t *testing.T) {
	if got := Depth(&NumberLiteral{}); got != 1 {
		t.Errorf("Depth(leaf) = %d, want 1", got)
	}
	if got := Depth(sampleDefinition()); got != 4 {
		t.Errorf("Depth(sample) = %d, want 4", got)
	}
	if got := Depth(nil); got != 0 {
		t.Errorf("Depth(nil) = %d, want 0", got)
	}
}

func TestEncodeJSON(t *testing.T) {
	tree := Encode(&BinaryOperation{
		Op:    token.OpMul,
		Left:  &NumberLiteral{Value: 0},
		Right: &VariableReference{Name: "x", Pos: token.Position{Line: 1, Column: 2}},
	})

	data, err := json.Marshal(tree)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	var decoded Tree
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if decoded.Left.Value == nil || *decoded.Left.Value != 0 {
		t.Error("zero literal value must survive encoding")
	}
	if decoded.Operator != "*" || decoded.Right.Name != "x" || decoded.Right.Pos.Column != 2 {
		t.Errorf("decoded tree = %+v", decoded)
	}
}

func TestEncodeYAML(t *testing.T) {
	data, err := yaml.Marshal(EncodeAll([]Node{sampleDefinition()}))
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}

	out := string(data)
	for _, want := range []string{"kind: FunctionDefinition", "operator:", "name: f", "params:", "- a"} {
		if !strings.Contains(out, want) {
			t.Errorf("YAML output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "anonymous") {
		t.Errorf("named definition should omit anonymous:\n%s", out)
	}
}

func TestDuplicateParameters(t *testing.T) {
	tests := []struct {
		params []string
		want   []string
	}{
		{nil, nil},
		{[]string{"a", "b"}, nil},
		{[]string{"a", "a"}, []string{"a"}},
		{[]string{"x", "y", "x", "y", "x"}, []string{"x", "y"}},
	}

	for _, tt := range tests {
		got := DuplicateParameters(&FunctionPrototype{Name: "f", Params: tt.params})
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("DuplicateParameters(%v) mismatch (-want +got):\n%s", tt.params, diff)
		}
	}
	if DuplicateParameters(nil) != nil {
		t.Error("DuplicateParameters(nil) should be nil")
	}
}

func TestSummarize(t *testing.T) {
	nodes := []Node{
		&FunctionPrototype{Name: "sin", Params: []string{"x"}},
		sampleDefinition(),
		&FunctionDefinition{
			Prototype: &FunctionPrototype{},
			Body:      &FunctionCall{Callee: "sin", Args: []Expr{&NumberLiteral{Value: 1}}},
		},
	}

	want := Summary{
		Definitions: 1,
		Externs:     1,
		Expressions: 1,
		Calls:       2,
		Nodes:       12,
		MaxDepth:    4,
		Callees:     []string{"f", "sin"},
	}
	if diff := cmp.Diff(want, Summarize(nodes)); diff != "" {
		t.Errorf("Summarize() mismatch (-want +got):\n%s", diff)
	}
}
