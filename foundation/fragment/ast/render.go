// File: render.go
// Title: Syntax Tree Debug Rendering
// Description: Multi-line text rendering of syntax trees for tracing and
//              the CLI text output. Purely observational.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-05
// Modified: 2026-10-05
//
// Change History:
// - 2026-10-05 v0.1.0: Initial renderer

package ast

import (
	"fmt"
	"strconv"
	"strings"
)

const indentUnit = "  "

// Render returns the node kind on the first line followed by each
// attribute and child on its own indented line
func Render(n Node) string {
	var b strings.Builder
	render(&b, n, 0)
	return strings.TrimSuffix(b.String(), "\n")
}

// FormatNumber formats a literal value the way Render prints it
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func render(b *strings.Builder, n Node, depth int) {
	pad := strings.Repeat(indentUnit, depth)
	attr := func(key, value string) {
		fmt.Fprintf(b, "%s%s%s: %s\n", pad, indentUnit, key, value)
	}
	child := func(key string, c Node) {
		fmt.Fprintf(b, "%s%s%s:\n", pad, indentUnit, key)
		render(b, c, depth+2)
	}

	if n == nil {
		b.WriteString(pad + "<nil>\n")
		return
	}
	b.WriteString(pad + KindOf(n) + "\n")

	switch n := n.(type) {
	case *NumberLiteral:
		attr("Value", FormatNumber(n.Value))
	case *VariableReference:
		attr("Name", n.Name)
	case *FunctionCall:
		attr("Callee", n.Callee)
		if len(n.Args) == 0 {
			attr("Args", "(none)")
		}
		for i, arg := range n.Args {
			child("Arg "+strconv.Itoa(i), arg)
		}
	case *BinaryOperation:
		attr("Operator", n.Op.String())
		child("Left", n.Left)
		child("Right", n.Right)
	case *FunctionPrototype:
		attr("Name", displayName(n.Name))
		attr("Params", displayParams(n.Params))
	case *FunctionDefinition:
		if n.Prototype != nil {
			child("Prototype", n.Prototype)
		}
		child("Body", n.Body)
	}
}

func displayName(name string) string {
	if name == "" {
		return "<anonymous>"
	}
	return name
}

func displayParams(params []string) string {
	if len(params) == 0 {
		return "(none)"
	}
	return strings.Join(params, ", ")
}
