// File: analysis.go
// Title: Syntax Tree Analysis Helpers
// Description: Checks and summaries computed over parsed trees for later
//              stages: duplicate parameter detection and per-unit counts.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-09
// Modified: 2026-10-11
//
// Change History:
// - 2026-10-09 v0.1.0: Duplicate parameter detection
// - 2026-10-11 v0.1.0: Unit summaries

package ast

import (
	"sort"
)

// DuplicateParameters returns each parameter name that occurs more than
// once in p, in order of first repetition. The parser accepts duplicates;
// rejecting them is left to semantic analysis.
func DuplicateParameters(p *FunctionPrototype) []string {
	if p == nil {
		return nil
	}
	seen := make(map[string]int, len(p.Params))
	var dups []string
	for _, name := range p.Params {
		seen[name]++
		if seen[name] == 2 {
			dups = append(dups, name)
		}
	}
	return dups
}

// Summary counts the constructs of a parsed source unit
type Summary struct {
	Definitions int      `json:"definitions" yaml:"definitions"`
	Externs     int      `json:"externs" yaml:"externs"`
	Expressions int      `json:"expressions" yaml:"expressions"`
	Calls       int      `json:"calls" yaml:"calls"`
	Nodes       int      `json:"nodes" yaml:"nodes"`
	MaxDepth    int      `json:"max_depth" yaml:"max_depth"`
	Callees     []string `json:"callees,omitempty" yaml:"callees,omitempty"`
}

type summaryVisitor struct {
	BaseVisitor
	summary *Summary
	callees map[string]struct{}
}

func (v *summaryVisitor) VisitFunctionCall(n *FunctionCall) interface{} {
	v.summary.Calls++
	v.callees[n.Callee] = struct{}{}
	return nil
}

// Summarize walks the top-level nodes of a unit
func Summarize(nodes []Node) Summary {
	var s Summary
	v := &summaryVisitor{summary: &s, callees: make(map[string]struct{})}

	for _, n := range nodes {
		switch n := n.(type) {
		case *FunctionDefinition:
			if n.IsAnonymous() {
				s.Expressions++
			} else {
				s.Definitions++
			}
		case *FunctionPrototype:
			s.Externs++
		}

		Inspect(n, func(Node) bool {
			s.Nodes++
			return true
		})
		Walk(v, n)

		if d := Depth(n); d > s.MaxDepth {
			s.MaxDepth = d
		}
	}

	for name := range v.callees {
		s.Callees = append(s.Callees, name)
	}
	sort.Strings(s.Callees)
	return s
}
