// ============================================================================
// Fragment - Language Front End
// ============================================================================
//
// Package:     repl
// Description: Line-oriented interactive session over standard streams
// Author:      msto63
// Created:     2026-10-10
// License:     MIT
// ============================================================================

package repl

import (
	"context"
	"fmt"
	"io"

	mdwerror "github.com/msto63/fragment/foundation/core/error"
	mdwlog "github.com/msto63/fragment/foundation/core/log"
	"github.com/msto63/fragment/foundation/fragment"
	mdwast "github.com/msto63/fragment/foundation/fragment/ast"
)

// Banner is printed when a session starts
const Banner = "Welcome to the Fragment REPL!"

// DefaultPrompt is used when Session.Prompt is empty
const DefaultPrompt = "ready> "

// Recorder receives every construct and every failure of a session
type Recorder func(node mdwast.Node, err error)

// Session reads constructs from In and prints each parsed tree to Out.
// Diagnostics go to Err, or Out when Err is nil.
type Session struct {
	In     io.Reader
	Out    io.Writer
	Err    io.Writer
	Engine *fragment.Engine
	Prompt string
	Quiet  bool

	// Render defaults to the node's tree rendering
	Render func(mdwast.Node) string

	// Record is called after each construct or failure
	Record Recorder
}

// Stats counts what a session saw
type Stats struct {
	Constructs int
	Errors     int
}

// Run drives the session until In is exhausted or ctx is done
func (s *Session) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	engine := s.Engine
	if engine == nil {
		engine = fragment.New(fragment.Options{})
	}
	errOut := s.Err
	if errOut == nil {
		errOut = s.Out
	}
	prompt := s.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}
	render := s.Render
	if render == nil {
		render = func(n mdwast.Node) string { return n.String() }
	}

	logger := engine.Logger().WithField("component", "repl")
	if !s.Quiet {
		fmt.Fprintln(s.Out, Banner)
	}

	lx, p := engine.Interactive(s.In, func() {
		if !s.Quiet {
			fmt.Fprint(s.Out, prompt)
		}
	})
	defer lx.Close()

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		node, err := p.Next()
		if err == io.EOF {
			if !s.Quiet {
				fmt.Fprintln(s.Out)
			}
			logger.Debug("session ended", mdwlog.Fields{
				"constructs": stats.Constructs,
				"errors":     stats.Errors,
			})
			return stats, nil
		}

		if err != nil {
			// Only structured parse errors are recoverable
			if mdwerror.GetCode(err) == mdwerror.CodeUnknown {
				return stats, err
			}
			stats.Errors++
			fmt.Fprintln(errOut, mdwerror.Diagnostic(err))
			s.record(nil, err)
			lx.DiscardLine()
			p.Reset()
			continue
		}

		stats.Constructs++
		engine.CheckDuplicates(lx.SourceName(), []mdwast.Node{node})
		fmt.Fprintln(s.Out, render(node))
		s.record(node, nil)
	}
}

func (s *Session) record(node mdwast.Node, err error) {
	if s.Record != nil {
		s.Record(node, err)
	}
}
