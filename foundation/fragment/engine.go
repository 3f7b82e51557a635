// File: engine.go
// Title: Fragment Front-End Engine
// Description: Wires lexer and parser together behind one entry point with
//              a shared logger, precedence table and tracing switch. Parses
//              whole source units and reports timing per unit.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-06
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-06 v0.1.0: Initial engine
// - 2026-10-09 v0.1.0: Duplicate parameter warnings
// - 2026-10-12 v0.1.0: Interactive front end for the REPL

package fragment

import (
	"io"
	"time"

	mdwlog "github.com/msto63/fragment/foundation/core/log"
	mdwast "github.com/msto63/fragment/foundation/fragment/ast"
	mdwlexer "github.com/msto63/fragment/foundation/fragment/lexer"
	mdwparser "github.com/msto63/fragment/foundation/fragment/parser"
	"github.com/msto63/fragment/foundation/fragment/token"
)

// Options configures the engine
type Options struct {
	Logger *mdwlog.Logger

	// Trace enables token and precedence tracing in the parser
	Trace bool

	// Precedence defaults to token.PrecedenceOf
	Precedence token.PrecedenceFunc

	// WarnDuplicateParams logs a warning for prototypes that repeat a
	// parameter name
	WarnDuplicateParams bool
}

// Unit is the result of parsing one source unit
type Unit struct {
	Source   string
	Nodes    []mdwast.Node
	Duration time.Duration
}

// Summary returns node statistics for the unit
func (u *Unit) Summary() mdwast.Summary {
	return mdwast.Summarize(u.Nodes)
}

// Engine parses Fragment source units
type Engine struct {
	options Options
	logger  *mdwlog.Logger
}

// New creates an engine
func New(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = mdwlog.NewNop()
	}
	if opts.Precedence == nil {
		opts.Precedence = token.PrecedenceOf
	}

	logger := opts.Logger.WithField("component", "fragment-engine")
	logger.Debug("engine initialized", mdwlog.Fields{
		"trace":               opts.Trace,
		"warnDuplicateParams": opts.WarnDuplicateParams,
	})

	return &Engine{options: opts, logger: logger}
}

// Logger returns the engine's logger
func (e *Engine) Logger() *mdwlog.Logger {
	return e.logger
}

// NewLexer returns a lexer sharing the engine's logger
func (e *Engine) NewLexer() *mdwlexer.Lexer {
	return mdwlexer.New(mdwlexer.Options{Logger: e.options.Logger})
}

// NewParser returns a parser over src configured like the engine
func (e *Engine) NewParser(src token.Source) *mdwparser.Parser {
	return mdwparser.New(src, mdwparser.Options{
		Logger:     e.options.Logger,
		Trace:      e.options.Trace,
		Precedence: e.options.Precedence,
	})
}

// Interactive returns a lexer reading in line by line, calling prompt
// before each line, and a parser over it. The caller owns the error
// recovery loop: DiscardLine on the lexer, Reset on the parser.
func (e *Engine) Interactive(in io.Reader, prompt func()) (*mdwlexer.Lexer, *mdwparser.Parser) {
	lx := mdwlexer.New(mdwlexer.Options{
		Logger:      e.options.Logger,
		Interactive: in,
		Prompt:      prompt,
	})
	return lx, e.NewParser(lx)
}

// ParseFile maps and parses the .fr file at path
func (e *Engine) ParseFile(path string) (*Unit, error) {
	lx := e.NewLexer()
	if err := lx.BindFile(path); err != nil {
		e.logger.LogError(err)
		return &Unit{Source: path}, err
	}
	defer lx.Close()
	return e.parse(lx)
}

// ParseSource parses every construct in src. The unit holds the constructs
// parsed before the first error, if any.
func (e *Engine) ParseSource(src mdwlexer.ByteSource) (*Unit, error) {
	lx := e.NewLexer()
	if err := lx.Bind(src); err != nil {
		e.logger.LogError(err)
		return &Unit{Source: src.Name()}, err
	}
	defer lx.Close()
	return e.parse(lx)
}

// ParseString parses text as a unit called name. The name must carry the
// .fr extension.
func (e *Engine) ParseString(name, text string) (*Unit, error) {
	return e.ParseSource(mdwlexer.NewStringSource(name, text))
}

// Tokenize lexes the file at path without parsing it
func (e *Engine) Tokenize(path string) ([]token.Token, error) {
	lx := e.NewLexer()
	if err := lx.BindFile(path); err != nil {
		return nil, err
	}
	defer lx.Close()
	return lx.Tokenize()
}

// TokenizeSource lexes src without parsing it
func (e *Engine) TokenizeSource(src mdwlexer.ByteSource) ([]token.Token, error) {
	lx := e.NewLexer()
	if err := lx.Bind(src); err != nil {
		return nil, err
	}
	defer lx.Close()
	return lx.Tokenize()
}

func (e *Engine) parse(lx *mdwlexer.Lexer) (*Unit, error) {
	unit := &Unit{Source: lx.SourceName()}
	timer := e.logger.StartTimer("parse").WithField("source", unit.Source)

	nodes, err := e.NewParser(lx).ParseAll()
	unit.Nodes = nodes
	if err != nil {
		unit.Duration = timer.StopWithError(err)
		return unit, err
	}

	unit.Duration = timer.WithField("constructs", len(nodes)).Stop()
	e.CheckDuplicates(unit.Source, nodes)
	return unit, nil
}

// CheckDuplicates logs a warning for every prototype in nodes that repeats
// a parameter name, when enabled. It returns the number of prototypes
// affected.
func (e *Engine) CheckDuplicates(source string, nodes []mdwast.Node) int {
	if !e.options.WarnDuplicateParams {
		return 0
	}

	affected := 0
	for _, n := range nodes {
		var proto *mdwast.FunctionPrototype
		switch v := n.(type) {
		case *mdwast.FunctionPrototype:
			proto = v
		case *mdwast.FunctionDefinition:
			proto = v.Prototype
		}

		dups := mdwast.DuplicateParameters(proto)
		if len(dups) == 0 {
			continue
		}
		affected++
		e.logger.Warn("duplicate parameter names", mdwlog.Fields{
			"source":     source,
			"function":   proto.Name,
			"line":       proto.Pos.Line,
			"duplicates": dups,
		})
	}
	return affected
}
