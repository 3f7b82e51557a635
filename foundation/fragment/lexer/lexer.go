// File: lexer.go
// Title: Fragment Lexical Analyzer
// Description: Pull-based tokenizer. Converts the bytes of one bound source
//              unit into tokens on demand, tracking line and column. Uses
//              one byte of peek and never re-reads consumed input.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-04
// Modified: 2026-10-10
//
// Change History:
// - 2026-10-04 v0.1.0: Initial lexer
// - 2026-10-07 v0.1.0: Token positions and trace logging
// - 2026-10-10 v0.1.0: Interactive input when no source is bound

package lexer

import (
	"io"
	"path/filepath"
	"strconv"

	mdwerror "github.com/msto63/fragment/foundation/core/error"
	mdwlog "github.com/msto63/fragment/foundation/core/log"
	"github.com/msto63/fragment/foundation/fragment/token"
)

// SourceExtension is the only extension accepted for source units
const SourceExtension = ".fr"

// Options configures a Lexer
type Options struct {
	Logger *mdwlog.Logger

	// Interactive is read line by line when no source is bound
	Interactive io.Reader
	// Prompt is called before each interactive line is read
	Prompt func()
}

// Lexer produces tokens from at most one bound ByteSource
type Lexer struct {
	src    ByteSource
	line   int
	column int

	// Set once EOF has been produced for the bound source
	done bool
	eof  token.Token

	interactive io.Reader
	prompt      func()
	logger      *mdwlog.Logger
}

// New creates a lexer with no bound source
func New(opts Options) *Lexer {
	logger := opts.Logger
	if logger == nil {
		logger = mdwlog.NewNop()
	}
	return &Lexer{
		interactive: opts.Interactive,
		prompt:      opts.Prompt,
		logger:      logger.WithField("component", "lexer"),
	}
}

// HasSourceExtension reports whether name carries the .fr extension
func HasSourceExtension(name string) bool {
	return filepath.Ext(name) == SourceExtension
}

func unrecognizedSource(name, op string) error {
	return mdwerror.Newf("unrecognized source %q: expected a %s file", name, SourceExtension).
		WithCode(mdwerror.CodeUnrecognizedSource).
		WithOperation(op).
		WithDetail("source", name)
}

// BindFile checks the extension of path, maps the file and binds it.
// No bytes are read when the extension is wrong.
func (l *Lexer) BindFile(path string) error {
	if !HasSourceExtension(path) {
		return unrecognizedSource(path, "lexer.BindFile")
	}
	src, err := OpenFile(path)
	if err != nil {
		return err
	}
	return l.Bind(src)
}

// Bind replaces the current source with src and resets line, column and
// end-of-input state. The previous source is closed if it can be.
func (l *Lexer) Bind(src ByteSource) error {
	if !HasSourceExtension(src.Name()) {
		return unrecognizedSource(src.Name(), "lexer.Bind")
	}

	_ = l.closeSource()
	l.src = src
	l.line = 0
	l.column = 0
	l.done = false
	l.eof = token.Token{}

	l.logger.Debug("source bound", mdwlog.Fields{"source": src.Name()})
	return nil
}

// Line returns the current 0-based line
func (l *Lexer) Line() int { return l.line }

// Column returns the current 0-based column
func (l *Lexer) Column() int { return l.column }

// SourceName returns the name of the bound source
func (l *Lexer) SourceName() string {
	if l.src == nil {
		if l.interactive != nil {
			return StdinName
		}
		return ""
	}
	return l.src.Name()
}

// DiscardLine drops the rest of the current interactive line. It has no
// effect on file and buffer sources.
func (l *Lexer) DiscardLine() {
	if ls, ok := l.src.(*LineSource); ok {
		if ls.DiscardLine() {
			l.line++
		}
		l.column = 0
	}
}

// Close releases the bound source
func (l *Lexer) Close() error {
	err := l.closeSource()
	l.src = nil
	return err
}

func (l *Lexer) closeSource() error {
	if c, ok := l.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// NextToken returns the next token. Once EOF has been returned every
// further call returns the same EOF token.
func (l *Lexer) NextToken() (token.Token, error) {
	if l.src == nil {
		if l.interactive == nil {
			return token.Token{}, mdwerror.New("no source bound and no interactive input").
				WithCode(mdwerror.CodeNoSource).
				WithOperation("lexer.NextToken")
		}
		l.src = NewLineSource(StdinName, l.interactive, l.prompt)
	}

	if l.done {
		return l.eof, nil
	}

	tok, err := l.scan()
	if err != nil {
		return token.Token{}, err
	}
	if tok.Kind == token.KindEOF {
		l.done = true
		l.eof = tok
	}

	if l.logger.IsLevelEnabled(mdwlog.LevelTrace) {
		l.logger.Trace("token", mdwlog.Fields{
			"token":  tok.String(),
			"source": l.src.Name(),
			"line":   tok.Pos.Line,
			"column": tok.Pos.Column,
		})
	}
	return tok, nil
}

// Tokenize drains the bound source, returning every token up to and
// including EOF
func (l *Lexer) Tokenize() ([]token.Token, error) {
	var tokens []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.KindEOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) read() (byte, bool) {
	ch, ok := l.src.ReadNext()
	if !ok {
		return 0, false
	}
	if ch == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
	return ch, true
}

func (l *Lexer) position() token.Position {
	return token.Position{Line: l.line, Column: l.column}
}

// skipTrivia consumes whitespace and comments. It returns false at end of
// input.
func (l *Lexer) skipTrivia() bool {
	for {
		ch, ok := l.src.PeekNext()
		if !ok {
			return false
		}
		switch {
		case isSpace(ch):
			l.read()
		case ch == '#':
			for {
				c, ok := l.read()
				if !ok {
					return false
				}
				if c == '\n' {
					break
				}
			}
		default:
			return true
		}
	}
}

func (l *Lexer) scan() (token.Token, error) {
	if !l.skipTrivia() {
		return token.EOF().At(l.position()), nil
	}

	pos := l.position()
	ch, _ := l.read()

	switch {
	case ch == '(':
		return token.LeftParen().At(pos), nil
	case ch == ')':
		return token.RightParen().At(pos), nil
	case ch == ';':
		return token.Semicolon().At(pos), nil
	case ch == ',':
		return token.Comma().At(pos), nil
	case isAlpha(ch):
		word := l.accumulate(ch, isAlpha)
		if kw, ok := token.Keyword(word); ok {
			return kw.At(pos), nil
		}
		return token.Identifier(word).At(pos), nil
	case isDigit(ch) || ch == '.':
		text := l.accumulate(ch, func(c byte) bool { return isDigit(c) || c == '.' })
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return token.Token{}, mdwerror.Newf("expected number, found %q", text).
				WithCode(mdwerror.CodeExpectedNumber).
				WithOperation("lexer.NextToken").
				WithLocation(l.src.Name(), l.line).
				WithDetail("literal", text)
		}
		return token.Number(value).At(pos), nil
	}

	if op, ok := token.ParseOperator(ch); ok {
		return token.BinaryOp(op).At(pos), nil
	}
	return token.Unknown(ch).At(pos), nil
}

func (l *Lexer) accumulate(first byte, accept func(byte) bool) string {
	buf := []byte{first}
	for {
		ch, ok := l.src.PeekNext()
		if !ok || !accept(ch) {
			return string(buf)
		}
		l.read()
		buf = append(buf, ch)
	}
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// Identifiers are ASCII letters only; digits end an identifier
func isAlpha(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
