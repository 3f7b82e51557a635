// File: parser.go
// Title: Fragment Recursive Descent Parser
// Description: Builds syntax trees from a token source with one token of
//              lookahead. Grammar rules are recursive descent; binary
//              expressions use precedence climbing. Any failure aborts the
//              current top-level construct and is returned unchanged.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-05
// Modified: 2026-10-11
//
// Change History:
// - 2026-10-05 v0.1.0: Initial parser
// - 2026-10-08 v0.1.0: Pluggable precedence table
// - 2026-10-11 v0.1.0: Next/Reset for interactive use

package parser

import (
	"io"

	mdwlog "github.com/msto63/fragment/foundation/core/log"
	"github.com/msto63/fragment/foundation/fragment/ast"
	"github.com/msto63/fragment/foundation/fragment/token"
)

// Options configures parser behavior
type Options struct {
	Logger *mdwlog.Logger

	// Trace logs every consumed token and binary operator decision
	Trace bool

	// Precedence defaults to token.PrecedenceOf
	Precedence token.PrecedenceFunc
}

// Parser turns tokens into top-level syntax trees
type Parser struct {
	src        token.Source
	current    token.Token
	precedence token.PrecedenceFunc
	trace      bool
	logger     *mdwlog.Logger
}

// New creates a parser reading from src. The lookahead starts at BOF.
func New(src token.Source, opts Options) *Parser {
	if opts.Logger == nil {
		opts.Logger = mdwlog.NewNop()
	}
	if opts.Precedence == nil {
		opts.Precedence = token.PrecedenceOf
	}
	return &Parser{
		src:        src,
		current:    token.BOF(),
		precedence: opts.Precedence,
		trace:      opts.Trace,
		logger:     opts.Logger.WithField("component", "parser"),
	}
}

// Current returns the lookahead token
func (p *Parser) Current() token.Token {
	return p.current
}

// Reset puts the lookahead back to BOF so parsing restarts with a fresh
// token. Used after an error in interactive sessions.
func (p *Parser) Reset() {
	p.current = token.BOF()
}

// Next parses and returns the next top-level construct: a
// *ast.FunctionDefinition for definitions and bare expressions, or a
// *ast.FunctionPrototype for extern declarations. It returns io.EOF once
// the source is exhausted.
func (p *Parser) Next() (ast.Node, error) {
	if p.current.Kind == token.KindBOF {
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	for {
		switch p.current.Kind {
		case token.KindEOF:
			return nil, io.EOF
		case token.KindSemicolon:
			if err := p.advance(); err != nil {
				return nil, err
			}
		case token.KindDef:
			return p.traced("definition", p.parseDefinition)
		case token.KindExtern:
			return p.traced("extern", p.parseExtern)
		default:
			return p.traced("top-level expression", p.parseTopLevelExpression)
		}
	}
}

// ParseAll parses every top-level construct up to EOF. The first error
// stops parsing; constructs parsed before it are returned with it.
func (p *Parser) ParseAll() ([]ast.Node, error) {
	var nodes []ast.Node
	for {
		node, err := p.Next()
		if err == io.EOF {
			return nodes, nil
		}
		if err != nil {
			return nodes, err
		}
		nodes = append(nodes, node)
	}
}

func (p *Parser) traced(construct string, parse func() (ast.Node, error)) (ast.Node, error) {
	if p.trace {
		p.logger.Trace("parsing "+construct, mdwlog.Fields{"token": p.current.String()})
	}
	node, err := parse()
	if err != nil {
		return nil, err
	}
	if p.trace {
		p.logger.Trace("parsed "+construct, mdwlog.Fields{
			"kind":    ast.KindOf(node),
			"current": p.current.String(),
		})
	}
	return node, nil
}

// advance discards the lookahead and pulls the next token
func (p *Parser) advance() error {
	if p.trace {
		p.logger.Trace("consume", mdwlog.Fields{
			"token":  p.current.String(),
			"line":   p.current.Pos.Line,
			"column": p.current.Pos.Column,
		})
	}
	next, err := p.src.NextToken()
	if err != nil {
		return err
	}
	p.current = next
	return nil
}

// definition := "def" prototype expression
func (p *Parser) parseDefinition() (ast.Node, error) {
	if p.current.Kind != token.KindDef {
		return nil, p.unexpected("'def'")
	}
	pos := p.current.Pos
	if err := p.advance(); err != nil {
		return nil, err
	}

	proto, err := p.parsePrototype()
	if err != nil {
		return nil, err
	}
	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDefinition{Prototype: proto, Body: body, Pos: pos}, nil
}

// extern := "extern" prototype
func (p *Parser) parseExtern() (ast.Node, error) {
	if p.current.Kind != token.KindExtern {
		return nil, p.unexpected("'extern'")
	}
	pos := p.current.Pos
	if err := p.advance(); err != nil {
		return nil, err
	}

	proto, err := p.parsePrototype()
	if err != nil {
		return nil, err
	}
	proto.Pos = pos
	return proto, nil
}

// Bare expressions become anonymous definitions
func (p *Parser) parseTopLevelExpression() (ast.Node, error) {
	pos := p.current.Pos
	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDefinition{
		Prototype: &ast.FunctionPrototype{Pos: pos},
		Body:      body,
		Pos:       pos,
	}, nil
}

// prototype := identifier "(" identifier* ")"
func (p *Parser) parsePrototype() (*ast.FunctionPrototype, error) {
	if p.current.Kind != token.KindIdentifier {
		return nil, p.functionNameNotFound()
	}
	proto := &ast.FunctionPrototype{Name: p.current.Name, Pos: p.current.Pos}
	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.current.Kind != token.KindLeftParen {
		return nil, p.unexpected("'('")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	for p.current.Kind == token.KindIdentifier {
		proto.Params = append(proto.Params, p.current.Name)
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	if p.current.Kind != token.KindRightParen {
		return nil, p.unexpected("')' or parameter name")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return proto, nil
}

// expression := primary (operator primary)*
func (p *Parser) parseExpression() (ast.Expr, error) {
	lhs, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parseBinaryRHS(0, lhs)
}

// parseBinaryRHS folds operators binding at least as tightly as
// minPrecedence into lhs. Equal precedence folds left in the loop; a
// strictly tighter following operator recurses with a raised threshold.
func (p *Parser) parseBinaryRHS(minPrecedence token.Precedence, lhs ast.Expr) (ast.Expr, error) {
	for {
		prec := p.precedence(p.current)
		if prec < minPrecedence {
			if p.trace {
				p.logger.Trace("binop stop", mdwlog.Fields{
					"token":      p.current.String(),
					"precedence": int(prec),
					"threshold":  int(minPrecedence),
				})
			}
			return lhs, nil
		}

		if p.current.Kind != token.KindOperator {
			return nil, p.invalidOperator()
		}
		op := p.current.Op
		if err := p.advance(); err != nil {
			return nil, err
		}

		rhs, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}

		if next := p.precedence(p.current); prec < next {
			if p.trace {
				p.logger.Trace("binop descend", mdwlog.Fields{
					"operator":  op.String(),
					"next":      p.current.String(),
					"threshold": int(prec.Increment()),
				})
			}
			rhs, err = p.parseBinaryRHS(prec.Increment(), rhs)
			if err != nil {
				return nil, err
			}
		}

		lhs = &ast.BinaryOperation{Op: op, Left: lhs, Right: rhs, Pos: lhs.Position()}
	}
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	switch p.current.Kind {
	case token.KindIdentifier:
		return p.parseIdentifierOrCall()
	case token.KindNumber:
		return p.parseNumber()
	case token.KindLeftParen:
		return p.parseParenthesized()
	default:
		return nil, p.unexpected("expression")
	}
}

// identifier | identifier "(" (expression ("," expression)*)? ")"
func (p *Parser) parseIdentifierOrCall() (ast.Expr, error) {
	if p.current.Kind != token.KindIdentifier {
		return nil, p.unexpected("identifier")
	}
	name, pos := p.current.Name, p.current.Pos
	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.current.Kind != token.KindLeftParen {
		return &ast.VariableReference{Name: name, Pos: pos}, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	call := &ast.FunctionCall{Callee: name, Pos: pos}
	if p.current.Kind != token.KindRightParen {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)

			if p.current.Kind == token.KindRightParen {
				break
			}
			if p.current.Kind != token.KindComma {
				return nil, p.unexpected("',' or ')'")
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}

	if err := p.advance(); err != nil {
		return nil, err
	}
	return call, nil
}

func (p *Parser) parseNumber() (ast.Expr, error) {
	if p.current.Kind != token.KindNumber {
		return nil, p.expectedNumber()
	}
	lit := &ast.NumberLiteral{Value: p.current.Number, Pos: p.current.Pos}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return lit, nil
}

// "(" expression ")"; the parentheses leave no node behind
func (p *Parser) parseParenthesized() (ast.Expr, error) {
	if p.current.Kind != token.KindLeftParen {
		return nil, p.unexpected("'('")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	inner, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if p.current.Kind != token.KindRightParen {
		return nil, p.unexpected("')'")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return inner, nil
}
