// File: source.go
// Title: Token Sources
// Description: The pull interface the parser reads tokens through, and an
//              in-memory implementation over a fixed token sequence.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-04
// Modified: 2026-10-04
//
// Change History:
// - 2026-10-04 v0.1.0: Initial implementation

package token

// Source produces tokens on demand. After EOF it keeps returning EOF.
type Source interface {
	NextToken() (Token, error)
	Line() int
	SourceName() string
}

// SliceSource replays a fixed token sequence
type SliceSource struct {
	name   string
	tokens []Token
	last   int
}

// NewSliceSource returns a source over tokens, appending EOF if missing
func NewSliceSource(name string, tokens ...Token) *SliceSource {
	seq := make([]Token, 0, len(tokens)+1)
	for _, t := range tokens {
		seq = append(seq, t)
		if t.Kind == KindEOF {
			break
		}
	}
	if len(seq) == 0 || seq[len(seq)-1].Kind != KindEOF {
		seq = append(seq, EOF())
	}
	return &SliceSource{name: name, tokens: seq, last: -1}
}

// NextToken returns the next token in sequence
func (s *SliceSource) NextToken() (Token, error) {
	if s.last < len(s.tokens)-1 {
		s.last++
	}
	return s.tokens[s.last], nil
}

// Line returns the line of the most recently returned token
func (s *SliceSource) Line() int {
	if s.last < 0 {
		return 0
	}
	return s.tokens[s.last].Pos.Line
}

// SourceName returns the name given at construction
func (s *SliceSource) SourceName() string {
	return s.name
}
