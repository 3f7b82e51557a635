// File: source.go
// Title: Byte Sources
// Description: Sequential byte readers the lexer scans: an in-memory buffer,
//              a memory-mapped file and a line-buffered interactive reader.
//              End of input is reported as ok == false; I/O failures are
//              reported by the constructors, never by ReadNext or PeekNext.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-04
// Modified: 2026-10-10
//
// Change History:
// - 2026-10-04 v0.1.0: Buffer and mmap-backed file sources
// - 2026-10-10 v0.1.0: Interactive line source

package lexer

import (
	"bufio"
	"errors"
	"io"
	"io/fs"

	"golang.org/x/exp/mmap"

	mdwerror "github.com/msto63/fragment/foundation/core/error"
)

// ByteSource is a forward-only byte cursor over one source unit
type ByteSource interface {
	// ReadNext returns the next byte and advances the cursor
	ReadNext() (byte, bool)
	// PeekNext returns the next byte without advancing
	PeekNext() (byte, bool)
	// Name identifies the source unit in diagnostics
	Name() string
}

// BufferSource reads from a fixed in-memory buffer. The buffer must not be
// modified while the source is in use.
type BufferSource struct {
	name string
	data []byte
	pos  int
}

// NewBufferSource creates a source over data
func NewBufferSource(name string, data []byte) *BufferSource {
	return &BufferSource{name: name, data: data}
}

// NewStringSource creates a source over text
func NewStringSource(name, text string) *BufferSource {
	return NewBufferSource(name, []byte(text))
}

func (s *BufferSource) ReadNext() (byte, bool) {
	if s.pos >= len(s.data) {
		return 0, false
	}
	b := s.data[s.pos]
	s.pos++
	return b, true
}

func (s *BufferSource) PeekNext() (byte, bool) {
	if s.pos >= len(s.data) {
		return 0, false
	}
	return s.data[s.pos], true
}

func (s *BufferSource) Name() string { return s.name }

// FileSource reads a memory-mapped file
type FileSource struct {
	name   string
	reader *mmap.ReaderAt
	pos    int
}

// OpenFile maps the file at path for reading
func OpenFile(path string) (*FileSource, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		code := mdwerror.CodeSourceUnreadable
		if errors.Is(err, fs.ErrNotExist) {
			code = mdwerror.CodeSourceNotFound
		}
		return nil, mdwerror.Wrap(err, "cannot open source").
			WithCode(code).
			WithOperation("lexer.OpenFile").
			WithDetail("path", path)
	}
	return &FileSource{name: path, reader: reader}, nil
}

func (s *FileSource) ReadNext() (byte, bool) {
	if s.pos >= s.reader.Len() {
		return 0, false
	}
	b := s.reader.At(s.pos)
	s.pos++
	return b, true
}

func (s *FileSource) PeekNext() (byte, bool) {
	if s.pos >= s.reader.Len() {
		return 0, false
	}
	return s.reader.At(s.pos), true
}

func (s *FileSource) Name() string { return s.name }

// Len returns the size of the mapped file
func (s *FileSource) Len() int { return s.reader.Len() }

// Close unmaps the file
func (s *FileSource) Close() error {
	return s.reader.Close()
}

// StdinName names the interactive source in diagnostics
const StdinName = "<stdin>"

// LineSource reads an interactive stream one line at a time. When its
// buffer runs dry it calls prompt and blocks until another line arrives.
type LineSource struct {
	name   string
	reader *bufio.Reader
	prompt func()
	line   []byte
	pos    int
	eof    bool
}

// NewLineSource creates an interactive source over r. prompt may be nil.
func NewLineSource(name string, r io.Reader, prompt func()) *LineSource {
	return &LineSource{
		name:   name,
		reader: bufio.NewReader(r),
		prompt: prompt,
	}
}

func (s *LineSource) fill() bool {
	for s.pos >= len(s.line) {
		if s.eof {
			return false
		}
		if s.prompt != nil {
			s.prompt()
		}
		text, err := s.reader.ReadBytes('\n')
		if err != nil {
			// Any read failure ends the interactive session
			s.eof = true
		}
		s.line = text
		s.pos = 0
	}
	return true
}

func (s *LineSource) ReadNext() (byte, bool) {
	if !s.fill() {
		return 0, false
	}
	b := s.line[s.pos]
	s.pos++
	return b, true
}

func (s *LineSource) PeekNext() (byte, bool) {
	if !s.fill() {
		return 0, false
	}
	return s.line[s.pos], true
}

func (s *LineSource) Name() string { return s.name }

// DiscardLine drops whatever remains of the buffered line. It reports
// whether the dropped bytes included the line's newline.
func (s *LineSource) DiscardLine() bool {
	ended := s.pos < len(s.line) && s.line[len(s.line)-1] == '\n'
	s.line = nil
	s.pos = 0
	return ended
}
