// File: level.go
// Title: Log Level Definitions
// Description: Defines log levels for filtering log output. Trace is the
//              level used for token-by-token lexer and parser tracing.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-02
// Modified: 2026-10-02
//
// Change History:
// - 2026-10-02 v0.1.0: Initial implementation

package log

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Level represents the importance level of a log message
type Level int

const (
	// LevelTrace is used for per-token lexer and parser tracing
	LevelTrace Level = iota

	// LevelDebug provides detailed information for debugging purposes
	LevelDebug

	// LevelInfo represents general informational messages
	LevelInfo

	// LevelWarn indicates suspicious input that is still accepted
	LevelWarn

	// LevelError represents failures of a single operation
	LevelError

	// LevelFatal represents errors that terminate the program
	LevelFatal

	// LevelOff disables all output
	LevelOff
)

// String returns the string representation of the log level
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	case LevelOff:
		return "off"
	default:
		return "unknown"
	}
}

// ShortString returns a three letter representation of the log level
func (l Level) ShortString() string {
	switch l {
	case LevelTrace:
		return "TRC"
	case LevelDebug:
		return "DBG"
	case LevelInfo:
		return "INF"
	case LevelWarn:
		return "WRN"
	case LevelError:
		return "ERR"
	case LevelFatal:
		return "FTL"
	default:
		return "???"
	}
}

// Style returns the console style used to render the level badge
func (l Level) Style() lipgloss.Style {
	return levelStyles[l]
}

var levelStyles = map[Level]lipgloss.Style{
	LevelTrace: lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
	LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4")),
	LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")),
	LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true),
	LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
	LevelFatal: lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true),
}

// ShouldLog returns true if this level should be logged given the minimum level
func (l Level) ShouldLog(minLevel Level) bool {
	if l == LevelOff || minLevel == LevelOff {
		return false
	}
	return l >= minLevel
}

// ParseLevel parses a string into a log level
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "trc":
		return LevelTrace, nil
	case "debug", "dbg":
		return LevelDebug, nil
	case "info", "inf", "":
		return LevelInfo, nil
	case "warn", "wrn", "warning":
		return LevelWarn, nil
	case "error", "err":
		return LevelError, nil
	case "fatal", "ftl":
		return LevelFatal, nil
	case "off", "none", "quiet":
		return LevelOff, nil
	default:
		return LevelInfo, &ParseError{
			Input: level,
			Type:  "level",
		}
	}
}

// ParseError represents an error parsing a log configuration value
type ParseError struct {
	Input string
	Type  string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return "invalid " + e.Type + ": " + e.Input
}

// DefaultLevel returns the default log level
func DefaultLevel() Level {
	return LevelInfo
}
