// ============================================================================
// Fragment - Language Front End
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating run-scoped loggers
// Author:      msto63
// Created:     2026-10-06
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"

	"github.com/google/uuid"

	mdwlog "github.com/msto63/fragment/foundation/core/log"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Logger name shown in text output
	Name string

	// Log level (trace, debug, info, warn, error, off)
	Level string

	// Output format: console, text, json or logfmt (default: console)
	Format string

	// Output defaults to stderr so it never mixes with rendered trees
	Output io.Writer

	// Additional outputs besides Output
	AdditionalOutputs []io.Writer

	// RunID is attached as correlation id; generated when empty
	RunID string
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(name string) LoggerConfig {
	return LoggerConfig{
		Name:   name,
		Level:  "warn",
		Format: "console",
	}
}

// NewLogger creates a foundation logger tagged with a run id
func NewLogger(cfg LoggerConfig) *mdwlog.Logger {
	level := parseLevel(cfg.Level)

	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}
	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	format, err := mdwlog.ParseFormat(cfg.Format)
	if err != nil || cfg.Format == "" {
		format = mdwlog.FormatConsole
	}

	runID := cfg.RunID
	if runID == "" {
		runID = NewRunID()
	}

	return mdwlog.NewWithConfig(mdwlog.Config{
		Level:  level,
		Format: format,
		Output: output,
		Name:   cfg.Name,
	}).WithCorrelationID(runID)
}

// NewSimpleLogger creates a logger with the default configuration
func NewSimpleLogger(name string) *mdwlog.Logger {
	return NewLogger(DefaultLoggerConfig(name))
}

// NewRunID returns a fresh identifier for one CLI invocation
func NewRunID() string {
	return uuid.NewString()
}

// parseLevel converts a string level to mdwlog.Level
func parseLevel(level string) mdwlog.Level {
	switch level {
	case "trace":
		return mdwlog.LevelTrace
	case "debug":
		return mdwlog.LevelDebug
	case "info":
		return mdwlog.LevelInfo
	case "warn", "warning":
		return mdwlog.LevelWarn
	case "error":
		return mdwlog.LevelError
	case "fatal":
		return mdwlog.LevelFatal
	case "off", "quiet":
		return mdwlog.LevelOff
	default:
		return mdwlog.LevelInfo
	}
}
