// Package log provides structured logging for the Fragment toolchain.
//
// Package: log
// Title: Structured Logging Framework
// Description: Levelled, structured logging with persistent context fields,
//              several output formats and integration with the structured
//              error type. The lexer and parser emit their verbose traces
//              through this package at trace level.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-02
// Modified: 2026-10-06
//
// Change History:
// - 2026-10-02 v0.1.0: Initial implementation
// - 2026-10-06 v0.1.0: Console format and correlation ids
//
// Features:
// - Levels trace, debug, info, warn, error, fatal and off
// - Text, JSON, logfmt and lipgloss-styled console output
// - Immutable derived loggers (WithField, WithName, WithCorrelationID)
// - LogError maps error severity to log level
// - Timers for per-unit parse durations
//
// Usage:
//
//	import mdwlog "github.com/msto63/fragment/foundation/core/log"
//
//	logger := mdwlog.New().
//		WithLevel(mdwlog.LevelTrace).
//		WithFormat(mdwlog.FormatConsole).
//		WithField("component", "parser")
//
//	logger.Trace("consume", mdwlog.Fields{"token": "IDENT(foo)", "line": 3})
//
//	timer := logger.StartTimer("parse main.fr")
//	// ... parse
//	timer.Stop()
package log
