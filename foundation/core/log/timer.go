// File: timer.go
// Title: Performance Timer
// Description: Measures the duration of an operation and logs it on
//              completion. Used to time lexing and parsing of source units.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-02
// Modified: 2026-10-02
//
// Change History:
// - 2026-10-02 v0.1.0: Initial implementation

package log

import (
	"time"
)

// Timer measures a single operation
type Timer struct {
	logger    *Logger
	operation string
	startTime time.Time
	fields    Fields
	level     Level
	stopped   bool
}

// NewTimer creates a new timer for the given operation
func NewTimer(logger *Logger, operation string) *Timer {
	return &Timer{
		logger:    logger,
		operation: operation,
		startTime: time.Now(),
		fields:    make(Fields),
		level:     LevelDebug,
	}
}

// WithLevel sets the log level for the completion message
func (t *Timer) WithLevel(level Level) *Timer {
	t.level = level
	return t
}

// WithField adds a field logged on completion
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Elapsed returns the time since the timer was started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.startTime)
}

// Stop stops the timer and logs the elapsed time. Stopping twice returns 0.
func (t *Timer) Stop() time.Duration {
	if t.stopped {
		return 0
	}
	t.stopped = true

	elapsed := t.Elapsed()
	if t.logger != nil {
		t.fields["operation"] = t.operation
		t.logger.write(t.level, t.operation+" completed", nil, elapsed, t.fields)
	}
	return elapsed
}

// StopWithError stops the timer and logs err with the elapsed time
func (t *Timer) StopWithError(err error) time.Duration {
	if t.stopped {
		return 0
	}
	t.stopped = true

	elapsed := t.Elapsed()
	if t.logger != nil {
		t.fields["operation"] = t.operation
		t.fields["success"] = false
		t.logger.write(LevelWarn, t.operation+" failed", err, elapsed, t.fields)
	}
	return elapsed
}

// IsRunning returns true if the timer has not been stopped
func (t *Timer) IsRunning() bool {
	return !t.stopped
}
