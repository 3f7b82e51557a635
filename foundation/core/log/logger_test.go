// File: logger_test.go
// Title: Logger Tests
// Description: Tests for levels, formatters, context fields, error
//              integration and timers.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-02
// Modified: 2026-10-06
//
// Change History:
// - 2026-10-02 v0.1.0: Initial implementation
// - 2026-10-06 v0.1.0: LogError and console format tests

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	mdwerror "github.com/msto63/fragment/foundation/core/error"
)

func newBufferLogger(level Level, format Format) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewWithConfig(Config{Level: level, Format: format, Output: &buf}), &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"trace", LevelTrace, false},
		{"DEBUG", LevelDebug, false},
		{" info ", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"err", LevelError, false},
		{"fatal", LevelFatal, false},
		{"quiet", LevelOff, false},
		{"verbose", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestShouldLog(t *testing.T) {
	tests := []struct {
		level Level
		min   Level
		want  bool
	}{
		{LevelTrace, LevelTrace, true},
		{LevelTrace, LevelInfo, false},
		{LevelError, LevelWarn, true},
		{LevelError, LevelOff, false},
		{LevelOff, LevelTrace, false},
	}

	for _, tt := range tests {
		if got := tt.level.ShouldLog(tt.min); got != tt.want {
			t.Errorf("%v.ShouldLog(%v) = %v, want %v", tt.level, tt.min, got, tt.want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn, FormatText)

	logger.Trace("token")
	logger.Debug("debug")
	logger.Info("info")
	if buf.Len() != 0 {
		t.Errorf("messages below warn should be dropped, got %q", buf.String())
	}

	logger.Warn("careful")
	if !strings.Contains(buf.String(), "[WRN] careful") {
		t.Errorf("warn output = %q", buf.String())
	}
}

func TestTextFormatSortsFields(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatText)
	logger.WithName("lexer").Info("bound", Fields{"source": "a.fr", "line": 0})

	out := buf.String()
	if !strings.Contains(out, "{lexer}") {
		t.Errorf("missing logger name in %q", out)
	}
	if !strings.Contains(out, "line=0 source=a.fr") {
		t.Errorf("fields not sorted in %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("entries should be newline terminated")
	}
}

func TestJSONFormat(t *testing.T) {
	logger, buf := newBufferLogger(LevelTrace, FormatJSON)
	logger.WithCorrelationID("run-1").WithField("component", "parser").Trace("consume", Field("token", "NUMBER(1)"))

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}

	want := map[string]interface{}{
		"level":          "trace",
		"message":        "consume",
		"correlation_id": "run-1",
		"component":      "parser",
		"token":          "NUMBER(1)",
	}
	for k, v := range want {
		if decoded[k] != v {
			t.Errorf("%s = %v, want %v", k, decoded[k], v)
		}
	}
}

func TestLogfmtFormat(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatLogfmt)
	logger.Info("parsed", Fields{"source": "main.fr", "nodes": 3})

	out := buf.String()
	for _, want := range []string{"level=info", `message="parsed"`, "nodes=3", `source="main.fr"`} {
		if !strings.Contains(out, want) {
			t.Errorf("logfmt output %q missing %q", out, want)
		}
	}
}

func TestConsoleFormat(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatConsole)
	logger.ErrorWithErr("parse failed", errors.New("boom"))

	out := buf.String()
	if !strings.Contains(out, "parse failed") || !strings.Contains(out, "boom") {
		t.Errorf("console output = %q", out)
	}
}

func TestDerivedLoggersAreIndependent(t *testing.T) {
	base, buf := newBufferLogger(LevelInfo, FormatText)
	child := base.WithField("component", "lexer")

	base.Info("from base")
	if strings.Contains(buf.String(), "component=") {
		t.Errorf("base logger picked up child field: %q", buf.String())
	}

	buf.Reset()
	child.Info("from child")
	if !strings.Contains(buf.String(), "component=lexer") {
		t.Errorf("child logger lost its field: %q", buf.String())
	}
}

func TestLogError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
		wantParts []string
	}{
		{
			name:      "syntax error is informational",
			err:       mdwerror.New("unexpected token").WithCode(mdwerror.CodeUnexpectedToken).WithLocation("a.fr", 2),
			wantLevel: "[INF]",
			wantParts: []string{"error_code=UNEXPECTED_TOKEN", "line=2", "source=a.fr"},
		},
		{
			name:      "io error is an error",
			err:       mdwerror.New("no such file").WithCode(mdwerror.CodeSourceNotFound),
			wantLevel: "[ERR]",
			wantParts: []string{"error_code=SOURCE_NOT_FOUND"},
		},
		{
			name:      "plain error",
			err:       errors.New("plain"),
			wantLevel: "[ERR]",
			wantParts: []string{"plain"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger(LevelTrace, FormatText)
			logger.LogError(tt.err)

			out := buf.String()
			if !strings.Contains(out, tt.wantLevel) {
				t.Errorf("LogError() level missing %q in %q", tt.wantLevel, out)
			}
			for _, part := range tt.wantParts {
				if !strings.Contains(out, part) {
					t.Errorf("LogError() output missing %q in %q", part, out)
				}
			}
		})
	}

	logger, buf := newBufferLogger(LevelTrace, FormatText)
	logger.LogError(nil)
	if buf.Len() != 0 {
		t.Error("LogError(nil) should not log")
	}
}

func TestNop(t *testing.T) {
	logger := NewNop()
	if logger.IsLevelEnabled(LevelFatal) {
		t.Error("nop logger should not enable any level")
	}
	logger.Error("dropped")
}

func TestTimer(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatText)

	timer := logger.StartTimer("parse a.fr").WithField("nodes", 2)
	time.Sleep(time.Millisecond)
	elapsed := timer.Stop()

	if elapsed <= 0 {
		t.Errorf("Stop() = %v, want positive duration", elapsed)
	}
	if timer.IsRunning() {
		t.Error("timer should be stopped")
	}
	if again := timer.Stop(); again != 0 {
		t.Errorf("second Stop() = %v, want 0", again)
	}

	out := buf.String()
	for _, want := range []string{"parse a.fr completed", "nodes=2", "duration="} {
		if !strings.Contains(out, want) {
			t.Errorf("timer output %q missing %q", out, want)
		}
	}
}

func TestTimerStopWithError(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatText)

	logger.StartTimer("parse b.fr").StopWithError(errors.New("expected number"))

	out := buf.String()
	if !strings.Contains(out, "[WRN] parse b.fr failed") || !strings.Contains(out, "expected number") {
		t.Errorf("StopWithError() output = %q", out)
	}
}
