// ============================================================================
// Fragment - Language Front End
// ============================================================================
//
// Package:     repl
// Description: Transcript entries and message types for the parser TUI
// Author:      msto63
// Created:     2026-10-11
// License:     MIT
// ============================================================================

package repl

import (
	"github.com/msto63/fragment/foundation/fragment"
)

// Entry is one submitted line and what parsing it produced
type Entry struct {
	Input string
	Unit  *fragment.Unit
	Err   error
}

// parsedMsg is sent when a submitted line has been parsed
type parsedMsg struct {
	entry Entry
}
