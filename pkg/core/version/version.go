// ============================================================================
// Fragment - Language Front End
// ============================================================================
//
// Package:     version
// Description: Central version management for the front-end components
// Author:      msto63
// Created:     2026-10-06
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants for the Fragment components
const (
	// Tool version
	Tool = "0.1.0"

	// Language revision accepted by the parser
	Language = "1"

	// Component versions
	Lexer   = "0.1.0"
	Parser  = "0.1.0"
	History = "0.1.0"
)

// Set at build time with -ldflags "-X ..."
var (
	GitCommit = "development"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "lexer":
		return Lexer
	case "parser":
		return Parser
	case "history":
		return History
	default:
		return Tool
	}
}

// Info describes the running binary
type Info struct {
	Tool      string
	Language  string
	GitCommit string
	BuildDate string
	GoVersion string
	Platform  string
}

// Current returns build information for this binary
func Current() Info {
	return Info{
		Tool:      Tool,
		Language:  Language,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a one-line summary
func (i Info) String() string {
	return fmt.Sprintf("fragment v%s (language %s, %s)", i.Tool, i.Language, i.GitCommit)
}
