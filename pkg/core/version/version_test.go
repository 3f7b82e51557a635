package version

import (
	"regexp"
	"runtime"
	"strings"
	"testing"
)

// semverRegex validates semantic versioning format
var semverRegex = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

func TestVersionConstants(t *testing.T) {
	tests := []struct {
		name    string
		version string
	}{
		{"Tool", Tool},
		{"Lexer", Lexer},
		{"Parser", Parser},
		{"History", History},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !semverRegex.MatchString(tt.version) {
				t.Errorf("%s version %q does not match semver format (x.y.z)", tt.name, tt.version)
			}
		})
	}
}

func TestComponentVersion(t *testing.T) {
	tests := []struct {
		name      string
		component string
		expected  string
	}{
		{"lexer", "lexer", Lexer},
		{"parser", "parser", Parser},
		{"history", "history", History},
		{"unknown component", "codegen", Tool},
		{"empty component", "", Tool},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := ComponentVersion(tt.component); result != tt.expected {
				t.Errorf("ComponentVersion(%q) = %q, want %q", tt.component, result, tt.expected)
			}
		})
	}
}

func TestCurrent(t *testing.T) {
	info := Current()
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
	if info.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("Platform = %q", info.Platform)
	}
	if s := info.String(); !strings.HasPrefix(s, "fragment v"+Tool) {
		t.Errorf("String() = %q", s)
	}
}
