package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	mdwerror "github.com/msto63/fragment/foundation/core/error"
	"github.com/msto63/fragment/foundation/fragment/token"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"milliseconds", "250ms", 250 * time.Millisecond, false},
		{"seconds", "2s", 2 * time.Second, false},
		{"complex", "1m30s", 90 * time.Second, false},
		{"invalid", "soon", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	d := Duration{200 * time.Millisecond}
	result, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(result) != "200ms" {
		t.Errorf("MarshalText() = %v, want 200ms", string(result))
	}
}

func TestConfig_applyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	if cfg.General.LogLevel != "warn" {
		t.Errorf("General.LogLevel = %v, want warn", cfg.General.LogLevel)
	}
	if cfg.General.LogFormat != "console" {
		t.Errorf("General.LogFormat = %v, want console", cfg.General.LogFormat)
	}
	if cfg.Parser.Division != DivisionMultiplicative {
		t.Errorf("Parser.Division = %v, want %v", cfg.Parser.Division, DivisionMultiplicative)
	}
	if cfg.Output.Format != OutputText {
		t.Errorf("Output.Format = %v, want %v", cfg.Output.Format, OutputText)
	}
	if cfg.REPL.Prompt != "ready> " {
		t.Errorf("REPL.Prompt = %q, want %q", cfg.REPL.Prompt, "ready> ")
	}
	if cfg.History.Path != "./data/history.db" {
		t.Errorf("History.Path = %v, want ./data/history.db", cfg.History.Path)
	}
	if cfg.Watch.Debounce.Duration != 200*time.Millisecond {
		t.Errorf("Watch.Debounce = %v, want 200ms", cfg.Watch.Debounce.Duration)
	}
}

func TestConfig_applyDefaultsPreservesValues(t *testing.T) {
	cfg := &Config{
		General: GeneralConfig{LogLevel: "debug"},
		Parser:  ParserConfig{Division: DivisionUnsupported},
		Watch:   WatchConfig{Debounce: Duration{time.Second}},
	}
	cfg.applyDefaults()

	if cfg.General.LogLevel != "debug" {
		t.Errorf("General.LogLevel = %v, want debug", cfg.General.LogLevel)
	}
	if cfg.Parser.Division != DivisionUnsupported {
		t.Errorf("Parser.Division = %v, want %v", cfg.Parser.Division, DivisionUnsupported)
	}
	if cfg.Watch.Debounce.Duration != time.Second {
		t.Errorf("Watch.Debounce = %v, want 1s", cfg.Watch.Debounce.Duration)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "fragment.toml")

	configContent := `
[general]
log_level = "debug"
log_format = "json"

[parser]
trace = true
division = "unsupported"
warn_duplicate_params = true

[output]
format = "yaml"

[repl]
prompt = "fr> "
plain = true

[history]
enabled = true
path = "$FRAGMENT_TEST_DIR/history.db"

[watch]
debounce = "50ms"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	t.Setenv("FRAGMENT_TEST_DIR", tmpDir)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.LogLevel != "debug" || cfg.General.LogFormat != "json" {
		t.Errorf("General = %+v", cfg.General)
	}
	if !cfg.Parser.Trace || !cfg.Parser.WarnDuplicateParams || cfg.Parser.Division != DivisionUnsupported {
		t.Errorf("Parser = %+v", cfg.Parser)
	}
	if cfg.Output.Format != OutputYAML {
		t.Errorf("Output.Format = %v, want yaml", cfg.Output.Format)
	}
	if cfg.REPL.Prompt != "fr> " || !cfg.REPL.Plain {
		t.Errorf("REPL = %+v", cfg.REPL)
	}
	if want := filepath.Join(tmpDir, "history.db"); cfg.History.Path != want || !cfg.History.Enabled {
		t.Errorf("History = %+v, want path %s", cfg.History, want)
	}
	if cfg.Watch.Debounce.Duration != 50*time.Millisecond {
		t.Errorf("Watch.Debounce = %v, want 50ms", cfg.Watch.Debounce.Duration)
	}
	if cfg.Source != configPath {
		t.Errorf("Source = %v, want %v", cfg.Source, configPath)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    mdwerror.Code
	}{
		{"malformed toml", "[general\nlog_level = 1", mdwerror.CodeConfigError},
		{"unknown key", "[parser]\nspeed = 3", mdwerror.CodeInvalidConfig},
		{"bad division", "[parser]\ndivision = \"fractional\"", mdwerror.CodeInvalidConfig},
		{"bad output format", "[output]\nformat = \"xml\"", mdwerror.CodeInvalidConfig},
		{"bad log level", "[general]\nlog_level = \"loud\"", mdwerror.CodeInvalidConfig},
		{"bad duration", "[watch]\ndebounce = \"later\"", mdwerror.CodeConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "fragment.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write test config: %v", err)
			}

			_, err := Load(path)
			if !mdwerror.HasCode(err, tt.code) {
				t.Errorf("Load() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/fragment.toml")
	if !mdwerror.HasCode(err, mdwerror.CodeConfigError) {
		t.Errorf("Load() error = %v, want CONFIG_ERROR", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "custom.toml")
	if err := os.WriteFile(configPath, []byte("[output]\nformat = \"json\"\n"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	t.Setenv(EnvVar, configPath)
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.Output.Format != OutputJSON {
		t.Errorf("Output.Format = %v, want json", cfg.Output.Format)
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv(EnvVar, "")
	t.Setenv("HOME", t.TempDir())

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}
	defer os.Chdir(wd)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.Source != "" {
		t.Errorf("Source = %q, want defaults", cfg.Source)
	}
	if cfg.Parser.Division != DivisionMultiplicative {
		t.Errorf("Parser.Division = %v, want default", cfg.Parser.Division)
	}
}

func TestResolve_Explicit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "explicit.toml")
	if err := os.WriteFile(path, []byte("[repl]\nplain = true\n"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	t.Setenv(EnvVar, "/does/not/matter.toml")

	cfg, err := Resolve(path)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !cfg.REPL.Plain {
		t.Error("REPL.Plain = false, want true")
	}
}

func TestConfig_Precedence(t *testing.T) {
	div := token.BinaryOp(token.OpDiv)

	cfg := Default()
	if got := cfg.Precedence()(div); got != token.PrecedenceMultiplicative {
		t.Errorf("multiplicative division precedence = %d, want %d", got, token.PrecedenceMultiplicative)
	}

	cfg.Parser.Division = DivisionUnsupported
	if got := cfg.Precedence()(div); got != token.NoPrecedence {
		t.Errorf("unsupported division precedence = %d, want %d", got, token.NoPrecedence)
	}
}
