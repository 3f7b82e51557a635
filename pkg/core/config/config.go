package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	mdwerror "github.com/msto63/fragment/foundation/core/error"
	mdwlog "github.com/msto63/fragment/foundation/core/log"
	"github.com/msto63/fragment/foundation/fragment/token"
)

// EnvVar names the environment variable holding the config path
const EnvVar = "FRAGMENT_CONFIG"

// Division modes for the parser
const (
	DivisionMultiplicative = "multiplicative"
	DivisionUnsupported    = "unsupported"
)

// Output formats for rendered trees
const (
	OutputText = "text"
	OutputYAML = "yaml"
	OutputJSON = "json"
)

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general"`
	Parser  ParserConfig  `toml:"parser"`
	Output  OutputConfig  `toml:"output"`
	REPL    REPLConfig    `toml:"repl"`
	History HistoryConfig `toml:"history"`
	Watch   WatchConfig   `toml:"watch"`

	// Path of the file the config was loaded from, empty for defaults
	Source string `toml:"-"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// ParserConfig holds front-end settings
type ParserConfig struct {
	Trace               bool   `toml:"trace"`
	Division            string `toml:"division"`
	WarnDuplicateParams bool   `toml:"warn_duplicate_params"`
}

// OutputConfig controls how parsed trees are printed
type OutputConfig struct {
	Format string `toml:"format"`
}

// REPLConfig holds interactive session settings
type REPLConfig struct {
	Prompt string `toml:"prompt"`
	Plain  bool   `toml:"plain"`
}

// HistoryConfig holds parse history settings
type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// WatchConfig holds file watcher settings
type WatchConfig struct {
	Debounce Duration `toml:"debounce"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, mdwerror.Newf("config file not found: %s", path).
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to parse config").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Load").
			WithDetail("path", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, mdwerror.Newf("unknown config keys: %s", strings.Join(keys, ", ")).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()
	cfg.Source = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SearchPaths returns the locations tried when no path is given
func SearchPaths() []string {
	paths := []string{
		"./fragment.toml",
		"./configs/fragment.toml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "fragment", "config.toml"))
	}
	return paths
}

// LoadFromEnv loads configuration from FRAGMENT_CONFIG or the first
// existing search path, falling back to defaults when none exists
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}
	for _, p := range SearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// Resolve loads the explicitly given path, or searches like LoadFromEnv
func Resolve(explicit string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	return LoadFromEnv()
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "console"
	}

	// Parser
	if c.Parser.Division == "" {
		c.Parser.Division = DivisionMultiplicative
	}

	// Output
	if c.Output.Format == "" {
		c.Output.Format = OutputText
	}

	// REPL
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = "ready> "
	}

	// History
	if c.History.Path == "" {
		c.History.Path = "./data/history.db"
	}

	// Watch
	if c.Watch.Debounce.Duration == 0 {
		c.Watch.Debounce.Duration = 200 * time.Millisecond
	}
}

// expandEnvVars expands environment variables in configuration values
func (c *Config) expandEnvVars() {
	c.History.Path = os.ExpandEnv(c.History.Path)
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	invalid := func(key string, value interface{}) error {
		return mdwerror.Newf("invalid value %v for %s", value, key).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.Validate").
			WithDetail("key", key)
	}

	if _, err := mdwlog.ParseLevel(c.General.LogLevel); err != nil {
		return invalid("general.log_level", c.General.LogLevel)
	}
	if _, err := mdwlog.ParseFormat(c.General.LogFormat); err != nil {
		return invalid("general.log_format", c.General.LogFormat)
	}

	switch c.Parser.Division {
	case DivisionMultiplicative, DivisionUnsupported:
	default:
		return invalid("parser.division", c.Parser.Division)
	}

	switch c.Output.Format {
	case OutputText, OutputYAML, OutputJSON:
	default:
		return invalid("output.format", c.Output.Format)
	}

	if c.Watch.Debounce.Duration < 0 {
		return invalid("watch.debounce", c.Watch.Debounce.Duration)
	}
	return nil
}

// Precedence returns the precedence table selected by parser.division
func (c *Config) Precedence() token.PrecedenceFunc {
	if c.Parser.Division == DivisionUnsupported {
		return token.ClassicPrecedenceOf
	}
	return token.PrecedenceOf
}
