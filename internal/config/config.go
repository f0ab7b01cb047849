// =============================================================================
// samcut - Configuration Module
// =============================================================================
//
// This module loads the optional YAML configuration file and applies defaults.
// Every setting can also be given on the command line; flags that were set
// explicitly override the file (see cmd/root.go).
//
// EXAMPLE (samcut.yaml):
//   header: true
//   delim: ","
//   fill: "NA"
//   fields: [n, std, NM]
//   on_error: skip
//   reject_log: ./rejected.log
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ginjaninja78/samcut/internal/fields"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// ERROR POLICY
// =============================================================================

// ErrorPolicy decides what happens to the stream when a line fails to parse.
type ErrorPolicy string

const (
	// PolicyAbort stops at the first malformed line.
	PolicyAbort ErrorPolicy = "abort"

	// PolicySkip logs the malformed line and continues with the next one.
	PolicySkip ErrorPolicy = "skip"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the run configuration.
type Config struct {
	// =========================================================================
	// OUTPUT FORMAT
	// =========================================================================

	// Header emits one leading row with the requested field names.
	// Default: false
	Header bool `yaml:"header"`

	// Delim is the output delimiter. Must resolve to a single character.
	// Aliases: "\\t", "tab", "comma", "pipe", "space".
	// Default: "\t"
	Delim string `yaml:"delim"`

	// Fill replaces fields a record does not carry.
	// Default: "."
	Fill string `yaml:"fill"`

	// Fields is the ordered list of field names to print.
	// Default: [std]
	Fields []string `yaml:"fields"`

	// =========================================================================
	// STREAM SETTINGS
	// =========================================================================

	// OnError is the stream policy for malformed lines: "abort" or "skip".
	// Default: "abort"
	OnError ErrorPolicy `yaml:"on_error"`

	// RejectLog is an optional file listing lines skipped under "skip".
	RejectLog string `yaml:"reject_log"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging on stderr.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFile is an optional path that receives JSON log entries as well.
	LogFile string `yaml:"log_file"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{Fill: "."}
	ApplyDefaults(cfg)
	return cfg
}

// Load reads the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file. Empty means defaults.
//
// RETURNS:
//   - A pointer to the Config struct with defaults applied.
//   - An error if the file cannot be read, parsed, or is invalid.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start from the defaults so keys absent from the file keep them.
	// An explicit `fill: ""` stays empty.
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// ApplyDefaults sets default values for any unset configuration options.
// Fill is left alone: an empty fill is a valid choice.
func ApplyDefaults(cfg *Config) {
	if cfg.Delim == "" {
		cfg.Delim = "\t"
	}
	if cfg.OnError == "" {
		cfg.OnError = PolicyAbort
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// Validate checks the configuration after defaults have been applied.
func Validate(cfg *Config) error {
	if _, err := ParseDelimiter(cfg.Delim); err != nil {
		return err
	}

	switch cfg.OnError {
	case PolicyAbort, PolicySkip:
	default:
		return fmt.Errorf("on_error must be %q or %q, got %q", PolicyAbort, PolicySkip, cfg.OnError)
	}

	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}

	if cfg.RejectLog != "" && cfg.OnError != PolicySkip {
		return errors.New("reject_log requires on_error: skip")
	}

	return nil
}

// =============================================================================
// DELIMITER
// =============================================================================

// ParseDelimiter resolves a delimiter setting to a single character.
// Handles the spellings a shell makes awkward to type.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "\\t", "tab", "TAB":
		return '\t', nil
	case "comma":
		return ',', nil
	case "pipe", "PIPE":
		return '|', nil
	case "space":
		return ' ', nil
	case "semicolon":
		return ';', nil
	}

	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// Delimiter returns the resolved delimiter. Call Validate first.
func (c *Config) Delimiter() rune {
	r, err := ParseDelimiter(c.Delim)
	if err != nil {
		return '\t'
	}
	return r
}

// Format returns the row formatting settings. Call Validate first.
func (c *Config) Format() fields.FormatConfig {
	return fields.FormatConfig{
		Delimiter: c.Delimiter(),
		Fill:      c.Fill,
		Header:    c.Header,
	}
}
