// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults used when neither a flag, the config file nor the environment sets a value
const (
	DefaultStorageKey    = "resume-builder-storage"
	DefaultGenerationURL = "http://localhost:8080"
	DefaultPort          = 8080
	DefaultExportFormat  = "tex"
	DefaultRateLimit     = 10
)

// Environment variables read by FromEnv
const (
	EnvDatabaseURL   = "DATABASE_URL"
	EnvAPIKey        = "GEMINI_API_KEY"
	EnvGenerationURL = "RESUME_WIZARD_GENERATION_URL"
	EnvStateDir      = "RESUME_WIZARD_STATE_DIR"
)

var exportFormats = []string{"tex", "pdf", "chrome-pdf"}

// Config represents the CLI configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Persistence
	StateDir    string `json:"state_dir,omitempty" yaml:"state_dir,omitempty"`       // Directory holding the saved wizard state
	StorageKey  string `json:"storage_key,omitempty" yaml:"storage_key,omitempty"`   // Name of the persisted blob
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL; replaces the state file when set

	// Generation
	GenerationURL string `json:"generation_url,omitempty" yaml:"generation_url,omitempty"` // Base URL of the generation API
	APIKey        string `json:"api_key,omitempty" yaml:"api_key,omitempty"`               // Gemini API key, used by serve

	// Server
	Port              int `json:"port,omitempty" yaml:"port,omitempty"`
	RateLimitPerMin   int `json:"rate_limit_per_minute,omitempty" yaml:"rate_limit_per_minute,omitempty"` // Generation requests per client per minute

	// Export
	ExportFormat string `json:"export_format,omitempty" yaml:"export_format,omitempty"` // tex, pdf or chrome-pdf
	OutputDir    string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`       // Where export writes artifacts
	Template     string `json:"template,omitempty" yaml:"template,omitempty"`           // Path to LaTeX template

	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON or YAML file; the extension picks the format.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Defaults returns the built-in values
func Defaults() Config {
	return Config{
		StorageKey:      DefaultStorageKey,
		GenerationURL:   DefaultGenerationURL,
		Port:            DefaultPort,
		ExportFormat:    DefaultExportFormat,
		RateLimitPerMin: DefaultRateLimit,
	}
}

// FromEnv returns the built-in defaults overlaid with any values set in the environment
func FromEnv() Config {
	cfg := Defaults()
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv(EnvGenerationURL); v != "" {
		cfg.GenerationURL = v
	}
	if v := os.Getenv(EnvStateDir); v != "" {
		cfg.StateDir = v
	}
	return cfg
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.RateLimitPerMin < 0 {
		return fmt.Errorf("config error: 'rate_limit_per_minute' must be non-negative")
	}

	if c.ExportFormat != "" {
		valid := false
		for _, f := range exportFormats {
			if c.ExportFormat == f {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("config error: 'export_format' must be one of %s", strings.Join(exportFormats, ", "))
		}
	}

	if strings.ContainsAny(c.StorageKey, `/\`) {
		return fmt.Errorf("config error: 'storage_key' must not contain path separators")
	}

	// Validate file paths exist (if specified)
	if c.Template != "" {
		if _, err := os.Stat(c.Template); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.Template)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.StateDir == "" {
		result.StateDir = defaults.StateDir
	}
	if result.StorageKey == "" {
		result.StorageKey = defaults.StorageKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.GenerationURL == "" {
		result.GenerationURL = defaults.GenerationURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.ExportFormat == "" {
		result.ExportFormat = defaults.ExportFormat
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.RateLimitPerMin == 0 {
		result.RateLimitPerMin = defaults.RateLimitPerMin
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
