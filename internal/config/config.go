// Package config loads and validates the specmonkey configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Repository identifies a git repository the index run interacts with.
type Repository struct {
	// URL is the remote the checkout was cloned from
	URL string `yaml:"url"`

	// Branch is the branch to pull from or push to
	Branch string `yaml:"branch"`
}

// HistoryConfig configures the local crawl-run journal.
type HistoryConfig struct {
	// Enabled turns run journaling on
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the journal database
	DBPath string `yaml:"db_path"`
}

// Config represents the specmonkey configuration options
type Config struct {
	// Extensions is the list of file extensions to scan; empty scans all
	// files. The leading dot is optional ("cpp" and ".cpp" are the same).
	Extensions []string `yaml:"extensions"`

	// Domains is the whitelist of domains to index; empty accepts every
	// URL with a resolvable host
	Domains []string `yaml:"domains"`

	// ExcludePaths lists root-relative subpaths to skip during scanning
	ExcludePaths []string `yaml:"exclude_paths"`

	// SourceRepository is the repository being scanned
	SourceRepository Repository `yaml:"source_repository"`

	// IndexRepository is the repository the index is written into
	IndexRepository Repository `yaml:"index_repository"`

	// MaxConcurrency bounds the crawl worker pool (0 = one worker per file)
	MaxConcurrency int `yaml:"max_concurrency"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// History configures the crawl-run journal
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Extensions:   []string{"h", "cpp"},
		Domains:      []string{"example.com"},
		ExcludePaths: []string{".git"},
		SourceRepository: Repository{
			URL:    "https://github.com/org/source-repo",
			Branch: "main",
		},
		IndexRepository: Repository{
			URL:    "https://github.com/org/index-repo",
			Branch: "main",
		},
		MaxConcurrency: 0,
		LogLevel:       "info",
		History: HistoryConfig{
			Enabled: true,
			DBPath:  ".specmonkey/history.db",
		},
	}
}

// LoadConfig loads configuration from the specified file path. The file
// must exist; fields left unset fall back to defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{
		LogLevel: "info",
		History: HistoryConfig{
			DBPath: ".specmonkey/history.db",
		},
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.History.DBPath == "" {
		cfg.History.DBPath = ".specmonkey/history.db"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteDefault writes the default configuration to the given path.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to serialize default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.MaxConcurrency < 0 {
		return fmt.Errorf("max_concurrency must be >= 0, got %d", c.MaxConcurrency)
	}

	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.History.Enabled && c.History.DBPath == "" {
		return fmt.Errorf("history.db_path cannot be empty when history is enabled")
	}

	return nil
}
