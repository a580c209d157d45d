// Package config handles configuration loading and validation for todo.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/colonyops/todo/internal/core/styles"
)

// Backend selects the store implementation.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendCSV    Backend = "csv"
)

// IsValid reports whether b names a supported backend.
func (b Backend) IsValid() bool {
	switch b {
	case BackendSQLite, BackendCSV:
		return true
	default:
		return false
	}
}

// Config holds the application configuration.
type Config struct {
	Backend Backend      `yaml:"backend" toml:"backend"`
	Theme   string       `yaml:"theme"   toml:"theme"`
	SQLite  SQLiteConfig `yaml:"sqlite"  toml:"sqlite"`
	CSV     CSVConfig    `yaml:"csv"     toml:"csv"`
	DataDir string       `yaml:"-"       toml:"-"` // set by caller, not from config file
}

// SQLiteConfig configures the relational backend.
type SQLiteConfig struct {
	DSN          string `yaml:"dsn"            toml:"dsn"` // path or file: URI, defaults to <data-dir>/todo.db
	MaxOpenConns int    `yaml:"max_open_conns" toml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns" toml:"max_idle_conns"`
	BusyTimeout  int    `yaml:"busy_timeout"   toml:"busy_timeout"` // milliseconds
}

// CSVConfig configures the flat-file backend.
type CSVConfig struct {
	Path string `yaml:"path" toml:"path"` // defaults to <data-dir>/todo.csv
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Backend: BackendSQLite,
		Theme:   styles.DefaultTheme,
		SQLite: SQLiteConfig{
			MaxOpenConns: 1,
			MaxIdleConns: 1,
			BusyTimeout:  5000,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
// Files ending in .toml are decoded as TOML, everything else as YAML.
func Load(configPath, dataDir string) (*Config, error) {
	cfg, err := Read(configPath, dataDir)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Read is Load without validation. It only fails when the file cannot be
// read or parsed, so callers can report every problem through ValidateDeep.
func Read(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := decode(configPath, data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.DataDir = dataDir

	// Apply defaults for zero values
	cfg.applyDefaults()

	return &cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	c.Backend = Backend(strings.ToLower(strings.TrimSpace(string(c.Backend))))
	if c.Backend == "" {
		c.Backend = defaults.Backend
	}
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.SQLite.MaxOpenConns == 0 {
		c.SQLite.MaxOpenConns = defaults.SQLite.MaxOpenConns
	}
	if c.SQLite.MaxIdleConns == 0 {
		c.SQLite.MaxIdleConns = defaults.SQLite.MaxIdleConns
	}
	if c.SQLite.BusyTimeout == 0 {
		c.SQLite.BusyTimeout = defaults.SQLite.BusyTimeout
	}
	if c.SQLite.DSN == "" && c.DataDir != "" {
		c.SQLite.DSN = filepath.Join(c.DataDir, "todo.db")
	}
	if c.CSV.Path == "" && c.DataDir != "" {
		c.CSV.Path = filepath.Join(c.DataDir, "todo.csv")
	}
}

// SetBackend overrides the configured backend, e.g. from a command line flag.
func (c *Config) SetBackend(name string) error {
	b := Backend(strings.ToLower(strings.TrimSpace(name)))
	if !b.IsValid() {
		return fmt.Errorf("unknown backend %q (want %s or %s)", name, BackendSQLite, BackendCSV)
	}
	c.Backend = b
	return nil
}

// StoreLocation returns the DSN or file path of the selected backend.
func (c *Config) StoreLocation() string {
	if c.Backend == BackendCSV {
		return c.CSV.Path
	}
	return c.SQLite.DSN
}
