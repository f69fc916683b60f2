// Package config loads focal's YAML configuration.
//
// The file lives at ~/.focal/config.yaml by default and every field is
// optional; missing values fall back to the defaults so a fresh install
// works with no file at all.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Config holds tool-wide settings shared by the CLI and the TUI.
type Config struct {
	// DBPath is the SQLite catalog location.
	DBPath string `yaml:"db_path"`

	// SourceRoots are directories relative source references are resolved
	// against for source-aligned projection.
	SourceRoots []string `yaml:"source_roots"`

	// MaxDepth overrides the depth cutoff for depth-reduced tables.
	// Zero means the built-in default.
	MaxDepth int `yaml:"max_depth"`

	// RowLimit caps the rows rendered per table in the TUI. Zero means
	// unlimited.
	RowLimit int `yaml:"row_limit"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	homeDir, _ := os.UserHomeDir()
	return Config{
		DBPath: filepath.Join(homeDir, ".focal", "focal.db"),
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".focal", "config.yaml")
}

// Load reads the config file at path, layered over the defaults. A
// missing file is not an error; malformed YAML is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = Default().DBPath
	}
	return cfg, nil
}
