// Package config handles onenotestats configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the onenotestats configuration file.
type Config struct {
	// HierarchyFile is the exported hierarchy document to read notebooks from.
	HierarchyFile string `toml:"hierarchy_file"`

	// Separator joins fields of the dump file (defaults to a tab).
	Separator string `toml:"separator"`

	// PathSeparator joins location path segments (defaults to a backslash).
	PathSeparator string `toml:"path_separator"`

	// Database is an optional SQLite file that records every run.
	Database string `toml:"database"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	config.HierarchyFile = expandHome(config.HierarchyFile)
	config.Database = expandHome(config.Database)
	return &config, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/onenotestats/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "onenotestats", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "onenotestats", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

func expandHome(path string) string {
	if len(path) < 2 || path[0] != '~' || (path[1] != '/' && path[1] != '\\') {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
