// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the Velvet
// client.
//
// Configuration is loaded from a single YAML file specified by:
//   - VELVET_CONFIG environment variable, or
//   - --config flag passed to the command, or
//   - ~/.config/velvet/config.yaml when present.
//
// A missing file is not an error: every field has a usable default,
// so a fresh install runs with no configuration at all.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultServerURL is the service endpoint used when no configuration
// overrides it.
const DefaultServerURL = "http://localhost:8000"

// Config is the client configuration.
type Config struct {
	// ServerURL is the base URL of the booking service, without the
	// /api/v1 suffix.
	ServerURL string `yaml:"server_url"`

	// DefaultPage is the page the viewer opens on when the command
	// line names none. One of: events, my-bookings, profile, admin.
	DefaultPage string `yaml:"default_page"`

	// LogLevel sets the minimum log level: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// LogFile routes logs to a file instead of stderr. The viewer
	// always logs to a file or the in-app status line — writing to
	// stderr would corrupt the terminal display.
	LogFile string `yaml:"log_file"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		ServerURL:   DefaultServerURL,
		DefaultPage: "events",
		LogLevel:    "info",
	}
}

// DefaultPath returns the conventional config file location:
// $XDG_CONFIG_HOME/velvet/config.yaml, falling back to
// ~/.config/velvet/config.yaml.
func DefaultPath() string {
	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "velvet", "config.yaml")
}

// Load resolves the config file path and loads it. Resolution order:
// explicitPath (the --config flag) when non-empty, then VELVET_CONFIG,
// then the conventional location. Only an explicitly named file is
// required to exist.
func Load(explicitPath string) (*Config, error) {
	if explicitPath != "" {
		return LoadFile(explicitPath)
	}
	if envPath := os.Getenv("VELVET_CONFIG"); envPath != "" {
		return LoadFile(envPath)
	}

	conventional := DefaultPath()
	if conventional == "" {
		return Default(), nil
	}
	loaded, err := LoadFile(conventional)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return loaded, err
}

// LoadFile loads configuration from a specific file path, merging
// over the defaults. Environment variables do not override file
// values.
func LoadFile(path string) (*Config, error) {
	loaded := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := loaded.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return loaded, nil
}

func (c *Config) validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server_url must not be empty")
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

// Level converts the configured log level to a slog level.
func (c *Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
