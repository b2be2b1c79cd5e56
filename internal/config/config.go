// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads abel's configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/jeranaias/abel-tui/internal/cloud"
	"github.com/jeranaias/abel-tui/internal/util"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Environment variables read at startup.
const (
	EnvAPIKey         = "OPENAI_API_KEY"
	EnvAPIKeyFallback = "VITE_OPENAI_API_KEY"
	EnvEndpoint       = "ABEL_ENDPOINT"
	EnvBackend        = "ABEL_STORAGE_BACKEND"
	EnvDataDir        = "ABEL_DATA_DIR"
	EnvLogLevel       = "ABEL_LOG_LEVEL"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete abel configuration.
type Config struct {
	API     APIConfig     `toml:"api"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`

	// APIKey is filled from the environment only.
	APIKey string `toml:"-"`
}

// APIConfig configures the completion endpoint. The model and token cap are
// fixed in package cloud.
type APIConfig struct {
	Endpoint string `toml:"endpoint"`
}

// StorageConfig selects where conversations are kept.
type StorageConfig struct {
	// Backend is one of "file", "sqlite" or "memory".
	Backend string `toml:"backend"`
	// Dir holds the key files or the SQLite database.
	Dir string `toml:"dir"`
}

// LogConfig configures the log file. The TUI owns the terminal, so logs never
// go to stdout.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			Endpoint: cloud.DefaultEndpoint,
		},
		Storage: StorageConfig{
			Backend: BackendFile,
			Dir:     "~/.abel/data",
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.abel/abel.log",
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns ~/.abel.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "resolve home directory")
	}
	return filepath.Join(home, ".abel"), nil
}

// ConfigPath returns the default config file path.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the config file at path (the default path when empty), loads
// .env from the working directory, applies environment overrides, expands
// paths and validates the result. A missing config file is not an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		if !errors.Is(err, os.ErrNotExist) || explicit {
			return nil, err
		}
	}

	// .env is optional; only a malformed one is worth reporting.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrap(err, "load .env")
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.ExpandPaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg. Keys absent from the file keep the
// values already in cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		return errors.Wrapf(err, "stat config %s", path)
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return errors.Wrapf(err, "decode config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return errors.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// ApplyEnvOverrides copies environment settings into the config:
//   - OPENAI_API_KEY, or VITE_OPENAI_API_KEY: the completion API key
//   - ABEL_ENDPOINT: overrides api.endpoint
//   - ABEL_STORAGE_BACKEND: overrides storage.backend
//   - ABEL_DATA_DIR: overrides storage.dir
//   - ABEL_LOG_LEVEL: overrides log.level
func (c *Config) ApplyEnvOverrides() {
	c.APIKey = strings.TrimSpace(os.Getenv(EnvAPIKey))
	if c.APIKey == "" {
		c.APIKey = strings.TrimSpace(os.Getenv(EnvAPIKeyFallback))
	}
	if v := os.Getenv(EnvEndpoint); v != "" {
		c.API.Endpoint = v
	}
	if v := os.Getenv(EnvBackend); v != "" {
		c.Storage.Backend = strings.ToLower(v)
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		c.Storage.Dir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
}

// ExpandPaths resolves a leading ~ in the storage and log paths.
func (c *Config) ExpandPaths() error {
	dir, err := util.ExpandHome(c.Storage.Dir)
	if err != nil {
		return err
	}
	c.Storage.Dir = dir

	file, err := util.ExpandHome(c.Log.File)
	if err != nil {
		return err
	}
	c.Log.File = file
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError is a problem with a single config field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors collects every field problem found by Validate.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

var validLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true, "disabled": true,
}

// Validate checks field values. It returns ValidateErrors when anything is
// wrong. A missing API key is deliberately not validated here.
func (c *Config) Validate() error {
	var errs ValidateErrors

	switch c.Storage.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		errs = append(errs, ValidationError{
			Field:   "storage.backend",
			Message: fmt.Sprintf("invalid backend %q, must be one of: file, sqlite, memory", c.Storage.Backend),
		})
	}

	if c.Storage.Backend != BackendMemory && c.Storage.Dir == "" {
		errs = append(errs, ValidationError{Field: "storage.dir", Message: "must not be empty"})
	}

	if c.API.Endpoint == "" {
		errs = append(errs, ValidationError{Field: "api.endpoint", Message: "must not be empty"})
	} else if !strings.HasPrefix(c.API.Endpoint, "http://") && !strings.HasPrefix(c.API.Endpoint, "https://") {
		errs = append(errs, ValidationError{
			Field:   "api.endpoint",
			Message: fmt.Sprintf("%q is not an http(s) URL", c.API.Endpoint),
		})
	}

	if !validLevels[c.Log.Level] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level %q", c.Log.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
