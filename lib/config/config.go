// Copyright 2026 The Tapestry Tools Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the MCP server.
//
// Configuration is loaded from a single YAML file specified by the
// GDOCS_MCP_CONFIG environment variable or the --config flag. There is
// no file discovery and environment variables do not override file
// values. When no file is specified the compiled-in defaults apply,
// so a client can spawn the server with nothing but the service
// account key in the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tapestry-tools/gdocs-mcp/lib/fault"
)

// EnvKeyConfig names the environment variable holding the config file
// path.
const EnvKeyConfig = "GDOCS_MCP_CONFIG"

// Config is the server configuration.
type Config struct {
	// API configures the Google API endpoints and HTTP behavior.
	API APIConfig `yaml:"api"`

	// Auth configures the token exchange.
	Auth AuthConfig `yaml:"auth"`

	// Log configures structured logging.
	Log LogConfig `yaml:"log"`
}

// APIConfig configures the Google API gateway.
type APIConfig struct {
	// DocsBaseURL overrides the Google Docs API root. Must use HTTPS.
	// Default: https://docs.googleapis.com/v1
	DocsBaseURL string `yaml:"docs_base_url"`

	// DriveBaseURL overrides the Google Drive API root. Must use HTTPS.
	// Default: https://www.googleapis.com/drive/v3
	DriveBaseURL string `yaml:"drive_base_url"`

	// Timeout bounds every outbound HTTP request, as a Go duration
	// string. Default: 30s
	Timeout string `yaml:"timeout"`
}

// AuthConfig configures the token exchange.
type AuthConfig struct {
	// Scopes are the OAuth scopes requested in the signed assertion.
	// Default: documents and drive access.
	Scopes []string `yaml:"scopes"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	// Level is the minimum log level: debug, info, warn, or error.
	// Default: info
	Level string `yaml:"level"`
}

// Default returns the default configuration. These defaults make the
// server fully functional with no config file; a file is only needed
// to override endpoints, scopes, or logging.
func Default() *Config {
	return &Config{
		API: APIConfig{
			Timeout: "30s",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the path in GDOCS_MCP_CONFIG. When the
// variable is unset the defaults are returned; when it is set the file
// must exist and parse.
func Load() (*Config, error) {
	path := os.Getenv(EnvKeyConfig)
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path. The file is
// the single source of truth: environment variables do not override
// its values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fault.Config("reading config file: %w", err)
	}

	cfg := Default()
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fault.Config("parsing config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values that would fail later
// in confusing ways: non-HTTPS endpoints, unparseable durations,
// unknown log levels.
func (c *Config) Validate() error {
	for _, u := range []string{c.API.DocsBaseURL, c.API.DriveBaseURL} {
		if u != "" && !strings.HasPrefix(u, "https://") {
			return fault.Config("API base URLs must use HTTPS (got %q)", u)
		}
	}
	if c.API.Timeout != "" {
		if _, err := time.ParseDuration(c.API.Timeout); err != nil {
			return fault.Config("invalid api.timeout %q: %w", c.API.Timeout, err)
		}
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// HTTPTimeout returns the parsed request timeout. Validate must have
// accepted the configuration first.
func (c *Config) HTTPTimeout() time.Duration {
	if c.API.Timeout == "" {
		return 30 * time.Second
	}
	timeout, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return timeout
}

// LogLevel translates the configured level name to a slog.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	switch strings.ToLower(c.Log.Level) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fault.Config("unknown log level %q (use debug, info, warn, or error)", c.Log.Level)
	}
}

// String renders the effective configuration for debug logging,
// without secrets (the config file never holds credentials).
func (c *Config) String() string {
	return fmt.Sprintf("api{docs=%q drive=%q timeout=%q} auth{scopes=%v} log{level=%q}",
		c.API.DocsBaseURL, c.API.DriveBaseURL, c.API.Timeout, c.Auth.Scopes, c.Log.Level)
}
