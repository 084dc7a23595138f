// Copyright 2026 The Tapestry Tools Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tapestry-tools/gdocs-mcp/lib/fault"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gdocs-mcp.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestLoad_DefaultsWhenEnvUnset(t *testing.T) {
	t.Setenv(EnvKeyConfig, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPTimeout() != 30*time.Second {
		t.Errorf("HTTPTimeout = %v, want 30s", cfg.HTTPTimeout())
	}
	level, err := cfg.LogLevel()
	if err != nil {
		t.Fatalf("LogLevel: %v", err)
	}
	if level != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", level)
	}
}

func TestLoad_EnvPointsToFile(t *testing.T) {
	path := writeConfigFile(t, `
api:
  timeout: 5s
log:
  level: debug
`)
	t.Setenv(EnvKeyConfig, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPTimeout() != 5*time.Second {
		t.Errorf("HTTPTimeout = %v, want 5s", cfg.HTTPTimeout())
	}
	level, _ := cfg.LogLevel()
	if level != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", level)
	}
}

func TestLoad_MissingFileFails(t *testing.T) {
	t.Setenv(EnvKeyConfig, filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	if err == nil {
		t.Fatal("Load succeeded with a missing config file")
	}
	if got := fault.CategoryOf(err); got != fault.CategoryConfig {
		t.Errorf("category = %q, want %q", got, fault.CategoryConfig)
	}
}

func TestLoadFile_OverridesEndpoints(t *testing.T) {
	path := writeConfigFile(t, `
api:
  docs_base_url: https://docs.internal.example.com/v1
  drive_base_url: https://drive.internal.example.com/v3
auth:
  scopes:
    - https://www.googleapis.com/auth/documents.readonly
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.API.DocsBaseURL != "https://docs.internal.example.com/v1" {
		t.Errorf("DocsBaseURL = %q", cfg.API.DocsBaseURL)
	}
	if len(cfg.Auth.Scopes) != 1 || cfg.Auth.Scopes[0] != "https://www.googleapis.com/auth/documents.readonly" {
		t.Errorf("Scopes = %v", cfg.Auth.Scopes)
	}
}

func TestLoadFile_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"plain http endpoint", "api:\n  docs_base_url: http://docs.example.com\n"},
		{"bad timeout", "api:\n  timeout: soon\n"},
		{"bad log level", "log:\n  level: loud\n"},
		{"unknown key", "apii:\n  timeout: 5s\n"},
		{"not yaml", "{{{\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := LoadFile(writeConfigFile(t, test.content))
			if err == nil {
				t.Fatal("LoadFile accepted invalid config")
			}
			if got := fault.CategoryOf(err); got != fault.CategoryConfig {
				t.Errorf("category = %q, want %q", got, fault.CategoryConfig)
			}
		})
	}
}
