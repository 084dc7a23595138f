// Copyright 2026 The Tapestry Tools Authors
// SPDX-License-Identifier: Apache-2.0

// gdocs-mcp is an MCP server exposing Google Docs read, update, and
// create tools, authenticated as a Google service account.
//
// The service account key is loaded from the file named by
// GOOGLE_SERVICE_ACCOUNT_KEY. The server speaks newline-delimited
// JSON-RPC 2.0 on stdin/stdout; logs go to stderr so they never
// corrupt the protocol stream.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tapestry-tools/gdocs-mcp/lib/clock"
	"github.com/tapestry-tools/gdocs-mcp/lib/config"
	"github.com/tapestry-tools/gdocs-mcp/lib/googleauth"
	"github.com/tapestry-tools/gdocs-mcp/lib/googledocs"
	"github.com/tapestry-tools/gdocs-mcp/lib/mcp"
	"github.com/tapestry-tools/gdocs-mcp/lib/serviceaccount"
	"github.com/tapestry-tools/gdocs-mcp/lib/tools"
	"github.com/tapestry-tools/gdocs-mcp/lib/version"
)

const serverName = "gdocs-mcp"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath  string
		logLevel    string
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "", "path to the YAML config file (default: $"+config.EnvKeyConfig+")")
	flag.StringVar(&logLevel, "log-level", "", "minimum log level: debug, info, warn, error (overrides config)")
	flag.BoolVar(&showVersion, "version", false, "print version information and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("%s %s\n", serverName, version.Info())
		return nil
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}

	// Logs go to stderr: stdout carries the JSON-RPC stream.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	credentials, err := serviceaccount.LoadFromEnv()
	if err != nil {
		return err
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout()}

	tokenSource, err := googleauth.NewTokenSource(googleauth.Config{
		Credentials: credentials,
		Scopes:      cfg.Auth.Scopes,
		HTTPClient:  httpClient,
		Clock:       clock.Real(),
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	client, err := googledocs.NewClient(googledocs.Config{
		TokenSource:  tokenSource,
		BaseURL:      cfg.API.DocsBaseURL,
		DriveBaseURL: cfg.API.DriveBaseURL,
		HTTPClient:   httpClient,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(mcp.Config{
		Name:    serverName,
		Version: version.Short(),
		Tools:   tools.Catalog(client),
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	logger.Info("serving",
		"server", serverName,
		"version", version.Short(),
		"service_account", credentials.ClientEmail,
	)

	err = server.Serve(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info("shutting down on signal")
		return nil
	}
	return err
}

// loadConfig resolves the configuration: the --config flag wins, then
// GDOCS_MCP_CONFIG, then compiled-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}
