// Copyright 2026 The Tapestry Tools Authors
// SPDX-License-Identifier: Apache-2.0

// Package googledocs is a typed client for the Google Docs REST API,
// plus the one Google Drive call needed to create documents.
//
// Every request is authenticated with a bearer token obtained from the
// injected Authenticator immediately before sending; the client never
// caches tokens itself. Non-2xx responses become typed *APIError
// values; network failures become transient fault errors. No retries
// are performed at any layer, rate limiting (429) included; failures
// surface to the caller, which decides whether to try again.
package googledocs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tapestry-tools/gdocs-mcp/lib/fault"
	"github.com/tapestry-tools/gdocs-mcp/lib/httpx"
)

// Default API endpoints.
const (
	defaultDocsBaseURL  = "https://docs.googleapis.com/v1"
	defaultDriveBaseURL = "https://www.googleapis.com/drive/v3"
)

// defaultTimeout bounds every outbound call so no operation blocks
// indefinitely.
const defaultTimeout = 30 * time.Second

// Authenticator provides Authorization header values. The googleauth
// TokenSource implements it; tests substitute a static fake.
type Authenticator interface {
	// AuthorizationHeader returns a valid Authorization header value
	// (e.g., "Bearer ya29.xxx"). May trigger a token refresh.
	AuthorizationHeader(ctx context.Context) (string, error)
}

// Config holds configuration for creating a Client.
type Config struct {
	// TokenSource supplies bearer tokens. Required; it is the single
	// source of truth for credentials.
	TokenSource Authenticator

	// BaseURL is the Google Docs API root. Defaults to the public
	// endpoint. Must use HTTPS.
	BaseURL string

	// DriveBaseURL is the Google Drive API root, used for document
	// creation. Defaults to the public endpoint. Must use HTTPS.
	DriveBaseURL string

	// HTTPClient is used for all requests. Defaults to a client with
	// a 30-second timeout.
	HTTPClient *http.Client

	// Logger is used for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client is the Google Docs API gateway.
type Client struct {
	baseURL      string
	driveBaseURL string
	httpClient   *http.Client
	tokenSource  Authenticator
	logger       *slog.Logger
}

// NewClient creates a Client from the given configuration.
func NewClient(config Config) (*Client, error) {
	if config.TokenSource == nil {
		return nil, fault.Config("googledocs: a token source is required")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultDocsBaseURL
	}
	driveBaseURL := config.DriveBaseURL
	if driveBaseURL == "" {
		driveBaseURL = defaultDriveBaseURL
	}
	for _, u := range []string{baseURL, driveBaseURL} {
		if !strings.HasPrefix(u, "https://") {
			return nil, fault.Config("googledocs: API client requires HTTPS (got %q)", u)
		}
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		driveBaseURL: strings.TrimRight(driveBaseURL, "/"),
		httpClient:   httpClient,
		tokenSource:  config.TokenSource,
		logger:       logger,
	}, nil
}

// GetDocument fetches a document by ID.
func (client *Client) GetDocument(ctx context.Context, documentID string) (*Document, error) {
	var document Document
	requestURL := client.baseURL + "/documents/" + url.PathEscape(documentID)
	if err := client.do(ctx, http.MethodGet, requestURL, nil, &document); err != nil {
		return nil, err
	}
	return &document, nil
}

// BatchUpdate applies the given requests to a document. The remote API
// applies them strictly in the order given; replies are returned
// uninterpreted.
func (client *Client) BatchUpdate(ctx context.Context, documentID string, requests []Request) (*BatchUpdateResult, error) {
	var result BatchUpdateResult
	requestURL := client.baseURL + "/documents/" + url.PathEscape(documentID) + ":batchUpdate"
	if err := client.do(ctx, http.MethodPost, requestURL, batchUpdateBody{Requests: requests}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// do executes one authenticated API request. The token is fetched
// immediately before sending. On non-2xx responses the returned error
// is an *APIError carrying the status code and body.
func (client *Client) do(ctx context.Context, method, requestURL string, requestBody any, result any) error {
	var bodyReader *bytes.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return fault.Internal("googledocs: encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return fault.Internal("googledocs: creating request: %w", err)
	}

	authHeader, err := client.tokenSource.AuthorizationHeader(ctx)
	if err != nil {
		return err
	}
	request.Header.Set("Authorization", authHeader)
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fault.TransportError(fmt.Sprintf("googledocs: %s %s", method, requestURL), err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		apiError := &APIError{
			StatusCode: response.StatusCode,
			Body:       httpx.ErrorBody(response.Body),
		}
		client.logger.Warn("api request failed",
			"method", method,
			"url", requestURL,
			"status", response.StatusCode,
			"category", string(apiError.Category()),
		)
		return apiError
	}

	if result != nil {
		if err := httpx.DecodeBody(response.Body, result); err != nil {
			return fault.Internal("googledocs: parsing API response: %w", err)
		}
	}
	return nil
}
