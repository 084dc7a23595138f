// Copyright 2026 The Tapestry Tools Authors
// SPDX-License-Identifier: Apache-2.0

// Package googleauth manages the access token lifecycle for a Google
// service account.
//
// Each refresh mints an RS256-signed JWT assertion from the service
// account's private key and exchanges it at the OAuth2 token endpoint
// for a short-lived bearer token. The token is cached in a single slot
// shared across all callers; concurrent refreshes are deduplicated so
// that at most one exchange round-trip is in flight for any
// stale-or-absent token.
package googleauth

import (
	"context"
	"crypto/rsa"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"

	"github.com/tapestry-tools/gdocs-mcp/lib/clock"
	"github.com/tapestry-tools/gdocs-mcp/lib/fault"
	"github.com/tapestry-tools/gdocs-mcp/lib/httpx"
	"github.com/tapestry-tools/gdocs-mcp/lib/serviceaccount"
)

// OAuth scopes for the Google APIs this server talks to.
const (
	// DocsScope grants read/write access to Google Docs documents.
	DocsScope = "https://www.googleapis.com/auth/documents"

	// DriveScope grants access to Drive files, needed for document
	// creation.
	DriveScope = "https://www.googleapis.com/auth/drive"
)

// grantType is the OAuth2 grant for exchanging a signed JWT assertion
// for an access token (RFC 7523).
const grantType = "urn:ietf:params:oauth:grant-type:jwt-bearer"

// assertionLifetime is the validity window claimed by each signed
// assertion. One hour is the maximum Google accepts.
const assertionLifetime = time.Hour

// freshnessMargin is how much remaining validity a cached token must
// have to be reused. The margin covers clock skew and in-flight request
// latency: a token that passes the freshness check is not re-verified
// at the moment the request carrying it hits the wire.
const freshnessMargin = 60 * time.Second

// Config holds configuration for creating a TokenSource.
type Config struct {
	// Credentials is the service account identity. Required.
	Credentials *serviceaccount.Credentials

	// Scopes are the OAuth scopes requested in each assertion.
	// Defaults to DocsScope and DriveScope.
	Scopes []string

	// HTTPClient is used for token exchange requests. Defaults to a
	// client with a 30-second timeout.
	HTTPClient *http.Client

	// Clock provides time operations. Defaults to clock.Real().
	Clock clock.Clock

	// Logger is used for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// TokenSource mints, caches, and refreshes access tokens. It is safe
// for concurrent use; the freshness check takes a read lock and token
// replacement is an atomic swap under the write lock, so readers never
// observe a partially updated token.
type TokenSource struct {
	credentials *serviceaccount.Credentials
	scope       string
	privateKey  *rsa.PrivateKey
	httpClient  *http.Client
	clock       clock.Clock
	logger      *slog.Logger

	// group deduplicates concurrent refreshes: callers that observe a
	// stale token share one exchange round-trip instead of each
	// performing their own.
	group singleflight.Group

	mu        sync.RWMutex
	token     string
	expiresAt time.Time
}

// NewTokenSource creates a TokenSource from the given configuration.
// The private key is parsed eagerly so a malformed key is a
// construction-time configuration error, not a first-use surprise.
func NewTokenSource(config Config) (*TokenSource, error) {
	if config.Credentials == nil {
		return nil, fault.Config("googleauth: credentials are required")
	}

	privateKey, err := config.Credentials.RSAKey()
	if err != nil {
		return nil, fault.Config("googleauth: %w", err)
	}

	scopes := config.Scopes
	if len(scopes) == 0 {
		scopes = []string{DocsScope, DriveScope}
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &TokenSource{
		credentials: config.Credentials,
		scope:       strings.Join(scopes, " "),
		privateKey:  privateKey,
		httpClient:  httpClient,
		clock:       clk,
		logger:      logger,
	}, nil
}

// Token returns a valid access token, refreshing it if the cached one
// is absent or within the freshness margin of expiry. Any number of
// callers may invoke Token concurrently; a refresh happens at most
// once per staleness episode.
func (s *TokenSource) Token(ctx context.Context) (string, error) {
	if token, ok := s.cached(); ok {
		return token, nil
	}

	result, err, _ := s.group.Do("token", func() (any, error) {
		// A refresh that completed while this caller waited for the
		// flight slot may already have replaced the token.
		if token, ok := s.cached(); ok {
			return token, nil
		}
		return s.refresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// AuthorizationHeader returns a valid Authorization header value
// ("Bearer <token>"), refreshing the token if needed.
func (s *TokenSource) AuthorizationHeader(ctx context.Context) (string, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return "", err
	}
	return "Bearer " + token, nil
}

// ExpiresAt returns the expiry of the cached token, or the zero time
// when no token is cached. Intended for diagnostics and tests.
func (s *TokenSource) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// cached returns the cached token if it is still fresh: reusable only
// while expiresAt > now + freshnessMargin.
func (s *TokenSource) cached() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token != "" && s.expiresAt.After(s.clock.Now().Add(freshnessMargin)) {
		return s.token, true
	}
	return "", false
}

// tokenResponse is the token endpoint's success body.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// refresh mints a fresh assertion, exchanges it for an access token,
// and swaps the new token into the cache.
func (s *TokenSource) refresh(ctx context.Context) (string, error) {
	// Expiry bookkeeping uses the refresh-start timestamp, not a
	// post-response one, so the computed expiry is conservative by
	// the exchange's round-trip time.
	start := s.clock.Now()

	assertion, err := s.signAssertion(start)
	if err != nil {
		return "", fault.Internal("googleauth: signing assertion: %w", err)
	}

	form := url.Values{
		"grant_type": {grantType},
		"assertion":  {assertion},
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, s.credentials.TokenURI, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fault.Internal("googleauth: creating token request: %w", err)
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := s.httpClient.Do(request)
	if err != nil {
		return "", fault.TransportError("googleauth: token exchange", err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return "", fault.Auth("googleauth: token issuer returned HTTP %d: %s", response.StatusCode, httpx.ErrorBody(response.Body))
	}

	var parsed tokenResponse
	if err := httpx.DecodeBody(response.Body, &parsed); err != nil {
		return "", fault.Internal("googleauth: parsing token response: %w", err)
	}
	if parsed.AccessToken == "" {
		return "", fault.Internal("googleauth: token response has no access_token")
	}

	expiresAt := start.Add(time.Duration(parsed.ExpiresIn) * time.Second)

	s.mu.Lock()
	s.token = parsed.AccessToken
	s.expiresAt = expiresAt
	s.mu.Unlock()

	s.logger.Debug("access token refreshed",
		"expires_in", parsed.ExpiresIn,
		"token_type", parsed.TokenType,
	)

	return parsed.AccessToken, nil
}

// signAssertion builds and signs the ephemeral JWT assertion exchanged
// for an access token. The assertion is never persisted; it exists only
// for the duration of one exchange.
func (s *TokenSource) signAssertion(now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"iss":   s.credentials.ClientEmail,
		"scope": s.scope,
		"aud":   s.credentials.TokenURI,
		"iat":   now.Unix(),
		"exp":   now.Add(assertionLifetime).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.privateKey)
}
