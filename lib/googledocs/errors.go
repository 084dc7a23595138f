// Copyright 2026 The Tapestry Tools Authors
// SPDX-License-Identifier: Apache-2.0

package googledocs

import (
	"errors"
	"fmt"

	"github.com/tapestry-tools/gdocs-mcp/lib/fault"
)

// APIError represents a non-2xx response from the Google Docs or Drive
// REST API. The status code and raw body are preserved for diagnosis;
// Category classifies the failure for the tool surface.
type APIError struct {
	// StatusCode is the HTTP response status code.
	StatusCode int

	// Body is the raw response body, usually Google's JSON error shape.
	Body string
}

func (e *APIError) Error() string {
	switch e.StatusCode {
	case 404:
		return fmt.Sprintf("googledocs: document not found, check the document ID (HTTP 404): %s", e.Body)
	case 403:
		return fmt.Sprintf("googledocs: permission denied, ensure the service account has access to this document (HTTP 403): %s", e.Body)
	case 401:
		return fmt.Sprintf("googledocs: authentication failed, the API rejected the access token (HTTP 401): %s", e.Body)
	case 429:
		return "googledocs: rate limit exceeded, wait before making more requests (HTTP 429)"
	default:
		return fmt.Sprintf("googledocs: API request failed with HTTP %d: %s", e.StatusCode, e.Body)
	}
}

// Category classifies the response for programmatic handling by the
// tool surface.
func (e *APIError) Category() fault.Category {
	switch e.StatusCode {
	case 404:
		return fault.CategoryNotFound
	case 403:
		return fault.CategoryForbidden
	case 401:
		// Distinct from a token-exchange failure: here the API
		// rejected an apparently valid token.
		return fault.CategoryAuth
	case 429:
		return fault.CategoryRateLimited
	default:
		return fault.CategoryAPI
	}
}

// IsNotFound reports whether err is a 404 Not Found API response.
func IsNotFound(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == 404
}

// IsPermissionDenied reports whether err is a 403 Forbidden API response.
func IsPermissionDenied(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == 403
}

// IsRateLimited reports whether err is a 429 rate-limit API response.
// No backoff or retry is performed anywhere in this client; the caller
// decides when to try again.
func IsRateLimited(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == 429
}
