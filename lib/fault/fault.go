// Copyright 2026 The Tapestry Tools Authors
// SPDX-License-Identifier: Apache-2.0

// Package fault defines categorized errors for the tool surface.
//
// Every failure that reaches the MCP layer carries a Category so that
// clients can make programmatic decisions (retry, fix input, escalate)
// without parsing error message text. Use the category-specific
// constructors rather than building Error values directly.
package fault

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Category classifies an error for programmatic handling.
type Category string

const (
	// CategoryConfig indicates broken process configuration: missing or
	// unparseable credentials file, malformed private key. Not
	// recoverable within a run.
	CategoryConfig Category = "config"

	// CategoryValidation indicates the caller provided invalid input:
	// empty document ID, out-of-range edit index. The caller should fix
	// the input and retry. No network call was made.
	CategoryValidation Category = "validation"

	// CategoryNotFound indicates a referenced document does not exist.
	// Retrying with the same parameters will not help.
	CategoryNotFound Category = "not_found"

	// CategoryForbidden indicates the service account lacks access to
	// the document. The caller should share the document with the
	// service account or escalate.
	CategoryForbidden Category = "forbidden"

	// CategoryAuth indicates the token issuer or the API rejected the
	// credentials or token. May require operator intervention.
	CategoryAuth Category = "auth"

	// CategoryRateLimited indicates the API returned 429. No internal
	// retry is performed; the caller should back off and retry.
	CategoryRateLimited Category = "rate_limited"

	// CategoryTransient indicates a temporary network failure: timeout
	// or connection error. The caller may retry.
	CategoryTransient Category = "transient"

	// CategoryAPI indicates a non-2xx API response not otherwise
	// classified. The status and body travel in the message.
	CategoryAPI Category = "api"

	// CategoryInternal indicates an unexpected failure: signing error,
	// unparseable success response. Treated as a bug signal.
	CategoryInternal Category = "internal"
)

// Error is a categorized error. It wraps an inner error, preserving the
// chain for errors.Is/errors.As while adding category metadata for the
// MCP layer.
type Error struct {
	// Category classifies the error for programmatic handling.
	Category Category

	// Err is the underlying error with the human-readable message.
	Err error
}

// Error returns the underlying error message. The category travels
// separately via the MCP errorInfo field, not in the text.
func (e *Error) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// Retryable reports whether repeating the same call might succeed.
func (e *Error) Retryable() bool {
	return e.Category == CategoryTransient || e.Category == CategoryRateLimited
}

// CategoryOf returns the category of err, or CategoryInternal when err
// carries no category.
func CategoryOf(err error) Category {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Category
	}
	return CategoryInternal
}

// Config creates a configuration error.
func Config(format string, args ...any) *Error {
	return &Error{Category: CategoryConfig, Err: fmt.Errorf(format, args...)}
}

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *Error {
	return &Error{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error.
func NotFound(format string, args ...any) *Error {
	return &Error{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Forbidden creates a forbidden error.
func Forbidden(format string, args ...any) *Error {
	return &Error{Category: CategoryForbidden, Err: fmt.Errorf(format, args...)}
}

// Auth creates an authentication error.
func Auth(format string, args ...any) *Error {
	return &Error{Category: CategoryAuth, Err: fmt.Errorf(format, args...)}
}

// RateLimited creates a rate-limit error.
func RateLimited(format string, args ...any) *Error {
	return &Error{Category: CategoryRateLimited, Err: fmt.Errorf(format, args...)}
}

// Transient creates a transient error: a temporary failure that may
// succeed on retry.
func Transient(format string, args ...any) *Error {
	return &Error{Category: CategoryTransient, Err: fmt.Errorf(format, args...)}
}

// API creates a generic API error for unclassified non-2xx responses.
func API(format string, args ...any) *Error {
	return &Error{Category: CategoryAPI, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error: an unexpected failure or bug.
func Internal(format string, args ...any) *Error {
	return &Error{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

// TransportError classifies a failed HTTP round-trip as transient.
// Timeouts and connection failures are distinguished in the message for
// diagnostics but handled identically: surfaced, never retried
// internally. The original error stays in the chain, so caller
// cancellation remains visible via errors.Is(err, context.Canceled).
func TransportError(operation string, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return Transient("%s: request timed out: %w", operation, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return Transient("%s: request timed out: %w", operation, err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return Transient("%s: connection failed: %w", operation, err)
	}
	return Transient("%s: network error: %w", operation, err)
}
