// Copyright 2026 The Tapestry Tools Authors
// SPDX-License-Identifier: Apache-2.0

// Package httpx provides bounded HTTP response body helpers.
//
// All reads are capped at MaxResponseSize so that a misbehaving server
// cannot exhaust process memory. The helpers are for JSON API responses
// (Google Docs, Google Drive, OAuth token endpoint), not for streaming
// or large binary downloads.
package httpx

import (
	"encoding/json"
	"fmt"
	"io"
)

// MaxResponseSize bounds JSON API response body reads: 64 MB. A full
// Google Docs document with all structural elements is well under this;
// the limit exists only to stop a pathological response from exhausting
// memory.
const MaxResponseSize int64 = 64 << 20

// ReadBody reads a response body up to MaxResponseSize bytes. Use
// instead of io.ReadAll when reading HTTP response bodies.
func ReadBody(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// DecodeBody reads a response body (up to MaxResponseSize bytes) and
// JSON-decodes it into v. Replaces the io.ReadAll + json.Unmarshal pair.
func DecodeBody(body io.Reader, v any) error {
	data, err := io.ReadAll(io.LimitReader(body, MaxResponseSize))
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	return json.Unmarshal(data, v)
}

// ErrorBody reads an HTTP error response body and returns it as a
// string for diagnostic messages. Read errors are ignored; a partial
// or empty body is still useful in an error message.
func ErrorBody(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, MaxResponseSize))
	return string(data)
}
