// Copyright 2026 The Tapestry Tools Authors
// SPDX-License-Identifier: Apache-2.0

package httpx

import (
	"strings"
	"testing"
)

func TestReadBody(t *testing.T) {
	data, err := ReadBody(strings.NewReader(`{"ok":true}`))
	if err != nil {
		t.Fatalf("ReadBody: %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Errorf("got %q", data)
	}
}

func TestDecodeBody(t *testing.T) {
	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := DecodeBody(strings.NewReader(`{"access_token":"T"}`), &result); err != nil {
		t.Fatalf("DecodeBody: %v", err)
	}
	if result.AccessToken != "T" {
		t.Errorf("AccessToken = %q, want %q", result.AccessToken, "T")
	}
}

func TestDecodeBody_InvalidJSON(t *testing.T) {
	var result map[string]any
	if err := DecodeBody(strings.NewReader("not json"), &result); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestErrorBody_IgnoresReadErrors(t *testing.T) {
	if got := ErrorBody(strings.NewReader("boom")); got != "boom" {
		t.Errorf("ErrorBody = %q, want %q", got, "boom")
	}
}
