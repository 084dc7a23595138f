// Copyright 2026 The Tapestry Tools Authors
// SPDX-License-Identifier: Apache-2.0

package googledocs

import (
	"strings"
	"testing"

	"github.com/tapestry-tools/gdocs-mcp/lib/fault"
)

func TestTranslateEdits_InsertText(t *testing.T) {
	requests, err := TranslateEdits([]Edit{
		{InsertText: &InsertTextEdit{Text: "hello", Index: 1}},
	})
	if err != nil {
		t.Fatalf("TranslateEdits: %v", err)
	}
	if len(requests) != 1 || requests[0].InsertText == nil {
		t.Fatalf("requests = %+v, want one insertText", requests)
	}
	if requests[0].InsertText.Text != "hello" {
		t.Errorf("text = %q, want %q", requests[0].InsertText.Text, "hello")
	}
	if requests[0].InsertText.Location.Index != 1 {
		t.Errorf("index = %d, want 1", requests[0].InsertText.Location.Index)
	}
}

func TestTranslateEdits_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name        string
		edit        Edit
		wantMessage string
	}{
		{
			name:        "insert index zero",
			edit:        Edit{InsertText: &InsertTextEdit{Text: "x", Index: 0}},
			wantMessage: "insert index",
		},
		{
			name:        "insert index negative",
			edit:        Edit{InsertText: &InsertTextEdit{Text: "x", Index: -3}},
			wantMessage: "insert index",
		},
		{
			name:        "delete start zero",
			edit:        Edit{DeleteContentRange: &DeleteRangeEdit{StartIndex: 0, EndIndex: 5}},
			wantMessage: "start index",
		},
		{
			name:        "delete empty range",
			edit:        Edit{DeleteContentRange: &DeleteRangeEdit{StartIndex: 5, EndIndex: 5}},
			wantMessage: "end index",
		},
		{
			name:        "delete inverted range",
			edit:        Edit{DeleteContentRange: &DeleteRangeEdit{StartIndex: 10, EndIndex: 5}},
			wantMessage: "end index",
		},
		{
			name:        "replace empty find text",
			edit:        Edit{ReplaceAllText: &ReplaceAllTextEdit{FindText: "", ReplaceText: "y"}},
			wantMessage: "find text",
		},
		{
			name:        "no operation set",
			edit:        Edit{},
			wantMessage: "exactly one",
		},
		{
			name: "two operations set",
			edit: Edit{
				InsertText:         &InsertTextEdit{Text: "x", Index: 1},
				DeleteContentRange: &DeleteRangeEdit{StartIndex: 1, EndIndex: 2},
			},
			wantMessage: "exactly one",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := TranslateEdits([]Edit{test.edit})
			if err == nil {
				t.Fatal("TranslateEdits accepted an invalid edit")
			}
			if got := fault.CategoryOf(err); got != fault.CategoryValidation {
				t.Errorf("category = %q, want %q", got, fault.CategoryValidation)
			}
			if !strings.Contains(err.Error(), test.wantMessage) {
				t.Errorf("error %q does not mention %q", err, test.wantMessage)
			}
		})
	}
}

func TestTranslateEdits_AcceptsBoundaryValues(t *testing.T) {
	edits := []Edit{
		{InsertText: &InsertTextEdit{Text: "", Index: 1}},
		{DeleteContentRange: &DeleteRangeEdit{StartIndex: 5, EndIndex: 10}},
		{DeleteContentRange: &DeleteRangeEdit{StartIndex: 1, EndIndex: 2}},
	}
	if _, err := TranslateEdits(edits); err != nil {
		t.Fatalf("TranslateEdits rejected valid boundary edits: %v", err)
	}
}

func TestTranslateEdits_ErrorNamesFailingRequest(t *testing.T) {
	_, err := TranslateEdits([]Edit{
		{InsertText: &InsertTextEdit{Text: "ok", Index: 1}},
		{InsertText: &InsertTextEdit{Text: "bad", Index: 0}},
	})
	if err == nil {
		t.Fatal("TranslateEdits accepted an invalid second edit")
	}
	if !strings.Contains(err.Error(), "request 2") {
		t.Errorf("error %q does not name the failing request", err)
	}
}

func TestTranslateEdits_ReplaceAllCarriesMatchCase(t *testing.T) {
	requests, err := TranslateEdits([]Edit{
		{ReplaceAllText: &ReplaceAllTextEdit{FindText: "Foo", ReplaceText: "Bar", MatchCase: true}},
	})
	if err != nil {
		t.Fatalf("TranslateEdits: %v", err)
	}
	replace := requests[0].ReplaceAllText
	if replace == nil {
		t.Fatalf("requests = %+v, want replaceAllText", requests)
	}
	if replace.ContainsText.Text != "Foo" || !replace.ContainsText.MatchCase {
		t.Errorf("containsText = %+v, want text Foo with matchCase", replace.ContainsText)
	}
	if replace.ReplaceText != "Bar" {
		t.Errorf("replaceText = %q, want %q", replace.ReplaceText, "Bar")
	}
}
