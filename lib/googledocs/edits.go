// Copyright 2026 The Tapestry Tools Authors
// SPDX-License-Identifier: Apache-2.0

package googledocs

import (
	"encoding/json"

	"github.com/tapestry-tools/gdocs-mcp/lib/fault"
)

// Edit is the caller-facing shape of one update operation. Exactly one
// of the fields must be set.
type Edit struct {
	InsertText         *InsertTextEdit     `json:"insertText,omitempty"`
	DeleteContentRange *DeleteRangeEdit    `json:"deleteContentRange,omitempty"`
	ReplaceAllText     *ReplaceAllTextEdit `json:"replaceAllText,omitempty"`
}

// InsertTextEdit inserts text at a document index. Index 1 is the
// beginning of the document body.
type InsertTextEdit struct {
	Text  string `json:"text"`
	Index int64  `json:"index"`
}

// DeleteRangeEdit deletes the half-open range [StartIndex, EndIndex).
type DeleteRangeEdit struct {
	StartIndex int64 `json:"startIndex"`
	EndIndex   int64 `json:"endIndex"`
}

// ReplaceAllTextEdit replaces every occurrence of FindText.
type ReplaceAllTextEdit struct {
	FindText    string `json:"findText"`
	ReplaceText string `json:"replaceText"`
	MatchCase   bool   `json:"matchCase"`
}

// --- Google Docs batchUpdate wire shapes ---

// Request is one element of a batchUpdate request body, in the API's
// wire shape. At most one field is set per element.
type Request struct {
	InsertText         *InsertTextRequest         `json:"insertText,omitempty"`
	DeleteContentRange *DeleteContentRangeRequest `json:"deleteContentRange,omitempty"`
	ReplaceAllText     *ReplaceAllTextRequest     `json:"replaceAllText,omitempty"`
}

// InsertTextRequest is the wire shape of a text insertion.
type InsertTextRequest struct {
	Text     string   `json:"text"`
	Location Location `json:"location"`
}

// Location addresses an index in the document body.
type Location struct {
	Index int64 `json:"index"`
}

// DeleteContentRangeRequest is the wire shape of a range deletion.
type DeleteContentRangeRequest struct {
	Range Range `json:"range"`
}

// Range is a half-open [StartIndex, EndIndex) document range.
type Range struct {
	StartIndex int64 `json:"startIndex"`
	EndIndex   int64 `json:"endIndex"`
}

// ReplaceAllTextRequest is the wire shape of a replace-all operation.
type ReplaceAllTextRequest struct {
	ContainsText ContainsText `json:"containsText"`
	ReplaceText  string       `json:"replaceText"`
}

// ContainsText is the search criteria of a replace-all operation.
type ContainsText struct {
	Text      string `json:"text"`
	MatchCase bool   `json:"matchCase"`
}

// batchUpdateBody is the batchUpdate request envelope.
type batchUpdateBody struct {
	Requests []Request `json:"requests"`
}

// BatchUpdateResult is the batchUpdate response. Replies are kept
// opaque: the API reports one reply per request, in order, and this
// client does not interpret them further.
type BatchUpdateResult struct {
	DocumentID string            `json:"documentId"`
	Replies    []json.RawMessage `json:"replies,omitempty"`
}

// TranslateEdits validates caller-facing edits and translates them to
// the API wire shape. Validation failures are local: no network call is
// made and the returned error has the validation category. Operations
// keep their order; the remote API applies them strictly in sequence.
func TranslateEdits(edits []Edit) ([]Request, error) {
	requests := make([]Request, 0, len(edits))

	for i, edit := range edits {
		request, err := translateEdit(&edit)
		if err != nil {
			return nil, fault.Validation("request %d: %w", i+1, err)
		}
		requests = append(requests, request)
	}
	return requests, nil
}

func translateEdit(edit *Edit) (Request, error) {
	set := 0
	if edit.InsertText != nil {
		set++
	}
	if edit.DeleteContentRange != nil {
		set++
	}
	if edit.ReplaceAllText != nil {
		set++
	}
	if set != 1 {
		return Request{}, fault.Validation("exactly one of insertText, deleteContentRange, or replaceAllText must be set")
	}

	switch {
	case edit.InsertText != nil:
		if edit.InsertText.Index < 1 {
			return Request{}, fault.Validation("insert index must be at least 1 (1 is the beginning of the document body)")
		}
		return Request{InsertText: &InsertTextRequest{
			Text:     edit.InsertText.Text,
			Location: Location{Index: edit.InsertText.Index},
		}}, nil

	case edit.DeleteContentRange != nil:
		if edit.DeleteContentRange.StartIndex < 1 {
			return Request{}, fault.Validation("delete start index must be at least 1")
		}
		if edit.DeleteContentRange.EndIndex <= edit.DeleteContentRange.StartIndex {
			return Request{}, fault.Validation("delete end index must be greater than start index")
		}
		return Request{DeleteContentRange: &DeleteContentRangeRequest{
			Range: Range{
				StartIndex: edit.DeleteContentRange.StartIndex,
				EndIndex:   edit.DeleteContentRange.EndIndex,
			},
		}}, nil

	default:
		if edit.ReplaceAllText.FindText == "" {
			return Request{}, fault.Validation("replaceAllText find text cannot be empty")
		}
		return Request{ReplaceAllText: &ReplaceAllTextRequest{
			ContainsText: ContainsText{
				Text:      edit.ReplaceAllText.FindText,
				MatchCase: edit.ReplaceAllText.MatchCase,
			},
			ReplaceText: edit.ReplaceAllText.ReplaceText,
		}}, nil
	}
}
