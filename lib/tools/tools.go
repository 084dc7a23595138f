// Copyright 2026 The Tapestry Tools Authors
// SPDX-License-Identifier: Apache-2.0

// Package tools defines the Google Docs MCP tool catalog: reading,
// updating, and creating documents. Each tool validates its arguments
// locally before touching the network, so bad input never consumes a
// token or an API quota unit.
package tools

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/tapestry-tools/gdocs-mcp/lib/fault"
	"github.com/tapestry-tools/gdocs-mcp/lib/googledocs"
	"github.com/tapestry-tools/gdocs-mcp/lib/mcp"
)

// DocsAPI is the slice of the Google Docs client the tools need.
// Tests substitute a fake.
type DocsAPI interface {
	GetDocument(ctx context.Context, documentID string) (*googledocs.Document, error)
	BatchUpdate(ctx context.Context, documentID string, requests []googledocs.Request) (*googledocs.BatchUpdateResult, error)
	CreateDocument(ctx context.Context, title string, parents []string) (*googledocs.DriveFile, error)
}

// Catalog returns the full MCP tool catalog backed by api.
func Catalog(api DocsAPI) []mcp.Tool {
	return []mcp.Tool{
		getDocumentTool(api),
		updateDocumentTool(api),
		createDocumentTool(api),
	}
}

// getDocumentParams are the arguments for google_docs_get_document.
type getDocumentParams struct {
	DocumentID     string `json:"document_id"`
	ResponseFormat string `json:"response_format"`
}

// updateDocumentParams are the arguments for google_docs_update_document.
type updateDocumentParams struct {
	DocumentID     string            `json:"document_id"`
	Requests       []googledocs.Edit `json:"requests"`
	ResponseFormat string            `json:"response_format"`
}

// createDocumentParams are the arguments for google_docs_create_document.
type createDocumentParams struct {
	Title          string `json:"title"`
	ResponseFormat string `json:"response_format"`
}

func getDocumentTool(api DocsAPI) mcp.Tool {
	return mcp.Tool{
		Name:        "google_docs_get_document",
		Title:       "Get Google Document",
		Description: "Get a Google Document by its ID. Returns the document title and full text content from all tabs (including nested child tabs).",
		InputSchema: getDocumentSchema,
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:   mcp.BoolPtr(true),
			IdempotentHint: mcp.BoolPtr(true),
		},
		Handler: func(ctx context.Context, arguments json.RawMessage) (string, error) {
			var params getDocumentParams
			if err := decodeArguments(arguments, &params); err != nil {
				return "", err
			}
			if strings.TrimSpace(params.DocumentID) == "" {
				return "", fault.Validation("document_id cannot be empty")
			}
			format, err := parseResponseFormat(params.ResponseFormat)
			if err != nil {
				return "", err
			}

			document, err := api.GetDocument(ctx, params.DocumentID)
			if err != nil {
				return "", err
			}
			return formatGetResponse(document, format)
		},
	}
}

func updateDocumentTool(api DocsAPI) mcp.Tool {
	return mcp.Tool{
		Name:        "google_docs_update_document",
		Title:       "Update Google Document",
		Description: updateDocumentDescription,
		InputSchema: updateDocumentSchema,
		Handler: func(ctx context.Context, arguments json.RawMessage) (string, error) {
			var params updateDocumentParams
			if err := decodeArguments(arguments, &params); err != nil {
				return "", err
			}
			if strings.TrimSpace(params.DocumentID) == "" {
				return "", fault.Validation("document_id cannot be empty")
			}
			if len(params.Requests) == 0 {
				return "", fault.Validation("at least one update request is required")
			}
			format, err := parseResponseFormat(params.ResponseFormat)
			if err != nil {
				return "", err
			}

			requests, err := googledocs.TranslateEdits(params.Requests)
			if err != nil {
				return "", err
			}

			result, err := api.BatchUpdate(ctx, params.DocumentID, requests)
			if err != nil {
				return "", err
			}
			return formatUpdateResponse(result.DocumentID, params.Requests, format)
		},
	}
}

func createDocumentTool(api DocsAPI) mcp.Tool {
	return mcp.Tool{
		Name:        "google_docs_create_document",
		Title:       "Create Google Document",
		Description: "Create a new empty Google Document with the given title. Returns the new document's ID and URL. The document is owned by the service account; share it with human users as needed.",
		InputSchema: createDocumentSchema,
		Handler: func(ctx context.Context, arguments json.RawMessage) (string, error) {
			var params createDocumentParams
			if err := decodeArguments(arguments, &params); err != nil {
				return "", err
			}
			if strings.TrimSpace(params.Title) == "" {
				return "", fault.Validation("title cannot be empty")
			}
			format, err := parseResponseFormat(params.ResponseFormat)
			if err != nil {
				return "", err
			}

			file, err := api.CreateDocument(ctx, params.Title, nil)
			if err != nil {
				return "", err
			}
			return formatCreateResponse(file, format)
		},
	}
}

// decodeArguments parses MCP tool arguments, rejecting unknown fields
// so typos like "documentid" fail loud instead of silently validating
// an empty struct.
func decodeArguments(arguments json.RawMessage, target any) error {
	if len(arguments) == 0 {
		return fault.Validation("arguments are required")
	}
	decoder := json.NewDecoder(strings.NewReader(string(arguments)))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fault.Validation("invalid arguments: %w", err)
	}
	return nil
}

// updateDocumentDescription documents the update request shapes for the
// agent. Kept close to the Google Docs batchUpdate surface so agents
// familiar with the API need no translation.
const updateDocumentDescription = `Update a Google Document with batch operations.

Supported operations (exactly one per request):

1. insertText: insert text at a position.
   - text (string, required): the text to insert
   - index (integer, required): position to insert at (1 = beginning of document body)

2. deleteContentRange: delete content within a range.
   - startIndex (integer, required): start of the range to delete
   - endIndex (integer, required): end of the range to delete (exclusive)

3. replaceAllText: replace all occurrences of a string.
   - findText (string, required): the text to search for
   - replaceText (string, required): the replacement text
   - matchCase (boolean, optional): whether to match case (default false)

Example:

{
  "document_id": "your-document-id",
  "requests": [
    {"insertText": {"text": "Hello, World!", "index": 1}},
    {"deleteContentRange": {"startIndex": 10, "endIndex": 20}},
    {"replaceAllText": {"findText": "old", "replaceText": "new", "matchCase": true}}
  ]
}

Notes:
- Index 1 is the beginning of the document body.
- To append text at the end, first get the document to find the last index.
- Operations are applied in order.`
