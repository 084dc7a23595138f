// Copyright 2026 The Tapestry Tools Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tapestry-tools/gdocs-mcp/lib/fault"
	"github.com/tapestry-tools/gdocs-mcp/lib/googledocs"
)

// responseFormat selects the output representation of a tool result.
type responseFormat string

const (
	formatMarkdown responseFormat = "markdown"
	formatJSON     responseFormat = "json"
)

// parseResponseFormat validates a response_format argument. Empty
// means markdown.
func parseResponseFormat(value string) (responseFormat, error) {
	switch value {
	case "", string(formatMarkdown):
		return formatMarkdown, nil
	case string(formatJSON):
		return formatJSON, nil
	default:
		return "", fault.Validation("response_format must be %q or %q (got %q)", formatMarkdown, formatJSON, value)
	}
}

// Display truncation limits for operation summaries.
const (
	insertedTextDisplayLimit = 50
	replaceTextDisplayLimit  = 30
)

func formatGetResponse(document *googledocs.Document, format responseFormat) (string, error) {
	content := document.PlainText()

	if format == formatJSON {
		return encodeJSON(map[string]any{
			"document_id": document.DocumentID,
			"title":       document.Title,
			"url":         document.URL(),
			"content":     content,
			"revision_id": document.RevisionID,
		})
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "# %s\n\n", document.Title)
	fmt.Fprintf(&builder, "- **Document ID**: `%s`\n", document.DocumentID)
	fmt.Fprintf(&builder, "- **URL**: [Open in Google Docs](%s)\n\n", document.URL())
	builder.WriteString("## Content\n\n")
	builder.WriteString(content)
	return builder.String(), nil
}

func formatUpdateResponse(documentID string, edits []googledocs.Edit, format responseFormat) (string, error) {
	if format == formatJSON {
		return encodeJSON(map[string]any{
			"document_id":      documentID,
			"operations_count": len(edits),
			"success":          true,
		})
	}

	var builder strings.Builder
	builder.WriteString("# Document Updated\n\n")
	fmt.Fprintf(&builder, "- **Document ID**: `%s`\n", documentID)
	fmt.Fprintf(&builder, "- **Operations Applied**: %d\n\n", len(edits))
	builder.WriteString("## Operations\n\n")

	for i, edit := range edits {
		builder.WriteString(describeEdit(i+1, &edit))
		builder.WriteByte('\n')
	}
	return strings.TrimRight(builder.String(), "\n"), nil
}

func formatCreateResponse(file *googledocs.DriveFile, format responseFormat) (string, error) {
	document := googledocs.Document{DocumentID: file.ID}

	if format == formatJSON {
		return encodeJSON(map[string]any{
			"document_id": file.ID,
			"title":       file.Name,
			"url":         document.URL(),
		})
	}

	var builder strings.Builder
	builder.WriteString("# Document Created\n\n")
	fmt.Fprintf(&builder, "- **Title**: %s\n", file.Name)
	fmt.Fprintf(&builder, "- **Document ID**: `%s`\n", file.ID)
	fmt.Fprintf(&builder, "- **URL**: [Open in Google Docs](%s)", document.URL())
	return builder.String(), nil
}

// describeEdit renders one applied operation as a numbered summary
// line, with payload text truncated for display.
func describeEdit(position int, edit *googledocs.Edit) string {
	switch {
	case edit.InsertText != nil:
		return fmt.Sprintf("%d. Inserted text at index %d: %q",
			position, edit.InsertText.Index, truncateText(edit.InsertText.Text, insertedTextDisplayLimit))
	case edit.DeleteContentRange != nil:
		return fmt.Sprintf("%d. Deleted content from index %d to %d",
			position, edit.DeleteContentRange.StartIndex, edit.DeleteContentRange.EndIndex)
	case edit.ReplaceAllText != nil:
		return fmt.Sprintf("%d. Replaced %q with %q (case-sensitive: %t)",
			position,
			truncateText(edit.ReplaceAllText.FindText, replaceTextDisplayLimit),
			truncateText(edit.ReplaceAllText.ReplaceText, replaceTextDisplayLimit),
			edit.ReplaceAllText.MatchCase)
	default:
		// TranslateEdits rejected this shape before any network call;
		// reaching here means the edit was never validated.
		return fmt.Sprintf("%d. (empty operation)", position)
	}
}

// truncateText shortens text for display, appending an ellipsis when
// anything was cut. Truncation is rune-aware so multi-byte characters
// are never split.
func truncateText(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

func encodeJSON(payload map[string]any) (string, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fault.Internal("encoding tool response: %w", err)
	}
	return string(encoded), nil
}
