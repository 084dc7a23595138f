// Copyright 2026 The Tapestry Tools Authors
// SPDX-License-Identifier: Apache-2.0

package googledocs

import "strings"

// Document mirrors the Google Docs API document resource, reduced to
// the fields this server reads. Documents created in the tabbed UI
// carry their content under Tabs; older documents (and responses
// without includeTabsContent) carry it under Body.
type Document struct {
	DocumentID string `json:"documentId"`
	Title      string `json:"title"`
	Body       *Body  `json:"body,omitempty"`
	Tabs       []Tab  `json:"tabs,omitempty"`
	RevisionID string `json:"revisionId,omitempty"`
}

// Body holds the document's structural elements.
type Body struct {
	Content []StructuralElement `json:"content,omitempty"`
}

// StructuralElement is one top-level element of a body. Only paragraph
// elements carry extractable text; tables and section breaks are
// ignored by the plain-text walk.
type StructuralElement struct {
	StartIndex int64      `json:"startIndex,omitempty"`
	EndIndex   int64      `json:"endIndex,omitempty"`
	Paragraph  *Paragraph `json:"paragraph,omitempty"`
}

// Paragraph is a run of content ending in a newline.
type Paragraph struct {
	Elements []ParagraphElement `json:"elements,omitempty"`
}

// ParagraphElement is one piece of a paragraph.
type ParagraphElement struct {
	StartIndex int64    `json:"startIndex,omitempty"`
	EndIndex   int64    `json:"endIndex,omitempty"`
	TextRun    *TextRun `json:"textRun,omitempty"`
}

// TextRun is a contiguous run of text with uniform styling.
type TextRun struct {
	Content string `json:"content,omitempty"`
}

// Tab is one tab of a tabbed document. Child tabs nest arbitrarily.
type Tab struct {
	DocumentTab *DocumentTab `json:"documentTab,omitempty"`
	ChildTabs   []Tab        `json:"childTabs,omitempty"`
}

// DocumentTab holds a tab's document content.
type DocumentTab struct {
	Body *Body `json:"body,omitempty"`
}

// URL returns the document's edit URL.
func (d *Document) URL() string {
	return "https://docs.google.com/document/d/" + d.DocumentID + "/edit"
}

// PlainText extracts the document's text content. When tabs are
// present the walk covers every tab and nested child tab in order;
// otherwise it falls back to the top-level body.
func (d *Document) PlainText() string {
	var builder strings.Builder

	if len(d.Tabs) > 0 {
		for _, tab := range d.Tabs {
			writeTabText(&builder, &tab)
		}
		return builder.String()
	}

	if d.Body != nil {
		writeBodyText(&builder, d.Body)
	}
	return builder.String()
}

func writeTabText(builder *strings.Builder, tab *Tab) {
	if tab.DocumentTab != nil && tab.DocumentTab.Body != nil {
		writeBodyText(builder, tab.DocumentTab.Body)
	}
	for _, child := range tab.ChildTabs {
		writeTabText(builder, &child)
	}
}

func writeBodyText(builder *strings.Builder, body *Body) {
	for _, element := range body.Content {
		if element.Paragraph == nil {
			continue
		}
		for _, paragraphElement := range element.Paragraph.Elements {
			if paragraphElement.TextRun != nil {
				builder.WriteString(paragraphElement.TextRun.Content)
			}
		}
	}
}
