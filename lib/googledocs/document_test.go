// Copyright 2026 The Tapestry Tools Authors
// SPDX-License-Identifier: Apache-2.0

package googledocs

import "testing"

func paragraphOf(text string) StructuralElement {
	return StructuralElement{
		Paragraph: &Paragraph{
			Elements: []ParagraphElement{
				{TextRun: &TextRun{Content: text}},
			},
		},
	}
}

func TestPlainText_BodyOnly(t *testing.T) {
	document := &Document{
		DocumentID: "doc1",
		Body: &Body{Content: []StructuralElement{
			paragraphOf("first\n"),
			{}, // section break, no paragraph
			paragraphOf("second\n"),
		}},
	}
	if got, want := document.PlainText(), "first\nsecond\n"; got != want {
		t.Errorf("PlainText() = %q, want %q", got, want)
	}
}

func TestPlainText_TabsTakePrecedenceOverBody(t *testing.T) {
	document := &Document{
		Body: &Body{Content: []StructuralElement{paragraphOf("legacy body\n")}},
		Tabs: []Tab{
			{DocumentTab: &DocumentTab{Body: &Body{Content: []StructuralElement{paragraphOf("tab one\n")}}}},
			{DocumentTab: &DocumentTab{Body: &Body{Content: []StructuralElement{paragraphOf("tab two\n")}}}},
		},
	}
	if got, want := document.PlainText(), "tab one\ntab two\n"; got != want {
		t.Errorf("PlainText() = %q, want %q", got, want)
	}
}

func TestPlainText_NestedChildTabs(t *testing.T) {
	document := &Document{
		Tabs: []Tab{
			{
				DocumentTab: &DocumentTab{Body: &Body{Content: []StructuralElement{paragraphOf("parent\n")}}},
				ChildTabs: []Tab{
					{
						DocumentTab: &DocumentTab{Body: &Body{Content: []StructuralElement{paragraphOf("child\n")}}},
						ChildTabs: []Tab{
							{DocumentTab: &DocumentTab{Body: &Body{Content: []StructuralElement{paragraphOf("grandchild\n")}}}},
						},
					},
				},
			},
		},
	}
	if got, want := document.PlainText(), "parent\nchild\ngrandchild\n"; got != want {
		t.Errorf("PlainText() = %q, want %q", got, want)
	}
}

func TestPlainText_EmptyDocument(t *testing.T) {
	document := &Document{DocumentID: "doc1"}
	if got := document.PlainText(); got != "" {
		t.Errorf("PlainText() = %q, want empty", got)
	}
}

func TestDocumentURL(t *testing.T) {
	document := &Document{DocumentID: "abc123"}
	want := "https://docs.google.com/document/d/abc123/edit"
	if got := document.URL(); got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}
