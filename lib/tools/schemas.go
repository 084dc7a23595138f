// Copyright 2026 The Tapestry Tools Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import "encoding/json"

// JSON Schemas for the tool catalog, hand-written against the params
// structs in tools.go. Kept as raw JSON so the wire shape is visible
// at a glance.

var responseFormatSchema = `{
      "type": "string",
      "enum": ["markdown", "json"],
      "description": "Output format. Defaults to markdown."
    }`

var getDocumentSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "document_id": {
      "type": "string",
      "description": "The document ID to retrieve."
    },
    "response_format": ` + responseFormatSchema + `
  },
  "required": ["document_id"]
}`)

var updateDocumentSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "document_id": {
      "type": "string",
      "description": "The document ID to update."
    },
    "requests": {
      "type": "array",
      "minItems": 1,
      "description": "Update operations, applied in order. Each item sets exactly one of insertText, deleteContentRange, or replaceAllText.",
      "items": {
        "type": "object",
        "properties": {
          "insertText": {
            "type": "object",
            "properties": {
              "text": {"type": "string"},
              "index": {"type": "integer", "minimum": 1}
            },
            "required": ["text", "index"]
          },
          "deleteContentRange": {
            "type": "object",
            "properties": {
              "startIndex": {"type": "integer", "minimum": 1},
              "endIndex": {"type": "integer", "minimum": 2}
            },
            "required": ["startIndex", "endIndex"]
          },
          "replaceAllText": {
            "type": "object",
            "properties": {
              "findText": {"type": "string", "minLength": 1},
              "replaceText": {"type": "string"},
              "matchCase": {"type": "boolean"}
            },
            "required": ["findText", "replaceText"]
          }
        }
      }
    },
    "response_format": ` + responseFormatSchema + `
  },
  "required": ["document_id", "requests"]
}`)

var createDocumentSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "title": {
      "type": "string",
      "description": "Title of the new document."
    },
    "response_format": ` + responseFormatSchema + `
  },
  "required": ["title"]
}`)
