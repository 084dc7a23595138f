// Copyright 2026 The Tapestry Tools Authors
// SPDX-License-Identifier: Apache-2.0

package googledocs

import (
	"context"
	"net/http"

	"github.com/tapestry-tools/gdocs-mcp/lib/fault"
)

// docsMIMEType is the Drive MIME type for Google Docs documents.
const docsMIMEType = "application/vnd.google-apps.document"

// driveCreateFileBody is the Drive files.create request body.
type driveCreateFileBody struct {
	Name     string   `json:"name"`
	MIMEType string   `json:"mimeType"`
	Parents  []string `json:"parents,omitempty"`
}

// DriveFile is the Drive files.create response, reduced to the fields
// this server reads.
type DriveFile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MIMEType string `json:"mimeType"`
}

// CreateDocument creates an empty Google Doc with the given title via
// the Drive API and returns its file metadata. Parents may name Drive
// folder IDs to create the document in; empty means the service
// account's root.
func (client *Client) CreateDocument(ctx context.Context, title string, parents []string) (*DriveFile, error) {
	if title == "" {
		return nil, fault.Validation("document title cannot be empty")
	}

	var file DriveFile
	requestURL := client.driveBaseURL + "/files"
	body := driveCreateFileBody{
		Name:     title,
		MIMEType: docsMIMEType,
		Parents:  parents,
	}
	if err := client.do(ctx, http.MethodPost, requestURL, body, &file); err != nil {
		return nil, err
	}
	return &file, nil
}
