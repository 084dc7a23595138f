// Copyright 2026 The Tapestry Tools Authors
// SPDX-License-Identifier: Apache-2.0

// Package mcp implements a Model Context Protocol server speaking
// JSON-RPC 2.0 over newline-delimited stdio.
//
// Tools are registered statically with a handler function and a
// hand-written JSON Schema. The server owns the protocol handshake,
// request framing, and the translation of handler errors into MCP
// tool results with structured errorInfo metadata.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/tapestry-tools/gdocs-mcp/lib/fault"
	"github.com/tapestry-tools/gdocs-mcp/lib/googledocs"
)

// Handler executes one tool call. Arguments is the raw JSON arguments
// object from the client (may be empty). The returned string is the
// tool's text output; a non-nil error marks the result as a tool error.
type Handler func(ctx context.Context, arguments json.RawMessage) (string, error)

// Tool is one statically registered MCP tool.
type Tool struct {
	// Name is the tool's wire name (e.g., "google_docs_get_document").
	Name string

	// Title is the human-readable display name.
	Title string

	// Description tells the agent what the tool does and how to call it.
	Description string

	// InputSchema is the JSON Schema for the tool's arguments.
	InputSchema json.RawMessage

	// Annotations carry behavioral hints (read-only, idempotent).
	Annotations *ToolAnnotations

	// Handler executes the tool.
	Handler Handler
}

// Server is an MCP server exposing a fixed set of tools.
type Server struct {
	name        string
	version     string
	tools       []Tool
	toolsByName map[string]*Tool
	logger      *slog.Logger
	initialized bool
}

// Config holds configuration for creating a Server.
type Config struct {
	// Name identifies the server in the initialize response.
	Name string

	// Version is the server version reported to clients.
	Version string

	// Tools is the tool catalog. Names must be unique.
	Tools []Tool

	// Logger is used for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// NewServer creates an MCP server from the given configuration.
func NewServer(config Config) (*Server, error) {
	if config.Name == "" {
		return nil, fault.Config("mcp: a server name is required")
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		name:        config.Name,
		version:     config.Version,
		tools:       config.Tools,
		toolsByName: make(map[string]*Tool, len(config.Tools)),
		logger:      logger,
	}
	for i := range s.tools {
		tool := &s.tools[i]
		if tool.Name == "" || tool.Handler == nil {
			return nil, fault.Config("mcp: tool %d needs a name and a handler", i)
		}
		if _, exists := s.toolsByName[tool.Name]; exists {
			return nil, fault.Config("mcp: duplicate tool name %q", tool.Name)
		}
		s.toolsByName[tool.Name] = tool
	}
	return s, nil
}

// Serve processes requests from os.Stdin and writes responses to
// os.Stdout until stdin reaches EOF.
func (s *Server) Serve(ctx context.Context) error {
	return s.Run(ctx, os.Stdin, os.Stdout)
}

// Run processes JSON-RPC 2.0 requests from input and writes responses
// to output until input reaches EOF. Each request occupies a single
// line (newline-delimited JSON-RPC, not Content-Length framed).
func (s *Server) Run(ctx context.Context, input io.Reader, output io.Writer) error {
	scanner := bufio.NewScanner(input)
	// MCP messages can be large (full document text in tool results).
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	encoder := json.NewEncoder(output)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			if writeErr := writeError(encoder, json.RawMessage("null"), codeParseError, "parse error: "+err.Error()); writeErr != nil {
				return fault.Internal("mcp: writing parse error response: %w", writeErr)
			}
			continue
		}

		if req.JSONRPC != "2.0" {
			if !req.isNotification() {
				if writeErr := writeError(encoder, req.ID, codeInvalidRequest, "unsupported JSON-RPC version"); writeErr != nil {
					return fault.Internal("mcp: writing version error response: %w", writeErr)
				}
			}
			continue
		}

		// Notifications have no ID and receive no response.
		if req.isNotification() {
			continue
		}

		if err := s.dispatch(ctx, encoder, &req); err != nil {
			return err
		}
	}

	return scanner.Err()
}

// dispatch routes a JSON-RPC request to the appropriate handler.
func (s *Server) dispatch(ctx context.Context, encoder *json.Encoder, req *request) error {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(encoder, req)
	case "ping":
		return writeResult(encoder, req.ID, map[string]any{})
	case "tools/list":
		if !s.initialized {
			return writeError(encoder, req.ID, codeInvalidRequest, "server not initialized (call initialize first)")
		}
		return s.handleToolsList(encoder, req)
	case "tools/call":
		if !s.initialized {
			return writeError(encoder, req.ID, codeInvalidRequest, "server not initialized (call initialize first)")
		}
		return s.handleToolsCall(ctx, encoder, req)
	default:
		return writeError(encoder, req.ID, codeMethodNotFound, "unknown method: "+req.Method)
	}
}

func (s *Server) handleInitialize(encoder *json.Encoder, req *request) error {
	if len(req.Params) == 0 {
		return writeError(encoder, req.ID, codeInvalidParams, "params required for initialize")
	}

	var params initializeParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return writeError(encoder, req.ID, codeInvalidParams, "invalid initialize params: "+err.Error())
	}

	// The MCP specification says the server responds with its own
	// protocol version and the client decides whether it can proceed.
	// Clients requesting a different version are not rejected; the
	// protocol is additive and older clients ignore unknown fields.
	s.initialized = true
	s.logger.Debug("mcp client initialized",
		"client", params.ClientInfo.Name,
		"client_version", params.ClientInfo.Version,
		"requested_protocol", params.ProtocolVersion,
	)

	return writeResult(encoder, req.ID, initializeResult{
		ProtocolVersion: protocolVersion,
		Capabilities: serverCapabilities{
			Tools: &toolCapability{},
		},
		ServerInfo: serverInfo{
			Name:    s.name,
			Version: s.version,
		},
	})
}

func (s *Server) handleToolsList(encoder *json.Encoder, req *request) error {
	descriptions := make([]toolDescription, 0, len(s.tools))
	for i := range s.tools {
		tool := &s.tools[i]
		descriptions = append(descriptions, toolDescription{
			Name:        tool.Name,
			Title:       tool.Title,
			Description: tool.Description,
			InputSchema: tool.InputSchema,
			Annotations: tool.Annotations,
		})
	}
	return writeResult(encoder, req.ID, toolsListResult{Tools: descriptions})
}

func (s *Server) handleToolsCall(ctx context.Context, encoder *json.Encoder, req *request) error {
	if len(req.Params) == 0 {
		return writeError(encoder, req.ID, codeInvalidParams, "params required for tools/call")
	}

	var params toolsCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return writeError(encoder, req.ID, codeInvalidParams, "invalid tools/call params: "+err.Error())
	}

	tool, ok := s.toolsByName[params.Name]
	if !ok {
		return writeError(encoder, req.ID, codeInvalidParams, "unknown tool: "+params.Name)
	}

	output, runErr := tool.Handler(ctx, params.Arguments)
	if runErr != nil {
		s.logger.Warn("tool call failed",
			"tool", tool.Name,
			"category", string(fault.CategoryOf(runErr)),
			"error", runErr.Error(),
		)
	}

	return writeResult(encoder, req.ID, buildToolResult(output, runErr))
}

// buildToolResult assembles a toolsCallResult from handler output and
// an optional handler error.
func buildToolResult(output string, runErr error) toolsCallResult {
	result := toolsCallResult{}
	if output != "" {
		result.Content = append(result.Content, contentBlock{
			Type: "text",
			Text: output,
		})
	}
	if runErr != nil {
		result.IsError = true
		result.Content = append(result.Content, contentBlock{
			Type: "text",
			Text: runErr.Error(),
		})
		result.ErrorInfo = classifyError(runErr)
	}
	// MCP requires at least one content block in the result.
	if len(result.Content) == 0 {
		result.Content = []contentBlock{{Type: "text", Text: ""}}
	}
	return result
}

// classifyError extracts structured error metadata from an error. It
// checks for a categorized fault error first (the primary path), then
// falls back to known error types for defense in depth.
func classifyError(err error) *errorInfo {
	var faultErr *fault.Error
	if errors.As(err, &faultErr) {
		return &errorInfo{
			Category:  string(faultErr.Category),
			Retryable: faultErr.Retryable(),
		}
	}

	// Fallback: API responses that escaped without a fault wrapper.
	var apiErr *googledocs.APIError
	if errors.As(err, &apiErr) {
		category := apiErr.Category()
		return &errorInfo{
			Category:  string(category),
			Retryable: category == fault.CategoryRateLimited,
		}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &errorInfo{Category: string(fault.CategoryTransient), Retryable: true}
	}

	return &errorInfo{Category: string(fault.CategoryInternal), Retryable: false}
}

// BoolPtr returns a pointer to value, for building tool annotations.
func BoolPtr(value bool) *bool {
	return &value
}

// writeResult sends a JSON-RPC 2.0 success response.
func writeResult(encoder *json.Encoder, id json.RawMessage, result any) error {
	return encoder.Encode(response{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

// writeError sends a JSON-RPC 2.0 error response.
func writeError(encoder *json.Encoder, id json.RawMessage, code int, message string) error {
	return encoder.Encode(response{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &rpcError{Code: code, Message: message},
	})
}
