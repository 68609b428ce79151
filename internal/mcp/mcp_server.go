// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/buildpulse/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the BuildPulse MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(store contract.HistoryStore) *server.MCPServer {
	s := server.NewMCPServer(
		"BuildPulse Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{store: store}

	// --- 1. Tool: analyze_build_timing ---
	s.AddTool(mcp.NewTool("analyze_build_timing",
		mcp.WithDescription("Parse a Cargo build-timing HTML report and compute total build time, blocked time, unit count, and the first and last compilation units."),
		mcp.WithString("report_path", mcp.Description("Path to the cargo-timing HTML report."), mcp.Required()),
		mcp.WithString("command", mcp.Description("Build command to associate with the report (optional).")),
	), h.handleAnalyzeBuildTiming)

	// --- 2. Tool: get_build_history ---
	s.AddTool(mcp.NewTool("get_build_history",
		mcp.WithDescription("List previously recorded build runs from the history store, ordered by start time."),
	), h.handleGetBuildHistory)

	return s
}

// StartMCPServer starts the BuildPulse MCP server.
func StartMCPServer(_ context.Context, store contract.HistoryStore) error {
	s := NewMCPServer(store)
	return server.ServeStdio(s)
}
