package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/buildpulse/core"
	"github.com/huangsam/buildpulse/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	store contract.HistoryStore
}

// handleAnalyzeBuildTiming analyzes a report without persisting anything.
// MCP callers get the computed result only; summaries and history rows
// are written by the CLI path, not on behalf of a connected model.
func (h *toolHandler) handleAnalyzeBuildTiming(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reportPath := request.GetString("report_path", "")
	if reportPath == "" {
		return mcp.NewToolResultError("report_path is required"), nil
	}
	command := request.GetString("command", "")

	result, err := core.AnalyzeReport(reportPath, command)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	if result == nil {
		return mcp.NewToolResultText("No build units found in the report."), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetBuildHistory(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.store == nil {
		return mcp.NewToolResultError("history tracking is disabled"), nil
	}

	runs, err := h.store.ListRuns()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list runs: %v", err)), nil
	}
	if len(runs) == 0 {
		return mcp.NewToolResultText("No runs recorded yet."), nil
	}

	jsonData, _ := json.MarshalIndent(runs, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
