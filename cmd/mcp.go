package cmd

import (
	"github.com/huangsam/buildpulse/internal/history"
	"github.com/huangsam/buildpulse/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the BuildPulse MCP server",
	Long:  `Launch an MCP server that allows AI agents to analyze build-timing reports and query recorded runs via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// MCP mode takes no report path; only the store needs to be up.
		// Keep stdout clean since stdio carries the protocol.
		return historySetup()
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, history.ActiveStore())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
