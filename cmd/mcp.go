package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nutriscope/nutriscope/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Nutriscope MCP server",
	Long: `Launch an MCP server that allows AI agents to fetch nutrition and
health data via standard tools. Tool results carry the same source and
staleness metadata as the JSON output mode.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Keep stdout clean for the protocol; all setup output goes to
		// stderr via the shared logging helpers.
		return sharedSetup(rootCtx, cmd, args)
	},
	PostRun: sharedTeardown,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, apiClient, storeManager, sink)
	},
}
