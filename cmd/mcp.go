package cmd

import (
	"github.com/spf13/cobra"

	"github.com/viratco/klord/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:     "mcp",
	Short:   "Start the klord MCP server",
	Long:    `Launch an MCP server over stdio that lets AI agents query dashboard series, charts and records via standard tools.`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		// Tool handlers suppress run headers so stdio stays reserved for the protocol
		return mcp.StartMCPServer(rootCtx, cfg, recordSource, cacheManager)
	},
}
