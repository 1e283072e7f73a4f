package cmd

import (
	"github.com/huangsam/gitbloat/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp [repo-path]",
	Short: "Start the gitbloat MCP server",
	Long:  `Launch an MCP server on stdio that lets AI agents list large Git objects via standard tools.`,
	Args:  cobra.MaximumNArgs(1),
	// Scan progress is suppressed inside the tools since stdio carries the protocol.
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, gitClient, historyManager)
	},
}
