package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dkrylov/shiftline/internal/histstore"
	"github.com/dkrylov/shiftline/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Shiftline MCP server",
	Long:  `Launch an MCP server that allows AI agents to ingest downtime workbooks and query saved history via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Suppress the normal progress output when running in MCP mode
		// to avoid polluting stdio which is used for the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, histstore.Get())
	},
}
