package cmd

import (
	"github.com/spf13/cobra"

	"github.com/DJSquale/gpt-langchain-agent/internal/mcpserver"
)

func newMCPCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return mcpserver.ServeStdio(rt.registry(), rt.build.version())
		},
	}
}
