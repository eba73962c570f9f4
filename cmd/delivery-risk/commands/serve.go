package commands

import (
	"context"

	"delivery-risk/internal/mcp"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analytics as MCP tools over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return mcp.NewServer(cfg, Version).Start(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
