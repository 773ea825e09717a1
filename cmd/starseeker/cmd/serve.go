package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/HikmetCTK/Star-Seeker-mcp/internal/mcp"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		Long: `Start the Model Context Protocol server on stdio.

Exposes fetch_stars_for_user and search_stars tools for AI assistants.
Stdout carries JSON-RPC only; logs go to the data directory.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	service, cfg, err := newApp(cmd)
	if err != nil {
		return err
	}

	logger := slog.Default()
	logger.Info("mcp_server_starting", slog.String("data_dir", cfg.DataDir))

	srv := mcp.NewServer(service, cfg, logger)
	return srv.Serve(cmd.Context())
}
