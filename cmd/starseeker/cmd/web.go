package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/HikmetCTK/Star-Seeker-mcp/internal/output"
	"github.com/HikmetCTK/Star-Seeker-mcp/internal/web"
)

func newWebCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Start the HTTP API server",
		Long: `Start the JSON HTTP API server.

Endpoints:
  GET  /healthz
  POST /api/v1/users/{username}/fetch
  GET  /api/v1/users/{username}/search?q=...
  GET  /api/v1/sessions`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWeb(cmd, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config, :8080)")

	return cmd
}

func runWeb(cmd *cobra.Command, addr string) error {
	out := output.New(cmd.OutOrStdout())

	service, cfg, err := newApp(cmd)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	out.Statusf("Listening on %s", cfg.Server.Addr)

	srv := web.NewServer(service, cfg, slog.Default())
	return srv.Run(cmd.Context())
}
