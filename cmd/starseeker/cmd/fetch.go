package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/HikmetCTK/Star-Seeker-mcp/internal/output"
)

func newFetchCmd() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "fetch <username>",
		Short: "Fetch and store a user's starred repositories",
		Long: `Fetch all starred repositories for a GitHub user and store them
locally for searching.

Repositories below the configured star threshold are skipped.
A GitHub token (GITHUB_TOKEN or --token) raises the rate limit.

Examples:
  starseeker fetch octocat
  starseeker fetch octocat --token ghp_xxx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, args[0], token)
		},
	}

	cmd.Flags().StringVarP(&token, "token", "t", "", "GitHub personal access token")

	return cmd
}

func runFetch(cmd *cobra.Command, username, token string) error {
	out := output.New(cmd.OutOrStdout())

	service, _, err := newApp(cmd)
	if err != nil {
		return err
	}

	out.Statusf("Fetching starred repositories for %s...", username)

	result, err := service.FetchStars(cmd.Context(), username, token)
	if err != nil {
		slog.Error("fetch_failed", slog.String("username", username), slog.String("error", err.Error()))
		out.Error(err.Error())
		return fmt.Errorf("fetch failed")
	}

	out.Successf("Fetched %d starred repositories for %s", result.Count, result.Username)
	if result.Source == "keyword" {
		out.Status("Semantic search unavailable, sessions will be keyword-only")
	} else {
		out.Statusf("Embeddings via %s", result.Source)
	}
	return nil
}
