package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HikmetCTK/Star-Seeker-mcp/internal/output"
	"github.com/HikmetCTK/Star-Seeker-mcp/internal/search"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	limit  int
	format string // "text", "json"
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <username> <query>",
		Short: "Search a user's starred repositories",
		Long: `Search previously fetched starred repositories using hybrid search.

Combines BM25 (keyword) and embedding (semantic) rankings with
Reciprocal Rank Fusion. Falls back to keyword-only search when no
embedding provider is configured.

Examples:
  starseeker search octocat "python machine learning"
  starseeker search octocat terminal ui --limit 3
  starseeker search octocat "rust cli" --format json`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args[1:], " ")
			return runSearch(cmd, args[0], query, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Maximum results per query (default from config)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")

	return cmd
}

func runSearch(cmd *cobra.Command, username, query string, opts searchOptions) error {
	out := output.New(cmd.OutOrStdout())

	service, _, err := newApp(cmd)
	if err != nil {
		return err
	}

	slog.Info("search_started",
		slog.String("username", username),
		slog.String("query", query),
		slog.Int("limit", opts.limit))

	results, source, err := service.Search(cmd.Context(), username, query, opts.limit)
	if err != nil {
		out.Error(err.Error())
		return fmt.Errorf("search failed")
	}

	switch opts.format {
	case "json":
		return formatJSON(cmd, results, source)
	default:
		formatText(out, results, source)
		return nil
	}
}

// formatText renders results grouped per query intent.
func formatText(out *output.Writer, results []search.IntentResult, source string) {
	styles := out.Styles()

	for _, intent := range results {
		out.Header(fmt.Sprintf("--- Results for: %s %s ---",
			intent.Query,
			styles.Source.Render("(via "+strings.ToUpper(source)+")")))

		if len(intent.Repos) == 0 {
			out.Status("No matches found.")
			out.Newline()
			continue
		}

		for i, repo := range intent.Repos {
			out.Repo(i+1, repo)
		}
		out.Newline()
	}
}

// formatJSON renders results as machine-readable JSON.
func formatJSON(cmd *cobra.Command, results []search.IntentResult, source string) error {
	payload := struct {
		Source  string                `json:"source"`
		Results []search.IntentResult `json:"results"`
	}{Source: source, Results: results}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
