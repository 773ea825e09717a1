package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HikmetCTK/Star-Seeker-mcp/internal/output"
)

func newSessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List users with fetched star data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSessions(cmd)
		},
	}
}

// runSessions lists usernames by scanning stored stars files, since CLI
// invocations don't share the in-memory engine registry.
func runSessions(cmd *cobra.Command) error {
	out := output.New(cmd.OutOrStdout())

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(cfg.DataDir)
	if err != nil {
		return err
	}

	var usernames []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, "_stars.json") {
			continue
		}
		if strings.HasSuffix(name, "_stars_embeddings.json") {
			continue
		}
		if username := strings.TrimSuffix(name, "_stars.json"); username != "" {
			usernames = append(usernames, username)
		}
	}

	if len(usernames) == 0 {
		out.Status("No star data found. Run 'starseeker fetch <username>' first.")
		return nil
	}

	out.Header("Stored star data")
	for _, username := range usernames {
		path := filepath.Join(cfg.DataDir, username+"_stars.json")
		if info, err := os.Stat(path); err == nil {
			out.Statusf("%s (updated %s)", username, info.ModTime().Format("2006-01-02 15:04"))
		} else {
			out.Status(username)
		}
	}
	return nil
}
