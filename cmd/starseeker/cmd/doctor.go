package cmd

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/HikmetCTK/Star-Seeker-mcp/internal/output"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the environment and report problems",
		Long: `Run diagnostic checks: data directory, credentials, and GitHub API
reachability. Warnings are advisory; the command fails only when a
check would block fetching.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd)
		},
	}
}

func runDoctor(cmd *cobra.Command) error {
	out := output.New(cmd.OutOrStdout())

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out.Header("Star-Seeker doctor")
	failed := false

	// Data directory must be writable for stars and embedding caches.
	probe := filepath.Join(cfg.DataDir, ".doctor-probe")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		out.Errorf("Data directory not writable: %s", cfg.DataDir)
		failed = true
	} else {
		_ = os.Remove(probe)
		out.Successf("Data directory writable: %s", cfg.DataDir)
	}

	if cfg.GitHub.Token == "" {
		out.Warning("GITHUB_TOKEN not set: unauthenticated rate limit is 60 requests/hour")
	} else {
		out.Success("GitHub token configured")
	}

	if cfg.Embeddings.APIKey == "" {
		out.Warning("OPENAI_API_KEY not set: search will be keyword-only")
	} else {
		out.Successf("Embedding provider configured: %s/%s", cfg.Embeddings.Provider, cfg.Embeddings.Model)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, cfg.GitHub.APIBase, nil)
	if err != nil {
		out.Errorf("GitHub API probe failed: %v", err)
		failed = true
	} else if resp, err := client.Do(req); err != nil {
		out.Errorf("GitHub API unreachable: %v", err)
		failed = true
	} else {
		_ = resp.Body.Close()
		out.Successf("GitHub API reachable: %s", cfg.GitHub.APIBase)
	}

	if failed {
		return fmt.Errorf("doctor found problems")
	}
	out.Newline()
	out.Status("All checks passed.")
	return nil
}
