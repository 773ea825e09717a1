// Package cmd provides the CLI commands for Star-Seeker.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/HikmetCTK/Star-Seeker-mcp/internal/app"
	"github.com/HikmetCTK/Star-Seeker-mcp/internal/config"
	"github.com/HikmetCTK/Star-Seeker-mcp/internal/logging"
	"github.com/HikmetCTK/Star-Seeker-mcp/internal/profiling"
	"github.com/HikmetCTK/Star-Seeker-mcp/pkg/version"
)

// Profiling flags
var (
	profileCPU   string
	profileMem   string
	profileTrace string
	profiler     = profiling.New()
	cpuCleanup   func()
	traceCleanup func()
)

// Debug logging flag
var (
	debugMode      bool
	loggingCleanup func()
)

// NewRootCmd creates the root command for the starseeker CLI.
func NewRootCmd() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "starseeker",
		Short: "Hybrid search over your GitHub starred repositories",
		Long: `Star-Seeker fetches a user's starred GitHub repositories and makes
them searchable with hybrid search (BM25 + embeddings, fused with
Reciprocal Rank Fusion).

Run 'starseeker fetch <username>' first, then 'starseeker search'.
Running with no subcommand starts the MCP server on stdio.`,
		Version: version.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return cmd.Help()
			}
			// MCP protocol reserves stdout for JSON-RPC, so the default
			// action serves stdio without printing anything first.
			return runServe(cmd)
		},
	}

	cmd.SetVersionTemplate("starseeker version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Override the data directory (default ~/.star-seeker)")
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	cmd.PersistentFlags().StringVar(&profileCPU, "profile-cpu", "", "Write CPU profile to file")
	cmd.PersistentFlags().StringVar(&profileMem, "profile-mem", "", "Write memory profile to file")
	cmd.PersistentFlags().StringVar(&profileTrace, "profile-trace", "", "Write execution trace to file")

	cmd.PersistentPreRunE = startProfilingAndLogging
	cmd.PersistentPostRunE = stopProfilingAndLogging

	cmd.AddCommand(newFetchCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newChatCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newWebCmd())
	cmd.AddCommand(newSessionsCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newLogsCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startProfilingAndLogging routes logs to the rotating file under the data
// directory and starts profiling if requested. Stderr stays quiet so
// command output is the only thing users see.
func startProfilingAndLogging(_ *cobra.Command, _ []string) error {
	logCfg := logging.DefaultConfig()
	logCfg.WriteToStderr = false
	if debugMode {
		logCfg.Level = "debug"
	}

	if logger, cleanup, err := logging.Setup(logCfg); err == nil {
		// Logging failure never blocks a command.
		loggingCleanup = cleanup
		slog.SetDefault(logger)
	}

	var err error
	if profileCPU != "" {
		cpuCleanup, err = profiler.StartCPU(profileCPU)
		if err != nil {
			return fmt.Errorf("failed to start CPU profile: %w", err)
		}
	}
	if profileTrace != "" {
		traceCleanup, err = profiler.StartTrace(profileTrace)
		if err != nil {
			if cpuCleanup != nil {
				cpuCleanup()
			}
			return fmt.Errorf("failed to start trace: %w", err)
		}
	}

	return nil
}

func stopProfilingAndLogging(_ *cobra.Command, _ []string) error {
	if cpuCleanup != nil {
		cpuCleanup()
		cpuCleanup = nil
	}
	if traceCleanup != nil {
		traceCleanup()
		traceCleanup = nil
	}
	if profileMem != "" {
		if err := profiler.WriteHeap(profileMem); err != nil {
			return fmt.Errorf("failed to write memory profile: %w", err)
		}
	}

	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig builds the effective configuration, applying the --data-dir
// flag on top of files and environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		cfg.DataDir = dir
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// newApp wires the application service from configuration.
func newApp(cmd *cobra.Command) (*app.App, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	return app.New(cfg, slog.Default()), cfg, nil
}
