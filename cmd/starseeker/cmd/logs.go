package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HikmetCTK/Star-Seeker-mcp/internal/logging"
)

func newLogsCmd() *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent log entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLogs(cmd, lines)
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of trailing lines to show")

	return cmd
}

func runLogs(cmd *cobra.Command, lines int) error {
	path := logging.DefaultLogPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(cmd.OutOrStdout(), "No log file at %s\n", path)
			return nil
		}
		return err
	}

	all := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if lines > 0 && len(all) > lines {
		all = all[len(all)-lines:]
	}
	for _, line := range all {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}
