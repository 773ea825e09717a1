package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HikmetCTK/Star-Seeker-mcp/pkg/version"
)

func newVersionCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			if verbose {
				info := version.GetInfo()
				fmt.Fprintf(cmd.OutOrStdout(), "starseeker version %s\n", info.Version)
				fmt.Fprintf(cmd.OutOrStdout(), "  commit:  %s\n", info.Commit)
				fmt.Fprintf(cmd.OutOrStdout(), "  built:   %s\n", info.Date)
				fmt.Fprintf(cmd.OutOrStdout(), "  go:      %s\n", info.GoVersion)
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "starseeker version %s\n", version.Version)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show build details")

	return cmd
}
