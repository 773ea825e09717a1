package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/HikmetCTK/Star-Seeker-mcp/internal/config"
	"github.com/HikmetCTK/Star-Seeker-mcp/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd)
		},
	})

	return cmd
}

// runConfigShow prints the effective config as YAML. Credentials are
// excluded from serialization by the config struct tags.
func runConfigShow(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", config.UserConfigPath(), data)
	return nil
}

func runConfigInit(cmd *cobra.Command) error {
	out := output.New(cmd.OutOrStdout())
	path := config.UserConfigPath()

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists at %s", path)
	}

	cfg := config.New()
	if err := cfg.WriteYAML(path); err != nil {
		return err
	}

	out.Successf("Wrote default config to %s", path)
	return nil
}
