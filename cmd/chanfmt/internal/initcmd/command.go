package initcmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tinyland-inc/chanfmt/cmd/chanfmt/internal"
	"github.com/tinyland-inc/chanfmt/pkg/config"
)

func NewInitCommand() *cobra.Command {
	var configPath string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		Example: `  chanfmt init
  chanfmt init --config ./chanfmt.json --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := configPath
			if path == "" {
				path = internal.GetConfigPath()
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			}
			if err := config.SaveConfig(path, config.DefaultConfig()); err != nil {
				return fmt.Errorf("error writing config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Config written to %s\n", internal.Logo, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "",
		"Config file path (default: ~/.chanfmt/config.json)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config")

	return cmd
}
