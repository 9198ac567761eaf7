package channels

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tinyland-inc/chanfmt/cmd/chanfmt/internal"
	"github.com/tinyland-inc/chanfmt/pkg/channels"
)

func NewChannelsCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:     "channels",
		Aliases: []string{"ls"},
		Short:   "List enabled channels and their dialects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := internal.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("error loading config: %w", err)
			}

			mgr := channels.NewManager(cfg, nil)
			out := cmd.OutOrStdout()
			for _, name := range mgr.Names() {
				ch, err := mgr.Get(name)
				if err != nil {
					return err
				}
				limit := "unlimited"
				if n := ch.MaxMessageLength(); n > 0 {
					limit = fmt.Sprintf("%d", n)
				}
				fmt.Fprintf(out, "%-10s %-12s %s\n", name, ch.Dialect(), limit)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "",
		"Config file path (default: ~/.chanfmt/config.json)")

	return cmd
}
