// chanfmt - Render markdown for messaging channels
// License: MIT
//
// Copyright (c) 2026 chanfmt contributors

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tinyland-inc/chanfmt/cmd/chanfmt/internal"
	"github.com/tinyland-inc/chanfmt/cmd/chanfmt/internal/channels"
	"github.com/tinyland-inc/chanfmt/cmd/chanfmt/internal/initcmd"
	"github.com/tinyland-inc/chanfmt/cmd/chanfmt/internal/migrate"
	"github.com/tinyland-inc/chanfmt/cmd/chanfmt/internal/render"
	"github.com/tinyland-inc/chanfmt/cmd/chanfmt/internal/version"
)

func NewChanfmtCommand() *cobra.Command {
	short := fmt.Sprintf("%s chanfmt - Markdown for messaging channels v%s\n\n", internal.Logo, internal.GetVersion())

	cmd := &cobra.Command{
		Use:     "chanfmt",
		Short:   short,
		Example: "chanfmt render --channel telegram README.md",
	}

	cmd.AddCommand(
		initcmd.NewInitCommand(),
		render.NewRenderCommand(),
		channels.NewChannelsCommand(),
		migrate.NewMigrateCommand(),
		version.NewVersionCommand(),
	)

	return cmd
}

func main() {
	cmd := NewChanfmtCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
