package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tinyland-inc/chanfmt/cmd/chanfmt/internal"
	"github.com/tinyland-inc/chanfmt/pkg/bus"
	"github.com/tinyland-inc/chanfmt/pkg/channels"
	"github.com/tinyland-inc/chanfmt/pkg/msgfmt"
)

type options struct {
	Channel    string
	ChatID     string
	ConfigPath string
	MaxLength  int
	JSON       bool
	Debug      bool
}

// output is the --json document.
type output struct {
	ID      string          `json:"id"`
	Channel string          `json:"channel"`
	Dialect string          `json:"dialect"`
	Parts   []channels.Part `json:"parts"`
}

func NewRenderCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render markdown into a channel's dialect",
		Args:  cobra.MaximumNArgs(1),
		Example: `  chanfmt render --channel telegram notes.md
  echo '**hi**' | chanfmt render --channel whatsapp
  chanfmt render --channel discord --max-length 500 --json notes.md`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderCmd(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Channel, "channel", "c", "",
		"Target channel or dialect (default: render.default_channel)")
	cmd.Flags().StringVar(&opts.ChatID, "chat-id", "",
		"Chat ID recorded in part keys")
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "",
		"Config file path (default: ~/.chanfmt/config.json)")
	cmd.Flags().IntVar(&opts.MaxLength, "max-length", -1,
		"Split output into parts of at most this many runes (0 disables)")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Print the parts as JSON")
	cmd.Flags().BoolVarP(&opts.Debug, "debug", "d", false, "Enable debug logging")

	return cmd
}

func renderCmd(cmd *cobra.Command, args []string, opts options) error {
	cfg, err := internal.LoadConfig(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	internal.ApplyLogLevel(cfg, opts.Debug)

	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	name := opts.Channel
	if name == "" {
		name = cfg.Render.DefaultChannel
	}

	renderer := msgfmt.New(msgfmt.WithTableWidth(cfg.Render.TableWidth))
	ch, err := channels.NewManager(cfg, renderer).Get(name)
	if errors.Is(err, channels.ErrUnknownChannel) {
		ch = channels.NewBaseChannel(name, channels.WithRenderer(renderer))
	}
	if opts.MaxLength >= 0 {
		ch = channels.NewBaseChannel(ch.Name(),
			channels.WithRenderer(renderer),
			channels.WithDialect(ch.Dialect()),
			channels.WithMaxMessageLength(opts.MaxLength),
		)
	}

	msg := bus.NewOutboundMessage(ch.Name(), opts.ChatID, input)
	parts := ch.Prepare(msg)

	out := cmd.OutOrStdout()
	if opts.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(output{
			ID:      msg.ID,
			Channel: ch.Name(),
			Dialect: ch.Dialect().String(),
			Parts:   parts,
		})
	}

	if len(parts) == 1 {
		_, err = fmt.Fprintln(out, parts[0].Text)
		return err
	}
	for _, p := range parts {
		if _, err := fmt.Fprintf(out, "--- part %d/%d ---\n%s\n", p.Index+1, p.Total, p.Text); err != nil {
			return err
		}
	}
	return nil
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("error reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("error reading %s: %w", args[0], err)
	}
	return string(data), nil
}
