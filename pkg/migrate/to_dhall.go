package migrate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tinyland-inc/chanfmt/pkg/config"
	"github.com/tinyland-inc/chanfmt/pkg/logger"
)

// ToDhallOptions controls JSON-to-Dhall config migration.
type ToDhallOptions struct {
	ConfigPath string // JSON config path (default: ~/.chanfmt/config.json)
	OutputPath string // Dhall output path (default: same dir, .dhall extension)
	DryRun     bool
	Force      bool
}

// ToDhallResult summarizes the conversion.
type ToDhallResult struct {
	OutputPath string
	Source     string
	Warnings   []string
}

// RunToDhall converts a JSON config file to Dhall format. With DryRun set
// nothing is written and the generated source is only returned.
func RunToDhall(opts ToDhallOptions) (*ToDhallResult, error) {
	configPath := opts.ConfigPath
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		configPath = filepath.Join(home, ".chanfmt", "config.json")
	}

	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = strings.TrimSuffix(configPath, ".json") + ".dhall"
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	result := &ToDhallResult{OutputPath: outputPath}
	result.Warnings = envOverrideWarnings(os.Environ())
	result.Source = configToDhall(cfg)

	if opts.DryRun {
		return result, nil
	}

	if !opts.Force {
		if _, err := os.Stat(outputPath); err == nil {
			return nil, fmt.Errorf("output file already exists: %s (use --force to overwrite)", outputPath)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(outputPath, []byte(result.Source), 0o600); err != nil {
		return nil, err
	}

	logger.InfoCF("migrate", "Dhall config written", map[string]any{
		"from": configPath,
		"to":   outputPath,
	})
	return result, nil
}

// envOverrideWarnings reports CHANFMT_ variables whose values were baked
// into the generated file.
func envOverrideWarnings(environ []string) []string {
	var warnings []string
	for _, kv := range environ {
		name, _, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(name, "CHANFMT_") {
			warnings = append(warnings, fmt.Sprintf("%s override included in output", name))
		}
	}
	return warnings
}

// configToDhall renders a Config as Dhall source text.
func configToDhall(cfg *config.Config) string {
	var b strings.Builder

	b.WriteString("-- chanfmt configuration (generated from JSON)\n")
	b.WriteString("-- Edit this file to manage your configuration as typed Dhall.\n\n")
	b.WriteString("let Channel = { enabled : Bool, dialect : Text, max_message_length : Natural }\n\n")

	b.WriteString("in  { render =\n")
	b.WriteString("      { default_channel = " + dhallText(cfg.Render.DefaultChannel) + "\n")
	b.WriteString("      , table_width = " + dhallNatural(cfg.Render.TableWidth) + "\n")
	b.WriteString("      }\n")
	b.WriteString("    , channels =\n")
	renderChannels(&b, &cfg.Channels, "      ")
	b.WriteString("    , log_level = " + dhallText(cfg.LogLevel) + "\n")
	b.WriteString("    }\n")

	return b.String()
}

func renderChannels(b *strings.Builder, ch *config.ChannelsConfig, indent string) {
	entries := []struct {
		name string
		cfg  config.ChannelConfig
	}{
		{"telegram", ch.Telegram},
		{"discord", ch.Discord},
		{"slack", ch.Slack},
		{"whatsapp", ch.WhatsApp},
	}
	for i, e := range entries {
		sep := ", "
		if i == 0 {
			sep = "{ "
		}
		fmt.Fprintf(b, "%s%s%s = { enabled = %s, dialect = %s, max_message_length = %s } : Channel\n",
			indent, sep, e.name,
			dhallBool(e.cfg.Enabled), dhallText(e.cfg.Dialect), dhallNatural(e.cfg.MaxMessageLength))
	}
	b.WriteString(indent + "}\n")
}

// Dhall literal helpers

// dhallText quotes s as a Dhall text literal. JSON string escapes are valid
// Dhall; only interpolation needs extra escaping.
func dhallText(s string) string {
	quoted, _ := json.Marshal(s)
	return strings.ReplaceAll(string(quoted), "${", `\${`)
}

func dhallBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func dhallNatural(n int) string {
	if n < 0 {
		n = 0
	}
	return fmt.Sprintf("%d", n)
}
