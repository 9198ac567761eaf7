package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	"github.com/caarlos0/env/v11"

	"github.com/tinyland-inc/chanfmt/pkg/logger"
	"github.com/tinyland-inc/chanfmt/pkg/msgfmt"
)

// ErrDhallNotAvailable is returned when dhall-to-json is not installed.
var ErrDhallNotAvailable = errors.New("dhall-to-json not available")

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Render   RenderConfig   `json:"render"`
	Channels ChannelsConfig `json:"channels"`
	LogLevel string         `env:"CHANFMT_LOG_LEVEL" json:"log_level"`
}

type RenderConfig struct {
	DefaultChannel string `env:"CHANFMT_RENDER_DEFAULT_CHANNEL" json:"default_channel"`
	TableWidth     int    `env:"CHANFMT_RENDER_TABLE_WIDTH"     json:"table_width"`
}

type ChannelsConfig struct {
	Telegram ChannelConfig `envPrefix:"CHANFMT_CHANNELS_TELEGRAM_" json:"telegram"`
	Discord  ChannelConfig `envPrefix:"CHANFMT_CHANNELS_DISCORD_"  json:"discord"`
	Slack    ChannelConfig `envPrefix:"CHANFMT_CHANNELS_SLACK_"    json:"slack"`
	WhatsApp ChannelConfig `envPrefix:"CHANFMT_CHANNELS_WHATSAPP_" json:"whatsapp"`
}

// ChannelConfig overrides a delivery channel's defaults. An empty Dialect
// keeps the channel's own, and a zero MaxMessageLength keeps the platform
// limit.
type ChannelConfig struct {
	Enabled          bool   `env:"ENABLED"            json:"enabled"`
	Dialect          string `env:"DIALECT"            json:"dialect,omitempty"`
	MaxMessageLength int    `env:"MAX_MESSAGE_LENGTH" json:"max_message_length,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			DefaultChannel: string(msgfmt.ChannelPlaintext),
			TableWidth:     msgfmt.DefaultTableWidth,
		},
		Channels: ChannelsConfig{
			Telegram: ChannelConfig{Enabled: true},
			Discord:  ChannelConfig{Enabled: true},
			Slack:    ChannelConfig{Enabled: true},
			WhatsApp: ChannelConfig{Enabled: true},
		},
		LogLevel: "info",
	}
}

// LoadDhallConfig loads configuration from a .dhall file by invoking
// dhall-to-json and parsing the resulting JSON.
func LoadDhallConfig(path string) (*Config, error) {
	dhallBin, err := exec.LookPath("dhall-to-json")
	if errors.Is(err, exec.ErrNotFound) {
		return nil, ErrDhallNotAvailable
	}
	if err != nil {
		return nil, fmt.Errorf("dhall-to-json lookup: %w", err)
	}

	cmd := exec.Command(dhallBin, "--file", path)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("dhall-to-json failed for %s: %w\n%s", path, err, stderr.String())
	}

	return parseConfig(out)
}

// LoadConfig reads a JSON config file. A missing file yields the defaults.
// Environment variables override file values in both cases.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		data = nil
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.DebugCF("config", "Config loaded", map[string]any{
		"default_channel": cfg.Render.DefaultChannel,
		"table_width":     cfg.Render.TableWidth,
	})
	return cfg, nil
}

func SaveConfig(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Validate checks dialect names, lengths and the log level.
func (c *Config) Validate() error {
	if c.Render.DefaultChannel != "" {
		if _, ok := msgfmt.LookupChannel(c.Render.DefaultChannel); !ok {
			return fmt.Errorf("%w: render.default_channel %q", ErrInvalidConfig, c.Render.DefaultChannel)
		}
	}
	if c.Render.TableWidth < 0 {
		return fmt.Errorf("%w: render.table_width must not be negative", ErrInvalidConfig)
	}

	channels := c.ChannelMap()
	for _, name := range sortedNames(channels) {
		ch := channels[name]
		if ch.Dialect != "" {
			if _, ok := msgfmt.LookupChannel(ch.Dialect); !ok {
				return fmt.Errorf("%w: channels.%s.dialect %q", ErrInvalidConfig, name, ch.Dialect)
			}
		}
		if ch.MaxMessageLength < 0 {
			return fmt.Errorf("%w: channels.%s.max_message_length must not be negative", ErrInvalidConfig, name)
		}
	}

	if c.LogLevel != "" {
		if _, err := logger.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// ChannelMap returns the channel settings keyed by channel name.
func (c *Config) ChannelMap() map[string]ChannelConfig {
	return map[string]ChannelConfig{
		"telegram": c.Channels.Telegram,
		"discord":  c.Channels.Discord,
		"slack":    c.Channels.Slack,
		"whatsapp": c.Channels.WhatsApp,
	}
}

// DefaultChannel resolves Render.DefaultChannel to a dialect.
func (c *Config) DefaultChannel() msgfmt.Channel {
	return msgfmt.ParseChannel(c.Render.DefaultChannel)
}

func sortedNames(m map[string]ChannelConfig) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
