package channels

import (
	"fmt"
	"sort"

	"github.com/tinyland-inc/chanfmt/pkg/config"
	"github.com/tinyland-inc/chanfmt/pkg/logger"
	"github.com/tinyland-inc/chanfmt/pkg/msgfmt"
)

// Manager holds the enabled delivery channels.
type Manager struct {
	channels map[string]Channel
}

// NewManager builds every channel enabled in cfg. All channels share
// renderer; a nil renderer uses one configured from cfg.Render.
func NewManager(cfg *config.Config, renderer *msgfmt.Renderer) *Manager {
	if renderer == nil {
		renderer = msgfmt.New(msgfmt.WithTableWidth(cfg.Render.TableWidth))
	}

	m := &Manager{channels: make(map[string]Channel)}
	for name, chCfg := range cfg.ChannelMap() {
		if !chCfg.Enabled {
			continue
		}
		opts := []BaseChannelOption{WithRenderer(renderer)}
		if chCfg.MaxMessageLength > 0 {
			opts = append(opts, WithMaxMessageLength(chCfg.MaxMessageLength))
		}
		if chCfg.Dialect != "" {
			opts = append(opts, WithDialect(msgfmt.ParseChannel(chCfg.Dialect)))
		}

		var ch Channel
		switch name {
		case "telegram":
			ch = NewTelegramChannel(opts...)
		case "discord":
			ch = NewDiscordChannel(opts...)
		case "slack":
			ch = NewSlackChannel(opts...)
		case "whatsapp":
			ch = NewWhatsAppChannel(opts...)
		default:
			ch = NewBaseChannel(name, opts...)
		}
		m.channels[name] = ch

		logger.DebugCF("channels", "Channel enabled", map[string]any{
			"channel":    name,
			"dialect":    ch.Dialect().String(),
			"max_length": ch.MaxMessageLength(),
		})
	}
	return m
}

// Get returns the named channel or an error wrapping ErrUnknownChannel.
func (m *Manager) Get(name string) (Channel, error) {
	ch, ok := m.channels[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownChannel, name)
	}
	return ch, nil
}

// Names returns the enabled channel names in sorted order.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.channels))
	for name := range m.channels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
