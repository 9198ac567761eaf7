package channels

import (
	"errors"

	"github.com/google/uuid"

	"github.com/tinyland-inc/chanfmt/pkg/bus"
	"github.com/tinyland-inc/chanfmt/pkg/logger"
	"github.com/tinyland-inc/chanfmt/pkg/msgfmt"
)

// ErrUnknownChannel is returned when a channel name is not registered.
var ErrUnknownChannel = errors.New("unknown channel")

type Channel interface {
	Name() string
	Dialect() msgfmt.Channel
	MaxMessageLength() int
	Prepare(msg bus.OutboundMessage) []Part
}

// Part is one deliverable piece of a rendered outbound message.
type Part struct {
	Key        string `json:"key"`
	Index      int    `json:"index"`
	Total      int    `json:"total"`
	Text       string `json:"text"`
	RenderMode string `json:"render_mode,omitempty"`
}

// BaseChannelOption is a functional option for configuring a BaseChannel.
type BaseChannelOption func(*BaseChannel)

// WithMaxMessageLength sets the maximum message length (in runes) for a channel.
// Rendered messages exceeding this limit are split by Prepare.
// A value of 0 means no limit. Limits under 24 split without balancing code
// fences; see SplitMessage.
func WithMaxMessageLength(n int) BaseChannelOption {
	return func(c *BaseChannel) { c.maxMessageLength = n }
}

// WithRenderer replaces the default markdown renderer.
func WithRenderer(r *msgfmt.Renderer) BaseChannelOption {
	return func(c *BaseChannel) {
		if r != nil {
			c.renderer = r
		}
	}
}

// WithDialect overrides the dialect derived from the channel name.
func WithDialect(d msgfmt.Channel) BaseChannelOption {
	return func(c *BaseChannel) { c.dialect = d }
}

type BaseChannel struct {
	name             string
	dialect          msgfmt.Channel
	maxMessageLength int
	renderer         *msgfmt.Renderer
}

func NewBaseChannel(name string, opts ...BaseChannelOption) *BaseChannel {
	bc := &BaseChannel{
		name:     name,
		dialect:  msgfmt.ParseChannel(name),
		renderer: msgfmt.New(),
	}
	for _, opt := range opts {
		opt(bc)
	}
	return bc
}

func (c *BaseChannel) Name() string {
	return c.name
}

func (c *BaseChannel) Dialect() msgfmt.Channel {
	return c.dialect
}

// MaxMessageLength returns the maximum message length (in runes) for this channel.
// A value of 0 means no limit.
func (c *BaseChannel) MaxMessageLength() int {
	return c.maxMessageLength
}

// Prepare renders msg.Content into the channel dialect and splits the result
// to the channel's length limit. Every part shares the message ID in its key;
// a message without an ID gets one generated. Empty content yields no parts.
func (c *BaseChannel) Prepare(msg bus.OutboundMessage) []Part {
	rendered := c.renderer.Render(msg.Content, c.dialect)
	chunks := SplitMessage(rendered.Text, c.maxMessageLength, c.dialect)
	if len(chunks) == 0 {
		return nil
	}
	if len(chunks) > 1 {
		logger.InfoCF("channels", "Message split", map[string]any{
			"channel": c.name,
			"parts":   len(chunks),
			"limit":   c.maxMessageLength,
		})
	}

	id := msg.ID
	if id == "" {
		id = uuid.New().String()
	}

	parts := make([]Part, len(chunks))
	for i, chunk := range chunks {
		parts[i] = Part{
			Key:        bus.PartKey(c.name, msg.ChatID, id, i),
			Index:      i,
			Total:      len(chunks),
			Text:       chunk,
			RenderMode: rendered.RenderMode,
		}
	}
	return parts
}
