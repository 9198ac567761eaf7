package channels

import (
	"github.com/bwmarrin/discordgo"

	"github.com/tinyland-inc/chanfmt/pkg/bus"
)

// DiscordMaxMessageLength is the content limit of a Discord message.
const DiscordMaxMessageLength = 2000

type DiscordChannel struct {
	*BaseChannel
}

func NewDiscordChannel(opts ...BaseChannelOption) *DiscordChannel {
	opts = append([]BaseChannelOption{WithMaxMessageLength(DiscordMaxMessageLength)}, opts...)
	return &DiscordChannel{BaseChannel: NewBaseChannel("discord", opts...)}
}

// BuildMessages prepares msg as ChannelMessageSendComplex payloads.
func (c *DiscordChannel) BuildMessages(msg bus.OutboundMessage) []*discordgo.MessageSend {
	parts := c.Prepare(msg)
	sends := make([]*discordgo.MessageSend, 0, len(parts))
	for _, p := range parts {
		sends = append(sends, &discordgo.MessageSend{Content: p.Text})
	}
	return sends
}
