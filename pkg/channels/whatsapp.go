package channels

import (
	"github.com/tinyland-inc/chanfmt/pkg/bus"
)

// WhatsAppMaxMessageLength is the text body limit of the Cloud API.
const WhatsAppMaxMessageLength = 65536

// WhatsAppPayload is the JSON body posted to a WhatsApp bridge.
type WhatsAppPayload struct {
	To   string `json:"to"`
	Text string `json:"text"`
}

type WhatsAppChannel struct {
	*BaseChannel
}

func NewWhatsAppChannel(opts ...BaseChannelOption) *WhatsAppChannel {
	opts = append([]BaseChannelOption{WithMaxMessageLength(WhatsAppMaxMessageLength)}, opts...)
	return &WhatsAppChannel{BaseChannel: NewBaseChannel("whatsapp", opts...)}
}

func (c *WhatsAppChannel) BuildMessages(msg bus.OutboundMessage) []WhatsAppPayload {
	parts := c.Prepare(msg)
	out := make([]WhatsAppPayload, 0, len(parts))
	for _, p := range parts {
		out = append(out, WhatsAppPayload{To: msg.ChatID, Text: p.Text})
	}
	return out
}
