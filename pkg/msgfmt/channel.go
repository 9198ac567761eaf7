// Package msgfmt converts generic markdown into the formatting dialect of a
// messaging channel.
//
// Three dialects are produced: the strict escaped dialect used by Telegram's
// MarkdownV2 parse mode, the relaxed single-character emphasis dialect used by
// WhatsApp, and plain text. Discord understands markdown natively and receives
// the input untouched.
//
// Rendering is a pure function of (text, channel). Code spans are split out
// first and never rewritten; pipe tables are laid out per channel; the rest is
// tokenized in a single linear scan and emitted through the channel's dialect.
package msgfmt

import "strings"

// Channel identifies the formatting dialect a message is rendered into.
type Channel string

const (
	ChannelStrict      Channel = "strict"
	ChannelRelaxed     Channel = "relaxed"
	ChannelPassthrough Channel = "passthrough"
	ChannelPlaintext   Channel = "plaintext"
)

// ParseChannel maps a channel identifier to its dialect. Platform names are
// accepted as aliases; anything unrecognized renders as plain text.
func ParseChannel(id string) Channel {
	ch, _ := LookupChannel(id)
	return ch
}

// LookupChannel is like ParseChannel but also reports whether id was
// recognized.
func LookupChannel(id string) (Channel, bool) {
	switch strings.ToLower(strings.TrimSpace(id)) {
	case "strict", "telegram":
		return ChannelStrict, true
	case "relaxed", "whatsapp":
		return ChannelRelaxed, true
	case "passthrough", "discord":
		return ChannelPassthrough, true
	case "plaintext", "other":
		return ChannelPlaintext, true
	default:
		return ChannelPlaintext, false
	}
}

func (c Channel) String() string {
	return string(c)
}

// RenderedMessage is the output of Render. RenderMode is empty unless the
// delivery layer has to be told which wire dialect Text uses.
type RenderedMessage struct {
	Text       string `json:"text"`
	RenderMode string `json:"render_mode,omitempty"`
}

// HasRenderMode reports whether the message carries out-of-band mode metadata.
func (m RenderedMessage) HasRenderMode() bool {
	return m.RenderMode != ""
}
