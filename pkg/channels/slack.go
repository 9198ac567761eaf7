package channels

import (
	"github.com/slack-go/slack"

	"github.com/tinyland-inc/chanfmt/pkg/bus"
	"github.com/tinyland-inc/chanfmt/pkg/msgfmt"
)

// SlackMaxMessageLength is the chat.postMessage text limit.
const SlackMaxMessageLength = 40000

// SlackChannel renders into the relaxed dialect; mrkdwn shares its
// single-character emphasis.
type SlackChannel struct {
	*BaseChannel
}

func NewSlackChannel(opts ...BaseChannelOption) *SlackChannel {
	opts = append([]BaseChannelOption{
		WithMaxMessageLength(SlackMaxMessageLength),
		WithDialect(msgfmt.ChannelRelaxed),
	}, opts...)
	return &SlackChannel{BaseChannel: NewBaseChannel("slack", opts...)}
}

// BuildMessages returns the PostMessage options for each part.
func (c *SlackChannel) BuildMessages(msg bus.OutboundMessage) [][]slack.MsgOption {
	parts := c.Prepare(msg)
	out := make([][]slack.MsgOption, 0, len(parts))
	for _, p := range parts {
		out = append(out, []slack.MsgOption{slack.MsgOptionText(p.Text, false)})
	}
	return out
}
