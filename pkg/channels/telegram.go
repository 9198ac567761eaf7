package channels

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mymmrac/telego"

	"github.com/tinyland-inc/chanfmt/pkg/bus"
)

// TelegramMaxMessageLength is the Bot API limit for sendMessage text.
const TelegramMaxMessageLength = 4096

// ErrInvalidChatID is returned when a chat ID is neither numeric nor an
// @username.
var ErrInvalidChatID = errors.New("invalid chat id")

type TelegramChannel struct {
	*BaseChannel
}

func NewTelegramChannel(opts ...BaseChannelOption) *TelegramChannel {
	opts = append([]BaseChannelOption{WithMaxMessageLength(TelegramMaxMessageLength)}, opts...)
	return &TelegramChannel{BaseChannel: NewBaseChannel("telegram", opts...)}
}

// ParseChatID accepts a numeric chat ID or a public @username.
func ParseChatID(s string) (telego.ChatID, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "@") && len(s) > 1 {
		return telego.ChatID{Username: s}, nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return telego.ChatID{}, fmt.Errorf("%w: %q", ErrInvalidChatID, s)
	}
	return telego.ChatID{ID: id}, nil
}

// BuildMessages prepares msg as sendMessage calls, one per part.
func (c *TelegramChannel) BuildMessages(msg bus.OutboundMessage) ([]*telego.SendMessageParams, error) {
	chatID, err := ParseChatID(msg.ChatID)
	if err != nil {
		return nil, err
	}

	parts := c.Prepare(msg)
	params := make([]*telego.SendMessageParams, 0, len(parts))
	for _, p := range parts {
		params = append(params, &telego.SendMessageParams{
			ChatID:    chatID,
			Text:      p.Text,
			ParseMode: p.RenderMode,
		})
	}
	return params, nil
}
