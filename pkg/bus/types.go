package bus

import (
	"strconv"

	"github.com/google/uuid"
)

// OutboundMessage is a reply on its way to a messaging channel. Content is
// generic markdown; channels render it into their own dialect.
type OutboundMessage struct {
	ID      string `json:"id"`
	Channel string `json:"channel"`
	ChatID  string `json:"chat_id"`
	Content string `json:"content"`
}

// NewOutboundMessage returns a message with a freshly generated ID.
func NewOutboundMessage(channel, chatID, content string) OutboundMessage {
	return OutboundMessage{
		ID:      uuid.New().String(),
		Channel: channel,
		ChatID:  chatID,
		Content: content,
	}
}

// PartKey builds the key identifying one delivered part of a message.
// An empty messageID gets a generated one.
func PartKey(channel, chatID, messageID string, part int) string {
	id := messageID
	if id == "" {
		id = uuid.New().String()
	}
	return channel + ":" + chatID + ":" + id + ":" + strconv.Itoa(part)
}
