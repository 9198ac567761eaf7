package msgfmt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tinyland-inc/chanfmt/pkg/msgfmt"
)

func TestParseChannel(t *testing.T) {
	tests := map[string]msgfmt.Channel{
		"strict":      msgfmt.ChannelStrict,
		"telegram":    msgfmt.ChannelStrict,
		" Telegram ":  msgfmt.ChannelStrict,
		"relaxed":     msgfmt.ChannelRelaxed,
		"WhatsApp":    msgfmt.ChannelRelaxed,
		"passthrough": msgfmt.ChannelPassthrough,
		"discord":     msgfmt.ChannelPassthrough,
		"plaintext":   msgfmt.ChannelPlaintext,
		"other":       msgfmt.ChannelPlaintext,
		"":            msgfmt.ChannelPlaintext,
		"sms":         msgfmt.ChannelPlaintext,
	}
	for id, want := range tests {
		assert.Equal(t, want, msgfmt.ParseChannel(id), "id %q", id)
	}
}

func TestEscapeStrictURL(t *testing.T) {
	assert.Equal(t, `https://x.io/a_(b\)`, msgfmt.EscapeStrictURL("https://x.io/a_(b)"))
	assert.Equal(t, `a\\b`, msgfmt.EscapeStrictURL(`a\b`))
	assert.Equal(t, "plain", msgfmt.EscapeStrict("plain"))
}

func TestEscapeStrict_KeepsBytes(t *testing.T) {
	tests := map[string]string{
		"a\x80b.":  "a\x80b\\.",
		"\xff_":    "\xff\\_",
		"héllo!":   "héllo\\!",
		"\xe2\x82": "\xe2\x82",
	}
	for in, want := range tests {
		assert.Equal(t, want, msgfmt.EscapeStrict(in), "input %q", in)
	}
}

func TestLookupChannel(t *testing.T) {
	ch, ok := msgfmt.LookupChannel("Discord")
	assert.True(t, ok)
	assert.Equal(t, msgfmt.ChannelPassthrough, ch)

	ch, ok = msgfmt.LookupChannel("pager")
	assert.False(t, ok)
	assert.Equal(t, msgfmt.ChannelPlaintext, ch)
}
