package e2e

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/tinyland-inc/chanfmt/pkg/bus"
	"github.com/tinyland-inc/chanfmt/pkg/channels"
	"github.com/tinyland-inc/chanfmt/pkg/config"
	"github.com/tinyland-inc/chanfmt/pkg/msgfmt"
)

var samples = []string{
	"**Bold** text with a [link](https://example.com/a_(b))",
	"# Release v1.2\n- fixed `a_b`\n- see https://go.dev.",
	"| Name | Age |\n|------|-----|\n| Alice | 30 |",
	"```go\nfmt.Println(\"hi\")\n```\nDone!",
	"plain text, nothing to do",
}

// TestDeliveryParity verifies that every channel built from config delivers
// exactly what a direct Render in its dialect produces when nothing is split.
func TestDeliveryParity(t *testing.T) {
	mgr := channels.NewManager(config.DefaultConfig(), nil)

	for _, name := range mgr.Names() {
		ch, err := mgr.Get(name)
		if err != nil {
			t.Fatalf("Get(%s): %v", name, err)
		}
		for _, sample := range samples {
			want := msgfmt.Render(sample, ch.Dialect())
			parts := ch.Prepare(bus.NewOutboundMessage(name, "chat", sample))
			if len(parts) != 1 {
				t.Fatalf("%s: expected one part, got %d", name, len(parts))
			}
			if parts[0].Text != want.Text {
				t.Errorf("%s: text mismatch\n got: %q\nwant: %q", name, parts[0].Text, want.Text)
			}
			if parts[0].RenderMode != want.RenderMode {
				t.Errorf("%s: render mode %q, want %q", name, parts[0].RenderMode, want.RenderMode)
			}
		}
	}
}

// TestDeliverySplitsLongMessages verifies that configured limits hold for
// every channel and no content is lost.
func TestDeliverySplitsLongMessages(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Channels.Telegram.MaxMessageLength = 200
	cfg.Channels.Discord.MaxMessageLength = 200
	cfg.Channels.Slack.MaxMessageLength = 200
	cfg.Channels.WhatsApp.MaxMessageLength = 200
	mgr := channels.NewManager(cfg, nil)

	content := strings.Repeat("word ", 300)
	for _, name := range mgr.Names() {
		ch, _ := mgr.Get(name)
		parts := ch.Prepare(bus.NewOutboundMessage(name, "chat", content))
		if len(parts) < 2 {
			t.Fatalf("%s: expected multiple parts, got %d", name, len(parts))
		}

		words := 0
		for _, p := range parts {
			if n := utf8.RuneCountInString(p.Text); n > 200 {
				t.Errorf("%s: part %d has %d runes", name, p.Index, n)
			}
			words += strings.Count(p.Text, "word")
		}
		if words != 300 {
			t.Errorf("%s: got %d words across parts, want 300", name, words)
		}
	}
}
