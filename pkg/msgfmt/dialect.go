package msgfmt

import (
	"strings"

	"github.com/mymmrac/telego"
)

// strictReserved is every character the strict dialect requires to be
// backslash-escaped outside code.
const strictReserved = "_*[]()~`>#+-=|{}.!\\"

// dialect is the rendering strategy of one channel. Adding a channel means
// adding one entry to dialects.
type dialect struct {
	mode       string
	text       func(s string) string
	bold       func(t Token) string
	italic     func(t Token) string
	strike     func(t Token) string
	link       func(t Token) string
	bareURL    func(t Token) string
	code       func(lang, body string) string
	inlineCode func(s string) string
	table      func(t Table, budget int) string
}

var dialects = map[Channel]dialect{
	ChannelStrict: {
		mode: telego.ModeMarkdownV2,
		text: EscapeStrict,
		bold: func(t Token) string { return "*" + EscapeStrict(t.Text) + "*" },
		italic: func(t Token) string {
			return "_" + EscapeStrict(t.Text) + "_"
		},
		strike: func(t Token) string { return "~" + EscapeStrict(t.Text) + "~" },
		link: func(t Token) string {
			return "[" + EscapeStrict(t.Text) + "](" + EscapeStrictURL(t.URL) + ")"
		},
		bareURL: func(t Token) string {
			return "[" + EscapeStrict(t.URL) + "](" + EscapeStrictURL(t.URL) + ")"
		},
		code: func(lang, body string) string {
			return fenceMarker + lang + "\n" + body + "\n" + fenceMarker
		},
		inlineCode: func(s string) string { return "`" + s + "`" },
		table: func(t Table, budget int) string {
			return fenceMarker + "\n" + t.Box(t.Widths(budget)) + "\n" + fenceMarker
		},
	},
	ChannelRelaxed: {
		text:    identity,
		bold:    func(t Token) string { return "*" + t.Text + "*" },
		italic:  func(t Token) string { return t.Source },
		strike:  func(t Token) string { return "~" + t.Text + "~" },
		link:    func(t Token) string { return t.Text + " (" + t.URL + ")" },
		bareURL: func(t Token) string { return t.URL },
		code: func(_, body string) string {
			return fenceMarker + body + fenceMarker
		},
		inlineCode: func(s string) string { return "`" + s + "`" },
		table:      func(t Table, _ int) string { return t.Cards() },
	},
	ChannelPlaintext: {
		text:       identity,
		bold:       tokenText,
		italic:     tokenText,
		strike:     tokenText,
		link:       tokenText,
		bareURL:    func(t Token) string { return t.URL },
		code:       func(_, body string) string { return body },
		inlineCode: identity,
		table:      func(t Table, _ int) string { return t.Cards() },
	},
}

func identity(s string) string { return s }

func tokenText(t Token) string { return t.Text }

func (d dialect) token(t Token) string {
	switch t.Kind {
	case TokenBold:
		return d.bold(t)
	case TokenItalic:
		return d.italic(t)
	case TokenStrike:
		return d.strike(t)
	case TokenLink:
		return d.link(t)
	case TokenBareURL:
		return d.bareURL(t)
	default:
		return d.text(t.Text)
	}
}

// EscapeStrict backslash-escapes every reserved character of the strict
// dialect.
func EscapeStrict(s string) string {
	return escapeSet(s, strictReserved)
}

// EscapeStrictURL escapes a link target, where only ')' and '\' are special.
func EscapeStrictURL(s string) string {
	return escapeSet(s, `)\`)
}

func escapeSet(s, set string) string {
	if !strings.ContainsAny(s, set) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	// Reserved characters are ASCII, so bytes are copied as-is and invalid
	// UTF-8 passes through.
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(set, s[i]) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
