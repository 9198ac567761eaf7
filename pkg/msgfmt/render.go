package msgfmt

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Renderer renders markdown into channel dialects. The zero value is not
// usable; construct one with New.
type Renderer struct {
	tableWidth int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTableWidth sets the box width budget for strict-dialect tables. A value
// of zero or less lets tables grow to their natural width.
func WithTableWidth(n int) Option {
	return func(r *Renderer) { r.tableWidth = n }
}

// New returns a Renderer with the default 60-column table budget.
func New(opts ...Option) *Renderer {
	r := &Renderer{tableWidth: DefaultTableWidth}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultRenderer = New()

// Render converts text to the dialect of ch using the default Renderer.
func Render(text string, ch Channel) RenderedMessage {
	return defaultRenderer.Render(text, ch)
}

// Render converts text to the dialect of ch. Empty input and passthrough
// channels return text unchanged. Unknown channels render as plain text.
func (r *Renderer) Render(text string, ch Channel) RenderedMessage {
	if text == "" || ch == ChannelPassthrough {
		return RenderedMessage{Text: text}
	}
	d, ok := dialects[ch]
	if !ok {
		d = dialects[ChannelPlaintext]
	}

	// Inline code stays in its line as a one-rune placeholder so headings,
	// bullets and emphasis can span it; the rendered code is substituted
	// after assembly. Input already holding placeholder runes renders code
	// spans as separate pieces instead.
	inline := !strings.ContainsFunc(text, isPlaceholder)
	var codes []string

	var pieces []piece
	var run strings.Builder
	runAtLineStart := true
	flush := func() {
		if run.Len() == 0 {
			return
		}
		var b strings.Builder
		for _, tok := range blockTokens(run.String(), runAtLineStart) {
			b.WriteString(d.token(tok))
		}
		pieces = append(pieces, piece{text: b.String()})
		run.Reset()
	}

	atLineStart := true
	for _, seg := range Split(text) {
		switch seg.Kind {
		case SegmentCode:
			flush()
			pieces = append(pieces, piece{text: d.code(seg.Lang, seg.Content), protected: true})
		case SegmentTable:
			flush()
			pieces = append(pieces, piece{text: d.table(*seg.Table, r.tableWidth), protected: true})
		case SegmentInlineCode:
			if !inline || len(codes) >= maxPlaceholders {
				flush()
				pieces = append(pieces, piece{text: d.inlineCode(seg.Content), protected: true})
				break
			}
			if run.Len() == 0 {
				runAtLineStart = atLineStart
			}
			run.WriteRune(placeholderBase + rune(len(codes)))
			codes = append(codes, d.inlineCode(seg.Content))
		default:
			if run.Len() == 0 {
				runAtLineStart = atLineStart
			}
			run.WriteString(seg.Raw)
		}
		atLineStart = strings.HasSuffix(seg.Raw, "\n")
	}
	flush()

	out := assemble(pieces)
	if len(codes) > 0 {
		out = resolvePlaceholders(out, codes)
	}
	return RenderedMessage{Text: out, RenderMode: d.mode}
}

// Placeholders live in Supplementary Private Use Area-B.
const (
	placeholderBase = rune(0x100000)
	maxPlaceholders = 0x10FFFD - 0x100000 + 1
)

func isPlaceholder(r rune) bool {
	return r >= placeholderBase && r < placeholderBase+maxPlaceholders
}

// resolvePlaceholders swaps each placeholder rune for its rendered code span.
// Every other byte is copied through unchanged.
func resolvePlaceholders(s string, codes []string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if isPlaceholder(r) && int(r-placeholderBase) < len(codes) {
			b.WriteString(codes[r-placeholderBase])
		} else {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

// piece is a rendered fragment. Protected fragments are code or generated
// tables and pass through newline collapsing and trimming untouched.
type piece struct {
	text      string
	protected bool
}

// assemble joins pieces, trims outer whitespace and collapses runs of three
// or more newlines to two, all outside protected pieces.
func assemble(pieces []piece) string {
	for i := range pieces {
		if pieces[i].protected {
			break
		}
		pieces[i].text = strings.TrimLeftFunc(pieces[i].text, unicode.IsSpace)
		if pieces[i].text != "" {
			break
		}
	}
	for i := len(pieces) - 1; i >= 0; i-- {
		if pieces[i].protected {
			break
		}
		pieces[i].text = strings.TrimRightFunc(pieces[i].text, unicode.IsSpace)
		if pieces[i].text != "" {
			break
		}
	}

	var b strings.Builder
	newlines := 0
	for _, p := range pieces {
		if p.protected {
			if p.text == "" {
				continue
			}
			b.WriteString(p.text)
			newlines = len(p.text) - len(strings.TrimRight(p.text, "\n"))
			continue
		}
		for i := 0; i < len(p.text); i++ {
			c := p.text[i]
			if c == '\n' {
				newlines++
				if newlines > 2 {
					continue
				}
			} else {
				newlines = 0
			}
			b.WriteByte(c)
		}
	}
	return b.String()
}
