package msgfmt

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenKind classifies an inline span.
type TokenKind int

const (
	TokenRaw TokenKind = iota
	TokenBold
	TokenItalic
	TokenStrike
	TokenLink
	TokenBareURL
)

func (k TokenKind) String() string {
	switch k {
	case TokenBold:
		return "bold"
	case TokenItalic:
		return "italic"
	case TokenStrike:
		return "strike"
	case TokenLink:
		return "link"
	case TokenBareURL:
		return "bare_url"
	default:
		return "raw"
	}
}

// Token is one inline unit. Text is the display text with markers removed,
// URL is set for links and bare URLs, and Source is the matched input.
type Token struct {
	Kind   TokenKind
	Text   string
	URL    string
	Source string
}

func rawToken(s string) Token {
	return Token{Kind: TokenRaw, Text: s, Source: s}
}

// spanMatcher attempts a span at s[i:] and returns the token and the offset
// just past it.
type spanMatcher func(s string, i int) (Token, int, bool)

// Evaluated in order at every scan position.
var spanMatchers = []spanMatcher{
	matchBold,
	matchStrike,
	matchLink,
	matchBareURL,
	matchItalic,
}

// Tokenize scans s left to right and returns typed spans interleaved with raw
// runs. Spans do not nest: once consumed, a span's content is not rescanned.
func Tokenize(s string) []Token {
	var toks []Token
	lit := 0
	i := 0
	for i < len(s) {
		matched := false
		for _, m := range spanMatchers {
			tok, end, ok := m(s, i)
			if !ok {
				continue
			}
			if lit < i {
				toks = append(toks, rawToken(s[lit:i]))
			}
			toks = append(toks, tok)
			i, lit = end, end
			matched = true
			break
		}
		if !matched {
			_, size := utf8.DecodeRuneInString(s[i:])
			i += size
		}
	}
	if lit < len(s) {
		toks = append(toks, rawToken(s[lit:]))
	}
	return toks
}

// StripInline removes emphasis markers and reduces links to their label.
func StripInline(s string) string {
	var b strings.Builder
	for _, tok := range Tokenize(s) {
		b.WriteString(tok.Text)
	}
	return b.String()
}

func matchBold(s string, i int) (Token, int, bool) {
	if strings.HasPrefix(s[i:], "***") {
		if tok, end, ok := matchDelimited(s, i, "***", TokenBold); ok {
			return tok, end, true
		}
	}
	return matchDelimited(s, i, "**", TokenBold)
}

func matchStrike(s string, i int) (Token, int, bool) {
	return matchDelimited(s, i, "~~", TokenStrike)
}

// matchDelimited matches delim…delim on a single line with non-blank content.
func matchDelimited(s string, i int, delim string, kind TokenKind) (Token, int, bool) {
	if !strings.HasPrefix(s[i:], delim) {
		return Token{}, 0, false
	}
	start := i + len(delim)
	j := strings.Index(s[start:], delim)
	if j <= 0 {
		return Token{}, 0, false
	}
	inner := s[start : start+j]
	if strings.TrimSpace(inner) == "" || strings.ContainsRune(inner, '\n') {
		return Token{}, 0, false
	}
	end := start + j + len(delim)
	return Token{Kind: kind, Text: inner, Source: s[i:end]}, end, true
}

func matchLink(s string, i int) (Token, int, bool) {
	if s[i] != '[' {
		return Token{}, 0, false
	}
	closeBracket := findClosingBracket(s[i:])
	if closeBracket <= 1 {
		return Token{}, 0, false
	}
	open := i + closeBracket + 1
	if open >= len(s) || s[open] != '(' {
		return Token{}, 0, false
	}
	closeParen := findClosingParen(s[open:])
	if closeParen <= 1 {
		return Token{}, 0, false
	}
	url := s[open+1 : open+closeParen]
	if strings.ContainsFunc(url, unicode.IsSpace) {
		return Token{}, 0, false
	}
	end := open + closeParen + 1
	return Token{
		Kind:   TokenLink,
		Text:   s[i+1 : i+closeBracket],
		URL:    url,
		Source: s[i:end],
	}, end, true
}

// findClosingBracket returns the offset of the ']' balancing s[0], or -1.
func findClosingBracket(s string) int {
	return findClosing(s, '[', ']')
}

func findClosingParen(s string) int {
	return findClosing(s, '(', ')')
}

func findClosing(s string, open, closing byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			return -1
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

var urlSchemes = []string{"https://", "http://"}

func matchBareURL(s string, i int) (Token, int, bool) {
	if s[i] != 'h' || !isBoundaryBefore(s, i) {
		return Token{}, 0, false
	}
	scheme := ""
	for _, p := range urlSchemes {
		if strings.HasPrefix(s[i:], p) {
			scheme = p
			break
		}
	}
	if scheme == "" {
		return Token{}, 0, false
	}
	end := i + len(scheme)
	for end < len(s) {
		r, size := utf8.DecodeRuneInString(s[end:])
		if unicode.IsSpace(r) || isPlaceholder(r) || strings.ContainsRune("<>\"`", r) {
			break
		}
		end += size
	}
	end = i + len(trimURL(s[i:end]))
	if end-i <= len(scheme) {
		return Token{}, 0, false
	}
	url := s[i:end]
	return Token{Kind: TokenBareURL, Text: url, URL: url, Source: url}, end, true
}

// trimURL drops trailing sentence punctuation and unbalanced closing brackets.
func trimURL(u string) string {
	for u != "" {
		last := u[len(u)-1]
		switch {
		case strings.IndexByte(".,;:!?'*_~", last) >= 0:
			u = u[:len(u)-1]
		case last == ')' && strings.Count(u, ")") > strings.Count(u, "("):
			u = u[:len(u)-1]
		case last == ']' && strings.Count(u, "]") > strings.Count(u, "["):
			u = u[:len(u)-1]
		default:
			return u
		}
	}
	return u
}

// matchItalic matches *x* or _x_ whose delimiters are not adjacent to word
// characters outside the span and not adjacent to whitespace inside it.
func matchItalic(s string, i int) (Token, int, bool) {
	c := s[i]
	if c != '*' && c != '_' {
		return Token{}, 0, false
	}
	if !isBoundaryBefore(s, i) || i+1 >= len(s) {
		return Token{}, 0, false
	}
	first, _ := utf8.DecodeRuneInString(s[i+1:])
	if unicode.IsSpace(first) || first == rune(c) {
		return Token{}, 0, false
	}
	for j := i + 2; j < len(s); j++ {
		if s[j] == '\n' {
			return Token{}, 0, false
		}
		if s[j] != c {
			continue
		}
		prev, _ := utf8.DecodeLastRuneInString(s[:j])
		if unicode.IsSpace(prev) || !isBoundaryAfter(s, j+1) {
			continue
		}
		end := j + 1
		return Token{Kind: TokenItalic, Text: s[i+1 : j], Source: s[i:end]}, end, true
	}
	return Token{}, 0, false
}

// isWordRune reports whether r belongs to the word class used for emphasis
// boundaries.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isBoundaryBefore reports whether the rune preceding s[i] is a non-word rune.
func isBoundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

// isBoundaryAfter reports whether the rune starting at s[i] is a non-word rune.
func isBoundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}
