package msgfmt

import "strings"

const bulletGlyph = "• "

// blockTokens tokenizes a text segment line by line. Lines that start at a
// line boundary get the block rewrites first: headings become one bold token,
// horizontal rules are dropped, and list markers become bullet glyphs.
func blockTokens(text string, atLineStart bool) []Token {
	var toks []Token
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			toks = append(toks, rawToken("\n"))
		}
		if i == 0 && !atLineStart {
			toks = append(toks, Tokenize(line)...)
			continue
		}
		toks = append(toks, lineTokens(line)...)
	}
	return toks
}

func lineTokens(line string) []Token {
	if label, ok := parseHeading(line); ok {
		return []Token{{Kind: TokenBold, Text: StripInline(label), Source: line}}
	}
	if isHorizontalRule(line) {
		return nil
	}
	if indent, rest, ok := parseBullet(line); ok {
		return append([]Token{rawToken(indent + bulletGlyph)}, Tokenize(rest)...)
	}
	return Tokenize(line)
}

// parseHeading recognizes "# Title" through "###### Title" and returns the
// title without the closing hash sequence.
func parseHeading(line string) (string, bool) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 || level == len(line) {
		return "", false
	}
	if line[level] != ' ' && line[level] != '\t' {
		return "", false
	}
	label := strings.TrimSpace(line[level:])
	if trimmed := strings.TrimRight(label, "#"); trimmed != label {
		if trimmed == "" || strings.HasSuffix(trimmed, " ") || strings.HasSuffix(trimmed, "\t") {
			label = strings.TrimSpace(trimmed)
		}
	}
	if label == "" {
		return "", false
	}
	return label, true
}

// isHorizontalRule reports whether line holds three or more dashes and nothing
// else.
func isHorizontalRule(line string) bool {
	trimmed := strings.TrimSpace(line)
	return len(trimmed) >= 3 && strings.Trim(trimmed, "-") == ""
}

// parseBullet recognizes "- item" and "* item", optionally indented.
func parseBullet(line string) (indent, rest string, ok bool) {
	body := strings.TrimLeft(line, " \t")
	if len(body) < 2 || (body[0] != '-' && body[0] != '*') {
		return "", "", false
	}
	if body[1] != ' ' && body[1] != '\t' {
		return "", "", false
	}
	return line[:len(line)-len(body)], strings.TrimLeft(body[2:], " \t"), true
}
