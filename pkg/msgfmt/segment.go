package msgfmt

import "strings"

const fenceMarker = "```"

// SegmentKind classifies a contiguous span of the source document.
type SegmentKind int

const (
	SegmentText SegmentKind = iota
	SegmentCode
	SegmentInlineCode
	SegmentTable
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentCode:
		return "code"
	case SegmentInlineCode:
		return "inline_code"
	case SegmentTable:
		return "table"
	default:
		return "text"
	}
}

// Segment is one block-level unit of a document. Raw always holds the exact
// source bytes the segment covers, so joining the Raw fields of a Split
// result reproduces the input.
type Segment struct {
	Kind SegmentKind
	Raw  string

	// Content is the code body for code segments, without fence markers and
	// without the newline that precedes a closing fence.
	Content string
	// Lang is the language tag of a fenced block.
	Lang string
	// Table is set for table segments.
	Table *Table
}

// Split partitions text into ordered, non-overlapping segments. Fenced code
// is isolated first, then pipe tables are detected in the remaining text, then
// inline code spans. An unterminated fence is left in place as text.
func Split(text string) []Segment {
	var out []Segment
	atLineStart := true
	for _, seg := range splitFenced(text) {
		if seg.Kind != SegmentText {
			out = append(out, seg)
			atLineStart = false
			continue
		}
		for _, block := range splitTables(seg.Raw, atLineStart) {
			if block.Kind == SegmentText {
				out = append(out, splitInlineCode(block.Raw)...)
			} else {
				out = append(out, block)
			}
			atLineStart = strings.HasSuffix(block.Raw, "\n")
		}
	}
	return out
}

// Join reassembles the source text of segments produced by Split.
func Join(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(seg.Raw)
	}
	return b.String()
}

func textSegment(s string) Segment {
	return Segment{Kind: SegmentText, Raw: s, Content: s}
}

func splitFenced(text string) []Segment {
	var out []Segment
	last := 0
	pos := 0
	for pos < len(text) {
		idx := strings.Index(text[pos:], fenceMarker)
		if idx < 0 {
			break
		}
		open := pos + idx
		seg, end, ok := parseFence(text, open)
		if !ok {
			// Unterminated: no fence further on can close, so the rest is text.
			break
		}
		if open > last {
			out = append(out, textSegment(text[last:open]))
		}
		out = append(out, seg)
		last = end
		pos = end
	}
	if last < len(text) {
		out = append(out, textSegment(text[last:]))
	}
	return out
}

// parseFence parses a fenced block whose opening marker starts at open. It
// returns the segment and the byte offset just past the closing marker.
func parseFence(text string, open int) (Segment, int, bool) {
	start := open + len(fenceMarker)
	rest := text[start:]
	nl := strings.IndexByte(rest, '\n')

	line := rest
	if nl >= 0 {
		line = rest[:nl]
	}
	// Single-line form: ```code here```
	if k := strings.Index(line, fenceMarker); k >= 0 {
		end := start + k + len(fenceMarker)
		return Segment{
			Kind:    SegmentCode,
			Raw:     text[open:end],
			Content: line[:k],
		}, end, true
	}
	if nl < 0 {
		return Segment{}, 0, false
	}

	var lang string
	if fields := strings.Fields(line); len(fields) > 0 {
		lang = fields[0]
	}
	bodyStart := start + nl + 1
	k := strings.Index(text[bodyStart:], fenceMarker)
	if k < 0 {
		return Segment{}, 0, false
	}
	body := text[bodyStart : bodyStart+k]
	body = strings.TrimSuffix(body, "\n")
	body = strings.TrimSuffix(body, "\r")
	end := bodyStart + k + len(fenceMarker)
	return Segment{
		Kind:    SegmentCode,
		Raw:     text[open:end],
		Content: body,
		Lang:    lang,
	}, end, true
}

// splitInlineCode isolates single-backtick spans. A span must not cross a
// line break, and longer backtick runs are literal text.
func splitInlineCode(text string) []Segment {
	var out []Segment
	last := 0
	i := 0
	for i < len(text) {
		if text[i] != '`' {
			i++
			continue
		}
		run := backtickRun(text, i)
		if run > 1 {
			i += run
			continue
		}
		closeIdx := -1
		for j := i + 1; j < len(text); j++ {
			if text[j] == '\n' {
				break
			}
			if text[j] == '`' {
				closeIdx = j
				break
			}
		}
		if closeIdx <= i+1 {
			i++
			continue
		}
		if i > last {
			out = append(out, textSegment(text[last:i]))
		}
		out = append(out, Segment{
			Kind:    SegmentInlineCode,
			Raw:     text[i : closeIdx+1],
			Content: text[i+1 : closeIdx],
		})
		i = closeIdx + 1
		last = i
	}
	if last < len(text) {
		out = append(out, textSegment(text[last:]))
	}
	return out
}

func backtickRun(s string, i int) int {
	n := 0
	for i+n < len(s) && s[i+n] == '`' {
		n++
	}
	return n
}
