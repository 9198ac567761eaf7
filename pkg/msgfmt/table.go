package msgfmt

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/tinyland-inc/chanfmt/pkg/logger"
)

// DefaultTableWidth is the box width budget, in display columns, for tables
// rendered in the strict dialect.
const DefaultTableWidth = 60

const (
	minColumnWidth = 2
	ellipsis       = "…"
)

// widthCond measures display columns independently of the host locale.
var widthCond = &runewidth.Condition{EastAsianWidth: false, StrictEmojiNeutral: true}

// Alignment is the horizontal alignment of a table column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// Table is a parsed pipe table. Every row has exactly len(Headers) cells.
type Table struct {
	Headers    []string
	Rows       [][]string
	Alignments []Alignment
}

// ParseTable parses a complete table block: a header row, a separator row and
// one or more body rows. It reports false unless every line of block belongs
// to the table.
func ParseTable(block string) (Table, bool) {
	lines := strings.Split(strings.TrimSuffix(block, "\n"), "\n")
	t, n, ok := parseTableLines(lines)
	if !ok || n != len(lines) {
		return Table{}, false
	}
	return t, true
}

// parseTableLines parses the table at the head of lines and returns the number
// of lines it spans.
func parseTableLines(lines []string) (Table, int, bool) {
	if len(lines) < 3 {
		return Table{}, 0, false
	}
	headers, ok := splitRow(lines[0])
	if !ok || allEmpty(headers) {
		return Table{}, 0, false
	}
	sep, ok := splitRow(lines[1])
	if !ok || len(sep) != len(headers) {
		return Table{}, 0, false
	}
	aligns := make([]Alignment, len(sep))
	for i, cell := range sep {
		a, ok := parseAlignment(cell)
		if !ok {
			return Table{}, 0, false
		}
		aligns[i] = a
	}

	t := Table{Alignments: aligns}
	for _, h := range headers {
		t.Headers = append(t.Headers, StripInline(h))
	}

	n := 2
	for n < len(lines) {
		cells, ok := splitRow(lines[n])
		if !ok {
			break
		}
		row := make([]string, len(headers))
		for i := range row {
			if i < len(cells) {
				row[i] = StripInline(cells[i])
			}
		}
		t.Rows = append(t.Rows, row)
		n++
	}
	if len(t.Rows) == 0 {
		return Table{}, 0, false
	}
	return t, n, true
}

// splitRow splits a pipe-delimited line into trimmed cells, dropping the empty
// fields produced by outer pipes.
func splitRow(line string) ([]string, bool) {
	s := strings.TrimSpace(strings.TrimSuffix(line, "\r"))
	if !strings.Contains(s, "|") {
		return nil, false
	}
	s = strings.TrimPrefix(s, "|")
	s = strings.TrimSuffix(s, "|")
	parts := strings.Split(s, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells, true
}

func allEmpty(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}

// parseAlignment reads one separator cell such as ":--", "--:" or ":-:".
func parseAlignment(cell string) (Alignment, bool) {
	left := strings.HasPrefix(cell, ":")
	right := strings.HasSuffix(cell, ":") && len(cell) > 1
	dashes := strings.TrimSuffix(strings.TrimPrefix(cell, ":"), ":")
	if dashes == "" || strings.Trim(dashes, "-") != "" {
		return AlignLeft, false
	}
	switch {
	case left && right:
		return AlignCenter, true
	case right:
		return AlignRight, true
	default:
		return AlignLeft, true
	}
}

// splitTables separates table blocks from the surrounding text. A table must
// begin at a line start; the first line of text only qualifies when
// atLineStart is set.
func splitTables(text string, atLineStart bool) []Segment {
	if !strings.Contains(text, "|") {
		return []Segment{textSegment(text)}
	}
	lines := strings.Split(text, "\n")
	starts := make([]int, len(lines))
	off := 0
	for i, l := range lines {
		starts[i] = off
		off += len(l) + 1
	}

	var out []Segment
	last := 0
	for i := 0; i < len(lines); {
		if i == 0 && !atLineStart {
			i++
			continue
		}
		t, n, ok := parseTableLines(lines[i:])
		if !ok {
			i++
			continue
		}
		start := starts[i]
		end := starts[i+n-1] + len(lines[i+n-1])
		if start > last {
			out = append(out, textSegment(text[last:start]))
		}
		table := t
		out = append(out, Segment{Kind: SegmentTable, Raw: text[start:end], Table: &table})
		last = end
		i += n
	}
	if last < len(text) {
		out = append(out, textSegment(text[last:]))
	}
	return out
}

// NaturalWidths returns each column's widest cell, in display columns.
func (t Table) NaturalWidths() []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = widthCond.StringWidth(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if w := widthCond.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// Widths computes final column widths for a box of at most budget display
// columns. Columns are scaled proportionally to their content and never drop
// below two columns, so very wide tables may still exceed the budget. A
// budget of zero or less disables the constraint.
func (t Table) Widths(budget int) []int {
	widths := t.NaturalWidths()
	for i, w := range widths {
		widths[i] = max(w, minColumnWidth)
	}
	if budget <= 0 || boxWidth(widths) <= budget {
		return widths
	}

	natural := boxWidth(widths)
	content := budget - boxWidth(make([]int, len(widths)))
	sum := 0
	for _, w := range widths {
		sum += w
	}
	for i, w := range widths {
		scaled := 0
		if content > 0 {
			scaled = w * content / sum
		}
		widths[i] = max(scaled, minColumnWidth)
	}
	// Flooring can leave the box over budget; shave the widest column.
	for boxWidth(widths) > budget {
		widest := -1
		for i, w := range widths {
			if w > minColumnWidth && (widest < 0 || w > widths[widest]) {
				widest = i
			}
		}
		if widest < 0 {
			break
		}
		widths[widest]--
	}

	logger.DebugCF("msgfmt", "Table scaled to width budget", map[string]any{
		"columns": len(widths),
		"natural": natural,
		"final":   boxWidth(widths),
		"budget":  budget,
	})
	return widths
}

// boxWidth is the rendered width of a box table from the left border to the
// right border inclusive.
func boxWidth(widths []int) int {
	total := 4
	if len(widths) > 1 {
		total += 3 * (len(widths) - 1)
	}
	for _, w := range widths {
		total += w
	}
	return total
}

// Box renders the table with box-drawing borders using the given widths.
func (t Table) Box(widths []int) string {
	var b strings.Builder
	border := func(left, mid, right string) {
		b.WriteString(left)
		for i, w := range widths {
			if i > 0 {
				b.WriteString(mid)
			}
			b.WriteString(strings.Repeat("─", w+2))
		}
		b.WriteString(right)
	}
	row := func(cells []string) {
		b.WriteString("│")
		for i, w := range widths {
			b.WriteString(" ")
			b.WriteString(fitCell(cells[i], w, t.Alignments[i]))
			b.WriteString(" │")
		}
	}

	border("┌", "┬", "┐")
	b.WriteString("\n")
	row(t.Headers)
	b.WriteString("\n")
	border("├", "┼", "┤")
	for _, r := range t.Rows {
		b.WriteString("\n")
		row(r)
	}
	b.WriteString("\n")
	border("└", "┴", "┘")
	return b.String()
}

// fitCell truncates s to width with a trailing ellipsis and pads it according
// to align.
func fitCell(s string, width int, align Alignment) string {
	if widthCond.StringWidth(s) > width {
		s = widthCond.Truncate(s, width, ellipsis)
	}
	pad := width - widthCond.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	case AlignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	default:
		return s + strings.Repeat(" ", pad)
	}
}

// Cards flattens the table into one block of "header: value" lines per body
// row, separated by blank lines.
func (t Table) Cards() string {
	cards := make([]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		lines := make([]string, len(t.Headers))
		for i, h := range t.Headers {
			lines[i] = strings.TrimRight(h+": "+r[i], " ")
		}
		cards = append(cards, strings.Join(lines, "\n"))
	}
	return strings.Join(cards, "\n\n")
}
