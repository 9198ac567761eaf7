package msgfmt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTable(t *testing.T) {
	tbl, ok := ParseTable("| Name | Age | City |\n|:--|--:|:-:|\n| **Alice** | 30 |\n| Bob | 4 | Oslo | extra |")
	require.True(t, ok)

	assert.Equal(t, []string{"Name", "Age", "City"}, tbl.Headers)
	assert.Equal(t, []Alignment{AlignLeft, AlignRight, AlignCenter}, tbl.Alignments)
	assert.Equal(t, [][]string{
		{"Alice", "30", ""},
		{"Bob", "4", "Oslo"},
	}, tbl.Rows)
}

func TestParseTable_Rejects(t *testing.T) {
	tests := map[string]string{
		"no separator":         "|a|b|\n|1|2|",
		"no body":              "|a|b|\n|-|-|",
		"column mismatch":      "|a|b|\n|-|\n|1|2|",
		"bad separator cell":   "|a|b|\n|-|x|\n|1|2|",
		"trailing prose":       "|a|b|\n|-|-|\n|1|2|\nnot a row",
		"empty header":         "| |\n|-|\n|1|",
		"colon only separator": "|a|\n|:|\n|1|",
	}
	for name, block := range tests {
		t.Run(name, func(t *testing.T) {
			_, ok := ParseTable(block)
			assert.False(t, ok)
		})
	}
}

func TestParseAlignment(t *testing.T) {
	tests := []struct {
		cell string
		want Alignment
	}{
		{":--", AlignLeft},
		{"--:", AlignRight},
		{":-:", AlignCenter},
		{"---", AlignLeft},
	}
	for _, tt := range tests {
		got, ok := parseAlignment(tt.cell)
		require.True(t, ok, tt.cell)
		assert.Equal(t, tt.want, got, tt.cell)
	}
}

func TestBoxWidth(t *testing.T) {
	assert.Equal(t, 4+5, boxWidth([]int{5}))
	assert.Equal(t, 4+3+5+3, boxWidth([]int{5, 3}))
	assert.Equal(t, 4+6+2+2+2, boxWidth([]int{2, 2, 2}))
}

func TestTable_Widths(t *testing.T) {
	t.Run("natural widths floor at two", func(t *testing.T) {
		tbl := Table{Headers: []string{"a", "bbbb"}, Rows: [][]string{{"c", "d"}}}
		assert.Equal(t, []int{2, 4}, tbl.Widths(DefaultTableWidth))
	})

	t.Run("proportional scaling", func(t *testing.T) {
		tbl := Table{
			Headers: []string{strings.Repeat("x", 40), strings.Repeat("y", 40), strings.Repeat("z", 40)},
			Rows:    [][]string{{"1", "2", "3"}},
		}
		widths := tbl.Widths(DefaultTableWidth)
		assert.Equal(t, []int{16, 16, 16}, widths)
		assert.LessOrEqual(t, boxWidth(widths), DefaultTableWidth)
	})

	t.Run("minimum floor may exceed budget", func(t *testing.T) {
		headers := make([]string, 15)
		row := make([]string, 15)
		for i := range headers {
			headers[i] = strings.Repeat("h", 10)
		}
		tbl := Table{Headers: headers, Rows: [][]string{row}}
		widths := tbl.Widths(DefaultTableWidth)
		for _, w := range widths {
			assert.Equal(t, minColumnWidth, w)
		}
		assert.Greater(t, boxWidth(widths), DefaultTableWidth)
	})

	t.Run("unbounded", func(t *testing.T) {
		tbl := Table{Headers: []string{strings.Repeat("x", 100)}, Rows: [][]string{{""}}}
		assert.Equal(t, []int{100}, tbl.Widths(0))
	})

	t.Run("wide runes count as two columns", func(t *testing.T) {
		tbl := Table{Headers: []string{"名前"}, Rows: [][]string{{"x"}}}
		assert.Equal(t, []int{4}, tbl.NaturalWidths())
	})
}

func TestFitCell(t *testing.T) {
	assert.Equal(t, "ab   ", fitCell("ab", 5, AlignLeft))
	assert.Equal(t, "   ab", fitCell("ab", 5, AlignRight))
	assert.Equal(t, " ab  ", fitCell("ab", 5, AlignCenter))
	assert.Equal(t, "abcd…", fitCell("abcdefgh", 5, AlignLeft))
	assert.Equal(t, "abcde", fitCell("abcde", 5, AlignRight))
}

func TestTable_BoxAlignment(t *testing.T) {
	tbl := Table{
		Headers:    []string{"left", "right", "center", "def"},
		Rows:       [][]string{{"a", "b", "c", "d"}},
		Alignments: []Alignment{AlignLeft, AlignRight, AlignCenter, AlignLeft},
	}
	lines := strings.Split(tbl.Box(tbl.Widths(DefaultTableWidth)), "\n")

	require.Len(t, lines, 5)
	assert.Equal(t, "│ left │ right │ center │ def │", lines[1])
	assert.Equal(t, "│ a    │     b │   c    │ d   │", lines[3])
	assert.True(t, strings.HasPrefix(lines[0], "┌"))
	assert.True(t, strings.HasPrefix(lines[2], "├"))
	assert.True(t, strings.HasPrefix(lines[4], "└"))
}

func TestTable_Cards(t *testing.T) {
	tbl := Table{
		Headers: []string{"Name", "Note"},
		Rows:    [][]string{{"Alice", ""}, {"Bob", "ok"}},
	}
	assert.Equal(t, "Name: Alice\nNote:\n\nName: Bob\nNote: ok", tbl.Cards())
}
