package channels

import (
	"strings"

	"github.com/tinyland-inc/chanfmt/pkg/msgfmt"
)

const (
	fenceOpen  = "```\n"
	fenceClose = "\n```"

	// fenceReserve is held back from every chunk so an open fence can be
	// closed without overrunning the limit.
	fenceReserve = 8

	// minFencedWindow is the smallest usable window below which fence
	// balancing is skipped.
	minFencedWindow = 16
)

// SplitMessage cuts text into chunks of at most limit runes. Cuts prefer the
// last newline, then the last space, in the back half of the window; the
// separator at a cut is dropped. A hard cut never leaves a dangling escape
// backslash at the end of a chunk.
//
// For every dialect but plain text, a chunk that ends inside a code fence is
// closed and the fence is reopened at the start of the next chunk. Fence
// balancing needs a limit of at least fenceReserve+minFencedWindow (24)
// runes; below that chunks are cut plainly and a fence may be left open.
func SplitMessage(text string, limit int, dialect msgfmt.Channel) []string {
	if text == "" {
		return nil
	}
	if limit <= 0 || len([]rune(text)) <= limit {
		return []string{text}
	}

	fenced := dialect != msgfmt.ChannelPlaintext && limit-fenceReserve >= minFencedWindow
	window := limit
	if fenced {
		window = limit - fenceReserve
	}

	var chunks []string
	rest := []rune(text)
	for len(rest) > limit {
		cut, skip := findCut(rest, window)
		chunk := string(rest[:cut])
		next := rest[cut+skip:]

		if fenced && strings.Count(chunk, "```")%2 == 1 {
			chunk += fenceClose
			next = append([]rune(fenceOpen), next...)
		}
		chunks = append(chunks, chunk)
		rest = next
	}
	if len(rest) > 0 {
		chunks = append(chunks, string(rest))
	}
	return chunks
}

// findCut returns the cut position within runes[:window] and how many
// separator runes to drop after it.
func findCut(runes []rune, window int) (int, int) {
	half := window / 2
	if half < 1 {
		half = 1
	}
	for _, sep := range []rune{'\n', ' '} {
		for i := window - 1; i >= half; i-- {
			if runes[i] == sep {
				return i, 1
			}
		}
	}

	cut := window
	backslashes := 0
	for i := cut - 1; i >= 0 && runes[i] == '\\'; i-- {
		backslashes++
	}
	if backslashes%2 == 1 && cut > 1 {
		cut--
	}
	return cut, 0
}
