package rope

import (
	"strings"
	"unicode/utf8"
)

// summary holds aggregated metrics for a subtree.
type summary struct {
	bytes int // UTF-8 byte count
	chars int // code point count
	lines int // number of '\n' characters
}

func (s summary) add(other summary) summary {
	return summary{
		bytes: s.bytes + other.bytes,
		chars: s.chars + other.chars,
		lines: s.lines + other.lines,
	}
}

func computeSummary(s string) summary {
	return summary{
		bytes: len(s),
		chars: utf8.RuneCountInString(s),
		lines: strings.Count(s, "\n"),
	}
}

// floorBoundary moves offset back to the start of the code point containing it.
func floorBoundary(s string, offset int) int {
	if offset >= len(s) {
		return len(s)
	}
	for offset > 0 && !utf8.RuneStart(s[offset]) {
		offset--
	}
	return offset
}

// nthNewline returns the byte index of the n-th (1-based) newline in s, or -1.
func nthNewline(s string, n int) int {
	idx := -1
	for ; n > 0; n-- {
		next := strings.IndexByte(s[idx+1:], '\n')
		if next < 0 {
			return -1
		}
		idx += next + 1
	}
	return idx
}

// splitIntoLeaves cuts s into leaf-sized pieces on UTF-8 boundaries,
// preferring to cut right after a newline.
func splitIntoLeaves(s string) []string {
	if len(s) == 0 {
		return nil
	}
	var out []string
	for len(s) > maxLeafSize {
		cut := targetLeafSize
		if nl := strings.LastIndexByte(s[:maxLeafSize], '\n'); nl >= minLeafSize {
			cut = nl + 1
		} else if b := floorBoundary(s, cut); b > 0 {
			cut = b
		}
		out = append(out, s[:cut])
		s = s[cut:]
	}
	return append(out, s)
}
