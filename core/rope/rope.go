// Package rope implements the text storage behind a document: a persistent
// B+ tree of UTF-8 leaves annotated with byte, character and newline counts,
// so that edits and offset conversions cost O(log n).
package rope

import (
	"io"
	"strings"
)

// Rope is an immutable text value. Insert and Delete return new ropes and
// share unchanged subtrees with the original.
type Rope struct {
	root *node
}

// New returns an empty rope.
func New() Rope {
	return Rope{}
}

// FromString builds a balanced rope from s.
func FromString(s string) Rope {
	return Rope{root: group(leavesOf(s))}
}

// FromReader builds a rope from everything r yields.
func FromReader(r io.Reader) (Rope, error) {
	var sb strings.Builder
	if _, err := io.Copy(&sb, r); err != nil {
		return Rope{}, err
	}
	return FromString(sb.String()), nil
}

// LenBytes returns the length of the text in bytes.
func (r Rope) LenBytes() int {
	if r.root == nil {
		return 0
	}
	return r.root.sum.bytes
}

// LenChars returns the number of code points.
func (r Rope) LenChars() int {
	if r.root == nil {
		return 0
	}
	return r.root.sum.chars
}

// LenLines returns the number of lines, which is the newline count plus one.
// An empty rope, and a rope ending in '\n', both have a final empty line.
func (r Rope) LenLines() int {
	if r.root == nil {
		return 1
	}
	return r.root.sum.lines + 1
}

// IsEmpty reports whether the rope holds no text.
func (r Rope) IsEmpty() bool {
	return r.LenBytes() == 0
}

// String returns the full text.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(r.root.sum.bytes)
	r.root.appendTo(&sb)
	return sb.String()
}

// Slice returns the text in the byte range [start, end).
func (r Rope) Slice(start, end int) string {
	start, end = max(start, 0), min(end, r.LenBytes())
	if r.root == nil || start >= end {
		return ""
	}
	var sb strings.Builder
	sb.Grow(end - start)
	r.root.appendRange(&sb, start, end)
	return sb.String()
}

// Insert returns a rope with text inserted at byte offset.
// The offset is clamped to [0, LenBytes()].
func (r Rope) Insert(offset int, text string) Rope {
	if len(text) == 0 {
		return r
	}
	if r.root == nil {
		return FromString(text)
	}
	offset = min(max(offset, 0), r.LenBytes())
	return Rope{root: group(r.root.insert(offset, text))}
}

// Delete returns a rope without the bytes in [start, end).
func (r Rope) Delete(start, end int) Rope {
	start, end = max(start, 0), min(end, r.LenBytes())
	if r.root == nil || start >= end {
		return r
	}
	return Rope{root: collapse(r.root.remove(start, end))}
}

// ByteToLine returns the index of the line containing byte offset.
// Offsets past the end resolve to the last line.
func (r Rope) ByteToLine(offset int) int {
	if r.root == nil || offset <= 0 {
		return 0
	}
	return r.root.byteToLine(min(offset, r.LenBytes()))
}

// LineToByte returns the byte offset where line starts. Line LenLines()
// (one past the last line) and beyond map to LenBytes().
func (r Rope) LineToByte(line int) int {
	if r.root == nil || line <= 0 {
		return 0
	}
	if line > r.root.sum.lines {
		return r.LenBytes()
	}
	return r.root.newlineOffset(line) + 1
}

// ByteToChar returns the index of the code point containing byte offset.
func (r Rope) ByteToChar(offset int) int {
	if r.root == nil || offset <= 0 {
		return 0
	}
	if offset >= r.LenBytes() {
		return r.LenChars()
	}
	return r.root.byteToChar(offset)
}

// CharToByte returns the byte offset where code point char starts.
func (r Rope) CharToByte(char int) int {
	if r.root == nil || char <= 0 {
		return 0
	}
	if char >= r.LenChars() {
		return r.LenBytes()
	}
	return r.root.charToByte(char)
}

// Line returns the text of line, including its '\n' terminator when present.
func (r Rope) Line(line int) string {
	return r.Slice(r.LineToByte(line), r.LineToByte(line+1))
}

// LineLenBytes returns the byte length of line including its terminator.
func (r Rope) LineLenBytes(line int) int {
	return r.LineToByte(line+1) - r.LineToByte(line)
}

// LineLenChars returns the code point count of line including its terminator.
func (r Rope) LineLenChars(line int) int {
	return r.ByteToChar(r.LineToByte(line+1)) - r.ByteToChar(r.LineToByte(line))
}

// IsCharBoundary reports whether offset does not split an encoded code point.
func (r Rope) IsCharBoundary(offset int) bool {
	if offset < 0 || offset > r.LenBytes() {
		return false
	}
	return r.CharToByte(r.ByteToChar(offset)) == offset
}

// Height returns the depth of the tree; an empty rope has height 0.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return r.root.height + 1
}
