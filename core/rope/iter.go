package rope

import "unicode/utf8"

// RuneIterator walks code points in either direction from a byte offset,
// loading one leaf at a time.
type RuneIterator struct {
	r          Rope
	pos        int
	chunk      string
	chunkStart int
}

// RunesAt returns an iterator positioned at byte offset, which must be a
// character boundary. Next yields the code point starting at offset, Prev
// the one ending there.
func (r Rope) RunesAt(offset int) *RuneIterator {
	return &RuneIterator{r: r, pos: min(max(offset, 0), r.LenBytes()), chunkStart: -1}
}

// Offset returns the iterator's current byte position.
func (it *RuneIterator) Offset() int {
	return it.pos
}

// Next returns the code point at the current position and its byte offset,
// then advances past it.
func (it *RuneIterator) Next() (rune, int, bool) {
	if it.pos >= it.r.LenBytes() {
		return 0, it.pos, false
	}
	if it.chunkStart < 0 || it.pos < it.chunkStart || it.pos >= it.chunkStart+len(it.chunk) {
		it.chunk, it.chunkStart = it.r.root.leafAt(it.pos)
	}
	ch, size := utf8.DecodeRuneInString(it.chunk[it.pos-it.chunkStart:])
	offset := it.pos
	it.pos += size
	return ch, offset, true
}

// Prev moves back over the code point ending at the current position and
// returns it with its byte offset.
func (it *RuneIterator) Prev() (rune, int, bool) {
	if it.pos <= 0 {
		return 0, 0, false
	}
	if it.chunkStart < 0 || it.pos <= it.chunkStart || it.pos > it.chunkStart+len(it.chunk) {
		it.chunk, it.chunkStart = it.r.root.leafAt(it.pos - 1)
	}
	ch, size := utf8.DecodeLastRuneInString(it.chunk[:it.pos-it.chunkStart])
	it.pos -= size
	return ch, it.pos, true
}
