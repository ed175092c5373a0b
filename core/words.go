package core

import "unicode"

// CharKind is the class word motions compare neighbouring characters by.
type CharKind int

const (
	LineBreak CharKind = iota
	Whitespace
	Other
)

func KindOf(ch rune) CharKind {
	switch {
	case ch == '\n' || ch == '\r':
		return LineBreak
	case unicode.IsSpace(ch):
		return Whitespace
	default:
		return Other
	}
}

// findNextWord returns the first offset after the cursor where the character
// class changes.
func (d *Document) findNextWord() (int, bool) {
	it := d.content.RunesAt(d.cursor)
	prev, _, ok := it.Next()
	if !ok {
		return 0, false
	}
	for {
		ch, offset, ok := it.Next()
		if !ok {
			return 0, false
		}
		if KindOf(ch) != KindOf(prev) {
			return offset, true
		}
		prev = ch
	}
}

// findNextWordEnd returns the offset of the last character of the run that
// follows the cursor's character.
func (d *Document) findNextWordEnd() (int, bool) {
	it := d.content.RunesAt(d.cursor)
	if _, _, ok := it.Next(); !ok {
		return 0, false
	}
	prev, prevOffset, ok := it.Next()
	if !ok {
		return 0, false
	}
	for {
		ch, offset, ok := it.Next()
		if !ok {
			return 0, false
		}
		if KindOf(ch) != KindOf(prev) {
			return prevOffset, true
		}
		prev, prevOffset = ch, offset
	}
}

// findPrevWordStart returns the last offset before the cursor where the
// character class changes.
func (d *Document) findPrevWordStart() (int, bool) {
	it := d.content.RunesAt(d.cursor)
	next, nextOffset, ok := it.Prev()
	if !ok {
		return 0, false
	}
	for {
		ch, offset, ok := it.Prev()
		if !ok {
			return 0, false
		}
		if KindOf(ch) != KindOf(next) {
			return nextOffset, true
		}
		next, nextOffset = ch, offset
	}
}

// MoveNextWord moves to the start of the next run of characters, or to the
// end of the buffer.
func (d *Document) MoveNextWord() {
	offset, ok := d.findNextWord()
	if !ok {
		offset = d.content.LenBytes()
	}
	d.cursor = offset
	d.updateSticky()
}

// MoveNextWordEnd moves to the last character of the next run, or to the
// end of the buffer.
func (d *Document) MoveNextWordEnd() {
	offset, ok := d.findNextWordEnd()
	if !ok {
		offset = d.content.LenBytes()
	}
	d.cursor = offset
	d.updateSticky()
}

// MovePrevWordStart moves to the start of the run before the cursor, or to
// the start of the buffer.
func (d *Document) MovePrevWordStart() {
	offset, ok := d.findPrevWordStart()
	if !ok {
		offset = 0
	}
	d.cursor = offset
	d.updateSticky()
}
