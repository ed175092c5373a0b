package core

import (
	"strings"
	"unicode/utf8"
)

// Insert inserts ch at the cursor and moves the cursor past it.
func (d *Document) Insert(ch rune) {
	d.InsertString(string(ch))
}

// InsertString inserts text at the cursor as a single edit and moves the
// cursor past it.
func (d *Document) InsertString(text string) {
	if text == "" {
		return
	}
	start := d.cursor
	startPoint := d.pointAt(start)

	d.content = d.content.Insert(start, text)

	newEnd := start + len(text)
	d.notifyEdit(EditDescriptor{
		StartByte:   start,
		OldEndByte:  start,
		NewEndByte:  newEnd,
		StartPoint:  startPoint,
		OldEndPoint: startPoint,
		NewEndPoint: d.pointAt(newEnd),
	})

	d.cursor = newEnd
	d.updateSticky()
}

// RemoveBefore deletes the character before the cursor.
func (d *Document) RemoveBefore() {
	char := d.content.ByteToChar(d.cursor)
	if char == 0 {
		return
	}
	start := d.content.CharToByte(char - 1)
	startPoint := d.pointAt(start)

	d.notifyEdit(EditDescriptor{
		StartByte:   start,
		OldEndByte:  d.cursor,
		NewEndByte:  start,
		StartPoint:  startPoint,
		OldEndPoint: d.pointAt(d.cursor),
		NewEndPoint: startPoint,
	})

	d.content = d.content.Delete(start, d.cursor)
	d.cursor = start
	d.updateSticky()
}

// Remove deletes the selection, or the character under the cursor outside
// Select mode. A selection anchor collapses onto the cursor and the mode
// stays Select.
func (d *Document) Remove() {
	if d.content.IsEmpty() {
		return
	}
	r := d.SelectionRange()

	startChar := d.content.ByteToChar(r.Start)
	endChar := min(d.content.ByteToChar(r.End), d.content.LenChars()-1)
	if startChar > endChar {
		return
	}
	end := d.content.CharToByte(endChar + 1)
	startPoint := d.pointAt(r.Start)

	d.notifyEdit(EditDescriptor{
		StartByte:   r.Start,
		OldEndByte:  end,
		NewEndByte:  r.Start,
		StartPoint:  startPoint,
		OldEndPoint: d.pointAt(end),
		NewEndPoint: startPoint,
	})

	d.content = d.content.Delete(r.Start, end)
	d.cursor = r.Start

	if sel, ok := d.mode.(Select); ok {
		sel.StartByte = r.Start
		d.mode = sel
	}

	d.updateSticky()
	d.ScrollToCursor()
}

// InsertTab inserts spaces up to the next multiple of width.
func (d *Document) InsertTab(width int) {
	if width <= 0 {
		return
	}
	x, line := d.Position()
	lineStart := d.content.LineToByte(line)
	col := utf8.RuneCountInString(d.content.Slice(lineStart, lineStart+x))
	d.InsertString(strings.Repeat(" ", width-col%width))
}
