package core

// Range is an inclusive byte range with Start <= End.
type Range struct {
	Start int
	End   int
}

// Contains reports whether offset lies in the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset <= r.End
}

// SelectionRange returns the selected bytes. Outside Select mode it is the
// single byte under the cursor. Line-wise selections cover whole lines, ending
// on the first byte of the last character of the last selected line.
func (d *Document) SelectionRange() Range {
	sel, ok := d.mode.(Select)
	if !ok {
		return Range{Start: d.cursor, End: d.cursor}
	}

	if !sel.LineMode {
		return Range{Start: min(d.cursor, sel.StartByte), End: max(d.cursor, sel.StartByte)}
	}

	anchorLine := d.content.ByteToLine(sel.StartByte)
	cursorLine := d.content.ByteToLine(d.cursor)
	first, last := min(anchorLine, cursorLine), max(anchorLine, cursorLine)

	start := d.content.LineToByte(first)
	lastStart := d.content.LineToByte(last)
	end := d.floorBoundary(lastStart + max(d.content.LineLenBytes(last)-1, 0))

	return Range{Start: min(start, end), End: max(start, end)}
}

// SelectedText returns the text the current selection covers, including the
// whole last character.
func (d *Document) SelectedText() string {
	r := d.SelectionRange()
	endChar := min(d.content.ByteToChar(r.End), d.content.LenChars()-1)
	return d.content.Slice(r.Start, d.content.CharToByte(endChar+1))
}

// Position returns the cursor's byte column within its line and the line
// index. It costs a line lookup on every call.
func (d *Document) Position() (int, int) {
	line := d.content.ByteToLine(d.cursor)
	return d.cursor - d.content.LineToByte(line), line
}

func (d *Document) floorBoundary(offset int) int {
	return d.content.CharToByte(d.content.ByteToChar(offset))
}
