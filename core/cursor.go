package core

// moveTo places the cursor at byte column col of line, clamping both. On
// every line but the last the column stops before the line terminator.
func (d *Document) moveTo(line, col int) {
	lastLine := d.content.LenLines() - 1
	line = min(max(line, 0), lastLine)

	lineStart := d.content.LineToByte(line)
	maxCol := d.content.LineLenBytes(line)
	if line != lastLine {
		maxCol = max(maxCol-1, 0)
	}
	col = min(max(col, 0), maxCol)

	d.cursor = d.floorBoundary(lineStart + col)
}

func (d *Document) updateSticky() {
	d.sticky, _ = d.Position()
}

// MoveUp moves to the previous line, aiming for the sticky column.
func (d *Document) MoveUp() {
	x, line := d.Position()
	d.moveTo(line-1, max(x, d.sticky))
}

// MoveDown moves to the next line, aiming for the sticky column.
func (d *Document) MoveDown() {
	x, line := d.Position()
	d.moveTo(line+1, max(x, d.sticky))
}

// MoveLeft moves back one character within the line.
func (d *Document) MoveLeft() {
	x, line := d.Position()
	step := 1
	if _, offset, ok := d.content.RunesAt(d.cursor).Prev(); ok {
		step = d.cursor - offset
	}
	d.moveTo(line, x-step)
	d.updateSticky()
}

// MoveRight moves forward one character within the line.
func (d *Document) MoveRight() {
	x, line := d.Position()
	step := 1
	it := d.content.RunesAt(d.cursor)
	if _, _, ok := it.Next(); ok {
		step = it.Offset() - d.cursor
	}
	d.moveTo(line, x+step)
	d.updateSticky()
}

// MoveLineStart moves to the first column of the line.
func (d *Document) MoveLineStart() {
	_, line := d.Position()
	d.moveTo(line, 0)
	d.updateSticky()
}

// MoveLineEnd moves to the last column of the line.
func (d *Document) MoveLineEnd() {
	_, line := d.Position()
	d.moveTo(line, d.content.LineLenBytes(line))
	d.updateSticky()
}
