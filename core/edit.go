package core

// Point is a row and a byte column within that row.
type Point struct {
	Row    int
	Column int
}

// EditDescriptor describes one mutation for an incremental parser. Start
// and OldEnd are in pre-mutation coordinates, NewEnd in post-mutation ones.
type EditDescriptor struct {
	StartByte   int
	OldEndByte  int
	NewEndByte  int
	StartPoint  Point
	OldEndPoint Point
	NewEndPoint Point
}

// Delta returns the change in buffer length the edit causes.
func (e EditDescriptor) Delta() int {
	return e.NewEndByte - e.OldEndByte
}

// pointAt converts a byte offset to a Point against the current content.
func (d *Document) pointAt(offset int) Point {
	row := d.content.ByteToLine(offset)
	return Point{Row: row, Column: offset - d.content.LineToByte(row)}
}
