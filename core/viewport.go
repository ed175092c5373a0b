package core

import "log"

// ViewExtent is the size of the text area captured by the last render.
type ViewExtent struct {
	Rows    int
	Columns int
}

// ViewExtent returns the extent of the last render, if any.
func (d *Document) ViewExtent() (ViewExtent, bool) {
	if d.extent == nil {
		return ViewExtent{}, false
	}
	return *d.extent, true
}

// ScrollTop returns the index of the first visible line.
func (d *Document) ScrollTop() int {
	return d.scrollTop
}

// ScrollUp scrolls the view one line up.
func (d *Document) ScrollUp() {
	d.scrollTop = max(d.scrollTop-1, 0)
}

// ScrollDown scrolls the view one line down, stopping at the last line.
func (d *Document) ScrollDown() {
	d.scrollTop = min(d.scrollTop+1, d.content.LenLines()-1)
}

// ScrollToCursor scrolls as little as possible to bring the cursor line into
// view. It does nothing before the first render.
func (d *Document) ScrollToCursor() {
	extent, ok := d.ViewExtent()
	if !ok {
		log.Printf("ScrollToCursor: %v", ErrNoViewExtent)
		return
	}
	_, line := d.Position()
	d.scrollTop = min(max(d.scrollTop, line-(extent.Rows-1)), line)
}

// MoveToView moves the cursor onto the nearest visible line, keeping the
// sticky column. It does nothing before the first render.
func (d *Document) MoveToView() {
	extent, ok := d.ViewExtent()
	if !ok {
		log.Printf("MoveToView: %v", ErrNoViewExtent)
		return
	}
	_, line := d.Position()
	line = min(max(line, d.scrollTop), max(d.scrollTop+extent.Rows-1, d.scrollTop))
	d.moveTo(line, d.sticky)
}

func (d *Document) setExtent(rows, cols int) {
	d.extent = &ViewExtent{Rows: max(rows, 0), Columns: max(cols, 0)}
}
