package core

import (
	"fmt"
	"log"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"
)

// Cell is one character of a rendered row.
type Cell struct {
	Rune  rune
	Style lipgloss.Style
	// Width is the number of terminal columns the cell occupies.
	Width int
}

// CellPosition addresses a screen cell by row and terminal column.
type CellPosition struct {
	Row int
	Col int
}

// Status is the status bar readout. Line and Column are 1-based.
type Status struct {
	Mode   string
	Line   int
	Column int
}

func (s Status) Position() string {
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// Frame is the composed text area of one render.
type Frame struct {
	Rows [][]Cell
	// Lines holds the document line index shown on each row.
	Lines []int
	// LineStyles holds the base style of each row.
	LineStyles []lipgloss.Style
	// Cursor is nil when the cursor is outside the rendered cells.
	Cursor *CellPosition
	Status Status
}

// Render parses the document, records the view extent and composes the
// visible rows of a rows x cols text area. parser may be nil.
func (d *Document) Render(parser Parser, theme *Theme, rows, cols int) Frame {
	rows, cols = max(rows, 0), max(cols, 0)
	d.setExtent(rows, cols)
	d.scrollTop = min(d.scrollTop, d.content.LenLines()-1)

	spans := d.highlights(parser)
	selection := d.SelectionRange()
	x, cursorLine := d.Position()
	selectionStyle := patch(theme.Editor, theme.Selection)

	frame := Frame{
		Status: Status{Mode: d.mode.Label(), Line: cursorLine + 1, Column: x + 1},
	}

	lastLine := d.content.LenLines() - 1
	span := 0
	for row := 0; row < rows; row++ {
		line := d.scrollTop + row
		if line > lastLine {
			break
		}

		lineStyle := theme.Editor
		if line == cursorLine {
			lineStyle = patch(theme.Editor, theme.ActiveLine)
		}

		start, end := d.content.LineToByte(line), d.content.LineToByte(line+1)
		cells := make([]Cell, 0, min(cols, end-start))
		col := 0
		complete := true

		it := d.content.RunesAt(start)
		for it.Offset() < end {
			ch, offset, _ := it.Next()

			width := 1
			if ch == '\n' || unicode.IsControl(ch) {
				ch = ' '
			} else {
				width = max(uniseg.StringWidth(string(ch)), 1)
			}
			if col+width > cols {
				complete = false
				break
			}

			style := lineStyle
			for span < len(spans) && spans[span].EndByte <= offset {
				span++
			}
			if span < len(spans) && spans[span].contains(offset) {
				style = patch(lineStyle, theme.TokenStyle(spans[span].Scope))
			}
			if selection.Contains(offset) {
				style = patch(style, selectionStyle)
			}

			if offset == d.cursor {
				frame.Cursor = &CellPosition{Row: row, Col: col}
			}
			cells = append(cells, Cell{Rune: ch, Style: style, Width: width})
			col += width
		}

		if complete && line == lastLine && d.cursor == end && col < cols {
			frame.Cursor = &CellPosition{Row: row, Col: col}
		}

		frame.Rows = append(frame.Rows, cells)
		frame.Lines = append(frame.Lines, line)
		frame.LineStyles = append(frame.LineStyles, lineStyle)
	}

	return frame
}

// highlights returns the spans of the current tree, parsing only when the
// document changed since the last parse.
func (d *Document) highlights(parser Parser) []HighlightSpan {
	if parser == nil {
		return nil
	}
	if d.tree != nil && !d.stale && d.highlighted {
		return d.spans
	}

	text := d.content.String()
	if d.tree == nil || d.stale {
		if err := d.parse(parser, text); err != nil {
			log.Printf("Render: %v", err)
		}
	}
	if d.tree == nil {
		return nil
	}
	d.spans = NormalizeSpans(parser.Highlights(d.tree, text))
	d.highlighted = true
	return d.spans
}
