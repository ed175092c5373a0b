package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordEdits(d *Document) *[]EditDescriptor {
	var edits []EditDescriptor
	d.OnEdit(func(e EditDescriptor) {
		edits = append(edits, e)
	})
	return &edits
}

func TestNewDocument(t *testing.T) {
	d := New()

	assert.Equal(t, "", d.Content())
	assert.Equal(t, 0, d.Cursor())
	assert.Equal(t, Normal{}, d.Mode())
	assert.False(t, d.IsModified())
	assert.Nil(t, d.Tree())

	_, ok := d.ViewExtent()
	assert.False(t, ok)
}

func TestNewFromReader(t *testing.T) {
	d, err := NewFromReader(strings.NewReader("hello\nworld"))
	require.NoError(t, err)

	assert.Equal(t, "hello\nworld", d.Content())
	assert.Equal(t, "hello\nworld", d.SavedContent())
	assert.False(t, d.IsModified())

	d.Insert('!')
	assert.True(t, d.IsModified())

	d.SaveContent()
	assert.False(t, d.IsModified())
	assert.Equal(t, "!hello\nworld", d.SavedContent())
}

func TestSetContent(t *testing.T) {
	d := NewFromString("one\ntwo")
	d.cursor = 5
	d.EnterSelect()
	edits := recordEdits(d)

	d.SetContent("αβ\nγ\n")

	assert.Equal(t, "αβ\nγ\n", d.Content())
	assert.False(t, d.IsModified())
	assert.Equal(t, 0, d.Cursor())
	assert.Equal(t, Normal{}, d.Mode())
	assert.Equal(t, []EditDescriptor{{
		StartByte:   0,
		OldEndByte:  7,
		NewEndByte:  8,
		OldEndPoint: Point{Row: 1, Column: 3},
		NewEndPoint: Point{Row: 2, Column: 0},
	}}, *edits)
}

func TestModeTransitions(t *testing.T) {
	d := NewFromString("abc")
	d.cursor = 2

	d.EnterInsert()
	assert.True(t, d.IsInsertMode())
	assert.Equal(t, "INS", d.Mode().Label())

	d.EnterSelect()
	assert.Equal(t, Select{StartByte: 2}, d.Mode())
	assert.Equal(t, "SEL", d.Mode().Label())

	d.EnterSelectLine()
	assert.Equal(t, Select{StartByte: 2, LineMode: true}, d.Mode())
	assert.Equal(t, "LIN", d.Mode().Label())

	d.EnterNormal()
	assert.True(t, d.IsNormalMode())
	assert.False(t, d.IsSelectMode())
	assert.Equal(t, "abc", d.Content(), "mode changes never touch the buffer")
}

func TestWordMotionsThenInsert(t *testing.T) {
	d := NewFromString("fn main() {\n    42\n}")
	edits := recordEdits(d)

	var landed []int
	for range 4 {
		d.MoveNextWord()
		landed = append(landed, d.Cursor())
	}
	assert.Equal(t, []int{2, 3, 9, 10}, landed)

	for range 3 {
		d.MoveLeft()
	}
	require.Equal(t, 7, d.Cursor())
	require.Equal(t, "(", d.Content()[d.Cursor():d.Cursor()+1])

	d.EnterInsert()
	d.Insert('x')

	assert.Equal(t, "fn mainx() {\n    42\n}", d.Content())
	assert.Equal(t, 8, d.Cursor())
	assert.Equal(t, 8, d.StickyColumn())
	require.Len(t, *edits, 1)
	assert.Equal(t, EditDescriptor{
		StartByte:   7,
		OldEndByte:  7,
		NewEndByte:  8,
		StartPoint:  Point{Row: 0, Column: 7},
		OldEndPoint: Point{Row: 0, Column: 7},
		NewEndPoint: Point{Row: 0, Column: 8},
	}, (*edits)[0])
}

func TestLineSelectionRemovesAllLines(t *testing.T) {
	d := NewFromString("ab\ncd")
	edits := recordEdits(d)

	d.EnterSelectLine()
	d.MoveDown()
	assert.Equal(t, Range{Start: 0, End: 4}, d.SelectionRange())

	d.Remove()

	assert.Equal(t, "", d.Content())
	assert.Equal(t, 0, d.Cursor())
	// The anchor collapses onto the cursor and the mode stays Select.
	assert.Equal(t, Select{StartByte: 0, LineMode: true}, d.Mode())
	require.Len(t, *edits, 1)
	assert.Equal(t, EditDescriptor{
		StartByte:   0,
		OldEndByte:  5,
		NewEndByte:  0,
		OldEndPoint: Point{Row: 1, Column: 2},
	}, (*edits)[0])
}

func TestRemove(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		anchor     int
		cursor     int
		mode       string
		want       string
		wantCursor int
	}{
		{name: "char under cursor", text: "abc", cursor: 1, mode: "normal", want: "ac", wantCursor: 1},
		{name: "multi-byte char under cursor", text: "aé€b", cursor: 3, mode: "normal", want: "aéb", wantCursor: 3},
		{name: "cursor at end of buffer", text: "abc", cursor: 3, mode: "normal", want: "abc", wantCursor: 3},
		{name: "forward selection", text: "hello world", anchor: 2, cursor: 6, mode: "select", want: "heorld", wantCursor: 2},
		{name: "backward selection", text: "hello world", anchor: 6, cursor: 2, mode: "select", want: "heorld", wantCursor: 2},
		{name: "selection ending on multi-byte char", text: "ab€cd", anchor: 0, cursor: 2, mode: "select", want: "cd", wantCursor: 0},
		{name: "first of three lines", text: "one\ntwo\nthree", anchor: 1, cursor: 2, mode: "line", want: "two\nthree", wantCursor: 0},
		{name: "middle line", text: "one\ntwo\nthree", anchor: 5, cursor: 5, mode: "line", want: "one\nthree", wantCursor: 4},
		{name: "last line keeps previous newline", text: "one\ntwo", anchor: 5, cursor: 5, mode: "line", want: "one\n", wantCursor: 4},
		{name: "empty last line removes nothing", text: "ab\n", anchor: 3, cursor: 3, mode: "line", want: "ab\n", wantCursor: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewFromString(tt.text)
			d.cursor = tt.anchor
			switch tt.mode {
			case "select":
				d.EnterSelect()
			case "line":
				d.EnterSelectLine()
			}
			d.cursor = tt.cursor

			d.Remove()

			assert.Equal(t, tt.want, d.Content())
			assert.Equal(t, tt.wantCursor, d.Cursor())
			if sel, ok := d.Mode().(Select); ok {
				assert.Equal(t, tt.wantCursor, sel.StartByte)
			}
		})
	}
}

func TestRemoveOnEmptyBuffer(t *testing.T) {
	d := New()
	edits := recordEdits(d)
	d.EnterSelectLine()

	d.Remove()

	assert.Equal(t, "", d.Content())
	assert.Equal(t, Select{StartByte: 0, LineMode: true}, d.Mode())
	assert.Empty(t, *edits)
}

func TestRemoveEmptyLastLine(t *testing.T) {
	d := NewFromString("ab\n")
	edits := recordEdits(d)
	d.MoveDown()
	d.EnterSelectLine()

	assert.Equal(t, Range{Start: 3, End: 3}, d.SelectionRange())

	d.Remove()

	assert.Equal(t, "ab\n", d.Content())
	assert.Equal(t, 3, d.Cursor())
	assert.Empty(t, *edits)
}

func TestRemoveBefore(t *testing.T) {
	d := NewFromString("a€\nb")
	edits := recordEdits(d)

	d.RemoveBefore()
	assert.Empty(t, *edits, "nothing precedes the start of the buffer")

	d.cursor = 5 // 'b'
	d.RemoveBefore()
	assert.Equal(t, "a€b", d.Content())
	assert.Equal(t, 4, d.Cursor())

	d.RemoveBefore()
	assert.Equal(t, "ab", d.Content())
	assert.Equal(t, 1, d.Cursor())

	require.Len(t, *edits, 2)
	assert.Equal(t, EditDescriptor{
		StartByte:   4,
		OldEndByte:  5,
		NewEndByte:  4,
		StartPoint:  Point{Row: 0, Column: 4},
		OldEndPoint: Point{Row: 1, Column: 0},
		NewEndPoint: Point{Row: 0, Column: 4},
	}, (*edits)[0])
	assert.Equal(t, -3, (*edits)[1].Delta())
}

func TestInsertNewlinePoints(t *testing.T) {
	d := NewFromString("ab")
	d.cursor = 1
	edits := recordEdits(d)

	d.Insert('\n')

	assert.Equal(t, "a\nb", d.Content())
	require.Len(t, *edits, 1)
	assert.Equal(t, Point{Row: 0, Column: 1}, (*edits)[0].StartPoint)
	assert.Equal(t, Point{Row: 1, Column: 0}, (*edits)[0].NewEndPoint)
}

func TestInsertTab(t *testing.T) {
	d := NewFromString("ab")
	d.cursor = 2

	d.InsertTab(4)
	assert.Equal(t, "ab  ", d.Content())

	d.InsertTab(4)
	assert.Equal(t, "ab      ", d.Content())
	assert.Equal(t, 8, d.Cursor())
}

func TestSelectedText(t *testing.T) {
	d := NewFromString("one\ntwo€\nthree")

	d.cursor = 4
	d.EnterSelect()
	d.cursor = 7
	assert.Equal(t, "two€", d.SelectedText())

	d.EnterSelectLine()
	d.MoveDown()
	assert.Equal(t, "two€\nthree", d.SelectedText())
}

func TestSelectionRangeOutsideSelect(t *testing.T) {
	d := NewFromString("abc")
	d.cursor = 1
	assert.Equal(t, Range{Start: 1, End: 1}, d.SelectionRange())

	d.EnterInsert()
	assert.Equal(t, Range{Start: 1, End: 1}, d.SelectionRange())
}

func TestLineSelectionWithMultiByteLine(t *testing.T) {
	d := NewFromString("a€\nxy")
	d.EnterSelectLine()

	r := d.SelectionRange()
	assert.Equal(t, 0, r.Start)
	assert.Equal(t, 4, r.End, "ends on the line terminator")
}
