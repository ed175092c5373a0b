package core

import (
	"io"
	"log"

	"github.com/ionut-t/ropedit/core/rope"
)

// Document is a text buffer with a single cursor, a mode, a scroll position
// and an optional syntax tree kept in step with every edit.
//
// A Document is not safe for concurrent use.
type Document struct {
	content rope.Rope
	saved   string
	tree    SyntaxTree

	// spans caches the highlights of tree; highlighted reports whether they
	// belong to the current tree.
	spans       []HighlightSpan
	highlighted bool
	stale       bool

	mode Mode
	// cursor is a byte offset on a character boundary in [0, LenBytes].
	cursor int
	// sticky is the preferred byte column for vertical motion.
	sticky int

	scrollTop int
	extent    *ViewExtent

	editListeners []func(EditDescriptor)
	updateSignal  chan Signal
}

// New returns an empty document in Normal mode.
func New() *Document {
	return NewFromString("")
}

// NewFromString returns a document holding text, considered saved.
func NewFromString(text string) *Document {
	return &Document{
		content:      rope.FromString(text),
		saved:        text,
		mode:         Normal{},
		updateSignal: make(chan Signal, 100), // Buffered channel for updates
	}
}

// NewFromReader returns a document holding everything r yields.
func NewFromReader(r io.Reader) (*Document, error) {
	content, err := rope.FromReader(r)
	if err != nil {
		return nil, err
	}
	d := NewFromString("")
	d.content = content
	d.saved = content.String()
	return d, nil
}

// SetContent replaces the whole text as one edit and marks it saved. The
// cursor, mode and scroll position are reset.
func (d *Document) SetContent(text string) {
	oldEnd := d.content.LenBytes()
	oldEndPoint := d.pointAt(oldEnd)

	d.content = rope.FromString(text)
	d.saved = text
	d.mode = Normal{}
	d.cursor, d.sticky, d.scrollTop = 0, 0, 0

	d.notifyEdit(EditDescriptor{
		OldEndByte:  oldEnd,
		NewEndByte:  len(text),
		OldEndPoint: oldEndPoint,
		NewEndPoint: d.pointAt(len(text)),
	})
}

// Rope returns the document text. Ropes are immutable, so the value stays
// valid after further edits.
func (d *Document) Rope() rope.Rope {
	return d.content
}

// Content returns the current text.
func (d *Document) Content() string {
	return d.content.String()
}

// SavedContent returns the text as of the last save.
func (d *Document) SavedContent() string {
	return d.saved
}

// IsModified reports whether the text differs from the saved text.
func (d *Document) IsModified() bool {
	return d.content.LenBytes() != len(d.saved) || d.content.String() != d.saved
}

// SaveContent marks the current text as saved.
func (d *Document) SaveContent() {
	d.saved = d.content.String()
}

// MarkSaved records text as the saved version. Hosts call it once the text
// has been written, so a failed write leaves the document modified.
func (d *Document) MarkSaved(text string) {
	d.saved = text
}

// Save asks the application to write the text to path, or to the file the
// document came from when path is empty. The text counts as saved only once
// the application reports the write through MarkSaved.
func (d *Document) Save(path string) {
	d.requestSave(path, false)
}

// SaveAndQuit is Save followed by a quit that the application performs only
// if the write succeeds.
func (d *Document) SaveAndQuit(path string) {
	d.requestSave(path, true)
}

func (d *Document) requestSave(path string, quit bool) {
	signal := SaveSignal{content: d.content.String(), path: path, quit: quit}

	select {
	case d.updateSignal <- signal:
	default:
		log.Println("Document: Failed to send SaveSignal - channel full or not ready")
	}
}

// Quit asks the application to close the document.
func (d *Document) Quit() {
	select {
	case d.updateSignal <- QuitSignal{}:
	default:
		log.Println("Document: Failed to send QuitSignal - channel full or not ready")
	}
}

// Cursor returns the cursor byte offset.
func (d *Document) Cursor() int {
	return d.cursor
}

// StickyColumn returns the byte column vertical motion aims for.
func (d *Document) StickyColumn() int {
	return d.sticky
}
