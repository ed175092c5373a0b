package core

type Signal any

type YankSignal struct {
	text       string
	totalLines int
	lineMode   bool
}

func (y YankSignal) Value() (text string, totalLines int, lineMode bool) {
	return y.text, y.totalLines, y.lineMode
}

type MessageSignal struct {
	id    string
	value string
}

func (m MessageSignal) Value() (id, message string) {
	id = m.id
	message = m.value

	return id, message
}

type SaveSignal struct {
	content string
	path    string
	quit    bool
}

// Value returns the saved content and the target path, which is empty when
// the document should be written to the file it was opened from.
func (s SaveSignal) Value() (content, path string) {
	return s.content, s.path
}

// QuitAfter reports whether the application should close once the write
// succeeds.
func (s SaveSignal) QuitAfter() bool {
	return s.quit
}

type QuitSignal struct{}

type ErrorSignal Error

func (e ErrorSignal) Value() (id ErrorId, err error) {
	id = e.id
	err = e.err

	return id, err
}

func (d *Document) SignalChan() <-chan Signal {
	return d.updateSignal
}

func (d *Document) DispatchSignal(signal Signal) {
	select {
	case d.updateSignal <- signal:
	default: // Ignore if the channel is full
	}
}

// OnEdit registers fn to receive every EditDescriptor the document produces,
// after the syntax tree has been patched.
func (d *Document) OnEdit(fn func(EditDescriptor)) {
	d.editListeners = append(d.editListeners, fn)
}

func (d *Document) notifyEdit(edit EditDescriptor) {
	d.stale = true
	if d.tree != nil {
		d.tree.Edit(edit)
	}
	for _, fn := range d.editListeners {
		fn(edit)
	}
}
