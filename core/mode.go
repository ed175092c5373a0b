package core

// Mode is the editing mode of a Document. It is one of Normal, Insert or
// Select; selection-only state lives inside Select so it cannot be read in
// any other mode.
type Mode interface {
	// Label returns the short status bar label of the mode.
	Label() string
	isMode()
}

// Normal is the default mode: keys are commands.
type Normal struct{}

// Insert mode: typed characters are inserted at the cursor.
type Insert struct{}

// Select is a character-wise or line-wise selection anchored at StartByte.
type Select struct {
	StartByte int
	LineMode  bool
}

func (Normal) isMode() {}
func (Insert) isMode() {}
func (Select) isMode() {}

func (Normal) Label() string { return "NOR" }
func (Insert) Label() string { return "INS" }

func (s Select) Label() string {
	if s.LineMode {
		return "LIN"
	}
	return "SEL"
}

// EnterNormal switches to Normal mode, discarding any selection anchor.
func (d *Document) EnterNormal() {
	d.mode = Normal{}
}

// EnterInsert switches to Insert mode.
func (d *Document) EnterInsert() {
	d.mode = Insert{}
}

// EnterSelect starts a character-wise selection anchored at the cursor.
func (d *Document) EnterSelect() {
	d.mode = Select{StartByte: d.cursor}
}

// EnterSelectLine starts a line-wise selection anchored at the cursor.
func (d *Document) EnterSelectLine() {
	d.mode = Select{StartByte: d.cursor, LineMode: true}
}

// Mode returns the current mode.
func (d *Document) Mode() Mode {
	return d.mode
}

// IsNormalMode reports whether the document is in Normal mode.
func (d *Document) IsNormalMode() bool {
	_, ok := d.mode.(Normal)
	return ok
}

// IsInsertMode reports whether the document is in Insert mode.
func (d *Document) IsInsertMode() bool {
	_, ok := d.mode.(Insert)
	return ok
}

// IsSelectMode reports whether a selection of either kind is active.
func (d *Document) IsSelectMode() bool {
	_, ok := d.mode.(Select)
	return ok
}
