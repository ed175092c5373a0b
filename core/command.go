package core

import (
	"fmt"
	"strings"
)

type Clipboard interface {
	Write(text string) error
	Read() (string, error)
}

// ExecuteCommand runs a command line entry such as "w notes.txt" or "q!".
func (d *Document) ExecuteCommand(cmd string) error {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return nil
	}

	parts := strings.Fields(cmd)
	command := parts[0]
	args := parts[1:]

	switch command {
	case "q", "quit":
		if d.IsModified() {
			return NewError(ErrUnsavedChangesId, ErrUnsavedChanges)
		}
		d.Quit()
		return nil

	case "q!", "quit!":
		d.Quit()
		return nil

	case "w", "write":
		if len(args) == 0 && !d.IsModified() {
			return NewError(ErrNoChangesToSaveId, ErrNoChangesToSave)
		}
		d.Save(strings.Join(args, " "))
		return nil

	case "wq", "x":
		if len(args) > 0 || d.IsModified() {
			d.SaveAndQuit(strings.Join(args, " "))
			return nil
		}
		d.Quit()
		return nil
	}

	return NewError(ErrInvalidCommandId, fmt.Errorf("%w: %s", ErrInvalidCommand, command))
}

// Yank writes the selected text to clipboard.
func (d *Document) Yank(clipboard Clipboard) error {
	text := d.SelectedText()
	if err := clipboard.Write(text); err != nil {
		return NewError(ErrCopyFailedId, err)
	}

	lines := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		lines++
	}

	sel, _ := d.mode.(Select)
	d.DispatchSignal(YankSignal{
		text:       text,
		totalLines: lines,
		lineMode:   sel.LineMode,
	})
	return nil
}
