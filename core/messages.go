package core

import "log"

var (
	ChangesSavedMessage = "changes saved"
	YankMessage         = "selection yanked"
)

// DispatchMessage sends a message signal. The first argument is the message
// id and the optional second one the text shown for it.
func (d *Document) DispatchMessage(args ...string) {
	id := args[0]
	value := id
	if len(args) > 1 {
		value = args[1]
	}
	select {
	case d.updateSignal <- MessageSignal{id, value}:
	default:
		log.Println("Channel is full, unable to send message signal")
	}
}
