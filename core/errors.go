package core

import (
	"errors"
	"log"
)

var (
	ErrNoViewExtent     = errors.New("viewport used before first render")
	ErrUnsortedSpans    = errors.New("highlight spans not sorted by end byte")
	ErrOverlappingSpans = errors.New("highlight spans overlap")
	ErrInvalidSpan      = errors.New("invalid highlight span")
	ErrInvalidCommand   = errors.New("command not found")
	ErrUnsavedChanges   = errors.New("unsaved changes (use q! to override)")
	ErrNoChangesToSave  = errors.New("no changes to save")
	ErrNoFileName       = errors.New("no file name")
)

type ErrorId int

const (
	ErrInvalidCommandId ErrorId = iota
	ErrUnsavedChangesId
	ErrNoChangesToSaveId
	ErrFailedToSaveId
	ErrFailedToParseId
	ErrCopyFailedId
)

// Error pairs an error with the id consumers use to classify it.
type Error struct {
	id  ErrorId
	err error
}

func NewError(id ErrorId, err error) *Error {
	return &Error{id: id, err: err}
}

func (e *Error) Id() ErrorId {
	return e.id
}

func (e *Error) Error() string {
	return e.err.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}

func (d *Document) DispatchError(id ErrorId, err error) {
	select {
	case d.updateSignal <- ErrorSignal{id, err}:
	default:
		log.Println("Channel is full, unable to send error signal")
	}
}
