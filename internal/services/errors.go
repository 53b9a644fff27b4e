package services

import "errors"

// User-facing error taxonomy. Validation errors are returned before any
// store mutation; store-level faults are classified at this boundary and
// never leak internal detail past it.
var (
	ErrInvalidName   = errors.New("invalid name: first and last name required, middle name optional")
	ErrInvalidPhone  = errors.New("invalid phone number")
	ErrInvalidAmount = errors.New("only positive amounts are allowed")
	ErrInvalidKind   = errors.New("invalid transaction type")
	ErrDuplicateName = errors.New("customer name already exists")
	ErrNotFound      = errors.New("customer not found")
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrUndoFailed    = errors.New("undo failed, last action left untouched")
	ErrInvalidCursor = errors.New("invalid report cursor")
	ErrUnexpected    = errors.New("something went wrong, please try again later")
)
