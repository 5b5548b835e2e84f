package core

import "errors"

var (
	// ErrNotFound is returned when the Record Store has no record for an id.
	ErrNotFound = errors.New("employee not found")
	// ErrLocalRecord is returned when an imported row is edited; imported
	// rows exist only in the session and have no store counterpart.
	ErrLocalRecord = errors.New("imported record is not stored")
	// ErrFileTooLarge is returned when an import exceeds the configured size.
	ErrFileTooLarge = errors.New("file too large")
	// ErrNoFile is returned when an import request carries no file.
	ErrNoFile = errors.New("no file provided")
)
