package repository

import "errors"

// Store implementations wrap their driver errors into these so the
// application layer never has to know which backend is in use.
var (
	ErrNotFound    = errors.New("record not found")
	ErrConflict    = errors.New("record conflicts with an existing one")
	ErrUnavailable = errors.New("store unavailable")
)
