package files

import "errors"

var (
	// ErrNotFound is returned when no file matches the given id.
	ErrNotFound = errors.New("file not found")
	// ErrInvalidInput covers malformed requests and writes rejected by the store.
	ErrInvalidInput = errors.New("invalid input")
)
