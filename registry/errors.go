package registry

import "errors"

var (
	// ErrNotFound indicates no record exists at the derived address.
	ErrNotFound = errors.New("registry: record not found")

	// ErrAlreadyExists indicates the derived address is already occupied.
	ErrAlreadyExists = errors.New("registry: record already exists")

	// ErrNilRecord indicates a nil record was passed to create or update.
	ErrNilRecord = errors.New("registry: nil record")
)
