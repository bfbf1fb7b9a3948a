package store

import "errors"

var (
	// ErrKeyNotFound indicates no value is stored at the address.
	ErrKeyNotFound = errors.New("store: key not found")

	// ErrReadOnly indicates a write was attempted inside a read-only transaction.
	ErrReadOnly = errors.New("store: transaction is read-only")

	// ErrNilParam indicates a required parameter is nil or empty.
	ErrNilParam = errors.New("store: required parameter is nil")

	// ErrClosed indicates the store has been closed.
	ErrClosed = errors.New("store: store is closed")
)
