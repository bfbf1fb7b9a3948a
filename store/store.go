// Package store provides durable keyed storage for reflink records.
//
// Every mutation happens inside Update: either every Put made by the
// callback becomes visible or none does. Readers never observe a partially
// applied Update.
package store

import "github.com/bitfsorg/reflink-go/address"

// Tx is a view of the store inside one transaction.
type Tx interface {
	// Get returns a copy of the value at addr, or ErrKeyNotFound.
	Get(addr address.Address) ([]byte, error)

	// Has reports whether a value is stored at addr.
	Has(addr address.Address) (bool, error)

	// Put stores value at addr, replacing any previous value.
	Put(addr address.Address, value []byte) error
}

// Store runs transactions against durable keyed storage.
type Store interface {
	// Update runs fn in a read-write transaction. If fn returns an error
	// nothing it wrote is applied.
	Update(fn func(Tx) error) error

	// View runs fn in a read-only transaction.
	View(fn func(Tx) error) error

	// Close releases the underlying resources.
	Close() error
}
