package address

import "errors"

var (
	// ErrInvalidIdentity indicates identity bytes are not a compressed public key.
	ErrInvalidIdentity = errors.New("address: invalid identity")

	// ErrInvalidAddress indicates an address string or byte slice is malformed.
	ErrInvalidAddress = errors.New("address: invalid address")

	// ErrAddressCollision indicates a derived address is already occupied by a
	// record of a different kind. Seed uniqueness is the caller's contract, so
	// this only surfaces when that contract is broken.
	ErrAddressCollision = errors.New("address: address collision")
)
