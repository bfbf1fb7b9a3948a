package guard

import "errors"

var (
	// ErrUnauthorized indicates the supplied identity is not the recorded authority.
	ErrUnauthorized = errors.New("guard: unauthorized")

	// ErrInvalidSignature indicates a payer signature failed to parse or verify.
	ErrInvalidSignature = errors.New("guard: invalid signature")
)
