package commission

import "errors"

var (
	// ErrInvalidRate indicates a basis-point rate above 10000, or a combined
	// platform + affiliate rate above 10000 when both apply to the gross.
	ErrInvalidRate = errors.New("commission: invalid rate")

	// ErrConservationViolation indicates split parts do not sum to the gross.
	ErrConservationViolation = errors.New("commission: value conservation violated")

	// ErrUnknownOrder indicates an unrecognized platform fee order.
	ErrUnknownOrder = errors.New("commission: unknown fee order")
)
