package transfer

import "errors"

var (
	// ErrInsufficientBalance indicates the payer cannot cover every leg.
	ErrInsufficientBalance = errors.New("transfer: insufficient balance")

	// ErrAssetMismatch indicates the supplied asset is not the one required.
	ErrAssetMismatch = errors.New("transfer: asset mismatch")

	// ErrUnknownAsset indicates no strategy or registry entry covers the asset.
	ErrUnknownAsset = errors.New("transfer: unknown asset")

	// ErrOverflow indicates a sum or balance exceeded 64 bits.
	ErrOverflow = errors.New("transfer: amount overflow")

	// ErrNoRecipients indicates a transfer without legs.
	ErrNoRecipients = errors.New("transfer: no recipients")
)
