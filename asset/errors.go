package asset

import "errors"

var (
	// ErrUnknownAsset indicates the asset is not listed in the registry.
	ErrUnknownAsset = errors.New("asset: unknown asset")

	// ErrInvalidAssetFile indicates the asset file is malformed.
	ErrInvalidAssetFile = errors.New("asset: invalid asset file")

	// ErrDuplicateAsset indicates two entries share a symbol or mint.
	ErrDuplicateAsset = errors.New("asset: duplicate asset")
)
