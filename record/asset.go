package record

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// AssetKind distinguishes native balances from fungible token balances.
type AssetKind uint8

const (
	// AssetNative is the execution environment's native value.
	AssetNative AssetKind = 0
	// AssetToken is a fungible token identified by its mint.
	AssetToken AssetKind = 1
)

// String returns a human-readable representation of the asset kind.
func (k AssetKind) String() string {
	switch k {
	case AssetNative:
		return "NATIVE"
	case AssetToken:
		return "TOKEN"
	default:
		return "UNKNOWN"
	}
}

// AssetIDSize is kind(1) + mint(32).
const AssetIDSize = 33

// Asset identifies the value type moved by a purchase.
type Asset struct {
	Kind AssetKind
	Mint [32]byte // zero for AssetNative
}

// Native is the native asset.
var Native = Asset{Kind: AssetNative}

// TokenAsset returns the token asset for mint.
func TokenAsset(mint [32]byte) Asset {
	return Asset{Kind: AssetToken, Mint: mint}
}

// ID returns the canonical 33-byte encoding used in balance addresses.
func (a Asset) ID() []byte {
	id := make([]byte, AssetIDSize)
	id[0] = byte(a.Kind)
	copy(id[1:], a.Mint[:])
	return id
}

// Validate checks that the kind is known and that only tokens carry a mint.
func (a Asset) Validate() error {
	switch a.Kind {
	case AssetNative:
		if a.Mint != [32]byte{} {
			return fmt.Errorf("%w: native asset with mint", ErrInvalidAsset)
		}
	case AssetToken:
		if a.Mint == [32]byte{} {
			return fmt.Errorf("%w: token asset without mint", ErrInvalidAsset)
		}
	default:
		return fmt.Errorf("%w: kind %d", ErrInvalidAsset, a.Kind)
	}
	return nil
}

// String renders "native" or "token:<mint hex>".
func (a Asset) String() string {
	if a.Kind == AssetNative {
		return "native"
	}
	return "token:" + hex.EncodeToString(a.Mint[:])
}

// ParseAsset parses the String form.
func ParseAsset(s string) (Asset, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "native") || s == "" {
		return Native, nil
	}
	rest, ok := strings.CutPrefix(strings.ToLower(s), "token:")
	if !ok {
		return Asset{}, fmt.Errorf("%w: %q", ErrInvalidAsset, s)
	}
	b, err := hex.DecodeString(rest)
	if err != nil || len(b) != 32 {
		return Asset{}, fmt.Errorf("%w: mint must be 32 hex bytes", ErrInvalidAsset)
	}
	a := Asset{Kind: AssetToken}
	copy(a.Mint[:], b)
	return a, nil
}
