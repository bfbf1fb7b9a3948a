package transfer

import (
	"fmt"

	"github.com/bitfsorg/reflink-go/asset"
	"github.com/bitfsorg/reflink-go/record"
)

// Strategy admits one family of assets into the transfer engine.
//
// Strategies only decide which assets may move. Every kind then moves
// through the same debit and credit path, and the two kinds stay apart
// because each balance record is keyed by (owner, Asset.ID()): native and
// token holdings of one owner live at different addresses, as do holdings
// of two different mints.
type Strategy interface {
	// Kind is the asset kind this strategy moves.
	Kind() record.AssetKind
	// Admit rejects assets the strategy cannot move.
	Admit(a record.Asset) error
}

// AssetLookup resolves token metadata. *asset.Registry satisfies it.
type AssetLookup interface {
	Lookup(a record.Asset) (asset.Info, error)
}

// Native moves the chain's native asset.
type Native struct{}

func (Native) Kind() record.AssetKind { return record.AssetNative }

func (Native) Admit(a record.Asset) error {
	if a.Kind != record.AssetNative {
		return fmt.Errorf("%w: native strategy given %s", ErrAssetMismatch, a)
	}
	return a.Validate()
}

// Token moves fungible tokens listed in an asset registry.
type Token struct {
	Assets AssetLookup
}

func (Token) Kind() record.AssetKind { return record.AssetToken }

func (t Token) Admit(a record.Asset) error {
	if a.Kind != record.AssetToken {
		return fmt.Errorf("%w: token strategy given %s", ErrAssetMismatch, a)
	}
	if a.Mint == ([32]byte{}) {
		return fmt.Errorf("%w: zero mint", ErrUnknownAsset)
	}
	if t.Assets == nil {
		return fmt.Errorf("%w: no asset registry for %s", ErrUnknownAsset, a)
	}
	if _, err := t.Assets.Lookup(a); err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownAsset, err)
	}
	return nil
}
