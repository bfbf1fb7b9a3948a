// Package registry provides typed create/fetch/update of reflink records on
// top of a store transaction.
//
// The registry never opens transactions of its own. Callers run it inside
// the same store.Update that moves value, so counters and balances always
// commit together.
package registry

import (
	"errors"
	"fmt"

	"github.com/bitfsorg/reflink-go/address"
	"github.com/bitfsorg/reflink-go/record"
	"github.com/bitfsorg/reflink-go/store"
)

type codec[T any] struct {
	kind   address.Kind
	encode func(*T) ([]byte, error)
	decode func([]byte) (*T, error)
}

// checkKind maps a record of the wrong kind at addr to ErrAddressCollision.
func checkKind(data []byte, want address.Kind, addr address.Address) error {
	got, err := record.Kind(data)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("%w: %s at %s holds a %s record", address.ErrAddressCollision, want, addr, got)
	}
	return nil
}

func create[T any](tx store.Tx, c codec[T], addr address.Address, rec *T) error {
	if rec == nil {
		return fmt.Errorf("%w: %s", ErrNilRecord, c.kind)
	}
	existing, err := tx.Get(addr)
	switch {
	case err == nil:
		if err := checkKind(existing, c.kind, addr); err != nil {
			return err
		}
		return fmt.Errorf("%w: %s %s", ErrAlreadyExists, c.kind, addr)
	case !errors.Is(err, store.ErrKeyNotFound):
		return err
	}
	data, err := c.encode(rec)
	if err != nil {
		return err
	}
	return tx.Put(addr, data)
}

func fetch[T any](tx store.Tx, c codec[T], addr address.Address) (*T, error) {
	data, err := tx.Get(addr)
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s %s", ErrNotFound, c.kind, addr)
	}
	if err != nil {
		return nil, err
	}
	if err := checkKind(data, c.kind, addr); err != nil {
		return nil, err
	}
	return c.decode(data)
}

func update[T any](tx store.Tx, c codec[T], addr address.Address, rec *T) error {
	if rec == nil {
		return fmt.Errorf("%w: %s", ErrNilRecord, c.kind)
	}
	if _, err := fetch(tx, c, addr); err != nil {
		return err
	}
	data, err := c.encode(rec)
	if err != nil {
		return err
	}
	return tx.Put(addr, data)
}

var (
	merchantCodec  = codec[record.Merchant]{address.KindMerchant, record.SerializeMerchant, record.DeserializeMerchant}
	affiliateCodec = codec[record.Affiliate]{address.KindAffiliate, record.SerializeAffiliate, record.DeserializeAffiliate}
	linkCodec      = codec[record.AffiliateMerchantLink]{address.KindAffiliateMerchantLink, record.SerializeAffiliateMerchantLink, record.DeserializeAffiliateMerchantLink}
	campaignCodec  = codec[record.Campaign]{address.KindCampaign, record.SerializeCampaign, record.DeserializeCampaign}
	referralCodec  = codec[record.ReferralLink]{address.KindReferralLink, record.SerializeReferralLink, record.DeserializeReferralLink}
	purchaseCodec  = codec[record.PurchaseRecord]{address.KindPurchase, record.SerializePurchase, record.DeserializePurchase}
	platformCodec  = codec[record.Platform]{address.KindPlatform, record.SerializePlatform, record.DeserializePlatform}
	balanceCodec   = codec[record.Balance]{address.KindBalance, record.SerializeBalance, record.DeserializeBalance}
)
