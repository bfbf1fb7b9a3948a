package engine

import (
	"github.com/bitfsorg/reflink-go/address"
	"github.com/bitfsorg/reflink-go/record"
	"github.com/bitfsorg/reflink-go/registry"
	"github.com/bitfsorg/reflink-go/store"
	"github.com/bitfsorg/reflink-go/transfer"
)

func view[T any](e *Engine, addr address.Address, fetch func(store.Tx, address.Address) (*T, error)) (*T, error) {
	var rec *T
	err := e.store.View(func(tx store.Tx) error {
		var err error
		rec, err = fetch(tx, addr)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Merchant returns the merchant record at addr.
func (e *Engine) Merchant(addr address.Address) (*record.Merchant, error) {
	return view(e, addr, registry.FetchMerchant)
}

// Affiliate returns the affiliate record at addr.
func (e *Engine) Affiliate(addr address.Address) (*record.Affiliate, error) {
	return view(e, addr, registry.FetchAffiliate)
}

// AffiliateMerchantLink returns the program enrolment at addr.
func (e *Engine) AffiliateMerchantLink(addr address.Address) (*record.AffiliateMerchantLink, error) {
	return view(e, addr, registry.FetchAffiliateMerchantLink)
}

// Campaign returns the campaign at addr.
func (e *Engine) Campaign(addr address.Address) (*record.Campaign, error) {
	return view(e, addr, registry.FetchCampaign)
}

// ReferralLink returns the referral link at addr.
func (e *Engine) ReferralLink(addr address.Address) (*record.ReferralLink, error) {
	return view(e, addr, registry.FetchReferralLink)
}

// Purchase returns the purchase record at addr.
func (e *Engine) Purchase(addr address.Address) (*record.PurchaseRecord, error) {
	return view(e, addr, registry.FetchPurchase)
}

// Platform returns the platform singleton.
func (e *Engine) Platform() (*record.Platform, error) {
	return view(e, address.Platform(), registry.FetchPlatform)
}

// Balance returns owner's balance of a. Owners that never held a have a
// zero balance rather than ErrNotFound.
func (e *Engine) Balance(owner address.Identity, a record.Asset) (uint64, error) {
	var amount uint64
	err := e.store.View(func(tx store.Tx) error {
		var err error
		amount, err = transfer.BalanceOf(tx, owner, a)
		return err
	})
	return amount, err
}
