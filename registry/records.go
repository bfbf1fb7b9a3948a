package registry

import (
	"github.com/bitfsorg/reflink-go/address"
	"github.com/bitfsorg/reflink-go/record"
	"github.com/bitfsorg/reflink-go/store"
)

// CreateMerchant stores a new Merchant at addr or fails with ErrAlreadyExists.
func CreateMerchant(tx store.Tx, addr address.Address, rec *record.Merchant) error {
	return create(tx, merchantCodec, addr, rec)
}

// FetchMerchant loads the Merchant at addr or fails with ErrNotFound.
func FetchMerchant(tx store.Tx, addr address.Address) (*record.Merchant, error) {
	return fetch(tx, merchantCodec, addr)
}

// UpdateMerchant overwrites the existing Merchant at addr.
func UpdateMerchant(tx store.Tx, addr address.Address, rec *record.Merchant) error {
	return update(tx, merchantCodec, addr, rec)
}

// CreateAffiliate stores a new Affiliate at addr or fails with ErrAlreadyExists.
func CreateAffiliate(tx store.Tx, addr address.Address, rec *record.Affiliate) error {
	return create(tx, affiliateCodec, addr, rec)
}

// FetchAffiliate loads the Affiliate at addr or fails with ErrNotFound.
func FetchAffiliate(tx store.Tx, addr address.Address) (*record.Affiliate, error) {
	return fetch(tx, affiliateCodec, addr)
}

// UpdateAffiliate overwrites the existing Affiliate at addr.
func UpdateAffiliate(tx store.Tx, addr address.Address, rec *record.Affiliate) error {
	return update(tx, affiliateCodec, addr, rec)
}

// CreateAffiliateMerchantLink stores a new AffiliateMerchantLink at addr or fails with ErrAlreadyExists.
func CreateAffiliateMerchantLink(tx store.Tx, addr address.Address, rec *record.AffiliateMerchantLink) error {
	return create(tx, linkCodec, addr, rec)
}

// FetchAffiliateMerchantLink loads the AffiliateMerchantLink at addr or fails with ErrNotFound.
func FetchAffiliateMerchantLink(tx store.Tx, addr address.Address) (*record.AffiliateMerchantLink, error) {
	return fetch(tx, linkCodec, addr)
}

// UpdateAffiliateMerchantLink overwrites the existing AffiliateMerchantLink at addr.
func UpdateAffiliateMerchantLink(tx store.Tx, addr address.Address, rec *record.AffiliateMerchantLink) error {
	return update(tx, linkCodec, addr, rec)
}

// CreateCampaign stores a new Campaign at addr or fails with ErrAlreadyExists.
func CreateCampaign(tx store.Tx, addr address.Address, rec *record.Campaign) error {
	return create(tx, campaignCodec, addr, rec)
}

// FetchCampaign loads the Campaign at addr or fails with ErrNotFound.
func FetchCampaign(tx store.Tx, addr address.Address) (*record.Campaign, error) {
	return fetch(tx, campaignCodec, addr)
}

// UpdateCampaign overwrites the existing Campaign at addr.
func UpdateCampaign(tx store.Tx, addr address.Address, rec *record.Campaign) error {
	return update(tx, campaignCodec, addr, rec)
}

// CreateReferralLink stores a new ReferralLink at addr or fails with ErrAlreadyExists.
func CreateReferralLink(tx store.Tx, addr address.Address, rec *record.ReferralLink) error {
	return create(tx, referralCodec, addr, rec)
}

// FetchReferralLink loads the ReferralLink at addr or fails with ErrNotFound.
func FetchReferralLink(tx store.Tx, addr address.Address) (*record.ReferralLink, error) {
	return fetch(tx, referralCodec, addr)
}

// UpdateReferralLink overwrites the existing ReferralLink at addr.
func UpdateReferralLink(tx store.Tx, addr address.Address, rec *record.ReferralLink) error {
	return update(tx, referralCodec, addr, rec)
}

// CreatePurchase stores a new PurchaseRecord at addr or fails with ErrAlreadyExists.
func CreatePurchase(tx store.Tx, addr address.Address, rec *record.PurchaseRecord) error {
	return create(tx, purchaseCodec, addr, rec)
}

// FetchPurchase loads the PurchaseRecord at addr or fails with ErrNotFound.
func FetchPurchase(tx store.Tx, addr address.Address) (*record.PurchaseRecord, error) {
	return fetch(tx, purchaseCodec, addr)
}

// CreatePlatform stores a new Platform at addr or fails with ErrAlreadyExists.
func CreatePlatform(tx store.Tx, addr address.Address, rec *record.Platform) error {
	return create(tx, platformCodec, addr, rec)
}

// FetchPlatform loads the Platform at addr or fails with ErrNotFound.
func FetchPlatform(tx store.Tx, addr address.Address) (*record.Platform, error) {
	return fetch(tx, platformCodec, addr)
}

// UpdatePlatform overwrites the existing Platform at addr.
func UpdatePlatform(tx store.Tx, addr address.Address, rec *record.Platform) error {
	return update(tx, platformCodec, addr, rec)
}

// CreateBalance stores a new Balance at addr or fails with ErrAlreadyExists.
func CreateBalance(tx store.Tx, addr address.Address, rec *record.Balance) error {
	return create(tx, balanceCodec, addr, rec)
}

// FetchBalance loads the Balance at addr or fails with ErrNotFound.
func FetchBalance(tx store.Tx, addr address.Address) (*record.Balance, error) {
	return fetch(tx, balanceCodec, addr)
}

// UpdateBalance overwrites the existing Balance at addr.
func UpdateBalance(tx store.Tx, addr address.Address, rec *record.Balance) error {
	return update(tx, balanceCodec, addr, rec)
}
