package address

// Merchant derives a merchant account address from its owning authority.
func Merchant(authority Identity) Address {
	return Derive(KindMerchant, [][]byte{authority[:]}, nil)
}

// Affiliate derives an affiliate account address from its owning authority.
func Affiliate(authority Identity) Address {
	return Derive(KindAffiliate, [][]byte{authority[:]}, nil)
}

// AffiliateMerchantLink derives the address of the (affiliate, merchant) pairing.
func AffiliateMerchantLink(affiliate, merchant Address) Address {
	return Derive(KindAffiliateMerchantLink, [][]byte{affiliate[:], merchant[:]}, nil)
}

// Campaign derives a campaign address from its merchant and identifier.
func Campaign(merchant Address, identifier string) Address {
	return Derive(KindCampaign, [][]byte{merchant[:], []byte(identifier)}, nil)
}

// ReferralLink derives a promoter's link address on a campaign.
func ReferralLink(campaign Address, promoter Identity) Address {
	return Derive(KindReferralLink, [][]byte{campaign[:], promoter[:]}, nil)
}

// PurchaseBySequence derives a purchase record address from the affiliate,
// the merchant and the affiliate's purchase sequence number.
func PurchaseBySequence(affiliate, merchant Address, seq uint64) Address {
	return Derive(KindPurchase, [][]byte{affiliate[:], merchant[:]}, &seq)
}

// PurchaseByEvent derives a purchase record address from the purchase scope
// (campaign or merchant), the customer and the event type.
func PurchaseByEvent(scope Address, customer Identity, eventType string) Address {
	return Derive(KindPurchase, [][]byte{scope[:], customer[:], []byte(eventType)}, nil)
}

// Platform returns the well-known address of the platform singleton.
func Platform() Address {
	return Derive(KindPlatform, nil, nil)
}

// Balance derives the balance account of owner for an asset identity.
// assetID is the asset's canonical byte encoding.
func Balance(owner Identity, assetID []byte) Address {
	return Derive(KindBalance, [][]byte{owner[:], assetID}, nil)
}
