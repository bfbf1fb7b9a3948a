package record

import "github.com/bitfsorg/reflink-go/address"

// Merchant is the selling party. Merchants are never deleted, only
// deactivated.
type Merchant struct {
	Authority      address.Identity
	Name           string
	Website        string
	RateBps        uint16 // default commission for direct purchases and new campaigns
	Asset          Asset  // asset purchases against this merchant must use
	Active         bool
	TotalRevenue   uint64 // cumulative gross
	TotalReferrals uint64
	CampaignCount  uint64
	CreatedAt      int64 // unix seconds
}

// Affiliate is a referring party. One per authority.
type Affiliate struct {
	Authority      address.Identity
	Name           string
	TotalEarned    uint64
	TotalReferrals uint64
	PurchaseSeq    uint64 // next sequence number for sequence-addressed purchases
	CreatedAt      int64
}

// AffiliateMerchantLink records an affiliate's enrolment in a merchant's
// program. One per (affiliate, merchant) pair.
type AffiliateMerchantLink struct {
	Merchant  address.Address
	Affiliate address.Address
	Earned    uint64
	Referrals uint64
	CreatedAt int64
}

// Campaign is a merchant-owned promotion. Open=false is terminal.
type Campaign struct {
	Merchant   address.Address
	Identifier string
	RateBps    uint16
	Asset      Asset
	Open       bool
	Active     bool
	Purchases  uint64
	Revenue    uint64
	Commission uint64
	CreatedAt  int64
}

// ReferralLink is a promoter's tracking handle on a campaign. One per
// (campaign, promoter).
type ReferralLink struct {
	Promoter    address.Identity
	Campaign    address.Address
	Code        string
	Clicks      uint64
	Conversions uint64
	Sales       uint64
	Commission  uint64
	Active      bool
	CreatedAt   int64
}

// PurchaseRecord is the immutable receipt of one value-moving event.
type PurchaseRecord struct {
	Affiliate      address.Address
	Merchant       address.Address
	Campaign       address.Address // zero for purchases made directly against a merchant
	Customer       address.Identity
	Gross          uint64
	Commission     uint64
	PlatformFee    uint64
	MerchantAmount uint64
	Asset          Asset
	EventType      string
	Metadata       string
	Sequence       uint64
	Timestamp      int64
}

// Platform is the global fee configuration singleton.
type Platform struct {
	Authority address.Identity
	FeeBps    uint16
	Recipient address.Identity
	CreatedAt int64
}

// Balance is the amount of one asset held by one owner.
type Balance struct {
	Owner  address.Identity
	Asset  Asset
	Amount uint64
}
