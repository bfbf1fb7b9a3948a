package record

import "github.com/bitfsorg/reflink-go/address"

// SerializeMerchant encodes a Merchant.
func SerializeMerchant(m *Merchant) ([]byte, error) {
	e := newEncoder(address.KindMerchant, 128+len(m.Name)+len(m.Website))
	e.bytes(m.Authority[:])
	e.str("name", m.Name)
	e.str("website", m.Website)
	e.u16(m.RateBps)
	e.asset(m.Asset)
	e.boolean(m.Active)
	e.u64(m.TotalRevenue)
	e.u64(m.TotalReferrals)
	e.u64(m.CampaignCount)
	e.i64(m.CreatedAt)
	return e.finish()
}

// DeserializeMerchant decodes a Merchant.
func DeserializeMerchant(data []byte) (*Merchant, error) {
	d, err := newDecoder(data, address.KindMerchant)
	if err != nil {
		return nil, err
	}
	m := &Merchant{
		Authority:      d.identity(),
		Name:           d.str(),
		Website:        d.str(),
		RateBps:        d.u16(),
		Asset:          d.asset(),
		Active:         d.boolean(),
		TotalRevenue:   d.u64(),
		TotalReferrals: d.u64(),
		CampaignCount:  d.u64(),
		CreatedAt:      d.i64(),
	}
	if err := d.finish(); err != nil {
		return nil, err
	}
	return m, nil
}

// SerializeAffiliate encodes an Affiliate.
func SerializeAffiliate(a *Affiliate) ([]byte, error) {
	e := newEncoder(address.KindAffiliate, 80+len(a.Name))
	e.bytes(a.Authority[:])
	e.str("name", a.Name)
	e.u64(a.TotalEarned)
	e.u64(a.TotalReferrals)
	e.u64(a.PurchaseSeq)
	e.i64(a.CreatedAt)
	return e.finish()
}

// DeserializeAffiliate decodes an Affiliate.
func DeserializeAffiliate(data []byte) (*Affiliate, error) {
	d, err := newDecoder(data, address.KindAffiliate)
	if err != nil {
		return nil, err
	}
	a := &Affiliate{
		Authority:      d.identity(),
		Name:           d.str(),
		TotalEarned:    d.u64(),
		TotalReferrals: d.u64(),
		PurchaseSeq:    d.u64(),
		CreatedAt:      d.i64(),
	}
	if err := d.finish(); err != nil {
		return nil, err
	}
	return a, nil
}

// SerializeAffiliateMerchantLink encodes an AffiliateMerchantLink.
func SerializeAffiliateMerchantLink(l *AffiliateMerchantLink) ([]byte, error) {
	e := newEncoder(address.KindAffiliateMerchantLink, 88)
	e.bytes(l.Merchant[:])
	e.bytes(l.Affiliate[:])
	e.u64(l.Earned)
	e.u64(l.Referrals)
	e.i64(l.CreatedAt)
	return e.finish()
}

// DeserializeAffiliateMerchantLink decodes an AffiliateMerchantLink.
func DeserializeAffiliateMerchantLink(data []byte) (*AffiliateMerchantLink, error) {
	d, err := newDecoder(data, address.KindAffiliateMerchantLink)
	if err != nil {
		return nil, err
	}
	l := &AffiliateMerchantLink{
		Merchant:  d.addr(),
		Affiliate: d.addr(),
		Earned:    d.u64(),
		Referrals: d.u64(),
		CreatedAt: d.i64(),
	}
	if err := d.finish(); err != nil {
		return nil, err
	}
	return l, nil
}

// SerializeCampaign encodes a Campaign.
func SerializeCampaign(c *Campaign) ([]byte, error) {
	e := newEncoder(address.KindCampaign, 112+len(c.Identifier))
	e.bytes(c.Merchant[:])
	e.str("identifier", c.Identifier)
	e.u16(c.RateBps)
	e.asset(c.Asset)
	e.boolean(c.Open)
	e.boolean(c.Active)
	e.u64(c.Purchases)
	e.u64(c.Revenue)
	e.u64(c.Commission)
	e.i64(c.CreatedAt)
	return e.finish()
}

// DeserializeCampaign decodes a Campaign.
func DeserializeCampaign(data []byte) (*Campaign, error) {
	d, err := newDecoder(data, address.KindCampaign)
	if err != nil {
		return nil, err
	}
	c := &Campaign{
		Merchant:   d.addr(),
		Identifier: d.str(),
		RateBps:    d.u16(),
		Asset:      d.asset(),
		Open:       d.boolean(),
		Active:     d.boolean(),
		Purchases:  d.u64(),
		Revenue:    d.u64(),
		Commission: d.u64(),
		CreatedAt:  d.i64(),
	}
	if err := d.finish(); err != nil {
		return nil, err
	}
	return c, nil
}

// SerializeReferralLink encodes a ReferralLink.
func SerializeReferralLink(l *ReferralLink) ([]byte, error) {
	e := newEncoder(address.KindReferralLink, 112+len(l.Code))
	e.bytes(l.Promoter[:])
	e.bytes(l.Campaign[:])
	e.str("code", l.Code)
	e.u64(l.Clicks)
	e.u64(l.Conversions)
	e.u64(l.Sales)
	e.u64(l.Commission)
	e.boolean(l.Active)
	e.i64(l.CreatedAt)
	return e.finish()
}

// DeserializeReferralLink decodes a ReferralLink.
func DeserializeReferralLink(data []byte) (*ReferralLink, error) {
	d, err := newDecoder(data, address.KindReferralLink)
	if err != nil {
		return nil, err
	}
	l := &ReferralLink{
		Promoter:    d.identity(),
		Campaign:    d.addr(),
		Code:        d.str(),
		Clicks:      d.u64(),
		Conversions: d.u64(),
		Sales:       d.u64(),
		Commission:  d.u64(),
		Active:      d.boolean(),
		CreatedAt:   d.i64(),
	}
	if err := d.finish(); err != nil {
		return nil, err
	}
	return l, nil
}

// SerializePurchase encodes a PurchaseRecord.
func SerializePurchase(p *PurchaseRecord) ([]byte, error) {
	e := newEncoder(address.KindPurchase, 220+len(p.EventType)+len(p.Metadata))
	e.bytes(p.Affiliate[:])
	e.bytes(p.Merchant[:])
	e.bytes(p.Campaign[:])
	e.bytes(p.Customer[:])
	e.u64(p.Gross)
	e.u64(p.Commission)
	e.u64(p.PlatformFee)
	e.u64(p.MerchantAmount)
	e.asset(p.Asset)
	e.str("event type", p.EventType)
	e.str("metadata", p.Metadata)
	e.u64(p.Sequence)
	e.i64(p.Timestamp)
	return e.finish()
}

// DeserializePurchase decodes a PurchaseRecord.
func DeserializePurchase(data []byte) (*PurchaseRecord, error) {
	d, err := newDecoder(data, address.KindPurchase)
	if err != nil {
		return nil, err
	}
	p := &PurchaseRecord{
		Affiliate:      d.addr(),
		Merchant:       d.addr(),
		Campaign:       d.addr(),
		Customer:       d.identity(),
		Gross:          d.u64(),
		Commission:     d.u64(),
		PlatformFee:    d.u64(),
		MerchantAmount: d.u64(),
		Asset:          d.asset(),
		EventType:      d.str(),
		Metadata:       d.str(),
		Sequence:       d.u64(),
		Timestamp:      d.i64(),
	}
	if err := d.finish(); err != nil {
		return nil, err
	}
	return p, nil
}

// SerializePlatform encodes a Platform.
func SerializePlatform(p *Platform) ([]byte, error) {
	e := newEncoder(address.KindPlatform, 76)
	e.bytes(p.Authority[:])
	e.u16(p.FeeBps)
	e.bytes(p.Recipient[:])
	e.i64(p.CreatedAt)
	return e.finish()
}

// DeserializePlatform decodes a Platform.
func DeserializePlatform(data []byte) (*Platform, error) {
	d, err := newDecoder(data, address.KindPlatform)
	if err != nil {
		return nil, err
	}
	p := &Platform{
		Authority: d.identity(),
		FeeBps:    d.u16(),
		Recipient: d.identity(),
		CreatedAt: d.i64(),
	}
	if err := d.finish(); err != nil {
		return nil, err
	}
	return p, nil
}

// SerializeBalance encodes a Balance.
func SerializeBalance(b *Balance) ([]byte, error) {
	e := newEncoder(address.KindBalance, 74)
	e.bytes(b.Owner[:])
	e.asset(b.Asset)
	e.u64(b.Amount)
	return e.finish()
}

// DeserializeBalance decodes a Balance.
func DeserializeBalance(data []byte) (*Balance, error) {
	d, err := newDecoder(data, address.KindBalance)
	if err != nil {
		return nil, err
	}
	b := &Balance{
		Owner:  d.identity(),
		Asset:  d.asset(),
		Amount: d.u64(),
	}
	if err := d.finish(); err != nil {
		return nil, err
	}
	return b, nil
}
