package engine

import (
	"encoding/binary"

	"github.com/bitfsorg/reflink-go/address"
	"github.com/bitfsorg/reflink-go/guard"
	"github.com/bitfsorg/reflink-go/record"
)

// PurchaseRequest asks the engine to split Gross from Customer between
// the affiliate, the merchant and the platform. Exactly one of Campaign
// and Merchant is set.
type PurchaseRequest struct {
	Campaign  address.Address
	Merchant  address.Address
	Affiliate address.Identity // referring affiliate authority
	Customer  address.Identity // payer
	Gross     uint64
	Asset     record.Asset
	EventType string
	Metadata  string
	Sequence  uint64 // affiliate's PurchaseSeq at signing time; binds Signature to one purchase
	Signature []byte // DER signature by Customer over Digest, checked when enabled
}

// ConversionRequest logs a conversion event on a campaign. A zero Amount
// records the event without moving value.
type ConversionRequest struct {
	Campaign  address.Address
	Affiliate address.Identity
	Customer  address.Identity
	EventType string
	Metadata  string
	Amount    uint64
	Asset     record.Asset
	Sequence  uint64
	Signature []byte
}

const (
	purchaseDomain   = "reflink/purchase/v1"
	conversionDomain = "reflink/conversion/v1"
)

// Digest is the SHA-256 hash the customer signs to authorize the payment.
// It covers Sequence, so a signature is spent by the first purchase that
// advances the affiliate's sequence.
func (r PurchaseRequest) Digest() []byte {
	return guard.Digest(digestMessage(purchaseDomain, r.Campaign, r.Merchant, r.Affiliate, r.Customer,
		r.Gross, r.Sequence, r.Asset, r.EventType, r.Metadata))
}

// Digest is the SHA-256 hash the customer signs to authorize the payment.
func (r ConversionRequest) Digest() []byte {
	return guard.Digest(digestMessage(conversionDomain, r.Campaign, address.Address{}, r.Affiliate, r.Customer,
		r.Amount, r.Sequence, r.Asset, r.EventType, r.Metadata))
}

func digestMessage(domain string, scope, merchant address.Address, affiliate, customer address.Identity,
	amount, seq uint64, a record.Asset, eventType, metadata string) []byte {
	buf := make([]byte, 0, 256)
	buf = append(buf, domain...)
	buf = append(buf, scope[:]...)
	buf = append(buf, merchant[:]...)
	buf = append(buf, affiliate[:]...)
	buf = append(buf, customer[:]...)
	buf = binary.BigEndian.AppendUint64(buf, amount)
	buf = binary.BigEndian.AppendUint64(buf, seq)
	buf = append(buf, a.ID()...)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(eventType)))
	buf = append(buf, eventType...)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(metadata)))
	buf = append(buf, metadata...)
	return buf
}
