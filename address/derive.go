// Package address derives deterministic storage keys for reflink records.
//
// Every record lives at
//
//	SHA256("reflink/v1" || kind || u32(n) || u32(len(s1)) || s1 || ... || flag || [u64 seq])
//
// Seeds are length-prefixed and the kind byte is part of the preimage, so two
// distinct seed tuples (or the same tuple under two kinds) never share a
// preimage. The optional sequence number is flagged so that "no sequence"
// and "sequence 0" differ.
package address

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
)

// Size is the length of a derived address.
const Size = 32

// domainTag prefixes every derivation preimage.
const domainTag = "reflink/v1"

// Address is a deterministic record key.
type Address [Size]byte

// Kind namespaces derivations by record type.
type Kind uint8

const (
	KindMerchant Kind = iota + 1
	KindAffiliate
	KindAffiliateMerchantLink
	KindCampaign
	KindReferralLink
	KindPurchase
	KindPlatform
	KindBalance
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindMerchant:
		return "MERCHANT"
	case KindAffiliate:
		return "AFFILIATE"
	case KindAffiliateMerchantLink:
		return "AFFILIATE_MERCHANT_LINK"
	case KindCampaign:
		return "CAMPAIGN"
	case KindReferralLink:
		return "REFERRAL_LINK"
	case KindPurchase:
		return "PURCHASE"
	case KindPlatform:
		return "PLATFORM"
	case KindBalance:
		return "BALANCE"
	default:
		return "UNKNOWN"
	}
}

// Derive computes the address for kind and the ordered seed tuple.
// seq is optional; pass nil when the kind is not sequence-addressed.
func Derive(kind Kind, seeds [][]byte, seq *uint64) Address {
	size := len(domainTag) + 1 + 4 + 1
	for _, s := range seeds {
		size += 4 + len(s)
	}
	if seq != nil {
		size += 8
	}

	buf := make([]byte, 0, size)
	buf = append(buf, domainTag...)
	buf = append(buf, byte(kind))
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(seeds)))
	for _, s := range seeds {
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(s)))
		buf = append(buf, s...)
	}
	if seq != nil {
		buf = append(buf, 1)
		buf = binary.BigEndian.AppendUint64(buf, *seq)
	} else {
		buf = append(buf, 0)
	}

	var addr Address
	copy(addr[:], bsvhash.Sha256(buf))
	return addr
}

// FromBytes copies b into an Address.
func FromBytes(b []byte) (Address, error) {
	var addr Address
	if len(b) != Size {
		return addr, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidAddress, Size, len(b))
	}
	copy(addr[:], b)
	return addr, nil
}

// Parse decodes a hex-encoded address.
func Parse(s string) (Address, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	return FromBytes(b)
}

// IsZero reports whether the address is unset.
func (a Address) IsZero() bool {
	return a == Address{}
}

func (a Address) String() string {
	return hex.EncodeToString(a[:])
}
