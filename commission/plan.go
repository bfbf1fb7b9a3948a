package commission

import (
	"fmt"
	"strings"
)

// FeeOrder selects how a platform fee interacts with the affiliate commission.
type FeeOrder uint8

const (
	// FeeBeforeCommission deducts the platform fee from the gross first; the
	// affiliate commission is then computed on what remains.
	FeeBeforeCommission FeeOrder = iota

	// FeeIndependent computes the platform fee and the affiliate commission
	// each on the full gross; the merchant receives the rest.
	FeeIndependent
)

// String returns the configuration spelling of the order.
func (o FeeOrder) String() string {
	switch o {
	case FeeBeforeCommission:
		return "before"
	case FeeIndependent:
		return "independent"
	default:
		return "unknown"
	}
}

// ParseFeeOrder parses "before" or "independent".
func ParseFeeOrder(s string) (FeeOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "before", "":
		return FeeBeforeCommission, nil
	case "independent":
		return FeeIndependent, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOrder, s)
	}
}

// Breakdown is the full allocation of one gross amount.
type Breakdown struct {
	Gross          uint64
	PlatformFee    uint64
	Commission     uint64
	MerchantAmount uint64
}

// Plan allocates gross between the platform, the affiliate and the merchant.
// A platformBps of 0 yields the two-party split.
func Plan(gross uint64, affiliateBps, platformBps uint16, order FeeOrder) (Breakdown, error) {
	if err := ValidateRate(affiliateBps); err != nil {
		return Breakdown{}, err
	}
	if err := ValidateRate(platformBps); err != nil {
		return Breakdown{}, err
	}

	b := Breakdown{Gross: gross}
	switch order {
	case FeeBeforeCommission:
		fee, rest, _ := Split(gross, platformBps)
		commission, merchant, _ := Split(rest, affiliateBps)
		b.PlatformFee, b.Commission, b.MerchantAmount = fee, commission, merchant
	case FeeIndependent:
		if uint32(affiliateBps)+uint32(platformBps) > MaxBasisPoints {
			return Breakdown{}, fmt.Errorf("%w: affiliate %d + platform %d bps exceeds %d",
				ErrInvalidRate, affiliateBps, platformBps, MaxBasisPoints)
		}
		b.PlatformFee = mulDiv(gross, platformBps)
		b.Commission = mulDiv(gross, affiliateBps)
		b.MerchantAmount = gross - b.PlatformFee - b.Commission
	default:
		return Breakdown{}, fmt.Errorf("%w: %d", ErrUnknownOrder, order)
	}

	if err := ValidateConservation(b); err != nil {
		return Breakdown{}, err
	}
	return b, nil
}

// ValidateConservation checks that the parts of b sum exactly to its gross.
func ValidateConservation(b Breakdown) error {
	sum := b.PlatformFee + b.Commission
	if sum < b.PlatformFee {
		return fmt.Errorf("%w: fee + commission overflows", ErrConservationViolation)
	}
	total := sum + b.MerchantAmount
	if total < sum || total != b.Gross {
		return fmt.Errorf("%w: fee=%d commission=%d merchant=%d gross=%d",
			ErrConservationViolation, b.PlatformFee, b.Commission, b.MerchantAmount, b.Gross)
	}
	return nil
}
