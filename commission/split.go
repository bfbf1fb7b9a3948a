// Package commission computes integer commission splits in basis points.
//
// All arithmetic is integer-only. Products are formed in a 256-bit
// intermediate so gross * rate never wraps.
package commission

import (
	"fmt"

	"github.com/holiman/uint256"
)

// MaxBasisPoints is 100%.
const MaxBasisPoints = 10_000

var bpsDenominator = uint256.NewInt(MaxBasisPoints)

// Split returns commission = floor(gross * rateBps / 10000) and
// residual = gross - commission.
func Split(gross uint64, rateBps uint16) (commission, residual uint64, err error) {
	if err := ValidateRate(rateBps); err != nil {
		return 0, 0, err
	}
	commission = mulDiv(gross, rateBps)
	return commission, gross - commission, nil
}

// ValidateRate rejects rates above 10000 basis points.
func ValidateRate(rateBps uint16) error {
	if rateBps > MaxBasisPoints {
		return fmt.Errorf("%w: %d bps exceeds %d", ErrInvalidRate, rateBps, MaxBasisPoints)
	}
	return nil
}

// mulDiv computes floor(gross * rateBps / 10000). rateBps <= 10000 keeps
// the quotient <= gross, so it always fits back into 64 bits.
func mulDiv(gross uint64, rateBps uint16) uint64 {
	product := new(uint256.Int).Mul(uint256.NewInt(gross), uint256.NewInt(uint64(rateBps)))
	return product.Div(product, bpsDenominator).Uint64()
}
