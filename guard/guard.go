// Package guard checks that a caller may act on a record.
package guard

import (
	"fmt"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"

	"github.com/bitfsorg/reflink-go/address"
)

// Authorize returns ErrUnauthorized unless supplied equals recorded.
// A zero recorded authority authorizes nobody.
func Authorize(recorded, supplied address.Identity) error {
	if recorded.IsZero() || recorded != supplied {
		return fmt.Errorf("%w: %s is not the authority", ErrUnauthorized, supplied)
	}
	return nil
}

// Digest hashes msg with SHA-256 for signing.
func Digest(msg []byte) []byte {
	return bsvhash.Sha256(msg)
}

// VerifyPayer checks a DER-encoded ECDSA signature by payer over digest.
func VerifyPayer(payer address.Identity, digest, sigDER []byte) error {
	if len(sigDER) == 0 {
		return fmt.Errorf("%w: missing signature", ErrInvalidSignature)
	}
	pub, err := payer.PublicKey()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}
	sig, err := ec.ParseDERSignature(sigDER)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}
	if !sig.Verify(digest, pub) {
		return fmt.Errorf("%w: signature does not match payer %s", ErrInvalidSignature, payer)
	}
	return nil
}
