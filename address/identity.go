package address

import (
	"encoding/hex"
	"fmt"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
)

// IdentitySize is the length of a compressed secp256k1 public key.
const IdentitySize = 33

// Identity is the authority credential recorded on accounts: the compressed
// public key of the party allowed to mutate them.
type Identity [IdentitySize]byte

// IdentityFromPublicKey returns the compressed encoding of pub.
func IdentityFromPublicKey(pub *ec.PublicKey) Identity {
	var id Identity
	copy(id[:], pub.Compressed())
	return id
}

// IdentityFromBytes validates b as a compressed public key.
func IdentityFromBytes(b []byte) (Identity, error) {
	var id Identity
	if len(b) != IdentitySize {
		return id, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidIdentity, IdentitySize, len(b))
	}
	if _, err := ec.PublicKeyFromBytes(b); err != nil {
		return id, fmt.Errorf("%w: %w", ErrInvalidIdentity, err)
	}
	copy(id[:], b)
	return id, nil
}

// ParseIdentity decodes a hex-encoded compressed public key.
func ParseIdentity(s string) (Identity, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidIdentity, err)
	}
	return IdentityFromBytes(b)
}

// PublicKey parses the identity back into a public key.
func (id Identity) PublicKey() (*ec.PublicKey, error) {
	pub, err := ec.PublicKeyFromBytes(id[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidIdentity, err)
	}
	return pub, nil
}

// IsZero reports whether the identity is unset.
func (id Identity) IsZero() bool {
	return id == Identity{}
}

func (id Identity) String() string {
	return hex.EncodeToString(id[:])
}
