package types

import (
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	AddressSize         = 32
	HashSize            = 32
	ValidatorPubKeySize = 65
)

// Address identifies an account. For fee permits the recipient address is
// also the BIP340 x-only public key of the recipient authority.
type Address [AddressSize]byte

// ZeroAddress marks an unset role slot.
var ZeroAddress Address

func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a Address) IsZero() bool {
	return a == ZeroAddress
}

func (a Address) Bytes() []byte {
	return a[:]
}

func NewAddressFromHex(s string) (Address, error) {
	var addr Address
	b, err := decodeFixedHex(s, AddressSize)
	if err != nil {
		return addr, fmt.Errorf("invalid address: %w", err)
	}
	copy(addr[:], b)
	return addr, nil
}

// Hash is a 32-byte digest: payload hashes and deposit ids.
type Hash [HashSize]byte

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h Hash) Bytes() []byte {
	return h[:]
}

func NewHashFromHex(s string) (Hash, error) {
	var h Hash
	b, err := decodeFixedHex(s, HashSize)
	if err != nil {
		return h, fmt.Errorf("invalid hash: %w", err)
	}
	copy(h[:], b)
	return h, nil
}

// ValidatorPubKey is an uncompressed secp256k1 public key (0x04 || X || Y).
type ValidatorPubKey [ValidatorPubKeySize]byte

func (pk ValidatorPubKey) String() string {
	return hex.EncodeToString(pk[:])
}

func (pk ValidatorPubKey) MarshalText() ([]byte, error) {
	return []byte(pk.String()), nil
}

func NewValidatorPubKeyFromHex(s string) (ValidatorPubKey, error) {
	var pk ValidatorPubKey
	b, err := decodeFixedHex(s, ValidatorPubKeySize)
	if err != nil {
		return pk, fmt.Errorf("invalid validator public key: %w", err)
	}
	copy(pk[:], b)
	return pk, nil
}

func decodeFixedHex(s string, size int) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, err
	}
	if len(b) != size {
		return nil, fmt.Errorf("expected %d bytes, got %d", size, len(b))
	}
	return b, nil
}
