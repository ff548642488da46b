package signer

import (
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/lombard-finance/lbtc-core/types"
)

const (
	// ValidatorSignatureSize is the size of a compact R || S signature.
	ValidatorSignatureSize = 64
	// PermitSignatureSize is the size of a BIP340 signature.
	PermitSignatureSize = schnorr.SignatureSize
)

// Verifier checks validator signatures over a 32-byte digest.
type Verifier interface {
	Verify(pubKey types.ValidatorPubKey, digest types.Hash, sig []byte) bool
}

// PermitVerifier checks the signature of a fee permit against the recipient
// authority that issued it.
type PermitVerifier interface {
	VerifyPermit(signer types.Address, digest types.Hash, sig []byte) bool
}

// Secp256k1Verifier verifies ECDSA signatures of consortium validators.
// Malleable (high-S) signatures are rejected.
type Secp256k1Verifier struct{}

func NewSecp256k1Verifier() *Secp256k1Verifier {
	return &Secp256k1Verifier{}
}

func (v *Secp256k1Verifier) Verify(pubKey types.ValidatorPubKey, digest types.Hash, sig []byte) bool {
	if len(sig) != ValidatorSignatureSize {
		return false
	}
	return crypto.VerifySignature(pubKey[:], digest[:], sig)
}

// SchnorrVerifier verifies BIP340 signatures where the signer address is the
// x-only public key.
type SchnorrVerifier struct{}

func NewSchnorrVerifier() *SchnorrVerifier {
	return &SchnorrVerifier{}
}

func (v *SchnorrVerifier) VerifyPermit(signer types.Address, digest types.Hash, sig []byte) bool {
	if len(sig) != PermitSignatureSize {
		return false
	}
	pk, err := schnorr.ParsePubKey(signer[:])
	if err != nil {
		return false
	}
	s, err := schnorr.ParseSignature(sig)
	if err != nil {
		return false
	}
	return s.Verify(digest[:], pk)
}
