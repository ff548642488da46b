package codec

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/lombard-finance/lbtc-core/types"
)

// MintPayloadLen is the exact size of a deposit attestation:
// prefix(4) | chainId(32) | recipient(32) | amount(32) | txid(32) | vout(32).
const MintPayloadLen = 4 + 5*WordSize

// MintAction is a decoded deposit attestation.
type MintAction struct {
	Action    [4]byte
	ChainID   types.Hash
	Recipient types.Address
	Amount    uint64
	// TxID is in internal byte order; the payload carries it big-endian.
	TxID chainhash.Hash
	Vout uint32
}

// DecodeMintPayload parses a deposit attestation. Header fields are returned
// as found; checking them against the deployment is up to the caller.
func DecodeMintPayload(b []byte) (*MintAction, error) {
	if len(b) != MintPayloadLen {
		return nil, errorsmod.Wrapf(types.ErrInvalidPayloadLength,
			"mint payload must be %d bytes, got %d", MintPayloadLen, len(b))
	}

	var (
		a   MintAction
		err error
	)
	off := 0
	copy(a.Action[:], b[off:off+4])
	off += 4
	copy(a.ChainID[:], b[off:off+WordSize])
	off += WordSize
	copy(a.Recipient[:], b[off:off+WordSize])
	off += WordSize
	if a.Amount, err = readUint64Word(b[off : off+WordSize]); err != nil {
		return nil, err
	}
	off += WordSize
	for i := 0; i < chainhash.HashSize; i++ {
		a.TxID[i] = b[off+WordSize-1-i]
	}
	off += WordSize
	if a.Vout, err = readUint32Word(b[off : off+WordSize]); err != nil {
		return nil, err
	}

	return &a, nil
}

// Encode serializes the action into its signed wire form.
func (a *MintAction) Encode() []byte {
	b := make([]byte, MintPayloadLen)
	off := 0
	copy(b[off:], a.Action[:])
	off += 4
	copy(b[off:], a.ChainID[:])
	off += WordSize
	copy(b[off:], a.Recipient[:])
	off += WordSize
	putUint64Word(b[off:], a.Amount)
	off += WordSize
	for i := 0; i < chainhash.HashSize; i++ {
		b[off+WordSize-1-i] = a.TxID[i]
	}
	off += WordSize
	putUint64Word(b[off:], uint64(a.Vout))
	return b
}

// CheckHeader verifies the selector and destination chain of the action.
func (a *MintAction) CheckHeader(chainID types.Hash) error {
	if a.Action != DepositBtcAction {
		return errorsmod.Wrapf(types.ErrInvalidPrefix, "got %x", a.Action)
	}
	if a.ChainID != chainID {
		return errorsmod.Wrapf(types.ErrInvalidChainID, "got %s", a.ChainID)
	}
	return nil
}

// DepositID returns the bascule identifier of the deposit this action mints.
func (a *MintAction) DepositID() types.Hash {
	return DepositID(a.Recipient, a.Amount, types.Hash(a.TxID), a.Vout)
}
