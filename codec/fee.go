package codec

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/lombard-finance/lbtc-core/types"
)

// FeePermitLen is the exact size of a fee permit:
// prefix(4) | chainId(32) | programId(32) | maxFee(32) | expiry(32).
const FeePermitLen = 4 + 4*WordSize

// FeePermit is a recipient-signed authorization to deduct up to MaxFee from
// a mint performed on the recipient's behalf.
type FeePermit struct {
	Action    [4]byte
	ChainID   types.Hash
	ProgramID types.Address
	MaxFee    uint64
	// Expiry is a unix timestamp in seconds.
	Expiry uint64
}

// DecodeFeePermit parses a permit. Any length other than FeePermitLen is
// reported as an invalid signature so that no trailing bytes are ever
// truncated or padded into a valid permit.
func DecodeFeePermit(b []byte) (*FeePermit, error) {
	if len(b) != FeePermitLen {
		return nil, errorsmod.Wrapf(types.ErrInvalidSignature,
			"fee permit must be %d bytes, got %d", FeePermitLen, len(b))
	}

	var (
		p   FeePermit
		err error
	)
	off := 0
	copy(p.Action[:], b[off:off+4])
	off += 4
	copy(p.ChainID[:], b[off:off+WordSize])
	off += WordSize
	copy(p.ProgramID[:], b[off:off+WordSize])
	off += WordSize
	if p.MaxFee, err = readUint64Word(b[off : off+WordSize]); err != nil {
		return nil, err
	}
	off += WordSize
	if p.Expiry, err = readUint64Word(b[off : off+WordSize]); err != nil {
		return nil, err
	}

	return &p, nil
}

func (p *FeePermit) Encode() []byte {
	b := make([]byte, FeePermitLen)
	off := 0
	copy(b[off:], p.Action[:])
	off += 4
	copy(b[off:], p.ChainID[:])
	off += WordSize
	copy(b[off:], p.ProgramID[:])
	off += WordSize
	putUint64Word(b[off:], p.MaxFee)
	off += WordSize
	putUint64Word(b[off:], p.Expiry)
	return b
}
