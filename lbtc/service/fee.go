package service

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/lombard-finance/lbtc-core/codec"
	"github.com/lombard-finance/lbtc-core/types"
)

// verifyPermit checks a recipient-signed fee permit against this deployment
// and the current time, returning the decoded permit.
func (p *Program) verifyPermit(
	cfg *types.ProgramConfig,
	recipient types.Address,
	permit []byte,
	sig []byte,
) (*codec.FeePermit, error) {
	fp, err := codec.DecodeFeePermit(permit)
	if err != nil {
		return nil, err
	}
	if fp.Action != codec.FeeApprovalAction {
		return nil, errorsmod.Wrapf(types.ErrInvalidPrefix, "fee permit action %x", fp.Action)
	}
	if fp.ChainID != cfg.ChainID {
		return nil, errorsmod.Wrapf(types.ErrInvalidChainID, "fee permit chain %s", fp.ChainID)
	}
	if fp.ProgramID != cfg.ProgramID {
		return nil, errorsmod.Wrapf(types.ErrInvalidVerifyingContract, "fee permit program %s", fp.ProgramID)
	}

	now := p.clock.Now().Unix()
	if now < 0 || uint64(now) > fp.Expiry {
		return nil, errorsmod.Wrapf(types.ErrPermitExpired, "expired at %d, now %d", fp.Expiry, now)
	}

	if !p.permits.VerifyPermit(recipient, codec.PayloadHash(permit), sig) {
		return nil, errorsmod.Wrapf(types.ErrInvalidSignature, "fee permit of %s", recipient)
	}

	return fp, nil
}

// permitFee is the fee actually charged: the configured mint fee, capped by
// what the recipient approved.
func permitFee(mintFee, maxFee uint64) uint64 {
	if maxFee < mintFee {
		return maxFee
	}
	return mintFee
}
