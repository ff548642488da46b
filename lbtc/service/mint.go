package service

import (
	"errors"

	errorsmod "cosmossdk.io/errors"
	"github.com/lightningnetwork/lnd/kvdb"
	"go.uber.org/zap"

	"github.com/lombard-finance/lbtc-core/codec"
	"github.com/lombard-finance/lbtc-core/consortium"
	"github.com/lombard-finance/lbtc-core/lbtc/store"
	"github.com/lombard-finance/lbtc-core/types"
)

// CreateMintPayload records a deposit attestation so validators can sign it.
// There is one record per payload hash.
func (p *Program) CreateMintPayload(hash types.Hash, payload []byte) error {
	return p.update("create_mint_payload", func(tx kvdb.RwTx, cfg *types.ProgramConfig, evs *types.Events) error {
		if err := cfg.RequireNotPaused(); err != nil {
			return err
		}
		active, err := consortium.NewRegistry(&cfg.ValidatorSet).Active()
		if err != nil {
			return err
		}

		action, err := codec.DecodeMintPayload(payload)
		if err != nil {
			return err
		}
		if err := action.CheckHeader(cfg.ChainID); err != nil {
			return err
		}
		if computed := codec.PayloadHash(payload); computed != hash {
			return errorsmod.Wrapf(types.ErrHashMismatch, "computed %s", computed)
		}

		mp := &types.MintPayload{
			Hash:    hash,
			Payload: payload,
			Tally:   types.SignatureTally{Epoch: active.Epoch},
		}
		err = store.CreateMintPayload(tx, mp)
		if errors.Is(err, store.ErrDuplicateMintPayload) {
			return errorsmod.Wrapf(types.ErrAlreadyExists, "mint payload %s", hash)
		}
		if err != nil {
			return err
		}

		evs.Emit(types.MintPayloadCreated{PayloadHash: hash})
		return nil
	})
}

// PostMintSignatures adds validator signatures to a mint payload. Posting to
// a minted payload is a no-op. Signatures collected under a retired set are
// discarded before the new ones are counted.
func (p *Program) PostMintSignatures(hash types.Hash, sigs [][]byte, indices []uint64) error {
	return p.update("post_mint_signatures", func(tx kvdb.RwTx, cfg *types.ProgramConfig, evs *types.Events) error {
		if err := cfg.RequireNotPaused(); err != nil {
			return err
		}
		active, err := consortium.NewRegistry(&cfg.ValidatorSet).Active()
		if err != nil {
			return err
		}

		mp, err := store.GetMintPayload(tx, hash)
		if err != nil {
			return notFound(err, store.ErrMintPayloadNotFound, "mint payload %s", hash)
		}
		if mp.Minted {
			return nil
		}
		if mp.Tally.Epoch != active.Epoch {
			consortium.ResetTally(&mp.Tally, active.Epoch)
		}

		added, err := p.accumulator.AddSignatures(active, &mp.Tally, hash, sigs, indices)
		if err != nil {
			return err
		}
		if err := store.UpdateMintPayload(tx, mp); err != nil {
			return err
		}

		evs.Emit(types.SignaturesAdded{PayloadHash: hash, Added: added, Weight: mp.Tally.Weight})
		return nil
	})
}

// MintFromPayload mints the full attested amount to recipient once the
// payload has reached quorum.
func (p *Program) MintFromPayload(caller types.Address, hash types.Hash, recipient types.Address) error {
	return p.update("mint_from_payload", func(tx kvdb.RwTx, cfg *types.ProgramConfig, evs *types.Events) error {
		action, mp, err := p.consumePayload(tx, cfg, hash, recipient, evs)
		if err != nil {
			return err
		}
		if err := p.ledger.MintTo(tx, recipient, action.Amount); err != nil {
			return err
		}

		evs.Emit(types.MintProofConsumed{
			Recipient:   recipient,
			PayloadHash: hash,
			Payload:     mp.Payload,
			Amount:      action.Amount,
		})
		p.logger.Info("minted from payload",
			zap.String("caller", caller.String()),
			zap.String("payload_hash", hash.String()),
			zap.Uint64("amount", action.Amount),
		)
		return nil
	})
}

// MintWithFee mints on behalf of recipient, paying the claimer's fee to the
// treasury under a permit the recipient signed.
func (p *Program) MintWithFee(
	caller types.Address,
	hash types.Hash,
	recipient types.Address,
	treasury types.Address,
	permit []byte,
	permitSig []byte,
) error {
	return p.update("mint_with_fee", func(tx kvdb.RwTx, cfg *types.ProgramConfig, evs *types.Events) error {
		if err := cfg.RequireRole(types.RoleClaimer, caller); err != nil {
			return err
		}

		action, mp, err := p.consumePayload(tx, cfg, hash, recipient, evs)
		if err != nil {
			return err
		}

		fp, err := p.verifyPermit(cfg, recipient, permit, permitSig)
		if err != nil {
			return err
		}
		fee := permitFee(cfg.MintFee, fp.MaxFee)
		if fee >= action.Amount {
			return errorsmod.Wrapf(types.ErrFeeExceedsAmount, "fee %d, amount %d", fee, action.Amount)
		}
		if treasury != cfg.Treasury {
			return errorsmod.Wrapf(types.ErrInvalidTreasury, "got %s", treasury)
		}

		if err := p.ledger.MintTo(tx, recipient, action.Amount-fee); err != nil {
			return err
		}
		if fee > 0 {
			if err := p.ledger.MintTo(tx, treasury, fee); err != nil {
				return err
			}
		}

		evs.Emit(types.MintProofConsumed{
			Recipient:   recipient,
			PayloadHash: hash,
			Payload:     mp.Payload,
			Amount:      action.Amount - fee,
			Fee:         fee,
		})
		p.logger.Info("minted with fee",
			zap.String("claimer", caller.String()),
			zap.String("payload_hash", hash.String()),
			zap.Uint64("amount", action.Amount-fee),
			zap.Uint64("fee", fee),
		)
		return nil
	})
}

// consumePayload runs the checks shared by both mint paths and marks the
// payload minted.
func (p *Program) consumePayload(
	tx kvdb.RwTx,
	cfg *types.ProgramConfig,
	hash types.Hash,
	recipient types.Address,
	evs *types.Events,
) (*codec.MintAction, *types.MintPayload, error) {
	if err := cfg.RequireNotPaused(); err != nil {
		return nil, nil, err
	}

	mp, err := store.GetMintPayload(tx, hash)
	if err != nil {
		return nil, nil, notFound(err, store.ErrMintPayloadNotFound, "mint payload %s", hash)
	}
	if mp.Minted {
		return nil, nil, errorsmod.Wrapf(types.ErrAlreadyMinted, "mint payload %s", hash)
	}

	active, err := consortium.NewRegistry(&cfg.ValidatorSet).Active()
	if err != nil {
		return nil, nil, err
	}
	if mp.Tally.Epoch != active.Epoch || !consortium.HasQuorum(&mp.Tally, active) {
		return nil, nil, errorsmod.Wrapf(types.ErrNotEnoughSignatures,
			"weight %d at epoch %d, threshold %d at epoch %d",
			mp.Tally.Weight, mp.Tally.Epoch, active.WeightThreshold, active.Epoch)
	}

	action, err := codec.DecodeMintPayload(mp.Payload)
	if err != nil {
		return nil, nil, err
	}
	if action.Recipient != recipient {
		return nil, nil, errorsmod.Wrapf(types.ErrRecipientMismatch, "payload pays %s", action.Recipient)
	}

	if cfg.BasculeEnabled {
		if p.bascule == nil {
			return nil, nil, ErrBasculeUnavailable
		}
		err := p.bascule.ValidateWithdrawalTx(
			tx,
			cfg.ProgramID,
			action.DepositID(),
			action.Recipient,
			action.Amount,
			types.Hash(action.TxID),
			action.Vout,
			evs,
		)
		if err != nil {
			return nil, nil, err
		}
	}

	mp.Minted = true
	if err := store.UpdateMintPayload(tx, mp); err != nil {
		return nil, nil, err
	}

	return action, mp, nil
}
