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

// CreateMetadata opens a staging record for a proposed validator set under
// (hash, caller).
func (p *Program) CreateMetadata(caller types.Address, hash types.Hash) error {
	return p.update("create_metadata", func(tx kvdb.RwTx, _ *types.ProgramConfig, _ *types.Events) error {
		err := store.CreateValsetMetadata(tx, &types.ValsetMetadata{Hash: hash, Creator: caller})
		if errors.Is(err, store.ErrDuplicateValsetMetadata) {
			return errorsmod.Wrapf(types.ErrAlreadyExists, "valset metadata %s", hash)
		}
		return err
	})
}

// PostMetadata appends validators and weights to the caller's staging record.
// Large sets may be posted over several calls until the payload is created.
func (p *Program) PostMetadata(
	caller types.Address,
	hash types.Hash,
	validators []types.ValidatorPubKey,
	weights []uint64,
) error {
	return p.update("post_metadata", func(tx kvdb.RwTx, _ *types.ProgramConfig, _ *types.Events) error {
		m, err := getMetadata(tx, hash, caller)
		if err != nil {
			return err
		}
		_, err = store.GetValsetPayload(tx, hash, caller)
		switch {
		case err == nil:
			return errorsmod.Wrapf(types.ErrAlreadyExists, "valset payload %s is committed", hash)
		case !errors.Is(err, store.ErrValsetPayloadNotFound):
			return err
		}
		m.Validators = append(m.Validators, validators...)
		m.Weights = append(m.Weights, weights...)
		return store.UpdateValsetMetadata(tx, m)
	})
}

// CreateValsetPayload commits the caller's staged set to a payload validators
// can sign. The payload records the epoch of the set expected to sign it.
func (p *Program) CreateValsetPayload(
	caller types.Address,
	hash types.Hash,
	epoch uint64,
	weightThreshold uint64,
	height uint64,
) error {
	return p.update("create_valset_payload", func(tx kvdb.RwTx, cfg *types.ProgramConfig, evs *types.Events) error {
		m, err := getMetadata(tx, hash, caller)
		if err != nil {
			return err
		}
		if err := types.ValidateValidatorSet(m.Validators, m.Weights, weightThreshold); err != nil {
			return err
		}

		action := &codec.ValsetAction{
			Epoch:           epoch,
			Validators:      m.Validators,
			Weights:         m.Weights,
			WeightThreshold: weightThreshold,
			Height:          height,
		}
		computed, err := action.Hash()
		if err != nil {
			return err
		}
		if computed != hash {
			return errorsmod.Wrapf(types.ErrHashMismatch, "computed %s", computed)
		}

		vp := &types.ValsetPayload{
			Hash:            hash,
			Creator:         caller,
			Epoch:           epoch,
			Validators:      m.Validators,
			Weights:         m.Weights,
			WeightThreshold: weightThreshold,
			Height:          height,
			Tally:           types.SignatureTally{Epoch: cfg.ValidatorSet.Epoch},
		}
		err = store.CreateValsetPayload(tx, vp)
		if errors.Is(err, store.ErrDuplicateValsetPayload) {
			return errorsmod.Wrapf(types.ErrAlreadyExists, "valset payload %s", hash)
		}
		if err != nil {
			return err
		}

		evs.Emit(types.ValsetPayloadCreated{
			PayloadHash:     hash,
			Creator:         caller,
			Epoch:           epoch,
			WeightThreshold: weightThreshold,
			Height:          height,
		})
		return nil
	})
}

// PostValsetSignatures adds signatures of the active set to a proposed set.
// Signatures are only accepted while the set that was active at creation is
// still active.
func (p *Program) PostValsetSignatures(
	hash types.Hash,
	creator types.Address,
	sigs [][]byte,
	indices []uint64,
) error {
	return p.update("post_valset_signatures", func(tx kvdb.RwTx, cfg *types.ProgramConfig, evs *types.Events) error {
		active, err := consortium.NewRegistry(&cfg.ValidatorSet).Active()
		if err != nil {
			return err
		}

		vp, err := store.GetValsetPayload(tx, hash, creator)
		if err != nil {
			return notFound(err, store.ErrValsetPayloadNotFound, "valset payload %s", hash)
		}
		if vp.Tally.Epoch != active.Epoch {
			return errorsmod.Wrapf(types.ErrEpochMismatch,
				"payload signed by epoch %d, current %d", vp.Tally.Epoch, active.Epoch)
		}

		added, err := p.accumulator.AddSignatures(active, &vp.Tally, hash, sigs, indices)
		if err != nil {
			return err
		}
		if err := store.UpdateValsetPayload(tx, vp); err != nil {
			return err
		}

		evs.Emit(types.SignaturesAdded{PayloadHash: hash, Added: added, Weight: vp.Tally.Weight})
		return nil
	})
}

// SetInitialValset installs the bootstrap set from the admin's own payload.
// No signatures are required and it can happen only once.
func (p *Program) SetInitialValset(caller types.Address, hash types.Hash) error {
	return p.update("set_initial_valset", func(tx kvdb.RwTx, cfg *types.ProgramConfig, evs *types.Events) error {
		if err := cfg.RequireRole(types.RoleAdmin, caller); err != nil {
			return err
		}
		if !cfg.ValidatorSet.IsEmpty() {
			return errorsmod.Wrapf(types.ErrAlreadySet, "current epoch %d", cfg.ValidatorSet.Epoch)
		}

		next, _, err := loadProposedSet(tx, hash, caller)
		if err != nil {
			return err
		}
		if err := consortium.NewRegistry(&cfg.ValidatorSet).SetInitial(next); err != nil {
			return err
		}

		p.emitValsetUpdated(evs, &cfg.ValidatorSet)
		return nil
	})
}

// SetNextValset rotates to the caller's proposed set once the active set has
// signed it with enough weight.
func (p *Program) SetNextValset(caller types.Address, hash types.Hash) error {
	return p.update("set_next_valset", func(tx kvdb.RwTx, cfg *types.ProgramConfig, evs *types.Events) error {
		registry := consortium.NewRegistry(&cfg.ValidatorSet)
		if _, err := registry.Active(); err != nil {
			return err
		}

		next, vp, err := loadProposedSet(tx, hash, caller)
		if err != nil {
			return err
		}
		if err := registry.Rotate(next, &vp.Tally); err != nil {
			return err
		}

		p.emitValsetUpdated(evs, &cfg.ValidatorSet)
		return nil
	})
}

func (p *Program) emitValsetUpdated(evs *types.Events, set *types.ValidatorSet) {
	cp := set.Copy()
	evs.Emit(types.ValidatorSetUpdated{
		Epoch:           cp.Epoch,
		Validators:      cp.Validators,
		Weights:         cp.Weights,
		WeightThreshold: cp.WeightThreshold,
	})
	p.logger.Info("validator set updated",
		zap.Uint64("epoch", cp.Epoch),
		zap.Int("size", cp.Size()),
		zap.Uint64("weight_threshold", cp.WeightThreshold),
	)
}

// loadProposedSet rebuilds the set a creator's payload committed to. The
// staging record is not consulted, only the validators the hash was checked
// against.
func loadProposedSet(tx kvdb.RTx, hash types.Hash, creator types.Address) (*types.ValidatorSet, *types.ValsetPayload, error) {
	vp, err := store.GetValsetPayload(tx, hash, creator)
	if err != nil {
		return nil, nil, notFound(err, store.ErrValsetPayloadNotFound, "valset payload %s", hash)
	}

	return &types.ValidatorSet{
		Epoch:           vp.Epoch,
		Validators:      vp.Validators,
		Weights:         vp.Weights,
		WeightThreshold: vp.WeightThreshold,
	}, vp, nil
}

// getMetadata loads the caller's staging record, which only its creator may
// extend or commit.
func getMetadata(tx kvdb.RTx, hash types.Hash, caller types.Address) (*types.ValsetMetadata, error) {
	m, err := store.GetValsetMetadata(tx, hash, caller)
	if errors.Is(err, store.ErrValsetMetadataNotFound) {
		return nil, errorsmod.Wrapf(types.ErrNotCreator, "no metadata %s", hash)
	}
	return m, err
}
