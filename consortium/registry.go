package consortium

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/lombard-finance/lbtc-core/types"
)

// Registry guards the active validator set. It mutates the set it wraps, so
// callers hand in the set owned by the config they are about to persist.
type Registry struct {
	set *types.ValidatorSet
}

func NewRegistry(set *types.ValidatorSet) *Registry {
	return &Registry{set: set}
}

func (r *Registry) Epoch() uint64 {
	return r.set.Epoch
}

// Active returns the installed set or ErrNoValidatorSet before bootstrap.
func (r *Registry) Active() (*types.ValidatorSet, error) {
	if r.set.IsEmpty() {
		return nil, types.ErrNoValidatorSet
	}
	return r.set, nil
}

// SetInitial installs the bootstrap set. It can succeed only once.
func (r *Registry) SetInitial(next *types.ValidatorSet) error {
	if !r.set.IsEmpty() {
		return errorsmod.Wrapf(types.ErrAlreadySet, "current epoch %d", r.set.Epoch)
	}
	if next.Epoch == 0 {
		return errorsmod.Wrap(types.ErrInvalidEpoch, "initial epoch must not be zero")
	}
	if err := types.ValidateValidatorSet(next.Validators, next.Weights, next.WeightThreshold); err != nil {
		return err
	}

	r.replace(next)
	return nil
}

// Rotate replaces the active set with next once tally, collected against the
// active set, reaches its threshold. Epochs strictly increase.
func (r *Registry) Rotate(next *types.ValidatorSet, tally *types.SignatureTally) error {
	if r.set.IsEmpty() {
		return types.ErrNoValidatorSet
	}
	if next.Epoch <= r.set.Epoch {
		return errorsmod.Wrapf(types.ErrInvalidEpoch, "next epoch %d, current %d", next.Epoch, r.set.Epoch)
	}
	if tally.Epoch != r.set.Epoch {
		return errorsmod.Wrapf(types.ErrEpochMismatch, "signed by epoch %d, current %d", tally.Epoch, r.set.Epoch)
	}
	if !HasQuorum(tally, r.set) {
		return errorsmod.Wrapf(types.ErrNotEnoughSignatures, "weight %d, threshold %d", tally.Weight, r.set.WeightThreshold)
	}
	if err := types.ValidateValidatorSet(next.Validators, next.Weights, next.WeightThreshold); err != nil {
		return err
	}

	r.replace(next)
	return nil
}

func (r *Registry) replace(next *types.ValidatorSet) {
	*r.set = *next.Copy()
}
