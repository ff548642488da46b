package types

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	MinValidatorSetSize = 1
	MaxValidatorSetSize = 102
)

// ValidatorSet is the authorized signer roster of one epoch. Epoch 0 means
// no set has been installed yet.
type ValidatorSet struct {
	Epoch           uint64
	Validators      []ValidatorPubKey
	Weights         []uint64
	WeightThreshold uint64
}

func (vs *ValidatorSet) IsEmpty() bool {
	return vs.Epoch == 0
}

func (vs *ValidatorSet) Size() int {
	return len(vs.Validators)
}

func (vs *ValidatorSet) TotalWeight() uint64 {
	var sum uint64
	for _, w := range vs.Weights {
		sum += w
	}
	return sum
}

// Copy returns a deep copy so a snapshot is not affected by a later rotation.
func (vs *ValidatorSet) Copy() *ValidatorSet {
	cp := &ValidatorSet{
		Epoch:           vs.Epoch,
		Validators:      make([]ValidatorPubKey, len(vs.Validators)),
		Weights:         make([]uint64, len(vs.Weights)),
		WeightThreshold: vs.WeightThreshold,
	}
	copy(cp.Validators, vs.Validators)
	copy(cp.Weights, vs.Weights)
	return cp
}

// ValidateValidatorSet checks the structural invariants of a candidate set.
func ValidateValidatorSet(validators []ValidatorPubKey, weights []uint64, weightThreshold uint64) error {
	if len(validators) < MinValidatorSetSize || len(validators) > MaxValidatorSetSize {
		return errorsmod.Wrapf(ErrInvalidValidatorSetSize, "got %d validators", len(validators))
	}
	if weightThreshold == 0 {
		return ErrInvalidWeightThreshold
	}
	if len(validators) != len(weights) {
		return errorsmod.Wrapf(ErrValidatorsWeightsLength, "%d validators, %d weights", len(validators), len(weights))
	}

	seen := make(map[ValidatorPubKey]struct{}, len(validators))
	for i, v := range validators {
		if _, ok := seen[v]; ok {
			return errorsmod.Wrapf(ErrDuplicateValidator, "index %d", i)
		}
		seen[v] = struct{}{}
		if _, err := secp256k1.ParsePubKey(v[:]); err != nil {
			return errorsmod.Wrapf(ErrInvalidValidatorKey, "index %d: %v", i, err)
		}
	}

	var sum uint64
	for i, w := range weights {
		if w == 0 {
			return errorsmod.Wrapf(ErrZeroWeight, "index %d", i)
		}
		if sum+w < sum {
			return errorsmod.Wrap(ErrInvalidWeightThreshold, "sum of weights overflows")
		}
		sum += w
	}
	if sum < weightThreshold {
		return errorsmod.Wrapf(ErrWeightsBelowThreshold, "sum %d, threshold %d", sum, weightThreshold)
	}

	return nil
}
