package consortium

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/lombard-finance/lbtc-core/signer"
	"github.com/lombard-finance/lbtc-core/types"
)

// Accumulator adds validator signatures to a weighted tally.
type Accumulator struct {
	verifier signer.Verifier
}

func NewAccumulator(v signer.Verifier) *Accumulator {
	return &Accumulator{verifier: v}
}

// AddSignatures verifies each (signature, index) pair against set and adds
// the weight of every newly signing validator to tally. Invalid signatures
// and already recorded indices are skipped. A malformed batch fails as a
// whole and leaves tally untouched. It returns how many validators were added.
func (a *Accumulator) AddSignatures(
	set *types.ValidatorSet,
	tally *types.SignatureTally,
	digest types.Hash,
	sigs [][]byte,
	indices []uint64,
) (int, error) {
	if len(sigs) != len(indices) {
		return 0, errorsmod.Wrapf(types.ErrLengthMismatch, "%d signatures, %d indices", len(sigs), len(indices))
	}
	for _, idx := range indices {
		if idx >= uint64(len(set.Validators)) {
			return 0, errorsmod.Wrapf(types.ErrUnknownValidator, "index %d, set size %d", idx, len(set.Validators))
		}
	}

	bm := BitmapFromWords(tally.Signed)
	weight := tally.Weight
	added := 0
	for i, idx := range indices {
		pos := uint(idx)
		if bm.Test(pos) {
			continue
		}
		if !a.verifier.Verify(set.Validators[idx], digest, sigs[i]) {
			continue
		}
		bm.Set(pos)
		weight += set.Weights[idx]
		added++
	}

	tally.Signed = bm.Words()
	tally.Weight = weight
	return added, nil
}

// HasQuorum reports whether tally reaches the threshold of set.
func HasQuorum(tally *types.SignatureTally, set *types.ValidatorSet) bool {
	return tally.Weight >= set.WeightThreshold
}

// ResetTally clears tally and pins it to epoch.
func ResetTally(tally *types.SignatureTally, epoch uint64) {
	tally.Epoch = epoch
	tally.Signed = nil
	tally.Weight = 0
}
