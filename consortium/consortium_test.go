package consortium_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lombard-finance/lbtc-core/consortium"
	"github.com/lombard-finance/lbtc-core/signer"
	"github.com/lombard-finance/lbtc-core/testutil"
	"github.com/lombard-finance/lbtc-core/types"
)

// FuzzAccumulatorOrderAndIdempotence checks that the tally only depends on
// the set of distinct valid signers.
func FuzzAccumulatorOrderAndIdempotence(f *testing.F) {
	testutil.AddRandomSeedsToFuzzer(f, 10)
	f.Fuzz(func(t *testing.T, seed int64) {
		r := rand.New(rand.NewSource(seed))
		acc := consortium.NewAccumulator(signer.NewSecp256k1Verifier())

		n := r.Intn(20) + 1
		set, keys := testutil.GenValidatorSet(r, t, n, 1)
		digest := testutil.GenRandomHash(r)

		var (
			sigs     [][]byte
			indices  []uint64
			expected uint64
		)
		for i, k := range keys {
			switch r.Intn(3) {
			case 0:
				// valid, submitted twice
				sig := testutil.SignHash(t, k, digest)
				sigs = append(sigs, sig, sig)
				indices = append(indices, uint64(i), uint64(i))
				expected += set.Weights[i]
			case 1:
				// garbage
				sigs = append(sigs, testutil.GenRandomByteArray(r, 64))
				indices = append(indices, uint64(i))
			default:
				// absent
			}
		}

		var forward types.SignatureTally
		_, err := acc.AddSignatures(set, &forward, digest, sigs, indices)
		require.NoError(t, err)
		require.Equal(t, expected, forward.Weight)

		// applying the same batch again changes nothing
		added, err := acc.AddSignatures(set, &forward, digest, sigs, indices)
		require.NoError(t, err)
		require.Zero(t, added)
		require.Equal(t, expected, forward.Weight)

		// shuffled order yields the same tally
		r.Shuffle(len(sigs), func(i, j int) {
			sigs[i], sigs[j] = sigs[j], sigs[i]
			indices[i], indices[j] = indices[j], indices[i]
		})
		var shuffled types.SignatureTally
		_, err = acc.AddSignatures(set, &shuffled, digest, sigs, indices)
		require.NoError(t, err)
		require.Equal(t, forward.Weight, shuffled.Weight)
		require.Equal(t,
			consortium.BitmapFromWords(forward.Signed).Indices(),
			consortium.BitmapFromWords(shuffled.Signed).Indices())

		require.Equal(t, expected >= set.WeightThreshold, consortium.HasQuorum(&forward, set))
	})
}

func TestAccumulatorMalformedBatch(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	acc := consortium.NewAccumulator(signer.NewSecp256k1Verifier())
	set, keys := testutil.GenValidatorSet(r, t, 3, 1)
	digest := testutil.GenRandomHash(r)
	valid := testutil.SignHash(t, keys[0], digest)

	var tally types.SignatureTally
	_, err := acc.AddSignatures(set, &tally, digest, [][]byte{valid}, []uint64{0, 1})
	require.ErrorIs(t, err, types.ErrLengthMismatch)

	// the valid first pair must not be applied when a later index is unknown
	_, err = acc.AddSignatures(set, &tally, digest, [][]byte{valid, valid}, []uint64{0, 3})
	require.ErrorIs(t, err, types.ErrUnknownValidator)
	require.Zero(t, tally.Weight)
	require.Empty(t, consortium.BitmapFromWords(tally.Signed).Indices())
}

// TestOneValidOneInvalid covers validators {V1, V2} with weights {1, 1} and
// threshold 1 where only V1 signs correctly.
func TestOneValidOneInvalid(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	acc := consortium.NewAccumulator(signer.NewSecp256k1Verifier())

	sk1, pk1 := testutil.GenValidatorKey(r, t)
	_, pk2 := testutil.GenValidatorKey(r, t)
	set := &types.ValidatorSet{
		Epoch:           1,
		Validators:      []types.ValidatorPubKey{pk1, pk2},
		Weights:         []uint64{1, 1},
		WeightThreshold: 1,
	}
	digest := testutil.GenRandomHash(r)

	var tally types.SignatureTally
	added, err := acc.AddSignatures(set, &tally, digest,
		[][]byte{testutil.SignHash(t, sk1, digest), testutil.SignHash(t, sk1, digest)},
		[]uint64{0, 1})
	require.NoError(t, err)
	require.Equal(t, 1, added)
	require.Equal(t, uint64(1), tally.Weight)
	require.True(t, consortium.HasQuorum(&tally, set))
}

func FuzzRegistry(f *testing.F) {
	testutil.AddRandomSeedsToFuzzer(f, 10)
	f.Fuzz(func(t *testing.T, seed int64) {
		r := rand.New(rand.NewSource(seed))
		acc := consortium.NewAccumulator(signer.NewSecp256k1Verifier())

		var active types.ValidatorSet
		reg := consortium.NewRegistry(&active)
		_, err := reg.Active()
		require.ErrorIs(t, err, types.ErrNoValidatorSet)

		first, keys := testutil.GenValidatorSet(r, t, r.Intn(5)+1, uint64(r.Intn(100)+1))
		next, _ := testutil.GenValidatorSet(r, t, r.Intn(5)+1, 0)

		err = reg.Rotate(first, &types.SignatureTally{})
		require.ErrorIs(t, err, types.ErrNoValidatorSet)

		zeroEpoch := first.Copy()
		zeroEpoch.Epoch = 0
		require.ErrorIs(t, reg.SetInitial(zeroEpoch), types.ErrInvalidEpoch)

		require.NoError(t, reg.SetInitial(first))
		require.Equal(t, first.Epoch, reg.Epoch())
		require.ErrorIs(t, reg.SetInitial(first), types.ErrAlreadySet)

		digest := testutil.GenRandomHash(r)
		var tally types.SignatureTally
		consortium.ResetTally(&tally, first.Epoch)

		// epoch must strictly increase
		next.Epoch = first.Epoch
		require.ErrorIs(t, reg.Rotate(next, &tally), types.ErrInvalidEpoch)
		next.Epoch = first.Epoch + uint64(r.Intn(3)+1)

		require.ErrorIs(t, reg.Rotate(next, &tally), types.ErrNotEnoughSignatures)

		sigs, indices := testutil.SignAll(t, keys, digest)
		_, err = acc.AddSignatures(first, &tally, digest, sigs, indices)
		require.NoError(t, err)

		stale := tally
		stale.Epoch = first.Epoch - 1
		require.ErrorIs(t, reg.Rotate(next, &stale), types.ErrEpochMismatch)

		require.NoError(t, reg.Rotate(next, &tally))
		require.Equal(t, next.Epoch, reg.Epoch())
		current, err := reg.Active()
		require.NoError(t, err)
		require.Equal(t, next.Validators, current.Validators)
		require.Greater(t, current.Epoch, first.Epoch)
	})
}

func TestValidateValidatorSet(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	set, _ := testutil.GenValidatorSet(r, t, 4, 1)

	require.NoError(t, types.ValidateValidatorSet(set.Validators, set.Weights, set.WeightThreshold))
	require.ErrorIs(t, types.ValidateValidatorSet(nil, nil, 1), types.ErrInvalidValidatorSetSize)
	require.ErrorIs(t, types.ValidateValidatorSet(set.Validators, set.Weights, 0), types.ErrInvalidWeightThreshold)
	require.ErrorIs(t, types.ValidateValidatorSet(set.Validators, set.Weights[:3], 1), types.ErrValidatorsWeightsLength)
	require.ErrorIs(t, types.ValidateValidatorSet(set.Validators, []uint64{1, 0, 1, 1}, 1), types.ErrZeroWeight)
	require.ErrorIs(t, types.ValidateValidatorSet(set.Validators, []uint64{1, 1, 1, 1}, 5), types.ErrWeightsBelowThreshold)

	dup := append([]types.ValidatorPubKey{}, set.Validators...)
	dup[1] = dup[0]
	require.ErrorIs(t, types.ValidateValidatorSet(dup, set.Weights, 1), types.ErrDuplicateValidator)

	bad := append([]types.ValidatorPubKey{}, set.Validators...)
	bad[2] = types.ValidatorPubKey{0x04}
	require.ErrorIs(t, types.ValidateValidatorSet(bad, set.Weights, 1), types.ErrInvalidValidatorKey)

	tooMany := make([]types.ValidatorPubKey, types.MaxValidatorSetSize+1)
	require.ErrorIs(t, types.ValidateValidatorSet(tooMany, make([]uint64, len(tooMany)), 1), types.ErrInvalidValidatorSetSize)
}
