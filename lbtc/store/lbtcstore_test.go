package store_test

import (
	"math/rand"
	"testing"

	"github.com/lightningnetwork/lnd/kvdb"
	"github.com/stretchr/testify/require"

	"github.com/lombard-finance/lbtc-core/lbtc/store"
	"github.com/lombard-finance/lbtc-core/testutil"
	"github.com/lombard-finance/lbtc-core/types"
)

// FuzzLBTCStore tests saving and loading program records
func FuzzLBTCStore(f *testing.F) {
	testutil.AddRandomSeedsToFuzzer(f, 10)
	f.Fuzz(func(t *testing.T, seed int64) {
		r := rand.New(rand.NewSource(seed))

		s, err := store.NewLBTCStore(testutil.OpenTestBackend(t))
		require.NoError(t, err)

		_, err = s.GetConfig()
		require.ErrorIs(t, err, store.ErrConfigNotFound)

		set, _ := testutil.GenValidatorSet(r, t, r.Intn(10)+1, uint64(r.Int63n(100)+1))
		cfg := &types.ProgramConfig{
			ProgramID:      testutil.GenRandomAddress(r),
			ChainID:        testutil.GenRandomHash(r),
			Admin:          testutil.GenRandomAddress(r),
			Claimers:       []types.Address{testutil.GenRandomAddress(r)},
			BurnCommission: uint64(r.Int63n(100000)),
			Paused:         r.Intn(2) == 0,
			UnstakeCounter: uint64(r.Int63()),
			ValidatorSet:   *set,
		}
		hash := testutil.GenRandomHash(r)
		mp := &types.MintPayload{
			Hash:    hash,
			Payload: testutil.GenRandomByteArray(r, 164),
			Tally:   types.SignatureTally{Epoch: set.Epoch, Signed: []uint64{r.Uint64()}, Weight: r.Uint64()},
		}
		info := &types.UnstakeInfo{
			Index:        cfg.UnstakeCounter,
			From:         testutil.GenRandomAddress(r),
			ScriptPubkey: testutil.GenP2TRScript(r),
			Amount:       uint64(r.Int63()),
		}

		err = s.Update(func(tx kvdb.RwTx) error {
			if err := store.PutConfig(tx, cfg); err != nil {
				return err
			}
			if err := store.CreateMintPayload(tx, mp); err != nil {
				return err
			}
			return store.AppendUnstakeInfo(tx, info)
		})
		require.NoError(t, err)

		gotCfg, err := s.GetConfig()
		require.NoError(t, err)
		require.Equal(t, cfg.Admin, gotCfg.Admin)
		require.Equal(t, cfg.Claimers, gotCfg.Claimers)
		require.Equal(t, cfg.Paused, gotCfg.Paused)
		require.Equal(t, cfg.UnstakeCounter, gotCfg.UnstakeCounter)
		require.Equal(t, cfg.ValidatorSet, gotCfg.ValidatorSet)

		gotMp, err := s.GetMintPayload(hash)
		require.NoError(t, err)
		require.Equal(t, mp, gotMp)

		gotInfo, err := s.GetUnstakeInfo(info.Index)
		require.NoError(t, err)
		require.Equal(t, info, gotInfo)

		err = s.Update(func(tx kvdb.RwTx) error {
			return store.CreateMintPayload(tx, mp)
		})
		require.ErrorIs(t, err, store.ErrDuplicateMintPayload)

		err = s.Update(func(tx kvdb.RwTx) error {
			return store.AppendUnstakeInfo(tx, info)
		})
		require.ErrorIs(t, err, store.ErrDuplicateUnstakeInfo)

		_, err = s.GetMintPayload(testutil.GenRandomHash(r))
		require.ErrorIs(t, err, store.ErrMintPayloadNotFound)
	})
}

func TestValsetRecordsKeyedByCreator(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	s, err := store.NewLBTCStore(testutil.OpenTestBackend(t))
	require.NoError(t, err)

	hash := testutil.GenRandomHash(r)
	alice := testutil.GenRandomAddress(r)
	bob := testutil.GenRandomAddress(r)

	err = s.Update(func(tx kvdb.RwTx) error {
		for _, creator := range []types.Address{alice, bob} {
			if err := store.CreateValsetMetadata(tx, &types.ValsetMetadata{Hash: hash, Creator: creator}); err != nil {
				return err
			}
			if err := store.CreateValsetPayload(tx, &types.ValsetPayload{Hash: hash, Creator: creator, Epoch: 2}); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	err = s.Update(func(tx kvdb.RwTx) error {
		return store.CreateValsetPayload(tx, &types.ValsetPayload{Hash: hash, Creator: alice})
	})
	require.ErrorIs(t, err, store.ErrDuplicateValsetPayload)

	err = s.Update(func(tx kvdb.RwTx) error {
		return store.UpdateValsetMetadata(tx, &types.ValsetMetadata{Hash: hash, Creator: testutil.GenRandomAddress(r)})
	})
	require.ErrorIs(t, err, store.ErrValsetMetadataNotFound)

	err = s.View(func(tx kvdb.RTx) error {
		vp, err := store.GetValsetPayload(tx, hash, bob)
		if err != nil {
			return err
		}
		require.Equal(t, uint64(2), vp.Epoch)
		return nil
	})
	require.NoError(t, err)
}
