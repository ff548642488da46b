package signer_test

import (
	"math/rand"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"

	"github.com/lombard-finance/lbtc-core/signer"
	"github.com/lombard-finance/lbtc-core/testutil"
	"github.com/lombard-finance/lbtc-core/types"
)

func FuzzSecp256k1Verifier(f *testing.F) {
	testutil.AddRandomSeedsToFuzzer(f, 10)
	f.Fuzz(func(t *testing.T, seed int64) {
		r := rand.New(rand.NewSource(seed))
		v := signer.NewSecp256k1Verifier()

		sk, pk := testutil.GenValidatorKey(r, t)
		_, otherPk := testutil.GenValidatorKey(r, t)
		digest := testutil.GenRandomHash(r)
		sig := testutil.SignHash(t, sk, digest)

		require.True(t, v.Verify(pk, digest, sig))
		require.False(t, v.Verify(otherPk, digest, sig))
		require.False(t, v.Verify(pk, testutil.GenRandomHash(r), sig))
		require.False(t, v.Verify(pk, digest, sig[:63]))
		require.False(t, v.Verify(pk, digest, testutil.GenRandomByteArray(r, 64)))
	})
}

func FuzzSchnorrVerifier(f *testing.F) {
	testutil.AddRandomSeedsToFuzzer(f, 10)
	f.Fuzz(func(t *testing.T, seed int64) {
		r := rand.New(rand.NewSource(seed))
		v := signer.NewSchnorrVerifier()

		sk, addr := testutil.GenRecipientKey(r)
		_, otherAddr := testutil.GenRecipientKey(r)
		permit := testutil.GenRandomByteArray(r, 132)
		sig := testutil.SignPermit(t, sk, permit)
		digest := types.Hash(chainhash.HashH(permit))

		require.True(t, v.VerifyPermit(addr, digest, sig))
		require.False(t, v.VerifyPermit(otherAddr, digest, sig))
		require.False(t, v.VerifyPermit(addr, testutil.GenRandomHash(r), sig))
		require.False(t, v.VerifyPermit(addr, digest, append(sig, 0x00)))
	})
}
