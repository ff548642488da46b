package bitcoin_test

import (
	"math/rand"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/require"

	"github.com/lombard-finance/lbtc-core/bitcoin"
	"github.com/lombard-finance/lbtc-core/testutil"
	"github.com/lombard-finance/lbtc-core/types"
)

func FuzzClassifyScript(f *testing.F) {
	testutil.AddRandomSeedsToFuzzer(f, 10)
	f.Fuzz(func(t *testing.T, seed int64) {
		r := rand.New(rand.NewSource(seed))

		typ, err := bitcoin.ClassifyScript(testutil.GenP2WPKHScript(r))
		require.NoError(t, err)
		require.Equal(t, bitcoin.OutputP2WPKH, typ)

		typ, err = bitcoin.ClassifyScript(testutil.GenP2WSHScript(r))
		require.NoError(t, err)
		require.Equal(t, bitcoin.OutputP2WSH, typ)

		typ, err = bitcoin.ClassifyScript(testutil.GenP2TRScript(r))
		require.NoError(t, err)
		require.Equal(t, bitcoin.OutputP2TR, typ)

		// p2pkh
		p2pkh := append([]byte{0x76, 0xa9, 0x14}, testutil.GenRandomByteArray(r, 20)...)
		p2pkh = append(p2pkh, 0x88, 0xac)
		_, err = bitcoin.ClassifyScript(p2pkh)
		require.ErrorIs(t, err, types.ErrScriptPubkeyUnsupported)

		_, err = bitcoin.ClassifyScript(testutil.GenRandomByteArray(r, uint64(r.Intn(40))))
		require.ErrorIs(t, err, types.ErrScriptPubkeyUnsupported)
	})
}

func TestIsDust(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	p2tr := testutil.GenP2TRScript(r)
	p2wpkh := testutil.GenP2WPKHScript(r)

	// at 1000 sat/kvB the relay policy puts taproot dust at 330 sats
	require.True(t, bitcoin.IsDust(p2tr, 294, 1000))
	require.True(t, bitcoin.IsDust(p2tr, 329, 1000))
	require.False(t, bitcoin.IsDust(p2tr, 330, 1000))
	require.False(t, bitcoin.IsDust(p2tr, 990, 1000))

	// and p2wpkh dust at 294 sats
	require.True(t, bitcoin.IsDust(p2wpkh, 293, 1000))
	require.False(t, bitcoin.IsDust(p2wpkh, 294, 1000))
}

func TestScriptForAddress(t *testing.T) {
	// BIP173 test vector
	script, err := bitcoin.ScriptForAddress("bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4", &chaincfg.MainNetParams)
	require.NoError(t, err)
	typ, err := bitcoin.ClassifyScript(script)
	require.NoError(t, err)
	require.Equal(t, bitcoin.OutputP2WPKH, typ)

	_, err = bitcoin.ScriptForAddress("not-an-address", &chaincfg.MainNetParams)
	require.Error(t, err)
}
