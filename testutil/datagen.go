package testutil

import (
	"crypto/ecdsa"
	"encoding/hex"
	"math/rand"
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/lombard-finance/lbtc-core/codec"
	"github.com/lombard-finance/lbtc-core/types"
)

func GenRandomByteArray(r *rand.Rand, length uint64) []byte {
	newHeaderBytes := make([]byte, length)
	r.Read(newHeaderBytes)
	return newHeaderBytes
}

func GenRandomHexStr(r *rand.Rand, length uint64) string {
	randBytes := GenRandomByteArray(r, length)
	return hex.EncodeToString(randBytes)
}

func AddRandomSeedsToFuzzer(f *testing.F, num uint) {
	// Seed based on the current time
	r := rand.New(rand.NewSource(time.Now().Unix()))
	var idx uint
	for idx = 0; idx < num; idx++ {
		f.Add(r.Int63())
	}
}

func GenRandomAddress(r *rand.Rand) types.Address {
	var addr types.Address
	copy(addr[:], GenRandomByteArray(r, types.AddressSize))
	return addr
}

func GenRandomHash(r *rand.Rand) types.Hash {
	var h types.Hash
	copy(h[:], GenRandomByteArray(r, types.HashSize))
	return h
}

// GenValidatorKey generates a consortium validator key pair.
func GenValidatorKey(r *rand.Rand, t *testing.T) (*ecdsa.PrivateKey, types.ValidatorPubKey) {
	var (
		sk  *ecdsa.PrivateKey
		err error
	)
	// retry on the negligible chance of an out-of-range scalar
	for i := 0; i < 10; i++ {
		sk, err = crypto.ToECDSA(GenRandomByteArray(r, 32))
		if err == nil {
			break
		}
	}
	require.NoError(t, err)

	var pk types.ValidatorPubKey
	copy(pk[:], crypto.FromECDSAPub(&sk.PublicKey))
	return sk, pk
}

// GenValidatorSet generates a set of n validators with weights in [1, 10]
// and a two-thirds threshold.
func GenValidatorSet(r *rand.Rand, t *testing.T, n int, epoch uint64) (*types.ValidatorSet, []*ecdsa.PrivateKey) {
	set := &types.ValidatorSet{Epoch: epoch}
	keys := make([]*ecdsa.PrivateKey, 0, n)
	var total uint64
	for i := 0; i < n; i++ {
		sk, pk := GenValidatorKey(r, t)
		w := uint64(r.Intn(10) + 1)
		keys = append(keys, sk)
		set.Validators = append(set.Validators, pk)
		set.Weights = append(set.Weights, w)
		total += w
	}
	set.WeightThreshold = total*2/3 + 1
	if set.WeightThreshold > total {
		set.WeightThreshold = total
	}
	return set, keys
}

// SignHash produces a 64-byte validator signature over digest.
func SignHash(t *testing.T, sk *ecdsa.PrivateKey, digest types.Hash) []byte {
	sig, err := crypto.Sign(digest[:], sk)
	require.NoError(t, err)
	return sig[:64]
}

// SignAll signs digest with every key and returns signatures with their
// validator indices.
func SignAll(t *testing.T, keys []*ecdsa.PrivateKey, digest types.Hash) ([][]byte, []uint64) {
	sigs := make([][]byte, len(keys))
	indices := make([]uint64, len(keys))
	for i, k := range keys {
		sigs[i] = SignHash(t, k, digest)
		indices[i] = uint64(i)
	}
	return sigs, indices
}

// GenRecipientKey generates a BIP340 key whose x-only public key serves as a
// recipient address.
func GenRecipientKey(r *rand.Rand) (*btcec.PrivateKey, types.Address) {
	sk, pk := btcec.PrivKeyFromBytes(GenRandomByteArray(r, 32))
	var addr types.Address
	copy(addr[:], schnorr.SerializePubKey(pk))
	return sk, addr
}

// SignPermit signs the digest of an encoded fee permit.
func SignPermit(t *testing.T, sk *btcec.PrivateKey, permit []byte) []byte {
	sig, err := schnorr.Sign(sk, chainhash.HashB(permit))
	require.NoError(t, err)
	return sig.Serialize()
}

// GenMintAction builds a deposit attestation towards recipient.
func GenMintAction(r *rand.Rand, chainID types.Hash, recipient types.Address, amount uint64) *codec.MintAction {
	var txid chainhash.Hash
	copy(txid[:], GenRandomByteArray(r, chainhash.HashSize))
	return &codec.MintAction{
		Action:    codec.DepositBtcAction,
		ChainID:   chainID,
		Recipient: recipient,
		Amount:    amount,
		TxID:      txid,
		Vout:      r.Uint32(),
	}
}

// GenFeePermit builds a fee permit valid for the given deployment.
func GenFeePermit(chainID types.Hash, programID types.Address, maxFee uint64, expiry time.Time) *codec.FeePermit {
	return &codec.FeePermit{
		Action:    codec.FeeApprovalAction,
		ChainID:   chainID,
		ProgramID: programID,
		MaxFee:    maxFee,
		Expiry:    uint64(expiry.Unix()),
	}
}

func GenP2WPKHScript(r *rand.Rand) []byte {
	return append([]byte{0x00, 0x14}, GenRandomByteArray(r, 20)...)
}

func GenP2WSHScript(r *rand.Rand) []byte {
	return append([]byte{0x00, 0x20}, GenRandomByteArray(r, 32)...)
}

func GenP2TRScript(r *rand.Rand) []byte {
	return append([]byte{0x51, 0x20}, GenRandomByteArray(r, 32)...)
}
