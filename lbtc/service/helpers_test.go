package service_test

import (
	"crypto/ecdsa"
	"math/rand"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/lightningnetwork/lnd/kvdb"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lombard-finance/lbtc-core/codec"
	"github.com/lombard-finance/lbtc-core/lbtc/service"
	"github.com/lombard-finance/lbtc-core/lbtc/store"
	"github.com/lombard-finance/lbtc-core/ledger"
	"github.com/lombard-finance/lbtc-core/testutil"
	"github.com/lombard-finance/lbtc-core/types"
)

const (
	testBurnCommission = uint64(10)
	testDustFeeRate    = uint64(1000)
	testMintFee        = uint64(10)
)

type harness struct {
	t *testing.T
	r *rand.Rand

	db      kvdb.Backend
	program *service.Program
	ledger  *ledger.Ledger
	events  *testutil.EventRecorder
	clock   *clock.Mock

	admin    types.Address
	operator types.Address
	treasury types.Address

	set  *types.ValidatorSet
	keys []*ecdsa.PrivateKey
}

func newHarness(t *testing.T, r *rand.Rand, opts ...service.Option) *harness {
	return newHarnessOnDB(t, r, testutil.OpenTestBackend(t), testutil.GenRandomAddress(r), opts...)
}

// newHarnessOnDB starts an initialized program without a validator set.
func newHarnessOnDB(
	t *testing.T,
	r *rand.Rand,
	db kvdb.Backend,
	programID types.Address,
	opts ...service.Option,
) *harness {
	s, err := store.NewLBTCStore(db)
	require.NoError(t, err)
	l, err := ledger.NewLedger(db)
	require.NoError(t, err)

	events := testutil.NewEventRecorder()
	clk := clock.NewMock()
	clk.Set(time.Unix(1_700_000_000, 0))

	opts = append([]service.Option{
		service.WithClock(clk),
		service.WithEventSinks(events),
	}, opts...)
	p := service.NewProgram(programID, codec.DevnetChainID, s, l, zap.NewNop(), opts...)

	h := &harness{
		t:        t,
		r:        r,
		db:       db,
		program:  p,
		ledger:   l,
		events:   events,
		clock:    clk,
		admin:    testutil.GenRandomAddress(r),
		operator: testutil.GenRandomAddress(r),
		treasury: testutil.GenRandomAddress(r),
	}
	err = p.Initialize(h.admin, types.InitParams{
		Operator:       h.operator,
		Treasury:       h.treasury,
		BurnCommission: testBurnCommission,
		DustFeeRate:    testDustFeeRate,
		MintFee:        testMintFee,
	})
	require.NoError(t, err)

	return h
}

// bootstrap installs a random set of n validators at epoch 1.
func (h *harness) bootstrap(n int) {
	set, keys := testutil.GenValidatorSet(h.r, h.t, n, 1)
	hash := h.proposeValset(h.admin, set, 100)
	require.NoError(h.t, h.program.SetInitialValset(h.admin, hash))
	h.set, h.keys = set, keys
}

// proposeValset stages set under creator, posting the metadata in two chunks.
func (h *harness) proposeValset(creator types.Address, set *types.ValidatorSet, height uint64) types.Hash {
	action := &codec.ValsetAction{
		Epoch:           set.Epoch,
		Validators:      set.Validators,
		Weights:         set.Weights,
		WeightThreshold: set.WeightThreshold,
		Height:          height,
	}
	hash, err := action.Hash()
	require.NoError(h.t, err)

	require.NoError(h.t, h.program.CreateMetadata(creator, hash))
	mid := len(set.Validators) / 2
	require.NoError(h.t, h.program.PostMetadata(creator, hash, set.Validators[:mid], set.Weights[:mid]))
	require.NoError(h.t, h.program.PostMetadata(creator, hash, set.Validators[mid:], set.Weights[mid:]))
	require.NoError(h.t, h.program.CreateValsetPayload(creator, hash, set.Epoch, set.WeightThreshold, height))

	return hash
}

// rotate moves the program to a fresh set of n validators at the next epoch.
func (h *harness) rotate(n int) {
	creator := testutil.GenRandomAddress(h.r)
	next, keys := testutil.GenValidatorSet(h.r, h.t, n, h.set.Epoch+1)
	hash := h.proposeValset(creator, next, 200)

	sigs, indices := testutil.SignAll(h.t, h.keys, hash)
	require.NoError(h.t, h.program.PostValsetSignatures(hash, creator, sigs, indices))
	require.NoError(h.t, h.program.SetNextValset(creator, hash))
	h.set, h.keys = next, keys
}

func (h *harness) createMint(recipient types.Address, amount uint64) (types.Hash, *codec.MintAction) {
	action := testutil.GenMintAction(h.r, codec.DevnetChainID, recipient, amount)
	payload := action.Encode()
	hash := codec.PayloadHash(payload)
	require.NoError(h.t, h.program.CreateMintPayload(hash, payload))
	return hash, action
}

func (h *harness) signMint(hash types.Hash) {
	sigs, indices := testutil.SignAll(h.t, h.keys, hash)
	require.NoError(h.t, h.program.PostMintSignatures(hash, sigs, indices))
}

// fund mints amount to addr through a dedicated minter.
func (h *harness) fund(addr types.Address, amount uint64) {
	minter := testutil.GenRandomAddress(h.r)
	require.NoError(h.t, h.program.AddMinter(h.admin, minter))
	require.NoError(h.t, h.program.Mint(minter, addr, amount))
}

func (h *harness) balance(addr types.Address) uint64 {
	bal, err := h.ledger.Balance(addr)
	require.NoError(h.t, err)
	return bal
}

func (h *harness) config() *types.ProgramConfig {
	cfg, err := h.program.Config()
	require.NoError(h.t, err)
	return cfg
}
