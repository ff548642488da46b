package service_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lombard-finance/lbtc-core/bascule/service"
	"github.com/lombard-finance/lbtc-core/bascule/store"
	"github.com/lombard-finance/lbtc-core/codec"
	"github.com/lombard-finance/lbtc-core/testutil"
	"github.com/lombard-finance/lbtc-core/types"
)

type deposit struct {
	id        types.Hash
	recipient types.Address
	amount    uint64
	txID      types.Hash
	vout      uint32
}

func genDeposit(r *rand.Rand, amount uint64) deposit {
	d := deposit{
		recipient: testutil.GenRandomAddress(r),
		amount:    amount,
		txID:      testutil.GenRandomHash(r),
		vout:      r.Uint32(),
	}
	d.id = codec.DepositID(d.recipient, d.amount, d.txID, d.vout)
	return d
}

type basculeHarness struct {
	b         *service.Bascule
	events    *testutil.EventRecorder
	admin     types.Address
	reporter  types.Address
	validator types.Address
}

func newBasculeHarness(t *testing.T, r *rand.Rand) *basculeHarness {
	s, err := store.NewBasculeStore(testutil.OpenTestBackend(t))
	require.NoError(t, err)

	h := &basculeHarness{
		events:    testutil.NewEventRecorder(),
		admin:     testutil.GenRandomAddress(r),
		reporter:  testutil.GenRandomAddress(r),
		validator: testutil.GenRandomAddress(r),
	}
	h.b = service.NewBascule(s, zap.NewNop(), h.events)

	require.NoError(t, h.b.Initialize(h.admin))
	require.NoError(t, h.b.GrantReporter(h.admin, h.reporter))
	require.NoError(t, h.b.AddWithdrawalValidator(h.admin, h.validator))
	return h
}

func (h *basculeHarness) validate(d deposit) error {
	return h.b.ValidateWithdrawal(h.validator, d.id, d.recipient, d.amount, d.txID, d.vout)
}

// FuzzDepositLifecycle drives deposits through report and withdrawal under a
// random validate threshold.
func FuzzDepositLifecycle(f *testing.F) {
	testutil.AddRandomSeedsToFuzzer(f, 10)
	f.Fuzz(func(t *testing.T, seed int64) {
		r := rand.New(rand.NewSource(seed))
		h := newBasculeHarness(t, r)

		threshold := uint64(r.Int63n(1_000_000) + 1)
		require.NoError(t, h.b.UpdateValidateThreshold(h.admin, threshold))

		// reported deposits always pass, once
		reported := genDeposit(r, uint64(r.Int63n(10_000_000)))
		require.NoError(t, h.b.ReportDeposit(h.reporter, reported.id))
		require.NoError(t, h.b.ReportDeposit(h.reporter, reported.id))
		already := h.events.Named("AlreadyReported")
		require.Len(t, already, 1)
		require.Equal(t, types.DepositStateReported, already[0].(types.AlreadyReported).Status)

		require.NoError(t, h.validate(reported))
		require.Len(t, h.events.Named("WithdrawalValidated"), 1)
		err := h.validate(reported)
		require.ErrorIs(t, err, types.ErrAlreadyWithdrawn)

		st, err := h.b.Deposit(reported.id)
		require.NoError(t, err)
		require.Equal(t, types.DepositStateWithdrawn, st.State)

		// reporting a withdrawn deposit changes nothing
		require.NoError(t, h.b.ReportDeposit(h.reporter, reported.id))
		already = h.events.Named("AlreadyReported")
		require.Equal(t, types.DepositStateWithdrawn, already[len(already)-1].(types.AlreadyReported).Status)

		// unreported deposits below the threshold pass without validation
		small := genDeposit(r, uint64(r.Int63n(int64(threshold))))
		require.NoError(t, h.validate(small))
		require.Len(t, h.events.Named("WithdrawalNotValidated"), 1)

		// and fail from the threshold up
		large := genDeposit(r, threshold+uint64(r.Int63n(1000)))
		err = h.validate(large)
		require.ErrorIs(t, err, types.ErrWithdrawalFailedValidation)
		st, err = h.b.Deposit(large.id)
		require.NoError(t, err)
		require.Equal(t, types.DepositStateUnreported, st.State)
	})
}

func TestValidateWithdrawalChecks(t *testing.T) {
	r := rand.New(rand.NewSource(51))
	h := newBasculeHarness(t, r)
	d := genDeposit(r, 100)

	err := h.b.ValidateWithdrawal(testutil.GenRandomAddress(r), d.id, d.recipient, d.amount, d.txID, d.vout)
	require.ErrorIs(t, err, types.ErrBasculeNotValidator)

	err = h.b.ValidateWithdrawal(h.validator, d.id, d.recipient, d.amount+1, d.txID, d.vout)
	require.ErrorIs(t, err, types.ErrInvalidDepositID)

	// a zero threshold requires every withdrawal to be reported
	err = h.validate(d)
	require.ErrorIs(t, err, types.ErrWithdrawalFailedValidation)
	require.Equal(t, types.CategoryValidation, types.CategoryOf(err))

	err = h.b.ReportDeposit(h.validator, d.id)
	require.ErrorIs(t, err, types.ErrBasculeNotReporter)
}

func TestBasculePause(t *testing.T) {
	r := rand.New(rand.NewSource(52))
	h := newBasculeHarness(t, r)
	d := genDeposit(r, 100)

	// the admin starts out as pauser
	require.NoError(t, h.b.Pause(h.admin))

	err := h.b.ReportDeposit(h.reporter, d.id)
	require.ErrorIs(t, err, types.ErrBasculePaused)
	err = h.validate(d)
	require.ErrorIs(t, err, types.ErrBasculePaused)
	err = h.b.UpdateValidateThreshold(h.admin, 5)
	require.ErrorIs(t, err, types.ErrBasculePaused)

	pauser := testutil.GenRandomAddress(r)
	require.NoError(t, h.b.GrantPauser(h.admin, pauser))
	err = h.b.Unpause(h.admin)
	require.ErrorIs(t, err, types.ErrBasculeNotPauser)
	require.NoError(t, h.b.Unpause(pauser))

	require.NoError(t, h.b.ReportDeposit(h.reporter, d.id))
	require.NoError(t, h.validate(d))

	changes := h.events.Named("BasculePauseChanged")
	require.Len(t, changes, 2)
}

func TestBasculeAdmin(t *testing.T) {
	r := rand.New(rand.NewSource(53))
	h := newBasculeHarness(t, r)

	err := h.b.Initialize(h.admin)
	require.ErrorIs(t, err, types.ErrBasculeAlreadyInitialized)

	stranger := testutil.GenRandomAddress(r)
	err = h.b.GrantReporter(stranger, stranger)
	require.ErrorIs(t, err, types.ErrBasculeNotAdmin)

	err = h.b.AddWithdrawalValidator(h.admin, h.validator)
	require.ErrorIs(t, err, types.ErrAlreadyExists)
	for i := 1; i < types.MaxWithdrawalValidators; i++ {
		require.NoError(t, h.b.AddWithdrawalValidator(h.admin, testutil.GenRandomAddress(r)))
	}
	err = h.b.AddWithdrawalValidator(h.admin, testutil.GenRandomAddress(r))
	require.ErrorIs(t, err, types.ErrMaxValidators)

	require.NoError(t, h.b.RemoveWithdrawalValidator(h.admin, h.validator))
	err = h.b.RemoveWithdrawalValidator(h.admin, h.validator)
	require.ErrorIs(t, err, types.ErrNotFound)
	err = h.validate(genDeposit(r, 0))
	require.ErrorIs(t, err, types.ErrBasculeNotValidator)

	require.NoError(t, h.b.UpdateValidateThreshold(h.admin, 10))
	require.NoError(t, h.b.UpdateValidateThreshold(h.admin, 20))
	updates := h.events.Named("UpdateValidateThreshold")
	require.Len(t, updates, 2)
	require.Equal(t, types.UpdateValidateThreshold{OldThreshold: 10, NewThreshold: 20}, updates[1])

	next := testutil.GenRandomAddress(r)
	require.NoError(t, h.b.TransferAdmin(h.admin, next))
	err = h.b.AcceptAdmin(stranger)
	require.ErrorIs(t, err, types.ErrBasculeNotPendingAdmin)
	require.NoError(t, h.b.AcceptAdmin(next))

	data, err := h.b.Data()
	require.NoError(t, err)
	require.Equal(t, next, data.Admin)
	require.True(t, data.PendingAdmin.IsZero())
	require.Equal(t, uint64(20), data.ValidateThreshold)

	err = h.b.UpdateValidateThreshold(h.admin, 30)
	require.ErrorIs(t, err, types.ErrBasculeNotAdmin)
}

func TestBasculeNotInitialized(t *testing.T) {
	r := rand.New(rand.NewSource(54))
	s, err := store.NewBasculeStore(testutil.OpenTestBackend(t))
	require.NoError(t, err)
	b := service.NewBascule(s, zap.NewNop())

	_, err = b.Data()
	require.ErrorIs(t, err, types.ErrBasculeNotInitialized)
	err = b.ReportDeposit(testutil.GenRandomAddress(r), testutil.GenRandomHash(r))
	require.ErrorIs(t, err, types.ErrBasculeNotInitialized)
}
