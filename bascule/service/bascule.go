package service

import (
	"errors"

	errorsmod "cosmossdk.io/errors"
	"github.com/lightningnetwork/lnd/kvdb"
	"go.uber.org/zap"

	"github.com/lombard-finance/lbtc-core/bascule/store"
	"github.com/lombard-finance/lbtc-core/codec"
	"github.com/lombard-finance/lbtc-core/types"
)

const (
	RolePauser              = "pauser"
	RoleDepositReporter     = "deposit-reporter"
	RoleWithdrawalValidator = "withdrawal-validator"
)

type failureRecorder interface {
	RecordFailure(op string, err error)
}

// Bascule tracks Bitcoin deposits reported by an independent observer and
// validates withdrawals against them. Withdrawals below the validate
// threshold may pass unreported.
type Bascule struct {
	store  *store.BasculeStore
	sinks  []types.EventSink
	logger *zap.Logger
}

func NewBascule(s *store.BasculeStore, logger *zap.Logger, sinks ...types.EventSink) *Bascule {
	return &Bascule{
		store:  s,
		sinks:  sinks,
		logger: logger,
	}
}

// Data returns the persisted bascule state.
func (b *Bascule) Data() (*types.BasculeData, error) {
	data, err := b.store.GetData()
	if errors.Is(err, store.ErrDataNotFound) {
		return nil, types.ErrBasculeNotInitialized
	}
	return data, err
}

func (b *Bascule) Deposit(id types.Hash) (*types.Deposit, error) {
	return b.store.GetDeposit(id)
}

// Initialize makes caller the admin and the pauser.
func (b *Bascule) Initialize(caller types.Address) error {
	err := b.store.Update(func(tx kvdb.RwTx) error {
		_, err := store.GetData(tx)
		switch {
		case err == nil:
			return types.ErrBasculeAlreadyInitialized
		case !errors.Is(err, store.ErrDataNotFound):
			return err
		}

		return store.PutData(tx, &types.BasculeData{
			Admin:  caller,
			Pauser: caller,
		})
	})
	if err != nil {
		b.recordFailure("bascule_initialize", err)
		return err
	}

	b.logger.Info("bascule initialized", zap.String("admin", caller.String()))
	return nil
}

func (b *Bascule) TransferAdmin(caller, newAdmin types.Address) error {
	return b.adminUpdate("bascule_transfer_admin", caller, func(data *types.BasculeData, _ *types.Events) error {
		data.PendingAdmin = newAdmin
		return nil
	})
}

func (b *Bascule) AcceptAdmin(caller types.Address) error {
	return b.update("bascule_accept_admin", func(_ kvdb.RwTx, data *types.BasculeData, evs *types.Events) error {
		if data.PendingAdmin.IsZero() || data.PendingAdmin != caller {
			return types.ErrBasculeNotPendingAdmin
		}
		prev := data.Admin
		data.Admin = caller
		data.PendingAdmin = types.ZeroAddress
		evs.Emit(types.BasculeAdminChanged{PreviousAdmin: prev, NewAdmin: caller})
		return nil
	})
}

func (b *Bascule) GrantPauser(caller, account types.Address) error {
	return b.adminUpdate("bascule_grant_pauser", caller, func(data *types.BasculeData, evs *types.Events) error {
		data.Pauser = account
		evs.Emit(types.BasculeRoleGranted{Role: RolePauser, Account: account, Granted: true})
		return nil
	})
}

func (b *Bascule) GrantReporter(caller, account types.Address) error {
	return b.adminUpdate("bascule_grant_reporter", caller, func(data *types.BasculeData, evs *types.Events) error {
		data.DepositReporter = account
		evs.Emit(types.BasculeRoleGranted{Role: RoleDepositReporter, Account: account, Granted: true})
		return nil
	})
}

func (b *Bascule) AddWithdrawalValidator(caller, account types.Address) error {
	return b.adminUpdate("bascule_add_validator", caller, func(data *types.BasculeData, evs *types.Events) error {
		if account.IsZero() {
			return types.ErrZeroAddress
		}
		if data.IsWithdrawalValidator(account) {
			return errorsmod.Wrapf(types.ErrAlreadyExists, "withdrawal validator %s", account)
		}
		if len(data.WithdrawalValidators) >= types.MaxWithdrawalValidators {
			return types.ErrMaxValidators
		}
		data.WithdrawalValidators = append(data.WithdrawalValidators, account)
		evs.Emit(types.BasculeRoleGranted{Role: RoleWithdrawalValidator, Account: account, Granted: true})
		return nil
	})
}

func (b *Bascule) RemoveWithdrawalValidator(caller, account types.Address) error {
	return b.adminUpdate("bascule_remove_validator", caller, func(data *types.BasculeData, evs *types.Events) error {
		for i, v := range data.WithdrawalValidators {
			if v == account {
				data.WithdrawalValidators = append(data.WithdrawalValidators[:i], data.WithdrawalValidators[i+1:]...)
				evs.Emit(types.BasculeRoleGranted{Role: RoleWithdrawalValidator, Account: account, Granted: false})
				return nil
			}
		}
		return errorsmod.Wrapf(types.ErrNotFound, "withdrawal validator %s", account)
	})
}

// UpdateValidateThreshold sets the amount from which withdrawals must have
// been reported. Zero requires every withdrawal to be reported.
func (b *Bascule) UpdateValidateThreshold(caller types.Address, threshold uint64) error {
	return b.adminUpdate("bascule_update_threshold", caller, func(data *types.BasculeData, evs *types.Events) error {
		if data.IsPaused {
			return types.ErrBasculePaused
		}
		old := data.ValidateThreshold
		data.ValidateThreshold = threshold
		evs.Emit(types.UpdateValidateThreshold{OldThreshold: old, NewThreshold: threshold})
		return nil
	})
}

func (b *Bascule) Pause(caller types.Address) error {
	return b.setPaused("bascule_pause", caller, true)
}

func (b *Bascule) Unpause(caller types.Address) error {
	return b.setPaused("bascule_unpause", caller, false)
}

func (b *Bascule) setPaused(op string, caller types.Address, paused bool) error {
	return b.update(op, func(_ kvdb.RwTx, data *types.BasculeData, evs *types.Events) error {
		if data.Pauser.IsZero() || data.Pauser != caller {
			return types.ErrBasculeNotPauser
		}
		data.IsPaused = paused
		evs.Emit(types.BasculePauseChanged{Paused: paused})
		return nil
	})
}

// ReportDeposit marks a deposit as seen on Bitcoin. Reporting a deposit that
// is not Unreported changes nothing.
func (b *Bascule) ReportDeposit(caller types.Address, depositID types.Hash) error {
	return b.update("report_deposit", func(tx kvdb.RwTx, data *types.BasculeData, evs *types.Events) error {
		if data.DepositReporter.IsZero() || data.DepositReporter != caller {
			return types.ErrBasculeNotReporter
		}
		if data.IsPaused {
			return types.ErrBasculePaused
		}

		d, err := store.GetDeposit(tx, depositID)
		if err != nil {
			return err
		}
		if d.State != types.DepositStateUnreported {
			evs.Emit(types.AlreadyReported{DepositID: depositID, Status: d.State})
			return nil
		}

		d.State = types.DepositStateReported
		if err := store.PutDeposit(tx, d); err != nil {
			return err
		}
		evs.Emit(types.DepositReported{DepositID: depositID})
		return nil
	})
}

// ValidateWithdrawal consumes a deposit on behalf of a withdrawal in its own
// transaction.
func (b *Bascule) ValidateWithdrawal(
	caller types.Address,
	depositID types.Hash,
	recipient types.Address,
	amount uint64,
	txID types.Hash,
	vout uint32,
) error {
	var evs types.Events
	err := b.store.Update(func(tx kvdb.RwTx) error {
		evs = evs[:0]
		return b.ValidateWithdrawalTx(tx, caller, depositID, recipient, amount, txID, vout, &evs)
	})
	if err != nil {
		b.recordFailure("validate_withdrawal", err)
		return err
	}

	evs.PublishTo(b.sinks...)
	return nil
}

// ValidateWithdrawalTx runs withdrawal validation inside tx, buffering its
// events into evs. It lets a mint and the validation of its deposit commit
// or roll back together.
func (b *Bascule) ValidateWithdrawalTx(
	tx kvdb.RwTx,
	caller types.Address,
	depositID types.Hash,
	recipient types.Address,
	amount uint64,
	txID types.Hash,
	vout uint32,
	evs *types.Events,
) error {
	data, err := getData(tx)
	if err != nil {
		return err
	}
	if !data.IsWithdrawalValidator(caller) {
		return types.ErrBasculeNotValidator
	}
	if data.IsPaused {
		return types.ErrBasculePaused
	}
	if computed := codec.DepositID(recipient, amount, txID, vout); computed != depositID {
		return errorsmod.Wrapf(types.ErrInvalidDepositID, "computed %s", computed)
	}

	d, err := store.GetDeposit(tx, depositID)
	if err != nil {
		return err
	}

	switch d.State {
	case types.DepositStateWithdrawn:
		return errorsmod.Wrapf(types.ErrAlreadyWithdrawn, "deposit %s", depositID)
	case types.DepositStateReported:
		evs.Emit(types.WithdrawalValidated{DepositID: depositID, Amount: amount})
	default:
		if amount >= data.ValidateThreshold {
			return errorsmod.Wrapf(types.ErrWithdrawalFailedValidation,
				"amount %d, threshold %d", amount, data.ValidateThreshold)
		}
		evs.Emit(types.WithdrawalNotValidated{DepositID: depositID, Amount: amount})
	}

	d.State = types.DepositStateWithdrawn
	return store.PutDeposit(tx, d)
}

func (b *Bascule) update(op string, fn func(tx kvdb.RwTx, data *types.BasculeData, evs *types.Events) error) error {
	var evs types.Events
	err := b.store.Update(func(tx kvdb.RwTx) error {
		evs = evs[:0]

		data, err := getData(tx)
		if err != nil {
			return err
		}
		if err := fn(tx, data, &evs); err != nil {
			return err
		}

		return store.PutData(tx, data)
	})
	if err != nil {
		b.recordFailure(op, err)
		return err
	}

	evs.PublishTo(b.sinks...)
	return nil
}

func (b *Bascule) adminUpdate(op string, caller types.Address, fn func(data *types.BasculeData, evs *types.Events) error) error {
	return b.update(op, func(_ kvdb.RwTx, data *types.BasculeData, evs *types.Events) error {
		if data.Admin != caller {
			return types.ErrBasculeNotAdmin
		}
		return fn(data, evs)
	})
}

func (b *Bascule) recordFailure(op string, err error) {
	b.logger.Debug("operation rejected",
		zap.String("op", op),
		zap.String("category", types.CategoryOf(err).String()),
		zap.Error(err),
	)
	for _, s := range b.sinks {
		if fr, ok := s.(failureRecorder); ok {
			fr.RecordFailure(op, err)
		}
	}
}

func getData(tx kvdb.RTx) (*types.BasculeData, error) {
	data, err := store.GetData(tx)
	if errors.Is(err, store.ErrDataNotFound) {
		return nil, types.ErrBasculeNotInitialized
	}
	return data, err
}
