package service

import (
	"errors"

	errorsmod "cosmossdk.io/errors"
	"github.com/lightningnetwork/lnd/kvdb"
	"go.uber.org/zap"

	"github.com/lombard-finance/lbtc-core/lbtc/store"
	"github.com/lombard-finance/lbtc-core/types"
)

// Initialize creates the program config. The admin defaults to the deployer.
func (p *Program) Initialize(deployer types.Address, params types.InitParams) error {
	if params.Admin.IsZero() {
		params.Admin = deployer
	}
	if err := checkFee(params.MintFee); err != nil {
		return err
	}
	if err := checkFee(params.BurnCommission); err != nil {
		return err
	}

	err := p.store.Update(func(tx kvdb.RwTx) error {
		_, err := store.GetConfig(tx)
		switch {
		case err == nil:
			return types.ErrAlreadyInitialized
		case !errors.Is(err, store.ErrConfigNotFound):
			return err
		}

		return store.PutConfig(tx, &types.ProgramConfig{
			ProgramID:      p.programID,
			ChainID:        p.chainID,
			Admin:          params.Admin,
			Operator:       params.Operator,
			Treasury:       params.Treasury,
			BurnCommission: params.BurnCommission,
			DustFeeRate:    params.DustFeeRate,
			MintFee:        params.MintFee,
		})
	})
	if err != nil {
		p.recordFailure("initialize", err)
		return err
	}

	p.logger.Info("program initialized",
		zap.String("program_id", p.programID.String()),
		zap.String("admin", params.Admin.String()),
	)
	return nil
}

// TransferOwnership starts a two-step admin handover.
func (p *Program) TransferOwnership(caller, newAdmin types.Address) error {
	return p.update("transfer_ownership", func(_ kvdb.RwTx, cfg *types.ProgramConfig, evs *types.Events) error {
		if err := cfg.RequireRole(types.RoleAdmin, caller); err != nil {
			return err
		}
		cfg.PendingAdmin = newAdmin
		evs.Emit(types.OwnershipTransferStarted{PreviousAdmin: cfg.Admin, PendingAdmin: newAdmin})
		return nil
	})
}

func (p *Program) AcceptOwnership(caller types.Address) error {
	return p.update("accept_ownership", func(_ kvdb.RwTx, cfg *types.ProgramConfig, evs *types.Events) error {
		if err := cfg.RequireRole(types.RolePendingAdmin, caller); err != nil {
			return err
		}
		prev := cfg.Admin
		cfg.Admin = cfg.PendingAdmin
		cfg.PendingAdmin = types.ZeroAddress
		evs.Emit(types.OwnershipTransferred{PreviousAdmin: prev, NewAdmin: cfg.Admin})
		return nil
	})
}

func (p *Program) SetOperator(caller, operator types.Address) error {
	return p.adminUpdate("set_operator", caller, func(cfg *types.ProgramConfig, evs *types.Events) error {
		cfg.Operator = operator
		evs.Emit(types.OperatorSet{Operator: operator})
		return nil
	})
}

func (p *Program) SetTreasury(caller, treasury types.Address) error {
	return p.adminUpdate("set_treasury", caller, func(cfg *types.ProgramConfig, evs *types.Events) error {
		if treasury.IsZero() {
			return errorsmod.Wrap(types.ErrZeroAddress, "treasury")
		}
		cfg.Treasury = treasury
		evs.Emit(types.TreasuryChanged{Treasury: treasury})
		return nil
	})
}

func (p *Program) EnableWithdrawals(caller types.Address) error {
	return p.setWithdrawals(caller, true)
}

func (p *Program) DisableWithdrawals(caller types.Address) error {
	return p.setWithdrawals(caller, false)
}

func (p *Program) setWithdrawals(caller types.Address, enabled bool) error {
	return p.adminUpdate("set_withdrawals", caller, func(cfg *types.ProgramConfig, evs *types.Events) error {
		cfg.WithdrawalsEnabled = enabled
		evs.Emit(types.WithdrawalsEnabled{Enabled: enabled})
		return nil
	})
}

func (p *Program) EnableBascule(caller types.Address) error {
	return p.setBascule(caller, true)
}

func (p *Program) DisableBascule(caller types.Address) error {
	return p.setBascule(caller, false)
}

func (p *Program) setBascule(caller types.Address, enabled bool) error {
	return p.adminUpdate("set_bascule", caller, func(cfg *types.ProgramConfig, evs *types.Events) error {
		cfg.BasculeEnabled = enabled
		evs.Emit(types.BasculeEnabled{Enabled: enabled})
		return nil
	})
}

func (p *Program) SetBurnCommission(caller types.Address, commission uint64) error {
	return p.adminUpdate("set_burn_commission", caller, func(cfg *types.ProgramConfig, evs *types.Events) error {
		if err := checkFee(commission); err != nil {
			return err
		}
		cfg.BurnCommission = commission
		evs.Emit(types.BurnCommissionSet{BurnCommission: commission})
		return nil
	})
}

func (p *Program) SetDustFeeRate(caller types.Address, rate uint64) error {
	return p.adminUpdate("set_dust_fee_rate", caller, func(cfg *types.ProgramConfig, evs *types.Events) error {
		cfg.DustFeeRate = rate
		evs.Emit(types.DustFeeRateSet{Rate: rate})
		return nil
	})
}

// SetMintFee is restricted to the operator.
func (p *Program) SetMintFee(caller types.Address, fee uint64) error {
	return p.update("set_mint_fee", func(_ kvdb.RwTx, cfg *types.ProgramConfig, evs *types.Events) error {
		if err := cfg.RequireRole(types.RoleOperator, caller); err != nil {
			return err
		}
		if err := checkFee(fee); err != nil {
			return err
		}
		cfg.MintFee = fee
		evs.Emit(types.MintFeeSet{MintFee: fee})
		return nil
	})
}

func (p *Program) AddClaimer(caller, member types.Address) error {
	return p.changeMember(caller, types.RoleClaimer, member, true)
}

func (p *Program) RemoveClaimer(caller, member types.Address) error {
	return p.changeMember(caller, types.RoleClaimer, member, false)
}

func (p *Program) AddPauser(caller, member types.Address) error {
	return p.changeMember(caller, types.RolePauser, member, true)
}

func (p *Program) RemovePauser(caller, member types.Address) error {
	return p.changeMember(caller, types.RolePauser, member, false)
}

func (p *Program) AddMinter(caller, member types.Address) error {
	return p.changeMember(caller, types.RoleMinter, member, true)
}

func (p *Program) RemoveMinter(caller, member types.Address) error {
	return p.changeMember(caller, types.RoleMinter, member, false)
}

func (p *Program) changeMember(caller types.Address, role types.Role, member types.Address, grant bool) error {
	op := "remove_" + role.String()
	if grant {
		op = "add_" + role.String()
	}
	return p.adminUpdate(op, caller, func(cfg *types.ProgramConfig, evs *types.Events) error {
		var err error
		if grant {
			err = cfg.AddMember(role, member)
		} else {
			err = cfg.RemoveMember(role, member)
		}
		if err != nil {
			return errorsmod.Wrapf(err, "%s %s", role, member)
		}
		evs.Emit(types.RoleMemberChanged{Role: role, Member: member, Granted: grant})
		return nil
	})
}

// Pause halts every mint and redeem path until a pauser unpauses.
func (p *Program) Pause(caller types.Address) error {
	return p.update("pause", func(_ kvdb.RwTx, cfg *types.ProgramConfig, evs *types.Events) error {
		if err := cfg.RequireRole(types.RolePauser, caller); err != nil {
			return err
		}
		if err := cfg.RequireNotPaused(); err != nil {
			return err
		}
		cfg.Paused = true
		evs.Emit(types.PauseEnabled{Enabled: true})
		return nil
	})
}

func (p *Program) Unpause(caller types.Address) error {
	return p.update("unpause", func(_ kvdb.RwTx, cfg *types.ProgramConfig, evs *types.Events) error {
		if err := cfg.RequireRole(types.RolePauser, caller); err != nil {
			return err
		}
		if !cfg.Paused {
			return types.ErrNotPaused
		}
		cfg.Paused = false
		evs.Emit(types.PauseEnabled{Enabled: false})
		return nil
	})
}

// Mint issues LBTC directly, outside the consortium path.
func (p *Program) Mint(caller, to types.Address, amount uint64) error {
	return p.minterUpdate("mint", caller, amount, func(tx kvdb.RwTx) error {
		return p.ledger.MintTo(tx, to, amount)
	})
}

// Burn destroys LBTC held by from.
func (p *Program) Burn(caller, from types.Address, amount uint64) error {
	return p.minterUpdate("burn", caller, amount, func(tx kvdb.RwTx) error {
		return p.ledger.Burn(tx, from, amount)
	})
}

func (p *Program) minterUpdate(op string, caller types.Address, amount uint64, fn func(tx kvdb.RwTx) error) error {
	return p.update(op, func(tx kvdb.RwTx, cfg *types.ProgramConfig, _ *types.Events) error {
		if err := cfg.RequireRole(types.RoleMinter, caller); err != nil {
			return err
		}
		if err := cfg.RequireNotPaused(); err != nil {
			return err
		}
		if amount == 0 {
			return types.ErrInvalidAmount
		}
		return fn(tx)
	})
}

func (p *Program) adminUpdate(op string, caller types.Address, fn func(cfg *types.ProgramConfig, evs *types.Events) error) error {
	return p.update(op, func(_ kvdb.RwTx, cfg *types.ProgramConfig, evs *types.Events) error {
		if err := cfg.RequireRole(types.RoleAdmin, caller); err != nil {
			return err
		}
		return fn(cfg, evs)
	})
}

func checkFee(fee uint64) error {
	if fee > types.MaxFee {
		return errorsmod.Wrapf(types.ErrFeeTooHigh, "%d exceeds %d", fee, types.MaxFee)
	}
	return nil
}
