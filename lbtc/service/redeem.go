package service

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/lightningnetwork/lnd/kvdb"
	"go.uber.org/zap"

	"github.com/lombard-finance/lbtc-core/bitcoin"
	"github.com/lombard-finance/lbtc-core/lbtc/store"
	"github.com/lombard-finance/lbtc-core/types"
)

// Redeem burns amount from caller, minus the burn commission paid to the
// treasury, and queues an unstake to scriptPubkey. It returns the index of
// the unstake entry.
func (p *Program) Redeem(caller types.Address, scriptPubkey []byte, amount uint64) (uint64, error) {
	var index uint64
	err := p.update("redeem", func(tx kvdb.RwTx, cfg *types.ProgramConfig, evs *types.Events) error {
		if err := cfg.RequireNotPaused(); err != nil {
			return err
		}
		if !cfg.WithdrawalsEnabled {
			return types.ErrWithdrawalsDisabled
		}

		outType, err := bitcoin.ClassifyScript(scriptPubkey)
		if err != nil {
			return err
		}

		fee := cfg.BurnCommission
		if amount <= fee {
			return errorsmod.Wrapf(types.ErrFeeExceedsAmount, "fee %d, amount %d", fee, amount)
		}
		net := amount - fee
		if bitcoin.IsDust(scriptPubkey, net, cfg.DustFeeRate) {
			return errorsmod.Wrapf(types.ErrBelowDustLimit, "%s output of %d at rate %d", outType, net, cfg.DustFeeRate)
		}

		if fee > 0 {
			if err := p.ledger.Transfer(tx, caller, cfg.Treasury, fee); err != nil {
				return err
			}
		}
		if err := p.ledger.Burn(tx, caller, net); err != nil {
			return err
		}

		info := &types.UnstakeInfo{
			Index:        cfg.UnstakeCounter,
			From:         caller,
			ScriptPubkey: scriptPubkey,
			Amount:       net,
		}
		if err := store.AppendUnstakeInfo(tx, info); err != nil {
			return err
		}
		index = cfg.UnstakeCounter
		cfg.UnstakeCounter++

		evs.Emit(types.UnstakeRequest{
			Index:        info.Index,
			From:         caller,
			ScriptPubkey: scriptPubkey,
			Amount:       net,
		})
		p.logger.Info("redeem queued",
			zap.Uint64("index", index),
			zap.String("output_type", outType.String()),
			zap.Uint64("amount", net),
			zap.Uint64("fee", fee),
		)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return index, nil
}
