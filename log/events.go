package log

import (
	"go.uber.org/zap"

	"github.com/lombard-finance/lbtc-core/types"
)

// EventLogger is an event sink writing every committed event to a logger,
// the record relayers tail for MintProofConsumed and UnstakeRequest.
type EventLogger struct {
	logger *zap.Logger
}

func NewEventLogger(logger *zap.Logger) *EventLogger {
	return &EventLogger{logger: logger.Named("events")}
}

func (l *EventLogger) Publish(ev types.Event) {
	l.logger.Info(ev.EventName(), eventFields(ev)...)
}

func eventFields(ev types.Event) []zap.Field {
	switch e := ev.(type) {
	case types.MintProofConsumed:
		return []zap.Field{
			zap.Stringer("recipient", e.Recipient),
			zap.Stringer("payload_hash", e.PayloadHash),
			zap.Uint64("amount", e.Amount),
			zap.Uint64("fee", e.Fee),
		}
	case types.UnstakeRequest:
		return []zap.Field{
			zap.Uint64("index", e.Index),
			zap.Stringer("from", e.From),
			zap.Binary("script_pubkey", e.ScriptPubkey),
			zap.Uint64("amount", e.Amount),
		}
	case types.ValidatorSetUpdated:
		return []zap.Field{
			zap.Uint64("epoch", e.Epoch),
			zap.Int("size", len(e.Validators)),
			zap.Uint64s("weights", e.Weights),
			zap.Uint64("weight_threshold", e.WeightThreshold),
		}
	case types.SignaturesAdded:
		return []zap.Field{
			zap.Stringer("payload_hash", e.PayloadHash),
			zap.Int("added", e.Added),
			zap.Uint64("weight", e.Weight),
		}
	case types.WithdrawalValidated:
		return []zap.Field{zap.Stringer("deposit_id", e.DepositID), zap.Uint64("amount", e.Amount)}
	case types.WithdrawalNotValidated:
		return []zap.Field{zap.Stringer("deposit_id", e.DepositID), zap.Uint64("amount", e.Amount)}
	case types.DepositReported:
		return []zap.Field{zap.Stringer("deposit_id", e.DepositID)}
	case types.AlreadyReported:
		return []zap.Field{zap.Stringer("deposit_id", e.DepositID), zap.Stringer("status", e.Status)}
	default:
		return []zap.Field{zap.Any("event", ev)}
	}
}
