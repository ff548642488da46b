package service

import (
	"errors"
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/lightningnetwork/lnd/kvdb"
	"go.uber.org/zap"

	"github.com/lombard-finance/lbtc-core/consortium"
	"github.com/lombard-finance/lbtc-core/lbtc/store"
	"github.com/lombard-finance/lbtc-core/signer"
	"github.com/lombard-finance/lbtc-core/types"
)

// ErrBasculeUnavailable is returned when deposit validation is enabled but
// the program was built without a withdrawal validator.
var ErrBasculeUnavailable = errors.New("no withdrawal validator configured")

// TokenLedger moves LBTC within the transaction of the operation that
// caused the movement.
type TokenLedger interface {
	MintTo(tx kvdb.RwTx, to types.Address, amount uint64) error
	Burn(tx kvdb.RwTx, from types.Address, amount uint64) error
	Transfer(tx kvdb.RwTx, from, to types.Address, amount uint64) error
}

// WithdrawalValidator confirms a deposit against an independent deposit
// ledger before it is minted.
type WithdrawalValidator interface {
	ValidateWithdrawalTx(
		tx kvdb.RwTx,
		validator types.Address,
		depositID types.Hash,
		recipient types.Address,
		amount uint64,
		txID types.Hash,
		vout uint32,
		evs *types.Events,
	) error
}

// failureRecorder is implemented by sinks that also track rejected
// operations.
type failureRecorder interface {
	RecordFailure(op string, err error)
}

// Program is the LBTC consensus and settlement engine. Every operation is a
// single store transaction over the persisted config and the records it
// touches; events are published only after the transaction commits.
type Program struct {
	programID types.Address
	chainID   types.Hash

	store       *store.LBTCStore
	ledger      TokenLedger
	bascule     WithdrawalValidator
	accumulator *consortium.Accumulator
	permits     signer.PermitVerifier
	clock       clock.Clock

	sinks  []types.EventSink
	logger *zap.Logger
}

type Option func(p *Program)

// WithWithdrawalValidator wires the deposit validation engine consulted on
// mint while bascule is enabled.
func WithWithdrawalValidator(v WithdrawalValidator) Option {
	return func(p *Program) {
		p.bascule = v
	}
}

func WithClock(clk clock.Clock) Option {
	return func(p *Program) {
		p.clock = clk
	}
}

func WithVerifiers(v signer.Verifier, pv signer.PermitVerifier) Option {
	return func(p *Program) {
		p.accumulator = consortium.NewAccumulator(v)
		p.permits = pv
	}
}

func WithEventSinks(sinks ...types.EventSink) Option {
	return func(p *Program) {
		p.sinks = append(p.sinks, sinks...)
	}
}

func NewProgram(
	programID types.Address,
	chainID types.Hash,
	s *store.LBTCStore,
	ledger TokenLedger,
	logger *zap.Logger,
	opts ...Option,
) *Program {
	p := &Program{
		programID:   programID,
		chainID:     chainID,
		store:       s,
		ledger:      ledger,
		accumulator: consortium.NewAccumulator(signer.NewSecp256k1Verifier()),
		permits:     signer.NewSchnorrVerifier(),
		clock:       clock.New(),
		logger:      logger,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *Program) ProgramID() types.Address {
	return p.programID
}

func (p *Program) ChainID() types.Hash {
	return p.chainID
}

// Config returns the persisted program config.
func (p *Program) Config() (*types.ProgramConfig, error) {
	cfg, err := p.store.GetConfig()
	if errors.Is(err, store.ErrConfigNotFound) {
		return nil, types.ErrNotInitialized
	}
	return cfg, err
}

func (p *Program) MintPayload(hash types.Hash) (*types.MintPayload, error) {
	mp, err := p.store.GetMintPayload(hash)
	if errors.Is(err, store.ErrMintPayloadNotFound) {
		return nil, types.ErrNotFound.Wrapf("mint payload %s", hash)
	}
	return mp, err
}

func (p *Program) UnstakeInfo(index uint64) (*types.UnstakeInfo, error) {
	info, err := p.store.GetUnstakeInfo(index)
	if errors.Is(err, store.ErrUnstakeInfoNotFound) {
		return nil, types.ErrNotFound.Wrapf("unstake %d", index)
	}
	return info, err
}

func (p *Program) ValsetPayload(hash types.Hash, creator types.Address) (*types.ValsetPayload, error) {
	var vp *types.ValsetPayload
	err := p.store.View(func(tx kvdb.RTx) error {
		var err error
		vp, err = store.GetValsetPayload(tx, hash, creator)
		return err
	})
	if errors.Is(err, store.ErrValsetPayloadNotFound) {
		return nil, types.ErrNotFound.Wrapf("valset payload %s", hash)
	}
	return vp, err
}

// update runs fn against the persisted config in one transaction, writes the
// config back and publishes the buffered events once committed.
func (p *Program) update(op string, fn func(tx kvdb.RwTx, cfg *types.ProgramConfig, evs *types.Events) error) error {
	var evs types.Events
	err := p.store.Update(func(tx kvdb.RwTx) error {
		evs = evs[:0]

		cfg, err := store.GetConfig(tx)
		if errors.Is(err, store.ErrConfigNotFound) {
			return types.ErrNotInitialized
		}
		if err != nil {
			return err
		}

		if err := fn(tx, cfg, &evs); err != nil {
			return err
		}

		return store.PutConfig(tx, cfg)
	})
	if err != nil {
		p.recordFailure(op, err)
		return err
	}

	evs.PublishTo(p.sinks...)
	return nil
}

func (p *Program) recordFailure(op string, err error) {
	p.logger.Debug("operation rejected",
		zap.String("op", op),
		zap.String("category", types.CategoryOf(err).String()),
		zap.Error(err),
	)
	for _, s := range p.sinks {
		if fr, ok := s.(failureRecorder); ok {
			fr.RecordFailure(op, err)
		}
	}
}

// notFound maps a store miss onto the registered not-found error.
func notFound(err error, sentinel error, format string, args ...interface{}) error {
	if errors.Is(err, sentinel) {
		return types.ErrNotFound.Wrap(fmt.Sprintf(format, args...))
	}
	return err
}
