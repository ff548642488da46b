package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/lightningnetwork/lnd/kvdb"
	"github.com/lightningnetwork/lnd/signal"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	basculeservice "github.com/lombard-finance/lbtc-core/bascule/service"
	basculestore "github.com/lombard-finance/lbtc-core/bascule/store"
	dbcfg "github.com/lombard-finance/lbtc-core/config"
	lbtccfg "github.com/lombard-finance/lbtc-core/lbtc/config"
	"github.com/lombard-finance/lbtc-core/lbtc/store"
	"github.com/lombard-finance/lbtc-core/ledger"
	"github.com/lombard-finance/lbtc-core/metrics"
	"github.com/lombard-finance/lbtc-core/types"
)

var (
	RtyAttNum = uint(5)
	RtyAtt    = retry.Attempts(RtyAttNum)
	RtyDel    = retry.Delay(time.Millisecond * 400)
	RtyErr    = retry.LastErrorOnly(true)
)

// OpenBackend opens the bolt database, retrying while a previous process
// still holds the file.
func OpenBackend(cfg *dbcfg.DBConfig, logger *zap.Logger) (kvdb.Backend, error) {
	var db kvdb.Backend
	if err := retry.Do(func() error {
		var err error
		db, err = cfg.GetDbBackend()
		return err
	}, RtyAtt, RtyDel, RtyErr, retry.OnRetry(func(n uint, err error) {
		logger.Debug(
			"failed to open the database",
			zap.Uint("attempt", n+1),
			zap.Uint("max_attempts", RtyAttNum),
			zap.String("path", cfg.DBPath),
			zap.Error(err),
		)
	})); err != nil {
		return nil, fmt.Errorf("failed to open db at %s: %w", cfg.DBPath, err)
	}

	return db, nil
}

// Engines holds the program and the deposit validation engine it consults,
// both backed by the same database.
type Engines struct {
	Program *Program
	Bascule *basculeservice.Bascule
	Ledger  *ledger.Ledger
}

// NewEnginesFromConfig builds the engines of one program instance over db.
// Committed events of both engines are delivered to sinks.
func NewEnginesFromConfig(cfg *lbtccfg.Config, db kvdb.Backend, logger *zap.Logger, sinks ...types.EventSink) (*Engines, error) {
	programID, err := cfg.ProgramAddress()
	if err != nil {
		return nil, err
	}
	chainID, err := cfg.ChainID()
	if err != nil {
		return nil, err
	}

	ps, err := store.NewLBTCStore(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initiate program store: %w", err)
	}
	bs, err := basculestore.NewBasculeStore(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initiate bascule store: %w", err)
	}
	l, err := ledger.NewLedger(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initiate token ledger: %w", err)
	}

	bascule := basculeservice.NewBascule(bs, logger.Named("bascule"), sinks...)
	program := NewProgram(programID, chainID, ps, l, logger.Named("lbtc"),
		WithWithdrawalValidator(bascule),
		WithEventSinks(sinks...),
	)

	return &Engines{
		Program: program,
		Bascule: bascule,
		Ledger:  l,
	}, nil
}

// programMetrics is refreshed from the persisted program config.
type programMetrics interface {
	UpdateProgramMetrics(cfg *types.ProgramConfig)
}

// Server is the main daemon construct for lbtcd. It serves metrics and keeps
// the config derived gauges fresh until shutdown.
type Server struct {
	started *atomic.Bool

	cfg    *lbtccfg.Config
	logger *zap.Logger

	program  *Program
	metrics  programMetrics
	gatherer prometheus.Gatherer

	db          kvdb.Backend
	interceptor signal.Interceptor

	wg   sync.WaitGroup
	quit chan struct{}
}

func NewServer(
	cfg *lbtccfg.Config,
	l *zap.Logger,
	program *Program,
	m programMetrics,
	g prometheus.Gatherer,
	db kvdb.Backend,
	sig signal.Interceptor,
) *Server {
	return &Server{
		started:     atomic.NewBool(false),
		cfg:         cfg,
		logger:      l,
		program:     program,
		metrics:     m,
		gatherer:    g,
		db:          db,
		interceptor: sig,
		quit:        make(chan struct{}),
	}
}

// RunUntilShutdown runs the daemon until a signal is received to shut down
// the process.
func (s *Server) RunUntilShutdown() error {
	if s.started.Swap(true) {
		return nil
	}

	defer func() {
		s.logger.Info("Shutdown complete")
	}()

	defer func() {
		s.logger.Info("Closing database...")
		if err := s.db.Close(); err != nil {
			s.logger.Error("failed to close database", zap.Error(err))
			return
		}
		s.logger.Info("Database closed")
	}()

	if s.cfg.Metrics.Enabled {
		addr, err := s.cfg.Metrics.Address()
		if err != nil {
			return fmt.Errorf("failed to get metrics address: %w", err)
		}
		metricsServer := metrics.Start(addr, s.gatherer, s.logger)
		defer metricsServer.Stop(context.Background())
	}

	s.wg.Add(1)
	go s.metricsUpdateLoop()
	defer func() {
		close(s.quit)
		s.wg.Wait()
	}()

	s.logger.Info("LBTC Daemon is fully active!",
		zap.String("program_id", s.program.ProgramID().String()),
		zap.String("chain_id", s.program.ChainID().String()),
	)

	// Wait for shutdown signal from either a graceful server stop or from
	// the interrupt handler.
	<-s.interceptor.ShutdownChannel()

	return nil
}

func (s *Server) metricsUpdateLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.Metrics.UpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.updateMetrics()
		case <-s.quit:
			return
		}
	}
}

func (s *Server) updateMetrics() {
	cfg, err := s.program.Config()
	if err != nil {
		s.logger.Debug("skip program metrics update", zap.Error(err))
		return
	}
	s.metrics.UpdateProgramMetrics(cfg)
}
