package main

import (
	"fmt"
	"path/filepath"

	"github.com/benbjohnson/clock"
	"github.com/lightningnetwork/lnd/signal"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli"

	lbtccfg "github.com/lombard-finance/lbtc-core/lbtc/config"
	"github.com/lombard-finance/lbtc-core/lbtc/service"
	"github.com/lombard-finance/lbtc-core/log"
	"github.com/lombard-finance/lbtc-core/metrics"
	"github.com/lombard-finance/lbtc-core/util"
)

var startCommand = cli.Command{
	Name:        "start",
	Usage:       "lbtcd start",
	Description: "Start the LBTC program daemon. Note that the home directory should be initialized beforehand",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  homeFlag,
			Usage: "The path to the lbtcd home directory",
			Value: lbtccfg.DefaultLBTCDir,
		},
	},
	Action: start,
}

func start(ctx *cli.Context) error {
	homePath, err := filepath.Abs(ctx.String(homeFlag))
	if err != nil {
		return err
	}
	homePath = util.CleanAndExpandPath(homePath)

	cfg, err := lbtccfg.LoadConfig(homePath)
	if err != nil {
		return fmt.Errorf("failed to load config at %s: %w", homePath, err)
	}

	logger, err := log.NewRootLoggerWithFile(lbtccfg.LogFile(homePath), cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to load the logger: %w", err)
	}

	lock, err := util.LockHome(homePath)
	if err != nil {
		return err
	}
	defer lock.Unlock()

	db, err := service.OpenBackend(cfg.DatabaseConfig, logger)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewLBTCMetrics(reg, clock.New())

	engines, err := service.NewEnginesFromConfig(cfg, db, logger, m, log.NewEventLogger(logger))
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to create the program: %w", err)
	}

	// Hook interceptor for os signals.
	shutdownInterceptor, err := signal.Intercept()
	if err != nil {
		db.Close()
		return err
	}

	srv := service.NewServer(cfg, logger, engines.Program, m, reg, db, shutdownInterceptor)

	return srv.RunUntilShutdown()
}
