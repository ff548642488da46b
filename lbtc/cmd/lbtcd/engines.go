package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli"

	lbtccfg "github.com/lombard-finance/lbtc-core/lbtc/config"
	"github.com/lombard-finance/lbtc-core/lbtc/service"
	"github.com/lombard-finance/lbtc-core/log"
	"github.com/lombard-finance/lbtc-core/util"
)

// withEngines runs f against the program stored under the home directory
// given by ctx, holding the home lock for the duration.
func withEngines(ctx *cli.Context, f func(cfg *lbtccfg.Config, e *service.Engines) error) error {
	homePath, err := filepath.Abs(ctx.String(homeFlag))
	if err != nil {
		return err
	}
	homePath = util.CleanAndExpandPath(homePath)

	cfg, err := lbtccfg.LoadConfig(homePath)
	if err != nil {
		return fmt.Errorf("failed to load config at %s: %w", homePath, err)
	}

	logger, err := log.NewRootLogger("console", cfg.LogLevel, os.Stderr)
	if err != nil {
		return err
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
	defer db.Close()

	engines, err := service.NewEnginesFromConfig(cfg, db, logger, log.NewEventLogger(logger))
	if err != nil {
		return err
	}

	return f(cfg, engines)
}

func printRespJSON(resp interface{}) {
	jsonBytes, err := json.MarshalIndent(resp, "", "    ")
	if err != nil {
		fmt.Println("unable to decode response: ", err)
		return
	}

	fmt.Printf("%s\n", jsonBytes)
}
