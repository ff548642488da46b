package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli"

	"github.com/lombard-finance/lbtc-core/bascule/service"
	"github.com/lombard-finance/lbtc-core/bascule/store"
	lbtccfg "github.com/lombard-finance/lbtc-core/lbtc/config"
	lbtcservice "github.com/lombard-finance/lbtc-core/lbtc/service"
	"github.com/lombard-finance/lbtc-core/log"
	"github.com/lombard-finance/lbtc-core/util"
)

// withBascule runs f against the deposit ledger stored in the lbtcd home
// directory given by ctx, holding the home lock for the duration.
func withBascule(ctx *cli.Context, f func(b *service.Bascule) error) error {
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

	db, err := lbtcservice.OpenBackend(cfg.DatabaseConfig, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := store.NewBasculeStore(db)
	if err != nil {
		return err
	}

	return f(service.NewBascule(s, logger, log.NewEventLogger(logger)))
}

func printRespJSON(resp interface{}) {
	jsonBytes, err := json.MarshalIndent(resp, "", "    ")
	if err != nil {
		fmt.Println("unable to decode response: ", err)
		return
	}

	fmt.Printf("%s\n", jsonBytes)
}
