package main

import (
	"fmt"
	"path/filepath"

	"github.com/urfave/cli"

	lbtccfg "github.com/lombard-finance/lbtc-core/lbtc/config"
	"github.com/lombard-finance/lbtc-core/util"
)

var initCommand = cli.Command{
	Name:  "init",
	Usage: "Initialize an lbtcd home directory.",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  homeFlag,
			Usage: "Path to where the home directory will be initialized",
			Value: lbtccfg.DefaultLBTCDir,
		},
		cli.BoolFlag{
			Name:     forceFlag,
			Usage:    "Override existing configuration",
			Required: false,
		},
		cli.StringFlag{
			Name:     programIDFlag,
			Usage:    "Hex encoded address of the program instance",
			Required: true,
		},
		cli.StringFlag{
			Name:  networkFlag,
			Usage: "The LBTC deployment to serve (mainnet|devnet)",
			Value: "devnet",
		},
	},
	Action: initHome,
}

func initHome(c *cli.Context) error {
	homePath, err := filepath.Abs(c.String(homeFlag))
	if err != nil {
		return err
	}
	force := c.Bool(forceFlag)

	if util.FileExists(homePath) && !force {
		return fmt.Errorf("home path %s already exists", homePath)
	}

	// ensure the directory exists
	homePath = util.CleanAndExpandPath(homePath)
	if err := util.MakeDirectory(homePath); err != nil {
		return err
	}
	// Create log directory
	logDir := lbtccfg.LogDir(homePath)
	if err := util.MakeDirectory(logDir); err != nil {
		return err
	}

	defaultConfig := lbtccfg.DefaultConfigWithHomePath(homePath)
	defaultConfig.ProgramID = c.String(programIDFlag)
	defaultConfig.Network = c.String(networkFlag)
	if err := defaultConfig.Validate(); err != nil {
		return err
	}

	return lbtccfg.WriteConfigFile(homePath, &defaultConfig)
}
