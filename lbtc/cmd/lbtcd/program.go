package main

import (
	"fmt"

	"github.com/urfave/cli"

	lbtccfg "github.com/lombard-finance/lbtc-core/lbtc/config"
	"github.com/lombard-finance/lbtc-core/lbtc/service"
	"github.com/lombard-finance/lbtc-core/types"
)

var homeCliFlag = cli.StringFlag{
	Name:  homeFlag,
	Usage: "The path to the lbtcd home directory",
	Value: lbtccfg.DefaultLBTCDir,
}

var initializeCommand = cli.Command{
	Name:        "initialize",
	Usage:       "Create the program state in the database of the home directory.",
	Description: "The admin becomes the deployer of the program and may later hand over ownership.",
	Flags: []cli.Flag{
		homeCliFlag,
		cli.StringFlag{
			Name:     adminFlag,
			Usage:    "Hex encoded address of the program admin",
			Required: true,
		},
		cli.StringFlag{
			Name:  operatorFlag,
			Usage: "Hex encoded address of the operator managing the mint fee",
		},
		cli.StringFlag{
			Name:  treasuryFlag,
			Usage: "Hex encoded address receiving fees and burn commissions",
		},
		cli.Uint64Flag{
			Name:  burnCommissionFlag,
			Usage: "Satoshis withheld from every redeem",
		},
		cli.Uint64Flag{
			Name:  dustFeeRateFlag,
			Usage: "Relay fee rate in satoshis per kvB the dust check is run at",
			Value: defaultDustFeeRate,
		},
		cli.Uint64Flag{
			Name:  mintFeeFlag,
			Usage: "Upper bound in satoshis of the fee charged by fee-authorized mints",
		},
	},
	Action: initializeProgram,
}

func initializeProgram(ctx *cli.Context) error {
	admin, err := types.NewAddressFromHex(ctx.String(adminFlag))
	if err != nil {
		return err
	}
	params := types.InitParams{
		Admin:          admin,
		BurnCommission: ctx.Uint64(burnCommissionFlag),
		DustFeeRate:    ctx.Uint64(dustFeeRateFlag),
		MintFee:        ctx.Uint64(mintFeeFlag),
	}
	if params.Operator, err = optionalAddress(ctx, operatorFlag); err != nil {
		return err
	}
	if params.Treasury, err = optionalAddress(ctx, treasuryFlag); err != nil {
		return err
	}

	return withEngines(ctx, func(_ *lbtccfg.Config, e *service.Engines) error {
		if err := e.Program.Initialize(admin, params); err != nil {
			return err
		}
		cfg, err := e.Program.Config()
		if err != nil {
			return err
		}
		printRespJSON(cfg)
		return nil
	})
}

var showConfigCommand = cli.Command{
	Name:  "show-config",
	Usage: "Print the daemon settings and the persisted program state.",
	Flags: []cli.Flag{homeCliFlag},
	Action: func(ctx *cli.Context) error {
		return withEngines(ctx, func(cfg *lbtccfg.Config, e *service.Engines) error {
			state, err := e.Program.Config()
			if err != nil {
				return err
			}
			printRespJSON(struct {
				Network        string
				BitcoinNetwork string
				DBPath         string
				Metrics        interface{}
				Program        *types.ProgramConfig
			}{
				Network:        cfg.Network,
				BitcoinNetwork: cfg.BitcoinNetwork,
				DBPath:         cfg.DatabaseConfig.DBPath,
				Metrics:        cfg.Metrics,
				Program:        state,
			})
			return nil
		})
	},
}

func optionalAddress(ctx *cli.Context, name string) (types.Address, error) {
	if !ctx.IsSet(name) {
		return types.ZeroAddress, nil
	}
	addr, err := types.NewAddressFromHex(ctx.String(name))
	if err != nil {
		return types.ZeroAddress, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return addr, nil
}
