package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/lombard-finance/lbtc-core/bascule/service"
	"github.com/lombard-finance/lbtc-core/codec"
	"github.com/lombard-finance/lbtc-core/types"
)

var depositIDCommand = cli.Command{
	Name:  "deposit-id",
	Usage: "Print the id a deposit is reported and validated under.",
	Flags: depositCliFlags,
	Action: func(ctx *cli.Context) error {
		d, err := depositFromFlags(ctx)
		if err != nil {
			return err
		}
		fmt.Println(codec.DepositID(d.recipient, d.amount, d.txID, d.vout).String())
		return nil
	},
}

var initializeCommand = cli.Command{
	Name:  "initialize",
	Usage: "Create the deposit ledger with the caller as admin and pauser.",
	Flags: []cli.Flag{homeCliFlag, callerCliFlag},
	Action: func(ctx *cli.Context) error {
		caller, err := addressFlag(ctx, callerFlag)
		if err != nil {
			return err
		}
		return withBascule(ctx, func(b *service.Bascule) error {
			return b.Initialize(caller)
		})
	},
}

var grantReporterCommand = cli.Command{
	Name:      "grant-reporter",
	Usage:     "Hand the deposit reporter role to an address.",
	ArgsUsage: "<address>",
	Flags:     []cli.Flag{homeCliFlag, callerCliFlag},
	Action: func(ctx *cli.Context) error {
		return adminAction(ctx, func(b *service.Bascule, caller, target types.Address) error {
			return b.GrantReporter(caller, target)
		})
	},
}

var addValidatorCommand = cli.Command{
	Name:      "add-validator",
	Usage:     "Allow an address to validate withdrawals.",
	ArgsUsage: "<address>",
	Flags:     []cli.Flag{homeCliFlag, callerCliFlag},
	Action: func(ctx *cli.Context) error {
		return adminAction(ctx, func(b *service.Bascule, caller, target types.Address) error {
			return b.AddWithdrawalValidator(caller, target)
		})
	},
}

var thresholdCommand = cli.Command{
	Name:  "set-threshold",
	Usage: "Set the amount from which deposits must be reported before withdrawal.",
	Flags: []cli.Flag{
		homeCliFlag,
		callerCliFlag,
		cli.Uint64Flag{
			Name:     amountFlag,
			Usage:    "Threshold in satoshis",
			Required: true,
		},
	},
	Action: func(ctx *cli.Context) error {
		caller, err := addressFlag(ctx, callerFlag)
		if err != nil {
			return err
		}
		return withBascule(ctx, func(b *service.Bascule) error {
			return b.UpdateValidateThreshold(caller, ctx.Uint64(amountFlag))
		})
	},
}

var reportCommand = cli.Command{
	Name:  "report",
	Usage: "Report a deposit observed on Bitcoin.",
	Flags: []cli.Flag{
		homeCliFlag,
		callerCliFlag,
		cli.StringFlag{
			Name:     depositFlag,
			Usage:    "Hex encoded deposit id",
			Required: true,
		},
	},
	Action: func(ctx *cli.Context) error {
		caller, err := addressFlag(ctx, callerFlag)
		if err != nil {
			return err
		}
		id, err := types.NewHashFromHex(ctx.String(depositFlag))
		if err != nil {
			return err
		}
		return withBascule(ctx, func(b *service.Bascule) error {
			if err := b.ReportDeposit(caller, id); err != nil {
				return err
			}
			return printDeposit(b, id)
		})
	},
}

var validateCommand = cli.Command{
	Name:  "validate",
	Usage: "Consume a deposit on behalf of a withdrawal.",
	Flags: append([]cli.Flag{homeCliFlag, callerCliFlag}, depositCliFlags...),
	Action: func(ctx *cli.Context) error {
		caller, err := addressFlag(ctx, callerFlag)
		if err != nil {
			return err
		}
		d, err := depositFromFlags(ctx)
		if err != nil {
			return err
		}
		id := codec.DepositID(d.recipient, d.amount, d.txID, d.vout)
		return withBascule(ctx, func(b *service.Bascule) error {
			if err := b.ValidateWithdrawal(caller, id, d.recipient, d.amount, d.txID, d.vout); err != nil {
				return err
			}
			return printDeposit(b, id)
		})
	},
}

var showCommand = cli.Command{
	Name:      "show",
	Usage:     "Print the bascule state, or the state of one deposit.",
	ArgsUsage: "[deposit-id]",
	Flags:     []cli.Flag{homeCliFlag},
	Action: func(ctx *cli.Context) error {
		return withBascule(ctx, func(b *service.Bascule) error {
			if ctx.NArg() == 0 {
				data, err := b.Data()
				if err != nil {
					return err
				}
				printRespJSON(data)
				return nil
			}
			id, err := types.NewHashFromHex(ctx.Args().First())
			if err != nil {
				return err
			}
			return printDeposit(b, id)
		})
	},
}

func adminAction(ctx *cli.Context, f func(b *service.Bascule, caller, target types.Address) error) error {
	caller, err := addressFlag(ctx, callerFlag)
	if err != nil {
		return err
	}
	if ctx.NArg() != 1 {
		return fmt.Errorf("expected exactly one address argument")
	}
	target, err := types.NewAddressFromHex(ctx.Args().First())
	if err != nil {
		return err
	}
	return withBascule(ctx, func(b *service.Bascule) error {
		return f(b, caller, target)
	})
}

func printDeposit(b *service.Bascule, id types.Hash) error {
	d, err := b.Deposit(id)
	if err != nil {
		return err
	}
	printRespJSON(d)
	return nil
}
