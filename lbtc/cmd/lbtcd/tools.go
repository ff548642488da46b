package main

import (
	"encoding/hex"
	"fmt"

	"github.com/urfave/cli"

	"github.com/lombard-finance/lbtc-core/bitcoin"
	"github.com/lombard-finance/lbtc-core/codec"
	lbtccfg "github.com/lombard-finance/lbtc-core/lbtc/config"
)

var payloadHashCommand = cli.Command{
	Name:      "payload-hash",
	Usage:     "Print the hash a hex encoded mint, valset or fee payload is signed and stored under.",
	ArgsUsage: "<payload-hex>",
	Action: func(ctx *cli.Context) error {
		if ctx.NArg() != 1 {
			return fmt.Errorf("expected exactly one payload argument")
		}
		payload, err := hex.DecodeString(ctx.Args().First())
		if err != nil {
			return fmt.Errorf("invalid payload: %w", err)
		}
		fmt.Println(codec.PayloadHash(payload).String())
		return nil
	},
}

var scriptCommand = cli.Command{
	Name:      "script",
	Usage:     "Print the output script of a Bitcoin address and whether it can be redeemed to.",
	ArgsUsage: "<address>",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  bitcoinNetworkFlag,
			Usage: "Bitcoin network the address belongs to (mainnet|testnet|regtest|simnet|signet)",
			Value: "mainnet",
		},
	},
	Action: func(ctx *cli.Context) error {
		if ctx.NArg() != 1 {
			return fmt.Errorf("expected exactly one address argument")
		}
		params, err := lbtccfg.NetParams(ctx.String(bitcoinNetworkFlag))
		if err != nil {
			return err
		}
		script, err := bitcoin.ScriptForAddress(ctx.Args().First(), params)
		if err != nil {
			return err
		}
		outputType, err := bitcoin.ClassifyScript(script)
		if err != nil {
			return err
		}
		printRespJSON(map[string]string{
			"script_pubkey": hex.EncodeToString(script),
			"type":          outputType.String(),
		})
		return nil
	},
}
