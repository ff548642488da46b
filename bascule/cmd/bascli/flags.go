package main

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/urfave/cli"

	lbtccfg "github.com/lombard-finance/lbtc-core/lbtc/config"
	"github.com/lombard-finance/lbtc-core/types"
)

const (
	homeFlag      = "home"
	callerFlag    = "caller"
	recipientFlag = "recipient"
	amountFlag    = "amount"
	txIDFlag      = "txid"
	voutFlag      = "vout"
	depositFlag   = "deposit-id"
)

var (
	homeCliFlag = cli.StringFlag{
		Name:  homeFlag,
		Usage: "The path to the lbtcd home directory",
		Value: lbtccfg.DefaultLBTCDir,
	}
	callerCliFlag = cli.StringFlag{
		Name:     callerFlag,
		Usage:    "Hex encoded address the operation is signed by",
		Required: true,
	}
	depositCliFlags = []cli.Flag{
		cli.StringFlag{
			Name:     recipientFlag,
			Usage:    "Hex encoded address credited by the deposit",
			Required: true,
		},
		cli.Uint64Flag{
			Name:     amountFlag,
			Usage:    "Deposited satoshis",
			Required: true,
		},
		cli.StringFlag{
			Name:     txIDFlag,
			Usage:    "Bitcoin transaction id of the deposit as shown by explorers",
			Required: true,
		},
		cli.UintFlag{
			Name:  voutFlag,
			Usage: "Output index of the deposit",
		},
	}
)

func addressFlag(ctx *cli.Context, name string) (types.Address, error) {
	addr, err := types.NewAddressFromHex(ctx.String(name))
	if err != nil {
		return types.ZeroAddress, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return addr, nil
}

type depositArgs struct {
	recipient types.Address
	amount    uint64
	txID      types.Hash
	vout      uint32
}

// depositFromFlags reads a deposit described by its outpoint. The txid is
// taken in display order and kept in internal byte order.
func depositFromFlags(ctx *cli.Context) (*depositArgs, error) {
	recipient, err := addressFlag(ctx, recipientFlag)
	if err != nil {
		return nil, err
	}
	txID, err := chainhash.NewHashFromStr(ctx.String(txIDFlag))
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", txIDFlag, err)
	}
	return &depositArgs{
		recipient: recipient,
		amount:    ctx.Uint64(amountFlag),
		txID:      types.Hash(*txID),
		vout:      uint32(ctx.Uint(voutFlag)),
	}, nil
}
