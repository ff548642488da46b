package bitcoin

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/mempool"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"

	"github.com/lombard-finance/lbtc-core/types"
)

const (
	P2WPKHScriptLen      = 22
	P2WSHOrP2TRScriptLen = 34
)

// OutputType is a redeemable output script template.
type OutputType int

const (
	OutputUnsupported OutputType = iota
	OutputP2WPKH
	OutputP2WSH
	OutputP2TR
)

func (o OutputType) String() string {
	switch o {
	case OutputP2WPKH:
		return "p2wpkh"
	case OutputP2WSH:
		return "p2wsh"
	case OutputP2TR:
		return "p2tr"
	default:
		return "unsupported"
	}
}

// ClassifyScript returns the template of a redemption output script. Only
// segwit v0 key/script hashes and taproot outputs can be redeemed to.
func ClassifyScript(script []byte) (OutputType, error) {
	switch txscript.GetScriptClass(script) {
	case txscript.WitnessV0PubKeyHashTy:
		if len(script) == P2WPKHScriptLen {
			return OutputP2WPKH, nil
		}
	case txscript.WitnessV0ScriptHashTy:
		if len(script) == P2WSHOrP2TRScriptLen {
			return OutputP2WSH, nil
		}
	case txscript.WitnessV1TaprootTy:
		if len(script) == P2WSHOrP2TRScriptLen {
			return OutputP2TR, nil
		}
	}
	return OutputUnsupported, errorsmod.Wrapf(types.ErrScriptPubkeyUnsupported, "script %x", script)
}

// IsDust reports whether an output of amount satoshis paying to script is
// dust under the relay policy, with dustFeeRate as the minimum relay fee in
// satoshis per kvB.
func IsDust(script []byte, amount uint64, dustFeeRate uint64) bool {
	if amount > uint64(btcutil.MaxSatoshi) {
		return false
	}
	return mempool.IsDust(wire.NewTxOut(int64(amount), script), btcutil.Amount(dustFeeRate))
}

// ScriptForAddress returns the output script paying to an encoded address.
func ScriptForAddress(addr string, params *chaincfg.Params) ([]byte, error) {
	decoded, err := btcutil.DecodeAddress(addr, params)
	if err != nil {
		return nil, err
	}
	return txscript.PayToAddrScript(decoded)
}
