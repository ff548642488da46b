package codec

import (
	"fmt"
	"math/big"

	errorsmod "cosmossdk.io/errors"
	"github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/lombard-finance/lbtc-core/types"
)

var valsetArguments abi.Arguments

func init() {
	uint256Ty := mustType("uint256")
	valsetArguments = abi.Arguments{
		{Name: "epoch", Type: uint256Ty},
		{Name: "validators", Type: mustType("bytes[]")},
		{Name: "weights", Type: mustType("uint256[]")},
		{Name: "weightThreshold", Type: uint256Ty},
		{Name: "height", Type: uint256Ty},
	}
}

func mustType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(fmt.Sprintf("invalid abi type %s: %v", t, err))
	}
	return typ
}

// ValsetAction is a proposed validator set as validators sign it.
type ValsetAction struct {
	Epoch           uint64
	Validators      []types.ValidatorPubKey
	Weights         []uint64
	WeightThreshold uint64
	Height          uint64
}

// Encode produces NewValsetAction || abi.encode(epoch, validators, weights,
// weightThreshold, height).
func (a *ValsetAction) Encode() ([]byte, error) {
	validators := make([][]byte, len(a.Validators))
	for i := range a.Validators {
		validators[i] = a.Validators[i][:]
	}
	weights := make([]*big.Int, len(a.Weights))
	for i, w := range a.Weights {
		weights[i] = new(big.Int).SetUint64(w)
	}

	packed, err := valsetArguments.Pack(
		new(big.Int).SetUint64(a.Epoch),
		validators,
		weights,
		new(big.Int).SetUint64(a.WeightThreshold),
		new(big.Int).SetUint64(a.Height),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to abi encode valset payload: %w", err)
	}

	return append(NewValsetAction[:], packed...), nil
}

// Hash is the digest of the encoded payload.
func (a *ValsetAction) Hash() (types.Hash, error) {
	b, err := a.Encode()
	if err != nil {
		return types.Hash{}, err
	}
	return PayloadHash(b), nil
}

// DecodeValsetPayload parses an encoded validator set payload.
func DecodeValsetPayload(b []byte) (*ValsetAction, error) {
	if len(b) < 4 {
		return nil, errorsmod.Wrap(types.ErrInvalidPayloadLength, "valset payload too short")
	}
	var sel [4]byte
	copy(sel[:], b[:4])
	if sel != NewValsetAction {
		return nil, errorsmod.Wrapf(types.ErrInvalidPrefix, "got %x", sel)
	}

	values, err := valsetArguments.Unpack(b[4:])
	if err != nil {
		return nil, errorsmod.Wrap(types.ErrInvalidPayloadLength, err.Error())
	}
	if len(values) != len(valsetArguments) {
		return nil, errorsmod.Wrapf(types.ErrInvalidPayloadLength, "got %d fields", len(values))
	}

	epoch, err := bigToUint64(values[0].(*big.Int))
	if err != nil {
		return nil, err
	}
	threshold, err := bigToUint64(values[3].(*big.Int))
	if err != nil {
		return nil, err
	}
	height, err := bigToUint64(values[4].(*big.Int))
	if err != nil {
		return nil, err
	}

	rawValidators := values[1].([][]byte)
	validators := make([]types.ValidatorPubKey, len(rawValidators))
	for i, v := range rawValidators {
		if len(v) != types.ValidatorPubKeySize {
			return nil, errorsmod.Wrapf(types.ErrInvalidValidatorKey, "index %d has %d bytes", i, len(v))
		}
		copy(validators[i][:], v)
	}

	rawWeights := values[2].([]*big.Int)
	weights := make([]uint64, len(rawWeights))
	for i, w := range rawWeights {
		if weights[i], err = bigToUint64(w); err != nil {
			return nil, err
		}
	}

	return &ValsetAction{
		Epoch:           epoch,
		Validators:      validators,
		Weights:         weights,
		WeightThreshold: threshold,
		Height:          height,
	}, nil
}

func bigToUint64(v *big.Int) (uint64, error) {
	if v.Sign() < 0 || !v.IsUint64() {
		return 0, errorsmod.Wrapf(types.ErrValueTooLarge, "%s does not fit u64", v)
	}
	return v.Uint64(), nil
}
