package codec

import (
	"math"

	errorsmod "cosmossdk.io/errors"
	"github.com/holiman/uint256"

	"github.com/lombard-finance/lbtc-core/types"
)

// WordSize is the width of one ABI slot.
const WordSize = 32

func readUint64Word(word []byte) (uint64, error) {
	v := new(uint256.Int).SetBytes32(word)
	if !v.IsUint64() {
		return 0, errorsmod.Wrapf(types.ErrValueTooLarge, "%s does not fit u64", v.Hex())
	}
	return v.Uint64(), nil
}

func readUint32Word(word []byte) (uint32, error) {
	v := new(uint256.Int).SetBytes32(word)
	if !v.IsUint64() || v.Uint64() > math.MaxUint32 {
		return 0, errorsmod.Wrapf(types.ErrValueTooLarge, "%s does not fit u32", v.Hex())
	}
	return uint32(v.Uint64()), nil
}

func putUint64Word(dst []byte, v uint64) {
	word := uint256.NewInt(v).Bytes32()
	copy(dst[:WordSize], word[:])
}
