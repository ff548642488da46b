package codec

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/lombard-finance/lbtc-core/types"
)

// depositIDTag identifies this chain family in deposit ids: length(3) || "SOL".
var depositIDTag = [4]byte{0x03, 0x53, 0x4f, 0x4c}

// DepositID computes the cross-chain identifier of a Bitcoin deposit:
//
//	keccak256(0x00*32 || tag || recipient || amount (BE u64) || txId || vout (BE u32))
func DepositID(recipient types.Address, amount uint64, txID types.Hash, vout uint32) types.Hash {
	preimage := make([]byte, 0, 32+4+32+8+32+4)
	preimage = append(preimage, make([]byte, 32)...)
	preimage = append(preimage, depositIDTag[:]...)
	preimage = append(preimage, recipient[:]...)
	preimage = binary.BigEndian.AppendUint64(preimage, amount)
	preimage = append(preimage, txID[:]...)
	preimage = binary.BigEndian.AppendUint32(preimage, vout)

	var id types.Hash
	copy(id[:], crypto.Keccak256(preimage))
	return id
}
