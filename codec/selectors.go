package codec

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/lombard-finance/lbtc-core/types"
)

// Action selectors prefixing every signed payload. Each one is the first four
// bytes of the keccak256 hash of its signature string.
var (
	// DepositBtcAction = keccak256("payload(bytes32,bytes32,uint64,bytes32,uint32)")[:4]
	DepositBtcAction = [4]byte{0xf2, 0xe7, 0x3f, 0x7c}
	// FeeApprovalAction = keccak256("feeApproval(bytes32,bytes32,uint256,uint256)")[:4]
	FeeApprovalAction = [4]byte{0x04, 0xac, 0xbb, 0xb2}
	// NewValsetAction = keccak256("payload(uint256,bytes[],uint256[],uint256,uint256)")[:4]
	NewValsetAction = [4]byte{0x4a, 0xab, 0x1d, 0x6f}
)

const (
	DepositBtcSignature  = "payload(bytes32,bytes32,uint64,bytes32,uint32)"
	FeeApprovalSignature = "feeApproval(bytes32,bytes32,uint256,uint256)"
	NewValsetSignature   = "payload(uint256,bytes[],uint256[],uint256,uint256)"
)

var (
	// MainnetChainID is the destination chain id of mainnet deployments.
	MainnetChainID = mustHash("02296998a6f8e2a784db5d9f95e18fc23f70441a1039446801089879b08c7ef0")
	// DevnetChainID is the destination chain id of devnet deployments.
	DevnetChainID = mustHash("0259db5080fc2c6d3bcf7ca90712d3c2e5e6c28f27f0dfbb9953bdb0894c03ab")
)

// Selector derives the 4-byte action selector of a signature string.
func Selector(signature string) [4]byte {
	var sel [4]byte
	copy(sel[:], crypto.Keccak256([]byte(signature))[:4])
	return sel
}

// ChainIDForNetwork maps a network name to its chain id.
func ChainIDForNetwork(network string) (types.Hash, error) {
	switch network {
	case "mainnet":
		return MainnetChainID, nil
	case "devnet":
		return DevnetChainID, nil
	default:
		return types.Hash{}, fmt.Errorf("unsupported network: %s", network)
	}
}

// PayloadHash is the digest validators sign and records are keyed by.
func PayloadHash(payload []byte) types.Hash {
	return types.Hash(chainhash.HashH(payload))
}

func mustHash(s string) types.Hash {
	h, err := types.NewHashFromHex(s)
	if err != nil {
		panic(err)
	}
	return h
}
