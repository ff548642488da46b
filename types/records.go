package types

// SignatureTally tracks which validators of one epoch signed a payload hash
// and the weight they add up to. Signed holds the words of a fixed-capacity
// bitmap indexed by validator position.
type SignatureTally struct {
	Epoch  uint64
	Signed []uint64
	Weight uint64
}

// MintPayload is a deposit attestation collecting validator signatures. It is
// keyed by its hash alone, so there is one canonical record per deposit.
type MintPayload struct {
	Hash    Hash
	Payload []byte
	Tally   SignatureTally
	Minted  bool
}

// ValsetMetadata stages the validators and weights of a proposed set before
// the payload committing to them is created.
type ValsetMetadata struct {
	Hash       Hash
	Creator    Address
	Validators []ValidatorPubKey
	Weights    []uint64
}

// ValsetPayload is a proposed validator set keyed by (hash, creator). It
// holds the validators and weights the hash commits to, and its tally is
// pinned to the epoch active when it was created.
type ValsetPayload struct {
	Hash            Hash
	Creator         Address
	Epoch           uint64
	Validators      []ValidatorPubKey
	Weights         []uint64
	WeightThreshold uint64
	Height          uint64
	Tally           SignatureTally
}

// UnstakeInfo is an entry of the append-only redemption ledger.
type UnstakeInfo struct {
	Index        uint64
	From         Address
	ScriptPubkey []byte
	Amount       uint64
}
