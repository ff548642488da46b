package types

// MaxWithdrawalValidators is the capacity of the bascule validator allowlist.
const MaxWithdrawalValidators = 10

type DepositState uint8

const (
	DepositStateUnreported DepositState = iota
	DepositStateReported
	DepositStateWithdrawn
)

func (s DepositState) String() string {
	switch s {
	case DepositStateUnreported:
		return "unreported"
	case DepositStateReported:
		return "reported"
	case DepositStateWithdrawn:
		return "withdrawn"
	default:
		return "unknown"
	}
}

func (s DepositState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Deposit is the bascule record of one Bitcoin deposit. Missing records are
// Unreported.
type Deposit struct {
	ID    Hash
	State DepositState
}

// BasculeData is the singleton state of the deposit validation engine.
// A zero ValidateThreshold means every withdrawal must be reported first.
type BasculeData struct {
	Admin                Address
	PendingAdmin         Address
	Pauser               Address
	DepositReporter      Address
	WithdrawalValidators []Address
	IsPaused             bool
	ValidateThreshold    uint64
}

func (b *BasculeData) IsWithdrawalValidator(addr Address) bool {
	return containsAddress(b.WithdrawalValidators, addr)
}
