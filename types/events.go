package types

// Event is a notification consumed by off-chain relayers. Events produced by
// an operation are published only after its transaction commits.
type Event interface {
	EventName() string
}

// EventSink receives committed events.
type EventSink interface {
	Publish(ev Event)
}

// Events buffers the events of one operation.
type Events []Event

func (e *Events) Emit(ev Event) {
	*e = append(*e, ev)
}

// PublishTo hands every buffered event to each sink, in emission order.
func (e Events) PublishTo(sinks ...EventSink) {
	for _, ev := range e {
		for _, s := range sinks {
			s.Publish(ev)
		}
	}
}

type MintProofConsumed struct {
	Recipient   Address
	PayloadHash Hash
	Payload     []byte
	Amount      uint64
	Fee         uint64
}

func (MintProofConsumed) EventName() string { return "MintProofConsumed" }

type MintPayloadCreated struct {
	PayloadHash Hash
}

func (MintPayloadCreated) EventName() string { return "MintPayloadCreated" }

type SignaturesAdded struct {
	PayloadHash Hash
	Added       int
	Weight      uint64
}

func (SignaturesAdded) EventName() string { return "SignaturesAdded" }

type ValsetPayloadCreated struct {
	PayloadHash     Hash
	Creator         Address
	Epoch           uint64
	WeightThreshold uint64
	Height          uint64
}

func (ValsetPayloadCreated) EventName() string { return "ValsetPayloadCreated" }

type ValidatorSetUpdated struct {
	Epoch           uint64
	Validators      []ValidatorPubKey
	Weights         []uint64
	WeightThreshold uint64
}

func (ValidatorSetUpdated) EventName() string { return "ValidatorSetUpdated" }

type UnstakeRequest struct {
	Index        uint64
	From         Address
	ScriptPubkey []byte
	Amount       uint64
}

func (UnstakeRequest) EventName() string { return "UnstakeRequest" }

type OwnershipTransferStarted struct {
	PreviousAdmin Address
	PendingAdmin  Address
}

func (OwnershipTransferStarted) EventName() string { return "OwnershipTransferStarted" }

type OwnershipTransferred struct {
	PreviousAdmin Address
	NewAdmin      Address
}

func (OwnershipTransferred) EventName() string { return "OwnershipTransferred" }

type OperatorSet struct {
	Operator Address
}

func (OperatorSet) EventName() string { return "OperatorSet" }

type TreasuryChanged struct {
	Treasury Address
}

func (TreasuryChanged) EventName() string { return "TreasuryChanged" }

type WithdrawalsEnabled struct {
	Enabled bool
}

func (WithdrawalsEnabled) EventName() string { return "WithdrawalsEnabled" }

type BasculeEnabled struct {
	Enabled bool
}

func (BasculeEnabled) EventName() string { return "BasculeEnabled" }

type MintFeeSet struct {
	MintFee uint64
}

func (MintFeeSet) EventName() string { return "MintFeeSet" }

type BurnCommissionSet struct {
	BurnCommission uint64
}

func (BurnCommissionSet) EventName() string { return "BurnCommissionSet" }

type DustFeeRateSet struct {
	Rate uint64
}

func (DustFeeRateSet) EventName() string { return "DustFeeRateSet" }

type RoleMemberChanged struct {
	Role    Role
	Member  Address
	Granted bool
}

func (RoleMemberChanged) EventName() string { return "RoleMemberChanged" }

type PauseEnabled struct {
	Enabled bool
}

func (PauseEnabled) EventName() string { return "PauseEnabled" }

// bascule events

type UpdateValidateThreshold struct {
	OldThreshold uint64
	NewThreshold uint64
}

func (UpdateValidateThreshold) EventName() string { return "UpdateValidateThreshold" }

type DepositReported struct {
	DepositID Hash
}

func (DepositReported) EventName() string { return "DepositReported" }

type AlreadyReported struct {
	DepositID Hash
	Status    DepositState
}

func (AlreadyReported) EventName() string { return "AlreadyReported" }

type WithdrawalValidated struct {
	DepositID Hash
	Amount    uint64
}

func (WithdrawalValidated) EventName() string { return "WithdrawalValidated" }

type WithdrawalNotValidated struct {
	DepositID Hash
	Amount    uint64
}

func (WithdrawalNotValidated) EventName() string { return "WithdrawalNotValidated" }

type BasculeAdminChanged struct {
	PreviousAdmin Address
	NewAdmin      Address
}

func (BasculeAdminChanged) EventName() string { return "BasculeAdminChanged" }

type BasculeRoleGranted struct {
	Role    string
	Account Address
	Granted bool
}

func (BasculeRoleGranted) EventName() string { return "BasculeRoleGranted" }

type BasculePauseChanged struct {
	Paused bool
}

func (BasculePauseChanged) EventName() string { return "BasculePauseChanged" }
