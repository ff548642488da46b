package types

import (
	"errors"

	errorsmod "cosmossdk.io/errors"
)

const (
	LBTCCodespace    = "lbtc"
	BasculeCodespace = "bascule"
)

// ErrorCategory groups registered errors by the range their code falls in.
type ErrorCategory int

const (
	CategoryUnknown ErrorCategory = iota
	CategoryAuthorization
	CategoryState
	CategoryValidation
	CategoryResourceLimit
)

func (c ErrorCategory) String() string {
	switch c {
	case CategoryAuthorization:
		return "AuthorizationError"
	case CategoryState:
		return "StateError"
	case CategoryValidation:
		return "ValidationError"
	case CategoryResourceLimit:
		return "ResourceLimitError"
	default:
		return "UnknownError"
	}
}

// authorization errors
var (
	ErrUnauthorized  = errorsmod.Register(LBTCCodespace, 100, "unauthorized function call")
	ErrNotAdmin      = errorsmod.Register(LBTCCodespace, 101, "caller is not the admin")
	ErrNotOperator   = errorsmod.Register(LBTCCodespace, 102, "caller is not the operator")
	ErrNotPauser     = errorsmod.Register(LBTCCodespace, 103, "caller is not a pauser")
	ErrNotClaimer    = errorsmod.Register(LBTCCodespace, 104, "caller is not a claimer")
	ErrNotMinter     = errorsmod.Register(LBTCCodespace, 105, "caller is not a minter")
	ErrNotCreator    = errorsmod.Register(LBTCCodespace, 106, "caller is not the metadata creator")
	ErrNotPendingAdm = errorsmod.Register(LBTCCodespace, 107, "caller is not the pending admin")
)

// state errors
var (
	ErrPaused              = errorsmod.Register(LBTCCodespace, 200, "program is paused")
	ErrNotPaused           = errorsmod.Register(LBTCCodespace, 201, "program is not paused")
	ErrAlreadyMinted       = errorsmod.Register(LBTCCodespace, 202, "mint payload already used")
	ErrAlreadySet          = errorsmod.Register(LBTCCodespace, 203, "validator set already set")
	ErrWithdrawalsDisabled = errorsmod.Register(LBTCCodespace, 204, "withdrawals are disabled")
	ErrAlreadyExists       = errorsmod.Register(LBTCCodespace, 205, "record already exists")
	ErrNoValidatorSet      = errorsmod.Register(LBTCCodespace, 206, "no validator set exists")
	ErrNotEnoughSignatures = errorsmod.Register(LBTCCodespace, 207, "not enough valid signatures")
	ErrNotInitialized      = errorsmod.Register(LBTCCodespace, 208, "program is not initialized")
	ErrAlreadyInitialized  = errorsmod.Register(LBTCCodespace, 209, "program is already initialized")
	ErrNotFound            = errorsmod.Register(LBTCCodespace, 210, "record not found")
	ErrEpochMismatch       = errorsmod.Register(LBTCCodespace, 211, "payload was created against a retired validator set")
	ErrInsufficientBalance = errorsmod.Register(LBTCCodespace, 212, "insufficient balance")
)

// validation errors
var (
	ErrLengthMismatch           = errorsmod.Register(LBTCCodespace, 300, "signatures and indices length mismatch")
	ErrUnknownValidator         = errorsmod.Register(LBTCCodespace, 301, "validator index out of range")
	ErrHashMismatch             = errorsmod.Register(LBTCCodespace, 302, "passed payload hash does not match computed hash")
	ErrInvalidPrefix            = errorsmod.Register(LBTCCodespace, 303, "invalid action prefix")
	ErrInvalidChainID           = errorsmod.Register(LBTCCodespace, 304, "invalid chain id")
	ErrInvalidVerifyingContract = errorsmod.Register(LBTCCodespace, 305, "invalid verifying contract")
	ErrPermitExpired            = errorsmod.Register(LBTCCodespace, 306, "fee permit expired")
	ErrInvalidSignature         = errorsmod.Register(LBTCCodespace, 307, "fee permit signature invalid")
	ErrScriptPubkeyUnsupported  = errorsmod.Register(LBTCCodespace, 308, "script pubkey is unsupported")
	ErrBelowDustLimit           = errorsmod.Register(LBTCCodespace, 309, "redeemed amount is below the BTC dust limit")
	ErrFeeExceedsAmount         = errorsmod.Register(LBTCCodespace, 310, "fee is greater than or equal to amount")
	ErrRecipientMismatch        = errorsmod.Register(LBTCCodespace, 311, "mismatch between mint payload and passed recipient")
	ErrInvalidTreasury          = errorsmod.Register(LBTCCodespace, 312, "invalid treasury")
	ErrInvalidEpoch             = errorsmod.Register(LBTCCodespace, 313, "invalid epoch")
	ErrInvalidValidatorSetSize  = errorsmod.Register(LBTCCodespace, 314, "invalid validator set size")
	ErrInvalidWeightThreshold   = errorsmod.Register(LBTCCodespace, 315, "invalid weight threshold")
	ErrValidatorsWeightsLength  = errorsmod.Register(LBTCCodespace, 316, "mismatch between validators length and weights length")
	ErrZeroWeight               = errorsmod.Register(LBTCCodespace, 317, "weight for validator is zero")
	ErrWeightsBelowThreshold    = errorsmod.Register(LBTCCodespace, 318, "sum of weights is below the threshold")
	ErrDuplicateValidator       = errorsmod.Register(LBTCCodespace, 319, "duplicate validator")
	ErrInvalidValidatorKey      = errorsmod.Register(LBTCCodespace, 320, "invalid validator public key")
	ErrInvalidPayloadLength     = errorsmod.Register(LBTCCodespace, 321, "invalid payload length")
	ErrValueTooLarge            = errorsmod.Register(LBTCCodespace, 322, "encoded value does not fit the target width")
	ErrFeeTooHigh               = errorsmod.Register(LBTCCodespace, 323, "fee exceeds the maximum allowed fee")
	ErrInvalidAmount            = errorsmod.Register(LBTCCodespace, 324, "invalid amount")
	ErrZeroAddress              = errorsmod.Register(LBTCCodespace, 325, "address must not be zero")
)

// resource limit errors
var (
	ErrMaxClaimers = errorsmod.Register(LBTCCodespace, 400, "maximum number of claimers reached")
	ErrMaxPausers  = errorsmod.Register(LBTCCodespace, 401, "maximum number of pausers reached")
	ErrMaxMinters  = errorsmod.Register(LBTCCodespace, 402, "maximum number of minters reached")
)

// bascule errors
var (
	ErrBasculeNotAdmin        = errorsmod.Register(BasculeCodespace, 100, "account is not allowed to perform admin operations")
	ErrBasculeNotReporter     = errorsmod.Register(BasculeCodespace, 101, "account is not allowed to report deposits")
	ErrBasculeNotPauser       = errorsmod.Register(BasculeCodespace, 102, "account is not allowed to pause the program")
	ErrBasculeNotValidator    = errorsmod.Register(BasculeCodespace, 103, "account is not allowed to validate withdrawals")
	ErrBasculeNotPendingAdmin = errorsmod.Register(BasculeCodespace, 104, "account is not the pending admin")

	ErrBasculePaused             = errorsmod.Register(BasculeCodespace, 200, "bascule is paused")
	ErrAlreadyWithdrawn          = errorsmod.Register(BasculeCodespace, 201, "the deposit has already been withdrawn")
	ErrBasculeNotInitialized     = errorsmod.Register(BasculeCodespace, 202, "bascule is not initialized")
	ErrBasculeAlreadyInitialized = errorsmod.Register(BasculeCodespace, 203, "bascule is already initialized")

	ErrWithdrawalFailedValidation = errorsmod.Register(BasculeCodespace, 300, "the withdrawal amount is not in the history above the non-zero validation threshold")
	ErrInvalidDepositID           = errorsmod.Register(BasculeCodespace, 301, "the deposit id does not match the deposit data")

	ErrMaxValidators = errorsmod.Register(BasculeCodespace, 400, "maximum number of withdrawal validators reached")
)

// CategoryOf classifies a (possibly wrapped) registered error by its code
// range. Unregistered errors are CategoryUnknown.
func CategoryOf(err error) ErrorCategory {
	var regErr *errorsmod.Error
	if !errors.As(err, &regErr) {
		return CategoryUnknown
	}
	if regErr.Codespace() != LBTCCodespace && regErr.Codespace() != BasculeCodespace {
		return CategoryUnknown
	}

	switch regErr.ABCICode() / 100 {
	case 1:
		return CategoryAuthorization
	case 2:
		return CategoryState
	case 3:
		return CategoryValidation
	case 4:
		return CategoryResourceLimit
	default:
		return CategoryUnknown
	}
}
