package store

import "errors"

var (
	// ErrCorruptedLBTCDb For some reason, db on disk representation have changed
	ErrCorruptedLBTCDb = errors.New("lbtc db is corrupted")

	// ErrConfigNotFound The program has not been initialized yet
	ErrConfigNotFound = errors.New("program config not found")

	// ErrMintPayloadNotFound The mint payload we try to fetch is not found in db
	ErrMintPayloadNotFound = errors.New("mint payload not found")

	// ErrDuplicateMintPayload The mint payload we try to add already exists in db
	ErrDuplicateMintPayload = errors.New("mint payload already exists")

	// ErrValsetMetadataNotFound The valset metadata we try to fetch is not found in db
	ErrValsetMetadataNotFound = errors.New("valset metadata not found")

	// ErrDuplicateValsetMetadata The valset metadata we try to add already exists in db
	ErrDuplicateValsetMetadata = errors.New("valset metadata already exists")

	// ErrValsetPayloadNotFound The valset payload we try to fetch is not found in db
	ErrValsetPayloadNotFound = errors.New("valset payload not found")

	// ErrDuplicateValsetPayload The valset payload we try to add already exists in db
	ErrDuplicateValsetPayload = errors.New("valset payload already exists")

	// ErrUnstakeInfoNotFound The unstake entry we try to fetch is not found in db
	ErrUnstakeInfoNotFound = errors.New("unstake info not found")

	// ErrDuplicateUnstakeInfo The unstake index we try to write is already used
	ErrDuplicateUnstakeInfo = errors.New("unstake info already exists")
)
