package store

import "errors"

var (
	// ErrCorruptedBasculeDb For some reason, db on disk representation have changed
	ErrCorruptedBasculeDb = errors.New("bascule db is corrupted")

	// ErrDataNotFound Bascule has not been initialized yet
	ErrDataNotFound = errors.New("bascule data not found")
)
