package util

import (
	"fmt"
	"path/filepath"

	"github.com/juju/fslock"
)

const homeLockFileName = ".lock"

// LockHome takes an exclusive lock on the home directory so that only one
// process at a time works on its database. The caller releases it with
// Unlock.
func LockHome(homePath string) (*fslock.Lock, error) {
	lock := fslock.New(filepath.Join(homePath, homeLockFileName))
	if err := lock.TryLock(); err != nil {
		return nil, fmt.Errorf("home directory %s is in use: %w", homePath, err)
	}
	return lock, nil
}
