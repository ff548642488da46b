package util_test

import (
	"testing"

	"github.com/juju/fslock"
	"github.com/stretchr/testify/require"

	"github.com/lombard-finance/lbtc-core/util"
)

func TestLockHome(t *testing.T) {
	home := t.TempDir()

	lock, err := util.LockHome(home)
	require.NoError(t, err)

	_, err = util.LockHome(home)
	require.ErrorIs(t, err, fslock.ErrLocked)

	require.NoError(t, lock.Unlock())
	again, err := util.LockHome(home)
	require.NoError(t, err)
	require.NoError(t, again.Unlock())
}
