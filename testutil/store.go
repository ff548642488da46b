package testutil

import (
	"testing"

	"github.com/lightningnetwork/lnd/kvdb"
	"github.com/stretchr/testify/require"

	"github.com/lombard-finance/lbtc-core/config"
)

// OpenTestBackend opens a fresh bolt backend under a temporary home directory
// that is closed when the test ends.
func OpenTestBackend(t *testing.T) kvdb.Backend {
	homePath := t.TempDir()
	cfg := config.DefaultDBConfigWithHomePath(homePath)

	db, err := cfg.GetDbBackend()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	return db
}
