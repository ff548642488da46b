package util_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lombard-finance/lbtc-core/util"
)

func TestMakeDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.False(t, util.FileExists(dir))
	require.NoError(t, util.MakeDirectory(dir))
	require.True(t, util.FileExists(dir))
	// creating it again is fine
	require.NoError(t, util.MakeDirectory(dir))
}

func TestCleanAndExpandPath(t *testing.T) {
	t.Setenv("LBTC_TEST_DIR", "/tmp/lbtc")
	require.Equal(t, "/tmp/lbtc/home", util.CleanAndExpandPath("$LBTC_TEST_DIR/./home/"))
	require.Equal(t, "", util.CleanAndExpandPath(""))
	require.False(t, strings.HasPrefix(util.CleanAndExpandPath("~/x"), "~"))
}
