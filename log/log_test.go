package log_test

import (
	"bytes"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lombard-finance/lbtc-core/log"
	"github.com/lombard-finance/lbtc-core/testutil"
	"github.com/lombard-finance/lbtc-core/types"
	"github.com/lombard-finance/lbtc-core/util"
)

func TestNewRootLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := log.NewRootLogger("logfmt", "info", &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown", zap.Uint64("epoch", 3))
	require.NoError(t, logger.Sync())
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "msg=shown")
	require.Contains(t, buf.String(), "epoch=3")

	_, err = log.NewRootLogger("xml", "info", &buf)
	require.Error(t, err)
	_, err = log.NewRootLogger("json", "verbose", &buf)
	require.Error(t, err)
}

func TestParseLevelAndEncoder(t *testing.T) {
	lvl, err := log.ParseLevel("WARNING")
	require.NoError(t, err)
	require.Equal(t, zap.WarnLevel, lvl)
	_, err = log.ParseLevel("trace")
	require.Error(t, err)

	for _, format := range []string{"json", "console", "auto", "logfmt"} {
		_, err := log.NewEncoder(format)
		require.NoError(t, err, format)
	}
	_, err = log.NewEncoder("yaml")
	require.Error(t, err)
}

func TestNewRootLoggerWithFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "lbtcd.log")
	logger, err := log.NewRootLoggerWithFile(logFile, "json", "debug")
	require.NoError(t, err)
	logger.Debug("written")
	require.NoError(t, logger.Sync())
	require.True(t, util.FileExists(logFile))
}

func TestEventLogger(t *testing.T) {
	r := rand.New(rand.NewSource(91))
	core, logs := observer.New(zap.InfoLevel)
	sink := log.NewEventLogger(zap.New(core))

	recipient := testutil.GenRandomAddress(r)
	evs := types.Events{}
	evs.Emit(types.MintProofConsumed{Recipient: recipient, Amount: 990, Fee: 10})
	evs.Emit(types.PauseEnabled{Enabled: true})
	evs.PublishTo(sink)

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, "MintProofConsumed", entries[0].Message)
	require.Equal(t, "events", entries[0].LoggerName)
	fields := entries[0].ContextMap()
	require.Equal(t, recipient.String(), fields["recipient"])
	require.Equal(t, uint64(990), fields["amount"])
	require.Equal(t, "PauseEnabled", entries[1].Message)
}
