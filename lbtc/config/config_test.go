package config_test

import (
	"math/rand"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/require"

	"github.com/lombard-finance/lbtc-core/codec"
	lbtccfg "github.com/lombard-finance/lbtc-core/lbtc/config"
	"github.com/lombard-finance/lbtc-core/testutil"
)

func TestConfigFileRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(71))
	homePath := t.TempDir()

	_, err := lbtccfg.LoadConfig(homePath)
	require.Error(t, err)

	cfg := lbtccfg.DefaultConfigWithHomePath(homePath)
	programID := testutil.GenRandomAddress(r)
	cfg.ProgramID = programID.String()
	cfg.Network = "mainnet"
	cfg.BitcoinNetwork = "regtest"
	cfg.Metrics.Port = 9100
	require.NoError(t, lbtccfg.WriteConfigFile(homePath, &cfg))

	loaded, err := lbtccfg.LoadConfig(homePath)
	require.NoError(t, err)
	require.Equal(t, "mainnet", loaded.Network)
	require.Equal(t, 9100, loaded.Metrics.Port)
	require.Equal(t, cfg.DatabaseConfig.DBPath, loaded.DatabaseConfig.DBPath)
	require.Equal(t, chaincfg.RegressionNetParams.Name, loaded.BTCNetParams.Name)

	got, err := loaded.ProgramAddress()
	require.NoError(t, err)
	require.Equal(t, programID, got)

	chainID, err := loaded.ChainID()
	require.NoError(t, err)
	require.Equal(t, codec.MainnetChainID, chainID)
}

func TestConfigValidate(t *testing.T) {
	cfg := lbtccfg.DefaultConfigWithHomePath(t.TempDir())
	require.NoError(t, cfg.Validate())
	require.Equal(t, chaincfg.SigNetParams.Name, cfg.BTCNetParams.Name)

	bad := cfg
	bad.Network = "testnet"
	require.Error(t, bad.Validate())

	bad = cfg
	bad.ProgramID = "abcd"
	require.Error(t, bad.Validate())

	bad = cfg
	bad.BitcoinNetwork = "litecoin"
	require.Error(t, bad.Validate())

	bad = cfg
	bad.LogFormat = "yaml"
	require.Error(t, bad.Validate())

	bad = cfg
	bad.LogLevel = "trace"
	require.Error(t, bad.Validate())

	bad = cfg
	bad.Metrics = nil
	require.Error(t, bad.Validate())
}
