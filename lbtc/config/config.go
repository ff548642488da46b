package config

import (
	"fmt"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/jessevdk/go-flags"

	"github.com/lombard-finance/lbtc-core/codec"
	"github.com/lombard-finance/lbtc-core/config"
	"github.com/lombard-finance/lbtc-core/log"
	"github.com/lombard-finance/lbtc-core/metrics"
	"github.com/lombard-finance/lbtc-core/types"
	"github.com/lombard-finance/lbtc-core/util"
)

const (
	defaultLogLevel       = "info"
	defaultLogFormat      = "logfmt"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "lbtcd.log"
	defaultConfigFileName = "lbtcd.conf"
	defaultNetwork        = "devnet"
	defaultBitcoinNetwork = "signet"
)

var (
	//   C:\Users\<username>\AppData\Local\ on Windows
	//   ~/.lbtcd on Linux
	//   ~/Users/<username>/Library/Application Support/Lbtcd on MacOS
	DefaultLBTCDir = btcutil.AppDataDir("lbtcd", false)

	defaultBTCNetParams = chaincfg.SigNetParams
)

// Config is the main config for the lbtcd daemon
type Config struct {
	LogLevel  string `long:"loglevel" description:"Logging level for all subsystems" choice:"debug" choice:"info" choice:"warn" choice:"error" choice:"fatal"`
	LogFormat string `long:"logformat" description:"Encoding of log entries" choice:"console" choice:"json" choice:"logfmt"`

	// Network selects the chain id mint and fee payloads must carry
	Network   string `long:"network" description:"The LBTC deployment this program serves" choice:"mainnet" choice:"devnet"`
	ProgramID string `long:"programid" description:"Hex encoded 32 byte address of this program instance"`

	BitcoinNetwork string `long:"bitcoinnetwork" description:"Bitcoin network redeem addresses are decoded for" choice:"mainnet" choice:"regtest" choice:"testnet" choice:"simnet" choice:"signet"`

	BTCNetParams chaincfg.Params

	DatabaseConfig *config.DBConfig `group:"dbconfig" namespace:"dbconfig"`

	Metrics *metrics.Config `group:"metrics" namespace:"metrics"`
}

func DefaultConfigWithHomePath(homePath string) Config {
	dbCfg := config.DefaultDBConfigWithHomePath(homePath)
	cfg := Config{
		LogLevel:       defaultLogLevel,
		LogFormat:      defaultLogFormat,
		Network:        defaultNetwork,
		ProgramID:      types.ZeroAddress.String(),
		BitcoinNetwork: defaultBitcoinNetwork,
		BTCNetParams:   defaultBTCNetParams,
		DatabaseConfig: &dbCfg,
		Metrics:        metrics.DefaultLBTCConfig(),
	}

	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	return cfg
}

func DefaultConfig() Config {
	return DefaultConfigWithHomePath(DefaultLBTCDir)
}

func ConfigFile(homePath string) string {
	return filepath.Join(homePath, defaultConfigFileName)
}

func LogDir(homePath string) string {
	return filepath.Join(homePath, defaultLogDirname)
}

func LogFile(homePath string) string {
	return filepath.Join(LogDir(homePath), defaultLogFilename)
}

// LoadConfig reads lbtcd.conf under homePath, which must exist, and returns
// it validated.
func LoadConfig(homePath string) (*Config, error) {
	cfgFile := ConfigFile(homePath)
	if !util.FileExists(cfgFile) {
		return nil, fmt.Errorf("specified config file does "+
			"not exist in %s", cfgFile)
	}

	var cfg Config
	fileParser := flags.NewParser(&cfg, flags.Default)
	err := flags.NewIniParser(fileParser).ParseFile(cfgFile)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// WriteConfigFile stores cfg as lbtcd.conf under homePath.
func WriteConfigFile(homePath string, cfg *Config) error {
	fileParser := flags.NewParser(cfg, flags.Default)
	return flags.NewIniParser(fileParser).WriteFile(ConfigFile(homePath), flags.IniIncludeComments|flags.IniIncludeDefaults)
}

// Validate checks the given configuration to be sane and fills in the
// bitcoin network parameters.
func (cfg *Config) Validate() error {
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	if _, err := log.NewEncoder(cfg.LogFormat); err != nil {
		return err
	}

	if _, err := codec.ChainIDForNetwork(cfg.Network); err != nil {
		return err
	}

	if _, err := types.NewAddressFromHex(cfg.ProgramID); err != nil {
		return fmt.Errorf("invalid program id %q: %w", cfg.ProgramID, err)
	}

	params, err := NetParams(cfg.BitcoinNetwork)
	if err != nil {
		return err
	}
	cfg.BTCNetParams = *params

	if cfg.DatabaseConfig == nil {
		return fmt.Errorf("empty database config")
	}

	if err := cfg.DatabaseConfig.Validate(); err != nil {
		return fmt.Errorf("invalid database config: %w", err)
	}

	if cfg.Metrics == nil {
		return fmt.Errorf("empty metrics config")
	}

	if err := cfg.Metrics.Validate(); err != nil {
		return fmt.Errorf("invalid metrics config: %w", err)
	}

	return nil
}

// ChainID is the destination chain id of the configured network.
func (cfg *Config) ChainID() (types.Hash, error) {
	return codec.ChainIDForNetwork(cfg.Network)
}

// ProgramAddress decodes the configured program id.
func (cfg *Config) ProgramAddress() (types.Address, error) {
	return types.NewAddressFromHex(cfg.ProgramID)
}

// NetParams maps a bitcoin network name to its chain parameters.
func NetParams(network string) (*chaincfg.Params, error) {
	switch network {
	case "mainnet":
		return &chaincfg.MainNetParams, nil
	case "testnet":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "simnet":
		return &chaincfg.SimNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("invalid network: %v", network)
	}
}
