package metrics

import (
	"fmt"
	"net"
	"time"
)

const (
	defaultLBTCMetricsPort       = 2112
	defaultMetricsHost           = "127.0.0.1"
	defaultMetricsUpdateInterval = 5 * time.Second
)

type Config struct {
	Enabled        bool          `long:"enabled"        description:"Serve Prometheus metrics"`
	Host           string        `long:"host"           description:"IP of the Prometheus server"`
	Port           int           `long:"port"           description:"Port of the Prometheus server"`
	UpdateInterval time.Duration `long:"updateinterval" description:"The interval of Prometheus metrics updated"`
}

func (cfg *Config) Validate() error {
	if cfg.Port < 0 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Port)
	}

	ip := net.ParseIP(cfg.Host)
	if ip == nil {
		return fmt.Errorf("invalid host: %v", cfg.Host)
	}

	if cfg.UpdateInterval <= 0 {
		return fmt.Errorf("invalid update interval: %v", cfg.UpdateInterval)
	}

	return nil
}

func (cfg *Config) Address() (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), nil
}

func DefaultLBTCConfig() *Config {
	return &Config{
		Enabled:        true,
		Port:           defaultLBTCMetricsPort,
		Host:           defaultMetricsHost,
		UpdateInterval: defaultMetricsUpdateInterval,
	}
}
