package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
)

const (
	MaxNonces  = 1 << 32
	MaxWorkers = 1 << 10
)

const (
	DefaultResultsDirName = "results"
	DefaultNumNonces      = 1000
	DefaultLogLevel       = "info"
	DefaultLogMaxSize     = 10 // megabytes
	DefaultLogMaxBackups  = 3
)

var DefaultResultsDir = filepath.Join(homeDir(), ".tig", DefaultResultsDirName)

// Config holds the settings of the benchmarker client and runner.
type Config struct {
	APIURL   string `mapstructure:"api-url"`
	APIKey   string `mapstructure:"api-key"`
	PlayerID string `mapstructure:"player-id"`

	// Nonces [StartNonce, StartNonce+NumNonces) are attempted per benchmark.
	StartNonce uint64 `mapstructure:"start-nonce"`
	NumNonces  uint64 `mapstructure:"nonces"`
	// Number of solver invocations running in parallel.
	Workers uint `mapstructure:"workers"`

	// Benchmark results are persisted here before proofs are submitted.
	// Empty disables persistence.
	ResultsDir string `mapstructure:"results-dir"`

	LogLevel      string `mapstructure:"log-level"`
	LogFile       string `mapstructure:"log-file"`
	LogMaxSize    int    `mapstructure:"log-max-size"`
	LogMaxBackups int    `mapstructure:"log-max-backups"`
}

func DefaultConfig() Config {
	return Config{
		NumNonces:     DefaultNumNonces,
		Workers:       uint(runtime.NumCPU()),
		ResultsDir:    DefaultResultsDir,
		LogLevel:      DefaultLogLevel,
		LogMaxSize:    DefaultLogMaxSize,
		LogMaxBackups: DefaultLogMaxBackups,
	}
}

// ValidateClient checks the settings needed to talk to the API.
func (cfg *Config) ValidateClient() error {
	if cfg.APIURL == "" {
		return errors.New("`api-url` is required")
	}
	u, err := url.Parse(cfg.APIURL)
	if err != nil {
		return fmt.Errorf("invalid `api-url`: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid `api-url`; expected: http or https scheme, given: %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid `api-url`; missing host: %q", cfg.APIURL)
	}
	if cfg.APIKey == "" {
		return errors.New("`api-key` is required")
	}
	return nil
}

// Validate checks all settings needed to run benchmarks against the API.
func (cfg *Config) Validate() error {
	if err := cfg.ValidateClient(); err != nil {
		return err
	}
	return cfg.ValidateRunner()
}

// ValidateRunner checks the settings of the benchmark runner.
func (cfg *Config) ValidateRunner() error {
	if cfg.PlayerID == "" {
		return errors.New("`player-id` is required")
	}

	if cfg.NumNonces == 0 {
		return errors.New("invalid `nonces`; expected: > 0, given: 0")
	}
	if cfg.NumNonces > MaxNonces {
		return fmt.Errorf("invalid `nonces`; expected: <= %d, given: %d", uint64(MaxNonces), cfg.NumNonces)
	}
	if cfg.StartNonce+cfg.NumNonces < cfg.StartNonce {
		return fmt.Errorf("uint64 overflow: `start-nonce` (%d) plus `nonces` (%d) exceeds the range allowed by uint64",
			cfg.StartNonce, cfg.NumNonces)
	}

	if cfg.Workers == 0 {
		return errors.New("invalid `workers`; expected: > 0, given: 0")
	}
	if cfg.Workers > MaxWorkers {
		return fmt.Errorf("invalid `workers`; expected: <= %d, given: %d", MaxWorkers, cfg.Workers)
	}

	return nil
}

func homeDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return dir
	}
	return "."
}
