// Package cmd implements the tigcli commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/the-innovation-game/benchmarker/api"
	"github.com/the-innovation-game/benchmarker/config"
)

var (
	// Version is the version of the binary.
	Version = "0.0.0"

	// Commit is the commit hash of the binary.
	Commit = ""
)

const envPrefix = "TIG"

// app carries state shared by all commands of one invocation.
type app struct {
	cfgFile string
	cfg     config.Config
	logger  *zap.Logger
}

func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	a := &app{
		cfg:    config.DefaultConfig(),
		logger: zap.NewNop(),
	}

	rootCmd := &cobra.Command{
		Use:   "tigcli",
		Short: "Command line client for the TIG benchmarking API",
		Long: `tigcli talks to the TIG API: it queries blocks, algorithms, frontiers and
earnings, samples difficulties, derives instance seeds and resubmits proofs of
saved benchmark results.

Settings are read from a config file, TIG_* environment variables and flags,
in increasing order of precedence.`,
		Version:           fmt.Sprintf("%s (%s)", Version, Commit),
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}

	defaults := config.DefaultConfig()
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "Path to configuration file")
	flags.String("api-url", defaults.APIURL, "Base URL of the TIG API")
	flags.String("api-key", defaults.APIKey, "API key sent with every request")
	flags.String("player-id", defaults.PlayerID, "Player id")
	flags.String("results-dir", defaults.ResultsDir, "Directory benchmark results are saved to")
	flags.String("log-level", defaults.LogLevel, "log level (debug, info, warn, error)")
	flags.String("log-file", defaults.LogFile, "Also write logs to this file, rotated by size")

	rootCmd.AddCommand(
		newEarningsCmd(a),
		newBenchmarksCmd(a),
		newBlockCmd(a),
		newAlgorithmsCmd(a),
		newFrontiersCmd(a),
		newSampleCmd(a),
		newSeedCmd(a),
		newSubmitProofsCmd(a),
		newPrintConfigCmd(a),
	)
	return rootCmd
}

// load merges the config file, environment and flags into a.cfg and sets up
// logging.
func (a *app) load(cmd *cobra.Command, _ []string) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Keys without a flag are only seen by Unmarshal, and thus by the
	// environment, if they have a default.
	defaults := config.DefaultConfig()
	v.SetDefault("start-nonce", defaults.StartNonce)
	v.SetDefault("nonces", defaults.NumNonces)
	v.SetDefault("workers", defaults.Workers)
	v.SetDefault("log-max-size", defaults.LogMaxSize)
	v.SetDefault("log-max-backups", defaults.LogMaxBackups)

	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	cfg := config.DefaultConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	a.cfg = cfg

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	a.logger = logger
	a.logger.Debug("cli: config loaded", zap.String("file", v.ConfigFileUsed()))
	return nil
}

func (a *app) client() (*api.Client, error) {
	if err := a.cfg.ValidateClient(); err != nil {
		return nil, err
	}
	return api.NewClient(a.cfg.APIURL, a.cfg.APIKey, api.WithLogger(a.logger.Named("api")))
}

func (a *app) requirePlayer() error {
	if a.cfg.PlayerID == "" {
		return errors.New("`player-id` is required")
	}
	return nil
}
