package benchmark

import (
	"errors"

	"go.uber.org/zap"

	"github.com/the-innovation-game/benchmarker/frontier"
)

type option struct {
	logger     *zap.Logger
	rand       frontier.Source
	resultsDir *string
}

type OptionFunc func(*option) error

func WithLogger(logger *zap.Logger) OptionFunc {
	return func(o *option) error {
		if logger == nil {
			return errors.New("`logger` must not be nil")
		}
		o.logger = logger
		return nil
	}
}

// WithRand sets the random source used to sample difficulties.
func WithRand(src frontier.Source) OptionFunc {
	return func(o *option) error {
		if src == nil {
			return errors.New("`rand` source must not be nil")
		}
		o.rand = src
		return nil
	}
}

// WithResultsDir overrides the configured results directory.
// An empty dir disables persistence.
func WithResultsDir(dir string) OptionFunc {
	return func(o *option) error {
		o.resultsDir = &dir
		return nil
	}
}
