package frontier

import (
	"errors"
	"math/rand/v2"
)

// Source is the randomness used for sampling. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
	Int64N(n int64) int64
}

type globalSource struct{}

func (globalSource) Float64() float64 {
	return rand.Float64()
}

func (globalSource) Int64N(n int64) int64 {
	return rand.Int64N(n)
}

type option struct {
	rand Source
}

func applyOpts(options ...OptionFunc) (*option, error) {
	opts := &option{
		rand: globalSource{},
	}
	for _, opt := range options {
		if err := opt(opts); err != nil {
			return nil, err
		}
	}
	return opts, nil
}

type OptionFunc func(*option) error

// WithRand sets the random source, e.g. a seeded *rand.Rand for reproducible draws.
func WithRand(src Source) OptionFunc {
	return func(o *option) error {
		if src == nil {
			return errors.New("`rand` source must not be nil")
		}
		o.rand = src
		return nil
	}
}
