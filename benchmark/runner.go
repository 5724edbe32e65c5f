// Package benchmark runs a benchmark end to end: it samples a difficulty from
// the challenge frontier, solves one instance per nonce and submits the
// solved nonces together with their proofs.
package benchmark

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/the-innovation-game/benchmarker/api"
	"github.com/the-innovation-game/benchmarker/config"
	"github.com/the-innovation-game/benchmarker/frontier"
	"github.com/the-innovation-game/benchmarker/intermediate"
	"github.com/the-innovation-game/benchmarker/seed"
	"github.com/the-innovation-game/benchmarker/shared"
)

var ErrNoSolutions = errors.New("no solutions found")

// API is the part of the TIG API a Runner uses. *api.Client implements it.
type API interface {
	GetLatestBlock(ctx context.Context) (*api.Block, error)
	GetFrontiers(ctx context.Context, challengeID string) (*api.FrontiersResponse, error)
	SubmitBenchmark(ctx context.Context, req api.SubmitBenchmarkRequest) (*api.SubmitBenchmarkResponse, error)
	SubmitProofs(ctx context.Context, benchmarkID string, proofs []shared.Proof) (*api.SubmitProofsResponse, error)
}

// Instance is a single benchmark instance handed to a Solver.
type Instance struct {
	ChallengeID string
	AlgorithmID string
	Difficulty  shared.Difficulty
	Nonce       uint64
	Seed        uint32

	// Log collects intermediate integers. Its dump is attached to the proof.
	Log *intermediate.Logger
}

// Solver solves an instance. A nil solution means the instance has no
// solution; an error aborts the whole benchmark.
type Solver func(ctx context.Context, inst Instance) (solution any, err error)

type Runner struct {
	client     API
	cfg        config.Config
	logger     *zap.Logger
	rand       frontier.Source
	resultsDir string
}

func NewRunner(client API, cfg config.Config, opts ...OptionFunc) (*Runner, error) {
	options := &option{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	if client == nil {
		return nil, errors.New("`client` is required")
	}
	if err := cfg.ValidateRunner(); err != nil {
		return nil, err
	}

	r := &Runner{
		client:     client,
		cfg:        cfg,
		logger:     options.logger,
		rand:       options.rand,
		resultsDir: cfg.ResultsDir,
	}
	if options.resultsDir != nil {
		r.resultsDir = *options.resultsDir
	}
	return r, nil
}

// Run benchmarks algorithmID on challengeID at a difficulty sampled from the
// current frontier. Nonces without a solution are not submitted. If nothing
// was solved ErrNoSolutions is returned and nothing is submitted.
func (r *Runner) Run(ctx context.Context, challengeID, algorithmID string, solve Solver) (*Result, error) {
	logger := r.logger.With(zap.String("challenge", challengeID), zap.String("algorithm", algorithmID))

	block, err := r.client.GetLatestBlock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest block: %w", err)
	}

	difficulty, err := r.SampleDifficulty(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	settings := api.SubmitBenchmarkRequest{
		PlayerID:    r.cfg.PlayerID,
		BlockID:     block.BlockID,
		PrevBlockID: block.PrevBlockID,
		AlgorithmID: algorithmID,
		ChallengeID: challengeID,
		Difficulty:  difficulty,
	}
	logger.Info("benchmark: starting",
		zap.String("block", block.BlockID),
		zap.Any("difficulty", difficulty),
		zap.Uint64("start_nonce", r.cfg.StartNonce),
		zap.Uint64("nonces", r.cfg.NumNonces),
	)

	proofs, err := r.solve(ctx, settings, solve)
	if err != nil {
		return nil, err
	}
	if len(proofs) == 0 {
		return nil, ErrNoSolutions
	}

	settings.Nonces = make([]uint64, len(proofs))
	for i, p := range proofs {
		settings.Nonces[i] = p.Nonce
	}
	logger.Info("benchmark: solved instances", zap.Int("solutions", len(proofs)))

	resp, err := r.client.SubmitBenchmark(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to submit benchmark: %w", err)
	}
	res := &Result{
		BenchmarkID: resp.BenchmarkID,
		Settings:    settings,
		Proofs:      proofs,
	}
	logger.Info("benchmark: submitted", zap.String("benchmark_id", res.BenchmarkID))

	// From here on the benchmark exists remotely, so res is returned even on
	// failure for the caller to retry the proof submission.
	var saveErr error
	if r.resultsDir != "" {
		path, err := SaveResult(r.resultsDir, res)
		if err != nil {
			saveErr = fmt.Errorf("failed to save result of benchmark %s: %w", res.BenchmarkID, err)
			logger.Warn("benchmark: result not saved", zap.Error(err))
		} else {
			logger.Debug("benchmark: saved result", zap.String("path", path))
		}
	}

	if _, err := r.client.SubmitProofs(ctx, res.BenchmarkID, res.Proofs); err != nil {
		err = fmt.Errorf("failed to submit proofs for benchmark %s: %w", res.BenchmarkID, err)
		return res, errors.Join(saveErr, err)
	}
	logger.Info("benchmark: proofs submitted", zap.String("benchmark_id", res.BenchmarkID), zap.Int("proofs", len(res.Proofs)))
	return res, saveErr
}

// SampleDifficulty draws a random difficulty from the frontier of challengeID.
func (r *Runner) SampleDifficulty(ctx context.Context, challengeID string) (shared.Difficulty, error) {
	fr, err := r.client.GetFrontiers(ctx, challengeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get frontiers: %w", err)
	}
	return SampleDifficulty(fr, r.rand)
}

// SampleDifficulty draws a random point on fr and names its coordinates after
// the difficulty parameters. A nil src uses the global random source.
func SampleDifficulty(fr *api.FrontiersResponse, src frontier.Source) (shared.Difficulty, error) {
	var opts []frontier.OptionFunc
	if src != nil {
		opts = append(opts, frontier.WithRand(src))
	}
	point, err := frontier.RandomInterpolate(fr.Frontier, fr.MinDifficulty, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to sample frontier of %s: %w", fr.ChallengeID, err)
	}
	return shared.DifficultyFromPoint(fr.DifficultyParameters, point)
}

func (r *Runner) solve(ctx context.Context, settings api.SubmitBenchmarkRequest, solve Solver) ([]shared.Proof, error) {
	var (
		mu     sync.Mutex
		proofs []shared.Proof
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(int(r.cfg.Workers))

	end := r.cfg.StartNonce + r.cfg.NumNonces
	for nonce := r.cfg.StartNonce; nonce < end; nonce++ {
		if egCtx.Err() != nil {
			break
		}

		eg.Go(func() error {
			inst := Instance{
				ChallengeID: settings.ChallengeID,
				AlgorithmID: settings.AlgorithmID,
				Difficulty:  settings.Difficulty,
				Nonce:       nonce,
				Seed: seed.Calc(settings.PlayerID, settings.BlockID, settings.PrevBlockID,
					settings.AlgorithmID, settings.ChallengeID, settings.Difficulty, nonce),
				Log: intermediate.New(),
			}

			solution, err := solve(egCtx, inst)
			if err != nil {
				return fmt.Errorf("solver failed on nonce %d: %w", nonce, err)
			}
			if solution == nil {
				return nil
			}

			proof, err := shared.NewProof(nonce, solution, inst.Log.Dump())
			if err != nil {
				return err
			}

			mu.Lock()
			proofs = append(proofs, proof)
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(proofs, func(i, j int) bool { return proofs[i].Nonce < proofs[j].Nonce })
	return proofs, nil
}
