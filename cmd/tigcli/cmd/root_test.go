package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/the-innovation-game/benchmarker/api"
	"github.com/the-innovation-game/benchmarker/benchmark"
	"github.com/the-innovation-game/benchmarker/internal/apitest"
	"github.com/the-innovation-game/benchmarker/shared"
)

const testKey = "cli-key"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func newServer(t *testing.T) *apitest.Server {
	srv := apitest.New(t, testKey)
	srv.SetBlock(api.Block{BlockID: "block-77", PrevBlockID: "block-76", Height: 77})
	srv.SetFrontiers(api.FrontiersResponse{
		ChallengeID:          "c001",
		DifficultyParameters: []string{"num_variables", "clauses_to_variables_percent"},
		MinDifficulty:        shared.Point{X: 50, Y: 300},
		Frontier:             []shared.Point{{X: 60, Y: 420}, {X: 90, Y: 350}},
	})
	srv.SetAlgorithms("c001", []api.Algorithm{{AlgorithmID: "c001_a001", ChallengeID: "c001", Name: "schnoing"}})
	return srv
}

func TestBlockCmd(t *testing.T) {
	srv := newServer(t)

	out, err := run(t, "--api-url", srv.URL, "--api-key", testKey, "block")
	require.NoError(t, err)
	require.Contains(t, out, "block-77")
	require.Contains(t, out, "block-76")
}

func TestQueryCmds(t *testing.T) {
	srv := newServer(t)
	base := []string{"--api-url", srv.URL, "--api-key", testKey}

	out, err := run(t, append(base, "algorithms", "c001")...)
	require.NoError(t, err)
	require.Contains(t, out, "schnoing")

	out, err = run(t, append(base, "frontiers", "c001")...)
	require.NoError(t, err)
	require.Contains(t, out, "(50, 300)")
	require.Contains(t, out, "420")

	out, err = run(t, append(base, "sample", "c001", "--count", "3")...)
	require.NoError(t, err)
	require.Contains(t, out, "NUM VARIABLES")

	_, err = run(t, append(base, "earnings")...)
	require.NoError(t, err)

	_, err = run(t, append(base, "benchmarks")...)
	require.NoError(t, err)

	_, err = run(t, append(base, "frontiers", "c404")...)
	require.EqualError(t, err, "challenge not found")
}

func TestMissingAPISettings(t *testing.T) {
	_, err := run(t, "block")
	require.EqualError(t, err, "`api-url` is required")
}

func TestConfigFile(t *testing.T) {
	srv := newServer(t)

	path := filepath.Join(t.TempDir(), "tig.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api-url: "+srv.URL+"\napi-key: "+testKey+"\nplayer-id: p9\nworkers: 3\n"), 0o600))

	out, err := run(t, "--config", path, "block")
	require.NoError(t, err)
	require.Contains(t, out, "block-77")

	out, err = run(t, "--config", path, "print-config")
	require.NoError(t, err)
	require.Contains(t, out, "p9")
	require.Contains(t, out, "********")
	require.NotContains(t, out, testKey)

	_, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "block")
	require.Error(t, err)
}

func TestSeedCmd(t *testing.T) {
	out, err := run(t, "--player-id", "p1", "seed",
		"--block", "b1", "--prev-block", "b0", "--algorithm", "a1", "--challenge", "c1",
		"--difficulty", "y=3,x=5", "--nonce", "42", "--count", "2")
	require.NoError(t, err)
	require.Contains(t, out, "942260509")
	require.Contains(t, out, "3839995266")

	_, err = run(t, "seed", "--block", "b1", "--prev-block", "b0", "--algorithm", "a1", "--challenge", "c1")
	require.EqualError(t, err, "`player-id` is required")
}

func TestSeedCmd_ConfiguredNonces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tig.yaml")
	require.NoError(t, os.WriteFile(path, []byte("player-id: p1\nstart-nonce: 42\nnonces: 2\n"), 0o600))

	out, err := run(t, "--config", path, "seed",
		"--block", "b1", "--prev-block", "b0", "--algorithm", "a1", "--challenge", "c1",
		"--difficulty", "x=5,y=3")
	require.NoError(t, err)
	require.Contains(t, out, "942260509")
	require.Contains(t, out, "3839995266")

	// flags take precedence over the configured range
	out, err = run(t, "--config", path, "seed",
		"--block", "b1", "--prev-block", "b0", "--algorithm", "a1", "--challenge", "c1",
		"--difficulty", "x=5,y=3", "--nonce", "43", "--count", "1")
	require.NoError(t, err)
	require.NotContains(t, out, "942260509")
	require.Contains(t, out, "3839995266")
}

func TestPrintConfigCmd_Validate(t *testing.T) {
	dir := t.TempDir()
	base := "api-url: http://localhost:1\napi-key: k\nplayer-id: p1\n"

	valid := filepath.Join(dir, "valid.yaml")
	require.NoError(t, os.WriteFile(valid, []byte(base+"nonces: 10\nworkers: 2\n"), 0o600))
	out, err := run(t, "--config", valid, "print-config", "--validate")
	require.NoError(t, err)
	require.Contains(t, out, "configuration is valid")

	noWorkers := filepath.Join(dir, "no-workers.yaml")
	require.NoError(t, os.WriteFile(noWorkers, []byte(base+"workers: 0\n"), 0o600))
	_, err = run(t, "--config", noWorkers, "print-config", "--validate")
	require.EqualError(t, err, "invalid configuration: invalid `workers`; expected: > 0, given: 0")

	t.Setenv("TIG_NONCES", "0")
	_, err = run(t, "--config", valid, "print-config", "--validate")
	require.EqualError(t, err, "invalid configuration: invalid `nonces`; expected: > 0, given: 0")
}

func TestSubmitProofsCmd(t *testing.T) {
	srv := newServer(t)
	client, err := api.NewClient(srv.URL, testKey)
	require.NoError(t, err)

	settings := api.SubmitBenchmarkRequest{
		PlayerID:    "p1",
		BlockID:     "block-77",
		PrevBlockID: "block-76",
		AlgorithmID: "c001_a001",
		ChallengeID: "c001",
		Difficulty:  shared.Difficulty{"num_variables": 60, "clauses_to_variables_percent": 400},
		Nonces:      []uint64{3},
	}
	resp, err := client.SubmitBenchmark(context.Background(), settings)
	require.NoError(t, err)

	proof, err := shared.NewProof(3, []bool{true, false}, nil)
	require.NoError(t, err)

	dir := t.TempDir()
	path, err := benchmark.SaveResult(dir, &benchmark.Result{
		BenchmarkID: resp.BenchmarkID,
		Settings:    settings,
		Proofs:      []shared.Proof{proof},
	})
	require.NoError(t, err)

	out, err := run(t, "--api-url", srv.URL, "--api-key", testKey, "submit-proofs", path)
	require.NoError(t, err)
	require.Contains(t, out, "submitted 1 proofs for benchmark "+resp.BenchmarkID)
	require.Len(t, srv.Proofs(resp.BenchmarkID), 1)

	// lookup by id in the results directory
	_, err = run(t, "--api-url", srv.URL, "--api-key", testKey, "--results-dir", dir, "submit-proofs", resp.BenchmarkID)
	require.NoError(t, err)
	require.Len(t, srv.Proofs(resp.BenchmarkID), 2)
}

func TestLogFile(t *testing.T) {
	srv := newServer(t)
	logFile := filepath.Join(t.TempDir(), "tig.log")

	_, err := run(t, "--api-url", srv.URL, "--api-key", testKey, "--log-level", "debug", "--log-file", logFile, "block")
	require.NoError(t, err)

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "api: calling")

	_, err = run(t, "--log-level", "loud", "print-config")
	require.ErrorContains(t, err, "invalid `log-level`")
}
