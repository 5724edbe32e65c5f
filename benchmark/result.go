package benchmark

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/the-innovation-game/benchmarker/api"
	"github.com/the-innovation-game/benchmarker/shared"
)

const resultFileExt = ".json"

// Result is the outcome of a benchmark: what was submitted and the proofs
// backing it.
type Result struct {
	BenchmarkID string                     `json:"benchmark_id"`
	Settings    api.SubmitBenchmarkRequest `json:"settings"`
	Proofs      []shared.Proof             `json:"proofs"`
}

// ResultPath returns the file a result with the given id is saved to.
func ResultPath(dir, benchmarkID string) string {
	return filepath.Join(dir, benchmarkID+resultFileExt)
}

// SaveResult atomically writes res into dir and returns the file path.
func SaveResult(dir string, res *Result) (string, error) {
	if res.BenchmarkID == "" {
		return "", errors.New("result has no benchmark id")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil && !os.IsExist(err) {
		return "", fmt.Errorf("mkdir error: %w", err)
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}

	path := ResultPath(dir, res.BenchmarkID)
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to write result: %w", err)
	}
	return path, nil
}

func LoadResult(path string) (*Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open result file: %w", err)
	}
	defer file.Close()

	var res Result
	if err := json.NewDecoder(file).Decode(&res); err != nil {
		return nil, fmt.Errorf("failed to decode result %s: %w", path, err)
	}
	if res.BenchmarkID == "" {
		return nil, fmt.Errorf("result %s has no benchmark id", path)
	}
	return &res, nil
}
