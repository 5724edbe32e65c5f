package api

import (
	"github.com/the-innovation-game/benchmarker/shared"
)

type Earning struct {
	BlockID     string  `json:"block_id"`
	AlgorithmID string  `json:"algorithm_id,omitempty"`
	ChallengeID string  `json:"challenge_id,omitempty"`
	Amount      float64 `json:"amount"`
}

type EarningsResponse struct {
	PlayerID string    `json:"player_id"`
	Total    float64   `json:"total"`
	Earnings []Earning `json:"earnings"`
}

type Benchmark struct {
	BenchmarkID string            `json:"benchmark_id"`
	BlockID     string            `json:"block_id"`
	AlgorithmID string            `json:"algorithm_id"`
	ChallengeID string            `json:"challenge_id"`
	Difficulty  shared.Difficulty `json:"difficulty"`
	Nonces      []uint64          `json:"nonces"`
	Status      string            `json:"status,omitempty"`
	Datetime    string            `json:"datetime,omitempty"`
}

type RecentBenchmarksResponse struct {
	Benchmarks []Benchmark `json:"benchmarks"`
}

type Block struct {
	BlockID     string `json:"block_id"`
	PrevBlockID string `json:"prev_block_id"`
	Height      uint64 `json:"height"`
	Datetime    string `json:"datetime,omitempty"`
}

type Algorithm struct {
	AlgorithmID string `json:"algorithm_id"`
	ChallengeID string `json:"challenge_id"`
	PlayerID    string `json:"player_id,omitempty"`
	Name        string `json:"name,omitempty"`
	Banned      bool   `json:"banned,omitempty"`
}

type AlgorithmsResponse struct {
	Algorithms []Algorithm `json:"algorithms"`
}

// FrontiersResponse describes the difficulty frontier of a challenge.
// DifficultyParameters names the dimensions of the X and Y coordinates.
type FrontiersResponse struct {
	ChallengeID          string         `json:"challenge_id"`
	DifficultyParameters []string       `json:"difficulty_parameters"`
	MinDifficulty        shared.Point   `json:"min_difficulty"`
	Frontier             []shared.Point `json:"frontier"`
}

type SubmitBenchmarkRequest struct {
	PlayerID    string            `json:"player_id"`
	BlockID     string            `json:"block_id"`
	PrevBlockID string            `json:"prev_block_id"`
	AlgorithmID string            `json:"algorithm_id"`
	ChallengeID string            `json:"challenge_id"`
	Difficulty  shared.Difficulty `json:"difficulty"`
	Nonces      []uint64          `json:"nonces"`
}

type SubmitBenchmarkResponse struct {
	BenchmarkID string `json:"benchmark_id"`
}

type SubmitProofsRequest struct {
	Proofs []shared.Proof `json:"proofs"`
}

type SubmitProofsResponse struct {
	BenchmarkID string `json:"benchmark_id"`
	NumProofs   int    `json:"num_proofs"`
}
