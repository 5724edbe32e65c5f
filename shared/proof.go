package shared

import (
	"encoding/json"
	"fmt"
)

// Proof is the outcome of a benchmark run for a single nonce.
type Proof struct {
	Nonce                uint64          `json:"nonce"`
	Solution             json.RawMessage `json:"solution"`
	IntermediateIntegers []Sample        `json:"intermediate_integers"`
}

// NewProof encodes solution and returns a Proof for nonce.
func NewProof(nonce uint64, solution any, samples []Sample) (Proof, error) {
	raw, err := json.Marshal(solution)
	if err != nil {
		return Proof{}, fmt.Errorf("failed to encode solution for nonce %d: %w", nonce, err)
	}
	if samples == nil {
		samples = []Sample{}
	}
	return Proof{
		Nonce:                nonce,
		Solution:             raw,
		IntermediateIntegers: samples,
	}, nil
}

// Sample is a (step, value) pair taken from an intermediate integer log.
// Steps are 1-based indices into the log.
type Sample struct {
	Step  int
	Value int64
}

func (s Sample) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int64{int64(s.Step), s.Value})
}

func (s *Sample) UnmarshalJSON(data []byte) error {
	var pair [2]int64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("sample: expected [step, value]: %w", err)
	}
	s.Step, s.Value = int(pair[0]), pair[1]
	return nil
}
