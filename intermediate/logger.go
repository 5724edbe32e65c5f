// Package intermediate records integers produced while an algorithm runs and
// summarises them into a handful of evenly spaced samples.
package intermediate

import "github.com/the-innovation-game/benchmarker/shared"

// MaxSamples is the maximum number of samples returned by Dump.
const MaxSamples = 10

// Logger accumulates intermediate integers of a single benchmark instance.
// It is not safe for concurrent use.
type Logger struct {
	logs []int64
}

func New() *Logger {
	return &Logger{}
}

// Log appends v.
func (l *Logger) Log(v int64) {
	l.logs = append(l.logs, v)
}

func (l *Logger) Len() int {
	return len(l.logs)
}

func (l *Logger) Reset() {
	l.logs = l.logs[:0]
}

// Dump returns at most MaxSamples (step, value) pairs spread evenly over the
// log. Steps are 1-based; sample i sits at floor((i+1) * len / n) where n is
// the number of samples, so the last logged value is always included.
func (l *Logger) Dump() []shared.Sample {
	total := len(l.logs)
	n := min(total, MaxSamples)
	if n == 0 {
		return []shared.Sample{}
	}

	samples := make([]shared.Sample, 0, n)
	for i := 0; i < n; i++ {
		step := (i + 1) * total / n
		samples = append(samples, shared.Sample{Step: step, Value: l.logs[step-1]})
	}
	return samples
}
