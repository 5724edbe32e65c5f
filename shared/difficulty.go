package shared

import (
	"sort"
)

// Difficulty maps a named difficulty dimension to its value.
type Difficulty map[string]int64

// Keys returns the dimension names in ascending order.
func (d Difficulty) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DifficultyFromPoint maps p onto a two dimensional difficulty. The first
// parameter name receives X, the second Y.
func DifficultyFromPoint(params []string, p Point) (Difficulty, error) {
	if len(params) == 0 {
		return nil, ErrEmptyParams
	}
	if len(params) != 2 {
		return nil, DimensionMismatchError{Expected: 2, Found: len(params)}
	}
	return Difficulty{params[0]: p.X, params[1]: p.Y}, nil
}
