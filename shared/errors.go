package shared

import (
	"errors"
	"fmt"
)

var (
	ErrNoPoints    = errors.New("no points")
	ErrEmptyParams = errors.New("difficulty parameters missing")
)

// DimensionMismatchError is returned when a point cannot be mapped onto the
// difficulty parameters of a challenge.
type DimensionMismatchError struct {
	Expected int
	Found    int
}

func (err DimensionMismatchError) Error() string {
	return fmt.Sprintf("difficulty dimension mismatch; expected: %d parameters, found: %d", err.Expected, err.Found)
}
