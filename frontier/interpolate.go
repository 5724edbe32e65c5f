// Package frontier samples difficulties along the frontier of a challenge.
package frontier

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/interp"

	"github.com/the-innovation-game/benchmarker/shared"
)

// BoundsError is returned when the frontier lies entirely below the minimum
// difficulty along some axis, leaving nothing to sample from.
type BoundsError struct {
	Min shared.Point
	Max shared.Point
}

func (err *BoundsError) Error() string {
	return fmt.Sprintf("frontier out of bounds; min: %v, max: %v", err.Min, err.Max)
}

// RandomInterpolate picks a random point on the piecewise linear curve through
// points, spanning from min up to the largest coordinates in points.
//
// If no point lies on the min X (or min Y) line, the corner (min.X, maxY)
// (respectively (maxX, min.Y)) is added so that the curve covers the full
// range. A coin flip then decides whether X is drawn uniformly and Y
// interpolated from it, or the other way around. Interpolated values are
// rounded half to even.
func RandomInterpolate(points []shared.Point, min shared.Point, opts ...OptionFunc) (shared.Point, error) {
	options, err := applyOpts(opts...)
	if err != nil {
		return shared.Point{}, err
	}

	if len(points) == 0 {
		return shared.Point{}, shared.ErrNoPoints
	}

	max := points[0]
	for _, p := range points[1:] {
		max.X = maxInt64(max.X, p.X)
		max.Y = maxInt64(max.Y, p.Y)
	}
	if max.X < min.X || max.Y < min.Y {
		return shared.Point{}, &BoundsError{Min: min, Max: max}
	}
	// The draws below need span+1 to fit in an int64.
	spanX, spanY := max.X-min.X, max.Y-min.Y
	if spanX < 0 || spanX == math.MaxInt64 || spanY < 0 || spanY == math.MaxInt64 {
		return shared.Point{}, &BoundsError{Min: min, Max: max}
	}

	set := shared.PointSetOf(points...)
	if !set.AnyX(min.X) {
		set.Add(shared.Point{X: min.X, Y: max.Y})
	}
	if !set.AnyY(min.Y) {
		set.Add(shared.Point{X: max.X, Y: min.Y})
	}

	curve := set.AsSortedSlice()
	if len(curve) < 2 {
		return curve[0], nil
	}

	if 0.5 < options.rand.Float64() {
		x := min.X + options.rand.Int64N(spanX+1)
		y, err := interpolate(curve, x, false)
		if err != nil {
			return shared.Point{}, err
		}
		return shared.Point{X: x, Y: y}, nil
	}

	y := min.Y + options.rand.Int64N(spanY+1)
	x, err := interpolate(curve, y, true)
	if err != nil {
		return shared.Point{}, err
	}
	return shared.Point{X: x, Y: y}, nil
}

// interpolate evaluates the curve at v. By default v is an X value and the
// result a Y value; inverse swaps the roles. Points sharing an abscissa are
// collapsed onto the largest ordinate.
func interpolate(curve []shared.Point, v int64, inverse bool) (int64, error) {
	ordinates := make(map[int64]int64, len(curve))
	for _, p := range curve {
		a, o := p.X, p.Y
		if inverse {
			a, o = p.Y, p.X
		}
		if cur, ok := ordinates[a]; !ok || o > cur {
			ordinates[a] = o
		}
	}

	abscissae := make([]int64, 0, len(ordinates))
	for a := range ordinates {
		abscissae = append(abscissae, a)
	}
	sort.Slice(abscissae, func(i, j int) bool { return abscissae[i] < abscissae[j] })

	if len(abscissae) == 1 {
		return ordinates[abscissae[0]], nil
	}

	xs := make([]float64, len(abscissae))
	ys := make([]float64, len(abscissae))
	for i, a := range abscissae {
		xs[i] = float64(a)
		ys[i] = float64(ordinates[a])
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return 0, fmt.Errorf("failed to fit frontier: %w", err)
	}
	return int64(math.RoundToEven(pl.Predict(float64(v)))), nil
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
