package shared

import "sort"

type PointSet map[Point]struct{}

func PointSetOf(members ...Point) PointSet {
	ret := make(PointSet, len(members))
	for _, member := range members {
		ret[member] = struct{}{}
	}
	return ret
}

func (s PointSet) Add(p Point) {
	s[p] = struct{}{}
}

// AnyX reports whether some member has the given X.
func (s PointSet) AnyX(x int64) bool {
	for p := range s {
		if p.X == x {
			return true
		}
	}
	return false
}

// AnyY reports whether some member has the given Y.
func (s PointSet) AnyY(y int64) bool {
	for p := range s {
		if p.Y == y {
			return true
		}
	}
	return false
}

// AsSortedSlice orders members by X, then Y.
func (s PointSet) AsSortedSlice() []Point {
	ret := make([]Point, 0, len(s))
	for p := range s {
		ret = append(ret, p)
	}
	sort.Slice(ret, func(i, j int) bool {
		if ret[i].X != ret[j].X {
			return ret[i].X < ret[j].X
		}
		return ret[i].Y < ret[j].Y
	})
	return ret
}
