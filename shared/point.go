package shared

import (
	"encoding/json"
	"fmt"
)

// Point is a pair of difficulty values. On the wire it is a two element array.
type Point struct {
	X int64
	Y int64
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int64{p.X, p.Y})
}

func (p *Point) UnmarshalJSON(data []byte) error {
	var pair [2]int64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("point: expected [x, y]: %w", err)
	}
	p.X, p.Y = pair[0], pair[1]
	return nil
}
