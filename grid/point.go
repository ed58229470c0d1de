package grid

import (
	"encoding/json"
	"fmt"
)

// Point addresses a cell by row and column. On the wire it is the pair [row, col].
type Point struct {
	Row int
	Col int
}

// Endpoints are the two markers that travel with a grid.
type Endpoints struct {
	Start       Point
	Destination Point
}

// Directions lists the four neighbor offsets in search order: up, right, down, left.
var Directions = [4]Point{
	{Row: -1, Col: 0},
	{Row: 0, Col: 1},
	{Row: 1, Col: 0},
	{Row: 0, Col: -1},
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Add returns p shifted by d.
func (p Point) Add(d Point) Point {
	return Point{Row: p.Row + d.Row, Col: p.Col + d.Col}
}

// Adjacent reports whether p and q share an edge.
func (p Point) Adjacent(q Point) bool {
	return abs(p.Row-q.Row)+abs(p.Col-q.Col) == 1
}

// Manhattan is the 4-connected distance between p and q.
func (p Point) Manhattan(q Point) int {
	return abs(p.Row-q.Row) + abs(p.Col-q.Col)
}

func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{p.Row, p.Col})
}

func (p *Point) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("point must be [row, col]: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("point must be [row, col], got %d values", len(pair))
	}
	p.Row, p.Col = pair[0], pair[1]
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
