/*
Package grid holds the rectangular cell model edited by the user and searched by the solver.

A Grid is row-major and fixed in size for its lifetime; resizing means building a new one.
The model only enforces bounds. Keeping exactly one Start and one Destination is the job of
whoever edits it.
*/
package grid

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Grid-related errors.
var (
	ErrOutOfBounds       = errors.New("point is outside the grid")
	ErrInvalidDimensions = errors.New("grid needs room for two distinct cells")
	ErrRaggedRows        = errors.New("grid rows have different lengths")
	ErrUnknownCellState  = errors.New("unknown cell state")
	ErrMissingEndpoint   = errors.New("grid has no start or destination marker")
	ErrInvalidEndpoints  = errors.New("start and destination must be distinct cells")
)

// Grid is a width x height board of cell states.
type Grid struct {
	width  int         // Number of columns.
	height int         // Number of rows.
	cells  []CellState // Row-major cells, len == width*height.
}

// DefaultEndpoints places Start at the top-left and Destination at the bottom-right.
func DefaultEndpoints(width, height int) Endpoints {
	return Endpoints{
		Start:       Point{Row: 0, Col: 0},
		Destination: Point{Row: height - 1, Col: width - 1},
	}
}

// NewOpen builds an all-Open grid without markers.
func NewOpen(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 || width*height < 2 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]CellState, width*height),
	}, nil
}

// New builds an all-Open grid with Start and Destination at the given points.
func New(width, height int, ends Endpoints) (*Grid, error) {
	g, err := NewOpen(width, height)
	if err != nil {
		return nil, err
	}
	if ends.Start == ends.Destination {
		return nil, ErrInvalidEndpoints
	}
	if err := g.Set(ends.Start, Start); err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	if err := g.Set(ends.Destination, Destination); err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}
	return g, nil
}

// NewDefault builds an all-Open grid with markers at DefaultEndpoints.
func NewDefault(width, height int) (*Grid, Endpoints, error) {
	ends := DefaultEndpoints(width, height)
	g, err := New(width, height, ends)
	if err != nil {
		return nil, Endpoints{}, err
	}
	return g, ends, nil
}

// FromRows copies rows into a new Grid after checking they form a rectangle.
func FromRows(rows [][]CellState) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty rows", ErrInvalidDimensions)
	}
	width := len(rows[0])
	g, err := NewOpen(width, len(rows))
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedRows, r, len(row), width)
		}
		for c, s := range row {
			if !s.Valid() {
				return nil, fmt.Errorf("%w at (%d,%d)", ErrUnknownCellState, r, c)
			}
		}
		copy(g.cells[r*width:(r+1)*width], row)
	}
	return g, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Contains reports whether p lies inside the grid.
func (g *Grid) Contains(p Point) bool {
	return p.Row >= 0 && p.Row < g.height && p.Col >= 0 && p.Col < g.width
}

// At returns the state of the cell at p.
func (g *Grid) At(p Point) (CellState, error) {
	if !g.Contains(p) {
		return Open, fmt.Errorf("%w: %s in %dx%d", ErrOutOfBounds, p, g.width, g.height)
	}
	return g.cells[p.Row*g.width+p.Col], nil
}

// Set overwrites the state of the cell at p.
func (g *Grid) Set(p Point, s CellState) error {
	if !g.Contains(p) {
		return fmt.Errorf("%w: %s in %dx%d", ErrOutOfBounds, p, g.width, g.height)
	}
	if !s.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownCellState, int(s))
	}
	g.cells[p.Row*g.width+p.Col] = s
	return nil
}

// Passable reports whether p is inside the grid and not a wall.
func (g *Grid) Passable(p Point) bool {
	return g.Contains(p) && g.cells[p.Row*g.width+p.Col] != Wall
}

// Find returns the first cell in row-major order holding s.
func (g *Grid) Find(s CellState) (Point, bool) {
	for i, c := range g.cells {
		if c == s {
			return Point{Row: i / g.width, Col: i % g.width}, true
		}
	}
	return Point{}, false
}

// Count returns how many cells hold s.
func (g *Grid) Count(s CellState) int {
	n := 0
	for _, c := range g.cells {
		if c == s {
			n++
		}
	}
	return n
}

// Locate finds the endpoints by first occurrence. Extra markers are ignored.
func (g *Grid) Locate() (Endpoints, error) {
	start, ok := g.Find(Start)
	if !ok {
		return Endpoints{}, fmt.Errorf("%w: start", ErrMissingEndpoint)
	}
	dest, ok := g.Find(Destination)
	if !ok {
		return Endpoints{}, fmt.Errorf("%w: destination", ErrMissingEndpoint)
	}
	return Endpoints{Start: start, Destination: dest}, nil
}

// Rows returns a copy of the cells as one slice per row.
func (g *Grid) Rows() [][]CellState {
	rows := make([][]CellState, g.height)
	for r := range rows {
		rows[r] = make([]CellState, g.width)
		copy(rows[r], g.cells[r*g.width:(r+1)*g.width])
	}
	return rows
}

// Cells exposes the row-major backing slice read-only by convention.
func (g *Grid) Cells() []CellState {
	return g.cells
}

func (g *Grid) Clone() *Grid {
	cells := make([]CellState, len(g.cells))
	copy(cells, g.cells)
	return &Grid{width: g.width, height: g.height, cells: cells}
}

// Equal reports whether g and o have the same size and cells.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.width != o.width || g.height != o.height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// String renders the grid one row per line: '.' open, '#' wall, 'S' start, 'D' destination.
func (g *Grid) String() string {
	glyphs := [...]byte{Open: '.', Wall: '#', Start: 'S', Destination: 'D'}
	out := make([]byte, 0, (g.width+1)*g.height)
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			out = append(out, glyphs[g.cells[r*g.width+c]])
		}
		out = append(out, '\n')
	}
	return string(out)
}

// MarshalJSON encodes the grid as rows of cell labels.
func (g *Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Rows())
}

func (g *Grid) UnmarshalJSON(data []byte) error {
	var rows [][]CellState
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	parsed, err := FromRows(rows)
	if err != nil {
		return err
	}
	*g = *parsed
	return nil
}

// Parse builds a grid from lines in the format produced by String.
func Parse(lines ...string) (*Grid, error) {
	rows := make([][]CellState, len(lines))
	for r, line := range lines {
		rows[r] = make([]CellState, len(line))
		for c, ch := range []byte(line) {
			switch ch {
			case '.':
				rows[r][c] = Open
			case '#':
				rows[r][c] = Wall
			case 'S':
				rows[r][c] = Start
			case 'D':
				rows[r][c] = Destination
			default:
				return nil, fmt.Errorf("%w: glyph %q at (%d,%d)", ErrUnknownCellState, ch, r, c)
			}
		}
	}
	return FromRows(rows)
}
