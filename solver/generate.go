package solver

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/beka-birhanu/pathviz/grid"
)

// Generator styles.
const (
	StyleScatter = "scatter" // Independent random walls.
	StyleMaze    = "maze"    // Perfect maze carved with Wilson's algorithm.
)

const (
	maxDimension       = 200
	defaultWallDensity = 0.3
)

var ErrInvalidDimensions = errors.New("invalid grid dimensions")

// GeneratorOptions configures a Generator. Zero values fall back to defaults.
type GeneratorOptions struct {
	Style       string
	WallDensity float64 // Wall probability for StyleScatter.
	Seed        int64   // Zero seeds from the clock.
}

// Generator builds random grids with exactly one Start and one Destination.
type Generator struct {
	style   string
	density float64
	rng     *rand.Rand
	seeded  bool
	mu      sync.Mutex // rand.Rand is not safe for concurrent use.
}

func NewGenerator(opts *GeneratorOptions) (*Generator, error) {
	o := GeneratorOptions{}
	if opts != nil {
		o = *opts
	}
	if o.Style == "" {
		o.Style = StyleScatter
	}
	if o.Style != StyleScatter && o.Style != StyleMaze {
		return nil, fmt.Errorf("unknown generator style %q", o.Style)
	}
	if o.WallDensity <= 0 || o.WallDensity >= 1 {
		o.WallDensity = defaultWallDensity
	}
	seeded := o.Seed != 0
	if !seeded {
		o.Seed = time.Now().UnixNano()
	}

	return &Generator{
		style:   o.Style,
		density: o.WallDensity,
		rng:     rand.New(rand.NewSource(o.Seed)),
		seeded:  seeded,
	}, nil
}

// Generate returns a new width x height grid.
func (gen *Generator) Generate(width, height int) (*grid.Grid, error) {
	if width <= 0 || height <= 0 || width*height < 2 || max(width, height) > maxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	gen.mu.Lock()
	defer gen.mu.Unlock()

	if gen.style == StyleMaze && width >= 3 && height >= 3 {
		return gen.maze(width, height)
	}
	return gen.scatter(width, height)
}

func (gen *Generator) scatter(width, height int) (*grid.Grid, error) {
	g, err := grid.NewOpen(width, height)
	if err != nil {
		return nil, err
	}

	cells := width * height
	startIdx := gen.rng.Intn(cells)
	destIdx := gen.rng.Intn(cells - 1)
	if destIdx >= startIdx {
		destIdx++
	}

	for i := 0; i < cells; i++ {
		p := grid.Point{Row: i / width, Col: i % width}
		switch {
		case i == startIdx:
			err = g.Set(p, grid.Start)
		case i == destIdx:
			err = g.Set(p, grid.Destination)
		case gen.rng.Float64() < gen.density:
			err = g.Set(p, grid.Wall)
		}
		if err != nil {
			return nil, err
		}
	}
	return g, nil
}

// maze lays a lattice of rooms on the even rows and columns and joins them into a
// spanning tree. Everything else is wall.
func (gen *Generator) maze(width, height int) (*grid.Grid, error) {
	g, err := grid.NewOpen(width, height)
	if err != nil {
		return nil, err
	}
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			if r%2 == 1 || c%2 == 1 {
				_ = g.Set(grid.Point{Row: r, Col: c}, grid.Wall)
			}
		}
	}

	w := wilson{rows: (height + 1) / 2, cols: (width + 1) / 2, rng: gen.rng}
	var edges []passage
	// The module draws from the global math/rand source, so seeded generators carve in-repo.
	if !gen.seeded && max(w.rows, w.cols) <= moduleMaxRooms {
		edges, err = modulePassages(w.rows, w.cols)
	}
	if err != nil || edges == nil {
		edges = w.passages()
	}
	for _, p := range edges {
		room := grid.Point{Row: p.from.Row * 2, Col: p.from.Col * 2}
		next := grid.Point{Row: p.to.Row * 2, Col: p.to.Col * 2}
		door := grid.Point{Row: (room.Row + next.Row) / 2, Col: (room.Col + next.Col) / 2}
		if err := g.Set(door, grid.Open); err != nil {
			return nil, err
		}
	}

	rooms := w.rows * w.cols
	startIdx := gen.rng.Intn(rooms)
	destIdx := gen.rng.Intn(rooms - 1)
	if destIdx >= startIdx {
		destIdx++
	}
	if err := g.Set(grid.Point{Row: startIdx / w.cols * 2, Col: startIdx % w.cols * 2}, grid.Start); err != nil {
		return nil, err
	}
	if err := g.Set(grid.Point{Row: destIdx / w.cols * 2, Col: destIdx % w.cols * 2}, grid.Destination); err != nil {
		return nil, err
	}
	return g, nil
}
