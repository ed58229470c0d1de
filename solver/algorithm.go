/*
Package solver is the path-search and grid-generation backend.

It answers four commands: generate_grid, dfs_solve, bfs_solve and a_star_solve. Replies carry
the path from start to destination, the expansion order for A*, and the elapsed search time
in seconds. The visualizer only reaches it through a transport, either in-process or over HTTP.
*/
package solver

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/beka-birhanu/pathviz/grid"
	"github.com/dgryski/go-farm"
)

// Solver-related errors.
var (
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	ErrInvalidRequest   = errors.New("invalid solve request")
)

// Algorithm selects the search strategy.
type Algorithm int

const (
	DFS Algorithm = iota
	BFS
	AStar
)

// Algorithms lists every supported strategy in selector order.
var Algorithms = []Algorithm{DFS, BFS, AStar}

func (a Algorithm) String() string {
	switch a {
	case DFS:
		return "dfs"
	case BFS:
		return "bfs"
	case AStar:
		return "a-star"
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// Command is the wire command name for a.
func (a Algorithm) Command() string {
	switch a {
	case DFS:
		return "dfs_solve"
	case BFS:
		return "bfs_solve"
	case AStar:
		return "a_star_solve"
	}
	return ""
}

// ReportsVisited reports whether replies for a carry the expansion order.
func (a Algorithm) ReportsVisited() bool {
	return a == AStar
}

// ParseAlgorithm accepts selector labels and command names.
func ParseAlgorithm(label string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "dfs", "dfs_solve":
		return DFS, nil
	case "bfs", "bfs_solve":
		return BFS, nil
	case "a-star", "astar", "a*", "a_star", "a_star_solve":
		return AStar, nil
	}
	return DFS, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, label)
}

func (a Algorithm) MarshalText() ([]byte, error) {
	if a.Command() == "" {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(a))
	}
	return []byte(a.String()), nil
}

func (a *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Request is one solve command. DFS and BFS search for the Destination marker and
// ignore the Destination field; A* steers towards it.
type Request struct {
	Algorithm   Algorithm
	Grid        *grid.Grid
	Start       grid.Point
	Destination grid.Point
}

// Validate checks the request can be searched.
func (r Request) Validate() error {
	if r.Grid == nil {
		return fmt.Errorf("%w: missing grid", ErrInvalidRequest)
	}
	if r.Algorithm.Command() == "" {
		return fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(r.Algorithm))
	}
	if !r.Grid.Contains(r.Start) {
		return fmt.Errorf("%w: start %s: %w", ErrInvalidRequest, r.Start, grid.ErrOutOfBounds)
	}
	if r.Algorithm == AStar && !r.Grid.Contains(r.Destination) {
		return fmt.Errorf("%w: destination %s: %w", ErrInvalidRequest, r.Destination, grid.ErrOutOfBounds)
	}
	return nil
}

// Fingerprint hashes everything that can change the reply. Used as a cache key.
func (r Request) Fingerprint() uint64 {
	dest := r.Destination
	if r.Algorithm != AStar {
		dest = grid.Point{}
	}
	cells := r.Grid.Cells()
	buf := make([]byte, 0, 8*7+len(cells))
	for _, v := range []int{
		int(r.Algorithm), r.Grid.Width(), r.Grid.Height(),
		r.Start.Row, r.Start.Col, dest.Row, dest.Col,
	} {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(v))
	}
	for _, c := range cells {
		buf = append(buf, byte(c))
	}
	return farm.Hash64(buf)
}
