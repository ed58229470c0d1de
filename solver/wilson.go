package solver

import (
	"math/rand"

	"github.com/beka-birhanu/pathviz/grid"
	maze "github.com/beka-birhanu/wilson-maze"
)

// moduleMaxRooms is the largest lattice side wilson-maze accepts.
const moduleMaxRooms = 20

type passage struct {
	from grid.Point
	to   grid.Point
}

// wilson builds a uniform spanning tree over a rows x cols lattice of rooms using
// loop-erased random walks.
type wilson struct {
	rows int
	cols int
	rng  *rand.Rand
}

func (w *wilson) contains(p grid.Point) bool {
	return p.Row >= 0 && p.Row < w.rows && p.Col >= 0 && p.Col < w.cols
}

func (w *wilson) randomRoom() grid.Point {
	return grid.Point{Row: w.rng.Intn(w.rows), Col: w.rng.Intn(w.cols)}
}

func (w *wilson) randomUnvisitedRoom(visited map[grid.Point]struct{}) grid.Point {
	for {
		p := w.randomRoom()
		if _, included := visited[p]; !included {
			return p
		}
	}
}

func (w *wilson) neighbors(p grid.Point) []grid.Point {
	result := make([]grid.Point, 0, len(grid.Directions))
	for _, d := range grid.Directions {
		if next := p.Add(d); w.contains(next) {
			result = append(result, next)
		}
	}
	return result
}

// randomWalk wanders from an unvisited room until it reaches the tree. Only the last exit
// from each room is kept, which erases the loops.
func (w *wilson) randomWalk(visited map[grid.Point]struct{}) map[grid.Point]grid.Point {
	exits := make(map[grid.Point]grid.Point)
	room := w.randomUnvisitedRoom(visited)

	for {
		neighbors := w.neighbors(room)
		next := neighbors[w.rng.Intn(len(neighbors))]
		exits[room] = next
		if _, included := visited[next]; included {
			break
		}
		room = next
	}
	return exits
}

// passages returns the tree edges.
func (w *wilson) passages() []passage {
	total := w.rows * w.cols
	visited := map[grid.Point]struct{}{w.randomRoom(): {}}
	edges := make([]passage, 0, total-1)

	for len(visited) < total {
		for room, next := range w.randomWalk(visited) {
			edges = append(edges, passage{from: room, to: next})
			visited[room] = struct{}{}
		}
	}
	return edges
}

// modulePassages carves a rows x cols lattice with wilson-maze and reads the tree back
// from the open east and south walls.
func modulePassages(rows, cols int) ([]passage, error) {
	m, err := maze.New(cols, rows)
	if err != nil {
		return nil, err
	}

	edges := make([]passage, 0, rows*cols-1)
	for r, row := range m.RetriveGrid() {
		for c, cell := range row {
			from := grid.Point{Row: r, Col: c}
			if c+1 < cols && !cell.HasEastWall() {
				edges = append(edges, passage{from: from, to: grid.Point{Row: r, Col: c + 1}})
			}
			if r+1 < rows && !cell.HasSouthWall() {
				edges = append(edges, passage{from: from, to: grid.Point{Row: r + 1, Col: c}})
			}
		}
	}
	return edges, nil
}
