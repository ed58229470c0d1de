package solver

import "github.com/beka-birhanu/pathviz/grid"

// breadthFirst explores in layers and returns a shortest route to the nearest
// Destination cell.
func breadthFirst(g *grid.Grid, start grid.Point) []grid.Point {
	parents := map[grid.Point]grid.Point{start: start}
	queue := []grid.Point{start}

	for len(queue) > 0 {
		at := queue[0]
		queue = queue[1:]

		if state, _ := g.At(at); state == grid.Destination {
			return route(parents, start, at)
		}

		for _, d := range grid.Directions {
			next := at.Add(d)
			if !g.Passable(next) {
				continue
			}
			if _, seen := parents[next]; seen {
				continue
			}
			parents[next] = at
			queue = append(queue, next)
		}
	}
	return nil
}
