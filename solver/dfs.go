package solver

import "github.com/beka-birhanu/pathviz/grid"

type frame struct {
	at   grid.Point
	from grid.Point
}

// depthFirst explores with an explicit stack, pushing neighbors up, right, down, left, and
// stops at the first Destination cell it pops. It returns the tree route to it.
func depthFirst(g *grid.Grid, start grid.Point) []grid.Point {
	parents := make(map[grid.Point]grid.Point)
	stack := []frame{{at: start, from: start}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, seen := parents[top.at]; seen {
			continue
		}
		parents[top.at] = top.from

		if state, _ := g.At(top.at); state == grid.Destination {
			return route(parents, start, top.at)
		}

		// Push in reverse so "up" is popped first.
		for i := len(grid.Directions) - 1; i >= 0; i-- {
			next := top.at.Add(grid.Directions[i])
			if !g.Passable(next) {
				continue
			}
			if _, seen := parents[next]; seen {
				continue
			}
			stack = append(stack, frame{at: next, from: top.at})
		}
	}
	return nil
}

// route walks the parent chain back from end and returns it start first.
func route(parents map[grid.Point]grid.Point, start, end grid.Point) []grid.Point {
	var path []grid.Point
	for at := end; ; at = parents[at] {
		path = append(path, at)
		if at == start {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
