package solver

import (
	"container/heap"

	"github.com/beka-birhanu/pathviz/grid"
)

type node struct {
	at    grid.Point
	f     int // g + heuristic.
	seq   int // Insertion order, breaks f ties first-in first-out.
	index int
}

type openSet []*node

func (q openSet) Len() int { return len(q) }

func (q openSet) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].seq < q[j].seq
}

func (q openSet) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *openSet) Push(x any) {
	n := x.(*node)
	n.index = len(*q)
	*q = append(*q, n)
}

func (q *openSet) Pop() any {
	old := *q
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*q = old[:len(old)-1]
	return n
}

// aStar searches from start to dest with the Manhattan heuristic. It returns the path
// (nil when dest is unreachable) and every cell in the order it was expanded.
func aStar(g *grid.Grid, start, dest grid.Point) (path, visited []grid.Point) {
	parents := map[grid.Point]grid.Point{start: start}
	cost := map[grid.Point]int{start: 0}
	closed := make(map[grid.Point]struct{})

	seq := 0
	open := &openSet{}
	heap.Push(open, &node{at: start, f: start.Manhattan(dest), seq: seq})

	for open.Len() > 0 {
		current := heap.Pop(open).(*node)
		if _, done := closed[current.at]; done {
			continue
		}
		closed[current.at] = struct{}{}
		visited = append(visited, current.at)

		if current.at == dest {
			return route(parents, start, dest), visited
		}

		for _, d := range grid.Directions {
			next := current.at.Add(d)
			if !g.Passable(next) {
				continue
			}
			if _, done := closed[next]; done {
				continue
			}
			tentative := cost[current.at] + 1
			if old, ok := cost[next]; ok && tentative >= old {
				continue
			}
			cost[next] = tentative
			parents[next] = current.at
			seq++
			heap.Push(open, &node{at: next, f: tentative + next.Manhattan(dest), seq: seq})
		}
	}
	return nil, visited
}
