package solver

import (
	"context"
	"time"
)

// Solve runs the requested search and times it.
func Solve(ctx context.Context, req Request) (Reply, error) {
	if err := req.Validate(); err != nil {
		return Reply{}, err
	}
	if err := ctx.Err(); err != nil {
		return Reply{}, err
	}

	began := time.Now()
	var reply Reply
	switch req.Algorithm {
	case DFS:
		reply.Path = depthFirst(req.Grid, req.Start)
	case BFS:
		reply.Path = breadthFirst(req.Grid, req.Start)
	case AStar:
		reply.Path, reply.Visited = aStar(req.Grid, req.Start, req.Destination)
		reply.WithVisited = true
	}
	reply.Elapsed = time.Since(began).Seconds()
	return reply, nil
}
