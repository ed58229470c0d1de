package i

import (
	"context"

	"github.com/beka-birhanu/pathviz/grid"
	"github.com/beka-birhanu/pathviz/solver"
)

// SolverBackend answers the solver commands, in-process or over the network.
type SolverBackend interface {
	// Solve runs one dfs_solve, bfs_solve or a_star_solve command.
	Solve(ctx context.Context, req solver.Request) (solver.Reply, error)

	// GenerateGrid runs generate_grid. The grid carries one Start and one Destination.
	GenerateGrid(ctx context.Context, width, height int) (*grid.Grid, error)
}

// RunHistory lists recorded solve runs.
type RunHistory interface {
	Runs(limit int) ([]solver.Run, error)
}
