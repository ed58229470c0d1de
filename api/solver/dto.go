// Package solverapi exposes the solver commands over HTTP.
package solverapi

import (
	"time"

	"github.com/beka-birhanu/pathviz/grid"
	"github.com/beka-birhanu/pathviz/solver"
)

// GenerateGridRequest is the body of generate_grid.
type GenerateGridRequest struct {
	Width  int `json:"width" binding:"required,min=1"`
	Height int `json:"height" binding:"required,min=1"`
}

// SolveRequest is the body of dfs_solve, bfs_solve and a_star_solve. Dest is only
// read by a_star_solve.
type SolveRequest struct {
	Arr   *grid.Grid  `json:"arr" binding:"required"`
	Start *grid.Point `json:"start" binding:"required"`
	Dest  *grid.Point `json:"dest"`
}

// RunResponse is one entry of the run log.
type RunResponse struct {
	ID           string    `json:"id"`
	Algorithm    string    `json:"algorithm"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	PathLength   int       `json:"path_length"`
	VisitedCount int       `json:"visited_count"`
	Elapsed      float64   `json:"elapsed"`
	Cached       bool      `json:"cached"`
	Found        bool      `json:"found"`
	CreatedAt    time.Time `json:"created_at"`
}

func newRunResponse(run solver.Run) RunResponse {
	return RunResponse{
		ID:           run.ID.String(),
		Algorithm:    run.Algorithm.String(),
		Width:        run.Width,
		Height:       run.Height,
		PathLength:   run.PathLength,
		VisitedCount: run.VisitedCount,
		Elapsed:      run.Elapsed,
		Cached:       run.Cached,
		Found:        run.Found(),
		CreatedAt:    run.CreatedAt,
	}
}
