package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/pathviz/grid"
	"github.com/beka-birhanu/pathviz/service/i"
	"github.com/beka-birhanu/pathviz/solver"
)

// ErrSolverUnavailable covers every failure to get a usable answer from the backend.
var ErrSolverUnavailable = errors.New("solver unavailable")

// Gateway is the visualizer's only route to the solver backend.
type Gateway struct {
	backend i.SolverBackend
	logger  i.Logger
	timeout time.Duration
}

// GatewayConfig configures a Gateway.
type GatewayConfig struct {
	Backend i.SolverBackend
	Logger  i.Logger
	Timeout time.Duration // Zero waits as long as the caller's context allows.
}

func NewGateway(c *GatewayConfig) (*Gateway, error) {
	if c.Backend == nil {
		return nil, errors.New("gateway needs a solver backend")
	}
	if c.Logger == nil {
		return nil, errors.New("gateway needs a logger")
	}
	return &Gateway{
		backend: c.Backend,
		logger:  c.Logger,
		timeout: c.Timeout,
	}, nil
}

// RequestSolve asks the backend to search g and classifies the reply by its shape.
// DFS and BFS requests only carry the start point.
func (gw *Gateway) RequestSolve(ctx context.Context, alg solver.Algorithm, g *grid.Grid, start, dest grid.Point) (solver.Result, error) {
	ctx, cancel := gw.bound(ctx)
	defer cancel()

	req := solver.Request{Algorithm: alg, Grid: g.Clone(), Start: start}
	if alg.ReportsVisited() {
		req.Destination = dest
	}

	reply, err := gw.backend.Solve(ctx, req)
	if err != nil {
		gw.logger.Error(fmt.Sprintf("%s on %dx%d failed: %v", alg.Command(), g.Width(), g.Height(), err))
		return solver.Result{}, fmt.Errorf("%w: %w", ErrSolverUnavailable, err)
	}

	result := reply.Classify()
	gw.logger.Info(fmt.Sprintf("%s took %.6fs: %s, path %d, visited %d",
		alg.Command(), reply.Elapsed, result.Kind, len(result.Path), len(result.Visited)))
	return result, nil
}

// RequestGrid asks the backend for a new grid and finds its markers.
func (gw *Gateway) RequestGrid(ctx context.Context, width, height int) (*grid.Grid, grid.Endpoints, error) {
	ctx, cancel := gw.bound(ctx)
	defer cancel()

	g, err := gw.backend.GenerateGrid(ctx, width, height)
	if err != nil {
		gw.logger.Error(fmt.Sprintf("generate_grid %dx%d failed: %v", width, height, err))
		return nil, grid.Endpoints{}, fmt.Errorf("%w: %w", ErrSolverUnavailable, err)
	}

	ends, err := g.Locate()
	if err != nil {
		gw.logger.Error(fmt.Sprintf("generate_grid %dx%d returned a grid without markers", width, height))
		return nil, grid.Endpoints{}, fmt.Errorf("%w: %w", ErrSolverUnavailable, err)
	}
	if g.Count(grid.Start) > 1 || g.Count(grid.Destination) > 1 {
		gw.logger.Warning(fmt.Sprintf("generate_grid returned extra markers, using %s and %s", ends.Start, ends.Destination))
	}
	return g, ends, nil
}

func (gw *Gateway) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if gw.timeout > 0 {
		return context.WithTimeout(ctx, gw.timeout)
	}
	return context.WithCancel(ctx)
}
