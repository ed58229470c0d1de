package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/beka-birhanu/pathviz/grid"
	"github.com/beka-birhanu/pathviz/service/i"
	"github.com/beka-birhanu/pathviz/solver"
)

// SolverService answers solver commands in-process. Replies are cached and runs are
// recorded when those adapters are configured.
type SolverService struct {
	generator *solver.Generator
	cache     i.ResultCache // Optional.
	runs      i.RunRepo     // Optional.
	logger    i.Logger
}

// SolverServiceConfig wires a SolverService.
type SolverServiceConfig struct {
	Generator *solver.Generator
	Cache     i.ResultCache
	Runs      i.RunRepo
	Logger    i.Logger
}

func NewSolverService(c *SolverServiceConfig) (*SolverService, error) {
	if c.Generator == nil {
		return nil, errors.New("solver service needs a generator")
	}
	if c.Logger == nil {
		return nil, errors.New("solver service needs a logger")
	}
	return &SolverService{
		generator: c.Generator,
		cache:     c.Cache,
		runs:      c.Runs,
		logger:    c.Logger,
	}, nil
}

// GenerateGrid runs generate_grid.
func (s *SolverService) GenerateGrid(ctx context.Context, width, height int) (*grid.Grid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.generator.Generate(width, height)
}

// Solve runs one search command.
func (s *SolverService) Solve(ctx context.Context, req solver.Request) (solver.Reply, error) {
	if err := req.Validate(); err != nil {
		return solver.Reply{}, err
	}
	if s.cache == nil {
		return s.solve(ctx, req)
	}

	key := req.Fingerprint()
	if reply, ok := s.cached(ctx, key); ok {
		s.record(req, reply, true)
		return reply, nil
	}

	unlock, err := s.cache.Lock(ctx, key)
	if err != nil {
		s.logger.Warning(fmt.Sprintf("cache lock %x: %v", key, err))
		return s.solve(ctx, req)
	}
	defer unlock()

	// Another worker may have filled it while we waited for the lock.
	if reply, ok := s.cached(ctx, key); ok {
		s.record(req, reply, true)
		return reply, nil
	}

	reply, err := s.solve(ctx, req)
	if err != nil {
		return reply, err
	}
	if err := s.cache.Put(ctx, key, reply); err != nil {
		s.logger.Warning(fmt.Sprintf("cache put %x: %v", key, err))
	}
	return reply, nil
}

// Runs returns the most recent recorded runs.
func (s *SolverService) Runs(limit int) ([]solver.Run, error) {
	if s.runs == nil {
		return []solver.Run{}, nil
	}
	return s.runs.Recent(limit)
}

func (s *SolverService) solve(ctx context.Context, req solver.Request) (solver.Reply, error) {
	reply, err := solver.Solve(ctx, req)
	if err != nil {
		return reply, err
	}
	s.record(req, reply, false)
	return reply, nil
}

func (s *SolverService) cached(ctx context.Context, key uint64) (solver.Reply, bool) {
	reply, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warning(fmt.Sprintf("cache get %x: %v", key, err))
		return solver.Reply{}, false
	}
	return reply, ok
}

func (s *SolverService) record(req solver.Request, reply solver.Reply, cached bool) {
	run := solver.NewRun(req, reply, cached)
	s.logger.Info(fmt.Sprintf("%s %dx%d: path %d, visited %d, %.6fs, cached=%t",
		req.Algorithm.Command(), run.Width, run.Height, run.PathLength, run.VisitedCount, run.Elapsed, cached))
	if s.runs == nil {
		return
	}
	if err := s.runs.Save(&run); err != nil {
		s.logger.Error(fmt.Sprintf("saving run %s: %v", run.ID, err))
	}
}
