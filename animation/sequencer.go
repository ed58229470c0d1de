// Package animation replays solver output one cell at a time.
package animation

import (
	"context"
	"time"

	"github.com/beka-birhanu/pathviz/grid"
	"github.com/beka-birhanu/pathviz/render"
	"github.com/beka-birhanu/pathviz/solver"
)

// DefaultStepDelay is the pause after every drawn step.
const DefaultStepDelay = 50 * time.Millisecond

// Painter draws a single overlay cell.
type Painter interface {
	RenderIncrement(p grid.Point, role render.Role) error
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sequencer turns a solve result into timed incremental draws.
type Sequencer struct {
	painter Painter
	delay   time.Duration
	sleep   SleepFunc
}

// Options configures a Sequencer.
type Options struct {
	StepDelay time.Duration // Zero or negative means DefaultStepDelay.
	NoDelay   bool          // Draw every step without pausing; StepDelay is ignored.
	Sleep     SleepFunc     // Defaults to a timer bound to the context.
}

func NewSequencer(painter Painter, opts *Options) *Sequencer {
	s := &Sequencer{
		painter: painter,
		delay:   DefaultStepDelay,
		sleep:   sleepContext,
	}
	if opts != nil {
		switch {
		case opts.NoDelay:
			s.delay = 0
		case opts.StepDelay > 0:
			s.delay = opts.StepDelay
		}
		if opts.Sleep != nil {
			s.sleep = opts.Sleep
		}
	}
	return s
}

// Animate draws the visited cells in order, then the path with 1-based step labels,
// pausing after each draw. It returns once the whole replay is on the canvas, or with
// the context error if cancelled part way.
func (s *Sequencer) Animate(ctx context.Context, result solver.Result) error {
	switch result.Kind {
	case solver.NoPath:
		return nil
	case solver.PathWithVisited:
		for i, p := range result.Visited {
			if err := s.step(ctx, p, render.VisitedRole(i+1)); err != nil {
				return err
			}
		}
	}

	for i, p := range result.Path {
		if err := s.step(ctx, p, render.PathStepRole(i+1)); err != nil {
			return err
		}
	}
	return nil
}

// Steps is the number of draws Animate makes for result.
func Steps(result solver.Result) int {
	switch result.Kind {
	case solver.PathOnly:
		return len(result.Path)
	case solver.PathWithVisited:
		return len(result.Visited) + len(result.Path)
	}
	return 0
}

func (s *Sequencer) step(ctx context.Context, p grid.Point, role render.Role) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.painter.RenderIncrement(p, role); err != nil {
		return err
	}
	if s.delay == 0 {
		return nil
	}
	return s.sleep(ctx, s.delay)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
