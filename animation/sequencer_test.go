package animation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/beka-birhanu/pathviz/grid"
	"github.com/beka-birhanu/pathviz/render"
	"github.com/beka-birhanu/pathviz/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type draw struct {
	at   grid.Point
	role render.Role
}

type recorder struct {
	draws []draw
	fail  error
}

func (r *recorder) RenderIncrement(p grid.Point, role render.Role) error {
	if r.fail != nil {
		return r.fail
	}
	r.draws = append(r.draws, draw{at: p, role: role})
	return nil
}

type sleeps struct {
	calls []time.Duration
}

func (s *sleeps) sleep(_ context.Context, d time.Duration) error {
	s.calls = append(s.calls, d)
	return nil
}

func pts(coords ...int) []grid.Point {
	out := make([]grid.Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		out = append(out, grid.Point{Row: coords[i], Col: coords[i+1]})
	}
	return out
}

func TestAnimateNoPath(t *testing.T) {
	rec := &recorder{}
	sl := &sleeps{}
	seq := NewSequencer(rec, &Options{Sleep: sl.sleep})

	require.NoError(t, seq.Animate(context.Background(), solver.Result{Kind: solver.NoPath}))
	assert.Empty(t, rec.draws)
	assert.Empty(t, sl.calls)
}

func TestAnimatePathOnly(t *testing.T) {
	rec := &recorder{}
	sl := &sleeps{}
	seq := NewSequencer(rec, &Options{Sleep: sl.sleep})
	path := pts(0, 0, 0, 1, 1, 1)

	require.NoError(t, seq.Animate(context.Background(), solver.Result{Kind: solver.PathOnly, Path: path}))

	require.Len(t, rec.draws, 3)
	for i, d := range rec.draws {
		assert.Equal(t, path[i], d.at)
		assert.Equal(t, render.PathStepRole(i+1), d.role)
	}
	assert.Equal(t, []time.Duration{DefaultStepDelay, DefaultStepDelay, DefaultStepDelay}, sl.calls)
}

func TestAnimateVisitedBeforePath(t *testing.T) {
	rec := &recorder{}
	sl := &sleeps{}
	seq := NewSequencer(rec, &Options{StepDelay: 10 * time.Millisecond, Sleep: sl.sleep})
	result := solver.Result{
		Kind:    solver.PathWithVisited,
		Visited: pts(0, 0, 1, 0, 0, 1, 1, 1),
		Path:    pts(0, 0, 0, 1, 1, 1),
	}

	require.NoError(t, seq.Animate(context.Background(), result))

	require.Len(t, rec.draws, Steps(result))
	for i := 0; i < 4; i++ {
		assert.Equal(t, render.VisitedRole(i+1), rec.draws[i].role)
		assert.Equal(t, result.Visited[i], rec.draws[i].at)
	}
	for i := 4; i < 7; i++ {
		assert.Equal(t, render.PathStepRole(i-3), rec.draws[i].role)
	}
	assert.Len(t, sl.calls, 7)
	assert.Equal(t, 10*time.Millisecond, sl.calls[0])
}

func TestAnimateNoDelaySkipsSleeping(t *testing.T) {
	rec := &recorder{}
	sl := &sleeps{}
	seq := NewSequencer(rec, &Options{StepDelay: 10 * time.Millisecond, NoDelay: true, Sleep: sl.sleep})

	require.NoError(t, seq.Animate(context.Background(), solver.Result{Kind: solver.PathOnly, Path: pts(0, 0, 0, 1)}))
	assert.Len(t, rec.draws, 2)
	assert.Empty(t, sl.calls)
}

func TestAnimateCancelled(t *testing.T) {
	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	seq := NewSequencer(rec, &Options{StepDelay: time.Millisecond, Sleep: func(ctx context.Context, d time.Duration) error {
		cancel()
		return sleepContext(ctx, d)
	}})

	err := seq.Animate(ctx, solver.Result{Kind: solver.PathOnly, Path: pts(0, 0, 0, 1, 0, 2)})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, rec.draws, 1)
}

func TestAnimatePropagatesDrawErrors(t *testing.T) {
	boom := errors.New("boom")
	seq := NewSequencer(&recorder{fail: boom}, &Options{NoDelay: true})

	err := seq.Animate(context.Background(), solver.Result{Kind: solver.PathOnly, Path: pts(0, 0)})
	assert.ErrorIs(t, err, boom)
}

func TestAnimateRealTimerHonoursDelay(t *testing.T) {
	rec := &recorder{}
	seq := NewSequencer(rec, &Options{StepDelay: 5 * time.Millisecond})

	began := time.Now()
	require.NoError(t, seq.Animate(context.Background(), solver.Result{Kind: solver.PathOnly, Path: pts(0, 0, 0, 1, 0, 2)}))
	assert.GreaterOrEqual(t, time.Since(began), 15*time.Millisecond)
}

func TestUnsetDelayUsesDefault(t *testing.T) {
	tests := []struct {
		name string
		opts *Options
	}{
		{"nil options", nil},
		{"sleep only", &Options{Sleep: func(context.Context, time.Duration) error { return nil }}},
		{"zero delay", &Options{StepDelay: 0}},
		{"negative delay", &Options{StepDelay: -time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, DefaultStepDelay, NewSequencer(&recorder{}, tt.opts).delay)
		})
	}
}
