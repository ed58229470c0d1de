package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/beka-birhanu/pathviz/animation"
	"github.com/beka-birhanu/pathviz/grid"
	"github.com/beka-birhanu/pathviz/interaction"
	"github.com/beka-birhanu/pathviz/render"
	"github.com/beka-birhanu/pathviz/service/i"
	"github.com/beka-birhanu/pathviz/solver"
	"github.com/google/uuid"
)

// ErrBusy is returned for triggers that arrive while a generate or solve is running.
var ErrBusy = errors.New("session is busy")

// Notices shown to the user.
const (
	NoticeNoPath = "No path found!"
)

// ClearPolicy decides what clear leaves on the board.
type ClearPolicy string

const (
	// ClearReseed builds an open grid with markers at the default corners.
	ClearReseed ClearPolicy = "reseed"
	// ClearLegacy builds an all-open grid and keeps the old marker coordinates.
	ClearLegacy ClearPolicy = "legacy"
)

func ParseClearPolicy(s string) (ClearPolicy, error) {
	switch ClearPolicy(s) {
	case "", ClearReseed:
		return ClearReseed, nil
	case ClearLegacy:
		return ClearLegacy, nil
	}
	return ClearReseed, fmt.Errorf("unknown clear policy %q", s)
}

// Outcome is how a solve ended for the user.
type Outcome int

const (
	OutcomeNoPath Outcome = iota
	OutcomeAnimated
)

func (o Outcome) String() string {
	if o == OutcomeAnimated {
		return "animated"
	}
	return "no-path"
}

// Session owns one grid, its markers and its canvas, and admits one trigger at a time.
type Session struct {
	id          uuid.UUID
	gateway     *Gateway
	renderer    *render.Renderer
	clicks      *interaction.Controller
	sequencer   *animation.Sequencer
	notifier    i.Notifier
	logger      i.Logger
	clearPolicy ClearPolicy

	busy atomic.Bool
	mu   sync.RWMutex // Guards grid and ends for readers outside the busy gate.
	grid *grid.Grid
	ends grid.Endpoints
}

// SessionConfig wires a Session.
type SessionConfig struct {
	Gateway     *Gateway
	Renderer    *render.Renderer
	Sequencer   *animation.Sequencer
	Notifier    i.Notifier
	Logger      i.Logger
	ClearPolicy ClearPolicy
	Width       int // Initial grid size.
	Height      int
}

// NewSession builds a session showing an open grid with default markers.
func NewSession(c *SessionConfig) (*Session, error) {
	if c.Gateway == nil || c.Renderer == nil || c.Sequencer == nil {
		return nil, errors.New("session needs a gateway, a renderer and a sequencer")
	}
	if c.Notifier == nil || c.Logger == nil {
		return nil, errors.New("session needs a notifier and a logger")
	}
	policy, err := ParseClearPolicy(string(c.ClearPolicy))
	if err != nil {
		return nil, err
	}

	g, ends, err := grid.NewDefault(c.Width, c.Height)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	logger := c.Logger
	if fl, ok := logger.(i.FieldLogger); ok {
		logger = fl.With("session", id.String())
	}

	s := &Session{
		id:          id,
		gateway:     c.Gateway,
		renderer:    c.Renderer,
		clicks:      interaction.NewController(c.Renderer),
		sequencer:   c.Sequencer,
		notifier:    c.Notifier,
		logger:      logger,
		clearPolicy: policy,
		grid:        g,
		ends:        ends,
	}
	if err := s.renderer.Render(g); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) ID() uuid.UUID { return s.id }

// Busy reports whether a generate or solve is in flight.
func (s *Session) Busy() bool { return s.busy.Load() }

// Grid returns a copy of the current grid.
func (s *Session) Grid() *grid.Grid {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.Clone()
}

func (s *Session) Endpoints() grid.Endpoints {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ends
}

func (s *Session) Canvas() *render.Canvas { return s.renderer.Canvas() }

func (s *Session) acquire() error {
	if !s.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	return nil
}

func (s *Session) release() { s.busy.Store(false) }

// Generate replaces the grid with one from the backend and adopts its markers.
func (s *Session) Generate(ctx context.Context, width, height int) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	if err := s.renderer.Clear(width, height); err != nil {
		return err
	}

	g, ends, err := s.gateway.RequestGrid(ctx, width, height)
	if err == nil {
		err = s.renderer.Render(g)
	}
	if err != nil {
		s.notifier.Notify("Could not generate a grid!")
		s.restore()
		return err
	}

	s.mu.Lock()
	s.grid, s.ends = g, ends
	s.mu.Unlock()

	s.logger.Info(fmt.Sprintf("generated %dx%d grid, start %s destination %s", width, height, ends.Start, ends.Destination))
	return nil
}

// restore redraws the grid the session still holds.
func (s *Session) restore() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.renderer.Render(s.grid); err != nil {
		s.logger.Error(fmt.Sprintf("redrawing %dx%d grid: %v", s.grid.Width(), s.grid.Height(), err))
	}
}

// Clear replaces the grid with an open one of the given size.
func (s *Session) Clear(width, height int) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	var (
		g    *grid.Grid
		ends grid.Endpoints
		err  error
	)
	s.mu.RLock()
	ends = s.ends
	s.mu.RUnlock()

	switch s.clearPolicy {
	case ClearLegacy:
		g, err = grid.NewOpen(width, height)
	default:
		g, ends, err = grid.NewDefault(width, height)
	}
	if err != nil {
		return err
	}
	// The old grid stays when the canvas cannot hold the new one.
	if err := s.renderer.Render(g); err != nil {
		s.restore()
		return err
	}

	s.mu.Lock()
	s.grid, s.ends = g, ends
	s.mu.Unlock()
	return nil
}

// Click applies an edit at pixel (x, y). Refused edits are shown to the user.
func (s *Session) Click(x, y int, mode interaction.EditMode) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.clicks.HandleClick(s.grid, &s.ends, x, y, mode)
	var perr *interaction.PlacementError
	if errors.As(err, &perr) {
		s.notifier.Notify(capitalize(perr.Reason.Error()) + "!")
	}
	return err
}

// Solve searches the current grid and replays the answer. It returns once the replay has
// finished. A missing path and an unreachable backend both end as OutcomeNoPath; only the
// latter also returns an error.
func (s *Session) Solve(ctx context.Context, alg solver.Algorithm) (Outcome, error) {
	if err := s.acquire(); err != nil {
		return OutcomeNoPath, err
	}
	defer s.release()

	s.mu.RLock()
	g, ends := s.grid.Clone(), s.ends
	s.mu.RUnlock()

	if err := s.renderer.Render(g); err != nil {
		return OutcomeNoPath, err
	}

	result, err := s.gateway.RequestSolve(ctx, alg, g, ends.Start, ends.Destination)
	if err != nil {
		s.notifier.Notify(NoticeNoPath)
		return OutcomeNoPath, err
	}
	if result.Kind == solver.NoPath {
		s.notifier.Notify(NoticeNoPath)
		return OutcomeNoPath, nil
	}

	s.logger.Info(fmt.Sprintf("replaying %d steps", animation.Steps(result)))
	if err := s.sequencer.Animate(ctx, result); err != nil {
		return OutcomeAnimated, fmt.Errorf("replay: %w", err)
	}
	return OutcomeAnimated, nil
}

func capitalize(msg string) string {
	if msg == "" {
		return msg
	}
	if c := msg[0]; c >= 'a' && c <= 'z' {
		return string(c-'a'+'A') + msg[1:]
	}
	return msg
}
