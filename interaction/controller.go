// Package interaction turns pointer clicks into grid edits.
package interaction

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beka-birhanu/pathviz/grid"
	"github.com/beka-birhanu/pathviz/render"
)

// Click-related errors.
var (
	ErrBlockedByWall    = errors.New("you cannot place a point on a wall")
	ErrOccupiedByMarker = errors.New("you cannot place points on top of each other")
	ErrOutsideGrid      = errors.New("click is outside the grid")
	ErrUnknownMode      = errors.New("unknown edit mode")
)

// EditMode decides what a click does.
type EditMode int

const (
	PlaceWall EditMode = iota
	MoveStart
	MoveDestination
)

// Modes lists every edit mode in selector order.
var Modes = []EditMode{PlaceWall, MoveStart, MoveDestination}

func (m EditMode) String() string {
	switch m {
	case PlaceWall:
		return "wall"
	case MoveStart:
		return "start"
	case MoveDestination:
		return "destination"
	}
	return fmt.Sprintf("EditMode(%d)", int(m))
}

func ParseEditMode(label string) (EditMode, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "wall", "block":
		return PlaceWall, nil
	case "start":
		return MoveStart, nil
	case "dest", "destination":
		return MoveDestination, nil
	}
	return PlaceWall, fmt.Errorf("%w: %q", ErrUnknownMode, label)
}

// PlacementError is a refused edit. Reason is ErrBlockedByWall or ErrOccupiedByMarker.
type PlacementError struct {
	At     grid.Point
	Mode   EditMode
	Reason error
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("%s at %s: %v", e.Mode, e.At, e.Reason)
}

func (e *PlacementError) Unwrap() error { return e.Reason }

// Surface is the part of the render pipeline a click needs.
type Surface interface {
	LayoutFor(width, height int) (render.Layout, error)
	HasOverlay() bool
	Render(g *grid.Grid) error
}

// Controller applies clicks to a grid and keeps the picture in sync.
type Controller struct {
	surface Surface
}

func NewController(surface Surface) *Controller {
	return &Controller{surface: surface}
}

// HandleClick edits g and ends for a click at pixel (x, y). Refused edits leave both
// untouched and return a *PlacementError.
func (c *Controller) HandleClick(g *grid.Grid, ends *grid.Endpoints, x, y int, mode EditMode) error {
	layout, err := c.surface.LayoutFor(g.Width(), g.Height())
	if err != nil {
		return err
	}
	target, ok := layout.CellAt(x, y)
	if !ok {
		return fmt.Errorf("%w: pixel (%d,%d)", ErrOutsideGrid, x, y)
	}

	if c.surface.HasOverlay() {
		if err := c.surface.Render(g); err != nil {
			return err
		}
	}

	if err := check(g, *ends, target, mode); err != nil {
		return err
	}
	if err := apply(g, ends, target, mode); err != nil {
		return err
	}
	return c.surface.Render(g)
}

func check(g *grid.Grid, ends grid.Endpoints, target grid.Point, mode EditMode) error {
	state, err := g.At(target)
	if err != nil {
		return err
	}
	if state == grid.Wall {
		return &PlacementError{At: target, Mode: mode, Reason: ErrBlockedByWall}
	}
	if target == ends.Start || target == ends.Destination {
		return &PlacementError{At: target, Mode: mode, Reason: ErrOccupiedByMarker}
	}
	return nil
}

func apply(g *grid.Grid, ends *grid.Endpoints, target grid.Point, mode EditMode) error {
	switch mode {
	case PlaceWall:
		return g.Set(target, grid.Wall)
	case MoveStart:
		return move(g, &ends.Start, target, grid.Start)
	case MoveDestination:
		return move(g, &ends.Destination, target, grid.Destination)
	}
	return fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
}

// move vacates the marker's old cell and writes it at target.
func move(g *grid.Grid, marker *grid.Point, target grid.Point, state grid.CellState) error {
	if err := g.Set(*marker, grid.Open); err != nil && !errors.Is(err, grid.ErrOutOfBounds) {
		return err
	}
	if err := g.Set(target, state); err != nil {
		return err
	}
	*marker = target
	return nil
}
