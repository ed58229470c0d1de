/*
Package render rasterizes grids onto a Canvas.

Render redraws the whole board with a square cell size that fits the canvas. RenderIncrement
overlays one cell for the animated replay and leaves every other pixel alone. Drawing the same
grid twice yields identical pixels.
*/
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"sync"

	"github.com/beka-birhanu/pathviz/grid"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const discRatio = 0.425 // Disc radius as a fraction of the cell size.

// RoleKind tags the overlay drawn by RenderIncrement.
type RoleKind int

const (
	Visited RoleKind = iota
	PathStep
)

// Role is the overlay for one cell. Index is its 1-based position in the visited order or
// along the path.
type Role struct {
	Kind  RoleKind
	Index int
}

func VisitedRole(index int) Role { return Role{Kind: Visited, Index: index} }
func PathStepRole(index int) Role { return Role{Kind: PathStep, Index: index} }

// Layout maps grid cells to pixels.
type Layout struct {
	Cell int // Side of a square cell in pixels.
	Cols int
	Rows int
}

// Rect is the pixel square of p.
func (l Layout) Rect(p grid.Point) image.Rectangle {
	x, y := p.Col*l.Cell, p.Row*l.Cell
	return image.Rect(x, y, x+l.Cell, y+l.Cell)
}

// CellAt converts a pixel to a cell. Pixels in the undrawn margin report false.
func (l Layout) CellAt(x, y int) (grid.Point, bool) {
	if l.Cell <= 0 || x < 0 || y < 0 {
		return grid.Point{}, false
	}
	p := grid.Point{Row: y / l.Cell, Col: x / l.Cell}
	if p.Row >= l.Rows || p.Col >= l.Cols {
		return grid.Point{}, false
	}
	return p, true
}

// Renderer draws grids and overlays onto a canvas.
type Renderer struct {
	canvas  *Canvas
	theme   Theme
	face    font.Face
	mu      sync.Mutex
	layout  Layout // Layout of the last full render.
	overlay bool   // Overlays drawn since the last full render.
}

func NewRenderer(canvas *Canvas, theme Theme) *Renderer {
	return &Renderer{
		canvas: canvas,
		theme:  theme,
		face:   basicfont.Face7x13,
	}
}

func (r *Renderer) Canvas() *Canvas { return r.canvas }

// LayoutFor computes the layout for a width x height grid on this canvas.
func (r *Renderer) LayoutFor(width, height int) (Layout, error) {
	if width <= 0 || height <= 0 {
		return Layout{}, fmt.Errorf("%w: %dx%d", grid.ErrInvalidDimensions, width, height)
	}
	cell := min(r.canvas.Width()/width, r.canvas.Height()/height)
	if cell < 1 {
		return Layout{}, fmt.Errorf("%w: %dx%d cells on %dx%d pixels",
			ErrCanvasTooSmall, width, height, r.canvas.Width(), r.canvas.Height())
	}
	return Layout{Cell: cell, Cols: width, Rows: height}, nil
}

// HasOverlay reports whether visited or path markings are on screen.
func (r *Renderer) HasOverlay() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.overlay
}

// Render redraws every cell of g and drops any overlay.
func (r *Renderer) Render(g *grid.Grid) error {
	layout, err := r.LayoutFor(g.Width(), g.Height())
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cells := g.Cells()
	r.canvas.update(func(img *image.RGBA) {
		draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)
		for i, state := range cells {
			p := grid.Point{Row: i / layout.Cols, Col: i % layout.Cols}
			r.drawCell(img, layout.Rect(p), state)
		}
	})
	r.layout = layout
	r.overlay = false
	return nil
}

// Clear draws an empty width x height board.
func (r *Renderer) Clear(width, height int) error {
	blank, err := grid.NewOpen(width, height)
	if err != nil {
		return err
	}
	return r.Render(blank)
}

// RenderIncrement overlays role on the cell at p of the last rendered grid.
func (r *Renderer) RenderIncrement(p grid.Point, role Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.Row < 0 || p.Col < 0 || p.Row >= r.layout.Rows || p.Col >= r.layout.Cols {
		return fmt.Errorf("%w: overlay at %s on %dx%d", grid.ErrOutOfBounds, p, r.layout.Cols, r.layout.Rows)
	}

	rect := r.layout.Rect(p)
	r.canvas.update(func(img *image.RGBA) {
		switch role.Kind {
		case PathStep:
			r.drawDisc(img, rect, r.theme.PathStep)
			r.drawLabel(img, rect, strconv.Itoa(role.Index), r.theme.PathStepText)
		default:
			r.drawDisc(img, rect, r.theme.Visited)
			r.drawLabel(img, rect, strconv.Itoa(role.Index), r.theme.VisitedText)
		}
	})
	r.overlay = true
	return nil
}

func (r *Renderer) drawCell(img *image.RGBA, rect image.Rectangle, state grid.CellState) {
	if state == grid.Wall {
		fill(img, rect, r.theme.Wall)
		stroke(img, rect, r.theme.WallBorder)
		return
	}

	fill(img, rect, r.theme.Background)
	stroke(img, rect, r.theme.Border)

	switch state {
	case grid.Start:
		r.drawDisc(img, rect, r.theme.Start)
		r.drawLabel(img, rect, "S", r.theme.Glyph)
	case grid.Destination:
		r.drawDisc(img, rect, r.theme.Destination)
		r.drawLabel(img, rect, "D", r.theme.Glyph)
	}
}

func (r *Renderer) drawDisc(img *image.RGBA, rect image.Rectangle, c color.RGBA) {
	side := float64(rect.Dx())
	radius := side * discRatio
	cx := float64(rect.Min.X) + side/2
	cy := float64(rect.Min.Y) + side/2

	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		dy := float64(y) + 0.5 - cy
		for x := rect.Min.X; x < rect.Max.X; x++ {
			dx := float64(x) + 0.5 - cx
			if dx*dx+dy*dy <= radius*radius {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

// drawLabel centers text in rect, clipped to the cell.
func (r *Renderer) drawLabel(img *image.RGBA, rect image.Rectangle, text string, c color.RGBA) {
	cell, ok := img.SubImage(rect).(*image.RGBA)
	if !ok {
		return
	}
	metrics := r.face.Metrics()
	d := &font.Drawer{
		Dst:  cell,
		Src:  image.NewUniform(c),
		Face: r.face,
	}
	width := d.MeasureString(text)
	cx := fixed.I(rect.Min.X + rect.Dx()/2)
	cy := fixed.I(rect.Min.Y + rect.Dy()/2)
	d.Dot = fixed.Point26_6{
		X: cx - width/2,
		Y: cy + (metrics.Ascent-metrics.Descent)/2,
	}
	d.DrawString(text)
}

func fill(img *image.RGBA, rect image.Rectangle, c color.RGBA) {
	draw.Draw(img, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

func stroke(img *image.RGBA, rect image.Rectangle, c color.RGBA) {
	for x := rect.Min.X; x < rect.Max.X; x++ {
		img.SetRGBA(x, rect.Min.Y, c)
		img.SetRGBA(x, rect.Max.Y-1, c)
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		img.SetRGBA(rect.Min.X, y, c)
		img.SetRGBA(rect.Max.X-1, y, c)
	}
}
