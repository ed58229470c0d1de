package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"sync"

	"github.com/yalue/image_utils"
)

var ErrCanvasTooSmall = errors.New("canvas is too small for the grid")

// Canvas is the raster surface the renderer draws on. Readers take snapshots while a
// replay is writing.
type Canvas struct {
	mu      sync.RWMutex
	img     *image.RGBA
	version uint64 // Bumped on every write.
}

func NewCanvas(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d pixels", ErrCanvasTooSmall, width, height)
	}
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, width, height))}, nil
}

func (c *Canvas) Width() int  { return c.img.Rect.Dx() }
func (c *Canvas) Height() int { return c.img.Rect.Dy() }

// Version changes whenever the pixels may have changed.
func (c *Canvas) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Snapshot returns a copy of the current pixels.
func (c *Canvas) Snapshot() *image.RGBA {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := image.NewRGBA(c.img.Rect)
	copy(out.Pix, c.img.Pix)
	return out
}

// CopyPixels copies the RGBA bytes into dst, which must hold Width*Height*4 bytes, and
// returns the version they belong to.
func (c *Canvas) CopyPixels(dst []byte) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	copy(dst, c.img.Pix)
	return c.version
}

func (c *Canvas) update(fn func(img *image.RGBA)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.img)
	c.version++
}

// WritePNG encodes the canvas framed by margin pixels of bg.
func (c *Canvas) WritePNG(w io.Writer, margin int, bg color.Color) error {
	frame := c.Snapshot()
	if margin < 0 {
		margin = 0
	}

	backdrop := image.NewRGBA(image.Rect(0, 0, frame.Rect.Dx()+2*margin, frame.Rect.Dy()+2*margin))
	draw.Draw(backdrop, backdrop.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	composite := image_utils.NewCompositeImage()
	if err := composite.AddImage(backdrop, image.Pt(0, 0)); err != nil {
		return fmt.Errorf("adding backdrop: %w", err)
	}
	if err := composite.AddImage(frame, image.Pt(margin, margin)); err != nil {
		return fmt.Errorf("adding frame: %w", err)
	}

	if err := png.Encode(w, image_utils.ToRGBA(composite)); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}
