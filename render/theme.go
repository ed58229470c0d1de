package render

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	gcolor "github.com/gookit/color"
)

// Theme holds every color the renderer paints with.
type Theme struct {
	Background   color.RGBA
	Border       color.RGBA
	Wall         color.RGBA
	WallBorder   color.RGBA
	Start        color.RGBA
	Destination  color.RGBA
	Glyph        color.RGBA // Text on the start and destination discs.
	Visited      color.RGBA
	VisitedText  color.RGBA
	PathStep     color.RGBA
	PathStepText color.RGBA
}

func DefaultTheme() Theme {
	return Theme{
		Background:   color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Border:       color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff},
		Wall:         color.RGBA{R: 0x19, G: 0x18, B: 0x25, A: 0xff},
		WallBorder:   color.RGBA{R: 0x3b, G: 0x39, B: 0x4f, A: 0xff},
		Start:        color.RGBA{R: 0x1c, G: 0x67, B: 0x58, A: 0xff},
		Destination:  color.RGBA{R: 0xbe, G: 0x00, B: 0x00, A: 0xff},
		Glyph:        color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Visited:      color.RGBA{R: 0x00, G: 0x00, B: 0x8b, A: 0xff},
		VisitedText:  color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		PathStep:     color.RGBA{R: 0xad, G: 0xd8, B: 0xe6, A: 0xff},
		PathStepText: color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff},
	}
}

func (t *Theme) slots() map[string]*color.RGBA {
	return map[string]*color.RGBA{
		"background":     &t.Background,
		"border":         &t.Border,
		"wall":           &t.Wall,
		"wall_border":    &t.WallBorder,
		"start":          &t.Start,
		"destination":    &t.Destination,
		"glyph":          &t.Glyph,
		"visited":        &t.Visited,
		"visited_text":   &t.VisitedText,
		"path_step":      &t.PathStep,
		"path_step_text": &t.PathStepText,
	}
}

// ParseTheme applies hex color overrides ("#1C6758" or "1c6758") on top of DefaultTheme.
func ParseTheme(overrides map[string]string) (Theme, error) {
	theme := DefaultTheme()
	slots := theme.slots()

	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		slot, ok := slots[strings.ToLower(name)]
		if !ok {
			return theme, fmt.Errorf("unknown theme color %q", name)
		}
		rgb := gcolor.HexToRgb(overrides[name])
		if len(rgb) != 3 {
			return theme, fmt.Errorf("theme color %q: invalid hex %q", name, overrides[name])
		}
		*slot = color.RGBA{R: uint8(rgb[0]), G: uint8(rgb[1]), B: uint8(rgb[2]), A: 0xff}
	}
	return theme, nil
}
