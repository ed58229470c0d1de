// Package panel holds the control panel state of the desktop visualizer: selected edit
// mode and algorithm, the grid size for the next generate or clear, the buttons and the
// notice line.
package panel

import (
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/beka-birhanu/pathviz/interaction"
	"github.com/beka-birhanu/pathviz/solver"
)

const (
	MinDimension = 2
	MaxDimension = 100

	ButtonHeight = 24
	ButtonMargin = 8

	noticeTTL = 4 * time.Second
)

// Action is what a button or key asks the app to do.
type Action int

const (
	ActionNone Action = iota
	ActionGenerate
	ActionClear
	ActionSolve
	ActionMode
	ActionAlgorithm
	ActionWider
	ActionNarrower
	ActionTaller
	ActionShorter
)

// Button is a clickable panel control.
type Button struct {
	Label     string
	Rect      image.Rectangle
	Action    Action
	Mode      interaction.EditMode
	Algorithm solver.Algorithm
	Trigger   bool // Disabled while the session is busy.
}

// Controls is the user's current selection.
type Controls struct {
	Mode      interaction.EditMode
	Algorithm solver.Algorithm
	Width     int
	Height    int
}

func NewControls(width, height int) Controls {
	c := Controls{Mode: interaction.PlaceWall, Algorithm: solver.AStar}
	c.Resize(width, height)
	return c
}

// Resize sets the grid size, clamped to the panel's bounds.
func (c *Controls) Resize(width, height int) {
	c.Width = clamp(width, MinDimension, MaxDimension)
	c.Height = clamp(height, MinDimension, MaxDimension)
}

// Apply updates the selection for a button. Trigger actions are left to the caller and
// reported false.
func (c *Controls) Apply(b Button) bool {
	switch b.Action {
	case ActionMode:
		c.Mode = b.Mode
	case ActionAlgorithm:
		c.Algorithm = b.Algorithm
	case ActionWider:
		c.Resize(c.Width+1, c.Height)
	case ActionNarrower:
		c.Resize(c.Width-1, c.Height)
	case ActionTaller:
		c.Resize(c.Width, c.Height+1)
	case ActionShorter:
		c.Resize(c.Width, c.Height-1)
	default:
		return false
	}
	return true
}

// Selected reports whether b shows the current selection.
func (c Controls) Selected(b Button) bool {
	switch b.Action {
	case ActionMode:
		return b.Mode == c.Mode
	case ActionAlgorithm:
		return b.Algorithm == c.Algorithm
	}
	return false
}

func (c Controls) Status() string {
	return fmt.Sprintf("%dx%d  %s  %s", c.Width, c.Height, c.Algorithm, c.Mode)
}

// Buttons lays the controls out top to bottom in a column starting at (x, y).
func Buttons(x, y, width int) []Button {
	var out []Button
	row := func(bs ...Button) {
		w := (width - ButtonMargin*(len(bs)-1)) / len(bs)
		for i, b := range bs {
			left := x + i*(w+ButtonMargin)
			b.Rect = image.Rect(left, y, left+w, y+ButtonHeight)
			out = append(out, b)
		}
		y += ButtonHeight + ButtonMargin
	}

	row(Button{Label: "Generate", Action: ActionGenerate, Trigger: true})
	row(Button{Label: "Clear", Action: ActionClear, Trigger: true})
	row(Button{Label: "Solve", Action: ActionSolve, Trigger: true})
	for _, alg := range solver.Algorithms {
		row(Button{Label: alg.String(), Action: ActionAlgorithm, Algorithm: alg})
	}
	for _, mode := range interaction.Modes {
		row(Button{Label: mode.String(), Action: ActionMode, Mode: mode})
	}
	row(Button{Label: "W-", Action: ActionNarrower}, Button{Label: "W+", Action: ActionWider})
	row(Button{Label: "H-", Action: ActionShorter}, Button{Label: "H+", Action: ActionTaller})
	return out
}

// Hit returns the button under (x, y).
func Hit(buttons []Button, x, y int) (Button, bool) {
	pt := image.Pt(x, y)
	for _, b := range buttons {
		if pt.In(b.Rect) {
			return b, true
		}
	}
	return Button{}, false
}

// Notice is the single message line. It implements the session notifier.
type Notice struct {
	mu      sync.Mutex
	message string
	at      time.Time
	now     func() time.Time
}

func NewNotice() *Notice {
	return &Notice{now: time.Now}
}

func (n *Notice) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.message = message
	n.at = n.now()
}

// Current returns the message until it expires.
func (n *Notice) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.message == "" || n.now().Sub(n.at) > noticeTTL {
		return ""
	}
	return n.message
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
