// Package ui is the desktop front end: a window showing the session canvas next to a
// control panel.
package ui

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"sync"

	"github.com/beka-birhanu/pathviz/interaction"
	"github.com/beka-birhanu/pathviz/service"
	"github.com/beka-birhanu/pathviz/service/i"
	"github.com/beka-birhanu/pathviz/solver"
	"github.com/beka-birhanu/pathviz/ui/panel"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const panelWidth = 200

var (
	panelBg        = color.RGBA{R: 0x2b, G: 0x2b, B: 0x33, A: 0xff}
	buttonColor    = color.RGBA{R: 0x4a, G: 0x4a, B: 0x58, A: 0xff}
	selectedColor  = color.RGBA{R: 0x1c, G: 0x67, B: 0x58, A: 0xff}
	disabledColor  = color.RGBA{R: 0x33, G: 0x33, B: 0x3b, A: 0xff}
	noticeColor    = color.RGBA{R: 0xff, G: 0xc8, B: 0x57, A: 0xff}
	canvasBackdrop = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// App implements ebiten.Game over one session.
type App struct {
	ctx     context.Context
	session *service.Session
	notice  *panel.Notice
	logger  i.Logger

	controls panel.Controls
	buttons  []panel.Button

	canvasW, canvasH int
	canvasImg        *ebiten.Image
	pixels           []byte
	version          uint64
	drawn            bool

	wg sync.WaitGroup // Background generate and solve triggers.
}

// Config wires an App.
type Config struct {
	Session *service.Session
	Notice  *panel.Notice // Must be the session's notifier.
	Logger  i.Logger
	Width   int // Grid size used by generate and clear.
	Height  int
}

// NewApp builds the window state. Triggers run with ctx and are cancelled with it.
func NewApp(ctx context.Context, c *Config) (*App, error) {
	if c.Session == nil || c.Notice == nil || c.Logger == nil {
		return nil, errors.New("app needs a session, a notice and a logger")
	}
	canvas := c.Session.Canvas()
	w, h := canvas.Width(), canvas.Height()
	return &App{
		ctx:       ctx,
		session:   c.Session,
		notice:    c.Notice,
		logger:    c.Logger,
		controls:  panel.NewControls(c.Width, c.Height),
		buttons:   panel.Buttons(w+panel.ButtonMargin, panel.ButtonMargin, panelWidth-2*panel.ButtonMargin),
		canvasW:   w,
		canvasH:   h,
		canvasImg: ebiten.NewImage(w, h),
		pixels:    make([]byte, w*h*4),
	}, nil
}

// WindowSize is the outer size the app lays itself out for.
func (a *App) WindowSize() (int, int) {
	return a.canvasW + panelWidth, a.canvasH
}

// Wait blocks until background triggers have returned.
func (a *App) Wait() { a.wg.Wait() }

func (a *App) Update() error {
	if err := a.ctx.Err(); err != nil {
		return ebiten.Termination
	}

	a.handleKeys()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if x < a.canvasW {
			a.click(x, y)
		} else if b, ok := panel.Hit(a.buttons, x, y); ok {
			a.press(b)
		}
	}
	return nil
}

func (a *App) handleKeys() {
	keys := []struct {
		key    ebiten.Key
		button panel.Button
	}{
		{ebiten.KeyG, panel.Button{Action: panel.ActionGenerate, Trigger: true}},
		{ebiten.KeyC, panel.Button{Action: panel.ActionClear, Trigger: true}},
		{ebiten.KeyEnter, panel.Button{Action: panel.ActionSolve, Trigger: true}},
		{ebiten.KeySpace, panel.Button{Action: panel.ActionSolve, Trigger: true}},
		{ebiten.Key1, panel.Button{Action: panel.ActionMode, Mode: interaction.PlaceWall}},
		{ebiten.Key2, panel.Button{Action: panel.ActionMode, Mode: interaction.MoveStart}},
		{ebiten.Key3, panel.Button{Action: panel.ActionMode, Mode: interaction.MoveDestination}},
		{ebiten.KeyD, panel.Button{Action: panel.ActionAlgorithm, Algorithm: solver.DFS}},
		{ebiten.KeyB, panel.Button{Action: panel.ActionAlgorithm, Algorithm: solver.BFS}},
		{ebiten.KeyA, panel.Button{Action: panel.ActionAlgorithm, Algorithm: solver.AStar}},
		{ebiten.KeyArrowRight, panel.Button{Action: panel.ActionWider}},
		{ebiten.KeyArrowLeft, panel.Button{Action: panel.ActionNarrower}},
		{ebiten.KeyArrowDown, panel.Button{Action: panel.ActionTaller}},
		{ebiten.KeyArrowUp, panel.Button{Action: panel.ActionShorter}},
	}
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k.key) {
			a.press(k.button)
		}
	}
}

func (a *App) click(x, y int) {
	err := a.session.Click(x, y, a.controls.Mode)
	var perr *interaction.PlacementError
	switch {
	case err == nil, errors.As(err, &perr), errors.Is(err, interaction.ErrOutsideGrid):
	case errors.Is(err, service.ErrBusy):
		a.logger.Info("click ignored while busy")
	default:
		a.logger.Error(fmt.Sprintf("click at (%d, %d): %v", x, y, err))
	}
}

func (a *App) press(b panel.Button) {
	if a.controls.Apply(b) || !b.Trigger {
		return
	}
	if a.session.Busy() {
		return
	}

	switch b.Action {
	case panel.ActionClear:
		if err := a.session.Clear(a.controls.Width, a.controls.Height); err != nil && !errors.Is(err, service.ErrBusy) {
			a.logger.Error(fmt.Sprintf("clear: %v", err))
		}
	case panel.ActionGenerate:
		width, height := a.controls.Width, a.controls.Height
		a.background(func() error { return a.session.Generate(a.ctx, width, height) })
	case panel.ActionSolve:
		alg := a.controls.Algorithm
		a.background(func() error {
			_, err := a.session.Solve(a.ctx, alg)
			return err
		})
	}
}

func (a *App) background(fn func() error) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		err := fn()
		switch {
		case err == nil, errors.Is(err, service.ErrBusy), errors.Is(err, context.Canceled):
		default:
			a.logger.Error(err.Error())
		}
	}()
}

func (a *App) Draw(screen *ebiten.Image) {
	if v := a.session.Canvas().Version(); !a.drawn || v != a.version {
		a.version = a.session.Canvas().CopyPixels(a.pixels)
		a.canvasImg.WritePixels(a.pixels)
		a.drawn = true
	}

	ebitenutil.DrawRect(screen, 0, 0, float64(a.canvasW), float64(a.canvasH), canvasBackdrop)
	screen.DrawImage(a.canvasImg, &ebiten.DrawImageOptions{})

	a.drawPanel(screen)
}

func (a *App) drawPanel(screen *ebiten.Image) {
	left := a.canvasW
	ebitenutil.DrawRect(screen, float64(left), 0, panelWidth, float64(a.canvasH), panelBg)

	busy := a.session.Busy()
	for _, b := range a.buttons {
		fill := buttonColor
		switch {
		case a.controls.Selected(b):
			fill = selectedColor
		case b.Trigger && busy:
			fill = disabledColor
		}
		r := b.Rect
		ebitenutil.DrawRect(screen, float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()), fill)

		bounds := text.BoundString(basicfont.Face7x13, b.Label)
		x := r.Min.X + (r.Dx()-bounds.Dx())/2
		y := r.Min.Y + (r.Dy()+bounds.Dy())/2 - 1
		text.Draw(screen, b.Label, basicfont.Face7x13, x, y, color.White)
	}

	y := panel.ButtonMargin
	if n := len(a.buttons); n > 0 {
		y = a.buttons[n-1].Rect.Max.Y + 2*panel.ButtonMargin
	}
	x := left + panel.ButtonMargin
	text.Draw(screen, a.controls.Status(), basicfont.Face7x13, x, y+10, color.White)
	if busy {
		text.Draw(screen, "Working...", basicfont.Face7x13, x, y+28, color.White)
	}
	if msg := a.notice.Current(); msg != "" {
		text.Draw(screen, msg, basicfont.Face7x13, x, y+46, noticeColor)
	}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.WindowSize()
}

// Run opens the window and blocks until it is closed or the app context is done. Callers
// cancel that context and then Wait for triggers still replaying.
func Run(app *App, title string) error {
	w, h := app.WindowSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)
	err := ebiten.RunGame(app)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

var _ ebiten.Game = (*App)(nil)
