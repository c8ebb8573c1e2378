// Package render is the reference renderer for the engine's frame payload.
// It owns the scheduling: ebiten's 60Hz update loop drives App.Tick, and
// Draw only translates the most recent payload into vector strokes.
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"

	"github.com/halovis/halovis/internal/app"
	"github.com/halovis/halovis/internal/engine"
)

const (
	windowSize = 1000
	tickDelta  = 1.0 / 60
)

// Display modes, toggled with the 1/2/3 keys.
const (
	modeCurves = 1 // closed curves only
	modeFX     = 2 // particles, lines and core only
	modeAll    = 3
)

type Visualizer struct {
	app  *app.App
	log  zerolog.Logger
	mode int

	frame *engine.Frame
}

func New(a *app.App, log zerolog.Logger) *Visualizer {
	return &Visualizer{app: a, log: log, mode: modeAll}
}

// Run opens the window and blocks until it closes.
func (v *Visualizer) Run() error {
	ebiten.SetWindowSize(windowSize, windowSize)
	ebiten.SetWindowTitle("halovis")
	return ebiten.RunGame(v)
}

func (v *Visualizer) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		v.setMode(modeCurves)
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		v.setMode(modeFX)
	case inpututil.IsKeyJustPressed(ebiten.Key3):
		v.setMode(modeAll)
	}

	v.frame = v.app.Tick(tickDelta)
	return nil
}

func (v *Visualizer) setMode(mode int) {
	if mode == v.mode {
		return
	}
	v.mode = mode
	v.log.Info().Int("mode", mode).Msg("Display mode changed")
}

func (v *Visualizer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 5, G: 5, B: 10, A: 255})

	if v.frame == nil {
		return
	}

	for _, c := range v.frame.Curves {
		if !v.visible(c.ID) {
			continue
		}
		v.strokeCurve(screen, c)
	}

	if v.mode != modeCurves {
		for _, p := range v.frame.Particles {
			x, y := v.toScreen(p.X, p.Y)
			vector.DrawFilledCircle(screen, x, y, float32(p.Size), withAlpha(p.Color, p.Alpha), true)
		}
	}
}

func (v *Visualizer) Layout(_, _ int) (int, int) {
	return windowSize, windowSize
}

func (v *Visualizer) visible(id string) bool {
	switch v.mode {
	case modeCurves:
		return id == engine.CurvePrimary || id == engine.CurveInner ||
			id == engine.CurveOuter || id == engine.CurveGlow
	case modeFX:
		return id == engine.CurveRing || id == engine.CurveLine
	default:
		return true
	}
}

func (v *Visualizer) strokeCurve(screen *ebiten.Image, c engine.Curve) {
	if len(c.Points) < 2 {
		return
	}
	col := withAlpha(c.Color, c.Alpha)
	w := float32(c.Width)

	px, py := v.toScreen(c.Points[0].X, c.Points[0].Y)
	for _, p := range c.Points[1:] {
		x, y := v.toScreen(p.X, p.Y)
		vector.StrokeLine(screen, px, py, x, y, w, col, true)
		px, py = x, y
	}
}

// toScreen maps engine unit coordinates onto the square window, aspect
// locked with a small margin.
func (v *Visualizer) toScreen(x, y float64) (float32, float32) {
	const half = windowSize / 2
	const scale = half * 0.95
	return float32(half + x*scale), float32(half - y*scale)
}

func withAlpha(c color.RGBA, alpha float64) color.RGBA {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	c.A = uint8(alpha * 255)
	return c
}
