package engine

import "image/color"

// Curve identifiers emitted in each frame. Renderers filter on these.
const (
	CurvePrimary = "primary"
	CurveInner   = "inner"
	CurveOuter   = "outer"
	CurveGlow    = "glow"
	CurveRing    = "ring"
	CurveLine    = "line"
)

// Point is a position in the engine's unit coordinate space, where the
// visualization fits inside [-1, 1] x [-1, 1].
type Point struct {
	X, Y float64
}

// Curve is one renderable polyline. Closed curves arrive with their first
// and last points coinciding.
type Curve struct {
	ID     string
	Points []Point
	Color  color.RGBA
	Width  float64
	Alpha  float64
}

// Dot is one renderable particle.
type Dot struct {
	X, Y  float64
	Size  float64
	Color color.RGBA
	Alpha float64
}

// Frame is the per-tick render payload: pure data, no drawing calls. The
// engine owns the slices only until the next Tick.
type Frame struct {
	Curves    []Curve
	Particles []Dot
}
