package engine

import "math"

// CorePulse drives the glowing center: a slowly advancing phase modulates
// the radius and alpha of a small set of concentric rings, and sound
// intensity adds a direct boost on top of the periodic pulse.
type CorePulse struct {
	Phase         float64
	CurrentRadius float64
	CurrentAlpha  float64
}

// ringState is the per-ring geometry computed for one tick.
type ringState struct {
	Radius float64
	Alpha  float64
}

// advance moves the pulse one tick and returns the ring states, outermost
// last. Ring i sits further out and dimmer than ring i-1.
func (c *CorePulse) advance(dt, speed, baseRadius, intensity float64, rings int) []ringState {
	c.Phase += speed * dt
	if c.Phase > 2*math.Pi {
		c.Phase -= 2 * math.Pi
	}

	s := math.Sin(c.Phase)
	out := make([]ringState, rings)
	for i := range out {
		radius := baseRadius*(1+0.35*float64(i)) + 0.015*s + 0.06*intensity
		alpha := (0.6 - 0.12*float64(i)) * (0.75 + 0.25*s)
		alpha += 0.3 * intensity
		if alpha > 1 {
			alpha = 1
		}
		if alpha < 0 {
			alpha = 0
		}
		out[i] = ringState{Radius: radius, Alpha: alpha}
	}

	if rings > 0 {
		c.CurrentRadius = out[0].Radius
		c.CurrentAlpha = out[0].Alpha
	}
	return out
}

// circlePoints samples a closed circle of the given radius.
func circlePoints(radius float64, n int) []Point {
	pts := make([]Point, n+1)
	for i := 0; i <= n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Point{X: radius * math.Cos(a), Y: radius * math.Sin(a)}
	}
	return pts
}
