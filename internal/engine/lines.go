package engine

import (
	"math"
	"math/rand"
)

// lineBezierSamples is the number of points emitted per light-line curve.
const lineBezierSamples = 16

// Polar is a point in polar coordinates.
type Polar struct {
	R, Theta float64
}

// LightLine is a short-lived decorative quadratic Bezier reaching from near
// the core toward the rim. Spawned stochastically from sound intensity,
// removed when its life runs out.
type LightLine struct {
	Start      Polar
	Mid        Polar
	End        Polar
	Hue        float64
	Width      float64
	Life       float64
	MaxLife    float64
	MaxOpacity float64
}

func (l *LightLine) cartesian(p Polar) Point {
	return Point{X: p.R * math.Cos(p.Theta), Y: p.R * math.Sin(p.Theta)}
}

// alpha fades linearly with remaining life.
func (l *LightLine) alpha() float64 {
	if l.MaxLife <= 0 {
		return 0
	}
	return l.MaxOpacity * (l.Life / l.MaxLife)
}

// sample evaluates the quadratic Bezier through start/mid/end at n points.
func (l *LightLine) sample(n int) []Point {
	p0 := l.cartesian(l.Start)
	p1 := l.cartesian(l.Mid)
	p2 := l.cartesian(l.End)

	pts := make([]Point, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		u := 1 - t
		pts[i] = Point{
			X: u*u*p0.X + 2*u*t*p1.X + t*t*p2.X,
			Y: u*u*p0.Y + 2*u*t*p1.Y + t*t*p2.Y,
		}
	}
	return pts
}

// spawnLine builds a candidate line anchored at the current hue. The end
// point diverges from the start angle by at most maxDivergence; a candidate
// whose start-to-end Euclidean span exceeds maxSpan is rejected (returns
// false) so lines never streak across the whole disk.
func spawnLine(rng *rand.Rand, baseRadius, maxDivergence, maxSpan, hue float64) (LightLine, bool) {
	startTheta := rng.Float64() * 2 * math.Pi
	divergence := (rng.Float64()*2 - 1) * maxDivergence

	start := Polar{R: baseRadius * (0.3 + rng.Float64()*0.2), Theta: startTheta}
	end := Polar{R: 0.7 + rng.Float64()*0.25, Theta: startTheta + divergence}
	mid := Polar{
		R:     (start.R + end.R) / 2 * (0.9 + rng.Float64()*0.3),
		Theta: startTheta + divergence*(0.3+rng.Float64()*0.4),
	}

	line := LightLine{
		Start:      start,
		Mid:        mid,
		End:        end,
		Hue:        hue + hueLines + (rng.Float64()-0.5)*0.08,
		Width:      1 + rng.Float64()*2,
		MaxLife:    20 + rng.Float64()*40,
		MaxOpacity: 0.45 + rng.Float64()*0.4,
	}
	line.Life = line.MaxLife

	a := line.cartesian(start)
	b := line.cartesian(end)
	if math.Hypot(b.X-a.X, b.Y-a.Y) > maxSpan {
		return LightLine{}, false
	}
	return line, true
}

// updateLines decays every line one tick and compacts the pool in place,
// clearing expired slots.
func updateLines(lines []LightLine) []LightLine {
	alive := lines[:0]
	for i := range lines {
		lines[i].Life--
		if lines[i].Life > 0 {
			alive = append(alive, lines[i])
		}
	}
	// Zero the tail so dropped lines don't linger in the backing array.
	for i := len(alive); i < len(lines); i++ {
		lines[i] = LightLine{}
	}
	return alive
}
