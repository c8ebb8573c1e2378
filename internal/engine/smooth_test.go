package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func closedPolygon(n int, radius func(theta float64) float64) []Point {
	pts := make([]Point, n)
	for i := range pts {
		theta := 2 * math.Pi * float64(i) / float64(n-1)
		r := radius(theta)
		pts[i] = Point{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
	}
	return pts
}

func TestSmoothClosedExactClosure(t *testing.T) {
	pts := closedPolygon(120, func(theta float64) float64 {
		return 0.5 + 0.1*math.Sin(3*theta)
	})

	out := smoothClosed(pts)

	require.Len(t, out, len(pts))
	assert.Equal(t, out[0], out[len(out)-1], "first and last samples must coincide")
}

func TestSmoothClosedConstantRadius(t *testing.T) {
	pts := closedPolygon(90, func(float64) float64 { return 0.4 })

	out := smoothClosed(pts)

	require.Len(t, out, len(pts))
	for i, p := range out {
		r := math.Hypot(p.X, p.Y)
		require.False(t, math.IsNaN(r), "point %d", i)
		assert.InDelta(t, 0.4, r, 1e-6, "point %d", i)
	}
}

func TestSmoothClosedStaysNearInput(t *testing.T) {
	pts := closedPolygon(360, func(theta float64) float64 {
		return 0.5 + 0.05*math.Sin(5*theta)
	})

	out := smoothClosed(pts)

	total := 0.0
	for i := range pts {
		dist := math.Hypot(out[i].X-pts[i].X, out[i].Y-pts[i].Y)
		assert.Less(t, dist, 0.05, "point %d drifted", i)
		total += dist
	}
	assert.Greater(t, total, 1e-9, "smoothing must not be the identity transform")
}

func TestSmoothClosedAttenuatesJaggedRadius(t *testing.T) {
	// Alternating radius spikes, the harshest input the fit should tame.
	pts := make([]Point, 121)
	for i := range pts {
		theta := 2 * math.Pi * float64(i) / float64(len(pts)-1)
		r := 0.5
		if i%2 == 1 {
			r = 0.7
		}
		pts[i] = Point{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
	}
	pts[len(pts)-1] = pts[0]

	out := smoothClosed(pts)

	require.Len(t, out, len(pts))
	assert.Equal(t, out[0], out[len(out)-1])
	assert.Less(t, radialVariance(out), radialVariance(pts)*0.25,
		"smoothed curve must carry far less radial jitter than the input")

	maxDisp := 0.0
	for i := 1; i < len(pts)-1; i++ {
		dist := math.Hypot(out[i].X-pts[i].X, out[i].Y-pts[i].Y)
		if dist > maxDisp {
			maxDisp = dist
		}
	}
	assert.Greater(t, maxDisp, 1e-3, "spiked points must actually move")
}

func radialVariance(pts []Point) float64 {
	mean := 0.0
	radii := make([]float64, len(pts))
	for i, p := range pts {
		radii[i] = math.Hypot(p.X, p.Y)
		mean += radii[i]
	}
	mean /= float64(len(pts))

	v := 0.0
	for _, r := range radii {
		d := r - mean
		v += d * d
	}
	return v / float64(len(pts))
}

func TestSmoothClosedDegenerateFallsBackToPolygon(t *testing.T) {
	pts := []Point{{1, 0}, {0, 1}, {-1, 0}, {1, 0}}

	out := smoothClosed(pts)

	assert.Equal(t, pts, out, "too few points must pass through unsmoothed")
}

func TestResampleLinear(t *testing.T) {
	src := []float64{0, 1, 2, 3}

	out := resampleLinear(src, 7)

	require.Len(t, out, 7)
	assert.InDelta(t, 0, out[0], 1e-12)
	assert.InDelta(t, 3, out[6], 1e-12)
	assert.InDelta(t, 1.5, out[3], 1e-12)
}

func TestResampleLinearSingleSample(t *testing.T) {
	out := resampleLinear([]float64{0.7}, 5)

	for _, v := range out {
		assert.Equal(t, 0.7, v)
	}
}

func TestPolarToCartesian(t *testing.T) {
	pts := polarToCartesian([]float64{1, 1}, []float64{0, math.Pi / 2})

	assert.InDelta(t, 1, pts[0].X, 1e-12)
	assert.InDelta(t, 0, pts[0].Y, 1e-12)
	assert.InDelta(t, 0, pts[1].X, 1e-12)
	assert.InDelta(t, 1, pts[1].Y, 1e-12)
}
