package engine

import (
	"math"

	"gonum.org/v1/gonum/interp"
)

// splinePad is how many knots are wrapped from each end of the closed
// polygon before fitting, so the spline sees continuous data across the
// angular seam.
const splinePad = 3

// knotSpacing is the approximate number of polygon samples per spline knot.
// Fitting through decimated, locally averaged knots is what attenuates
// sample-to-sample jitter; resampling the fit at full resolution restores
// the point count.
const knotSpacing = 4

// minSmoothPeriod is the fewest unique polygon samples the decimated fit
// needs; shorter polygons pass through unsmoothed.
const minSmoothPeriod = (2*splinePad + 2) * knotSpacing

// smoothClosed fits a periodic smoothing curve through a closed polygon and
// resamples it at the original point count. The spline knots are local
// averages of the polygon taken every knotSpacing samples, so high-frequency
// jitter is suppressed while the overall shape survives. The input's first
// and last points represent the same physical angle; the output is exactly
// closed (first and last samples coincide at the wrap point). Degenerate
// input falls back to the unsmoothed polygon.
func smoothClosed(pts []Point) []Point {
	n := len(pts)
	period := n - 1
	if period < minSmoothPeriod {
		out := make([]Point, n)
		copy(out, pts)
		return out
	}

	m := period / knotSpacing
	step := float64(period) / float64(m)

	// Knot axis in knot units, padded by wrapping so the fit is continuous
	// across the seam. Knot j and knot j+m are the same physical knot, so
	// Predict(0) and Predict(m) coincide and the curve closes exactly.
	total := m + 2*splinePad + 1
	ts := make([]float64, total)
	xs := make([]float64, total)
	ys := make([]float64, total)
	for i := 0; i < total; i++ {
		j := i - splinePad
		ts[i] = float64(j)
		x, y := knotAverage(pts, period, ((j%m)+m)%m, step)
		xs[i] = x
		ys[i] = y
	}

	var sx, sy interp.NaturalCubic
	if err := sx.Fit(ts, xs); err != nil {
		return pts
	}
	if err := sy.Fit(ts, ys); err != nil {
		return pts
	}

	out := make([]Point, n)
	for i := 0; i < n; i++ {
		u := float64(i) * float64(m) / float64(n-1)
		out[i] = Point{X: sx.Predict(u), Y: sy.Predict(u)}
	}
	out[n-1] = out[0]
	return out
}

// knotAverage returns the mean of the polygon samples centered on knot j,
// wrapping across the seam. The duplicate wrap sample at index period is
// never touched.
func knotAverage(pts []Point, period, j int, step float64) (float64, float64) {
	center := int(math.Round(float64(j) * step))
	half := knotSpacing / 2

	var sumX, sumY float64
	for k := -half; k <= half; k++ {
		p := pts[((center+k)%period+period)%period]
		sumX += p.X
		sumY += p.Y
	}
	count := float64(2*half + 1)
	return sumX / count, sumY / count
}

// polarToCartesian converts a radius array over theta into unit-space points.
func polarToCartesian(radii, theta []float64) []Point {
	pts := make([]Point, len(radii))
	for i := range radii {
		pts[i] = Point{
			X: radii[i] * math.Cos(theta[i]),
			Y: radii[i] * math.Sin(theta[i]),
		}
	}
	return pts
}

// resampleLinear maps src onto n points by linear interpolation against the
// source index axis.
func resampleLinear(src []float64, n int) []float64 {
	out := make([]float64, n)
	if len(src) == 0 || n == 0 {
		return out
	}
	if len(src) == 1 {
		for i := range out {
			out[i] = src[0]
		}
		return out
	}
	step := float64(len(src)-1) / float64(n-1)
	for i := 0; i < n; i++ {
		pos := float64(i) * step
		j := int(pos)
		if j >= len(src)-1 {
			out[i] = src[len(src)-1]
			continue
		}
		frac := pos - float64(j)
		out[i] = src[j]*(1-frac) + src[j+1]*frac
	}
	return out
}
