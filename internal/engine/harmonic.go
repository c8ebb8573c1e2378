package engine

import (
	"math"

	"github.com/halovis/halovis/internal/config"
)

// harmonicWave synthesizes the organic base motion: a sum of weighted
// sinusoids at integer angular frequencies, each drifting with time, plus a
// slow breathing term. Integer factors keep the sum periodic in θ, so the
// curve stays closed.
func harmonicWave(theta []float64, harmonics []config.Harmonic, t, breathPhase, breathDepth float64) []float64 {
	out := make([]float64, len(theta))
	for i, th := range theta {
		v := 0.0
		for _, h := range harmonics {
			v += h.Weight * math.Sin(h.Factor*th+t*h.Factor+h.Phase)
		}
		v += breathDepth * math.Sin(breathPhase+0.5*th)
		out[i] = v
	}
	return out
}

// circularSmooth applies a wrap-around moving average of the given window,
// suppressing high-frequency artifacts without breaking periodicity. The
// input is treated as one period with values[0] == values[len-1] physically;
// the duplicate wrap sample is skipped when wrapping.
func circularSmooth(values []float64, window int) []float64 {
	n := len(values)
	if window <= 1 || n < window {
		out := make([]float64, n)
		copy(out, values)
		return out
	}

	period := n - 1 // values[n-1] duplicates values[0]
	half := window / 2
	out := make([]float64, n)
	for i := 0; i < period; i++ {
		sum := 0.0
		for k := -half; k <= half; k++ {
			j := (i + k + period) % period
			sum += values[j]
		}
		out[i] = sum / float64(2*half+1)
	}
	out[period] = out[0]
	return out
}
