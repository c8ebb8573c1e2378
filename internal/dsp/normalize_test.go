package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaveMaxDecaysExponentially(t *testing.T) {
	n := NewNormalizer()

	// One loud frame, then silence.
	n.Normalize([]float64{1.0}, nil)
	require.InDelta(t, 1.0, n.WaveMax(), 1e-12)

	for i := 1; i <= 100; i++ {
		n.Normalize([]float64{0.0}, nil)
		want := math.Pow(peakRelease, float64(i))
		assert.InDelta(t, want, n.WaveMax(), 1e-9, "tick %d", i)
	}
}

func TestWaveMaxInstantAttack(t *testing.T) {
	n := NewNormalizer()

	n.Normalize([]float64{0.4}, nil)
	assert.InDelta(t, 0.4, n.WaveMax(), 1e-12)

	// A louder peak snaps the tracker up immediately.
	n.Normalize([]float64{0.9}, nil)
	assert.InDelta(t, 0.9, n.WaveMax(), 1e-12)
}

func TestWaveMaxNeverRisesWithoutHigherPeak(t *testing.T) {
	n := NewNormalizer()
	n.Normalize([]float64{1.0}, nil)

	prev := n.WaveMax()
	for i := 0; i < 50; i++ {
		n.Normalize([]float64{0.1}, nil)
		assert.LessOrEqual(t, n.WaveMax(), prev)
		prev = n.WaveMax()
	}
}

func TestTrackerFloor(t *testing.T) {
	n := NewNormalizer()

	// Prolonged silence must not drive the trackers to zero.
	for i := 0; i < 2000; i++ {
		n.Normalize([]float64{0.0}, []float64{-200.0})
	}

	assert.GreaterOrEqual(t, n.WaveMax(), peakFloor)
	assert.GreaterOrEqual(t, n.SpecMax(), peakFloor)
}

func TestNormalizeScalesWave(t *testing.T) {
	n := NewNormalizer()

	wave, _ := n.Normalize([]float64{0.5, -0.25, 0.125}, nil)

	assert.InDelta(t, 1.0, wave[0], 1e-12)
	assert.InDelta(t, -0.5, wave[1], 1e-12)
	assert.InDelta(t, 0.25, wave[2], 1e-12)
}

func TestNormalizeSpectrumRange(t *testing.T) {
	n := NewNormalizer()

	// -100 dB maps to 0, 0 dB maps to 1 before peak division.
	_, spec := n.Normalize(nil, []float64{-100, -50, 0})

	require.Len(t, spec, 3)
	assert.InDelta(t, 0.0, spec[0], 1e-12)
	assert.InDelta(t, 0.5, spec[1], 1e-12)
	assert.InDelta(t, 1.0, spec[2], 1e-12)

	for _, v := range spec {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	n := NewNormalizer()

	wave, spec := n.Normalize(nil, nil)

	assert.Empty(t, wave)
	assert.Empty(t, spec)
	assert.InDelta(t, peakFloor, n.WaveMax(), 1e-12)
}
