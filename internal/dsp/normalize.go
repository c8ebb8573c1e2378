package dsp

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	// peakFloor keeps the trackers strictly positive so normalization can
	// never divide by zero, and doubles as the quiet-room gain ceiling.
	peakFloor = 0.1
	// peakRelease is the per-tick multiplicative decay of each tracker:
	// instant attack on louder peaks, ~0.5% release otherwise.
	peakRelease = 0.995
	// dbRange maps the displayed spectrum from [-100 dB, 0 dB] onto [0, 1]
	// before peak tracking.
	dbRange = 100.0
)

// Normalizer is the adaptive auto-gain stage. It tracks the running peak of
// the waveform and spectrum streams independently and divides each stream by
// its tracker, keeping both visually stable regardless of input loudness.
// Mutated once per tick by a single caller.
type Normalizer struct {
	waveMax float64
	specMax float64
}

func NewNormalizer() *Normalizer {
	return &Normalizer{waveMax: peakFloor, specMax: peakFloor}
}

// Normalize advances both trackers one tick and returns the scaled streams.
// The spectrum is first mapped from dB to a 0..1 display range.
func (n *Normalizer) Normalize(wave, spectrumDB []float64) (normWave, normSpec []float64) {
	normWave = make([]float64, len(wave))
	if len(wave) > 0 {
		n.waveMax = track(n.waveMax, floats.Norm(wave, math.Inf(1)))
		for i, v := range wave {
			normWave[i] = v / n.waveMax
		}
	}

	normSpec = make([]float64, len(spectrumDB))
	if len(spectrumDB) > 0 {
		peak := 0.0
		for i, db := range spectrumDB {
			v := (db + dbRange) / dbRange
			if v < 0 {
				v = 0
			}
			normSpec[i] = v
			if v > peak {
				peak = v
			}
		}
		n.specMax = track(n.specMax, peak)
		for i := range normSpec {
			normSpec[i] /= n.specMax
		}
	}

	return normWave, normSpec
}

// WaveMax exposes the waveform tracker for inspection.
func (n *Normalizer) WaveMax() float64 { return n.waveMax }

// SpecMax exposes the spectrum tracker for inspection.
func (n *Normalizer) SpecMax() float64 { return n.specMax }

func track(max, peak float64) float64 {
	max *= peakRelease
	if peak > max {
		max = peak
	}
	if max < peakFloor {
		max = peakFloor
	}
	return max
}
