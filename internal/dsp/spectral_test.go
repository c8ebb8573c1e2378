package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sine(freq, sampleRate float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)
	}
	return out
}

func TestProcessSpectrumLength(t *testing.T) {
	p := NewSpectralProcessor(2048, 44100)

	wave, spectrum := p.Process(make([]float64, 2048))

	assert.Len(t, wave, 2048)
	assert.Len(t, spectrum, 2048/2+1)
}

func TestProcessSilenceIsFloorClamped(t *testing.T) {
	p := NewSpectralProcessor(2048, 44100)

	_, spectrum := p.Process(make([]float64, 2048))

	for i, db := range spectrum {
		require.False(t, math.IsInf(db, -1), "bin %d is -Inf", i)
		// 1e-10 floor puts silence at exactly -200 dB
		assert.InDelta(t, -200.0, db, 1e-9, "bin %d", i)
	}
}

func TestProcess440HzPeakBin(t *testing.T) {
	const sampleRate = 44100.0
	p := NewSpectralProcessor(2048, sampleRate)

	_, spectrum := p.Process(sine(440, sampleRate, 2048))

	peakBin := 0
	for i, db := range spectrum {
		if db > spectrum[peakBin] {
			peakBin = i
		}
	}

	want := int(math.Round(440 / (sampleRate / 2048)))
	assert.InDelta(t, want, peakBin, 1, "peak bin")
	assert.Greater(t, spectrum[peakBin], -40.0, "peak magnitude in dB")
}

func TestProcessMismatchedFrameLength(t *testing.T) {
	p := NewSpectralProcessor(2048, 44100)

	// A 1024-sample frame must still produce a consistent spectrum.
	wave, spectrum := p.Process(sine(440, 44100, 1024))

	assert.Len(t, wave, 1024)
	assert.Len(t, spectrum, 1024/2+1)
}

func TestBinFor(t *testing.T) {
	p := NewSpectralProcessor(2048, 44100)

	assert.InDelta(t, 44100.0/2048.0, p.FreqResolution(), 1e-12)
	assert.Equal(t, int(math.Round(440/(44100.0/2048.0))), p.BinFor(440))
}

func TestHannWindowShape(t *testing.T) {
	w := hannWindow(8)

	require.Len(t, w, 8)
	assert.InDelta(t, 0, w[0], 1e-12, "periodic Hann starts at zero")
	assert.InDelta(t, 1, w[4], 1e-12, "periodic Hann peaks at n/2")
}
