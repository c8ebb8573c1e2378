// Package dsp holds the numeric half of the signal path: windowed spectral
// analysis and adaptive peak normalization. Everything here operates on
// private copies; no locks, no goroutines.
package dsp

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// magnitudeFloor clamps FFT magnitudes before the logarithm so the dB
// conversion can never produce -Inf.
const magnitudeFloor = 1e-10

// SpectralProcessor turns a mono audio frame into a waveform slice and a
// dB-scaled magnitude spectrum. Output is a pure function of the input
// frame; no history is kept between calls.
type SpectralProcessor struct {
	windowSize int
	sampleRate float64
	window     []float64
}

func NewSpectralProcessor(windowSize int, sampleRate float64) *SpectralProcessor {
	return &SpectralProcessor{
		windowSize: windowSize,
		sampleRate: sampleRate,
		window:     hannWindow(windowSize),
	}
}

// Process returns the frame samples unchanged as the waveform, and the
// windowed real-FFT magnitude spectrum in dB (length len(samples)/2+1).
func (p *SpectralProcessor) Process(samples []float64) (wave, spectrumDB []float64) {
	window := p.window
	if len(samples) != len(window) {
		// Device quirk: block length drifted from the configured window.
		window = hannWindow(len(samples))
	}

	windowed := make([]float64, len(samples))
	for i := range samples {
		windowed[i] = samples[i] * window[i]
	}

	spectrum := fft.FFTReal(windowed)
	n := float64(len(samples))

	bins := len(samples)/2 + 1
	spectrumDB = make([]float64, bins)
	for i := 0; i < bins; i++ {
		mag := cmplx.Abs(spectrum[i]) / n
		if mag < magnitudeFloor {
			mag = magnitudeFloor
		}
		spectrumDB[i] = 20 * math.Log10(mag)
	}

	return samples, spectrumDB
}

// FreqResolution returns the width of one FFT bin in Hz.
func (p *SpectralProcessor) FreqResolution() float64 {
	return p.sampleRate / float64(p.windowSize)
}

// BinFor returns the spectrum bin index closest to the given frequency.
func (p *SpectralProcessor) BinFor(freq float64) int {
	return int(math.Round(freq / p.FreqResolution()))
}

// hannWindow generates periodic Hann coefficients for FFT analysis.
func hannWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 * (1.0 - math.Cos(2*math.Pi*float64(i)/float64(n)))
	}
	return w
}
