// Package engine is the generative visualization core: a single-writer
// state machine that consumes one normalized waveform/spectrum pair per tick
// and emits renderable geometry. It owns no timers and issues no drawing
// calls; the host loop calls Tick and hands the payload to a renderer.
package engine

import (
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/halovis/halovis/internal/config"
)

// spectrumBinCap limits the spectrum index map to the musically interesting
// bins; everything above is mostly noise at display resolution.
const spectrumBinCap = 1000

// Input is one tick's worth of normalized audio. HasAudio false means no new
// frame arrived; the engine then holds the prior geometry while time-driven
// subsystems keep advancing.
type Input struct {
	Waveform []float64 // normalized mono samples, window length
	Spectrum []float64 // normalized spectrum, windowSize/2+1 bins
	HasAudio bool
}

// Engine holds all animation state. All mutation happens inside Tick, which
// must be called from a single goroutine; there are no concurrent writers by
// construction.
type Engine struct {
	cfg config.VisualConfig
	log zerolog.Logger
	rng *rand.Rand

	// immutable after construction
	theta   []float64
	specIdx []int

	// animation state
	time        float64
	hue         float64
	breathPhase float64
	particles   []Particle
	lines       []LightLine
	pulse       CorePulse
	history     *waveHistory

	// prior radius arrays, reused when no frame arrives
	primary, inner, outer []float64
	haveRadii             bool
	audioLive             bool
}

// New builds an engine for the given window size. The theta axis spans 0..2π
// inclusive, so the first and last angular samples represent the same
// physical angle and every radius array describes a closed curve.
func New(cfg config.VisualConfig, windowSize int, log zerolog.Logger) *Engine {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	n := cfg.NumPoints
	theta := make([]float64, n)
	for i := range theta {
		theta[i] = 2 * math.Pi * float64(i) / float64(n-1)
	}

	maxBin := windowSize / 2
	if maxBin > spectrumBinCap {
		maxBin = spectrumBinCap
	}
	specIdx := make([]int, n)
	for i := range specIdx {
		specIdx[i] = int(float64(i) * float64(maxBin) / float64(n-1))
	}

	return &Engine{
		cfg:       cfg,
		log:       log,
		rng:       rng,
		theta:     theta,
		specIdx:   specIdx,
		particles: newParticlePool(cfg.ParticleCount, rng),
		lines:     make([]LightLine, 0, cfg.MaxLines),
		history:   newWaveHistory(cfg.HistoryDepth),
	}
}

// Tick advances the engine by dt seconds and returns the render payload.
// It never blocks and never fails: missing audio only freezes the reactive
// geometry for the tick.
func (e *Engine) Tick(in Input, dt float64) *Frame {
	e.time += dt
	e.breathPhase += e.cfg.BreathSpeed * dt

	if in.HasAudio != e.audioLive {
		e.audioLive = in.HasAudio
		if in.HasAudio {
			e.log.Debug().Msg("Audio signal resumed")
		} else {
			e.log.Debug().Msg("Audio signal lost, holding geometry")
		}
	}

	intensity := 0.0
	if in.HasAudio {
		intensity = meanAbs(in.Waveform)
		e.computeRadii(in)
	}
	// Without a fresh frame the prior radius arrays are reused as-is.

	frame := &Frame{}

	if e.haveRadii {
		e.emitTrail(frame)
		e.emitLayers(frame)
		// Only fresh radii enter the trail; replaying a held frame would
		// stack identical ghosts.
		if in.HasAudio {
			e.history.push(e.primary)
		}
	}
	e.emitCore(frame, dt, intensity)
	e.stepLines(frame, intensity)
	e.stepParticles(frame, dt)

	e.hue = math.Mod(e.hue+e.cfg.HueStep, 1)

	return frame
}

// Hue exposes the current palette position.
func (e *Engine) Hue() float64 { return e.hue }

// computeRadii rebuilds the three layer radius arrays from fresh audio.
func (e *Engine) computeRadii(in Input) {
	n := e.cfg.NumPoints
	wave := resampleLinear(in.Waveform, n)
	spec := make([]float64, n)
	for i, idx := range e.specIdx {
		if idx < len(in.Spectrum) {
			spec[i] = in.Spectrum[idx]
		}
	}

	harm := harmonicWave(e.theta, e.cfg.Harmonics, e.time, e.breathPhase, e.cfg.BreathDepth)
	harm = circularSmooth(harm, e.cfg.SmoothingWindow)

	if e.primary == nil {
		e.primary = make([]float64, n)
		e.inner = make([]float64, n)
		e.outer = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		audio := wave[i]*e.cfg.WaveScale + spec[i]*e.cfg.SpectrumScale
		e.primary[i] = e.cfg.BaseRadius + audio + harm[i]
		e.inner[i] = e.cfg.BaseRadius*e.cfg.InnerScale + audio*0.6 + harm[i]*0.5
		e.outer[i] = e.cfg.BaseRadius*e.cfg.OuterScale + audio*1.3 + harm[i]*1.4
	}
	e.haveRadii = true
}

// emitLayers produces the three smoothed closed curves plus the primary glow.
func (e *Engine) emitLayers(frame *Frame) {
	primary := smoothClosed(polarToCartesian(e.primary, e.theta))
	inner := smoothClosed(polarToCartesian(e.inner, e.theta))
	outer := smoothClosed(polarToCartesian(e.outer, e.theta))

	frame.Curves = append(frame.Curves,
		Curve{ID: CurveGlow, Points: primary, Color: hsvToRGB(e.hue+hueGlow, 0.7, 1), Width: 8, Alpha: 0.12},
		Curve{ID: CurveOuter, Points: outer, Color: hsvToRGB(e.hue+hueOuter, 0.85, 0.9), Width: 1.5, Alpha: 0.8},
		Curve{ID: CurveInner, Points: inner, Color: hsvToRGB(e.hue+hueInner, 0.8, 0.95), Width: 1.5, Alpha: 0.8},
		Curve{ID: CurvePrimary, Points: primary, Color: hsvToRGB(e.hue+huePrimary, 0.75, 1), Width: 2, Alpha: 1},
	)
}

// emitTrail replays past primary radii as fading ghost curves, oldest
// faintest. Polygon rendering is plenty at trail alpha; the spline is saved
// for the live layers.
func (e *Engine) emitTrail(frame *Frame) {
	past := e.history.snapshot()
	for i, radii := range past {
		age := len(past) - i // 1 = newest stored
		alpha := 0.1 * float64(i+1) / float64(len(past)+1)
		frame.Curves = append(frame.Curves, Curve{
			ID:     CurveGlow,
			Points: polarToCartesian(radii, e.theta),
			Color:  hsvToRGB(e.hue+hueGlow-0.01*float64(age), 0.6, 0.9),
			Width:  4,
			Alpha:  alpha,
		})
	}
}

// emitCore renders the pulsing concentric rings.
func (e *Engine) emitCore(frame *Frame, dt, intensity float64) {
	rings := e.pulse.advance(dt, e.cfg.PulseSpeed, e.cfg.CoreRadius, intensity, e.cfg.RingCount)
	for _, r := range rings {
		frame.Curves = append(frame.Curves, Curve{
			ID:     CurveRing,
			Points: circlePoints(r.Radius, 60),
			Color:  hsvToRGB(e.hue+hueCore, 0.6, 1),
			Width:  1.5,
			Alpha:  r.Alpha,
		})
	}
}

// stepLines decays the pool, spawns at most one intensity-gated candidate
// per tick, and emits the surviving Bezier curves.
func (e *Engine) stepLines(frame *Frame, intensity float64) {
	e.lines = updateLines(e.lines)

	if len(e.lines) < e.cfg.MaxLines && e.rng.Float64() < intensity*e.cfg.LineSpawnScale {
		line, ok := spawnLine(e.rng, e.cfg.BaseRadius, e.cfg.LineDivergence, e.cfg.MaxLineSpan, e.hue)
		if ok {
			e.lines = append(e.lines, line)
		}
	}

	for i := range e.lines {
		l := &e.lines[i]
		frame.Curves = append(frame.Curves, Curve{
			ID:     CurveLine,
			Points: l.sample(lineBezierSamples),
			Color:  hsvToRGB(l.Hue, 0.7, 1),
			Width:  l.Width,
			Alpha:  l.alpha(),
		})
	}
}

// stepParticles advances the pool and emits the dots.
func (e *Engine) stepParticles(frame *Frame, dt float64) {
	updateParticles(e.particles, dt, e.rng)

	frame.Particles = make([]Dot, len(e.particles))
	for i, p := range e.particles {
		fade := p.Life / p.MaxLife
		frame.Particles[i] = Dot{
			X:     p.X,
			Y:     p.Y,
			Size:  p.Size,
			Color: hsvToRGB(e.hue+hueParticles, 0.6, 1),
			Alpha: p.Opacity * fade,
		}
	}
}

func meanAbs(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += math.Abs(v)
	}
	return sum / float64(len(values))
}
