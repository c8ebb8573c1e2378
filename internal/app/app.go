// Package app wires the capture, analysis and visualization stages into the
// tick loop the renderer drives.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/halovis/halovis/internal/audio"
	"github.com/halovis/halovis/internal/config"
	"github.com/halovis/halovis/internal/dsp"
	"github.com/halovis/halovis/internal/engine"
)

type Config struct {
	Audio  audio.Capture
	Config *config.Config
	Logger zerolog.Logger
}

// App glues the audio producer to the single-threaded consumer side:
// Tick drains the newest frame, runs the spectral and normalization stages
// on private copies, and advances the engine. No locks are held during FFT
// or geometry work.
type App struct {
	capture audio.Capture
	cfg     *config.Config
	log     zerolog.Logger

	proc   *dsp.SpectralProcessor
	norm   *dsp.Normalizer
	engine *engine.Engine

	mu      sync.Mutex
	running bool
}

func New(cfg Config) *App {
	return &App{
		capture: cfg.Audio,
		cfg:     cfg.Config,
		log:     cfg.Logger,
		norm:    dsp.NewNormalizer(),
		engine:  engine.New(cfg.Config.Visual, cfg.Config.Audio.WindowSize, cfg.Logger),
	}
}

// Start brings up the capture stream and builds the spectral stage against
// the rate the stream actually opened with. Idempotent.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.running {
		a.log.Info().Msg("Already running")
		return nil
	}

	if err := a.capture.Start(a.cfg.Audio.Device); err != nil {
		return err
	}

	a.proc = dsp.NewSpectralProcessor(a.cfg.Audio.WindowSize, a.capture.SampleRate())
	a.running = true

	a.log.Info().
		Float64("sample_rate", a.capture.SampleRate()).
		Int("window_size", a.cfg.Audio.WindowSize).
		Msg("Signal path ready")

	return nil
}

// Tick advances the visualization by dt seconds and returns the render
// payload. When no fresh frame is available the engine holds its prior
// geometry; time-driven subsystems still advance. Never blocks.
func (a *App) Tick(dt float64) *engine.Frame {
	in := engine.Input{}

	if frame, ok := a.capture.Frame(); ok && a.proc != nil {
		wave, spectrumDB := a.proc.Process(frame.Samples)
		in.Waveform, in.Spectrum = a.norm.Normalize(wave, spectrumDB)
		in.HasAudio = true
	}

	return a.engine.Tick(in, dt)
}

// Stop shuts the capture stream down. Idempotent; in-flight Tick work is
// unaffected because the engine never touches the stream.
func (a *App) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.running {
		return nil
	}

	if err := a.capture.Stop(); err != nil {
		a.log.Error().Err(err).Msg("Capture stop failed")
		return err
	}
	a.running = false

	return nil
}

func (a *App) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

func (a *App) ListDevices() ([]audio.Device, error) {
	return a.capture.ListDevices()
}
