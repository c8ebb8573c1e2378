package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
)

type Config struct {
	LogLevel string       `json:"log_level"`
	Audio    AudioConfig  `json:"audio"`
	Visual   VisualConfig `json:"visual"`
}

// AudioConfig controls device selection, the capture stream and the
// producer/consumer handoff queue.
type AudioConfig struct {
	Device     int `json:"device"`      // portaudio device index, -1 = auto-select
	SampleRate int `json:"sample_rate"` // requested rate; the device native rate wins
	Channels   int `json:"channels"`    // capture channels before the mono downmix
	WindowSize int `json:"window_size"` // FFT length and stream block size
	QueueDepth int `json:"queue_depth"` // frame handoff queue capacity (drop-oldest)
}

// VisualConfig holds every tunable of the visualization engine.
type VisualConfig struct {
	NumPoints       int     `json:"num_points"`       // angular resolution of the closed curves
	BaseRadius      float64 `json:"base_radius"`      // primary layer base radius (unit square)
	InnerScale      float64 `json:"inner_scale"`      // inner layer base radius multiplier
	OuterScale      float64 `json:"outer_scale"`      // outer layer base radius multiplier
	WaveScale       float64 `json:"wave_scale"`       // waveform contribution to radius
	SpectrumScale   float64 `json:"spectrum_scale"`   // spectrum contribution to radius
	SmoothingWindow int     `json:"smoothing_window"` // circular moving average width

	Harmonics   []Harmonic `json:"harmonics"`    // harmonic wave components
	BreathDepth float64    `json:"breath_depth"` // slow breathing modulation amplitude
	BreathSpeed float64    `json:"breath_speed"` // breathing phase advance per second

	ParticleCount int `json:"particle_count"` // fixed particle pool size

	MaxLines       int     `json:"max_lines"`        // light-line pool cap
	MaxLineSpan    float64 `json:"max_line_span"`    // spawn rejection: max start-end distance
	LineDivergence float64 `json:"line_divergence"`  // max angular spread of a line (radians)
	LineSpawnScale float64 `json:"line_spawn_scale"` // spawn probability per unit intensity

	RingCount  int     `json:"ring_count"`  // concentric core pulse rings
	CoreRadius float64 `json:"core_radius"` // innermost ring base radius
	PulseSpeed float64 `json:"pulse_speed"` // pulse phase advance per second

	HueStep      float64 `json:"hue_step"`      // hue advance per tick, wraps at 1
	HistoryDepth int     `json:"history_depth"` // ghost trail ring buffer capacity
}

// Harmonic is one weighted sinusoid of the harmonic wave synthesis.
// Weights need not sum to 1.
type Harmonic struct {
	Factor float64 `json:"factor"` // angular frequency multiplier
	Weight float64 `json:"weight"`
	Phase  float64 `json:"phase"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Audio: AudioConfig{
			Device:     -1,
			SampleRate: 44100,
			Channels:   2,
			WindowSize: 2048,
			QueueDepth: 8,
		},
		Visual: VisualConfig{
			NumPoints:       360,
			BaseRadius:      0.3,
			InnerScale:      0.72,
			OuterScale:      1.18,
			WaveScale:       0.2,
			SpectrumScale:   0.3,
			SmoothingWindow: 5,
			Harmonics: []Harmonic{
				{Factor: 3, Weight: 0.022, Phase: 0},
				{Factor: 5, Weight: 0.014, Phase: 1.1},
				{Factor: 8, Weight: 0.009, Phase: 2.4},
			},
			BreathDepth:    0.012,
			BreathSpeed:    0.9,
			ParticleCount:  64,
			MaxLines:       12,
			MaxLineSpan:    0.9,
			LineDivergence: 0.6,
			LineSpawnScale: 0.35,
			RingCount:      4,
			CoreRadius:     0.08,
			PulseSpeed:     2.2,
			HueStep:        0.0015,
			HistoryDepth:   6,
		},
	}
}

// Load reads the config from disk or returns defaults.
func Load() (*Config, error) {
	cfg := Default()

	if data, err := os.ReadFile(configPath()); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	path := configPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// configPath returns the platform-specific config file path
func configPath() string {
	var base string

	switch runtime.GOOS {
	case "darwin":
		base = os.Getenv("HOME") + "/Library/Application Support"
	case "windows":
		base = os.Getenv("APPDATA")
	default: // linux
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = xdg
		} else {
			base = os.Getenv("HOME") + "/.config"
		}
	}

	return filepath.Join(base, "halovis", "config.json")
}
