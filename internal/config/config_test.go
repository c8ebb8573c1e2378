package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, -1, cfg.Audio.Device, "auto-select by default")
	assert.Equal(t, 44100, cfg.Audio.SampleRate)
	assert.Equal(t, 2, cfg.Audio.Channels)
	assert.Equal(t, 2048, cfg.Audio.WindowSize)
	assert.Greater(t, cfg.Audio.QueueDepth, 0, "unbounded queues are disallowed")

	assert.Equal(t, 360, cfg.Visual.NumPoints)
	assert.Equal(t, 0.3, cfg.Visual.BaseRadius)
	assert.Equal(t, 0.2, cfg.Visual.WaveScale)
	assert.Equal(t, 0.3, cfg.Visual.SpectrumScale)
	assert.Greater(t, cfg.Visual.ParticleCount, 0)
	assert.Greater(t, cfg.Visual.MaxLines, 0)
	assert.Greater(t, cfg.Visual.MaxLineSpan, 0.0)
	assert.NotEmpty(t, cfg.Visual.Harmonics)

	require.Greater(t, cfg.Visual.HueStep, 0.0)
	assert.Less(t, cfg.Visual.HueStep, 1.0)
}

func TestLoadWithoutFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("APPDATA", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("APPDATA", dir)

	cfg := Default()
	cfg.Visual.NumPoints = 720
	cfg.Audio.Device = 3
	require.NoError(t, cfg.Save())

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 720, got.Visual.NumPoints)
	assert.Equal(t, 3, got.Audio.Device)
}
