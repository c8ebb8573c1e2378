package audio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"
	"github.com/rs/zerolog"

	"github.com/halovis/halovis/internal/config"
)

// paStream is the slice of *portaudio.Stream the capture needs; factored out
// so Stop/Close paths are testable without a live driver.
type paStream interface {
	Start() error
	Stop() error
	Close() error
}

type portAudioCapture struct {
	cfg config.AudioConfig
	log zerolog.Logger

	mu         sync.Mutex
	stream     paStream
	queue      chan Frame
	running    bool
	sampleRate float64
}

// New creates a new PortAudio-based audio capture
func New(cfg config.AudioConfig, log zerolog.Logger) (Capture, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	return &portAudioCapture{
		cfg:        cfg,
		log:        log,
		sampleRate: float64(cfg.SampleRate),
	}, nil
}

func (p *portAudioCapture) Start(deviceID int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		p.log.Info().Msg("Capture already running, ignoring Start")
		return nil
	}

	devices, err := portaudio.Devices()
	if err != nil {
		return fmt.Errorf("failed to enumerate devices: %w", err)
	}

	device, err := ResolveDevice(devices, deviceID)
	if err != nil {
		if errors.Is(err, ErrDeviceNotFound) {
			p.logDeviceTable(devices)
		}
		return err
	}

	// The device native rate wins over the configured one
	sampleRate := float64(p.cfg.SampleRate)
	if device.DefaultSampleRate > 0 {
		sampleRate = device.DefaultSampleRate
	}

	channels := p.cfg.Channels
	if device.MaxInputChannels < channels {
		channels = device.MaxInputChannels
	}

	queue := make(chan Frame, p.cfg.QueueDepth)

	// The callback runs on the driver's realtime thread: downmix, copy,
	// offer to the queue, return. Status flags are logged, never escalated.
	callback := func(in []float32, _ portaudio.StreamCallbackTimeInfo, flags portaudio.StreamCallbackFlags) {
		if flags != 0 {
			p.log.Warn().Uint64("flags", uint64(flags)).Msg("Stream status flag")
		}
		frame := Frame{
			Samples: downmixInterleaved(in, channels, len(in)/channels),
			Time:    time.Now(),
		}
		offer(queue, frame)
	}

	stream, err := portaudio.OpenStream(portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   device,
			Channels: channels,
			Latency:  device.DefaultLowInputLatency,
		},
		SampleRate:      sampleRate,
		FramesPerBuffer: p.cfg.WindowSize,
	}, callback)
	if err != nil {
		return fmt.Errorf("failed to open audio stream on %q: %w", device.Name, err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		return fmt.Errorf("failed to start audio stream on %q: %w", device.Name, err)
	}

	p.stream = stream
	p.queue = queue
	p.sampleRate = sampleRate
	p.running = true

	p.log.Info().
		Str("device", device.Name).
		Float64("sample_rate", sampleRate).
		Int("channels", channels).
		Int("block_size", p.cfg.WindowSize).
		Msg("Capture started")

	return nil
}

// Stop closes the stream before the queue is invalidated, so the realtime
// callback can never touch a torn-down queue. Repeated calls are no-ops.
func (p *portAudioCapture) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return nil
	}

	if p.stream != nil {
		if err := p.stream.Stop(); err != nil {
			p.log.Warn().Err(err).Msg("Stream stop failed")
		}
		if err := p.stream.Close(); err != nil {
			p.log.Warn().Err(err).Msg("Stream close failed")
		}
		p.stream = nil
	}
	p.queue = nil
	p.running = false

	p.log.Info().Msg("Capture stopped")
	return nil
}

// Frame drains the handoff queue and returns the newest frame, so the
// consumer never falls behind the producer. Non-blocking.
func (p *portAudioCapture) Frame() (Frame, bool) {
	p.mu.Lock()
	queue := p.queue
	p.mu.Unlock()

	if queue == nil {
		return Frame{}, false
	}

	var frame Frame
	ok := false
	for {
		select {
		case f := <-queue:
			frame, ok = f, true
		default:
			return frame, ok
		}
	}
}

func (p *portAudioCapture) SampleRate() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sampleRate
}

func (p *portAudioCapture) ListDevices() ([]Device, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	result := make([]Device, 0, len(devices))
	for i, d := range devices {
		if d.MaxInputChannels > 0 {
			result = append(result, Device{
				Index:         i,
				Name:          d.Name,
				InputChannels: d.MaxInputChannels,
				SampleRate:    d.DefaultSampleRate,
			})
		}
	}

	return result, nil
}

func (p *portAudioCapture) Close() error {
	p.Stop()
	portaudio.Terminate()
	return nil
}

func (p *portAudioCapture) logDeviceTable(devices []*portaudio.DeviceInfo) {
	for i, d := range devices {
		p.log.Info().
			Int("index", i).
			Str("name", d.Name).
			Int("in", d.MaxInputChannels).
			Int("out", d.MaxOutputChannels).
			Msg("Available device")
	}
}

// offer pushes a frame without ever blocking the realtime callback: when the
// queue is full the oldest frame is dropped to make room.
func offer(queue chan Frame, frame Frame) {
	select {
	case queue <- frame:
		return
	default:
	}
	select {
	case <-queue:
	default:
	}
	select {
	case queue <- frame:
	default:
	}
}

// downmixInterleaved reduces interleaved multi-channel samples to mono by
// channel average. Always returns a fresh slice; the input buffer belongs to
// the driver.
func downmixInterleaved(in []float32, channels, frames int) []float64 {
	out := make([]float64, frames)
	if channels <= 1 {
		for i := 0; i < frames && i < len(in); i++ {
			out[i] = float64(in[i])
		}
		return out
	}
	for i := 0; i < frames; i++ {
		sum := 0.0
		for c := 0; c < channels; c++ {
			sum += float64(in[i*channels+c])
		}
		out[i] = sum / float64(channels)
	}
	return out
}
