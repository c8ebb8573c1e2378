package audio

import "time"

// Frame is one fixed-length block of mono samples handed off from the
// capture callback to the tick-loop consumer. Consumed exactly once.
type Frame struct {
	Samples []float64
	Time    time.Time
}

// Capture defines the interface for audio capture
type Capture interface {
	// Start opens the stream. deviceID -1 selects a device automatically.
	// Calling Start on a running capture is a logged no-op.
	Start(deviceID int) error
	// Stop closes the stream before invalidating the frame queue.
	// Idempotent, safe to call repeatedly.
	Stop() error
	// Frame returns the newest pending frame without blocking. The second
	// return is false when no frame arrived since the last call.
	Frame() (Frame, bool)
	// SampleRate reports the rate the stream actually opened with.
	SampleRate() float64
	ListDevices() ([]Device, error)
	Close() error
}

// Device describes an input-capable audio device for operator listing.
type Device struct {
	Index         int
	Name          string
	InputChannels int
	SampleRate    float64
}
