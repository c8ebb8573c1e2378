package audio

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gordonklaus/portaudio"
)

// ErrDeviceNotFound means no enumerated device satisfied any selection
// predicate; capture must not start.
var ErrDeviceNotFound = errors.New("audio: no capture-capable device found")

// devicePredicates are evaluated in priority order over the host-provided
// device list. Every predicate additionally requires input channels, so the
// winner is always capture-capable. The localized tokens match the device
// names Windows exposes on Japanese systems.
var devicePredicates = []struct {
	label string
	match func(name string) bool
}{
	{"loopback", func(name string) bool {
		return strings.Contains(strings.ToLower(name), "loopback")
	}},
	{"localized loopback", func(name string) bool {
		return strings.Contains(name, "ループバック")
	}},
	{"wasapi", func(name string) bool {
		return strings.Contains(strings.ToLower(name), "wasapi")
	}},
	{"primary capture", func(name string) bool {
		return strings.Contains(name, "プライマリ サウンド キャプチャ")
	}},
	{"any input", func(string) bool {
		return true
	}},
}

// ResolveDevice maps a requested device index to a capture-capable device,
// falling back to automatic selection for negative indexes. An explicit index
// must name an input device; output-only devices are rejected rather than
// opened with zero channels.
func ResolveDevice(devices []*portaudio.DeviceInfo, deviceID int) (*portaudio.DeviceInfo, error) {
	if deviceID < 0 {
		return SelectDevice(devices)
	}
	if deviceID >= len(devices) {
		return nil, fmt.Errorf("device index %d out of range (%d devices)", deviceID, len(devices))
	}
	d := devices[deviceID]
	if d.MaxInputChannels <= 0 {
		return nil, fmt.Errorf("device %d (%q) has no input channels", deviceID, d.Name)
	}
	return d, nil
}

// SelectDevice picks the preferred capture device from the list. The first
// device matching the highest satisfied priority wins, so the result is
// deterministic for a fixed device list.
func SelectDevice(devices []*portaudio.DeviceInfo) (*portaudio.DeviceInfo, error) {
	for _, p := range devicePredicates {
		for _, d := range devices {
			if d.MaxInputChannels > 0 && p.match(d.Name) {
				return d, nil
			}
		}
	}
	return nil, ErrDeviceNotFound
}
