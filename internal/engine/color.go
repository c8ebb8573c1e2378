package engine

import (
	"image/color"
	"math"
)

// Per-subsystem hue offsets keep the palette coherent: everything derives
// from the single cycling hue plus a fixed shift.
const (
	huePrimary   = 0.0
	hueInner     = 0.33
	hueOuter     = 0.66
	hueGlow      = 0.02
	hueParticles = 0.5
	hueLines     = 0.15
	hueCore      = 0.08
)

// hsvToRGB converts hue/saturation/value (hue in [0,1), wrapping) to RGB.
func hsvToRGB(h, s, v float64) color.RGBA {
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}
	h *= 360

	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return color.RGBA{
		R: uint8((r + m) * 255),
		G: uint8((g + m) * 255),
		B: uint8((b + m) * 255),
		A: 255,
	}
}
