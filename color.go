package quadgfx

import "image/color"

// RGBA represents a colour with red, green, blue, and alpha components.
// Each component is in the range [0, 1]. Components are float32 so that a
// value round-trips unchanged through the GPU uniform layout.
type RGBA struct {
	R, G, B, A float32
}

// RGB creates an opaque colour from RGB components.
func RGB(r, g, b float32) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// RGBAOf creates a colour from RGBA components.
func RGBAOf(r, g, b, a float32) RGBA {
	return RGBA{R: r, G: g, B: b, A: a}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	r, g, b, a := c.RGBA()
	return RGBA{
		R: float32(r) / 65535,
		G: float32(g) / 65535,
		B: float32(b) / 65535,
		A: float32(a) / 65535,
	}
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// Bytes returns the colour as 8-bit RGBA components.
// Values outside [0, 1] are clamped.
func (c RGBA) Bytes() [4]uint8 {
	return [4]uint8{
		uint8(clamp255(c.R * 255)),
		uint8(clamp255(c.G * 255)),
		uint8(clamp255(c.B * 255)),
		uint8(clamp255(c.A * 255)),
	}
}

// FromBytes creates a normalised colour from 8-bit RGBA components.
func FromBytes(r, g, b, a uint8) RGBA {
	return RGBA{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
		A: float32(a) / 255,
	}
}

// Premultiply returns a premultiplied colour.
func (c RGBA) Premultiply() RGBA {
	return RGBA{
		R: c.R * c.A,
		G: c.G * c.A,
		B: c.B * c.A,
		A: c.A,
	}
}

// clamp255 clamps a value to [0, 255].
func clamp255(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
