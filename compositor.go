package quadgfx

import "fmt"

// CompositeMode selects which fragment-stage compositor a quad is rendered
// with. Each mode maps to one render pipeline in the render package and to
// one pure function in this file; the two implementations compute the same
// arithmetic.
type CompositeMode uint8

const (
	// ModeSolid renders a flat-coloured quad. The highlight dims the
	// background proportionally to the overlay alpha before blending in
	// white, interpolating the visible colour toward white.
	ModeSolid CompositeMode = iota

	// ModeFlash renders a flat-coloured quad with a non-attenuating
	// highlight: the overlay alpha is added to every colour channel
	// without first dimming the background, so bright colours can exceed
	// the normal range. Saturation is left to the downstream blend stage.
	ModeFlash

	// ModeTextured composites a sampled texture over the background
	// colour, then applies the same highlight as ModeSolid to the result.
	ModeTextured
)

// String returns a human-readable name for the mode.
func (m CompositeMode) String() string {
	switch m {
	case ModeSolid:
		return "solid"
	case ModeFlash:
		return "flash"
	case ModeTextured:
		return "textured"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(m))
	}
}

// CompositeSolid computes the solid compositor output:
//
//	out.rgb = back.rgb*(1-o) + o
//	out.a   = back.a
//
// The overlay affects only how the background looks, not how transparent
// it is. No clamping is applied: an overlay alpha outside [0, 1] produces
// colour values outside the normal range.
func CompositeSolid(u MeshUniform) RGBA {
	o := u.OverlayAlpha
	back := u.BackColour
	return RGBA{
		R: back.R*(1-o) + o,
		G: back.G*(1-o) + o,
		B: back.B*(1-o) + o,
		A: back.A,
	}
}

// CompositeFlash computes the flash compositor output:
//
//	out.rgb = back.rgb + o
//	out.a   = back.a
//
// Unlike CompositeSolid this does not interpolate toward white; it
// brightens by simple addition, which can push channels above 1 when the
// background is already bright. No clamping is applied here.
func CompositeFlash(u MeshUniform) RGBA {
	o := u.OverlayAlpha
	back := u.BackColour
	return RGBA{
		R: back.R + o,
		G: back.G + o,
		B: back.B + o,
		A: back.A,
	}
}

// CompositeTextured computes the textured compositor output. The texel is
// the foreground layer; the background colour fills whatever alpha budget
// the texel has not consumed, capped by the background's own alpha:
//
//	avail        = min(back.a, 1 - tex.a)
//	combined.rgb = tex.rgb + back.rgb*avail
//	combined.a   = avail
//
// then the solid highlight is applied to combined:
//
//	out.rgb = combined.rgb*(1-o) + o
//	out.a   = combined.a
//
// Note that combined.a does not include the texel's own alpha: a fully
// opaque texel (tex.a = 1) yields combined.a = 0 even though combined.rgb
// carries the texel's full colour. This matches the shader arithmetic
// exactly and is not corrected here; see the package design notes.
func CompositeTextured(u MeshUniform, tex RGBA) RGBA {
	back := u.BackColour
	avail := back.A
	if 1-tex.A < avail {
		avail = 1 - tex.A
	}
	combined := RGBA{
		R: tex.R + back.R*avail,
		G: tex.G + back.G*avail,
		B: tex.B + back.B*avail,
		A: avail,
	}
	o := u.OverlayAlpha
	return RGBA{
		R: combined.R*(1-o) + o,
		G: combined.G*(1-o) + o,
		B: combined.B*(1-o) + o,
		A: combined.A,
	}
}

// Composite dispatches to the compositor selected by mode. The texel is
// ignored for ModeSolid and ModeFlash.
func Composite(mode CompositeMode, u MeshUniform, tex RGBA) RGBA {
	switch mode {
	case ModeFlash:
		return CompositeFlash(u)
	case ModeTextured:
		return CompositeTextured(u, tex)
	default:
		return CompositeSolid(u)
	}
}
