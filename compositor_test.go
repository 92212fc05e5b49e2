package quadgfx

import (
	"math"
	"testing"
)

const colorEps = 1e-6

func rgbaNear(t *testing.T, got, want RGBA, eps float64) {
	t.Helper()
	if math.Abs(float64(got.R-want.R)) > eps ||
		math.Abs(float64(got.G-want.G)) > eps ||
		math.Abs(float64(got.B-want.B)) > eps ||
		math.Abs(float64(got.A-want.A)) > eps {
		t.Errorf("colour = %+v, want %+v", got, want)
	}
}

func TestCompositeSolidIdentityAtZeroOverlay(t *testing.T) {
	// With no highlight the output is exactly the background colour.
	backs := []RGBA{
		RGB(1, 0, 0),
		RGBAOf(0.2, 0.4, 0.6, 0.8),
		RGBAOf(0, 0, 0, 0),
	}
	for _, back := range backs {
		u := NewMeshUniform(V2(0, 0), 0, back)
		rgbaNear(t, CompositeSolid(u), back, colorEps)
	}
}

func TestCompositeSolidFullOverlayIsWhite(t *testing.T) {
	// o=1 washes the colour channels out to white but leaves alpha alone.
	u := NewMeshUniform(V2(0, 0), 0, RGBAOf(0.3, 0.1, 0.9, 0.4))
	u.OverlayAlpha = 1
	rgbaNear(t, CompositeSolid(u), RGBAOf(1, 1, 1, 0.4), colorEps)
}

func TestCompositeSolidHalfOverlay(t *testing.T) {
	u := NewMeshUniform(V2(0, 0), 0, RGB(1, 0, 0))
	u.OverlayAlpha = 0.5
	rgbaNear(t, CompositeSolid(u), RGBAOf(1, 0.5, 0.5, 1), colorEps)
}

func TestCompositeFlashAddsOverlayToEveryChannel(t *testing.T) {
	tests := []struct {
		name    string
		back    RGBA
		overlay float32
		want    RGBA
	}{
		{"identity at zero", RGBAOf(0.2, 0.4, 0.6, 0.8), 0, RGBAOf(0.2, 0.4, 0.6, 0.8)},
		{"dark background", RGBAOf(0, 0, 0, 0.6), 0.2, RGBAOf(0.2, 0.2, 0.2, 0.6)},
		{"exceeds unit range", RGB(1, 1, 1), 0.5, RGBAOf(1.5, 1.5, 1.5, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := NewMeshUniform(V2(0, 0), 0, tt.back)
			u.OverlayAlpha = tt.overlay
			rgbaNear(t, CompositeFlash(u), tt.want, colorEps)
		})
	}
}

func TestCompositeFlashLinearInOverlay(t *testing.T) {
	// flash(o1+o2) = flash(o1) + o2 per channel.
	back := RGBAOf(0.1, 0.2, 0.3, 0.9)
	u1 := NewMeshUniform(V2(0, 0), 0, back)
	u1.OverlayAlpha = 0.25
	u2 := u1
	u2.OverlayAlpha = 0.25 + 0.5

	a := CompositeFlash(u1)
	b := CompositeFlash(u2)
	rgbaNear(t, b, RGBAOf(a.R+0.5, a.G+0.5, a.B+0.5, a.A), colorEps)
}

func TestCompositeTexturedTransparentTexel(t *testing.T) {
	// A fully transparent texel leaves the background's full alpha budget
	// available, so the result before highlighting is the background itself.
	back := RGBAOf(0.2, 0.4, 0.6, 0.8)
	u := NewMeshUniform(V2(0, 0), 0, back)
	rgbaNear(t, CompositeTextured(u, RGBAOf(0, 0, 0, 0)), back, colorEps)
}

func TestCompositeTexturedOpaqueTexelDropsAlpha(t *testing.T) {
	// tex.a=1 gives avail=0: the texel colour passes through unchanged but
	// the combined alpha collapses to zero.
	u := NewMeshUniform(V2(0, 0), 0, RGB(1, 1, 1))
	got := CompositeTextured(u, RGBAOf(0.5, 0.25, 0.75, 1))
	rgbaNear(t, got, RGBAOf(0.5, 0.25, 0.75, 0), colorEps)
}

func TestCompositeTexturedAvailCappedByBackgroundAlpha(t *testing.T) {
	// back.a=0.3, tex.a=0.5: avail = min(0.3, 0.5) = 0.3.
	back := RGBAOf(1, 0, 0, 0.3)
	u := NewMeshUniform(V2(0, 0), 0, back)
	got := CompositeTextured(u, RGBAOf(0.1, 0.1, 0.1, 0.5))
	rgbaNear(t, got, RGBAOf(0.1+1*0.3, 0.1, 0.1, 0.3), colorEps)
}

func TestCompositeTexturedHighlightMatchesSolid(t *testing.T) {
	// After the texel is folded in, the highlight stage is exactly the
	// solid compositor applied to the combined colour.
	u := NewMeshUniform(V2(0, 0), 0, RGBAOf(0.2, 0.4, 0.6, 0.8))
	u.OverlayAlpha = 0.4
	tex := RGBAOf(0.1, 0.2, 0.3, 0.25)

	plain := u
	plain.OverlayAlpha = 0
	combined := CompositeTextured(plain, tex)

	ref := u
	ref.BackColour = combined
	// Solid preserves alpha, so the reference uses combined.A directly.
	want := CompositeSolid(ref)
	rgbaNear(t, CompositeTextured(u, tex), want, colorEps)
}

func TestCompositeDispatch(t *testing.T) {
	u := NewMeshUniform(V2(0, 0), 0, RGBAOf(0.2, 0.4, 0.6, 0.8))
	u.OverlayAlpha = 0.3
	tex := RGBAOf(0.1, 0.1, 0.1, 0.5)

	rgbaNear(t, Composite(ModeSolid, u, tex), CompositeSolid(u), colorEps)
	rgbaNear(t, Composite(ModeFlash, u, tex), CompositeFlash(u), colorEps)
	rgbaNear(t, Composite(ModeTextured, u, tex), CompositeTextured(u, tex), colorEps)
}

func TestCompositeModeString(t *testing.T) {
	tests := []struct {
		mode CompositeMode
		want string
	}{
		{ModeSolid, "solid"},
		{ModeFlash, "flash"},
		{ModeTextured, "textured"},
		{CompositeMode(99), "Unknown(99)"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("CompositeMode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}
