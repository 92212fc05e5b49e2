package render

import (
	"math"
	"testing"
	"time"

	"github.com/gogpu/quadgfx"
)

func testPanel() *Sprite {
	return NewPanel(PanelConfig{
		Position:   quadgfx.V2(10, 20),
		Size:       quadgfx.V2(100, 50),
		Z:          0.5,
		BackColour: quadgfx.RGB(0.2, 0.4, 0.8),
	})
}

func TestNewPanelDefaults(t *testing.T) {
	s := testPanel()
	if s.Mode() != quadgfx.ModeSolid {
		t.Errorf("panel mode = %v, want solid", s.Mode())
	}
	if s.OverlayAlpha() != 0 {
		t.Errorf("initial overlay = %v, want 0", s.OverlayAlpha())
	}
	if !s.dirty {
		t.Error("new sprite should start dirty so its uniform gets uploaded")
	}
}

func TestNewFlashPanelMode(t *testing.T) {
	s := NewFlashPanel(PanelConfig{Size: quadgfx.V2(1, 1)})
	if s.Mode() != quadgfx.ModeFlash {
		t.Errorf("flash panel mode = %v, want flash", s.Mode())
	}
}

func TestNewTexturedSprite(t *testing.T) {
	s := NewTexturedSprite(PanelConfig{Size: quadgfx.V2(1, 1)}, TextureID(7))
	if s.Mode() != quadgfx.ModeTextured {
		t.Errorf("textured sprite mode = %v, want textured", s.Mode())
	}
	if s.TextureID() != 7 {
		t.Errorf("texture id = %d, want 7", s.TextureID())
	}
}

func TestSpriteUniform(t *testing.T) {
	s := testPanel()
	s.SetHighlight(0.3)
	s.Update(time.Second) // settle the highlight animation

	u := s.uniform()
	if u.Position != quadgfx.V2(10, 20) {
		t.Errorf("uniform position = %v, want (10,20)", u.Position)
	}
	if u.Z != 0.5 {
		t.Errorf("uniform z = %v, want 0.5", u.Z)
	}
	if math.Abs(float64(u.OverlayAlpha-0.3)) > 1e-6 {
		t.Errorf("uniform overlay = %v, want 0.3", u.OverlayAlpha)
	}
	if u.BackColour != quadgfx.RGB(0.2, 0.4, 0.8) {
		t.Errorf("uniform back colour = %v", u.BackColour)
	}
}

func TestSpriteHoverPressStackHighlight(t *testing.T) {
	s := testPanel()

	s.SetHovered(true)
	if got := s.overlay.Target(); math.Abs(float64(got-0.1)) > 1e-6 {
		t.Errorf("hover target = %v, want 0.1", got)
	}

	s.SetPressed(true)
	if got := s.overlay.Target(); math.Abs(float64(got-0.2)) > 1e-6 {
		t.Errorf("hover+press target = %v, want 0.2", got)
	}

	// Releasing in reverse order unwinds the highlight completely.
	s.SetPressed(false)
	s.SetHovered(false)
	if got := s.overlay.Target(); math.Abs(float64(got)) > 1e-6 {
		t.Errorf("released target = %v, want 0", got)
	}
}

func TestSpriteHoverIdempotent(t *testing.T) {
	s := testPanel()
	s.SetHovered(true)
	s.SetHovered(true)
	if got := s.overlay.Target(); math.Abs(float64(got-0.1)) > 1e-6 {
		t.Errorf("double hover target = %v, want 0.1", got)
	}
}

func TestSpriteMoveToAnimates(t *testing.T) {
	s := testPanel()
	s.Update(time.Second) // settle initial state
	s.dirty = false

	s.MoveTo(quadgfx.V2(110, 20))
	if s.Position() != quadgfx.V2(10, 20) {
		t.Error("MoveTo should not teleport the sprite")
	}

	if !s.Update(moveDuration / 2) {
		t.Fatal("Update during an animation should report a change")
	}
	if !s.dirty {
		t.Error("animation progress should mark the sprite dirty")
	}
	got := s.Position()
	if math.Abs(float64(got.X-60)) > 1e-3 {
		t.Errorf("position.X at half duration = %v, want 60", got.X)
	}

	s.Update(moveDuration)
	if s.Position() != quadgfx.V2(110, 20) {
		t.Errorf("final position = %v, want (110,20)", s.Position())
	}
}

func TestSpriteSettersMarkDirty(t *testing.T) {
	s := testPanel()
	s.dirty = false

	s.SetZ(0.9)
	if !s.dirty {
		t.Error("SetZ should mark the sprite dirty")
	}
	s.dirty = false

	s.SetZ(0.9) // unchanged value
	if s.dirty {
		t.Error("SetZ with the same value should not mark dirty")
	}

	s.SetBackColour(quadgfx.RGB(1, 1, 1))
	if !s.dirty {
		t.Error("SetBackColour should mark the sprite dirty")
	}
}

func TestSpriteUVRect(t *testing.T) {
	s := NewTexturedSprite(PanelConfig{Size: quadgfx.V2(4, 4)}, TextureIDEmpty)
	if s.UVRect() != FullUV() {
		t.Errorf("default UV rect = %v, want full texture", s.UVRect())
	}
	s.dirty = false

	sub := UVRect{U0: 0.1, V0: 0.2, U1: 0.3, V1: 0.4}
	s.SetUVRect(sub)
	if s.UVRect() != sub {
		t.Errorf("UV rect = %v, want %v", s.UVRect(), sub)
	}
	if !s.dirty {
		t.Error("SetUVRect should mark the sprite dirty")
	}
	s.dirty = false

	s.SetUVRect(sub) // unchanged value
	if s.dirty {
		t.Error("SetUVRect with the same value should not mark dirty")
	}
}

func TestSpriteUpdateSettledReportsNoChange(t *testing.T) {
	s := testPanel()
	s.Update(time.Second)
	if s.Update(16 * time.Millisecond) {
		t.Error("Update with no running animations should report no change")
	}
}
