package render

import (
	"time"

	"github.com/gogpu/quadgfx"
)

// Animation defaults for sprite state changes.
const (
	// moveDuration is how long position and size changes take to settle.
	moveDuration = 200 * time.Millisecond

	// highlightDuration is how long overlay highlight changes take.
	highlightDuration = 100 * time.Millisecond

	// interactionHighlightStep is the overlay alpha added per interaction
	// state (hover and press stack to 0.2).
	interactionHighlightStep = 0.1
)

// SpriteConfig configures a new sprite.
type SpriteConfig struct {
	// Position is the world-space position of the quad's origin corner.
	Position quadgfx.Vec2

	// Size is the quad extent in world units.
	Size quadgfx.Vec2

	// Z orders sprites front to back: lower values pass the depth test
	// over higher ones.
	Z float32

	// BackColour is the quad's background colour.
	BackColour quadgfx.RGBA

	// Mode selects the compositor variant. Defaults to ModeSolid.
	Mode quadgfx.CompositeMode

	// Texture is sampled when Mode is ModeTextured. Zero resolves to the
	// white fallback texture.
	Texture TextureID
}

// Sprite is one drawable quad. Position, size, and highlight changes are
// animated; the renderer reads the animated values each frame and uploads
// the mesh uniform only when something changed.
//
// Sprite is not safe for concurrent use.
type Sprite struct {
	position *quadgfx.Animated[quadgfx.Vec2]
	size     *quadgfx.Animated[quadgfx.Vec2]
	overlay  *quadgfx.Animated[float32]

	z          float32
	backColour quadgfx.RGBA
	mode       quadgfx.CompositeMode
	texture    TextureID
	uv         UVRect

	hovered bool
	pressed bool

	// dirty is set when the mesh uniform must be re-uploaded.
	dirty bool

	mesh *quadMesh
}

// NewSprite creates a sprite from a full configuration.
func NewSprite(cfg SpriteConfig) *Sprite {
	return &Sprite{
		position:   quadgfx.NewAnimatedVec2(cfg.Position, moveDuration),
		size:       quadgfx.NewAnimatedVec2(cfg.Size, moveDuration),
		overlay:    quadgfx.NewAnimatedFloat(0, highlightDuration),
		z:          cfg.Z,
		backColour: cfg.BackColour,
		mode:       cfg.Mode,
		texture:    cfg.Texture,
		uv:         FullUV(),
		dirty:      true,
	}
}

// PanelConfig configures a flat-coloured panel.
type PanelConfig struct {
	Position   quadgfx.Vec2
	Size       quadgfx.Vec2
	Z          float32
	BackColour quadgfx.RGBA
}

// NewPanel creates a solid-mode sprite.
func NewPanel(cfg PanelConfig) *Sprite {
	return NewSprite(SpriteConfig{
		Position:   cfg.Position,
		Size:       cfg.Size,
		Z:          cfg.Z,
		BackColour: cfg.BackColour,
		Mode:       quadgfx.ModeSolid,
	})
}

// NewFlashPanel creates a flash-mode sprite whose highlight brightens
// additively instead of interpolating toward white.
func NewFlashPanel(cfg PanelConfig) *Sprite {
	s := NewPanel(cfg)
	s.mode = quadgfx.ModeFlash
	return s
}

// NewTexturedSprite creates a textured-mode sprite sampling the given
// texture.
func NewTexturedSprite(cfg PanelConfig, texture TextureID) *Sprite {
	s := NewPanel(cfg)
	s.mode = quadgfx.ModeTextured
	s.texture = texture
	return s
}

// Mode returns the sprite's compositor mode.
func (s *Sprite) Mode() quadgfx.CompositeMode { return s.mode }

// Position returns the current (possibly mid-animation) position.
func (s *Sprite) Position() quadgfx.Vec2 { return s.position.Current() }

// Size returns the current (possibly mid-animation) size.
func (s *Sprite) Size() quadgfx.Vec2 { return s.size.Current() }

// Z returns the sprite's depth value.
func (s *Sprite) Z() float32 { return s.z }

// BackColour returns the background colour.
func (s *Sprite) BackColour() quadgfx.RGBA { return s.backColour }

// OverlayAlpha returns the current highlight strength.
func (s *Sprite) OverlayAlpha() float32 { return s.overlay.Current() }

// TextureID returns the sprite's texture reference.
func (s *Sprite) TextureID() TextureID { return s.texture }

// MoveTo animates the sprite toward a new position.
func (s *Sprite) MoveTo(p quadgfx.Vec2) {
	s.position.Set(p)
}

// ResizeTo animates the sprite toward a new size.
func (s *Sprite) ResizeTo(size quadgfx.Vec2) {
	s.size.Set(size)
}

// SetZ changes the sprite's depth value.
func (s *Sprite) SetZ(z float32) {
	if s.z != z {
		s.z = z
		s.dirty = true
	}
}

// SetBackColour changes the background colour.
func (s *Sprite) SetBackColour(c quadgfx.RGBA) {
	if s.backColour != c {
		s.backColour = c
		s.dirty = true
	}
}

// SetTexture changes the sampled texture. Only meaningful in textured mode.
func (s *Sprite) SetTexture(id TextureID) {
	s.texture = id
}

// UVRect returns the texture sub-rectangle the sprite samples.
func (s *Sprite) UVRect() UVRect { return s.uv }

// SetUVRect changes the sampled texture sub-rectangle, such as a glyph's
// slot in an atlas. Only meaningful in textured mode.
func (s *Sprite) SetUVRect(uv UVRect) {
	if s.uv != uv {
		s.uv = uv
		s.dirty = true
	}
}

// SetHighlight animates the overlay toward an explicit target, replacing
// any interaction-driven highlight.
func (s *Sprite) SetHighlight(target float32) {
	s.overlay.Set(target)
}

// SetHovered updates the hover state. Entering hover raises the highlight
// target by one interaction step; leaving lowers it again.
func (s *Sprite) SetHovered(hovered bool) {
	if s.hovered == hovered {
		return
	}
	s.hovered = hovered
	if hovered {
		s.overlay.Set(s.overlay.Target() + interactionHighlightStep)
	} else {
		s.overlay.Set(s.overlay.Target() - interactionHighlightStep)
	}
}

// SetPressed updates the press state. Press stacks on top of hover, so a
// hovered and pressed sprite carries twice the interaction highlight.
func (s *Sprite) SetPressed(pressed bool) {
	if s.pressed == pressed {
		return
	}
	s.pressed = pressed
	if pressed {
		s.overlay.Set(s.overlay.Target() + interactionHighlightStep)
	} else {
		s.overlay.Set(s.overlay.Target() - interactionHighlightStep)
	}
}

// Hovered reports the current hover state.
func (s *Sprite) Hovered() bool { return s.hovered }

// Pressed reports the current press state.
func (s *Sprite) Pressed() bool { return s.pressed }

// Update advances the sprite's animations by elapsed time and reports
// whether anything visible changed.
func (s *Sprite) Update(elapsed time.Duration) bool {
	changed := false
	if s.position.Update(elapsed) {
		changed = true
	}
	if s.size.Update(elapsed) {
		changed = true
	}
	if s.overlay.Update(elapsed) {
		changed = true
	}
	if changed {
		s.dirty = true
	}
	return changed
}

// uniform assembles the sprite's current mesh uniform.
func (s *Sprite) uniform() quadgfx.MeshUniform {
	u := quadgfx.NewMeshUniform(s.position.Current(), s.z, s.backColour)
	u.OverlayAlpha = s.overlay.Current()
	return u
}
