package text

import "errors"

// GlyphQuad is one textured quad of a laid-out line.
//
// X and Y are the quad's bottom-left corner in pixels, y pointing up,
// with the line's baseline at y=0 and the pen starting at x=0. U0..V1
// is the matching atlas rectangle, v pointing down. Feed the quad to
// the textured render pipeline with the layout's atlas bound.
type GlyphQuad struct {
	Rune           rune
	X, Y           float32
	W, H           float32
	U0, V0, U1, V1 float32
}

// Layout shapes strings against one face and packs the glyphs it needs
// into a shared atlas.
type Layout struct {
	face   *Face
	atlas  *Atlas
	shaper *Shaper
}

// NewLayout creates a Layout for the face with a fresh atlasSize×atlasSize
// glyph atlas.
func NewLayout(face *Face, atlasSize int) (*Layout, error) {
	if face == nil {
		return nil, errors.New("text: layout needs a face")
	}
	atlas, err := NewAtlas(face, atlasSize)
	if err != nil {
		return nil, err
	}
	return &Layout{
		face:   face,
		atlas:  atlas,
		shaper: NewShaper(),
	}, nil
}

// Face returns the layout's face.
func (l *Layout) Face() *Face { return l.face }

// Atlas returns the glyph atlas backing the layout's quads. Upload
// Atlas.RGBA() whenever Atlas.Dirty() reports new glyphs.
func (l *Layout) Atlas() *Atlas { return l.atlas }

// Line lays out a single line of text and returns one quad per inked
// glyph. Whitespace advances the pen but emits no quad. The paragraph
// direction is resolved automatically; RTL text comes back in visual
// order with the pen still running left to right.
func (l *Layout) Line(text string) ([]GlyphQuad, error) {
	if text == "" {
		return nil, nil
	}
	dir := ParagraphDirection(text)
	shaped := l.shaper.Shape(text, l.face, dir)
	quads := make([]GlyphQuad, 0, len(shaped))
	for _, g := range shaped {
		slot, err := l.atlas.Glyph(g.Rune)
		if err != nil {
			return nil, err
		}
		if slot.Empty() {
			continue
		}
		// Glyph bounds are baseline-relative with y down; flip to the
		// y-up quad convention: the quad bottom is the ink's lowest edge.
		quads = append(quads, GlyphQuad{
			Rune: g.Rune,
			X:    float32(g.X) + float32(slot.Bounds.Min.X),
			Y:    float32(g.Y) - float32(slot.Bounds.Max.Y),
			W:    float32(slot.Bounds.Dx()),
			H:    float32(slot.Bounds.Dy()),
			U0:   slot.U0,
			V0:   slot.V0,
			U1:   slot.U1,
			V1:   slot.V1,
		})
	}
	return quads, nil
}

// Advance returns the pen advance of a line in pixels without packing
// any glyphs.
func (l *Layout) Advance(text string) float64 {
	if text == "" {
		return 0
	}
	shaped := l.shaper.Shape(text, l.face, ParagraphDirection(text))
	var w float64
	for _, g := range shaped {
		w += g.XAdvance
	}
	return w
}
