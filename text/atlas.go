package text

import (
	"errors"
	"fmt"
	"image"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// glyphPadding keeps one empty texel between atlas slots so linear
// sampling never bleeds into a neighbour.
const glyphPadding = 1

// ErrAtlasFull is returned when no shelf has room for another glyph.
var ErrAtlasFull = errors.New("text: glyph atlas is full")

// AtlasGlyph describes a rasterized glyph's slot in the atlas.
type AtlasGlyph struct {
	// U0, V0, U1, V1 is the glyph's texel rectangle in normalized
	// texture coordinates, v pointing down.
	U0, V0, U1, V1 float32

	// Bounds is the mask rectangle relative to the glyph origin on the
	// baseline, y pointing down: Min.Y is negative for ink above the
	// baseline.
	Bounds image.Rectangle

	// Advance is the horizontal advance in pixels.
	Advance float64
}

// Empty reports whether the glyph has no ink, such as a space.
func (g AtlasGlyph) Empty() bool {
	return g.Bounds.Dx() == 0 || g.Bounds.Dy() == 0
}

// Atlas is a square alpha texture that rasterized glyph masks are
// packed into on demand, one shelf row at a time. Each Face gets its
// own Atlas since slots are keyed by rune at the face's pixel size.
type Atlas struct {
	face   *Face
	img    *image.Alpha
	size   int
	penX   int
	penY   int
	rowH   int
	glyphs map[rune]AtlasGlyph
	dirty  bool
}

// NewAtlas creates an empty size×size atlas for the face.
func NewAtlas(face *Face, size int) (*Atlas, error) {
	if face == nil {
		return nil, errors.New("text: atlas needs a face")
	}
	if size <= 0 {
		return nil, fmt.Errorf("text: invalid atlas size %d", size)
	}
	return &Atlas{
		face:   face,
		img:    image.NewAlpha(image.Rect(0, 0, size, size)),
		size:   size,
		glyphs: make(map[rune]AtlasGlyph),
	}, nil
}

// Size returns the atlas edge length in texels.
func (a *Atlas) Size() int { return a.size }

// Len returns the number of packed glyphs.
func (a *Atlas) Len() int { return len(a.glyphs) }

// Dirty reports whether glyphs were packed since the last MarkClean.
// The renderer uses this to decide when to re-upload the texture.
func (a *Atlas) Dirty() bool { return a.dirty }

// MarkClean clears the dirty flag after an upload.
func (a *Atlas) MarkClean() { a.dirty = false }

// Glyph returns the atlas slot for a rune, rasterizing and packing it
// on first use.
func (a *Atlas) Glyph(r rune) (AtlasGlyph, error) {
	if g, ok := a.glyphs[r]; ok {
		return g, nil
	}
	g, err := a.pack(r)
	if err != nil {
		return AtlasGlyph{}, err
	}
	a.glyphs[r] = g
	a.dirty = true
	return g, nil
}

// pack rasterizes a rune into the next free shelf slot.
func (a *Atlas) pack(r rune) (AtlasGlyph, error) {
	bounds, advance, ok := a.face.sized.GlyphBounds(r)
	if !ok {
		return AtlasGlyph{}, fmt.Errorf("text: font has no glyph for %q", r)
	}

	minX := int(bounds.Min.X) >> 6
	minY := int(bounds.Min.Y) >> 6
	maxX := int(bounds.Max.X+63) >> 6
	maxY := int(bounds.Max.Y+63) >> 6
	w, h := maxX-minX, maxY-minY

	glyph := AtlasGlyph{
		Bounds:  image.Rect(minX, minY, maxX, maxY),
		Advance: fixedToFloat(advance),
	}
	// Whitespace carries an advance but no ink; nothing to pack.
	if w <= 0 || h <= 0 {
		glyph.Bounds = image.Rectangle{}
		return glyph, nil
	}

	if a.penX+w+glyphPadding > a.size {
		a.penX = 0
		a.penY += a.rowH + glyphPadding
		a.rowH = 0
	}
	if a.penY+h+glyphPadding > a.size || w+glyphPadding > a.size {
		return AtlasGlyph{}, fmt.Errorf("%w: %dx%d atlas cannot fit %q (%dx%d)",
			ErrAtlasFull, a.size, a.size, r, w, h)
	}

	drawer := &xfont.Drawer{
		Dst:  a.img,
		Src:  image.White,
		Face: a.face.sized,
		// Dot sits on the baseline; shift it so the ink's top-left
		// lands exactly on the slot origin.
		Dot: fixed.Point26_6{
			X: fixed.I(a.penX) - bounds.Min.X,
			Y: fixed.I(a.penY) - bounds.Min.Y,
		},
	}
	drawer.DrawString(string(r))

	inv := 1.0 / float32(a.size)
	glyph.U0 = float32(a.penX) * inv
	glyph.V0 = float32(a.penY) * inv
	glyph.U1 = float32(a.penX+w) * inv
	glyph.V1 = float32(a.penY+h) * inv

	a.penX += w + glyphPadding
	if h > a.rowH {
		a.rowH = h
	}
	return glyph, nil
}

// RGBA expands the alpha atlas into a premultiplied white RGBA image
// ready for texture upload: each texel becomes (a, a, a, a), so the
// textured pipeline tints and blends it directly.
func (a *Atlas) RGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, a.size, a.size))
	for y := 0; y < a.size; y++ {
		srcRow := a.img.Pix[y*a.img.Stride : y*a.img.Stride+a.size]
		dstRow := out.Pix[y*out.Stride : y*out.Stride+a.size*4]
		for x, alpha := range srcRow {
			dstRow[x*4+0] = alpha
			dstRow[x*4+1] = alpha
			dstRow[x*4+2] = alpha
			dstRow[x*4+3] = alpha
		}
	}
	return out
}
