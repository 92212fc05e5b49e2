package text

import (
	"sync"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
)

// ShapedGlyph is one positioned glyph produced by shaping.
//
// X and Y are pen-relative offsets in pixels; XAdvance is how far the
// pen moves after the glyph. Cluster is the byte index of the source
// rune in the shaped string and Rune is that rune, which is what the
// Atlas rasterizes.
type ShapedGlyph struct {
	GID      uint16
	Rune     rune
	Cluster  int
	X, Y     float64
	XAdvance float64
}

// Shaper converts strings into positioned glyphs using HarfBuzz
// shaping via go-text/typesetting, picking up kerning pairs, ligature
// substitution and complex-script rules from the font.
//
// Shaper is safe for concurrent use: HarfbuzzShaper instances have
// internal mutable state and are pooled, and each Shape call creates
// its own lightweight go-text face around the thread-safe parsed font.
type Shaper struct {
	pool sync.Pool
}

// NewShaper creates a Shaper backed by go-text/typesetting's HarfBuzz
// implementation.
func NewShaper() *Shaper {
	return &Shaper{
		pool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
	}
}

// Shape shapes text with the given face and direction. Glyphs come
// back in visual order with pen-relative positions; for RTL runs the
// caller still advances the pen left to right across the result.
func (s *Shaper) Shape(text string, face *Face, dir Direction) []ShapedGlyph {
	if text == "" || face == nil {
		return nil
	}

	// font.Face is NOT safe for concurrent use, so each Shape call
	// gets its own instance. NewFace is cheap, it wraps the
	// thread-safe *Font and initializes glyph caches.
	gtFace := gtfont.NewFace(face.shape)

	runes := []rune(text)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: mapDirection(dir),
		Face:      gtFace,
		Size:      floatToFixed(face.Size()),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	s.pool.Put(hb)

	return convertGlyphs(output.Glyphs, runes)
}

// mapDirection converts a Direction to go-text's di.Direction.
func mapDirection(d Direction) di.Direction {
	if d == DirectionRTL {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

// detectScript returns the script of the first non-space rune. For
// mixed-script text, split runs by script before shaping.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// convertGlyphs flattens go-text output glyphs into ShapedGlyphs with
// accumulated pen positions.
func convertGlyphs(glyphs []shaping.Glyph, runes []rune) []ShapedGlyph {
	if len(glyphs) == 0 {
		return nil
	}

	// Byte offset of each rune, so Cluster can index the original string.
	byteAt := make([]int, len(runes))
	off := 0
	for i, r := range runes {
		byteAt[i] = off
		off += len(string(r))
	}

	result := make([]ShapedGlyph, len(glyphs))
	var x float64
	for i, g := range glyphs {
		runeIdx := g.TextIndex()
		var src rune
		var cluster int
		if runeIdx >= 0 && runeIdx < len(runes) {
			src = runes[runeIdx]
			cluster = byteAt[runeIdx]
		}
		adv := fixedToFloat(g.Advance)
		result[i] = ShapedGlyph{
			GID:      uint16(g.GlyphID),
			Rune:     src,
			Cluster:  cluster,
			X:        x + fixedToFloat(g.XOffset),
			Y:        fixedToFloat(g.YOffset),
			XAdvance: adv,
		}
		x += adv
	}
	return result
}
