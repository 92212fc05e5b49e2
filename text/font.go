package text

import (
	"bytes"
	"errors"
	"fmt"

	gtfont "github.com/go-text/typesetting/font"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ErrInvalidSize is returned when a face is requested at a non-positive
// pixel size.
var ErrInvalidSize = errors.New("text: font size must be positive")

// Face binds parsed font data to a pixel size.
//
// The font bytes are parsed twice, once per consumer: an sfnt font for
// rasterization (golang.org/x/image/font/opentype) and a go-text font
// for HarfBuzz shaping (github.com/go-text/typesetting). Both parsed
// forms are read-only and safe for concurrent use; the sized
// rasterization face is not, so a Face must not be shared across
// goroutines without external locking.
type Face struct {
	data   []byte
	size   float64
	raster *opentype.Font
	shape  *gtfont.Font
	sized  xfont.Face
}

// NewFace parses TTF/OTF bytes and returns a Face at the given pixel
// size. Font collections (TTC) are not supported.
func NewFace(data []byte, size float64) (*Face, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	raster, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	// ParseTTF returns a *Face which embeds the thread-safe *Font.
	shapeFace, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font for shaping: %w", err)
	}
	sized, err := opentype.NewFace(raster, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: xfont.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("text: failed to create sized face: %w", err)
	}
	return &Face{
		data:   data,
		size:   size,
		raster: raster,
		shape:  shapeFace.Font,
		sized:  sized,
	}, nil
}

// Size returns the pixel size the face was created at.
func (f *Face) Size() float64 { return f.size }

// Family returns the font family name, or "" if the name table has no
// family entry.
func (f *Face) Family() string {
	if name, err := f.raster.Name(nil, sfnt.NameIDFamily); err == nil {
		return name
	}
	return ""
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Face) NumGlyphs() int { return f.raster.NumGlyphs() }

// GlyphIndex returns the glyph index for a rune, or 0 (.notdef) when
// the font has no mapping for it.
func (f *Face) GlyphIndex(r rune) uint16 {
	var buf sfnt.Buffer
	idx, err := f.raster.GlyphIndex(&buf, r)
	if err != nil {
		return 0
	}
	return uint16(idx)
}

// Metrics describes a face's vertical extents in pixels.
type Metrics struct {
	// Ascent is the distance from the baseline to the top of a line.
	Ascent float64
	// Descent is the distance from the baseline to the bottom of a line.
	Descent float64
	// LineHeight is the recommended baseline-to-baseline distance.
	LineHeight float64
}

// Metrics returns the face's vertical metrics at its pixel size.
func (f *Face) Metrics() Metrics {
	m := f.sized.Metrics()
	return Metrics{
		Ascent:     fixedToFloat(m.Ascent),
		Descent:    fixedToFloat(m.Descent),
		LineHeight: fixedToFloat(m.Height),
	}
}

// Close releases the sized rasterization face.
func (f *Face) Close() error {
	if f.sized == nil {
		return nil
	}
	err := f.sized.Close()
	f.sized = nil
	return err
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}

// floatToFixed converts a float64 to fixed.Int26_6.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
