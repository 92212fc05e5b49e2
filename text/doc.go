// Package text turns strings into textured glyph quads.
//
// The pipeline is: parse a font once into a Face, shape a string into
// positioned glyphs with HarfBuzz (go-text/typesetting), rasterize each
// glyph into a shared alpha Atlas, and emit GlyphQuad values carrying a
// screen rectangle plus the atlas UV rectangle. The quads are ready for
// the render package's textured pipeline: upload Atlas.RGBA() as a
// texture and draw one textured quad per glyph.
//
//	face, _ := text.NewFace(goregular.TTF, 24)
//	layout, _ := text.NewLayout(face, 512)
//	quads, _ := layout.Line("Hello, world")
//
// Paragraph direction is resolved with golang.org/x/text/unicode/bidi;
// right-to-left runs shape correctly but the caller is responsible for
// run ordering in mixed-direction paragraphs (see SplitRuns).
package text
