package text

import (
	"math"
	"testing"
)

func createTestLayout(t *testing.T) *Layout {
	t.Helper()
	layout, err := NewLayout(createTestFace(t, 24), 256)
	if err != nil {
		t.Fatalf("NewLayout failed: %v", err)
	}
	return layout
}

func TestNewLayoutValidation(t *testing.T) {
	if _, err := NewLayout(nil, 256); err == nil {
		t.Error("expected error for nil face")
	}
	if _, err := NewLayout(createTestFace(t, 16), -1); err == nil {
		t.Error("expected error for negative atlas size")
	}
}

func TestLayoutLineEmpty(t *testing.T) {
	layout := createTestLayout(t)
	quads, err := layout.Line("")
	if err != nil {
		t.Fatalf("Line failed: %v", err)
	}
	if quads != nil {
		t.Errorf("Line(\"\") = %v, want nil", quads)
	}
}

func TestLayoutLine(t *testing.T) {
	layout := createTestLayout(t)

	quads, err := layout.Line("Hi")
	if err != nil {
		t.Fatalf("Line failed: %v", err)
	}
	if len(quads) != 2 {
		t.Fatalf("got %d quads, want 2", len(quads))
	}
	if quads[0].Rune != 'H' || quads[1].Rune != 'i' {
		t.Errorf("quad runes = %q, %q, want H, i", quads[0].Rune, quads[1].Rune)
	}
	for i, q := range quads {
		if q.W <= 0 || q.H <= 0 {
			t.Errorf("quad %d is %vx%v, want positive extent", i, q.W, q.H)
		}
		if q.U1 <= q.U0 || q.V1 <= q.V0 {
			t.Errorf("quad %d has degenerate UVs", i)
		}
		// Ink sits on the baseline: the quad's top edge is above y=0.
		if q.Y+q.H <= 0 {
			t.Errorf("quad %d top = %v, want > 0", i, q.Y+q.H)
		}
	}
	if quads[1].X <= quads[0].X {
		t.Errorf("quads out of order: X = %v then %v", quads[0].X, quads[1].X)
	}
}

func TestLayoutLineSkipsWhitespace(t *testing.T) {
	layout := createTestLayout(t)

	quads, err := layout.Line("a b")
	if err != nil {
		t.Fatalf("Line failed: %v", err)
	}
	if len(quads) != 2 {
		t.Fatalf("got %d quads, want 2 (space emits none)", len(quads))
	}
	// The space still advanced the pen between the two quads.
	gap := quads[1].X - (quads[0].X + quads[0].W)
	if gap <= 0 {
		t.Errorf("gap after space = %v, want > 0", gap)
	}
}

func TestLayoutLineMarksAtlasDirty(t *testing.T) {
	layout := createTestLayout(t)

	if _, err := layout.Line("new"); err != nil {
		t.Fatalf("Line failed: %v", err)
	}
	if !layout.Atlas().Dirty() {
		t.Error("first layout of new glyphs should dirty the atlas")
	}
	layout.Atlas().MarkClean()
	if _, err := layout.Line("new"); err != nil {
		t.Fatalf("second Line failed: %v", err)
	}
	if layout.Atlas().Dirty() {
		t.Error("re-laying out cached glyphs should not dirty the atlas")
	}
}

func TestLayoutAdvance(t *testing.T) {
	layout := createTestLayout(t)

	if got := layout.Advance(""); got != 0 {
		t.Errorf("Advance(\"\") = %v, want 0", got)
	}
	w := layout.Advance("Hello")
	if w <= 0 {
		t.Fatalf("Advance = %v, want > 0", w)
	}
	// Advance is pure measurement; it packs nothing.
	if layout.Atlas().Len() != 0 {
		t.Errorf("Advance packed %d glyphs, want 0", layout.Atlas().Len())
	}

	// A longer string is wider.
	if w2 := layout.Advance("Hello, world"); w2 <= w {
		t.Errorf("Advance(longer) = %v, want > %v", w2, w)
	}
}

func TestLayoutDescenderBelowBaseline(t *testing.T) {
	layout := createTestLayout(t)

	quads, err := layout.Line("g")
	if err != nil {
		t.Fatalf("Line failed: %v", err)
	}
	if len(quads) != 1 {
		t.Fatalf("got %d quads, want 1", len(quads))
	}
	// 'g' descends below the baseline, so its bottom edge is negative.
	if quads[0].Y >= 0 {
		t.Errorf("descender bottom = %v, want < 0", quads[0].Y)
	}
	if math.Abs(float64(quads[0].Y)) >= float64(layout.Face().Size()) {
		t.Errorf("descender %v deeper than the whole em square", quads[0].Y)
	}
}
