package render

import (
	"errors"
	"testing"

	"github.com/gogpu/quadgfx"
)

func createTestRenderer(t *testing.T, w, h uint32) (*Renderer, func()) {
	t.Helper()
	device, queue, cleanup := createNoopDevice(t)
	r, err := NewRenderer(device, queue, Config{Width: w, Height: h})
	if err != nil {
		cleanup()
		t.Fatalf("NewRenderer failed: %v", err)
	}
	return r, func() {
		r.Destroy()
		cleanup()
	}
}

func TestNewRendererValidation(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	if _, err := NewRenderer(nil, nil, Config{Width: 8, Height: 8}); !errors.Is(err, ErrNilDevice) {
		t.Errorf("nil device error = %v, want ErrNilDevice", err)
	}
	if _, err := NewRenderer(device, queue, Config{Width: 0, Height: 8}); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("zero width error = %v, want ErrInvalidDimensions", err)
	}
}

func TestRendererDefaultCamera(t *testing.T) {
	r, cleanup := createTestRenderer(t, 64, 32)
	defer cleanup()

	// Default camera maps the pixel rectangle onto clip space.
	m := r.Camera().ViewProj()
	corner := m.MulVec4([4]float32{0, 0, 0, 1})
	if corner[0] != -1 {
		t.Errorf("left edge maps to x=%v, want -1", corner[0])
	}
	corner = m.MulVec4([4]float32{64, 32, 0, 1})
	if corner[0] != 1 {
		t.Errorf("right edge maps to x=%v, want 1", corner[0])
	}
}

func TestRendererRenderFrameEmpty(t *testing.T) {
	r, cleanup := createTestRenderer(t, 16, 16)
	defer cleanup()

	pixels, err := r.RenderFrame()
	if err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}
	if len(pixels) != 16*16*4 {
		t.Errorf("pixel buffer is %d bytes, want %d", len(pixels), 16*16*4)
	}
}

func TestRendererDrawAndRender(t *testing.T) {
	r, cleanup := createTestRenderer(t, 64, 64)
	defer cleanup()

	panel := NewPanel(PanelConfig{
		Position:   quadgfx.V2(8, 8),
		Size:       quadgfx.V2(32, 16),
		BackColour: quadgfx.RGB(1, 0, 0),
	})
	flash := NewFlashPanel(PanelConfig{
		Size:       quadgfx.V2(10, 10),
		Z:          0.1,
		BackColour: quadgfx.RGBAOf(0, 0, 0, 0.6),
	})
	textured := NewTexturedSprite(PanelConfig{
		Size: quadgfx.V2(20, 20),
	}, TextureIDEmpty)

	for _, s := range []*Sprite{panel, flash, textured} {
		if err := r.Draw(s); err != nil {
			t.Fatalf("Draw failed: %v", err)
		}
	}
	pixels, err := r.RenderFrame()
	if err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}
	if len(pixels) != 64*64*4 {
		t.Errorf("pixel buffer is %d bytes, want %d", len(pixels), 64*64*4)
	}

	// Draw queue is consumed; re-drawing reuses cached GPU state.
	if err := r.Draw(panel); err != nil {
		t.Fatalf("second Draw failed: %v", err)
	}
	if _, err := r.RenderFrame(); err != nil {
		t.Fatalf("second RenderFrame failed: %v", err)
	}
}

func TestRendererUnalignedWidthReadback(t *testing.T) {
	// 50*4 = 200 bytes per row, below the 256-byte copy alignment, so the
	// readback path must strip per-row padding.
	r, cleanup := createTestRenderer(t, 50, 10)
	defer cleanup()

	pixels, err := r.RenderFrame()
	if err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}
	if len(pixels) != 50*10*4 {
		t.Errorf("pixel buffer is %d bytes, want %d", len(pixels), 50*10*4)
	}
}

func TestRendererResize(t *testing.T) {
	r, cleanup := createTestRenderer(t, 32, 32)
	defer cleanup()

	if err := r.Resize(64, 48); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	w, h := r.Size()
	if w != 64 || h != 48 {
		t.Errorf("size after resize = %dx%d, want 64x48", w, h)
	}
	if !r.Camera().Dirty() {
		t.Error("Resize should mark the camera dirty")
	}

	if err := r.Resize(0, 48); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("zero resize error = %v, want ErrInvalidDimensions", err)
	}

	pixels, err := r.RenderFrame()
	if err != nil {
		t.Fatalf("RenderFrame after resize failed: %v", err)
	}
	if len(pixels) != 64*48*4 {
		t.Errorf("pixel buffer is %d bytes, want %d", len(pixels), 64*48*4)
	}
}

func TestRendererRemove(t *testing.T) {
	r, cleanup := createTestRenderer(t, 16, 16)
	defer cleanup()

	s := NewPanel(PanelConfig{Size: quadgfx.V2(4, 4)})
	if err := r.Draw(s); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if _, err := r.RenderFrame(); err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}

	r.Remove(s)
	if _, ok := r.states[s]; ok {
		t.Error("Remove should drop the sprite's GPU state")
	}
	// Removing twice is harmless.
	r.Remove(s)
}

func TestRendererAdvance(t *testing.T) {
	r, cleanup := createTestRenderer(t, 16, 16)
	defer cleanup()

	s := NewPanel(PanelConfig{Size: quadgfx.V2(4, 4)})
	if err := r.Draw(s); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if _, err := r.RenderFrame(); err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}

	s.MoveTo(quadgfx.V2(8, 0))
	r.Advance(moveDuration / 2)
	if s.Position().X == 0 {
		t.Error("Advance should step sprite animations")
	}
}

func TestRendererRenderToViewNil(t *testing.T) {
	r, cleanup := createTestRenderer(t, 16, 16)
	defer cleanup()

	if err := r.RenderToView(nil); err == nil {
		t.Error("RenderToView(nil) should fail")
	}
}

func TestRendererDestroyIdempotent(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	r, err := NewRenderer(device, queue, Config{Width: 8, Height: 8})
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	r.Destroy()
	r.Destroy()
}
