// Command quadpanels renders an animated panel scene offscreen and saves
// the final frame as a PNG.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/quadgfx"
	"github.com/gogpu/quadgfx/render"
	"github.com/gogpu/quadgfx/text"
)

func main() {
	var (
		width   = flag.Int("width", 800, "image width")
		height  = flag.Int("height", 600, "image height")
		output  = flag.String("output", "panels.png", "output file")
		frames  = flag.Int("frames", 30, "animation frames to advance before capturing")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		quadgfx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	device, queue, cleanup, err := openDevice()
	if err != nil {
		log.Fatalf("Failed to open device: %v", err)
	}
	defer cleanup()

	r, err := render.NewRenderer(device, queue, render.Config{
		Width:       uint32(*width),
		Height:      uint32(*height),
		ClearColour: quadgfx.RGB(0.1, 0.12, 0.18),
	})
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer r.Destroy()

	sprites, mover, pressed, err := buildScene(r, float32(*width), float32(*height))
	if err != nil {
		log.Fatalf("Failed to build scene: %v", err)
	}

	// Kick off the animations the last frame captures mid-flight.
	mover.MoveTo(quadgfx.V2(float32(*width)/2, float32(*height)/2))
	pressed.SetHovered(true)
	pressed.SetPressed(true)

	if *frames < 1 {
		*frames = 1
	}
	var pixels []byte
	for i := 0; i < *frames; i++ {
		for _, s := range sprites {
			if err := r.Draw(s); err != nil {
				log.Fatalf("Failed to draw: %v", err)
			}
		}
		r.Advance(16 * time.Millisecond)
		pixels, err = r.RenderFrame()
		if err != nil {
			log.Fatalf("Failed to render: %v", err)
		}
	}

	if err := savePNG(*output, pixels, *width, *height); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Scene saved to %s (%dx%d, %d sprites)\n", *output, *width, *height, len(sprites))
}

// openDevice opens the first adapter of the noop backend. The noop
// backend validates the full command stream but rasterizes nothing, so
// the captured frame stays the clear colour; swap in a platform HAL
// adapter to render on real hardware.
func openDevice() (hal.Device, hal.Queue, func(), error) {
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		return nil, nil, nil, err
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, nil, nil, err
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup, nil
}

// buildScene assembles a demonstration scene: a gradient backdrop, an
// interactive panel pair, a flash overlay, a textured checkerboard, and
// a line of glyph quads. The returned mover and pressed sprites are the
// ones main animates.
func buildScene(r *render.Renderer, w, h float32) (sprites []*render.Sprite, mover, pressed *render.Sprite, err error) {

	// Gradient backdrop built from horizontal solid strips.
	const steps = 24
	strip := h / steps
	for i := 0; i < steps; i++ {
		t := float32(i) / steps
		sprites = append(sprites, render.NewPanel(render.PanelConfig{
			Position:   quadgfx.V2(0, float32(i)*strip),
			Size:       quadgfx.V2(w, strip+1),
			Z:          0.9,
			BackColour: quadgfx.RGB(0.1+t*0.4, 0.2+t*0.3, 0.4+t*0.2),
		}))
	}

	// Moving panel and a highlighted one next to it.
	mover = render.NewPanel(render.PanelConfig{
		Position:   quadgfx.V2(40, 40),
		Size:       quadgfx.V2(160, 100),
		Z:          0.5,
		BackColour: quadgfx.RGB(0.9, 0.3, 0.3),
	})
	pressed = render.NewPanel(render.PanelConfig{
		Position:   quadgfx.V2(240, 40),
		Size:       quadgfx.V2(160, 100),
		Z:          0.5,
		BackColour: quadgfx.RGB(0.3, 0.9, 0.3),
	})
	sprites = append(sprites, mover, pressed)

	// Flash panel brightening everything underneath it.
	flash := render.NewFlashPanel(render.PanelConfig{
		Position:   quadgfx.V2(120, 90),
		Size:       quadgfx.V2(200, 120),
		Z:          0.3,
		BackColour: quadgfx.RGBAOf(0, 0, 0, 0.6),
	})
	flash.SetHighlight(0.25)
	sprites = append(sprites, flash)

	// Textured checkerboard.
	checkerID, err := r.Assets().AddImage("checker", checkerImage(64, 8))
	if err != nil {
		return nil, nil, nil, err
	}
	sprites = append(sprites, render.NewTexturedSprite(render.PanelConfig{
		Position: quadgfx.V2(w-200, 60),
		Size:     quadgfx.V2(128, 128),
		Z:        0.4,
	}, checkerID))

	// A line of text as one glyph-atlas texture plus a quad per glyph.
	textSprites, err := buildTextLine(r, "quadgfx", quadgfx.V2(60, h-120))
	if err != nil {
		return nil, nil, nil, err
	}
	return append(sprites, textSprites...), mover, pressed, nil
}

// buildTextLine shapes a string, uploads its glyph atlas, and returns one
// textured sprite per inked glyph, positioned with the baseline at origin.
func buildTextLine(r *render.Renderer, line string, origin quadgfx.Vec2) ([]*render.Sprite, error) {
	face, err := text.NewFace(goregular.TTF, 48)
	if err != nil {
		return nil, err
	}
	layout, err := text.NewLayout(face, 256)
	if err != nil {
		return nil, err
	}
	quads, err := layout.Line(line)
	if err != nil {
		return nil, err
	}

	atlasID, err := r.Assets().AddImage("glyph_atlas", layout.Atlas().RGBA())
	if err != nil {
		return nil, err
	}
	layout.Atlas().MarkClean()

	sprites := make([]*render.Sprite, 0, len(quads))
	for _, q := range quads {
		s := render.NewTexturedSprite(render.PanelConfig{
			Position: quadgfx.V2(origin.X+q.X, origin.Y+q.Y),
			Size:     quadgfx.V2(q.W, q.H),
			Z:        0.2,
		}, atlasID)
		s.SetUVRect(render.UVRect{U0: q.U0, V0: q.V0, U1: q.U1, V1: q.V1})
		sprites = append(sprites, s)
	}
	return sprites, nil
}

// checkerImage generates a two-tone checkerboard test texture.
func checkerImage(size, cell int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	light := color.RGBA{R: 230, G: 230, B: 230, A: 255}
	dark := color.RGBA{R: 60, G: 60, B: 70, A: 255}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.Set(x, y, light)
			} else {
				img.Set(x, y, dark)
			}
		}
	}
	return img
}

// savePNG writes tightly packed RGBA pixels to a PNG file.
func savePNG(path string, pixels []byte, w, h int) error {
	img := &image.RGBA{
		Pix:    pixels,
		Stride: w * 4,
		Rect:   image.Rect(0, 0, w, h),
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
