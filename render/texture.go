package render

import (
	"bytes"
	"fmt"
	"image"

	// Register decoders for the formats texture assets commonly ship in.
	_ "image/png"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/quadgfx"
)

// maxTextureDim is the largest texture edge uploaded as-is. Larger images
// are downscaled to fit, preserving aspect ratio.
const maxTextureDim = 4096

// Texture is a sampled 2D texture plus its per-texture bind group for the
// textured quad pipeline. Pixel data is uploaded once at creation; the
// texture is immutable afterwards.
type Texture struct {
	tex    hal.Texture
	view   hal.TextureView
	bind   hal.BindGroup
	width  uint32
	height uint32
}

// NewTextureFromBytes decodes an encoded image (PNG or any other
// registered format) and uploads it.
func NewTextureFromBytes(device hal.Device, queue hal.Queue, pipelines *Pipelines, label string, data []byte) (*Texture, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", label, err)
	}
	return NewTextureFromImage(device, queue, pipelines, label, img)
}

// NewTextureFromImage converts an image to RGBA, downscaling if it exceeds
// the maximum texture dimension, and uploads it.
func NewTextureFromImage(device hal.Device, queue hal.Queue, pipelines *Pipelines, label string, img image.Image) (*Texture, error) {
	rgba := toRGBA(img)
	b := rgba.Bounds()
	return newTexture(device, queue, pipelines, label,
		uint32(b.Dx()), uint32(b.Dy()), rgba.Pix) //nolint:gosec // bounded by maxTextureDim
}

// newWhiteTexture creates the 1x1 opaque white fallback texture. Sampling
// it yields (1,1,1,1), which through the textured compositor passes white
// with zero available alpha.
func newWhiteTexture(device hal.Device, queue hal.Queue, pipelines *Pipelines) (*Texture, error) {
	return newTexture(device, queue, pipelines, "quad_white", 1, 1, []byte{0xff, 0xff, 0xff, 0xff})
}

// newTexture creates the GPU texture, uploads RGBA pixel data, and builds
// the group(2) bind group.
func newTexture(device hal.Device, queue hal.Queue, pipelines *Pipelines, label string, w, h uint32, pix []byte) (*Texture, error) {
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("texture %q: zero dimension %dx%d", label, w, h)
	}
	if uint64(len(pix)) != uint64(w)*uint64(h)*4 {
		return nil, fmt.Errorf("texture %q: pixel data is %d bytes, want %d", label, len(pix), w*h*4)
	}

	size := hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1}
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture %q: %w", label, err)
	}

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("create texture view %q: %w", label, err)
	}

	queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, MipLevel: 0},
		pix,
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: w * 4, RowsPerImage: h},
		&size,
	)

	bind, err := device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  label + "_bind",
		Layout: pipelines.TextureLayout(),
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{TextureView: view.NativeHandle()}},
			{Binding: 1, Resource: gputypes.SamplerBinding{Sampler: pipelines.Sampler().NativeHandle()}},
		},
	})
	if err != nil {
		device.DestroyTextureView(view)
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("create texture bind group %q: %w", label, err)
	}

	quadgfx.Logger().Debug("render: texture uploaded",
		"label", label, "width", w, "height", h)

	return &Texture{tex: tex, view: view, bind: bind, width: w, height: h}, nil
}

// Width returns the texture width in pixels.
func (t *Texture) Width() uint32 { return t.width }

// Height returns the texture height in pixels.
func (t *Texture) Height() uint32 { return t.height }

// Destroy releases the texture's GPU resources. Safe to call multiple times.
func (t *Texture) Destroy(device hal.Device) {
	if t.bind != nil {
		device.DestroyBindGroup(t.bind)
		t.bind = nil
	}
	if t.view != nil {
		device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		device.DestroyTexture(t.tex)
		t.tex = nil
	}
}

// toRGBA converts any image to *image.RGBA, downscaling with Catmull-Rom
// resampling when an edge exceeds maxTextureDim.
func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if w > maxTextureDim || h > maxTextureDim {
		scale := float64(maxTextureDim) / float64(w)
		if sh := float64(maxTextureDim) / float64(h); sh < scale {
			scale = sh
		}
		dw := int(float64(w) * scale)
		dh := int(float64(h) * scale)
		if dw < 1 {
			dw = 1
		}
		if dh < 1 {
			dh = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
		return dst
	}

	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return dst
}
