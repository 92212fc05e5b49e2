package render

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/quadgfx"
)

// gpuWaitTimeout bounds how long a frame waits on its fence.
const gpuWaitTimeout = 5 * time.Second

// Renderer errors.
var (
	// ErrInvalidDimensions is returned for zero-sized render targets.
	ErrInvalidDimensions = errors.New("render: invalid target dimensions")

	// ErrNilDevice is returned when a nil device or queue is passed.
	ErrNilDevice = errors.New("render: nil device or queue")
)

// Config configures a Renderer.
type Config struct {
	// Width and Height are the render target dimensions in pixels.
	Width  uint32
	Height uint32

	// Camera is the projection used for every draw. When nil, an
	// orthographic camera mapping the pixel rectangle (0,0)-(Width,Height)
	// onto clip space is created, with y pointing up.
	Camera *quadgfx.Camera

	// ClearColour fills the target before drawing. The zero value clears
	// to transparent black.
	ClearColour quadgfx.RGBA
}

// spriteState holds the per-sprite GPU resources the renderer manages:
// the quad mesh plus the mesh uniform buffer and its bind group.
type spriteState struct {
	mesh       *quadMesh
	uniformBuf hal.Buffer
	bind       hal.BindGroup
}

func (st *spriteState) destroy(device hal.Device) {
	if st.bind != nil {
		device.DestroyBindGroup(st.bind)
		st.bind = nil
	}
	if st.uniformBuf != nil {
		device.DestroyBuffer(st.uniformBuf)
		st.uniformBuf = nil
	}
	if st.mesh != nil {
		st.mesh.destroy(device)
		st.mesh = nil
	}
}

// Renderer draws sprites through the three quad pipelines. It owns the
// offscreen colour and depth targets, the camera uniform, and per-sprite
// GPU resources; sprites themselves stay plain CPU state.
//
// Renderer is not safe for concurrent use.
type Renderer struct {
	device hal.Device
	queue  hal.Queue

	pipelines *Pipelines
	assets    *Assets
	camera    *quadgfx.Camera

	cameraBuf  hal.Buffer
	cameraBind hal.BindGroup

	colorTex  hal.Texture
	colorView hal.TextureView
	depthTex  hal.Texture
	depthView hal.TextureView

	width       uint32
	height      uint32
	clearColour quadgfx.RGBA

	states   map[*Sprite]*spriteState
	drawList []*Sprite
}

// NewRenderer creates a renderer on an already-open device.
func NewRenderer(device hal.Device, queue hal.Queue, cfg Config) (*Renderer, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, cfg.Width, cfg.Height)
	}

	camera := cfg.Camera
	if camera == nil {
		camera = quadgfx.NewOrthographic(0, float32(cfg.Width), 0, float32(cfg.Height), -1, 1)
	}

	r := &Renderer{
		device:      device,
		queue:       queue,
		camera:      camera,
		width:       cfg.Width,
		height:      cfg.Height,
		clearColour: cfg.ClearColour,
		states:      make(map[*Sprite]*spriteState),
	}

	pipelines, err := NewPipelines(device)
	if err != nil {
		return nil, fmt.Errorf("create pipelines: %w", err)
	}
	r.pipelines = pipelines

	assets, err := NewAssets(device, queue, pipelines)
	if err != nil {
		r.Destroy()
		return nil, fmt.Errorf("create assets: %w", err)
	}
	r.assets = assets

	cameraBuf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "quad_camera_uniform",
		Size:  cameraUniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		r.Destroy()
		return nil, fmt.Errorf("create camera buffer: %w", err)
	}
	r.cameraBuf = cameraBuf

	cameraBind, err := device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "quad_camera_bind",
		Layout: pipelines.CameraLayout(),
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: cameraBuf.NativeHandle(), Offset: 0, Size: cameraUniformSize,
			}},
		},
	})
	if err != nil {
		r.Destroy()
		return nil, fmt.Errorf("create camera bind group: %w", err)
	}
	r.cameraBind = cameraBind

	if err := r.createTargets(cfg.Width, cfg.Height); err != nil {
		r.Destroy()
		return nil, err
	}

	quadgfx.Logger().Info("render: renderer ready",
		"width", cfg.Width, "height", cfg.Height)
	return r, nil
}

// createTargets creates the offscreen colour and depth textures.
func (r *Renderer) createTargets(w, h uint32) error {
	size := hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1}

	colorTex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "quad_color_target",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create color target: %w", err)
	}
	r.colorTex = colorTex

	colorView, err := r.device.CreateTextureView(colorTex, &hal.TextureViewDescriptor{
		Label: "quad_color_target_view",
	})
	if err != nil {
		return fmt.Errorf("create color target view: %w", err)
	}
	r.colorView = colorView

	depthTex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "quad_depth_target",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatDepth24PlusStencil8,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create depth target: %w", err)
	}
	r.depthTex = depthTex

	depthView, err := r.device.CreateTextureView(depthTex, &hal.TextureViewDescriptor{
		Label: "quad_depth_target_view",
	})
	if err != nil {
		return fmt.Errorf("create depth target view: %w", err)
	}
	r.depthView = depthView

	return nil
}

func (r *Renderer) destroyTargets() {
	if r.depthView != nil {
		r.device.DestroyTextureView(r.depthView)
		r.depthView = nil
	}
	if r.depthTex != nil {
		r.device.DestroyTexture(r.depthTex)
		r.depthTex = nil
	}
	if r.colorView != nil {
		r.device.DestroyTextureView(r.colorView)
		r.colorView = nil
	}
	if r.colorTex != nil {
		r.device.DestroyTexture(r.colorTex)
		r.colorTex = nil
	}
}

// Assets returns the renderer's texture registry.
func (r *Renderer) Assets() *Assets { return r.assets }

// Camera returns the renderer's camera.
func (r *Renderer) Camera() *quadgfx.Camera { return r.camera }

// Size returns the render target dimensions.
func (r *Renderer) Size() (uint32, uint32) { return r.width, r.height }

// SetClearColour changes the frame clear colour.
func (r *Renderer) SetClearColour(c quadgfx.RGBA) { r.clearColour = c }

// Resize recreates the render targets and rebuilds the default camera
// mapping for the new dimensions.
func (r *Renderer) Resize(w, h uint32) error {
	if w == 0 || h == 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, w, h)
	}
	if w == r.width && h == r.height {
		return nil
	}
	r.destroyTargets()
	if err := r.createTargets(w, h); err != nil {
		return err
	}
	r.width = w
	r.height = h
	r.camera.Rebuild(0, float32(w), 0, float32(h), -1, 1)
	return nil
}

// Draw queues a sprite for the next frame. The first draw of a sprite
// allocates its GPU resources; subsequent draws reuse them.
func (r *Renderer) Draw(s *Sprite) error {
	st, ok := r.states[s]
	if !ok {
		mesh, err := newQuadMesh(r.device, r.queue, s.Size(), s.Mode() == quadgfx.ModeTextured, s.UVRect())
		if err != nil {
			return err
		}
		uniformBuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "quad_mesh_uniform",
			Size:  meshUniformSize,
			Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			mesh.destroy(r.device)
			return fmt.Errorf("create mesh uniform buffer: %w", err)
		}
		bind, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:  "quad_mesh_bind",
			Layout: r.pipelines.MeshLayout(),
			Entries: []gputypes.BindGroupEntry{
				{Binding: 0, Resource: gputypes.BufferBinding{
					Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: meshUniformSize,
				}},
			},
		})
		if err != nil {
			r.device.DestroyBuffer(uniformBuf)
			mesh.destroy(r.device)
			return fmt.Errorf("create mesh bind group: %w", err)
		}
		st = &spriteState{mesh: mesh, uniformBuf: uniformBuf, bind: bind}
		r.states[s] = st
	}
	r.drawList = append(r.drawList, s)
	return nil
}

// Remove releases a sprite's GPU resources. The sprite itself stays valid
// and can be drawn again later.
func (r *Renderer) Remove(s *Sprite) {
	if st, ok := r.states[s]; ok {
		st.destroy(r.device)
		delete(r.states, s)
	}
}

// Advance steps the animations of every sprite the renderer knows about.
func (r *Renderer) Advance(elapsed time.Duration) {
	for s := range r.states {
		s.Update(elapsed)
	}
}

// flushUniforms uploads the camera matrix and any dirty sprite uniforms.
func (r *Renderer) flushUniforms() {
	if r.camera.Dirty() {
		r.queue.WriteBuffer(r.cameraBuf, 0, packCameraUniform(r.camera.ViewProj()))
		r.camera.MarkClean()
	}
	for _, s := range r.drawList {
		st := r.states[s]
		st.mesh.setGeometry(r.queue, s.Size(), s.UVRect())
		if s.dirty {
			r.queue.WriteBuffer(st.uniformBuf, 0, packMeshUniform(s.uniform()))
			s.dirty = false
		}
	}
}

// recordDraws records the queued sprites into a render pass. Sprites are
// drawn in submission order; depth testing resolves overlaps.
func (r *Renderer) recordDraws(rp hal.RenderPassEncoder) {
	for _, s := range r.drawList {
		st := r.states[s]
		rp.SetPipeline(r.pipelines.ForMode(s.Mode()))
		rp.SetBindGroup(0, r.cameraBind, nil)
		rp.SetBindGroup(1, st.bind, nil)
		if s.Mode() == quadgfx.ModeTextured {
			rp.SetBindGroup(2, r.assets.Texture(s.TextureID()).bind, nil)
		}
		st.mesh.record(rp)
	}
}

func (r *Renderer) passDescriptor(label string, view hal.TextureView) *hal.RenderPassDescriptor {
	return &hal.RenderPassDescriptor{
		Label: label,
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:    view,
			LoadOp:  gputypes.LoadOpClear,
			StoreOp: gputypes.StoreOpStore,
			ClearValue: gputypes.Color{
				R: float64(r.clearColour.R),
				G: float64(r.clearColour.G),
				B: float64(r.clearColour.B),
				A: float64(r.clearColour.A),
			},
		}},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:              r.depthView,
			DepthLoadOp:       gputypes.LoadOpClear,
			DepthStoreOp:      gputypes.StoreOpDiscard,
			DepthClearValue:   1.0,
			StencilLoadOp:     gputypes.LoadOpClear,
			StencilStoreOp:    gputypes.StoreOpDiscard,
			StencilClearValue: 0,
		},
	}
}

// RenderFrame draws the queued sprites to the offscreen target and reads
// the result back as tightly packed RGBA pixels. The draw queue is cleared
// whether or not the frame succeeds.
func (r *Renderer) RenderFrame() ([]byte, error) {
	defer func() { r.drawList = r.drawList[:0] }()
	r.flushUniforms()

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "quad_frame_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("quad_frame"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(r.passDescriptor("quad_pass", r.colorView))
	r.recordDraws(rp)
	rp.End()

	// The colour target leaves the pass in render-attachment usage;
	// CopyTextureToBuffer needs copy-source usage.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.colorTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	// WebGPU requires BytesPerRow aligned to 256 bytes.
	bytesPerRow := r.width * 4
	const copyPitchAlignment = 256
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(r.height)

	stagingBuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "quad_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer r.device.DestroyBuffer(stagingBuf)

	encoder.CopyTextureToBuffer(r.colorTex, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: r.height},
		TextureBase:  hal.ImageCopyTexture{Texture: r.colorTex, MipLevel: 0},
		Size:         hal.Extent3D{Width: r.width, Height: r.height, DepthOrArrayLayers: 1},
	}})

	// Return the target to render-attachment usage for the next frame.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.colorTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	if err := r.submitAndWait(encoder); err != nil {
		return nil, err
	}

	readback := make([]byte, stagingSize)
	if err := r.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return nil, fmt.Errorf("readback: %w", err)
	}

	pixels := make([]byte, uint64(bytesPerRow)*uint64(r.height))
	if alignedBytesPerRow == bytesPerRow {
		convertBGRAToRGBA(readback, pixels)
	} else {
		// Strip per-row padding before converting.
		tight := make([]byte, len(pixels))
		for row := uint32(0); row < r.height; row++ {
			srcOff := int(row) * int(alignedBytesPerRow)
			dstOff := int(row) * int(bytesPerRow)
			copy(tight[dstOff:dstOff+int(bytesPerRow)], readback[srcOff:srcOff+int(bytesPerRow)])
		}
		convertBGRAToRGBA(tight, pixels)
	}
	return pixels, nil
}

// RenderToView draws the queued sprites directly into a caller-provided
// texture view, typically a surface texture. No readback occurs; the
// caller presents the surface after this returns. The view must match the
// renderer's dimensions and a BGRA8Unorm format.
func (r *Renderer) RenderToView(view hal.TextureView) error {
	defer func() { r.drawList = r.drawList[:0] }()
	if view == nil {
		return errors.New("render: nil target view")
	}
	r.flushUniforms()

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "quad_surface_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("quad_surface_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(r.passDescriptor("quad_surface_pass", view))
	r.recordDraws(rp)
	rp.End()

	return r.submitAndWait(encoder)
}

// submitAndWait finishes encoding, submits, and blocks until the GPU
// signals the frame fence.
func (r *Renderer) submitAndWait(encoder hal.CommandEncoder) error {
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	fence, err := r.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer r.device.DestroyFence(fence)

	if err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := r.device.Wait(fence, 1, gpuWaitTimeout)
	if err != nil {
		return fmt.Errorf("wait for GPU: %w", err)
	}
	if !fenceOK {
		return errors.New("render: GPU fence wait timed out")
	}
	return nil
}

// Destroy releases every GPU resource the renderer owns. Safe to call on
// a partially constructed renderer.
func (r *Renderer) Destroy() {
	for s, st := range r.states {
		st.destroy(r.device)
		delete(r.states, s)
	}
	r.drawList = nil
	r.destroyTargets()
	if r.cameraBind != nil {
		r.device.DestroyBindGroup(r.cameraBind)
		r.cameraBind = nil
	}
	if r.cameraBuf != nil {
		r.device.DestroyBuffer(r.cameraBuf)
		r.cameraBuf = nil
	}
	if r.assets != nil {
		r.assets.Destroy()
		r.assets = nil
	}
	if r.pipelines != nil {
		r.pipelines.Destroy()
		r.pipelines = nil
	}
}

// convertBGRAToRGBA swaps the blue and red channels of tightly packed
// pixel data. src and dst must be the same length.
func convertBGRAToRGBA(src, dst []byte) {
	for i := 0; i+3 < len(src) && i+3 < len(dst); i += 4 {
		dst[i] = src[i+2]
		dst[i+1] = src[i+1]
		dst[i+2] = src[i]
		dst[i+3] = src[i+3]
	}
}
