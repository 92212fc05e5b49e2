package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/quadgfx"
)

// Pipelines holds the three quad render pipelines and the bind group
// layouts they share. All variants use the same vertex stage and the same
// camera (group 0) and mesh (group 1) uniform layouts; the textured
// variant adds a texture + sampler group (group 2).
//
// Pipeline state shared by all variants:
//   - premultiplied alpha blending on a BGRA8Unorm target
//   - depth test Less with depth writes enabled (quads at lower z win)
//   - stencil pass-through (Always/Keep, masks 0)
//   - triangle list, no culling, single sample
type Pipelines struct {
	device hal.Device

	solidShader    hal.ShaderModule
	flashShader    hal.ShaderModule
	texturedShader hal.ShaderModule

	cameraLayout  hal.BindGroupLayout
	meshLayout    hal.BindGroupLayout
	textureLayout hal.BindGroupLayout

	plainPipeLayout    hal.PipelineLayout
	texturedPipeLayout hal.PipelineLayout

	solid    hal.RenderPipeline
	flash    hal.RenderPipeline
	textured hal.RenderPipeline

	// Default sampler for quad textures (linear filtering, clamp to edge).
	sampler hal.Sampler
}

// NewPipelines compiles the three shader variants and creates their render
// pipelines. On error all partially created resources are released.
func NewPipelines(device hal.Device) (*Pipelines, error) {
	p := &Pipelines{device: device}
	if err := p.create(); err != nil {
		p.Destroy()
		return nil, err
	}
	quadgfx.Logger().Debug("render: pipelines created",
		"variants", 3, "colorFormat", "BGRA8Unorm")
	return p, nil
}

//nolint:funlen // GPU pipeline descriptors are inherently verbose
func (p *Pipelines) create() error {
	// Compile shaders.
	solidShader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "quad_solid_shader",
		Source: hal.ShaderSource{WGSL: solidShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile solid shader: %w", err)
	}
	p.solidShader = solidShader

	flashShader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "quad_flash_shader",
		Source: hal.ShaderSource{WGSL: flashShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile flash shader: %w", err)
	}
	p.flashShader = flashShader

	texturedShader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "quad_textured_shader",
		Source: hal.ShaderSource{WGSL: texturedShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile textured shader: %w", err)
	}
	p.texturedShader = texturedShader

	// Camera uniform at group(0) binding(0), vertex stage only.
	cameraLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "quad_camera_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create camera bind group layout: %w", err)
	}
	p.cameraLayout = cameraLayout

	// Mesh uniform at group(1) binding(0). The vertex stage reads position
	// and z, the fragment stage reads overlay alpha and back colour.
	meshLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "quad_mesh_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create mesh bind group layout: %w", err)
	}
	p.meshLayout = meshLayout

	// Texture + sampler at group(2), fragment stage, textured variant only.
	textureLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "quad_texture_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create texture bind group layout: %w", err)
	}
	p.textureLayout = textureLayout

	plainPipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "quad_plain_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.cameraLayout, p.meshLayout},
	})
	if err != nil {
		return fmt.Errorf("create plain pipeline layout: %w", err)
	}
	p.plainPipeLayout = plainPipeLayout

	texturedPipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "quad_textured_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.cameraLayout, p.meshLayout, p.textureLayout},
	})
	if err != nil {
		return fmt.Errorf("create textured pipeline layout: %w", err)
	}
	p.texturedPipeLayout = texturedPipeLayout

	sampler, err := p.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "quad_texture_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return fmt.Errorf("create quad sampler: %w", err)
	}
	p.sampler = sampler

	solid, err := p.createVariant("quad_solid_pipeline", p.solidShader, p.plainPipeLayout, plainVertexLayout())
	if err != nil {
		return fmt.Errorf("create solid pipeline: %w", err)
	}
	p.solid = solid

	flash, err := p.createVariant("quad_flash_pipeline", p.flashShader, p.plainPipeLayout, plainVertexLayout())
	if err != nil {
		return fmt.Errorf("create flash pipeline: %w", err)
	}
	p.flash = flash

	textured, err := p.createVariant("quad_textured_pipeline", p.texturedShader, p.texturedPipeLayout, texturedVertexLayout())
	if err != nil {
		return fmt.Errorf("create textured pipeline: %w", err)
	}
	p.textured = textured

	return nil
}

// createVariant creates one render pipeline with the state shared by all
// quad variants.
func (p *Pipelines) createVariant(
	label string,
	shader hal.ShaderModule,
	layout hal.PipelineLayout,
	vertexBuffers []gputypes.VertexBufferLayout,
) (hal.RenderPipeline, error) {
	premulBlend := gputypes.BlendStatePremultiplied()
	return p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  label,
		Layout: layout,
		Vertex: hal.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    vertexBuffers,
		},
		Fragment: &hal.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    gputypes.TextureFormatBGRA8Unorm,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		DepthStencil: &hal.DepthStencilState{
			Format:            gputypes.TextureFormatDepth24PlusStencil8,
			DepthWriteEnabled: true,
			DepthCompare:      gputypes.CompareFunctionLess,
			StencilFront: hal.StencilFaceState{
				Compare:     gputypes.CompareFunctionAlways,
				FailOp:      hal.StencilOperationKeep,
				DepthFailOp: hal.StencilOperationKeep,
				PassOp:      hal.StencilOperationKeep,
			},
			StencilBack: hal.StencilFaceState{
				Compare:     gputypes.CompareFunctionAlways,
				FailOp:      hal.StencilOperationKeep,
				DepthFailOp: hal.StencilOperationKeep,
				PassOp:      hal.StencilOperationKeep,
			},
			StencilReadMask:  0x00,
			StencilWriteMask: 0x00,
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
}

// ForMode returns the pipeline for the given compositor mode.
func (p *Pipelines) ForMode(mode quadgfx.CompositeMode) hal.RenderPipeline {
	switch mode {
	case quadgfx.ModeFlash:
		return p.flash
	case quadgfx.ModeTextured:
		return p.textured
	default:
		return p.solid
	}
}

// CameraLayout returns the group(0) camera uniform layout.
func (p *Pipelines) CameraLayout() hal.BindGroupLayout { return p.cameraLayout }

// MeshLayout returns the group(1) mesh uniform layout.
func (p *Pipelines) MeshLayout() hal.BindGroupLayout { return p.meshLayout }

// TextureLayout returns the group(2) texture + sampler layout.
func (p *Pipelines) TextureLayout() hal.BindGroupLayout { return p.textureLayout }

// Sampler returns the shared quad texture sampler.
func (p *Pipelines) Sampler() hal.Sampler { return p.sampler }

// Destroy releases all pipeline resources in reverse creation order. Safe
// to call multiple times or on partially created pipelines.
func (p *Pipelines) Destroy() {
	if p.device == nil {
		return
	}
	if p.textured != nil {
		p.device.DestroyRenderPipeline(p.textured)
		p.textured = nil
	}
	if p.flash != nil {
		p.device.DestroyRenderPipeline(p.flash)
		p.flash = nil
	}
	if p.solid != nil {
		p.device.DestroyRenderPipeline(p.solid)
		p.solid = nil
	}
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.texturedPipeLayout != nil {
		p.device.DestroyPipelineLayout(p.texturedPipeLayout)
		p.texturedPipeLayout = nil
	}
	if p.plainPipeLayout != nil {
		p.device.DestroyPipelineLayout(p.plainPipeLayout)
		p.plainPipeLayout = nil
	}
	if p.textureLayout != nil {
		p.device.DestroyBindGroupLayout(p.textureLayout)
		p.textureLayout = nil
	}
	if p.meshLayout != nil {
		p.device.DestroyBindGroupLayout(p.meshLayout)
		p.meshLayout = nil
	}
	if p.cameraLayout != nil {
		p.device.DestroyBindGroupLayout(p.cameraLayout)
		p.cameraLayout = nil
	}
	if p.texturedShader != nil {
		p.device.DestroyShaderModule(p.texturedShader)
		p.texturedShader = nil
	}
	if p.flashShader != nil {
		p.device.DestroyShaderModule(p.flashShader)
		p.flashShader = nil
	}
	if p.solidShader != nil {
		p.device.DestroyShaderModule(p.solidShader)
		p.solidShader = nil
	}
}

// plainVertexLayout returns the vertex buffer layout for the solid and
// flash pipelines: position (vec2<f32>) at location(0).
func plainVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: plainVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			},
		},
	}
}

// texturedVertexLayout returns the vertex buffer layout for the textured
// pipeline: position at location(0), tex_coords at location(1).
func texturedVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: texturedVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
			},
		},
	}
}
