// Package quadgfx provides a camera-projected 2D quad renderer for Go.
//
// # Overview
//
// quadgfx renders axis-aligned quads ("meshes") into a camera-projected
// scene. Each quad carries its own position, depth, background colour,
// optional texture, and a scalar overlay intensity used for highlight
// effects such as hover and selection flashes.
//
// The heart of the library is the colour compositor: three interchangeable
// fragment-stage variants that combine a background colour, an optional
// sampled texel, and the overlay intensity into the final RGBA output.
// Every variant exists twice, intentionally in lockstep:
//
//   - as a WGSL fragment shader executed by the GPU renderer
//     (see the render package), and
//   - as a pure Go function in this package, so the exact blending
//     arithmetic is testable without a GPU device.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/quadgfx"
//	    "github.com/gogpu/quadgfx/render"
//	)
//
//	r, err := render.NewRenderer(device, queue, render.Config{Width: 800, Height: 600})
//	if err != nil { ... }
//	defer r.Destroy()
//
//	panel := render.NewPanel(render.PanelConfig{
//	    Position:   quadgfx.V2(100, 100),
//	    Size:       quadgfx.V2(200, 50),
//	    Z:          0.5,
//	    BackColour: quadgfx.RGB(0.2, 0.2, 0.8),
//	})
//	_ = r.Draw(panel)
//	pixels, err := r.RenderFrame()
//
// # Architecture
//
// The library is organized into:
//   - Root package: colour, camera, mesh uniform, compositor math, animation
//   - render: GPU pipelines and frame encoding on gogpu/wgpu
//   - text: glyph shaping and atlas packing for textured glyph quads
//
// # Coordinate System
//
// Quad-local vertex positions are offset by the per-instance position and
// projected by the shared orthographic camera. The Z value passes through
// unchanged for depth-buffer ordering; the renderer does not sort draws.
package quadgfx

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"
)
