// Package render executes quad drawing on a WebGPU device via the wgpu HAL.
//
// The package owns the GPU half of quadgfx: shader modules, render
// pipelines, mesh and uniform buffers, textures, and the per-frame render
// pass. The colour arithmetic of each pipeline variant is mirrored by the
// pure compositor functions in the root package, which is what the tests
// verify against.
//
// A Renderer is driven one frame at a time:
//
//	r, _ := render.NewRenderer(device, queue, render.Config{Width: 800, Height: 600})
//	defer r.Destroy()
//
//	panel := render.NewPanel(render.PanelConfig{
//	    Size:       quadgfx.V2(100, 50),
//	    BackColour: quadgfx.RGB(0.2, 0.4, 0.8),
//	})
//	r.Draw(panel)
//	pixels, _ := r.RenderFrame()
//
// Renderer is not safe for concurrent use.
package render
