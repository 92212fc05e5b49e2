package render

import _ "embed"

// Embedded WGSL shader sources, one per pipeline variant. All three share
// the same vertex stage; they differ only in the fragment compositor.

//go:embed shaders/solid.wgsl
var solidShaderSource string

//go:embed shaders/flash.wgsl
var flashShaderSource string

//go:embed shaders/textured.wgsl
var texturedShaderSource string

// SolidShaderSource returns the WGSL source for the solid pipeline.
func SolidShaderSource() string { return solidShaderSource }

// FlashShaderSource returns the WGSL source for the flash pipeline.
func FlashShaderSource() string { return flashShaderSource }

// TexturedShaderSource returns the WGSL source for the textured pipeline.
func TexturedShaderSource() string { return texturedShaderSource }
