package quadgfx

// MeshUniform is the per-draw-call instance data for a quad. It matches the
// MeshUniform struct in the WGSL shaders field for field:
//
//	position      vec2<f32>   offset  0
//	z             f32         offset  8
//	overlay_alpha f32         offset 12
//	back_colour   vec4<f32>   offset 16
//
// Total 32 bytes, 16-byte aligned. The overlay alpha occupies what would
// otherwise be a padding slot after z.
//
// A MeshUniform is constructed per draw call and never shared or mutated
// concurrently; every compositor invocation is a pure function of it.
type MeshUniform struct {
	// Position is the 2D offset added to every vertex of the quad.
	Position Vec2

	// Z is the depth value passed through as the third clip-space
	// coordinate. It drives depth-buffer ordering and is never computed
	// by this package.
	Z float32

	// OverlayAlpha controls how strongly a white highlight is blended
	// over the quad's colour: 0 = no highlight, 1 = fully white.
	// Values outside [0, 1] are not clamped; keeping the value in range
	// is the caller's contract.
	OverlayAlpha float32

	// BackColour is the quad's intrinsic background colour. Its alpha
	// channel participates in compositing (see CompositeTextured).
	BackColour RGBA
}

// NewMeshUniform creates a mesh uniform with no highlight applied.
func NewMeshUniform(position Vec2, z float32, backColour RGBA) MeshUniform {
	return MeshUniform{
		Position:   position,
		Z:          z,
		BackColour: backColour,
	}
}

// TransformVertex maps a quad-local vertex position into clip space:
//
//	clip = viewProj * vec4(local + u.Position, u.Z, 1)
//
// This mirrors the vs_main entry of every shader variant. With an identity
// matrix the result is the pre-projection coordinate.
func TransformVertex(viewProj Mat4, local Vec2, u MeshUniform) [4]float32 {
	world := local.Add(u.Position)
	return viewProj.MulVec4([4]float32{world.X, world.Y, u.Z, 1})
}
