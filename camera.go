package quadgfx

// Mat4 is a 4x4 float32 matrix in column-major order, matching the memory
// layout of a WGSL mat4x4<f32> uniform. Element (row, col) is at [col*4+row].
type Mat4 [16]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Orthographic builds an orthographic projection matrix for the given
// frustum limits. The resulting matrix maps the box [left,right] x
// [bottom,top] x [near,far] onto clip space.
func Orthographic(left, right, bottom, top, near, far float32) Mat4 {
	rl := right - left
	tb := top - bottom
	fn := far - near
	return Mat4{
		2 / rl, 0, 0, 0,
		0, 2 / tb, 0, 0,
		0, 0, -2 / fn, 0,
		-(right + left) / rl, -(top + bottom) / tb, -(far + near) / fn, 1,
	}
}

// MulVec4 multiplies the matrix by a 4-component column vector.
func (m Mat4) MulVec4(v [4]float32) [4]float32 {
	var out [4]float32
	for row := 0; row < 4; row++ {
		out[row] = m[row]*v[0] + m[4+row]*v[1] + m[8+row]*v[2] + m[12+row]*v[3]
	}
	return out
}

// Camera is a per-frame orthographic camera. Its view-projection matrix is
// shared read-only by every draw in a frame; the renderer uploads it once
// per frame when the camera is dirty.
//
// Camera is not safe for concurrent mutation. The owning renderer must not
// rebuild the camera while a frame that reads it is in flight.
type Camera struct {
	left   float32
	right  float32
	top    float32
	bottom float32
	near   float32
	far    float32

	viewProj Mat4

	// dirty is set when the matrix changed and the GPU copy is stale.
	dirty bool
}

// NewOrthographic creates a new orthographic camera covering the given
// frustum limits. The camera starts dirty so the first frame uploads it.
func NewOrthographic(left, right, top, bottom, near, far float32) *Camera {
	return &Camera{
		left:     left,
		right:    right,
		top:      top,
		bottom:   bottom,
		near:     near,
		far:      far,
		viewProj: Orthographic(left, right, bottom, top, near, far),
		dirty:    true,
	}
}

// ViewProj returns the current view-projection matrix.
func (c *Camera) ViewProj() Mat4 {
	return c.viewProj
}

// Rebuild recomputes the view-projection matrix with new frustum limits
// and marks the camera dirty.
func (c *Camera) Rebuild(left, right, top, bottom, near, far float32) {
	c.left = left
	c.right = right
	c.top = top
	c.bottom = bottom
	c.near = near
	c.far = far
	c.viewProj = Orthographic(left, right, bottom, top, near, far)
	c.dirty = true
}

// Dirty reports whether the GPU copy of the matrix is stale.
func (c *Camera) Dirty() bool {
	return c.dirty
}

// MarkClean clears the dirty flag after the matrix has been uploaded.
func (c *Camera) MarkClean() {
	c.dirty = false
}
