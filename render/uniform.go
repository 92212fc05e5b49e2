package render

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/quadgfx"
)

// cameraUniformSize is the byte size of the camera uniform buffer.
// Layout: view_proj (mat4x4<f32>) = 64 bytes.
const cameraUniformSize = 64

// meshUniformSize is the byte size of the per-quad mesh uniform buffer.
// Layout: position (vec2<f32>) + z (f32) + overlay_alpha (f32) +
// back_colour (vec4<f32>) = 32 bytes.
const meshUniformSize = 32

// plainVertexStride is the byte stride per vertex for the solid and flash
// pipelines: position (vec2<f32>) = 8 bytes.
const plainVertexStride = 8

// texturedVertexStride is the byte stride per vertex for the textured
// pipeline: position (vec2<f32>) + tex_coords (vec2<f32>) = 16 bytes.
const texturedVertexStride = 16

// quadIndexCount is the number of indices per quad (two triangles).
const quadIndexCount = 6

// packCameraUniform serializes a column-major view-projection matrix into
// the 64-byte layout of the CameraUniform WGSL struct.
func packCameraUniform(viewProj quadgfx.Mat4) []byte {
	buf := make([]byte, cameraUniformSize)
	for i, v := range viewProj {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// packMeshUniform serializes a mesh uniform into the 32-byte layout of the
// MeshUniform WGSL struct. The overlay alpha sits in the slot that would
// otherwise be padding between z and back_colour.
func packMeshUniform(u quadgfx.MeshUniform) []byte {
	buf := make([]byte, meshUniformSize)
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(u.Position.X))
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(u.Position.Y))
	binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(u.Z))
	binary.LittleEndian.PutUint32(buf[12:], math.Float32bits(u.OverlayAlpha))
	binary.LittleEndian.PutUint32(buf[16:], math.Float32bits(u.BackColour.R))
	binary.LittleEndian.PutUint32(buf[20:], math.Float32bits(u.BackColour.G))
	binary.LittleEndian.PutUint32(buf[24:], math.Float32bits(u.BackColour.B))
	binary.LittleEndian.PutUint32(buf[28:], math.Float32bits(u.BackColour.A))
	return buf
}

// buildQuadVertexData serializes the four corners of a size-by-size quad
// for the solid and flash pipelines. Corner order is bottom-left,
// bottom-right, top-right, top-left, matching the 0,1,2 2,3,0 index
// pattern.
func buildQuadVertexData(size quadgfx.Vec2) []byte {
	corners := quadCorners(size)
	data := make([]byte, 4*plainVertexStride)
	for i, c := range corners {
		off := i * plainVertexStride
		binary.LittleEndian.PutUint32(data[off:], math.Float32bits(c.X))
		binary.LittleEndian.PutUint32(data[off+4:], math.Float32bits(c.Y))
	}
	return data
}

// UVRect selects the texture sub-rectangle a textured quad samples.
// U0, V0 is the top-left corner and U1, V1 the bottom-right, with the
// v axis pointing down. Glyph atlases hand these out per glyph.
type UVRect struct {
	U0, V0, U1, V1 float32
}

// FullUV returns the rectangle covering the whole texture.
func FullUV() UVRect {
	return UVRect{U0: 0, V0: 0, U1: 1, V1: 1}
}

// buildTexturedQuadVertexData serializes the four corners of a quad with
// interleaved texture coordinates. The texture's v axis points down, so
// the bottom-left corner samples (U0, V1) and the top-left (U0, V0).
func buildTexturedQuadVertexData(size quadgfx.Vec2, uv UVRect) []byte {
	corners := quadCorners(size)
	uvs := [4]quadgfx.Vec2{
		{X: uv.U0, Y: uv.V1}, // bottom-left
		{X: uv.U1, Y: uv.V1}, // bottom-right
		{X: uv.U1, Y: uv.V0}, // top-right
		{X: uv.U0, Y: uv.V0}, // top-left
	}
	data := make([]byte, 4*texturedVertexStride)
	for i, c := range corners {
		off := i * texturedVertexStride
		binary.LittleEndian.PutUint32(data[off:], math.Float32bits(c.X))
		binary.LittleEndian.PutUint32(data[off+4:], math.Float32bits(c.Y))
		binary.LittleEndian.PutUint32(data[off+8:], math.Float32bits(uvs[i].X))
		binary.LittleEndian.PutUint32(data[off+12:], math.Float32bits(uvs[i].Y))
	}
	return data
}

// quadCorners returns the local-space corners of a quad anchored at the
// origin with the given size.
func quadCorners(size quadgfx.Vec2) [4]quadgfx.Vec2 {
	return [4]quadgfx.Vec2{
		{X: 0, Y: 0},
		{X: size.X, Y: 0},
		{X: size.X, Y: size.Y},
		{X: 0, Y: size.Y},
	}
}

// buildQuadIndexData serializes the shared quad index pattern 0,1,2 2,3,0
// as little-endian uint16 values.
func buildQuadIndexData() []byte {
	indices := [quadIndexCount]uint16{0, 1, 2, 2, 3, 0}
	data := make([]byte, len(indices)*2)
	for i, idx := range indices {
		binary.LittleEndian.PutUint16(data[i*2:], idx)
	}
	return data
}
