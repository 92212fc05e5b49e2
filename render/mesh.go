package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/quadgfx"
)

// quadMesh holds the GPU vertex and index buffers for one quad. The vertex
// buffer stores the quad's local-space corners; world placement comes from
// the mesh uniform, so moving a sprite never touches these buffers. Only a
// resize re-uploads vertex data.
type quadMesh struct {
	vertBuf  hal.Buffer
	idxBuf   hal.Buffer
	textured bool
	size     quadgfx.Vec2
	uv       UVRect
}

// newQuadMesh creates and uploads the vertex and index buffers for a quad
// of the given size. Textured meshes interleave texture coordinates for
// the uv sub-rectangle.
func newQuadMesh(device hal.Device, queue hal.Queue, size quadgfx.Vec2, textured bool, uv UVRect) (*quadMesh, error) {
	vertData := quadVertexData(size, textured, uv)
	vertBuf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "quad_vertices",
		Size:  uint64(len(vertData)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create quad vertex buffer: %w", err)
	}
	queue.WriteBuffer(vertBuf, 0, vertData)

	idxData := buildQuadIndexData()
	idxBuf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "quad_indices",
		Size:  uint64(len(idxData)),
		Usage: gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		device.DestroyBuffer(vertBuf)
		return nil, fmt.Errorf("create quad index buffer: %w", err)
	}
	queue.WriteBuffer(idxBuf, 0, idxData)

	return &quadMesh{
		vertBuf:  vertBuf,
		idxBuf:   idxBuf,
		textured: textured,
		size:     size,
		uv:       uv,
	}, nil
}

// setGeometry re-uploads the vertex buffer for a new quad size or UV
// rectangle. The buffer is reused since the vertex count and stride
// never change.
func (m *quadMesh) setGeometry(queue hal.Queue, size quadgfx.Vec2, uv UVRect) {
	if size == m.size && uv == m.uv {
		return
	}
	m.size = size
	m.uv = uv
	queue.WriteBuffer(m.vertBuf, 0, quadVertexData(size, m.textured, uv))
}

// record binds the mesh buffers and issues the indexed draw.
func (m *quadMesh) record(rp hal.RenderPassEncoder) {
	rp.SetVertexBuffer(0, m.vertBuf, 0)
	rp.SetIndexBuffer(m.idxBuf, gputypes.IndexFormatUint16, 0)
	rp.DrawIndexed(quadIndexCount, 1, 0, 0, 0)
}

// destroy releases the mesh buffers. Safe to call multiple times.
func (m *quadMesh) destroy(device hal.Device) {
	if m.idxBuf != nil {
		device.DestroyBuffer(m.idxBuf)
		m.idxBuf = nil
	}
	if m.vertBuf != nil {
		device.DestroyBuffer(m.vertBuf)
		m.vertBuf = nil
	}
}

func quadVertexData(size quadgfx.Vec2, textured bool, uv UVRect) []byte {
	if textured {
		return buildTexturedQuadVertexData(size, uv)
	}
	return buildQuadVertexData(size)
}
