package render

import (
	"errors"
	"image"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/quadgfx"
)

// TextureID identifies a texture registered with Assets. The zero value is
// never a valid ID.
type TextureID uint32

// TextureIDEmpty is the 1x1 white fallback texture that Assets registers
// at creation. Sprites that reference a missing texture are drawn with it,
// so a bad ID degrades to a visible white quad instead of failing the draw.
const TextureIDEmpty TextureID = 1

// ErrEmptyTextureReserved is returned when removing the fallback texture.
var ErrEmptyTextureReserved = errors.New("render: the empty texture cannot be removed")

// Assets owns the textures available to a renderer. Textures are
// registered once and referenced by ID from sprites; lookups of unknown
// IDs resolve to the white fallback.
//
// Assets is not safe for concurrent use.
type Assets struct {
	device    hal.Device
	queue     hal.Queue
	pipelines *Pipelines

	textures map[TextureID]*Texture
	nextID   TextureID
}

// NewAssets creates an asset registry and uploads the fallback texture.
func NewAssets(device hal.Device, queue hal.Queue, pipelines *Pipelines) (*Assets, error) {
	white, err := newWhiteTexture(device, queue, pipelines)
	if err != nil {
		return nil, err
	}
	return &Assets{
		device:    device,
		queue:     queue,
		pipelines: pipelines,
		textures:  map[TextureID]*Texture{TextureIDEmpty: white},
		nextID:    TextureIDEmpty + 1,
	}, nil
}

// LoadTexture decodes and uploads an encoded image, returning its ID.
func (a *Assets) LoadTexture(label string, data []byte) (TextureID, error) {
	tex, err := NewTextureFromBytes(a.device, a.queue, a.pipelines, label, data)
	if err != nil {
		return 0, err
	}
	return a.register(tex), nil
}

// AddImage uploads a decoded image, returning its ID.
func (a *Assets) AddImage(label string, img image.Image) (TextureID, error) {
	tex, err := NewTextureFromImage(a.device, a.queue, a.pipelines, label, img)
	if err != nil {
		return 0, err
	}
	return a.register(tex), nil
}

func (a *Assets) register(tex *Texture) TextureID {
	id := a.nextID
	a.nextID++
	a.textures[id] = tex
	return id
}

// Texture returns the texture for id, or the white fallback when id is
// unknown.
func (a *Assets) Texture(id TextureID) *Texture {
	if tex, ok := a.textures[id]; ok {
		return tex
	}
	quadgfx.Logger().Warn("render: unknown texture id, using fallback", "id", uint32(id))
	return a.textures[TextureIDEmpty]
}

// Has reports whether id is registered.
func (a *Assets) Has(id TextureID) bool {
	_, ok := a.textures[id]
	return ok
}

// Remove destroys a texture and unregisters it. The fallback texture
// cannot be removed.
func (a *Assets) Remove(id TextureID) error {
	if id == TextureIDEmpty {
		return ErrEmptyTextureReserved
	}
	tex, ok := a.textures[id]
	if !ok {
		return nil
	}
	tex.Destroy(a.device)
	delete(a.textures, id)
	return nil
}

// Len returns the number of registered textures, including the fallback.
func (a *Assets) Len() int {
	return len(a.textures)
}

// Destroy releases every registered texture. The registry is unusable
// afterwards.
func (a *Assets) Destroy() {
	for id, tex := range a.textures {
		tex.Destroy(a.device)
		delete(a.textures, id)
	}
}
