package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
)

// Device sharing errors.
var (
	// ErrNilProvider is returned when a nil DeviceProvider is passed.
	ErrNilProvider = errors.New("render: nil DeviceProvider")

	// ErrNoHALAccess is returned when a provider does not expose raw HAL
	// handles.
	ErrNoHALAccess = errors.New("render: provider does not expose HAL types")
)

// DeviceHandle is the shared-device contract a windowing host hands to
// the renderer.
type DeviceHandle = gpucontext.DeviceProvider

// halProvider is implemented by gpucontext.DeviceProvider implementations
// that can surface the underlying wgpu/hal handles. Windowing hosts expose
// their device this way so the renderer can share it instead of opening a
// second one.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// DeviceFromProvider extracts the raw HAL device and queue from a shared
// device provider. The provider keeps ownership of both handles.
func DeviceFromProvider(provider DeviceHandle) (hal.Device, hal.Queue, error) {
	if provider == nil {
		return nil, nil, ErrNilProvider
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, nil, ErrNoHALAccess
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHALAccess)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHALAccess)
	}
	return device, queue, nil
}

// NewRendererFromProvider creates a Renderer on a shared device provider.
// This is the integration path for running inside a windowing host: the
// host owns the device, the renderer only borrows it.
func NewRendererFromProvider(provider DeviceHandle, cfg Config) (*Renderer, error) {
	device, queue, err := DeviceFromProvider(provider)
	if err != nil {
		return nil, err
	}
	return NewRenderer(device, queue, cfg)
}
