package render_manager

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// DeviceHandle is one adapter/device/queue triple in the manager's pool.
// The handle is never mutated after creation; all GPU work flows through the
// queue's own submission path. Handles live until the manager releases them
// at teardown.
type DeviceHandle struct {
	adapter *wgpu.Adapter

	// Device records command encoders and allocates resources.
	Device *wgpu.Device

	// Queue submits command buffers and performs direct buffer writes.
	Queue *wgpu.Queue
}

// Adapter returns the physical adapter the device was created from, for
// surface capability queries.
//
// Returns:
//   - *wgpu.Adapter: the backing adapter
func (h *DeviceHandle) Adapter() *wgpu.Adapter {
	return h.adapter
}

// SupportsSurface reports whether this device's adapter can present to the
// given surface. An adapter that supports a surface always reports at least
// one texture format for it.
//
// Parameters:
//   - surface: the surface to probe
//
// Returns:
//   - bool: true if the adapter can present to the surface
func (h *DeviceHandle) SupportsSurface(surface *wgpu.Surface) bool {
	capabilities := surface.GetCapabilities(h.adapter)
	return len(capabilities.Formats) > 0
}

// Release releases the queue, device, and adapter.
func (h *DeviceHandle) Release() {
	if h.Queue != nil {
		h.Queue.Release()
		h.Queue = nil
	}
	if h.Device != nil {
		h.Device.Release()
		h.Device = nil
	}
	if h.adapter != nil {
		h.adapter.Release()
		h.adapter = nil
	}
}
