package render_manager

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// SurfaceConfig is the engine-side record of how a surface is configured.
// It is the source of truth for reconfiguration: Resize and SetPresentMode
// mutate it and re-apply it wholesale rather than patching live GPU state.
// MaxFrameLatency is advisory; the underlying configuration call does not
// carry it, so frame loops read it here to bound their in-flight work.
type SurfaceConfig struct {
	Format          wgpu.TextureFormat
	Width           uint32
	Height          uint32
	PresentMode     wgpu.PresentMode
	AlphaMode       wgpu.CompositeAlphaMode
	MaxFrameLatency uint32
}

// SurfaceHandle owns one configured window surface and its configuration.
// The configuration is mutated only through Resize and SetPresentMode, both
// of which reconfigure eagerly so the surface and the stored config never
// disagree.
type SurfaceHandle struct {
	surface *wgpu.Surface

	// Config is the currently applied surface configuration.
	Config SurfaceConfig

	// DeviceIndex is the pool index of the device serving this surface.
	DeviceIndex int
}

// Resize updates the configured dimensions and reconfigures the surface.
// Zero dimensions are rejected without touching the surface; a minimized
// window reports 0x0 and must not tear down the swapchain.
//
// Parameters:
//   - device: the pooled device serving this surface
//   - width: the new width in physical pixels
//   - height: the new height in physical pixels
//
// Returns:
//   - error: ErrInvalidSurfaceSize when either dimension is zero
func (s *SurfaceHandle) Resize(device *DeviceHandle, width, height uint32) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidSurfaceSize, width, height)
	}
	s.Config.Width = width
	s.Config.Height = height
	s.Configure(device)
	return nil
}

// SetPresentMode switches the present mode and reconfigures eagerly, so the
// change takes effect on the next acquired frame.
//
// Parameters:
//   - device: the pooled device serving this surface
//   - mode: the new present mode
func (s *SurfaceHandle) SetPresentMode(device *DeviceHandle, mode wgpu.PresentMode) {
	s.Config.PresentMode = mode
	s.Configure(device)
}

// Configure applies the stored configuration to the surface. Also the
// recovery path after a lost surface.
//
// Parameters:
//   - device: the pooled device serving this surface
func (s *SurfaceHandle) Configure(device *DeviceHandle) {
	s.surface.Configure(device.adapter, device.Device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      s.Config.Format,
		Width:       s.Config.Width,
		Height:      s.Config.Height,
		PresentMode: s.Config.PresentMode,
		AlphaMode:   s.Config.AlphaMode,
	})
}

// Format returns the configured texture format.
//
// Returns:
//   - wgpu.TextureFormat: the swapchain format
func (s *SurfaceHandle) Format() wgpu.TextureFormat {
	return s.Config.Format
}

// GetCurrentTexture acquires the next swapchain texture. Errors should be
// classified with ClassifyAcquireError to decide between retrying,
// reconfiguring, and terminating.
//
// Returns:
//   - *wgpu.Texture: the acquired texture
//   - error: the acquisition error, if any
func (s *SurfaceHandle) GetCurrentTexture() (*wgpu.Texture, error) {
	return s.surface.GetCurrentTexture()
}

// Present schedules the most recently acquired texture for display.
func (s *SurfaceHandle) Present() {
	s.surface.Present()
}

// Surface returns the underlying surface.
//
// Returns:
//   - *wgpu.Surface: the wrapped surface
func (s *SurfaceHandle) Surface() *wgpu.Surface {
	return s.surface
}

// Release releases the surface.
func (s *SurfaceHandle) Release() {
	if s.surface != nil {
		s.surface.Release()
		s.surface = nil
	}
}
