package render_manager

import (
	"fmt"
	"os"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/google/uuid"

	"github.com/Carmen-Shannon/forge-go/engine/logger"
)

// powerPreferenceEnvVar overrides the power preference passed to
// AcquireDevice, letting a deploy target pin the integrated or discrete GPU
// without a code change.
const powerPreferenceEnvVar = "FORGE_POWER_PREFERENCE"

// defaultMaxFrameLatency is the number of frames the presentation engine may
// queue ahead of the GPU.
const defaultMaxFrameLatency = 2

type renderManager struct {
	instance             *wgpu.Instance
	devices              []*DeviceHandle
	forceFallbackAdapter bool
	maxFrameLatency      uint32
}

// RenderManager owns the GPU instance and a growable pool of device handles,
// and binds window surfaces to a compatible device from the pool. Devices
// are created lazily: the pool starts empty and grows only when no pooled
// device can serve a request. Handles are identified by their index into the
// pool, which is stable for the manager's lifetime.
type RenderManager interface {
	// AcquireDevice returns the index of a pooled device compatible with the
	// given surface, creating a new device when none matches. A nil surface
	// requests a headless device; any pooled device serves that, so a
	// non-empty pool always returns index 0.
	//
	// Parameters:
	//   - compatibleSurface: the surface the device must be able to present
	//     to, or nil for headless use
	//   - power: the power preference for adapter selection when a new
	//     device must be created; overridden by FORGE_POWER_PREFERENCE
	//
	// Returns:
	//   - int: the pool index of the acquired device
	//   - error: ErrAdapterRequest or ErrDeviceRequest on creation failure
	AcquireDevice(compatibleSurface *wgpu.Surface, power wgpu.PowerPreference) (int, error)

	// CreateSurface creates a surface for the given target, resolves a
	// compatible device, selects a supported texture format, and configures
	// the surface. Zero dimensions are rejected before any GPU call.
	//
	// Parameters:
	//   - desc: the platform surface descriptor from the window layer
	//   - width: the surface width in physical pixels
	//   - height: the surface height in physical pixels
	//   - mode: the present mode to configure
	//   - power: the power preference for device resolution
	//
	// Returns:
	//   - *SurfaceHandle: the configured surface bound to a pooled device
	//   - error: an error describing which stage of creation failed
	CreateSurface(desc *wgpu.SurfaceDescriptor, width, height uint32, mode wgpu.PresentMode, power wgpu.PowerPreference) (*SurfaceHandle, error)

	// Device returns the pooled device handle at the given index, or nil
	// when the index is out of range.
	Device(index int) *DeviceHandle

	// DeviceFromSurface returns the device handle serving the given surface.
	DeviceFromSurface(h *SurfaceHandle) *DeviceHandle

	// Instance returns the underlying GPU instance, for callers that create
	// additional surfaces through the window layer.
	Instance() *wgpu.Instance

	// Release releases every pooled device and the instance. No handle
	// obtained from this manager may be used afterwards.
	Release()
}

var _ RenderManager = &renderManager{}

// NewRenderManager creates a manager with an empty device pool.
//
// Parameters:
//   - options: optional With* configuration functions
//
// Returns:
//   - RenderManager: the new manager
func NewRenderManager(options ...RenderManagerBuilderOption) RenderManager {
	m := &renderManager{
		instance:        wgpu.CreateInstance(nil),
		maxFrameLatency: defaultMaxFrameLatency,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *renderManager) AcquireDevice(compatibleSurface *wgpu.Surface, power wgpu.PowerPreference) (int, error) {
	if compatibleSurface != nil {
		for i, handle := range m.devices {
			if handle.SupportsSurface(compatibleSurface) {
				return i, nil
			}
		}
	} else if len(m.devices) > 0 {
		return 0, nil
	}
	return m.newDevice(compatibleSurface, power)
}

// newDevice requests a fresh adapter/device/queue triple and appends it to
// the pool.
func (m *renderManager) newDevice(compatibleSurface *wgpu.Surface, power wgpu.PowerPreference) (int, error) {
	if envPower, ok := powerPreferenceFromEnv(); ok {
		power = envPower
	}

	adapter, err := m.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface:    compatibleSurface,
		PowerPreference:      power,
		ForceFallbackAdapter: m.forceFallbackAdapter,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrAdapterRequest, err)
	}

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Render Device " + uuid.NewString(),
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDeviceRequest, err)
	}

	info := adapter.GetInfo()
	logger.Info("acquired GPU device %d: %s (%s)", len(m.devices), info.Name, info.BackendType)

	m.devices = append(m.devices, &DeviceHandle{
		adapter: adapter,
		Device:  device,
		Queue:   device.GetQueue(),
	})
	return len(m.devices) - 1, nil
}

func (m *renderManager) CreateSurface(desc *wgpu.SurfaceDescriptor, width, height uint32, mode wgpu.PresentMode, power wgpu.PowerPreference) (*SurfaceHandle, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSurfaceSize, width, height)
	}

	surface := m.instance.CreateSurface(desc)
	if surface == nil {
		return nil, ErrSurfaceCreation
	}

	deviceIndex, err := m.AcquireDevice(surface, power)
	if err != nil {
		surface.Release()
		return nil, err
	}
	handle := m.devices[deviceIndex]

	capabilities := surface.GetCapabilities(handle.adapter)
	format, err := selectSurfaceFormat(capabilities.Formats)
	if err != nil {
		surface.Release()
		return nil, err
	}

	surfaceHandle := &SurfaceHandle{
		surface: surface,
		Config: SurfaceConfig{
			Format:          format,
			Width:           width,
			Height:          height,
			PresentMode:     mode,
			AlphaMode:       capabilities.AlphaModes[0],
			MaxFrameLatency: m.maxFrameLatency,
		},
		DeviceIndex: deviceIndex,
	}
	surfaceHandle.Configure(handle)

	logger.Debug("configured surface %dx%d format=%v present=%v device=%d", width, height, format, mode, deviceIndex)
	return surfaceHandle, nil
}

func (m *renderManager) Device(index int) *DeviceHandle {
	if index < 0 || index >= len(m.devices) {
		return nil
	}
	return m.devices[index]
}

func (m *renderManager) DeviceFromSurface(h *SurfaceHandle) *DeviceHandle {
	return m.Device(h.DeviceIndex)
}

func (m *renderManager) Instance() *wgpu.Instance {
	return m.instance
}

func (m *renderManager) Release() {
	for _, handle := range m.devices {
		handle.Release()
	}
	m.devices = nil
	if m.instance != nil {
		m.instance.Release()
		m.instance = nil
	}
}

// selectSurfaceFormat picks the first capability format the rest of the
// engine can render to. Only the two 8-bit unorm formats are accepted;
// everything else (sRGB variants, 10-bit formats) would silently change the
// shaders' color math.
func selectSurfaceFormat(formats []wgpu.TextureFormat) (wgpu.TextureFormat, error) {
	for _, format := range formats {
		if format == wgpu.TextureFormatRGBA8Unorm || format == wgpu.TextureFormatBGRA8Unorm {
			return format, nil
		}
	}
	return 0, ErrUnsupportedSurfaceFormat
}

// powerPreferenceFromEnv reads the process-level power preference override.
func powerPreferenceFromEnv() (wgpu.PowerPreference, bool) {
	return parsePowerPreference(os.Getenv(powerPreferenceEnvVar))
}

// parsePowerPreference maps the override spellings to the binding's values.
// Empty and unknown values mean no override.
func parsePowerPreference(value string) (wgpu.PowerPreference, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "low", "low-power", "low_power":
		return wgpu.PowerPreferenceLowPower, true
	case "high", "high-performance", "high_performance":
		return wgpu.PowerPreferenceHighPerformance, true
	default:
		return wgpu.PowerPreferenceUndefined, false
	}
}
