package render_manager

import (
	"errors"
	"fmt"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectSurfaceFormat(t *testing.T) {
	tests := []struct {
		name    string
		formats []wgpu.TextureFormat
		want    wgpu.TextureFormat
		wantErr bool
	}{
		{
			name:    "rgba first",
			formats: []wgpu.TextureFormat{wgpu.TextureFormatRGBA8Unorm, wgpu.TextureFormatBGRA8Unorm},
			want:    wgpu.TextureFormatRGBA8Unorm,
		},
		{
			name:    "bgra only",
			formats: []wgpu.TextureFormat{wgpu.TextureFormatBGRA8Unorm},
			want:    wgpu.TextureFormatBGRA8Unorm,
		},
		{
			name:    "skips srgb variants",
			formats: []wgpu.TextureFormat{wgpu.TextureFormatBGRA8UnormSrgb, wgpu.TextureFormatBGRA8Unorm},
			want:    wgpu.TextureFormatBGRA8Unorm,
		},
		{
			name:    "no supported format",
			formats: []wgpu.TextureFormat{wgpu.TextureFormatBGRA8UnormSrgb},
			wantErr: true,
		},
		{
			name:    "empty capabilities",
			formats: nil,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := selectSurfaceFormat(tt.formats)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedSurfaceFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, format)
		})
	}
}

func TestParsePowerPreference(t *testing.T) {
	tests := []struct {
		value string
		want  wgpu.PowerPreference
		ok    bool
	}{
		{value: "low", want: wgpu.PowerPreferenceLowPower, ok: true},
		{value: "low-power", want: wgpu.PowerPreferenceLowPower, ok: true},
		{value: "HIGH", want: wgpu.PowerPreferenceHighPerformance, ok: true},
		{value: " high-performance ", want: wgpu.PowerPreferenceHighPerformance, ok: true},
		{value: "high_performance", want: wgpu.PowerPreferenceHighPerformance, ok: true},
		{value: "", ok: false},
		{value: "turbo", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, ok := parsePowerPreference(tt.value)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCreateSurfaceRejectsZeroSizeBeforeGPUUse(t *testing.T) {
	// A nil instance proves the size check runs before any GPU call.
	m := &renderManager{maxFrameLatency: defaultMaxFrameLatency}

	_, err := m.CreateSurface(nil, 0, 600, wgpu.PresentModeFifo, wgpu.PowerPreferenceHighPerformance)
	require.ErrorIs(t, err, ErrInvalidSurfaceSize)

	_, err = m.CreateSurface(nil, 800, 0, wgpu.PresentModeFifo, wgpu.PowerPreferenceHighPerformance)
	require.ErrorIs(t, err, ErrInvalidSurfaceSize)
	assert.Contains(t, err.Error(), "800x0")
}

func TestSurfaceResizeRejectsZeroSize(t *testing.T) {
	s := &SurfaceHandle{}

	err := s.Resize(nil, 0, 0)
	require.ErrorIs(t, err, ErrInvalidSurfaceSize)

	// The stored config must be untouched after a rejected resize.
	assert.Equal(t, uint32(0), s.Config.Width)
	assert.Equal(t, uint32(0), s.Config.Height)
}

func TestClassifyAcquireError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want AcquireErrorKind
	}{
		{name: "timeout", err: errors.New("Surface timed out"), want: AcquireTransient},
		{name: "outdated", err: errors.New("Surface is outdated"), want: AcquireTransient},
		{name: "lost", err: errors.New("Surface was lost"), want: AcquireLost},
		{name: "out of memory", err: errors.New("Device out of memory"), want: AcquireFatal},
		{name: "wrapped out of memory", err: fmt.Errorf("frame: %w", errors.New("OutOfMemory")), want: AcquireFatal},
		{name: "unknown", err: errors.New("something else"), want: AcquireTransient},
		{name: "nil", err: nil, want: AcquireTransient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyAcquireError(tt.err))
		})
	}
}

func TestAcquireErrorKindString(t *testing.T) {
	assert.Equal(t, "transient", AcquireTransient.String())
	assert.Equal(t, "lost", AcquireLost.String())
	assert.Equal(t, "fatal", AcquireFatal.String())
}

func TestDeviceIndexOutOfRange(t *testing.T) {
	m := &renderManager{}
	assert.Nil(t, m.Device(0))
	assert.Nil(t, m.Device(-1))

	m.devices = []*DeviceHandle{{}}
	assert.NotNil(t, m.Device(0))
	assert.Nil(t, m.Device(1))
	assert.Same(t, m.devices[0], m.DeviceFromSurface(&SurfaceHandle{DeviceIndex: 0}))
}

func TestHeadlessAcquireReusesPool(t *testing.T) {
	t.Skip("Need software GPU on CI")

	m := NewRenderManager(WithForceFallbackAdapter(true))
	defer m.Release()

	first, err := m.AcquireDevice(nil, wgpu.PowerPreferenceLowPower)
	require.NoError(t, err)
	second, err := m.AcquireDevice(nil, wgpu.PowerPreferenceHighPerformance)
	require.NoError(t, err)

	// A headless request with a non-empty pool always reuses device 0.
	assert.Equal(t, 0, first)
	assert.Equal(t, first, second)
}
