package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rendering.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadRenderingConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadRenderingConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultRenderingConfig(), cfg)
	assert.Equal(t, wgpu.PresentModeFifo, cfg.WgpuPresentMode())
}

func TestLoadRenderingConfig(t *testing.T) {
	path := writeConfig(t, `
power_preference = "high-performance"
force_fallback_adapter = true
present_mode = "mailbox"
max_frame_latency = 3
profiling = true
`)

	cfg, err := LoadRenderingConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.ForceFallbackAdapter)
	assert.True(t, cfg.Profiling)
	assert.Equal(t, uint32(3), cfg.MaxFrameLatency)
	assert.Equal(t, wgpu.PowerPreferenceHighPerformance, cfg.WgpuPowerPreference())
	assert.Equal(t, wgpu.PresentModeMailbox, cfg.WgpuPresentMode())
}

func TestLoadRenderingConfigPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `profiling = true`)

	cfg, err := LoadRenderingConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Profiling)
	assert.Equal(t, "fifo", cfg.PresentMode)
	assert.False(t, cfg.ForceFallbackAdapter)
}

func TestLoadRenderingConfigParseError(t *testing.T) {
	path := writeConfig(t, `present_mode = [broken`)

	_, err := LoadRenderingConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestPresentModeMapping(t *testing.T) {
	tests := []struct {
		value string
		want  wgpu.PresentMode
	}{
		{value: "fifo", want: wgpu.PresentModeFifo},
		{value: "immediate", want: wgpu.PresentModeImmediate},
		{value: "Uncapped", want: wgpu.PresentModeImmediate},
		{value: "mailbox", want: wgpu.PresentModeMailbox},
		{value: "triple-buffered", want: wgpu.PresentModeMailbox},
		{value: "", want: wgpu.PresentModeFifo},
		{value: "garbage", want: wgpu.PresentModeFifo},
	}
	for _, tt := range tests {
		cfg := RenderingConfig{PresentMode: tt.value}
		assert.Equal(t, tt.want, cfg.WgpuPresentMode(), "mode %q", tt.value)
	}
}

func TestPowerPreferenceMapping(t *testing.T) {
	assert.Equal(t, wgpu.PowerPreferenceLowPower, RenderingConfig{PowerPreference: "low"}.WgpuPowerPreference())
	assert.Equal(t, wgpu.PowerPreferenceHighPerformance, RenderingConfig{PowerPreference: "HIGH"}.WgpuPowerPreference())
	assert.Equal(t, wgpu.PowerPreferenceUndefined, RenderingConfig{}.WgpuPowerPreference())
}
