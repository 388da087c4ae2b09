package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pelletier/go-toml/v2"

	"github.com/Carmen-Shannon/forge-go/common"
)

// RenderingConfig selects how the render manager acquires devices and
// configures surfaces. Zero value fields fall back to the defaults from
// DefaultRenderingConfig at load time.
type RenderingConfig struct {
	// PowerPreference selects the adapter class: "low-power",
	// "high-performance", or "" for no preference. The
	// FORGE_POWER_PREFERENCE environment variable takes precedence over
	// this value.
	PowerPreference string `toml:"power_preference"`

	// ForceFallbackAdapter restricts adapter selection to the software
	// rasterizer.
	ForceFallbackAdapter bool `toml:"force_fallback_adapter"`

	// PresentMode selects frame delivery: "fifo" (vsync), "immediate"
	// (uncapped), or "mailbox" (triple buffered).
	PresentMode string `toml:"present_mode"`

	// MaxFrameLatency bounds how many frames the presentation engine may
	// queue ahead of the GPU. 0 means the engine default.
	MaxFrameLatency uint32 `toml:"max_frame_latency"`

	// Profiling enables per-interval frame statistics logging.
	Profiling bool `toml:"profiling"`
}

// DefaultRenderingConfig returns the configuration used when no file is
// present: vsync presentation, no adapter preference, profiling off.
//
// Returns:
//   - RenderingConfig: the default configuration
func DefaultRenderingConfig() RenderingConfig {
	return RenderingConfig{
		PresentMode: "fifo",
	}
}

// LoadRenderingConfig reads a TOML rendering configuration from the given
// path. A missing file is not an error; the defaults are returned. Fields
// omitted from the file keep their default values.
//
// Parameters:
//   - path: the TOML file path
//
// Returns:
//   - RenderingConfig: the merged configuration
//   - error: an error if the file exists but cannot be read or parsed
func LoadRenderingConfig(path string) (RenderingConfig, error) {
	cfg := DefaultRenderingConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: failed to read %q: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: failed to parse %q: %w", path, err)
	}
	cfg.PresentMode = common.Coalesce(cfg.PresentMode, "fifo")
	return cfg, nil
}

// WgpuPowerPreference maps the configured adapter class to the binding's
// value. Unknown spellings mean no preference.
//
// Returns:
//   - wgpu.PowerPreference: the mapped preference
func (c RenderingConfig) WgpuPowerPreference() wgpu.PowerPreference {
	switch strings.ToLower(strings.TrimSpace(c.PowerPreference)) {
	case "low", "low-power", "low_power":
		return wgpu.PowerPreferenceLowPower
	case "high", "high-performance", "high_performance":
		return wgpu.PowerPreferenceHighPerformance
	default:
		return wgpu.PowerPreferenceUndefined
	}
}

// WgpuPresentMode maps the configured delivery mode to the binding's value.
// Unknown spellings mean vsync; tearing is opt-in, never accidental.
//
// Returns:
//   - wgpu.PresentMode: the mapped present mode
func (c RenderingConfig) WgpuPresentMode() wgpu.PresentMode {
	switch strings.ToLower(strings.TrimSpace(c.PresentMode)) {
	case "immediate", "uncapped":
		return wgpu.PresentModeImmediate
	case "mailbox", "triple-buffered", "triple_buffered":
		return wgpu.PresentModeMailbox
	default:
		return wgpu.PresentModeFifo
	}
}
