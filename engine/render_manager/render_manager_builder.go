package render_manager

// RenderManagerBuilderOption is a functional option for configuring a
// RenderManager. Use the With* functions to create options that are applied
// directly to the manager instance.
type RenderManagerBuilderOption func(*renderManager)

// WithForceFallbackAdapter forces adapter requests to select the software
// fallback adapter, for CI machines and driver triage.
//
// Parameters:
//   - enabled: if true, only the fallback adapter is considered
//
// Returns:
//   - RenderManagerBuilderOption: option function to apply
func WithForceFallbackAdapter(enabled bool) RenderManagerBuilderOption {
	return func(m *renderManager) {
		m.forceFallbackAdapter = enabled
	}
}

// WithMaxFrameLatency sets the advisory in-flight frame bound recorded on
// surfaces this manager configures. Values of 0 are treated as the default.
//
// Parameters:
//   - frames: maximum frames the presentation engine may queue (default 2)
//
// Returns:
//   - RenderManagerBuilderOption: option function to apply
func WithMaxFrameLatency(frames uint32) RenderManagerBuilderOption {
	return func(m *renderManager) {
		if frames == 0 {
			frames = defaultMaxFrameLatency
		}
		m.maxFrameLatency = frames
	}
}
