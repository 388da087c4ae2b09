package buffers

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/forge-go/engine/binding"
)

// SingleBufferWrapper bundles one GPU buffer with a one-entry bind group
// layout and a matching bind group, for the common case of a shader resource
// that lives alone in its own group. The layout and group are compiled
// eagerly at construction so frame code only dispatches.
type SingleBufferWrapper struct {
	label     string
	buffer    *wgpu.Buffer
	layout    *binding.BindGroupLayoutWithDesc
	bindGroup *wgpu.BindGroup
}

// NewSingleBufferWrapper creates a zero-initialized buffer of the given byte
// size together with its single-entry layout and bind group.
//
// Parameters:
//   - device: the device to allocate on
//   - label: debug label shown in graphics debuggers
//   - size: the buffer byte size
//   - usage: the buffer usage flags
//   - bindingType: the buffer binding type declared in the layout
//   - visibility: the shader stages the binding is visible to
//
// Returns:
//   - *SingleBufferWrapper: the new wrapper
//   - error: an error if buffer, layout, or bind group creation fails
func NewSingleBufferWrapper(device *wgpu.Device, label string, size uint64, usage wgpu.BufferUsage, bindingType wgpu.BufferBindingType, visibility wgpu.ShaderStage) (*SingleBufferWrapper, error) {
	buffer, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            "Buffer: " + label,
		Size:             size,
		Usage:            usage,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, err
	}
	return wrapSingleBuffer(device, label, buffer, bindingType, visibility)
}

// NewSingleBufferWrapperFromData creates a buffer pre-filled with the given
// values together with its single-entry layout and bind group.
//
// Parameters:
//   - device: the device to allocate on
//   - label: debug label shown in graphics debuggers
//   - values: the initial buffer contents
//   - usage: the buffer usage flags
//   - bindingType: the buffer binding type declared in the layout
//   - visibility: the shader stages the binding is visible to
//
// Returns:
//   - *SingleBufferWrapper: the new wrapper
//   - error: an error if buffer, layout, or bind group creation fails
func NewSingleBufferWrapperFromData[T any](device *wgpu.Device, label string, values []T, usage wgpu.BufferUsage, bindingType wgpu.BufferBindingType, visibility wgpu.ShaderStage) (*SingleBufferWrapper, error) {
	buffer, err := device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Buffer: " + label,
		Contents: wgpu.ToBytes(values),
		Usage:    usage,
	})
	if err != nil {
		return nil, err
	}
	return wrapSingleBuffer(device, label, buffer, bindingType, visibility)
}

func wrapSingleBuffer(device *wgpu.Device, label string, buffer *wgpu.Buffer, bindingType wgpu.BufferBindingType, visibility wgpu.ShaderStage) (*SingleBufferWrapper, error) {
	layout, err := binding.NewBindGroupLayoutBuilder().
		AddBinding(visibility, binding.BufferLayoutEntry(bindingType, false, 0)).
		Create(device, label)
	if err != nil {
		buffer.Release()
		return nil, err
	}

	bindGroup, err := binding.NewBindGroupBuilder(layout).
		Buffer(buffer).
		Create(device, label)
	if err != nil {
		layout.Release()
		buffer.Release()
		return nil, err
	}

	return &SingleBufferWrapper{
		label:     label,
		buffer:    buffer,
		layout:    layout,
		bindGroup: bindGroup,
	}, nil
}

// Buffer returns the GPU buffer.
//
// Returns:
//   - *wgpu.Buffer: the wrapped buffer
func (w *SingleBufferWrapper) Buffer() *wgpu.Buffer {
	return w.buffer
}

// Layout returns the single-entry bind group layout, for pipeline layout
// construction.
//
// Returns:
//   - *binding.BindGroupLayoutWithDesc: the layout
func (w *SingleBufferWrapper) Layout() *binding.BindGroupLayoutWithDesc {
	return w.layout
}

// BindGroup returns the bind group exposing the buffer at binding 0.
//
// Returns:
//   - *wgpu.BindGroup: the bind group
func (w *SingleBufferWrapper) BindGroup() *wgpu.BindGroup {
	return w.bindGroup
}

// Release releases the bind group, layout, and buffer.
func (w *SingleBufferWrapper) Release() {
	if w.bindGroup != nil {
		w.bindGroup.Release()
		w.bindGroup = nil
	}
	if w.layout != nil {
		w.layout.Release()
	}
	if w.buffer != nil {
		w.buffer.Release()
		w.buffer = nil
	}
}
