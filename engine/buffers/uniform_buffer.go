package buffers

import (
	"bytes"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// UniformBuffer owns one small fixed-size GPU uniform buffer and a CPU-side
// shadow copy of the last-written bytes. Writes are skipped whenever the new
// content is byte-identical to the shadow, so the common per-frame
// "unchanged" path costs one comparison and no GPU transfer. No partial-range
// diffing is performed; uniform contents are small enough that a full-buffer
// write on change is the simplest correct policy.
type UniformBuffer[T any] struct {
	label           string
	buffer          *wgpu.Buffer
	previousContent []byte
}

// uniformSizeOf returns the byte size of one T.
func uniformSizeOf[T any]() uint64 {
	var zero [1]T
	return uint64(len(wgpu.ToBytes(zero[:])))
}

// NewUniformBuffer creates a zero-initialized uniform buffer sized for one T.
// The shadow starts empty, so the first UpdateContent always writes.
//
// Parameters:
//   - device: the device to allocate the buffer on
//   - label: debug label shown in graphics debuggers
//
// Returns:
//   - *UniformBuffer[T]: the new wrapper
//   - error: an error if buffer allocation fails
func NewUniformBuffer[T any](device *wgpu.Device, label string) (*UniformBuffer[T], error) {
	buffer, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            "UniformBuffer: " + label,
		Size:             uniformSizeOf[T](),
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, fmt.Errorf("buffers: failed to create uniform buffer %q: %w", label, err)
	}
	return &UniformBuffer[T]{
		label:  label,
		buffer: buffer,
	}, nil
}

// NewUniformBufferWithData creates a uniform buffer pre-filled with the given
// content via mapped-at-creation memory, avoiding a separate queue write. The
// shadow is seeded with the initial bytes.
//
// Parameters:
//   - device: the device to allocate the buffer on
//   - label: debug label shown in graphics debuggers
//   - content: the initial buffer contents
//
// Returns:
//   - *UniformBuffer[T]: the new wrapper
//   - error: an error if buffer allocation fails
func NewUniformBufferWithData[T any](device *wgpu.Device, label string, content T) (*UniformBuffer[T], error) {
	size := uniformSizeOf[T]()
	buffer, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            "UniformBuffer: " + label,
		Size:             size,
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		MappedAtCreation: true,
	})
	if err != nil {
		return nil, fmt.Errorf("buffers: failed to create uniform buffer %q: %w", label, err)
	}

	contentBytes := wgpu.ToBytes([]T{content})
	mapped := buffer.GetMappedRange(0, uint(size))
	copy(mapped, contentBytes)
	buffer.Unmap()

	return &UniformBuffer[T]{
		label:           label,
		buffer:          buffer,
		previousContent: bytes.Clone(contentBytes),
	}, nil
}

// UpdateContent writes the content to the GPU buffer unless it is
// byte-identical to the last-written content, in which case the call is a
// no-op.
//
// Parameters:
//   - queue: the queue to issue the write on
//   - content: the new buffer contents
//
// Returns:
//   - bool: true if a GPU write was issued, false if skipped
func (u *UniformBuffer[T]) UpdateContent(queue *wgpu.Queue, content T) bool {
	newContent := wgpu.ToBytes([]T{content})
	if bytes.Equal(u.previousContent, newContent) {
		return false
	}
	queue.WriteBuffer(u.buffer, 0, newContent)
	u.previousContent = bytes.Clone(newContent)
	return true
}

// Buffer returns the GPU uniform buffer.
//
// Returns:
//   - *wgpu.Buffer: the uniform buffer
func (u *UniformBuffer[T]) Buffer() *wgpu.Buffer {
	return u.buffer
}

// BindingResource returns a bind group entry referencing the whole buffer,
// suitable for BindGroupBuilder.Resource.
//
// Returns:
//   - wgpu.BindGroupEntry: the entry (Binding is assigned by the builder)
func (u *UniformBuffer[T]) BindingResource() wgpu.BindGroupEntry {
	return wgpu.BindGroupEntry{
		Buffer: u.buffer,
		Offset: 0,
		Size:   wgpu.WholeSize,
	}
}

// Release releases the GPU buffer.
func (u *UniformBuffer[T]) Release() {
	if u.buffer != nil {
		u.buffer.Release()
		u.buffer = nil
	}
}
