package binding

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// BindGroupBuilder assembles a bind group against one specific
// BindGroupLayoutWithDesc. Each Resource call consumes the next entry's
// binding index in the same order the layout was built, so the Nth call
// always binds to the Nth declared layout entry. Supplying more resources
// than the layout declares is a programming-contract violation and panics;
// supplying fewer is caught by Create.
type BindGroupBuilder struct {
	layout  *BindGroupLayoutWithDesc
	entries []wgpu.BindGroupEntry
}

// NewBindGroupBuilder creates a builder bound to the given layout.
//
// Parameters:
//   - layout: the layout (with ordered entries) the bind group must match
//
// Returns:
//   - *BindGroupBuilder: the new builder
func NewBindGroupBuilder(layout *BindGroupLayoutWithDesc) *BindGroupBuilder {
	return &BindGroupBuilder{
		layout:  layout,
		entries: make([]wgpu.BindGroupEntry, 0, len(layout.Entries)),
	}
}

// Resource appends a resource for the next layout entry in declaration order.
// The entry's Binding field is overwritten with the matching layout entry's
// binding index.
//
// Parameters:
//   - entry: the bind group entry carrying the resource fields
//     (Buffer/Offset/Size, Sampler, or TextureView)
//
// Returns:
//   - *BindGroupBuilder: the builder for chaining
func (b *BindGroupBuilder) Resource(entry wgpu.BindGroupEntry) *BindGroupBuilder {
	if len(b.entries) >= len(b.layout.Entries) {
		panic(fmt.Sprintf("binding: resource %d exceeds layout entry count %d", len(b.entries), len(b.layout.Entries)))
	}
	entry.Binding = b.layout.Entries[len(b.entries)].Binding
	b.entries = append(b.entries, entry)
	return b
}

// Buffer appends a whole-buffer resource for the next layout entry.
//
// Parameters:
//   - buf: the buffer to bind
//
// Returns:
//   - *BindGroupBuilder: the builder for chaining
func (b *BindGroupBuilder) Buffer(buf *wgpu.Buffer) *BindGroupBuilder {
	return b.Resource(wgpu.BindGroupEntry{
		Buffer: buf,
		Offset: 0,
		Size:   wgpu.WholeSize,
	})
}

// BufferRange appends a buffer resource covering an explicit byte range.
//
// Parameters:
//   - buf: the buffer to bind
//   - offset: the byte offset of the bound range
//   - size: the byte size of the bound range
//
// Returns:
//   - *BindGroupBuilder: the builder for chaining
func (b *BindGroupBuilder) BufferRange(buf *wgpu.Buffer, offset, size uint64) *BindGroupBuilder {
	return b.Resource(wgpu.BindGroupEntry{
		Buffer: buf,
		Offset: offset,
		Size:   size,
	})
}

// Sampler appends a sampler resource for the next layout entry.
//
// Parameters:
//   - s: the sampler to bind
//
// Returns:
//   - *BindGroupBuilder: the builder for chaining
func (b *BindGroupBuilder) Sampler(s *wgpu.Sampler) *BindGroupBuilder {
	return b.Resource(wgpu.BindGroupEntry{Sampler: s})
}

// Texture appends a texture view resource for the next layout entry.
//
// Parameters:
//   - view: the texture view to bind
//
// Returns:
//   - *BindGroupBuilder: the builder for chaining
func (b *BindGroupBuilder) Texture(view *wgpu.TextureView) *BindGroupBuilder {
	return b.Resource(wgpu.BindGroupEntry{TextureView: view})
}

// Create compiles the bind group. The supplied resource count must equal the
// layout's entry count; a shorter list is a construction-time contract
// violation reported as an error, not deferred to GPU validation.
//
// Parameters:
//   - device: the device to compile the bind group on
//   - label: debug label shown in graphics debuggers
//
// Returns:
//   - *wgpu.BindGroup: the compiled bind group
//   - error: an error if the resource count mismatches or compilation fails
func (b *BindGroupBuilder) Create(device *wgpu.Device, label string) (*wgpu.BindGroup, error) {
	if len(b.entries) != len(b.layout.Entries) {
		return nil, fmt.Errorf("binding: bind group %q has %d resources for %d layout entries", label, len(b.entries), len(b.layout.Entries))
	}

	group, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   "BindGroup: " + label,
		Layout:  b.layout.Layout,
		Entries: b.entries,
	})
	if err != nil {
		return nil, fmt.Errorf("binding: failed to create bind group %q: %w", label, err)
	}
	return group, nil
}
