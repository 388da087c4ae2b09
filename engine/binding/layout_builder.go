package binding

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// BindGroupLayoutWithDesc pairs a compiled bind group layout with the ordered
// entry list that produced it. The entry list is the single source of truth
// for binding-index assignment when bind groups are later built against this
// layout; it is never re-derived from the compiled layout object.
type BindGroupLayoutWithDesc struct {
	// Layout is the compiled GPU bind group layout.
	Layout *wgpu.BindGroupLayout

	// Entries is the ordered list of entry descriptors used to compile Layout.
	Entries []wgpu.BindGroupLayoutEntry
}

// Release releases the compiled layout. The entry list is retained so
// existing BindGroupBuilders remain inspectable.
func (l *BindGroupLayoutWithDesc) Release() {
	if l.Layout != nil {
		l.Layout.Release()
		l.Layout = nil
	}
}

// BindGroupLayoutBuilder accumulates bind group layout entries in declaration
// order, auto-assigning binding indices. Each Add* call appends one entry; the
// order of calls determines the order resources must later be supplied to a
// BindGroupBuilder built against the resulting layout.
type BindGroupLayoutBuilder struct {
	entries          []wgpu.BindGroupLayoutEntry
	nextBindingIndex uint32
}

// NewBindGroupLayoutBuilder creates an empty layout builder. The first
// auto-assigned binding index is 0.
//
// Returns:
//   - *BindGroupLayoutBuilder: the new builder
func NewBindGroupLayoutBuilder() *BindGroupLayoutBuilder {
	return &BindGroupLayoutBuilder{}
}

// AddRawBinding appends an entry with an explicitly set binding index.
// The auto-assignment counter is advanced past the explicit index, so a
// subsequent AddBinding continues from entry.Binding + 1.
//
// Parameters:
//   - entry: the fully populated layout entry, including Binding
//
// Returns:
//   - *BindGroupLayoutBuilder: the builder for chaining
func (b *BindGroupLayoutBuilder) AddRawBinding(entry wgpu.BindGroupLayoutEntry) *BindGroupLayoutBuilder {
	b.nextBindingIndex = entry.Binding + 1
	b.entries = append(b.entries, entry)
	return b
}

// AddBinding appends an entry at the next unused binding index with the given
// shader stage visibility. The entry's Binding and Visibility fields are
// overwritten; the caller populates only the resource-type fields
// (Buffer/Sampler/Texture/StorageTexture).
//
// Parameters:
//   - visibility: the shader stages the binding is visible to
//   - entry: the layout entry carrying the resource-type fields
//
// Returns:
//   - *BindGroupLayoutBuilder: the builder for chaining
func (b *BindGroupLayoutBuilder) AddBinding(visibility wgpu.ShaderStage, entry wgpu.BindGroupLayoutEntry) *BindGroupLayoutBuilder {
	entry.Binding = b.nextBindingIndex
	entry.Visibility = visibility
	return b.AddRawBinding(entry)
}

// AddComputeBinding appends an entry visible to the compute stage.
//
// Parameters:
//   - entry: the layout entry carrying the resource-type fields
//
// Returns:
//   - *BindGroupLayoutBuilder: the builder for chaining
func (b *BindGroupLayoutBuilder) AddComputeBinding(entry wgpu.BindGroupLayoutEntry) *BindGroupLayoutBuilder {
	return b.AddBinding(wgpu.ShaderStageCompute, entry)
}

// AddFragmentBinding appends an entry visible to the fragment stage.
//
// Parameters:
//   - entry: the layout entry carrying the resource-type fields
//
// Returns:
//   - *BindGroupLayoutBuilder: the builder for chaining
func (b *BindGroupLayoutBuilder) AddFragmentBinding(entry wgpu.BindGroupLayoutEntry) *BindGroupLayoutBuilder {
	return b.AddBinding(wgpu.ShaderStageFragment, entry)
}

// AddVertexBinding appends an entry visible to the vertex stage.
//
// Parameters:
//   - entry: the layout entry carrying the resource-type fields
//
// Returns:
//   - *BindGroupLayoutBuilder: the builder for chaining
func (b *BindGroupLayoutBuilder) AddVertexBinding(entry wgpu.BindGroupLayoutEntry) *BindGroupLayoutBuilder {
	return b.AddBinding(wgpu.ShaderStageVertex, entry)
}

// AddRenderingBinding appends an entry visible to both vertex and fragment
// stages.
//
// Parameters:
//   - entry: the layout entry carrying the resource-type fields
//
// Returns:
//   - *BindGroupLayoutBuilder: the builder for chaining
func (b *BindGroupLayoutBuilder) AddRenderingBinding(entry wgpu.BindGroupLayoutEntry) *BindGroupLayoutBuilder {
	return b.AddBinding(wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, entry)
}

// Entries returns the accumulated entries in declaration order.
//
// Returns:
//   - []wgpu.BindGroupLayoutEntry: the entries added so far
func (b *BindGroupLayoutBuilder) Entries() []wgpu.BindGroupLayoutEntry {
	return b.entries
}

// Create compiles the accumulated entries into a bind group layout and
// returns it paired with the exact entry list used, preserving order.
//
// Parameters:
//   - device: the device to compile the layout on
//   - label: debug label shown in graphics debuggers
//
// Returns:
//   - *BindGroupLayoutWithDesc: the compiled layout with its ordered entries
//   - error: an error if layout compilation fails
func (b *BindGroupLayoutBuilder) Create(device *wgpu.Device, label string) (*BindGroupLayoutWithDesc, error) {
	layout, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "BindGroupLayout: " + label,
		Entries: b.entries,
	})
	if err != nil {
		return nil, fmt.Errorf("binding: failed to create bind group layout %q: %w", label, err)
	}

	entries := make([]wgpu.BindGroupLayoutEntry, len(b.entries))
	copy(entries, b.entries)

	return &BindGroupLayoutWithDesc{
		Layout:  layout,
		Entries: entries,
	}, nil
}
