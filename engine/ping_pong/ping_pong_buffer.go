package ping_pong

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/forge-go/engine/binding"
)

// PingPongBuffer owns two identically sized storage buffers and alternates
// which one is read and which one is written by successive compute
// dispatches. Both bind groups are compiled once at construction against a
// shared two-entry layout (binding 0 read-only source, binding 1 writable
// target); frame code only flips the state and picks one of the precompiled
// groups, so no GPU bind state is ever rebuilt per iteration.
type PingPongBuffer struct {
	layout        *binding.BindGroupLayoutWithDesc
	pingBuffer    *wgpu.Buffer
	pongBuffer    *wgpu.Buffer
	pingBindGroup *wgpu.BindGroup
	pongBindGroup *wgpu.BindGroup
	state         bool
}

// NewPingPongBufferFromDescriptor creates both buffers from the same
// descriptor, zero-initialized. State starts at false: the first dispatch
// reads pong and writes ping.
//
// Parameters:
//   - device: the device to allocate on
//   - descriptor: the descriptor both buffers are created from; its Usage
//     must include Storage
//
// Returns:
//   - *PingPongBuffer: the new double buffer
//   - error: an error if buffer, layout, or bind group creation fails
func NewPingPongBufferFromDescriptor(device *wgpu.Device, descriptor *wgpu.BufferDescriptor) (*PingPongBuffer, error) {
	pingBuffer, err := device.CreateBuffer(descriptor)
	if err != nil {
		return nil, err
	}
	pongBuffer, err := device.CreateBuffer(descriptor)
	if err != nil {
		pingBuffer.Release()
		return nil, err
	}
	return assemble(device, descriptor.Label, descriptor.Size, pingBuffer, pongBuffer)
}

// NewPingPongBufferFromData creates both buffers pre-filled with the same
// initial contents.
//
// Parameters:
//   - device: the device to allocate on
//   - descriptor: the init descriptor both buffers are created from; its
//     Usage must include Storage
//
// Returns:
//   - *PingPongBuffer: the new double buffer
//   - error: an error if buffer, layout, or bind group creation fails
func NewPingPongBufferFromData(device *wgpu.Device, descriptor *wgpu.BufferInitDescriptor) (*PingPongBuffer, error) {
	pingBuffer, err := device.CreateBufferInit(descriptor)
	if err != nil {
		return nil, err
	}
	pongBuffer, err := device.CreateBufferInit(descriptor)
	if err != nil {
		pingBuffer.Release()
		return nil, err
	}
	return assemble(device, descriptor.Label, uint64(len(descriptor.Contents)), pingBuffer, pongBuffer)
}

// assemble compiles the shared layout and both bind groups. The ping group
// binds (ping, pong) and the pong group binds (pong, ping); together with
// the layout's (read-only, writable) entry order this makes each group a
// complete "read this one, write the other one" description.
func assemble(device *wgpu.Device, label string, size uint64, pingBuffer, pongBuffer *wgpu.Buffer) (*PingPongBuffer, error) {
	releaseBuffers := func() {
		pingBuffer.Release()
		pongBuffer.Release()
	}

	layout, err := binding.NewBindGroupLayoutBuilder().
		AddComputeBinding(binding.BufferLayoutEntry(wgpu.BufferBindingTypeReadOnlyStorage, false, size)).
		AddComputeBinding(binding.BufferLayoutEntry(wgpu.BufferBindingTypeStorage, false, size)).
		Create(device, label+" ping_pong")
	if err != nil {
		releaseBuffers()
		return nil, err
	}

	pingBindGroup, err := binding.NewBindGroupBuilder(layout).
		Buffer(pingBuffer).
		Buffer(pongBuffer).
		Create(device, label+" ping")
	if err != nil {
		layout.Release()
		releaseBuffers()
		return nil, err
	}

	pongBindGroup, err := binding.NewBindGroupBuilder(layout).
		Buffer(pongBuffer).
		Buffer(pingBuffer).
		Create(device, label+" pong")
	if err != nil {
		pingBindGroup.Release()
		layout.Release()
		releaseBuffers()
		return nil, err
	}

	return &PingPongBuffer{
		layout:        layout,
		pingBuffer:    pingBuffer,
		pongBuffer:    pongBuffer,
		pingBindGroup: pingBindGroup,
		pongBindGroup: pongBindGroup,
		state:         false,
	}, nil
}

// SwapState flips which buffer is the source and which is the target. This
// is the only legal transition; callers flip exactly once per completed
// iteration so a pass never reads the buffer it writes.
func (p *PingPongBuffer) SwapState() {
	p.state = !p.state
}

// CurrentBindGroup returns the bind group for the current iteration: the
// current source at binding 0 (read-only) and the current target at
// binding 1.
//
// Returns:
//   - *wgpu.BindGroup: the bind group to set on the current dispatch
func (p *PingPongBuffer) CurrentBindGroup() *wgpu.BindGroup {
	if p.state {
		return p.pingBindGroup
	}
	return p.pongBindGroup
}

// NextBindGroup returns the bind group the iteration after SwapState will
// use, for callers that record two passes ahead of a flip.
//
// Returns:
//   - *wgpu.BindGroup: the bind group for the next iteration
func (p *PingPongBuffer) NextBindGroup() *wgpu.BindGroup {
	if p.state {
		return p.pongBindGroup
	}
	return p.pingBindGroup
}

// CurrentTargetBuffer returns the buffer the current iteration writes into.
// After the iteration completes and SwapState runs, this same buffer becomes
// the next iteration's source.
//
// Returns:
//   - *wgpu.Buffer: the buffer bound writable in CurrentBindGroup
func (p *PingPongBuffer) CurrentTargetBuffer() *wgpu.Buffer {
	if p.state {
		return p.pongBuffer
	}
	return p.pingBuffer
}

// CurrentSourceBuffer returns the buffer the current iteration reads from.
//
// Returns:
//   - *wgpu.Buffer: the buffer bound read-only in CurrentBindGroup
func (p *PingPongBuffer) CurrentSourceBuffer() *wgpu.Buffer {
	if p.state {
		return p.pingBuffer
	}
	return p.pongBuffer
}

// Layout returns the shared two-entry layout, for pipeline layout
// construction.
//
// Returns:
//   - *binding.BindGroupLayoutWithDesc: the layout both bind groups match
func (p *PingPongBuffer) Layout() *binding.BindGroupLayoutWithDesc {
	return p.layout
}

// Release releases both bind groups, the layout, and both buffers.
func (p *PingPongBuffer) Release() {
	if p.pingBindGroup != nil {
		p.pingBindGroup.Release()
		p.pingBindGroup = nil
	}
	if p.pongBindGroup != nil {
		p.pongBindGroup.Release()
		p.pongBindGroup = nil
	}
	if p.layout != nil {
		p.layout.Release()
	}
	if p.pingBuffer != nil {
		p.pingBuffer.Release()
		p.pingBuffer = nil
	}
	if p.pongBuffer != nil {
		p.pongBuffer.Release()
		p.pongBuffer = nil
	}
}
