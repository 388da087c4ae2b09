package ping_pong

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/forge-go/engine/binding"
)

// PingPongTexture owns two identically sized textures and alternates which
// one a pass renders into and which one is sampled as the previous frame's
// result. Unlike PingPongBuffer, the bind groups need a sampler the caller
// owns, so they are built on demand through CreateBindGroups rather than at
// construction.
type PingPongTexture struct {
	label       string
	texturePing *wgpu.Texture
	texturePong *wgpu.Texture
	viewPing    *wgpu.TextureView
	viewPong    *wgpu.TextureView
	layout      *binding.BindGroupLayoutWithDesc
	state       bool
}

// NewPingPongTexture creates both textures from the same descriptor along
// with their default views and the shared fragment-stage texture+sampler
// layout. State starts at false: the first pass renders into pong and
// samples ping.
//
// Parameters:
//   - device: the device to allocate on
//   - descriptor: the descriptor both textures are created from
//   - label: debug label shown in graphics debuggers
//
// Returns:
//   - *PingPongTexture: the new double texture
//   - error: an error if texture, view, or layout creation fails
func NewPingPongTexture(device *wgpu.Device, descriptor *wgpu.TextureDescriptor, label string) (*PingPongTexture, error) {
	texturePing, err := device.CreateTexture(descriptor)
	if err != nil {
		return nil, err
	}
	texturePong, err := device.CreateTexture(descriptor)
	if err != nil {
		texturePing.Release()
		return nil, err
	}
	viewPing, err := texturePing.CreateView(nil)
	if err != nil {
		texturePong.Release()
		texturePing.Release()
		return nil, err
	}
	viewPong, err := texturePong.CreateView(nil)
	if err != nil {
		viewPing.Release()
		texturePong.Release()
		texturePing.Release()
		return nil, err
	}

	layout, err := binding.NewBindGroupLayoutBuilder().
		AddFragmentBinding(binding.TextureLayoutEntry(wgpu.TextureSampleTypeFloat, wgpu.TextureViewDimension2D, false)).
		AddFragmentBinding(binding.SamplerLayoutEntry(wgpu.SamplerBindingTypeFiltering)).
		Create(device, label+" ping_pong")
	if err != nil {
		viewPong.Release()
		viewPing.Release()
		texturePong.Release()
		texturePing.Release()
		return nil, err
	}

	return &PingPongTexture{
		label:       label,
		texturePing: texturePing,
		texturePong: texturePong,
		viewPing:    viewPing,
		viewPong:    viewPong,
		layout:      layout,
		state:       false,
	}, nil
}

// CreateBindGroups builds the ping and pong bind groups against the shared
// layout with the given sampler. The ping group samples the ping view, the
// pong group the pong view; callers select between them with the state
// accessors.
//
// Parameters:
//   - device: the device to compile the bind groups on
//   - sampler: the sampler bound alongside each view
//
// Returns:
//   - *wgpu.BindGroup: the group sampling the ping view
//   - *wgpu.BindGroup: the group sampling the pong view
//   - error: an error if bind group creation fails
func (p *PingPongTexture) CreateBindGroups(device *wgpu.Device, sampler *wgpu.Sampler) (*wgpu.BindGroup, *wgpu.BindGroup, error) {
	pingGroup, err := binding.NewBindGroupBuilder(p.layout).
		Texture(p.viewPing).
		Sampler(sampler).
		Create(device, p.label+" ping")
	if err != nil {
		return nil, nil, err
	}
	pongGroup, err := binding.NewBindGroupBuilder(p.layout).
		Texture(p.viewPong).
		Sampler(sampler).
		Create(device, p.label+" pong")
	if err != nil {
		pingGroup.Release()
		return nil, nil, err
	}
	return pingGroup, pongGroup, nil
}

// SwapState flips which texture is rendered into and which is sampled.
func (p *PingPongTexture) SwapState() {
	p.state = !p.state
}

// CurrentTargetView returns the view the current pass renders into.
//
// Returns:
//   - *wgpu.TextureView: the render attachment view
func (p *PingPongTexture) CurrentTargetView() *wgpu.TextureView {
	if p.state {
		return p.viewPing
	}
	return p.viewPong
}

// RenderedView returns the view holding the previously completed pass's
// output, for sampling in the current pass.
//
// Returns:
//   - *wgpu.TextureView: the sampled view
func (p *PingPongTexture) RenderedView() *wgpu.TextureView {
	if p.state {
		return p.viewPong
	}
	return p.viewPing
}

// Layout returns the shared texture+sampler layout, for pipeline layout
// construction.
//
// Returns:
//   - *binding.BindGroupLayoutWithDesc: the layout both bind groups match
func (p *PingPongTexture) Layout() *binding.BindGroupLayoutWithDesc {
	return p.layout
}

// Release releases the layout, both views, and both textures.
func (p *PingPongTexture) Release() {
	if p.layout != nil {
		p.layout.Release()
	}
	if p.viewPing != nil {
		p.viewPing.Release()
		p.viewPing = nil
	}
	if p.viewPong != nil {
		p.viewPong.Release()
		p.viewPong = nil
	}
	if p.texturePing != nil {
		p.texturePing.Release()
		p.texturePing = nil
	}
	if p.texturePong != nil {
		p.texturePong.Release()
		p.texturePong = nil
	}
}
