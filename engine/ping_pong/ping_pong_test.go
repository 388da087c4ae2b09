package ping_pong

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func newTestPingPongBuffer() *PingPongBuffer {
	return &PingPongBuffer{
		pingBuffer:    &wgpu.Buffer{},
		pongBuffer:    &wgpu.Buffer{},
		pingBindGroup: &wgpu.BindGroup{},
		pongBindGroup: &wgpu.BindGroup{},
	}
}

func TestBufferInitialSelection(t *testing.T) {
	p := newTestPingPongBuffer()

	assert.Same(t, p.pongBindGroup, p.CurrentBindGroup())
	assert.Same(t, p.pingBindGroup, p.NextBindGroup())
	assert.Same(t, p.pingBuffer, p.CurrentTargetBuffer())
	assert.Same(t, p.pongBuffer, p.CurrentSourceBuffer())
}

func TestBufferSwapAlternatesSourceAndTarget(t *testing.T) {
	p := newTestPingPongBuffer()

	target := p.CurrentTargetBuffer()
	p.SwapState()

	// The buffer just written becomes the next iteration's source.
	assert.Same(t, target, p.CurrentSourceBuffer())
	assert.NotSame(t, target, p.CurrentTargetBuffer())
}

func TestBufferSwapIsAnInvolution(t *testing.T) {
	p := newTestPingPongBuffer()

	group := p.CurrentBindGroup()
	target := p.CurrentTargetBuffer()

	p.SwapState()
	p.SwapState()

	assert.Same(t, group, p.CurrentBindGroup())
	assert.Same(t, target, p.CurrentTargetBuffer())
}

func TestBufferSourceNeverEqualsTarget(t *testing.T) {
	p := newTestPingPongBuffer()

	for i := 0; i < 8; i++ {
		assert.NotSame(t, p.CurrentSourceBuffer(), p.CurrentTargetBuffer())
		assert.NotSame(t, p.CurrentBindGroup(), p.NextBindGroup())
		p.SwapState()
	}
}

func newTestPingPongTexture() *PingPongTexture {
	return &PingPongTexture{
		viewPing: &wgpu.TextureView{},
		viewPong: &wgpu.TextureView{},
	}
}

func TestTextureInitialSelection(t *testing.T) {
	p := newTestPingPongTexture()

	assert.Same(t, p.viewPong, p.CurrentTargetView())
	assert.Same(t, p.viewPing, p.RenderedView())
}

func TestTextureSwapAlternatesViews(t *testing.T) {
	p := newTestPingPongTexture()

	for i := 0; i < 8; i++ {
		target := p.CurrentTargetView()
		assert.NotSame(t, target, p.RenderedView())
		p.SwapState()
		assert.Same(t, target, p.RenderedView())
	}
}
