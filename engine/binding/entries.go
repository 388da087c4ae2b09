package binding

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// BufferLayoutEntry returns a layout entry for a buffer binding. Binding and
// Visibility are assigned by the layout builder.
//
// Parameters:
//   - ty: the buffer binding type (uniform, storage, read-only storage)
//   - hasDynamicOffset: whether the binding uses a dynamic offset
//   - minBindingSize: the minimum binding size in bytes (0 = unspecified)
//
// Returns:
//   - wgpu.BindGroupLayoutEntry: the populated entry
func BufferLayoutEntry(ty wgpu.BufferBindingType, hasDynamicOffset bool, minBindingSize uint64) wgpu.BindGroupLayoutEntry {
	var e wgpu.BindGroupLayoutEntry
	e.Buffer.Type = ty
	e.Buffer.HasDynamicOffset = hasDynamicOffset
	e.Buffer.MinBindingSize = minBindingSize
	return e
}

// SamplerLayoutEntry returns a layout entry for a sampler binding.
//
// Parameters:
//   - ty: the sampler binding type (filtering, non-filtering, comparison)
//
// Returns:
//   - wgpu.BindGroupLayoutEntry: the populated entry
func SamplerLayoutEntry(ty wgpu.SamplerBindingType) wgpu.BindGroupLayoutEntry {
	var e wgpu.BindGroupLayoutEntry
	e.Sampler.Type = ty
	return e
}

// TextureLayoutEntry returns a layout entry for a sampled texture binding.
//
// Parameters:
//   - sampleType: the texture sample type
//   - dimension: the texture view dimension
//   - multisampled: whether the texture is multisampled
//
// Returns:
//   - wgpu.BindGroupLayoutEntry: the populated entry
func TextureLayoutEntry(sampleType wgpu.TextureSampleType, dimension wgpu.TextureViewDimension, multisampled bool) wgpu.BindGroupLayoutEntry {
	var e wgpu.BindGroupLayoutEntry
	e.Texture.SampleType = sampleType
	e.Texture.ViewDimension = dimension
	e.Texture.Multisampled = multisampled
	return e
}

// StorageTextureLayoutEntry returns a layout entry for a storage texture
// binding.
//
// Parameters:
//   - access: the storage access mode
//   - format: the texel format
//   - dimension: the texture view dimension
//
// Returns:
//   - wgpu.BindGroupLayoutEntry: the populated entry
func StorageTextureLayoutEntry(access wgpu.StorageTextureAccess, format wgpu.TextureFormat, dimension wgpu.TextureViewDimension) wgpu.BindGroupLayoutEntry {
	var e wgpu.BindGroupLayoutEntry
	e.StorageTexture.Access = access
	e.StorageTexture.Format = format
	e.StorageTexture.ViewDimension = dimension
	return e
}
