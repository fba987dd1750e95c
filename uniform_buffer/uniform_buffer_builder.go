package uniform_buffer

import "github.com/cogentcore/webgpu/wgpu"

// UniformBufferBuilderOption is a functional option for configuring a
// uniformBufferImpl. Use the With* functions to create options.
type UniformBufferBuilderOption func(b *uniformBufferImpl)

// WithLabel sets the debug label used for the buffer in GPU captures and
// debug output.
//
// Parameters:
//   - label: the debug label text
//
// Returns:
//   - UniformBufferBuilderOption: option function to apply
func WithLabel(label string) UniformBufferBuilderOption {
	return func(b *uniformBufferImpl) {
		b.label = label
	}
}

// WithUsage ORs additional usage flags onto the default
// Uniform|CopyDst set, for example CopySrc for readback.
//
// Parameters:
//   - usage: additional wgpu buffer usage flags
//
// Returns:
//   - UniformBufferBuilderOption: option function to apply
func WithUsage(usage wgpu.BufferUsage) UniformBufferBuilderOption {
	return func(b *uniformBufferImpl) {
		b.usage |= usage
	}
}

// WithSizeBytes overrides the buffer size derived from the block layout and
// reallocates the staging area to match. The size should be a multiple of 4.
//
// Parameters:
//   - size: the buffer size in bytes
//
// Returns:
//   - UniformBufferBuilderOption: option function to apply
func WithSizeBytes(size uint64) UniformBufferBuilderOption {
	return func(b *uniformBufferImpl) {
		b.sizeBytes = size
		b.staging = make([]float32, size/4)
	}
}
