// package uniform_buffer owns the CPU staging area and GPU buffer for a
// single uniform block. Sync procedures pack values into the staging slice
// and hand them over through Upload; a render loop drains the pending write
// with StagedWrite and submits the batch through FlushWrites.
package uniform_buffer

import (
	"sync"

	"github.com/Carmen-Shannon/ubo-go/common"
	"github.com/Carmen-Shannon/ubo-go/uniform"
	"github.com/cogentcore/webgpu/wgpu"
)

// uniformBufferImpl is the implementation of the UniformBuffer interface.
type uniformBufferImpl struct {
	// mu guards the staging area, the pending flag, and the GPU handle.
	mu *sync.Mutex

	// label names the buffer in GPU captures and debug output.
	label string

	// sizeBytes is the byte size of the buffer, including block padding.
	sizeBytes uint64

	// staging is the CPU-side staging area, sizeBytes/4 elements long.
	staging []float32

	// usage is the GPU buffer usage bitmask applied when Init creates the buffer.
	usage wgpu.BufferUsage

	// pending reports whether staging holds data not yet drained by StagedWrite.
	pending bool

	// buffer is the GPU buffer handle, nil until Init succeeds.
	buffer *wgpu.Buffer
}

// UniformBuffer pairs a CPU staging area with a GPU uniform buffer.
// The staging side works without any GPU state, so layouts can be planned,
// packed, and tested before a device exists.
type UniformBuffer interface {
	// Label retrieves the debug label for this buffer.
	//
	// Returns:
	//   - string: the buffer's debug label
	Label() string

	// SizeBytes retrieves the byte size of the buffer, including block padding.
	//
	// Returns:
	//   - uint64: the buffer size in bytes
	SizeBytes() uint64

	// ElementCount retrieves the number of float32 elements in the staging area.
	//
	// Returns:
	//   - int: the staging element count (SizeBytes / 4)
	ElementCount() int

	// Staging retrieves the CPU staging slice. Sync procedures pack block
	// data directly into this slice before calling Upload.
	//
	// Returns:
	//   - []float32: the staging slice, ElementCount elements long
	Staging() []float32

	// Upload stores the packed block data and marks the buffer pending.
	// When data is the staging slice itself the copy is skipped. This is
	// the handoff point a sync procedure calls exactly once per invocation.
	//
	// Parameters:
	//   - data: the packed block data to stage for the next flush
	Upload(data []float32)

	// StagedWrite drains the pending write for this buffer, if any.
	// The returned write carries the GPU target, which is nil until Init
	// has run, and a byte view over the staging area.
	//
	// Returns:
	//   - BufferWrite: the pending write, or a zero write if none is pending
	//   - bool: true if a write was pending, false otherwise
	StagedWrite() (BufferWrite, bool)

	// Init creates the GPU buffer on the given device. Calling Init again
	// after the buffer exists is a no-op.
	//
	// Parameters:
	//   - device: the GPU device to create the buffer on
	//
	// Returns:
	//   - error: an error if buffer creation fails
	Init(device *wgpu.Device) error

	// Buffer retrieves the GPU buffer handle.
	//
	// Returns:
	//   - *wgpu.Buffer: the GPU buffer, or nil if Init has not run
	Buffer() *wgpu.Buffer

	// BindGroupEntry builds the bind group entry binding this buffer at the
	// given binding index, covering the whole buffer.
	//
	// Parameters:
	//   - binding: the binding index within the bind group
	//
	// Returns:
	//   - wgpu.BindGroupEntry: the entry referencing this buffer
	BindGroupEntry(binding uint32) wgpu.BindGroupEntry

	// Release frees the GPU buffer. The staging area stays usable, and a
	// later Init recreates the GPU side.
	Release()
}

var (
	_ UniformBuffer    = &uniformBufferImpl{}
	_ uniform.Uploader = UniformBuffer(nil)
)

// NewUniformBuffer creates a new UniformBuffer sized for the given block
// layout with all specified options applied. The GPU buffer itself is not
// created until Init is called with a device.
//
// Parameters:
//   - layout: the planned block layout this buffer will hold
//   - options: functional options to configure the buffer
//
// Returns:
//   - UniformBuffer: a new UniformBuffer with its staging area allocated
func NewUniformBuffer(layout uniform.BlockLayout, options ...UniformBufferBuilderOption) UniformBuffer {
	b := &uniformBufferImpl{
		mu:        &sync.Mutex{},
		label:     "Uniform",
		sizeBytes: uint64(layout.Size),
		staging:   make([]float32, layout.Size/4),
		usage:     wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	}
	for _, opt := range options {
		opt(b)
	}
	return b
}

func (b *uniformBufferImpl) Label() string {
	return b.label
}

func (b *uniformBufferImpl) SizeBytes() uint64 {
	return b.sizeBytes
}

func (b *uniformBufferImpl) ElementCount() int {
	return len(b.staging)
}

func (b *uniformBufferImpl) Staging() []float32 {
	return b.staging
}

func (b *uniformBufferImpl) Upload(data []float32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Sync procedures pack directly into the staging slice, in which case
	// there is nothing to copy.
	if len(data) != 0 && len(b.staging) != 0 && &data[0] != &b.staging[0] {
		copy(b.staging, data)
	}
	b.pending = true
}

func (b *uniformBufferImpl) StagedWrite() (BufferWrite, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.pending {
		return BufferWrite{}, false
	}
	b.pending = false
	return BufferWrite{
		Target: b.buffer,
		Offset: 0,
		Data:   common.SliceToBytes(b.staging),
	}, true
}

func (b *uniformBufferImpl) Init(device *wgpu.Device) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.buffer != nil {
		return nil
	}
	buf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: b.label + " Buffer",
		Size:  b.sizeBytes,
		Usage: b.usage,
	})
	if err != nil {
		return err
	}
	b.buffer = buf
	return nil
}

func (b *uniformBufferImpl) Buffer() *wgpu.Buffer {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buffer
}

func (b *uniformBufferImpl) BindGroupEntry(binding uint32) wgpu.BindGroupEntry {
	b.mu.Lock()
	defer b.mu.Unlock()

	return wgpu.BindGroupEntry{
		Binding: binding,
		Buffer:  b.buffer,
		Offset:  0,
		Size:    wgpu.WholeSize,
	}
}

func (b *uniformBufferImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.buffer != nil {
		b.buffer.Release()
		b.buffer = nil
	}
}
