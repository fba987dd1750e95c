package uniform_buffer

import "github.com/cogentcore/webgpu/wgpu"

// BufferWrite describes a single GPU buffer write targeting a uniform
// buffer at a given byte offset.
type BufferWrite struct {
	Target *wgpu.Buffer
	Offset uint64
	Data   []byte
}

// FlushWrites submits every staged write to the GPU queue in order.
// Writes whose target buffer has not been created yet are skipped, so a
// sync pipeline can run before the GPU side is initialized.
//
// Parameters:
//   - queue: the GPU queue to write through
//   - writes: the staged writes to submit
func FlushWrites(queue *wgpu.Queue, writes []BufferWrite) {
	for _, w := range writes {
		if w.Target == nil {
			continue
		}
		queue.WriteBuffer(w.Target, w.Offset, w.Data)
	}
}
