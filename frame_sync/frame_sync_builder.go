package frame_sync

import (
	"github.com/Carmen-Shannon/ubo-go/profiler"
	"github.com/cogentcore/webgpu/wgpu"
)

// FrameSyncBuilderOption is a functional option for configuring a
// frameSyncImpl. Use the With* functions to create options.
type FrameSyncBuilderOption func(f *frameSyncImpl)

// WithWorkers sets the number of worker goroutines used during the parallel
// pack phase of Sync. Defaults to runtime.NumCPU()-1. Higher values may
// improve throughput with many bindings; lower values reduce scheduling
// overhead for small sync sets.
//
// Parameters:
//   - n: the number of pack workers (minimum 1)
//
// Returns:
//   - FrameSyncBuilderOption: option function to apply
func WithWorkers(n int) FrameSyncBuilderOption {
	return func(f *frameSyncImpl) {
		if n < 1 {
			n = 1
		}
		f.workers = n
	}
}

// WithQueue sets the GPU queue staged writes are flushed through.
//
// Parameters:
//   - queue: the GPU queue
//
// Returns:
//   - FrameSyncBuilderOption: option function to apply
func WithQueue(queue *wgpu.Queue) FrameSyncBuilderOption {
	return func(f *frameSyncImpl) {
		f.queue = queue
	}
}

// WithProfiler attaches a profiler that records block and byte throughput
// for each sync pass.
//
// Parameters:
//   - prof: the profiler to record into
//
// Returns:
//   - FrameSyncBuilderOption: option function to apply
func WithProfiler(prof *profiler.Profiler) FrameSyncBuilderOption {
	return func(f *frameSyncImpl) {
		f.prof = prof
	}
}
