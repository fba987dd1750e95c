// package frame_sync coordinates per-frame uniform synchronization: every
// registered binding is packed on a worker pool, then all staged buffer
// writes are flushed to the GPU queue in a single batch.
package frame_sync

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/ubo-go/profiler"
	"github.com/Carmen-Shannon/ubo-go/uniform"
	"github.com/Carmen-Shannon/ubo-go/uniform_buffer"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrNilValueSource reports a binding registered without a value source.
	ErrNilValueSource = errors.New("frame_sync: binding has no value source")

	// ErrNilTarget reports a binding registered without a target buffer.
	ErrNilTarget = errors.New("frame_sync: binding has no target buffer")

	// ErrTargetTooSmall reports a target buffer whose staging area cannot
	// hold the binding's declared block layout.
	ErrTargetTooSmall = errors.New("frame_sync: target buffer is smaller than the block layout")
)

// Binding ties one uniform block to the value source that feeds it and the
// buffer that receives it.
type Binding struct {
	// Name identifies the binding within the sync set.
	Name string

	// Uniforms declares the block members, ordered by update index.
	Uniforms []uniform.Uniform

	// Values supplies current uniform values at sync time.
	Values uniform.ValueSource

	// Target receives the packed block each sync pass.
	Target uniform_buffer.UniformBuffer
}

// frameSyncImpl is the implementation of the FrameSync interface.
type frameSyncImpl struct {
	// mu guards the binding set, the queue, and the reusable write slice.
	mu *sync.RWMutex

	// bindings is the registered sync set keyed by binding name.
	bindings map[string]Binding

	// cache maps field shapes to their planned layout and sync procedure,
	// shared across all bindings.
	cache uniform.Cache

	// pool manages a bounded set of reusable goroutines for the parallel
	// pack phase. Workers persist across passes, avoiding per-frame
	// goroutine spawn/teardown overhead.
	pool worker.DynamicWorkerPool

	// workers is the configured worker count, stored so it can be inspected.
	workers int

	// queue is the GPU queue staged writes are flushed through. Nil until
	// a device exists, in which case Sync packs but skips the GPU write.
	queue *wgpu.Queue

	// prof optionally tracks sync throughput. Nil disables profiling.
	prof *profiler.Profiler

	// writePool is the reusable coalesced buffer write slice.
	writePool []uniform_buffer.BufferWrite
}

// FrameSync drives the per-frame uniform sync pipeline over a set of named
// bindings. Selection, layout planning, and procedure generation run behind
// a shared shape cache, so steady-state passes only select, pack, and flush.
type FrameSync interface {
	// Register adds a binding to the sync set, replacing any existing
	// binding with the same name. The declared uniform list is planned
	// immediately so arrays and unknown types surface here rather than
	// mid-frame, and the target's staging capacity is validated against
	// that layout.
	//
	// Parameters:
	//   - binding: the binding to register
	//
	// Returns:
	//   - error: an error if the binding is incomplete, cannot be planned, or the target is too small
	Register(binding Binding) error

	// Unregister removes the named binding from the sync set. Removing a
	// name that is not registered is a no-op.
	//
	// Parameters:
	//   - name: the binding name to remove
	Unregister(name string)

	// Names retrieves the registered binding names in sorted order.
	//
	// Returns:
	//   - []string: the sorted binding names
	Names() []string

	// Len reports the number of registered bindings.
	//
	// Returns:
	//   - int: the binding count
	Len() int

	// SetQueue sets the GPU queue staged writes are flushed through.
	// Until a queue is set, Sync still selects and packs but performs no
	// GPU writes.
	//
	// Parameters:
	//   - queue: the GPU queue
	SetQueue(queue *wgpu.Queue)

	// Sync runs one synchronization pass. Each binding's current values
	// are matched against its declared uniforms, the matching fields are
	// packed through the cached sync procedure for that shape, and all
	// staged buffer writes are flushed to the GPU queue in one batch.
	Sync()
}

var _ FrameSync = &frameSyncImpl{}

// NewFrameSync creates a new FrameSync with all specified options applied.
//
// Parameters:
//   - options: functional options to configure the sync pipeline
//
// Returns:
//   - FrameSync: the configured sync pipeline
func NewFrameSync(options ...FrameSyncBuilderOption) FrameSync {
	f := &frameSyncImpl{
		mu:       &sync.RWMutex{},
		bindings: make(map[string]Binding),
		cache:    uniform.NewCache(),
		workers:  max(runtime.NumCPU()-1, 1),
	}
	for _, option := range options {
		option(f)
	}

	// Initialize the pool after options so WithWorkers can override the default.
	// Queue size of 256 accommodates typical binding counts with headroom.
	f.pool = worker.NewDynamicWorkerPool(f.workers, 256, 1*time.Second)
	return f
}

func (f *frameSyncImpl) Register(binding Binding) error {
	if binding.Values == nil {
		return fmt.Errorf("binding %q: %w", binding.Name, ErrNilValueSource)
	}
	if binding.Target == nil {
		return fmt.Errorf("binding %q: %w", binding.Name, ErrNilTarget)
	}

	layout, err := uniform.PlanLayout(binding.Uniforms)
	if err != nil {
		return fmt.Errorf("binding %q: %w", binding.Name, err)
	}
	if need := layout.Size / 4; need > binding.Target.ElementCount() {
		return fmt.Errorf("binding %q needs %d elements, target holds %d: %w",
			binding.Name, need, binding.Target.ElementCount(), ErrTargetTooSmall)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.bindings[binding.Name] = binding
	return nil
}

func (f *frameSyncImpl) Unregister(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.bindings, name)
}

func (f *frameSyncImpl) Names() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.bindings))
	for name := range f.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (f *frameSyncImpl) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.bindings)
}

func (f *frameSyncImpl) SetQueue(queue *wgpu.Queue) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = queue
}

func (f *frameSyncImpl) Sync() {
	f.mu.RLock()
	bindings := make([]Binding, 0, len(f.bindings))
	for _, b := range f.bindings {
		bindings = append(bindings, b)
	}
	f.mu.RUnlock()

	// Phase 1: parallel pack. Submit each binding's selection, cache
	// lookup, and copy pass to the worker pool. A WaitGroup provides the
	// per-pass barrier since pool.Wait() blocks until workers idle-exit,
	// which is unsuitable for frame-rate workloads.
	var wg sync.WaitGroup
	for i, b := range bindings {
		wg.Add(1)
		bCap := b // capture for closure
		f.pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()

				selected := uniform.SelectUniforms(bCap.Uniforms, bCap.Values)
				if len(selected) == 0 {
					return nil, nil
				}
				layout, proc, err := f.cache.Get(selected)
				if err != nil {
					return nil, err
				}
				staging := bCap.Target.Staging()
				need := layout.Size / 4
				if need > len(staging) {
					return nil, nil
				}
				proc(bCap.Values, nil, staging[:need], bCap.Target)
				return nil, nil
			},
		})
	}
	wg.Wait()

	// Phase 2: coalesced GPU submission. Drain every binding's staged
	// write into a single reused slice, then flush once through the queue.
	// This reduces queue acquisitions from N to 1 per pass.
	f.mu.Lock()
	allWrites := f.writePool[:0]
	for _, b := range bindings {
		if write, ok := b.Target.StagedWrite(); ok {
			allWrites = append(allWrites, write)
		}
	}
	f.writePool = allWrites
	queue := f.queue
	prof := f.prof
	f.mu.Unlock()

	if queue != nil && len(allWrites) > 0 {
		uniform_buffer.FlushWrites(queue, allWrites)
	}

	if prof != nil {
		var staged uint64
		for _, w := range allWrites {
			staged += uint64(len(w.Data))
		}
		prof.Record(len(allWrites), staged)
		prof.Tick()
	}
}
