package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler tracks sync throughput and memory statistics for performance
// monitoring. Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	blocksSynced   int
	bytesStaged    uint64
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
}

// Record accumulates the block and byte counts for one sync pass.
// Call once per pass, before Tick.
//
// Parameters:
//   - blocks: the number of uniform blocks packed this pass
//   - bytes: the number of staged bytes handed to the GPU queue
func (p *Profiler) Record(blocks int, bytes uint64) {
	p.blocksSynced += blocks
	p.bytesStaged += bytes
}

// Tick should be called once per sync pass to track timing.
// Logs throughput statistics when the update interval has elapsed.
// Statistics include: passes per second, blocks per pass, staged byte rate,
// heap usage, and allocation rate.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed >= p.updateInterval {
		passesPerSec := float64(p.frameCount) / elapsed.Seconds()
		blocksPerPass := float64(p.blocksSynced) / float64(p.frameCount)
		stageRateKB := float64(p.bytesStaged) / 1024 / elapsed.Seconds()

		runtime.ReadMemStats(&p.memStats)
		// Alloc: Bytes of allocated heap objects (live memory)
		// TotalAlloc: Cumulative bytes allocated for heap objects (increases forever, tracks churn)
		allocMB := float64(p.memStats.Alloc) / 1024 / 1024
		allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
		allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

		log.Printf("[Profiler] Syncs: %.2f/s | Blocks: %.1f/pass | Staged: %.2f KB/s | Heap: %.2f MB | Alloc Rate: %.2f MB/s",
			passesPerSec, blocksPerPass, stageRateKB, allocMB, allocRateMB)

		p.frameCount = 0
		p.blocksSynced = 0
		p.bytesStaged = 0
		p.lastTime = currentTime
		p.lastTotalAlloc = p.memStats.TotalAlloc
		return true
	}

	return false
}
