package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordAccumulates(t *testing.T) {
	p := NewProfiler()
	p.Record(3, 128)
	p.Record(2, 64)

	assert.Equal(t, 5, p.blocksSynced)
	assert.Equal(t, uint64(192), p.bytesStaged)
}

func TestTickBeforeIntervalDoesNotLog(t *testing.T) {
	p := NewProfiler()
	assert.False(t, p.Tick())
	assert.Equal(t, 1, p.frameCount)
}

func TestTickLogsAfterInterval(t *testing.T) {
	p := NewProfiler()
	p.updateInterval = time.Millisecond

	p.Record(2, 256)
	p.Tick()
	time.Sleep(2 * time.Millisecond)

	assert.True(t, p.Tick())
	assert.Equal(t, 0, p.frameCount, "counters reset after logging")
	assert.Equal(t, 0, p.blocksSynced)
	assert.Equal(t, uint64(0), p.bytesStaged)
}
