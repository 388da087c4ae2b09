package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickBeforeIntervalLogsNothing(t *testing.T) {
	p := NewProfiler()
	for i := 0; i < 10; i++ {
		assert.False(t, p.Tick())
	}
	assert.Equal(t, 10, p.frameCount)
}

func TestTickAfterIntervalResetsCounters(t *testing.T) {
	p := NewProfilerWithInterval(time.Millisecond)
	p.Tick()
	time.Sleep(5 * time.Millisecond)

	assert.True(t, p.Tick())
	assert.Equal(t, 0, p.frameCount)
}

func TestNonPositiveIntervalFallsBackToDefault(t *testing.T) {
	p := NewProfilerWithInterval(0)
	assert.Equal(t, time.Second, p.updateInterval)

	p = NewProfilerWithInterval(-time.Minute)
	assert.Equal(t, time.Second, p.updateInterval)
}
