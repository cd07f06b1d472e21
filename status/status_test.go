package status

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricMap_GetCachesPointer(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()
	a := m.Get("x")
	b := m.Get("x")
	assert.Same(t, a, b)
	assert.True(t, m.Has("x"))
	assert.False(t, m.Has("y"))
	assert.Equal(t, 1, m.Count())
}

func TestMetricMap_ConcurrentGet(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Get("shared").Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(1600), m.Get("shared").Load())
}

func TestRegistry_SnapshotOrder(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(KeyTicks).Store(12)
	r.Ints.Get(KeyCaptures).Store(3)
	r.Floats.Get(SearchKey("bfs", "avg_path")).Set(4.5)
	r.Strings.Get(KeyWinner).Store("ASTAR")

	assert.Equal(t, []string{
		"sim.captures=3",
		"sim.ticks=12",
		"search.bfs.avg_path=4.50",
		"sim.winner=ASTAR",
	}, r.Snapshot())
	assert.Equal(t, int64(12), r.Int(KeyTicks))
	assert.Equal(t, int64(0), r.Int("missing"))
	assert.False(t, r.Ints.Has("missing"))
}

func TestAtomicFloat_Mean(t *testing.T) {
	var f AtomicFloat
	f.Mean(2, 1)
	f.Mean(4, 2)
	assert.InDelta(t, 6.0/2, f.Get(), 1e-9)
	f.Mean(6, 3)
	assert.InDelta(t, 4.0, f.Get(), 1e-9)
}

func TestAtomicString_Truncates(t *testing.T) {
	var s AtomicString
	assert.Equal(t, "", s.Load())
	s.Store("0123456789012345678901234567")
	assert.Len(t, s.Load(), MaxStringLen)
}
