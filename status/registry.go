package status

import (
	"fmt"
	"strconv"
	"sync/atomic"
)

// Metric keys written by the engine
const (
	KeyTicks            = "sim.ticks"
	KeyCaptures         = "sim.captures"
	KeyEliminations     = "sim.eliminations"
	KeyFallbackStraight = "sim.fallback.straight"
	KeyFallbackTurn     = "sim.fallback.turn"
	KeyWinner           = "sim.winner"
	KeyTickMicros       = "sim.tick_us"
)

// SearchKey builds the per-algorithm key, e.g. search.bfs.expanded
func SearchKey(algo, metric string) string {
	return "search." + algo + "." + metric
}

// Registry groups the metric maps; the engine caches pointers at construction
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Int returns the current value of an int metric without creating it
func (r *Registry) Int(key string) int64 {
	if !r.Ints.Has(key) {
		return 0
	}
	return r.Ints.Get(key).Load()
}

// Snapshot flattens every metric into key=value strings, ints first
func (r *Registry) Snapshot() []string {
	out := make([]string, 0, r.TotalCount())
	r.Ints.Range(func(k string, v *atomic.Int64) {
		out = append(out, k+"="+strconv.FormatInt(v.Load(), 10))
	})
	r.Floats.Range(func(k string, v *AtomicFloat) {
		out = append(out, fmt.Sprintf("%s=%.2f", k, v.Get()))
	})
	r.Strings.Range(func(k string, v *AtomicString) {
		out = append(out, k+"="+v.Load())
	})
	return out
}

func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}
