package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat is a float64 stored as bits; zero value reads 0.0
type AtomicFloat struct {
	bits atomic.Uint64
}

func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Mean folds sample into a running average over n samples (n counts this one)
func (f *AtomicFloat) Mean(sample float64, n int64) float64 {
	if n <= 0 {
		n = 1
	}
	for {
		old := f.bits.Load()
		cur := math.Float64frombits(old)
		next := cur + (sample-cur)/float64(n)
		if f.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}
