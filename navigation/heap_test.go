package navigation

import (
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinHeap_PopsInPriorityOrder(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	h := make(minHeap, 0)
	want := make([]int, 0, 200)
	for i := 0; i < 200; i++ {
		p := rng.IntN(50)
		want = append(want, p)
		h.push(heapEntry{idx: i, prio: p})
	}
	sort.Ints(want)

	got := make([]int, 0, len(want))
	for len(h) > 0 {
		got = append(got, h.pop().prio)
	}
	assert.Equal(t, want, got)
}

func TestFIFO_WrapsAndGrows(t *testing.T) {
	q := newFIFO(2)
	q.push(1)
	q.push(2)
	require.Equal(t, 1, q.pop())
	q.push(3)
	q.push(4) // Forces growth while wrapped
	q.push(5)

	got := []int{}
	for q.len() > 0 {
		got = append(got, q.pop())
	}
	assert.Equal(t, []int{2, 3, 4, 5}, got)

	q.reset()
	assert.Equal(t, 0, q.len())
}
