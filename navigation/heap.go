package navigation

// heapEntry is one frontier element; idx is the flat cell index (y*width + x)
type heapEntry struct {
	idx  int
	prio int
}

// minHeap orders entries by prio only; equal priorities keep whatever order sifting yields
type minHeap []heapEntry

func (h *minHeap) push(e heapEntry) {
	*h = append(*h, e)
	// Sift up
	i := len(*h) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if (*h)[parent].prio <= (*h)[i].prio {
			break
		}
		(*h)[parent], (*h)[i] = (*h)[i], (*h)[parent]
		i = parent
	}
}

func (h *minHeap) pop() heapEntry {
	old := *h
	n := len(old)
	e := old[0]
	old[0] = old[n-1]
	*h = old[:n-1]

	// Sift down
	i := 0
	for {
		left := 2*i + 1
		if left >= len(*h) {
			break
		}
		smallest := left
		if right := left + 1; right < len(*h) && (*h)[right].prio < (*h)[left].prio {
			smallest = right
		}
		if (*h)[i].prio <= (*h)[smallest].prio {
			break
		}
		(*h)[i], (*h)[smallest] = (*h)[smallest], (*h)[i]
		i = smallest
	}
	return e
}
