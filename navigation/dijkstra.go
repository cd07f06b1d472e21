package navigation

// DijkstraFinder expands cells in order of path cost alone
// Improved cells are pushed again; the superseded entry is skipped when popped
type DijkstraFinder struct {
	space searchSpace
	heap  minHeap
	nbrs  []int
}

// NewDijkstra creates a Dijkstra finder
func NewDijkstra() *DijkstraFinder {
	return &DijkstraFinder{heap: newHeap(), nbrs: make([]int, 0, 4)}
}

func (f *DijkstraFinder) Name() string { return "dijkstra" }

func (f *DijkstraFinder) FindPath(req Request) Result {
	var res Result
	if !valid(req) {
		return res
	}

	s := &f.space
	s.prepare(req.Bounds)
	start, goal := s.index(req.Start), s.index(req.Goal)

	s.touch(start)
	s.g[start] = 0
	f.heap = f.heap[:0]
	f.heap.push(heapEntry{idx: start, prio: 0})

	for len(f.heap) > 0 {
		e := f.heap.pop()
		if e.prio > s.cost(e.idx) {
			continue // Stale entry
		}
		res.Expanded++

		if e.idx == goal {
			res.Path = s.reconstruct(goal)
			return res
		}

		g := e.prio + 1
		f.nbrs = s.neighbors(f.nbrs, e.idx, req.Blocked)
		for _, n := range f.nbrs {
			if g >= s.cost(n) {
				continue
			}
			s.touch(n)
			s.g[n] = g
			s.parent[n] = int32(e.idx)

			if !req.Shortest && n == goal {
				res.Path = s.reconstruct(goal)
				return res
			}
			f.heap.push(heapEntry{idx: n, prio: g})
		}
	}
	return res
}
