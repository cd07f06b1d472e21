package navigation

// AStarFinder expands cells in order of f = g + Manhattan distance to the goal
type AStarFinder struct {
	space searchSpace
	heap  minHeap
	nbrs  []int
}

// NewAStar creates an A* finder
func NewAStar() *AStarFinder {
	return &AStarFinder{heap: newHeap(), nbrs: make([]int, 0, 4)}
}

func (f *AStarFinder) Name() string { return "astar" }

func (f *AStarFinder) FindPath(req Request) Result {
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
	f.heap.push(heapEntry{idx: start, prio: req.Start.Manhattan(req.Goal)})

	for len(f.heap) > 0 {
		e := f.heap.pop()
		if s.isClosed(e.idx) {
			continue // Superseded duplicate
		}
		res.Expanded++

		if e.idx == goal {
			res.Path = s.reconstruct(goal)
			return res
		}
		s.closed[e.idx] = true

		g := s.g[e.idx] + 1
		f.nbrs = s.neighbors(f.nbrs, e.idx, req.Blocked)
		for _, n := range f.nbrs {
			if s.isClosed(n) || g >= s.cost(n) {
				continue
			}
			s.touch(n)
			s.g[n] = g
			s.parent[n] = int32(e.idx)

			if !req.Shortest && n == goal {
				res.Path = s.reconstruct(goal)
				return res
			}
			f.heap.push(heapEntry{idx: n, prio: g + s.point(n).Manhattan(req.Goal)})
		}
	}
	return res
}
