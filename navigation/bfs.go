package navigation

import "github.com/lixenwraith/algo-snake/parameter"

// BFSFinder explores in non-decreasing step count with a FIFO frontier
type BFSFinder struct {
	space searchSpace
	queue *fifo
	nbrs  []int
}

// NewBFS creates a breadth-first finder
func NewBFS() *BFSFinder {
	return &BFSFinder{queue: newFIFO(parameter.NavFrontierCapacity), nbrs: make([]int, 0, 4)}
}

func (f *BFSFinder) Name() string { return "bfs" }

func (f *BFSFinder) FindPath(req Request) Result {
	var res Result
	if !valid(req) {
		return res
	}

	s := &f.space
	s.prepare(req.Bounds)
	start, goal := s.index(req.Start), s.index(req.Goal)

	// closed doubles as the visited-on-enqueue marker
	s.touch(start)
	s.g[start] = 0
	s.closed[start] = true
	f.queue.reset()
	f.queue.push(start)

	for f.queue.len() > 0 {
		cur := f.queue.pop()
		res.Expanded++

		if cur == goal {
			res.Path = s.reconstruct(goal)
			return res
		}

		g := s.g[cur] + 1
		f.nbrs = s.neighbors(f.nbrs, cur, req.Blocked)
		for _, n := range f.nbrs {
			if s.isClosed(n) {
				continue
			}
			s.touch(n)
			s.closed[n] = true
			s.g[n] = g
			s.parent[n] = int32(cur)

			if !req.Shortest && n == goal {
				res.Path = s.reconstruct(goal)
				return res
			}
			f.queue.push(n)
		}
	}
	return res
}
