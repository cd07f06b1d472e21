package navigation

import (
	"github.com/lixenwraith/algo-snake/core"
	"github.com/lixenwraith/algo-snake/parameter"
)

// WallChecker returns true if the cell blocks navigation
type WallChecker func(p core.Point) bool

// Request is one path query from a snake's head to the eatable
type Request struct {
	Start, Goal core.Point
	Bounds      core.Bounds
	Blocked     WallChecker

	// Shortest waits for the goal to be popped as the frontier minimum;
	// false returns as soon as the goal is first discovered
	Shortest bool
}

// Result holds the cells after Start up to and including Goal; an empty Path means no route
type Result struct {
	Path     []core.Point
	Expanded int // Frontier entries popped and processed (stale entries excluded)
}

// Found reports whether a route exists
func (r Result) Found() bool {
	return len(r.Path) > 0
}

// Finder is a shortest-path strategy over the unit-cost 4-connected grid
// Implementations reuse internal buffers and are not safe for concurrent use
type Finder interface {
	Name() string
	FindPath(req Request) Result
}

const costUnreachable = 1<<30 - 1

// searchSpace is per-cell bookkeeping shared by all three finders
// Cells are lazily reset through a generation stamp so each query costs O(visited)
type searchSpace struct {
	width  int
	bounds core.Bounds

	gen    uint32
	stamp  []uint32
	g      []int
	parent []int32
	closed []bool
}

func (s *searchSpace) prepare(b core.Bounds) {
	w := b.Max + 1
	if w < 1 {
		w = 1
	}
	if w != s.width || len(s.stamp) != w*w {
		size := w * w
		s.width = w
		s.stamp = make([]uint32, size)
		s.g = make([]int, size)
		s.parent = make([]int32, size)
		s.closed = make([]bool, size)
		s.gen = 0
	}
	s.bounds = b
	s.gen++
	if s.gen == 0 {
		// Stamp wrapped, clear so stale stamps cannot alias
		for i := range s.stamp {
			s.stamp[i] = 0
		}
		s.gen = 1
	}
}

func (s *searchSpace) touch(idx int) {
	if s.stamp[idx] != s.gen {
		s.stamp[idx] = s.gen
		s.g[idx] = costUnreachable
		s.parent[idx] = -1
		s.closed[idx] = false
	}
}

func (s *searchSpace) cost(idx int) int {
	if s.stamp[idx] != s.gen {
		return costUnreachable
	}
	return s.g[idx]
}

func (s *searchSpace) isClosed(idx int) bool {
	return s.stamp[idx] == s.gen && s.closed[idx]
}

func (s *searchSpace) index(p core.Point) int {
	return p.Y*s.width + p.X
}

func (s *searchSpace) point(idx int) core.Point {
	return core.Point{X: idx % s.width, Y: idx / s.width}
}

// neighbors appends the in-bounds, unblocked cardinal neighbors of idx in Right, Left, Down, Up order
func (s *searchSpace) neighbors(dst []int, idx int, blocked WallChecker) []int {
	dst = dst[:0]
	p := s.point(idx)
	for _, d := range core.Cardinals {
		n := p.Add(d)
		if !s.bounds.Contains(n) {
			continue
		}
		if blocked != nil && blocked(n) {
			continue
		}
		dst = append(dst, s.index(n))
	}
	return dst
}

// reconstruct walks parent links from goal back to start and reverses, excluding start
func (s *searchSpace) reconstruct(goal int) []core.Point {
	n := 0
	for i := goal; s.parent[i] >= 0; i = int(s.parent[i]) {
		n++
	}
	path := make([]core.Point, n)
	for i := goal; s.parent[i] >= 0; i = int(s.parent[i]) {
		n--
		path[n] = s.point(i)
	}
	return path
}

// valid rejects queries whose endpoints fall outside the bounds or coincide
func valid(req Request) bool {
	return req.Start != req.Goal && req.Bounds.Contains(req.Start) && req.Bounds.Contains(req.Goal)
}

func newHeap() minHeap {
	return make(minHeap, 0, parameter.NavFrontierCapacity)
}
