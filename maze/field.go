// Package maze builds obstacle fields for path search benchmarks
package maze

import (
	"math/rand/v2"

	"github.com/lixenwraith/algo-snake/core"
	"github.com/lixenwraith/algo-snake/parameter"
)

// Field is a wall grid over an inclusive square range
type Field struct {
	Bounds core.Bounds
	width  int
	walls  []bool
}

func newField(b core.Bounds, wall bool) *Field {
	w := b.Span()
	f := &Field{Bounds: b, width: w, walls: make([]bool, w*w)}
	if wall {
		for i := range f.walls {
			f.walls[i] = true
		}
	}
	return f
}

func (f *Field) index(p core.Point) int {
	return (p.Y-f.Bounds.Min)*f.width + (p.X - f.Bounds.Min)
}

// Blocked reports walls; cells outside the range are walls
func (f *Field) Blocked(p core.Point) bool {
	if !f.Bounds.Contains(p) {
		return true
	}
	return f.walls[f.index(p)]
}

func (f *Field) set(p core.Point, wall bool) {
	f.walls[f.index(p)] = wall
}

// Open counts passable cells
func (f *Field) Open() int {
	n := 0
	for _, w := range f.walls {
		if !w {
			n++
		}
	}
	return n
}

// FreeCell samples a passable cell, ok is false once sampling gives up
func (f *Field) FreeCell(rng *rand.Rand) (core.Point, bool) {
	for i := 0; i < parameter.EatableMaxSampleAttempts; i++ {
		p := core.Point{X: f.Bounds.Min + rng.IntN(f.width), Y: f.Bounds.Min + rng.IntN(f.width)}
		if !f.Blocked(p) {
			return p, true
		}
	}
	return core.Point{}, false
}

// Random blocks each cell independently with probability density
func Random(rng *rand.Rand, b core.Bounds, density float64) *Field {
	f := newField(b, false)
	for i := range f.walls {
		f.walls[i] = rng.Float64() < density
	}
	return f
}

// Generate carves a perfect maze with a randomized depth-first backtracker, rooms on
// even offsets from Bounds.Min, then opens dead ends with probability braid
func Generate(rng *rand.Rand, b core.Bounds, braid float64) *Field {
	f := newField(b, true)
	start := core.Point{X: b.Min, Y: b.Min}
	f.set(start, false)

	stack := []core.Point{start}
	candidates := make([]core.Point, 0, 4)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		candidates = candidates[:0]
		for _, d := range core.Cardinals {
			next := cur.Add(d).Add(d)
			if b.Contains(next) && f.Blocked(next) {
				candidates = append(candidates, d)
			}
		}
		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		d := candidates[rng.IntN(len(candidates))]
		f.set(cur.Add(d), false)
		next := cur.Add(d).Add(d)
		f.set(next, false)
		stack = append(stack, next)
	}

	if braid > 0 {
		f.braid(rng, braid)
	}
	return f
}

// braid removes one wall from a dead end room with probability p, keeping corridors one cell wide
func (f *Field) braid(rng *rand.Rand, p float64) {
	b := f.Bounds
	walls := make([]core.Point, 0, 4)
	for y := b.Min; y <= b.Max; y += 2 {
		for x := b.Min; x <= b.Max; x += 2 {
			room := core.Point{X: x, Y: y}
			if f.Blocked(room) || f.exits(room) != 1 || rng.Float64() >= p {
				continue
			}
			walls = walls[:0]
			for _, d := range core.Cardinals {
				wall, beyond := room.Add(d), room.Add(d).Add(d)
				if b.Contains(beyond) && !f.Blocked(beyond) && f.Blocked(wall) && f.canOpen(wall) {
					walls = append(walls, wall)
				}
			}
			if len(walls) > 0 {
				f.set(walls[rng.IntN(len(walls))], false)
			}
		}
	}
}

func (f *Field) exits(p core.Point) int {
	n := 0
	for _, d := range core.Cardinals {
		if !f.Blocked(p.Add(d)) {
			n++
		}
	}
	return n
}

// canOpen rejects openings that would create a 2x2 open square or a wall cell with no wall neighbor
func (f *Field) canOpen(w core.Point) bool {
	open := func(dx, dy int) bool { return !f.Blocked(core.Point{X: w.X + dx, Y: w.Y + dy}) }
	for _, q := range [4][2]int{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
		if open(q[0], 0) && open(0, q[1]) && open(q[0], q[1]) {
			return false
		}
	}

	for _, d := range core.Cardinals {
		n := w.Add(d)
		if !f.Bounds.Contains(n) || !f.Blocked(n) {
			continue
		}
		linked := false
		for _, d2 := range core.Cardinals {
			nn := n.Add(d2)
			if nn != w && f.Bounds.Contains(nn) && f.Blocked(nn) {
				linked = true
				break
			}
		}
		if !linked {
			return false
		}
	}
	return true
}
