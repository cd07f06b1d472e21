package navigation

import "github.com/lixenwraith/algo-snake/core"

// Occupancy is a dense per-cell segment count over the whole board, borders included
// Counts rather than flags so a freshly grown tail (two segments on one cell) stays blocked
// after one of them is exempted
type Occupancy struct {
	Size   int
	Counts []uint16 // 1D array: index = y*Size + x
}

// NewOccupancy creates an empty grid covering coordinates [0, size) on both axes
func NewOccupancy(size int) *Occupancy {
	return &Occupancy{
		Size:   size,
		Counts: make([]uint16, size*size),
	}
}

func (o *Occupancy) inside(p core.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < o.Size && p.Y < o.Size
}

// Add records one segment at p; points off the board are ignored
func (o *Occupancy) Add(p core.Point) {
	if o.inside(p) {
		o.Counts[p.Y*o.Size+p.X]++
	}
}

// Remove forgets one segment at p
func (o *Occupancy) Remove(p core.Point) {
	if o.inside(p) {
		idx := p.Y*o.Size + p.X
		if o.Counts[idx] > 0 {
			o.Counts[idx]--
		}
	}
}

// AddBody records every segment of a body
func (o *Occupancy) AddBody(body []core.Point) {
	for _, p := range body {
		o.Add(p)
	}
}

// RemoveBody forgets every segment of a body
func (o *Occupancy) RemoveBody(body []core.Point) {
	for _, p := range body {
		o.Remove(p)
	}
}

// Count returns the number of segments at p, 0 off the board
func (o *Occupancy) Count(p core.Point) int {
	if !o.inside(p) {
		return 0
	}
	return int(o.Counts[p.Y*o.Size+p.X])
}

// Occupied reports whether any segment sits at p
func (o *Occupancy) Occupied(p core.Point) bool {
	return o.Count(p) > 0
}

// Clear removes all segments
func (o *Occupancy) Clear() {
	for i := range o.Counts {
		o.Counts[i] = 0
	}
}

// Snapshot is the obstacle layout as seen by one mover for one decision
// The mover's own tail segment is exempt because it vacates during the move
type Snapshot struct {
	occ  *Occupancy
	tail core.Point
}

// For returns the view exempting one segment at tail
func (o *Occupancy) For(tail core.Point) Snapshot {
	return Snapshot{occ: o, tail: tail}
}

// Blocked reports whether p holds a segment other than the exempt tail
func (s Snapshot) Blocked(p core.Point) bool {
	n := s.occ.Count(p)
	if p == s.tail {
		n--
	}
	return n > 0
}
