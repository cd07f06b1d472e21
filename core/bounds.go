package core

// Bounds is an inclusive square range of legal cells on both axes
type Bounds struct {
	Min, Max int
}

// Contains reports whether p lies inside the traversable range
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.Min && p.X <= b.Max && p.Y >= b.Min && p.Y <= b.Max
}

// Span returns the number of legal positions per axis
func (b Bounds) Span() int {
	if b.Max < b.Min {
		return 0
	}
	return b.Max - b.Min + 1
}

// Cells returns the total number of legal cells
func (b Bounds) Cells() int {
	s := b.Span()
	return s * s
}
