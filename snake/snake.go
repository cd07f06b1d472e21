package snake

import (
	"github.com/lixenwraith/algo-snake/core"
	"github.com/lixenwraith/algo-snake/parameter"
)

// Point aliases the grid coordinate for brevity inside the package
type Point = core.Point

// Snake is one agent: an ordered body with the head at index 0
// Not safe for concurrent use; the engine owns every snake it creates
type Snake struct {
	ID            int
	Name          string
	Body          []Point
	Heading       Point
	Strategy      Strategy
	SeeksShortest bool
	Score         int
}

// New lays out a body of parameter.InitialBodyLength cells trailing behind start, opposite to heading
func New(id int, name string, start, heading Point, strategy Strategy, seeksShortest bool) *Snake {
	body := make([]Point, parameter.InitialBodyLength, parameter.InitialBodyLength+8)
	for i := range body {
		body[i] = Point{X: start.X - i*heading.X, Y: start.Y - i*heading.Y}
	}
	return &Snake{
		ID:            id,
		Name:          name,
		Body:          body,
		Heading:       heading,
		Strategy:      strategy,
		SeeksShortest: seeksShortest,
	}
}

// Head returns the first segment, panics on an empty body
func (s *Snake) Head() Point {
	if len(s.Body) == 0 {
		panic("snake: empty body")
	}
	return s.Body[0]
}

// Tail returns the last segment, the only one vacated by the next Advance
func (s *Snake) Tail() Point {
	return s.Body[len(s.Body)-1]
}

// Len returns the segment count, duplicates included
func (s *Snake) Len() int {
	return len(s.Body)
}

// External reports whether the snake is steered from outside the engine
func (s *Snake) External() bool {
	return s.Strategy == None
}

// SetHeadingToward points the heading at target; target must be adjacent to the head
func (s *Snake) SetHeadingToward(target Point) {
	s.Heading = target.Sub(s.Head())
}

// Next returns the cell the head would enter along the current heading
func (s *Snake) Next() Point {
	return s.Head().Add(s.Heading)
}

// Advance shifts the body one cell along the heading, dropping the tail
func (s *Snake) Advance() {
	head := s.Next()
	copy(s.Body[1:], s.Body[:len(s.Body)-1])
	s.Body[0] = head
}

// Grow appends a duplicate of the tail; the duplicate unfolds over the following moves
func (s *Snake) Grow() {
	s.Body = append(s.Body, s.Tail())
}

// Eat records a capture
func (s *Snake) Eat() {
	s.Grow()
	s.Score++
}

// Occupies reports whether any segment sits on p
func (s *Snake) Occupies(p Point) bool {
	for _, c := range s.Body {
		if c == p {
			return true
		}
	}
	return false
}

// Cells returns a copy of the body, head first
func (s *Snake) Cells() []Point {
	out := make([]Point, len(s.Body))
	copy(out, s.Body)
	return out
}
