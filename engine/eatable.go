package engine

import (
	"errors"
	"math/rand/v2"

	"github.com/lixenwraith/algo-snake/core"
	"github.com/lixenwraith/algo-snake/parameter"
)

// ErrBoardFull is returned when no free cell is left for the eatable
var ErrBoardFull = errors.New("engine: no free cell for eatable")

// Eatable is the single shared resource every agent is chasing
type Eatable struct {
	At core.Point
}

// Place moves the eatable to a uniformly sampled cell that occupied rejects
// Sampling gives up after EatableMaxSampleAttempts and falls back to a row-major scan
func (e *Eatable) Place(rng *rand.Rand, bounds core.Bounds, occupied func(core.Point) bool) error {
	span := bounds.Span()
	for range parameter.EatableMaxSampleAttempts {
		p := core.Point{
			X: bounds.Min + rng.IntN(span),
			Y: bounds.Min + rng.IntN(span),
		}
		if !occupied(p) {
			e.At = p
			return nil
		}
	}

	for y := bounds.Min; y <= bounds.Max; y++ {
		for x := bounds.Min; x <= bounds.Max; x++ {
			p := core.Point{X: x, Y: y}
			if !occupied(p) {
				e.At = p
				return nil
			}
		}
	}
	return ErrBoardFull
}
