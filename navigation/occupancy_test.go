package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/algo-snake/core"
	"github.com/lixenwraith/algo-snake/parameter"
)

func TestOccupancy_CountsAndBounds(t *testing.T) {
	o := NewOccupancy(parameter.GridSize)
	p := core.Point{X: 4, Y: 4}

	o.Add(p)
	o.Add(p)
	assert.Equal(t, 2, o.Count(p))

	o.Remove(p)
	assert.True(t, o.Occupied(p))
	o.Remove(p)
	o.Remove(p) // Never underflows
	assert.False(t, o.Occupied(p))

	o.Add(core.Point{X: -1, Y: 3})
	o.Add(core.Point{X: 100, Y: 3})
	assert.Equal(t, 0, o.Count(core.Point{X: -1, Y: 3}))
}

func TestSnapshot_ExemptsOwnTailOnly(t *testing.T) {
	o := NewOccupancy(parameter.GridSize)
	mine := []core.Point{{10, 10}, {9, 10}, {8, 10}}
	theirs := []core.Point{{20, 20}, {19, 20}, {18, 20}}
	o.AddBody(mine)
	o.AddBody(theirs)

	view := o.For(mine[len(mine)-1])

	assert.False(t, view.Blocked(core.Point{X: 8, Y: 10}), "own tail is passable")
	assert.True(t, view.Blocked(core.Point{X: 9, Y: 10}))
	assert.True(t, view.Blocked(core.Point{X: 10, Y: 10}))
	for _, c := range theirs {
		assert.True(t, view.Blocked(c))
	}
	assert.False(t, view.Blocked(core.Point{X: 50, Y: 50}))
}

func TestSnapshot_GrownTailStaysBlocked(t *testing.T) {
	o := NewOccupancy(parameter.GridSize)
	// Duplicate tail right after a capture
	body := []core.Point{{10, 10}, {9, 10}, {8, 10}, {8, 10}}
	o.AddBody(body)

	view := o.For(body[len(body)-1])
	assert.True(t, view.Blocked(core.Point{X: 8, Y: 10}))
}

func TestSnapshot_AsWallChecker(t *testing.T) {
	o := NewOccupancy(parameter.GridSize)
	// Head at (5,5) boxed in on three sides, only its own tail at (5,6) behind it
	body := []core.Point{{5, 5}, {4, 5}, {4, 6}, {5, 6}}
	o.AddBody(body)
	o.Add(core.Point{X: 6, Y: 5})
	o.Add(core.Point{X: 5, Y: 4})

	req := Request{
		Start:    body[0],
		Goal:     core.Point{X: 5, Y: 8},
		Bounds:   parameter.GridBounds,
		Blocked:  o.For(body[len(body)-1]).Blocked,
		Shortest: true,
	}
	for _, f := range allFinders() {
		res := f.FindPath(req)
		if assert.True(t, res.Found(), f.Name()) {
			assert.Equal(t, core.Point{X: 5, Y: 6}, res.Path[0], f.Name())
			assert.Len(t, res.Path, 3, f.Name())
		}
	}
}
