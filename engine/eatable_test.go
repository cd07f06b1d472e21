package engine

import (
	"math/rand/v2"
	"testing"

	"github.com/lixenwraith/algo-snake/core"
	"github.com/lixenwraith/algo-snake/parameter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlace_NeverOnOccupied(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	occupied := func(p core.Point) bool { return (p.X+p.Y)%2 == 0 }

	var e Eatable
	for i := 0; i < 500; i++ {
		require.NoError(t, e.Place(rng, parameter.GridBounds, occupied))
		assert.False(t, occupied(e.At), "placed on %v", e.At)
		assert.True(t, parameter.GridBounds.Contains(e.At))
	}
}

func TestPlace_SingleFreeCell(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	bounds := core.Bounds{Min: 1, Max: 3}
	free := core.Point{X: 3, Y: 2}

	var e Eatable
	require.NoError(t, e.Place(rng, bounds, func(p core.Point) bool { return p != free }))
	assert.Equal(t, free, e.At)
}

func TestPlace_ScanAfterSampleCap(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	calls := 0
	occupied := func(core.Point) bool {
		calls++
		return calls <= parameter.EatableMaxSampleAttempts
	}

	var e Eatable
	require.NoError(t, e.Place(rng, parameter.GridBounds, occupied))
	assert.Equal(t, core.Point{X: 1, Y: 1}, e.At, "scan starts at the first row-major cell")
	assert.Equal(t, parameter.EatableMaxSampleAttempts+1, calls)
}

func TestPlace_BoardFull(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	e := Eatable{At: core.Point{X: 2, Y: 2}}
	err := e.Place(rng, core.Bounds{Min: 1, Max: 4}, func(core.Point) bool { return true })
	assert.ErrorIs(t, err, ErrBoardFull)
	assert.Equal(t, core.Point{X: 2, Y: 2}, e.At, "position untouched on failure")
}
