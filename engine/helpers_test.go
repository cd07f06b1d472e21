package engine

import (
	"testing"

	"github.com/lixenwraith/algo-snake/core"
	"github.com/lixenwraith/algo-snake/snake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(x, y int) core.Point { return core.Point{X: x, Y: y} }

// newTestSim builds a simulation from explicit bodies with a pinned eatable
func newTestSim(t *testing.T, eatable core.Point, snakes ...*snake.Snake) *Simulation {
	t.Helper()
	sim, err := NewSimulation(Options{Snakes: snakes, Eatable: &eatable, Seed: 99})
	require.NoError(t, err)
	return sim
}

func bodySnake(id int, name string, strategy snake.Strategy, heading core.Point, body ...core.Point) *snake.Snake {
	return &snake.Snake{
		ID:            id,
		Name:          name,
		Body:          body,
		Heading:       heading,
		Strategy:      strategy,
		SeeksShortest: true,
	}
}

// assertBoardConsistent checks that no two agents share a cell and the eatable is free
func assertBoardConsistent(t *testing.T, sim *Simulation) {
	t.Helper()
	owner := make(map[core.Point]int)
	for _, sn := range sim.Active() {
		for _, c := range sn.Body {
			require.True(t, sim.Bounds().Contains(c), "tick %d: %s out of bounds at %v", sim.Tick(), sn.Name, c)
			if id, ok := owner[c]; ok && id != sn.ID {
				t.Fatalf("tick %d: agents %d and %d share %v", sim.Tick(), id, sn.ID, c)
			}
			owner[c] = sn.ID
		}
	}
	if !sim.Over() {
		_, taken := owner[sim.Eatable()]
		assert.False(t, taken, "tick %d: eatable under a body at %v", sim.Tick(), sim.Eatable())
	}
}
