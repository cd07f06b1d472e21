package maze

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/algo-snake/core"
	"github.com/lixenwraith/algo-snake/navigation"
	"github.com/lixenwraith/algo-snake/parameter"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestGenerate_PerfectMazeIsSpanningTree(t *testing.T) {
	b := parameter.GridBounds
	f := Generate(seeded(1), b, 0)

	rooms := (b.Span() + 1) / 2
	rooms *= rooms
	assert.Equal(t, 2*rooms-1, f.Open(), "rooms plus one corridor per tree edge")

	bfs := navigation.NewBFS()
	start := core.Point{X: b.Min, Y: b.Min}
	rng := seeded(2)
	for i := 0; i < 20; i++ {
		goal, ok := f.FreeCell(rng)
		require.True(t, ok)
		if goal == start {
			continue
		}
		res := bfs.FindPath(navigation.Request{Start: start, Goal: goal, Bounds: b, Blocked: f.Blocked, Shortest: true})
		assert.True(t, res.Found(), "goal %v unreachable", goal)
	}
}

func TestGenerate_BraidAddsLoopsWithoutPlazas(t *testing.T) {
	b := core.Bounds{Min: 1, Max: 41}
	perfect := Generate(seeded(5), b, 0)
	braided := Generate(seeded(5), b, 1)
	assert.Greater(t, braided.Open(), perfect.Open())

	for y := b.Min; y < b.Max; y++ {
		for x := b.Min; x < b.Max; x++ {
			p := core.Point{X: x, Y: y}
			plaza := !braided.Blocked(p) &&
				!braided.Blocked(p.Add(core.Right)) &&
				!braided.Blocked(p.Add(core.Down)) &&
				!braided.Blocked(p.Add(core.Right).Add(core.Down))
			assert.False(t, plaza, "2x2 open square at %v", p)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	b := core.Bounds{Min: 1, Max: 21}
	assert.Equal(t, Generate(seeded(9), b, 0.5).walls, Generate(seeded(9), b, 0.5).walls)
}

func TestRandom_Density(t *testing.T) {
	b := parameter.GridBounds
	assert.Equal(t, b.Cells(), Random(seeded(1), b, 0).Open())
	assert.Zero(t, Random(seeded(1), b, 1).Open())

	f := Random(seeded(3), b, 0.25)
	frac := float64(b.Cells()-f.Open()) / float64(b.Cells())
	assert.InDelta(t, 0.25, frac, 0.03)
}

func TestField_BlockedOutsideAndFreeCell(t *testing.T) {
	b := core.Bounds{Min: 1, Max: 5}
	f := Random(seeded(1), b, 0)
	assert.True(t, f.Blocked(core.Point{X: 0, Y: 3}))
	assert.True(t, f.Blocked(core.Point{X: 3, Y: 6}))
	assert.False(t, f.Blocked(core.Point{X: 3, Y: 3}))

	full := Random(seeded(1), b, 1)
	_, ok := full.FreeCell(seeded(1))
	assert.False(t, ok)
}
