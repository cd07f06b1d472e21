package engine

import (
	"context"
	"testing"

	"github.com/lixenwraith/algo-snake/core"
	"github.com/lixenwraith/algo-snake/events"
	"github.com/lixenwraith/algo-snake/parameter"
	"github.com/lixenwraith/algo-snake/snake"
	"github.com/lixenwraith/algo-snake/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSimulation_DefaultRoster(t *testing.T) {
	sim, err := NewSimulation(Options{PlayerEnabled: true, Seed: 1})
	require.NoError(t, err)

	active := sim.Active()
	require.Len(t, active, 4)
	assert.Equal(t, "PLAYER", active[0].Name)
	assert.Equal(t, snake.None, active[0].Strategy)
	assert.Equal(t, []core.Point{{50, 50}, {49, 50}, {48, 50}}, active[0].Body)
	assert.Equal(t, "ASTAR", active[1].Name)
	assert.Equal(t, []core.Point{{40, 55}, {39, 55}, {38, 55}}, active[1].Body)
	assert.Equal(t, "BFS", active[2].Name)
	assert.Equal(t, "DIJKSTRA", active[3].Name)
	for _, sn := range active {
		assert.Equal(t, core.Right, sn.Heading)
	}
	assert.NotEmpty(t, sim.ID)
	assertBoardConsistent(t, sim)
}

func TestNewSimulation_RejectsBadLayouts(t *testing.T) {
	_, err := NewSimulation(Options{Agents: []parameter.AgentSpec{
		{Name: "X", Strategy: "greedy", Start: pt(10, 10), Heading: core.Right},
	}})
	assert.ErrorIs(t, err, snake.ErrUnknownStrategy)

	_, err = NewSimulation(Options{Agents: []parameter.AgentSpec{
		{Name: "X", Strategy: "bfs", Start: pt(2, 10), Heading: core.Right},
	}})
	assert.ErrorIs(t, err, ErrBadLayout, "body trails into the border")

	_, err = NewSimulation(Options{Agents: []parameter.AgentSpec{
		{Name: "A", Strategy: "bfs", Start: pt(10, 10), Heading: core.Right},
		{Name: "B", Strategy: "bfs", Start: pt(9, 10), Heading: core.Right},
	}})
	assert.ErrorIs(t, err, ErrBadLayout, "overlapping bodies")

	eat := pt(10, 10)
	_, err = NewSimulation(Options{
		Agents:  []parameter.AgentSpec{{Name: "A", Strategy: "bfs", Start: pt(10, 10), Heading: core.Right}},
		Eatable: &eat,
	})
	assert.ErrorIs(t, err, ErrBadLayout, "eatable on a body")
}

func TestWouldCollide(t *testing.T) {
	a := bodySnake(0, "A", snake.BFS, core.Right, pt(10, 10), pt(9, 10), pt(8, 10))
	b := bodySnake(1, "B", snake.BFS, core.Up, pt(12, 10), pt(12, 11), pt(12, 12))
	sim := newTestSim(t, pt(50, 50), a, b)

	assert.False(t, sim.WouldCollide(a, pt(8, 10)), "own tail vacates")
	assert.True(t, sim.WouldCollide(a, pt(9, 10)), "own body")
	assert.True(t, sim.WouldCollide(a, pt(12, 12)), "other agent's tail is not exempt")
	assert.True(t, sim.WouldCollide(a, pt(12, 10)), "other agent's head")
	assert.True(t, sim.WouldCollide(a, pt(0, 10)), "border")
	assert.True(t, sim.WouldCollide(a, pt(99, 10)), "border")
	assert.False(t, sim.WouldCollide(a, pt(11, 10)))
	assert.False(t, sim.WouldCollide(b, pt(12, 12)), "B's own tail")
}

func TestWouldCollide_GrownTailStaysBlocked(t *testing.T) {
	a := bodySnake(0, "A", snake.BFS, core.Right, pt(11, 10), pt(10, 10), pt(9, 10))
	sim := newTestSim(t, pt(12, 10), a)

	_, err := sim.AdvanceTick()
	require.NoError(t, err)
	require.Equal(t, 1, a.Score)
	require.Equal(t, []core.Point{{12, 10}, {11, 10}, {10, 10}, {10, 10}}, a.Body)

	assert.True(t, sim.WouldCollide(a, pt(10, 10)), "duplicate tail segment still occupies the cell")
}

// Single agent on an open board reaches the eatable in Manhattan-distance ticks
func TestSingleAgentReachesEatable(t *testing.T) {
	for _, strategy := range []snake.Strategy{snake.AStar, snake.BFS, snake.Dijkstra} {
		for _, shortest := range []bool{true, false} {
			a := snake.New(0, strategy.String(), pt(10, 10), core.Right, strategy, shortest)
			goal := pt(20, 25)
			sim := newTestSim(t, goal, a)
			dist := a.Head().Manhattan(goal)
			require.Equal(t, 25, dist)

			for i := 1; i < dist; i++ {
				_, err := sim.AdvanceTick()
				require.NoError(t, err)
				require.Equal(t, dist-i, a.Head().Manhattan(goal), "%s tick %d", strategy, i)
				require.Equal(t, 0, a.Score)
			}
			r, err := sim.AdvanceTick()
			require.NoError(t, err)
			assert.Equal(t, []int{0}, r.Captured, strategy.String())
			assert.Equal(t, 1, a.Score)
			assert.Equal(t, 4, a.Len())
			assert.Equal(t, goal, a.Head())
			assert.False(t, a.Occupies(sim.Eatable()))
			assert.False(t, sim.Over(), "a solo run continues after capture")
		}
	}
}

func TestCapture_EmitsEvents(t *testing.T) {
	a := bodySnake(3, "BFS", snake.BFS, core.Right, pt(10, 10), pt(9, 10), pt(8, 10))
	sim := newTestSim(t, pt(11, 10), a)
	_ = sim.Events()

	_, err := sim.AdvanceTick()
	require.NoError(t, err)

	evs := sim.Events()
	require.Len(t, evs, 3)
	assert.Equal(t, events.EventCapture, evs[0].Type)
	cp := evs[0].Payload.(*events.CapturePayload)
	assert.Equal(t, 3, cp.SnakeID)
	assert.Equal(t, 1, cp.Score)
	assert.Equal(t, pt(11, 10), cp.At)
	assert.Equal(t, events.EventEatableMoved, evs[1].Type)
	assert.Equal(t, sim.Eatable(), evs[1].Payload.(*events.EatablePayload).At)
	assert.Equal(t, events.EventTickDone, evs[2].Type)
	assert.Equal(t, int64(1), sim.Metrics().Int(status.KeyCaptures))
}

// An agent with no safe neighbor is eliminated on the next tick and the other agent wins
func TestEnclosedAgentEliminated(t *testing.T) {
	victim := bodySnake(0, "BFS", snake.BFS, core.Left, pt(1, 1), pt(2, 1), pt(3, 1))
	wall := bodySnake(1, "ASTAR", snake.AStar, core.Up, pt(1, 2), pt(1, 3), pt(1, 4))
	sim := newTestSim(t, pt(50, 50), victim, wall)

	r, err := sim.AdvanceTick()
	require.NoError(t, err)
	assert.Equal(t, []int{0}, r.Eliminated)
	assert.True(t, r.Over)
	assert.Equal(t, 1, r.WinnerID)
	assert.Equal(t, "ASTAR", WinnerName(sim.Winner()))
	assert.Equal(t, []core.Point{{1, 1}, {2, 1}, {3, 1}}, victim.Body, "an eliminated agent does not move")

	v := sim.View()
	require.Len(t, v.Snakes, 2)
	assert.True(t, v.Snakes[0].Alive)
	assert.False(t, v.Snakes[1].Alive)
	assert.Equal(t, "ASTAR", v.Winner)
	assert.Equal(t, int64(1), sim.Metrics().Int(status.KeyEliminations))

	_, err = sim.AdvanceTick()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), sim.Tick(), "finished simulations do not tick")
}

// A ring of other agents' bodies in open space leaves the victim no move
func TestRingedAgentEliminated(t *testing.T) {
	victim := bodySnake(0, "BFS", snake.BFS, core.Left, pt(50, 50), pt(51, 50), pt(52, 50))
	top := bodySnake(1, "ASTAR", snake.AStar, core.Left,
		pt(49, 49), pt(50, 49), pt(51, 49), pt(52, 49), pt(53, 49), pt(53, 50))
	bottom := bodySnake(2, "DIJKSTRA", snake.Dijkstra, core.Up,
		pt(49, 50), pt(49, 51), pt(50, 51), pt(51, 51), pt(52, 51), pt(53, 51))
	sim := newTestSim(t, pt(20, 20), victim, top, bottom)

	r, err := sim.AdvanceTick()
	require.NoError(t, err)
	assert.Equal(t, []int{0}, r.Eliminated)
	assert.False(t, r.Over)
	assert.Equal(t, []core.Point{{50, 50}, {51, 50}, {52, 50}}, victim.Body)
	require.Len(t, sim.Active(), 2)
	assert.NotEqual(t, pt(49, 49), top.Head(), "ring agents still move")
	assert.NotEqual(t, pt(49, 50), bottom.Head())
	assertBoardConsistent(t, sim)
}

// Marked agents keep blocking until the end of the tick
func TestMarkedAgentBlocksUntilEndOfTick(t *testing.T) {
	victim := bodySnake(0, "BFS", snake.BFS, core.Left, pt(1, 1), pt(2, 1), pt(3, 1))
	player := bodySnake(1, "PLAYER", snake.None, core.Up, pt(1, 2), pt(1, 3), pt(1, 4))
	sim := newTestSim(t, pt(50, 50), victim, player)

	r, err := sim.AdvanceTick()
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{0, 1}, r.Eliminated)
	assert.True(t, r.Over)
	assert.Equal(t, -1, r.WinnerID)
	assert.Equal(t, "No one", sim.View().Winner)
}

func TestFallback_StraightWhenNoPath(t *testing.T) {
	a := bodySnake(0, "ASTAR", snake.AStar, core.Right, pt(30, 30), pt(29, 30), pt(28, 30))
	// Eatable in the corner behind a blocker body
	blocker := bodySnake(1, "PLAYER", snake.None, core.Down, pt(2, 1), pt(2, 2), pt(1, 2))
	sim := newTestSim(t, pt(1, 1), a, blocker)

	_, err := sim.AdvanceTick()
	require.NoError(t, err)
	assert.Equal(t, pt(31, 30), a.Head())
	assert.Equal(t, core.Right, a.Heading)
	assert.Equal(t, int64(1), sim.Metrics().Int(status.KeyFallbackStraight))
	assert.Equal(t, int64(1), sim.Metrics().Int(status.SearchKey("astar", "no_path")))
}

func TestFallback_PerpendicularOrder(t *testing.T) {
	cases := []struct {
		name    string
		heading core.Point
		body    []core.Point
		block   []core.Point
		want    core.Point
	}{
		{"horizontal tries down first", core.Right, []core.Point{{98, 50}, {97, 50}, {96, 50}}, nil, core.Down},
		{"horizontal then up", core.Right, []core.Point{{98, 50}, {97, 50}, {96, 50}}, []core.Point{{98, 51}, {98, 52}, {98, 53}}, core.Up},
		{"vertical tries right first", core.Down, []core.Point{{50, 98}, {50, 97}, {50, 96}}, nil, core.Right},
		{"vertical then left", core.Down, []core.Point{{50, 98}, {50, 97}, {50, 96}}, []core.Point{{51, 98}, {52, 98}, {53, 98}}, core.Left},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := bodySnake(0, "ASTAR", snake.AStar, tc.heading, tc.body...)
			snakes := []*snake.Snake{a}
			if tc.block != nil {
				snakes = append(snakes, bodySnake(1, "OTHER", snake.None, core.Up, tc.block...))
			}
			// Unreachable corner eatable forces the ladder
			snakes = append(snakes, bodySnake(2, "CORNER", snake.None, core.Right, pt(2, 1), pt(2, 2), pt(1, 2)))
			sim := newTestSim(t, pt(1, 1), snakes...)

			_, err := sim.AdvanceTick()
			require.NoError(t, err)
			assert.Equal(t, tc.want, a.Heading)
			assert.Equal(t, tc.body[0].Add(tc.want), a.Head())
			assert.Equal(t, int64(1), sim.Metrics().Int(status.KeyFallbackTurn))
		})
	}
}

func TestPlayer_CollisionEliminatesWithoutFallback(t *testing.T) {
	p := snake.New(0, "PLAYER", pt(97, 50), core.Right, snake.None, false)
	sim := newTestSim(t, pt(10, 10), p)

	r, err := sim.AdvanceTick()
	require.NoError(t, err)
	assert.Empty(t, r.Eliminated)
	assert.Equal(t, pt(98, 50), p.Head())

	r, err = sim.AdvanceTick()
	require.NoError(t, err)
	assert.Equal(t, []int{0}, r.Eliminated)
	assert.True(t, r.Over)
	assert.Equal(t, -1, r.WinnerID)
}

func TestSetHeading(t *testing.T) {
	p := snake.New(0, "PLAYER", pt(50, 50), core.Right, snake.None, false)
	ai := snake.New(1, "BFS", pt(20, 20), core.Right, snake.BFS, true)
	sim := newTestSim(t, pt(80, 80), p, ai)

	assert.ErrorIs(t, sim.SetHeading(0, core.Left), ErrInvalidTurn)
	assert.ErrorIs(t, sim.SetHeading(0, pt(1, 1)), ErrInvalidTurn)
	assert.ErrorIs(t, sim.SetHeading(7, core.Up), ErrUnknownAgent)
	assert.ErrorIs(t, sim.SetHeading(1, core.Up), ErrNotExternal)

	require.NoError(t, sim.SetHeading(0, core.Up))
	assert.Equal(t, core.Right, p.Heading, "applied on the next move only")

	_, err := sim.AdvanceTick()
	require.NoError(t, err)
	assert.Equal(t, core.Up, p.Heading)
	assert.Equal(t, pt(50, 49), p.Head())
}

func TestTurn_RelativeToCommittedHeading(t *testing.T) {
	p := snake.New(0, "PLAYER", pt(50, 50), core.Right, snake.None, false)
	sim := newTestSim(t, pt(80, 80), p)

	require.NoError(t, sim.Turn(0, snake.TurnRight))
	require.NoError(t, sim.Turn(0, snake.TurnRight))
	_, err := sim.AdvanceTick()
	require.NoError(t, err)
	assert.Equal(t, core.Down, p.Heading, "two presses in one tick still turn once")

	require.NoError(t, sim.Turn(0, snake.TurnLeft))
	_, err = sim.AdvanceTick()
	require.NoError(t, err)
	assert.Equal(t, core.Right, p.Heading)
	assert.Equal(t, pt(51, 51), p.Head())
}

// Three agents on a small board keep the no-shared-cell invariant and the match ends
func TestThreeAgents_TerminateWithoutSharedCells(t *testing.T) {
	agents := []parameter.AgentSpec{
		{Name: "ASTAR", Strategy: "astar", Start: pt(5, 5), Heading: core.Right, SeeksShortest: true},
		{Name: "BFS", Strategy: "bfs", Start: pt(5, 12), Heading: core.Right, SeeksShortest: true},
		{Name: "DIJKSTRA", Strategy: "dijkstra", Start: pt(15, 18), Heading: core.Right, SeeksShortest: true},
	}
	for seed := uint64(1); seed <= 5; seed++ {
		sim, err := NewSimulation(Options{Agents: agents, Seed: seed, Bounds: core.Bounds{Min: 1, Max: 20}})
		require.NoError(t, err)

		for !sim.Over() && sim.Tick() < parameter.HeadlessTickLimit {
			_, err := sim.AdvanceTick()
			if err != nil {
				require.ErrorIs(t, err, ErrBoardFull)
				break
			}
			assertBoardConsistent(t, sim)
		}
		assert.True(t, sim.Over(), "seed %d still running after %d ticks", seed, sim.Tick())
		assert.LessOrEqual(t, len(sim.Active()), 1)
	}
}

// The default roster on the full board ends for a fixed seed with no shared cell at any tick
func TestDefaultRoster_SeededTermination(t *testing.T) {
	if testing.Short() {
		t.Skip("long run")
	}
	const limit = 10000
	sim, err := NewSimulation(Options{Seed: 8})
	require.NoError(t, err)
	assertBoardConsistent(t, sim)
	for !sim.Over() && sim.Tick() < limit {
		_, err := sim.AdvanceTick()
		require.NoError(t, err)
		assertBoardConsistent(t, sim)
	}
	require.True(t, sim.Over(), "still running after %d ticks", sim.Tick())
	assert.Less(t, sim.Tick(), uint64(limit))
	assert.LessOrEqual(t, len(sim.Active()), 1)
}

// The full-size default roster keeps the invariants at every tick boundary
func TestDefaultRoster_Invariants(t *testing.T) {
	if testing.Short() {
		t.Skip("long run")
	}
	const ticks = 3000
	sim, err := NewSimulation(Options{Seed: 2024})
	require.NoError(t, err)
	for !sim.Over() && sim.Tick() < ticks {
		_, err := sim.AdvanceTick()
		require.NoError(t, err)
		assertBoardConsistent(t, sim)
	}
	assert.LessOrEqual(t, sim.Tick(), uint64(ticks))
}

func TestRun_StopsAtLimitAndContext(t *testing.T) {
	sim, err := NewSimulation(Options{Seed: 3})
	require.NoError(t, err)
	require.NoError(t, sim.Run(context.Background(), 5))
	assert.Equal(t, uint64(5), sim.Tick())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sim.Run(ctx, 0), context.Canceled)
	assert.Equal(t, uint64(5), sim.Tick())
}
