package parameter

import (
	"time"

	"github.com/lixenwraith/algo-snake/core"
)

// Board geometry: a 100x100 square with a one-cell wall on every edge
const (
	GridSize = 100
	MinPos   = 1
	MaxPos   = 98
)

// GridBounds is the inclusive traversable range
var GridBounds = core.Bounds{Min: MinPos, Max: MaxPos}

// EatableMaxSampleAttempts caps rejection sampling before the free-cell scan takes over
const EatableMaxSampleAttempts = 1 << 16

// DefaultSeeksShortest is the early-exit policy for automatic agents
const DefaultSeeksShortest = true

// AgentSpec describes one starting agent
type AgentSpec struct {
	Name          string
	Strategy      string
	Start         core.Point
	Heading       core.Point
	SeeksShortest bool
}

// DefaultAgents is the algorithm roster in iteration order
var DefaultAgents = []AgentSpec{
	{Name: "ASTAR", Strategy: "astar", Start: core.Point{X: 40, Y: 55}, Heading: core.Right, SeeksShortest: DefaultSeeksShortest},
	{Name: "BFS", Strategy: "bfs", Start: core.Point{X: 20, Y: 30}, Heading: core.Right, SeeksShortest: DefaultSeeksShortest},
	{Name: "DIJKSTRA", Strategy: "dijkstra", Start: core.Point{X: 75, Y: 75}, Heading: core.Right, SeeksShortest: DefaultSeeksShortest},
}

// PlayerAgent is inserted ahead of the roster when play mode is enabled
var PlayerAgent = AgentSpec{Name: "PLAYER", Strategy: "none", Start: core.Point{X: 50, Y: 50}, Heading: core.Right}

// InitialBodyLength is the segment count of a freshly created snake
const InitialBodyLength = 3

// ReplayFrameInterval records every n-th tick in replays
const ReplayFrameInterval = 1

// SpectateWriteTimeout bounds a single websocket frame write
const SpectateWriteTimeout = 2 * time.Second
