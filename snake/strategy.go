package snake

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lixenwraith/algo-snake/parameter"
)

// ErrUnknownStrategy is returned when a strategy name does not resolve
var ErrUnknownStrategy = errors.New("unknown strategy")

// Strategy selects how a snake picks its next move
type Strategy uint8

const (
	// None marks an externally steered snake, exempt from automatic search
	None Strategy = iota
	AStar
	BFS
	Dijkstra
)

// String returns the display tag used in score labels and the game-over banner
func (s Strategy) String() string {
	switch s {
	case AStar:
		return "ASTAR"
	case BFS:
		return "BFS"
	case Dijkstra:
		return "DIJKSTRA"
	default:
		return "PLAYER"
	}
}

// Key returns the lower-case configuration identifier
func (s Strategy) Key() string {
	switch s {
	case AStar:
		return parameter.StrategyAStar
	case BFS:
		return parameter.StrategyBFS
	case Dijkstra:
		return parameter.StrategyDijkstra
	default:
		return parameter.StrategyNone
	}
}

// ParseStrategy resolves a configuration identifier, case-insensitive
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case parameter.StrategyAStar, "a*":
		return AStar, nil
	case parameter.StrategyBFS:
		return BFS, nil
	case parameter.StrategyDijkstra:
		return Dijkstra, nil
	case parameter.StrategyNone, "player", "":
		return None, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Turn is a relative ±90° steering input
type Turn int8

const (
	TurnLeft  Turn = -1
	TurnRight Turn = 1
)

// Apply rotates heading by the turn in screen orientation
func (t Turn) Apply(heading Point) Point {
	if t == TurnRight {
		return heading.RotateCW()
	}
	return heading.RotateCCW()
}
