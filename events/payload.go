package events

import "github.com/lixenwraith/algo-snake/core"

// TickPayload summarizes one resolved tick
type TickPayload struct {
	Active     int
	Captures   int
	Eliminated int
}

// CapturePayload identifies the capturing agent and its new state
type CapturePayload struct {
	SnakeID int
	Name    string
	Score   int
	Length  int
	At      core.Point
}

// EatablePayload carries the new eatable position
type EatablePayload struct {
	At core.Point
}

// EliminationPayload describes an agent removed from play
type EliminationPayload struct {
	SnakeID int
	Name    string
	Score   int
	Length  int
}

// GameOverPayload carries the outcome; WinnerID is -1 when nobody survived
type GameOverPayload struct {
	WinnerID  int
	Winner    string
	Ticks     uint64
	BoardFull bool
}
