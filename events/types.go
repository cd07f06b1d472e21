package events

// EventType represents the type of simulation event
type EventType int

const (
	// EventTickDone marks the end of one resolved tick
	// Trigger: Simulation.AdvanceTick | Payload: *TickPayload
	EventTickDone EventType = iota

	// EventCapture signals a head landing on the eatable
	// Trigger: resolver after a committed move | Payload: *CapturePayload
	EventCapture

	// EventEatableMoved signals the eatable was relocated
	// Trigger: simulation start, capture | Payload: *EatablePayload
	EventEatableMoved

	// EventElimination signals an agent removed at end of tick
	// Payload: *EliminationPayload
	EventElimination

	// EventGameOver signals at most one agent remains, or the board filled up
	// Consumer: audio, replay, storage | Payload: *GameOverPayload
	EventGameOver

	// EventReset signals the session swapped in a fresh simulation
	// Payload: nil
	EventReset
)

// GameEvent represents a single simulation event
type GameEvent struct {
	Type    EventType
	Tick    uint64
	Payload any
}
