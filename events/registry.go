package events

import "strings"

var typeNames = map[EventType]string{
	EventTickDone:     "tick",
	EventCapture:      "capture",
	EventEatableMoved: "eatable",
	EventElimination:  "elimination",
	EventGameOver:     "game_over",
	EventReset:        "reset",
}

// String returns the lowercase log/replay name of the event type
func (t EventType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseEventType resolves a name produced by String, case-insensitive
func ParseEventType(name string) (EventType, bool) {
	for t, n := range typeNames {
		if strings.EqualFold(n, name) {
			return t, true
		}
	}
	return 0, false
}
