package parameter

import "time"

// Simulation Loop Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// GameUpdateInterval is the simulation tick interval
	GameUpdateInterval = 50 * time.Millisecond

	// MinTickInterval clamps user supplied tick intervals
	MinTickInterval = 1 * time.Millisecond
)

// Event Queue Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 1024

	// EventBufferMask is the bitmask for fast modulo operations (1024 - 1)
	EventBufferMask = 1023
)

// HeadlessTickLimit bounds a headless match so a pair of snakes circling forever still ends
const HeadlessTickLimit = 10000
