package engine

import (
	"sync"
	"time"
)

// PausableClock is game time that stands still while paused
type PausableClock struct {
	mu     sync.RWMutex
	source TimeProvider

	origin      time.Time     // Source time at creation
	paused      bool
	pausedAt    time.Time     // Source time when the current pause began
	pausedTotal time.Duration // Completed pauses
}

func NewPausableClock() *PausableClock {
	return NewPausableClockWith(systemTime{})
}

// NewPausableClockWith drives the clock from a custom source
func NewPausableClockWith(source TimeProvider) *PausableClock {
	return &PausableClock{source: source, origin: source.Now()}
}

// Elapsed returns game time since creation, excluding pauses
func (pc *PausableClock) Elapsed() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	end := pc.source.Now()
	if pc.paused {
		end = pc.pausedAt
	}
	return end.Sub(pc.origin) - pc.pausedTotal
}

// Now returns the game time as an instant anchored at creation
func (pc *PausableClock) Now() time.Time {
	return pc.origin.Add(pc.Elapsed())
}

func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if !pc.paused {
		pc.paused = true
		pc.pausedAt = pc.source.Now()
	}
}

func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.paused {
		pc.pausedTotal += pc.source.Now().Sub(pc.pausedAt)
		pc.paused = false
	}
}

func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.paused
}

// PausedFor returns cumulative pause time, the running pause included
func (pc *PausableClock) PausedFor() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	total := pc.pausedTotal
	if pc.paused {
		total += pc.source.Now().Sub(pc.pausedAt)
	}
	return total
}
