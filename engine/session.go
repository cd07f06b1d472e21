package engine

import (
	"sync"

	"github.com/lixenwraith/algo-snake/core"
	"github.com/lixenwraith/algo-snake/events"
	"github.com/lixenwraith/algo-snake/snake"
)

// Session serializes access to a Simulation so a clock goroutine, input and rendering can share it
// Events produced by a tick are dispatched to registered handlers after the lock is released
type Session struct {
	mu      sync.Mutex
	sim     *Simulation
	stopped bool

	dispatchMu sync.Mutex
	router     *events.Router[View]
}

func NewSession(opts Options) (*Session, error) {
	sim, err := NewSimulation(opts)
	if err != nil {
		return nil, err
	}
	return &Session{
		sim:    sim,
		router: events.NewRouter[View](),
	}, nil
}

// Register adds an event handler; call before ticking starts
func (s *Session) Register(h events.Handler[View]) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()
	s.router.Register(h)
}

// AdvanceTick resolves one tick; a stopped or finished session reports without ticking
func (s *Session) AdvanceTick() (TickReport, error) {
	s.mu.Lock()
	if s.stopped {
		r := s.sim.report(nil, nil)
		s.mu.Unlock()
		return r, nil
	}
	report, err := s.sim.AdvanceTick()
	pending := s.sim.Events()
	view := s.sim.View()
	s.mu.Unlock()

	s.dispatch(view, pending)
	return report, err
}

func (s *Session) dispatch(view View, pending []events.GameEvent) {
	if len(pending) == 0 {
		return
	}
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()
	s.router.Dispatch(view, pending)
}

// SetHeading queues an override for an external agent
func (s *Session) SetHeading(id int, heading core.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim.SetHeading(id, heading)
}

// Turn rotates an external agent by 90 degrees
func (s *Session) Turn(id int, t snake.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim.Turn(id, t)
}

// View returns a deep copy of the current state
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim.View()
}

// Summary reports the current outcome
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim.Summary()
}

// Stop halts further ticks
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
}

// Reset replaces the simulation with a fresh one; handlers stay registered
func (s *Session) Reset(opts Options) error {
	sim, err := NewSimulation(opts)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.sim = sim
	s.stopped = false
	pending := append([]events.GameEvent{{Type: events.EventReset}}, sim.Events()...)
	view := sim.View()
	s.mu.Unlock()

	s.dispatch(view, pending)
	return nil
}

// Drain dispatches events produced outside AdvanceTick, such as the first eatable placement
func (s *Session) Drain() {
	s.mu.Lock()
	pending := s.sim.Events()
	view := s.sim.View()
	s.mu.Unlock()
	s.dispatch(view, pending)
}
