package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/lixenwraith/algo-snake/core"
)

// Ticker is anything advanced one step at a time by the scheduler
type Ticker interface {
	AdvanceTick() (TickReport, error)
}

// ClockScheduler advances a Ticker on a fixed interval of game time
// Pause-aware without busy-wait; exits on its own once a tick reports game over
type ClockScheduler struct {
	ticker Ticker
	clock  *PausableClock
	logger log.Logger

	tickInterval time.Duration
	nextDeadline time.Duration // Game-time offset of the next tick
	tickCount    atomic.Uint64

	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
	running  atomic.Bool

	// updateDone receives a non-blocking signal after each tick so the renderer can redraw
	updateDone chan struct{}

	errMu sync.Mutex
	err   error
}

// NewClockScheduler returns the scheduler and its update notification channel
func NewClockScheduler(ticker Ticker, clock *PausableClock, tickInterval time.Duration, logger log.Logger) (*ClockScheduler, <-chan struct{}) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	cs := &ClockScheduler{
		ticker:       ticker,
		clock:        clock,
		logger:       log.With(logger, "component", "scheduler"),
		tickInterval: tickInterval,
		stopChan:     make(chan struct{}),
		done:         make(chan struct{}),
		updateDone:   make(chan struct{}, 1),
	}
	return cs, cs.updateDone
}

// Start launches the loop goroutine once
func (cs *ClockScheduler) Start() {
	if cs.running.CompareAndSwap(false, true) {
		core.Go(cs.loop)
	}
}

// Stop halts the loop and waits for it to exit
func (cs *ClockScheduler) Stop() {
	cs.stopOnce.Do(func() { close(cs.stopChan) })
	if cs.running.Load() {
		<-cs.done
	}
}

// Done is closed when the loop exits
func (cs *ClockScheduler) Done() <-chan struct{} { return cs.done }

func (cs *ClockScheduler) Pause()  { cs.clock.Pause() }
func (cs *ClockScheduler) Resume() { cs.clock.Resume() }

// Ticks returns the number of ticks run by this scheduler
func (cs *ClockScheduler) Ticks() uint64 { return cs.tickCount.Load() }

// Err returns the error that stopped the loop, if any
func (cs *ClockScheduler) Err() error {
	cs.errMu.Lock()
	defer cs.errMu.Unlock()
	return cs.err
}

func (cs *ClockScheduler) loop() {
	defer close(cs.done)

	cs.nextDeadline = cs.clock.Elapsed() + cs.tickInterval
	timer := time.NewTimer(cs.tickInterval)
	defer timer.Stop()

	for {
		var sleep time.Duration
		if cs.clock.IsPaused() {
			sleep = cs.tickInterval * 2
		} else {
			now := cs.clock.Elapsed()
			if now >= cs.nextDeadline {
				if cs.step() {
					return
				}
				cs.nextDeadline += cs.tickInterval
				// Drop missed ticks instead of bursting to catch up
				if now-cs.nextDeadline > cs.tickInterval*2 {
					cs.nextDeadline = now + cs.tickInterval
				}
			}
			sleep = cs.nextDeadline - cs.clock.Elapsed()
		}

		if sleep <= 0 {
			continue
		}
		timer.Reset(sleep)
		select {
		case <-timer.C:
		case <-cs.stopChan:
			return
		}
	}
}

// step runs one tick and reports whether the loop should exit
func (cs *ClockScheduler) step() bool {
	select {
	case <-cs.stopChan:
		return true
	default:
	}

	report, err := cs.ticker.AdvanceTick()
	cs.tickCount.Add(1)

	select {
	case cs.updateDone <- struct{}{}:
	default:
	}

	if err != nil {
		cs.errMu.Lock()
		cs.err = err
		cs.errMu.Unlock()
		level.Error(cs.logger).Log("msg", "tick failed", "tick", report.Tick, "err", err)
		return true
	}
	return report.Over
}
