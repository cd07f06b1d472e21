package replay

import (
	"sync"

	"github.com/lixenwraith/algo-snake/engine"
	"github.com/lixenwraith/algo-snake/events"
	"github.com/lixenwraith/algo-snake/parameter"
)

// Recorder captures frames from session events
// Safe to read with Replay while the session keeps dispatching
type Recorder struct {
	mu       sync.Mutex
	interval uint64
	current  Replay
}

// NewRecorder keeps every interval-th tick; the final frame is always kept
func NewRecorder(interval int) *Recorder {
	if interval < 1 {
		interval = parameter.ReplayFrameInterval
	}
	return &Recorder{interval: uint64(interval), current: Replay{Version: FormatVersion}}
}

func (r *Recorder) HandleEvent(v engine.View, ev events.GameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ev.Type == events.EventReset || r.current.MatchID != v.MatchID {
		r.current = Replay{
			Version: FormatVersion,
			MatchID: v.MatchID,
			Bounds:  [2]int{v.Bounds.Min, v.Bounds.Max},
		}
	}

	switch ev.Type {
	case events.EventReset, events.EventEatableMoved:
		if len(r.current.Frames) == 0 {
			r.current.Frames = append(r.current.Frames, FromView(v))
		}
	case events.EventTickDone:
		if v.Tick%r.interval == 0 || v.Over {
			r.appendFrame(v)
		}
	case events.EventGameOver:
		r.appendFrame(v)
	}
}

// appendFrame adds a frame unless the last one already covers this tick
func (r *Recorder) appendFrame(v engine.View) {
	if n := len(r.current.Frames); n > 0 && r.current.Frames[n-1].Tick == v.Tick {
		r.current.Frames[n-1] = FromView(v)
		return
	}
	r.current.Frames = append(r.current.Frames, FromView(v))
}

func (r *Recorder) EventTypes() []events.EventType {
	return []events.EventType{events.EventReset, events.EventEatableMoved, events.EventTickDone, events.EventGameOver}
}

// Replay returns a copy of the current recording
func (r *Recorder) Replay() Replay {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.current
	out.Frames = append([]Frame(nil), r.current.Frames...)
	return out
}
