package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/algo-snake/engine"
	"github.com/lixenwraith/algo-snake/events"
	"github.com/lixenwraith/algo-snake/parameter"
)

// Cue is a short sound tied to a simulation event
type Cue int

const (
	CueCapture Cue = iota
	CueElimination
	CueGameOver
)

type tone struct {
	hz       float64
	duration time.Duration
}

var cueTones = map[Cue]tone{
	CueCapture:     {parameter.CaptureToneHz, parameter.CaptureToneDuration},
	CueElimination: {parameter.EliminationToneHz, parameter.EliminationToneDuration},
	CueGameOver:    {parameter.GameOverToneHz, parameter.GameOverToneDuration},
}

// CuePlayer turns capture, elimination and game over events into sine beeps
// A disabled player swallows every call, so the game runs without an audio device
type CuePlayer struct {
	mu      sync.Mutex
	enabled bool
	ready   bool
	rate    beep.SampleRate
	out     func(beep.Streamer)
	last    map[Cue]time.Time
	now     func() time.Time
}

func NewCuePlayer(enabled bool) *CuePlayer {
	return &CuePlayer{
		enabled: enabled,
		rate:    beep.SampleRate(parameter.AudioSampleRate),
		out:     speaker.Play,
		last:    make(map[Cue]time.Time),
		now:     time.Now,
	}
}

// Init opens the speaker; on failure the player disables itself and reports why
func (p *CuePlayer) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled || p.ready {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(parameter.AudioBufferDuration)); err != nil {
		p.enabled = false
		return fmt.Errorf("audio init: %w", err)
	}
	p.ready = true
	return nil
}

// Close releases the speaker
func (p *CuePlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ready {
		speaker.Clear()
		speaker.Close()
		p.ready = false
	}
}

// Enabled reports whether cues are played
func (p *CuePlayer) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Play emits a cue unless disabled or the same cue played within MinSoundGap
func (p *CuePlayer) Play(c Cue) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return false
	}
	t, ok := cueTones[c]
	if !ok {
		return false
	}
	now := p.now()
	if last, ok := p.last[c]; ok && now.Sub(last) < parameter.MinSoundGap {
		return false
	}

	sine, err := generators.SineTone(p.rate, t.hz)
	if err != nil {
		return false
	}
	p.last[c] = now
	p.out(&effects.Volume{
		Streamer: beep.Take(p.rate.N(t.duration), sine),
		Base:     2,
		Volume:   parameter.CueVolume,
	})
	return true
}

func (p *CuePlayer) HandleEvent(_ engine.View, ev events.GameEvent) {
	switch ev.Type {
	case events.EventCapture:
		p.Play(CueCapture)
	case events.EventElimination:
		p.Play(CueElimination)
	case events.EventGameOver:
		p.Play(CueGameOver)
	}
}

func (p *CuePlayer) EventTypes() []events.EventType {
	return []events.EventType{events.EventCapture, events.EventElimination, events.EventGameOver}
}
