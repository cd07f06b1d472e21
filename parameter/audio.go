package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond

	// MinSoundGap between consecutive cues of the same kind
	MinSoundGap = 50 * time.Millisecond
)

// Cue tones
const (
	CaptureToneHz       = 880.0
	CaptureToneDuration = 50 * time.Millisecond

	EliminationToneHz       = 220.0
	EliminationToneDuration = 150 * time.Millisecond

	GameOverToneHz       = 440.0
	GameOverToneDuration = 400 * time.Millisecond

	CueVolume = -1.5 // beep effects.Volume exponent (base 2)
)
