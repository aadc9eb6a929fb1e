package audio

import (
	"errors"
)

// VoiceKind selects the renderer for a scheduled voice
type VoiceKind uint8

const (
	VoiceTone VoiceKind = iota // three detuned triangles through a lowpass, dry + reverb
	VoiceThud                  // short low sine, dry only
)

// Voice is a value descriptor of one scheduled sound
// Start is in engine seconds (see Engine.Now); the engine derives every
// parameter curve from Hit at render time
type Voice struct {
	Kind  VoiceKind
	Freq  float64
	Start float64
	Hit   float64
}

// Sentinel errors
var (
	ErrAudioUnavailable = errors.New("audio output unavailable")
	ErrEngineClosed     = errors.New("audio engine closed")
)
