package constant

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100
	AudioChannels   = 2
)

// Audio Engine Timing
const (
	// AudioBufferDuration is the speaker buffer; bounds output latency
	AudioBufferDuration = 50 * time.Millisecond

	// VoiceQueueSize bounds voices waiting to enter the mixer
	VoiceQueueSize = 64

	// FilterUpdateInterval is samples between lowpass coefficient refreshes
	FilterUpdateInterval = 16
)

// Bus Levels
const (
	MasterGain     = 0.35
	ReverbSendGain = 0.5
)

// Reverb Impulse Response
const (
	ReverbSeconds = 4.0
	ReverbDecay   = 2.5 // exponent of (1 - i/len)
	ReverbBlock   = 2048
)

// Piano Voice: strings
const (
	PianoStopAfter      = 4.5 // oscillators stop (s after start)
	PianoCutoffBase     = 150.0
	PianoCutoffSpan     = 2500.0
	PianoCutoffFloor    = 100.0
	PianoCutoffFall     = 2.5
	PianoAttack         = 0.03
	PianoDecayTime      = 0.4
	PianoDecayLevel     = 0.5 // fraction of hit force
	PianoReleaseTime    = 4.0
	PianoReleaseLevel   = 0.001
	PianoMinHitForce    = 0.1
	PianoDetuneCentsMax = 4.0
)

// PianoDetunes are the per-oscillator detune offsets in cents
var PianoDetunes = [3]float64{0, PianoDetuneCentsMax, -PianoDetuneCentsMax}

// Piano Voice: hammer thud
const (
	ThudFreq      = 80.0
	ThudGain      = 0.1 // fraction of hit force
	ThudAttack    = 0.01
	ThudDecayTime = 0.05
	ThudFloor     = 0.0001
	ThudStopAfter = 0.1
)
