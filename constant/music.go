package constant

import "time"

// Scale is C harmonic minor over two and a half octaves, in Hz
var Scale = [...]float64{
	130.81, 146.83, 155.56, 174.61, 196.00, 207.65, 246.94,
	261.63, 293.66, 311.13, 349.23, 392.00, 415.30, 493.88,
	523.25, 587.33, 622.25,
}

// ScaleLen is the number of scale degrees chord roots are reduced modulo
const ScaleLen = len(Scale)

// Chord layout: steps within the scale and onset offsets in seconds
const (
	ChordThirdStep  = 2
	ChordFifthStep  = 4
	ChordThirdDelay = 0.03
	ChordFifthDelay = 0.05
	ChordEchoDelay  = 0.06

	ChordRootVelocity  = 0.9
	ChordThirdVelocity = 0.6
	ChordFifthVelocity = 0.65
	ChordEchoVelocity  = 0.3

	// ChordEchoChance is the probability of the octave-up root echo
	ChordEchoChance = 0.25
)

// Step Timing: delay = max(StepFloor, StepBase - tempo*StepPerTempo)
const (
	StepBase     = 2200 * time.Millisecond
	StepPerTempo = 20 * time.Millisecond
	StepFloor    = 200 * time.Millisecond
)
