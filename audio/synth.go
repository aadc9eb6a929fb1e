package audio

import (
	"log"
	"math"
	"math/rand"
	"sync"

	"github.com/lixenwraith/resonance/constant"
)

// Scheduler accepts voices against its own clock
type Scheduler interface {
	Now() float64
	Submit(v Voice) error
}

// DynamicsSource supplies the current dynamics level (0-100)
type DynamicsSource interface {
	Dynamics() int
}

// ChordNote is one note of a chord relative to the chord's start
type ChordNote struct {
	ScaleIndex int
	Octave     float64 // frequency multiplier
	Delay      float64 // seconds
	Velocity   float64
}

// ChordNotes returns the notes of a chord on root; echo adds the octave-up root
func ChordNotes(root int, echo bool) []ChordNote {
	root = wrapIndex(root)
	notes := []ChordNote{
		{ScaleIndex: root, Octave: 1, Delay: 0, Velocity: constant.ChordRootVelocity},
		{ScaleIndex: wrapIndex(root + constant.ChordThirdStep), Octave: 1, Delay: constant.ChordThirdDelay, Velocity: constant.ChordThirdVelocity},
		{ScaleIndex: wrapIndex(root + constant.ChordFifthStep), Octave: 1, Delay: constant.ChordFifthDelay, Velocity: constant.ChordFifthVelocity},
	}
	if echo {
		notes = append(notes, ChordNote{ScaleIndex: root, Octave: 2, Delay: constant.ChordEchoDelay, Velocity: constant.ChordEchoVelocity})
	}
	return notes
}

func wrapIndex(i int) int {
	i %= constant.ScaleLen
	if i < 0 {
		i += constant.ScaleLen
	}
	return i
}

// HitForce scales velocity by dynamics with a floor so quiet notes still sound
func HitForce(dynamics int, velocity float64) float64 {
	return math.Max(constant.PianoMinHitForce, float64(dynamics)/100*velocity)
}

// Synth turns chords and notes into voices on a scheduler
type Synth struct {
	sched    Scheduler
	dynamics DynamicsSource

	mu  sync.Mutex // protects rng
	rng *rand.Rand
}

// NewSynth creates a synth; rng decides the octave echo
func NewSynth(sched Scheduler, dynamics DynamicsSource, rng *rand.Rand) *Synth {
	return &Synth{sched: sched, dynamics: dynamics, rng: rng}
}

// PlayChord plays root, third and fifth with staggered onsets and, at random,
// the root an octave up
func (s *Synth) PlayChord(root int) {
	s.mu.Lock()
	echo := s.rng.Float64() < constant.ChordEchoChance
	s.mu.Unlock()

	now := s.sched.Now()
	for _, n := range ChordNotes(root, echo) {
		s.PlayNote(constant.Scale[n.ScaleIndex]*n.Octave, now+n.Delay, n.Velocity)
	}
}

// PlayNote schedules a piano string voice and its hammer thud at start (scheduler seconds)
func (s *Synth) PlayNote(freq, start, velocity float64) {
	hit := HitForce(s.dynamics.Dynamics(), velocity)

	for _, v := range []Voice{
		{Kind: VoiceTone, Freq: freq, Start: start, Hit: hit},
		{Kind: VoiceThud, Freq: constant.ThudFreq, Start: start, Hit: hit},
	} {
		if err := s.sched.Submit(v); err != nil {
			log.Printf("synth: submit: %v", err)
			return
		}
	}
}
