package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/resonance/clock"
	"github.com/lixenwraith/resonance/constant"
)

// State is the sequencer play state
type State int

const (
	StateIdle State = iota
	StatePlaying
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	default:
		return "idle"
	}
}

// ChordPlayer sounds a chord rooted at a scale index
type ChordPlayer interface {
	PlayChord(root int)
}

// Pulser flashes the particle at an index, reporting whether one exists
type Pulser interface {
	Pulse(i int) bool
}

// TempoSource supplies the current tempo level (0-100)
type TempoSource interface {
	Tempo() int
}

// Step is one sequencer slot: a chord root and the particle it flashes
type Step struct {
	ScaleIndex int
	Particle   int
}

// BuildSequence maps every rune of text, spaces included, to a step
func BuildSequence(text string) []Step {
	runes := []rune(text)
	seq := make([]Step, len(runes))
	for i, r := range runes {
		seq[i] = Step{ScaleIndex: int(r) % constant.ScaleLen, Particle: i}
	}
	return seq
}

// DelayForTempo returns the step interval for a tempo level
func DelayForTempo(tempo int) time.Duration {
	d := constant.StepBase - time.Duration(tempo)*constant.StepPerTempo
	if d < constant.StepFloor {
		d = constant.StepFloor
	}
	return d
}

// Sequencer steps through a text's sequence, one chord and one pulse per tick
// Each Start begins a new generation; a tick from an older generation never reschedules
type Sequencer struct {
	clock  clock.Clock
	player ChordPlayer
	pulser Pulser
	tempo  TempoSource

	mu    sync.Mutex
	seq   []Step
	step  int
	gen   uint64
	timer clock.Timer
	state State

	ticks atomic.Uint64
}

// NewSequencer creates an idle sequencer
func NewSequencer(clk clock.Clock, player ChordPlayer, pulser Pulser, tempo TempoSource) *Sequencer {
	return &Sequencer{
		clock:  clk,
		player: player,
		pulser: pulser,
		tempo:  tempo,
	}
}

// Start replaces the sequence, fires step 0 immediately and schedules the rest
func (s *Sequencer) Start(text string) {
	s.mu.Lock()
	s.cancelLocked()
	s.gen++
	s.seq = BuildSequence(text)
	s.step = 0
	if len(s.seq) == 0 {
		s.state = StateIdle
		s.mu.Unlock()
		return
	}
	s.state = StatePlaying
	gen := s.gen
	s.mu.Unlock()

	s.tick(gen)
}

// Stop cancels the pending tick; notes already sounding ring out
func (s *Sequencer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	s.gen++
	s.state = StateIdle
}

func (s *Sequencer) cancelLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// tick plays the current step and reschedules if gen is still current
func (s *Sequencer) tick(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.state != StatePlaying {
		s.mu.Unlock()
		return
	}
	st := s.seq[s.step]
	s.step = (s.step + 1) % len(s.seq)
	delay := DelayForTempo(s.tempo.Tempo())
	s.mu.Unlock()

	s.player.PlayChord(st.ScaleIndex)
	s.pulser.Pulse(st.Particle)
	s.ticks.Add(1)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen || s.state != StatePlaying {
		return
	}
	s.timer = s.clock.AfterFunc(delay, func() { s.tick(gen) })
}

// State returns the play state
func (s *Sequencer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Position returns the next step index and the sequence length
func (s *Sequencer) Position() (step, length int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step, len(s.seq)
}

// Ticks returns the number of steps played
func (s *Sequencer) Ticks() uint64 {
	return s.ticks.Load()
}
