package engine

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/resonance/audio"
	"github.com/lixenwraith/resonance/clock"
	"github.com/lixenwraith/resonance/parameter"
	"github.com/lixenwraith/resonance/render"
	"github.com/lixenwraith/resonance/scene"
)

// AudioOutput is the synth back end: a voice scheduler with device control
type AudioOutput interface {
	audio.Scheduler
	Start() error
	Close() error
}

// Session wires text submissions to the scene store, the sequencer and the synth
// It is the single entry point for the host's controls
type Session struct {
	cfg      *parameter.Config
	live     *parameter.Live
	store    *scene.Store
	composer *render.Composer
	out      AudioOutput
	synth    *audio.Synth
	seq      *audio.Sequencer
	clock    clock.Clock

	rngMu sync.Mutex
	rng   *rand.Rand

	silent      atomic.Bool
	submissions atomic.Uint64
}

// NewSession creates an idle session; rng drives particle phases, dust and chord echoes
func NewSession(cfg *parameter.Config, live *parameter.Live, out AudioOutput, clk clock.Clock, rng *rand.Rand, view render.Viewport) *Session {
	store := scene.NewStore()
	s := &Session{
		cfg:      cfg,
		live:     live,
		store:    store,
		composer: render.NewComposer(cfg, store, view),
		out:      out,
		clock:    clk,
		rng:      rng,
	}
	s.synth = audio.NewSynth(out, live, rand.New(rand.NewSource(rng.Int63())))
	s.seq = audio.NewSequencer(clk, s.synth, store, live)
	return s
}

// SubmitText rebuilds the scene for text and restarts the sequencer from step 0
// Empty text is replaced by the configured fallback
func (s *Session) SubmitText(text string) {
	if text == "" {
		text = s.cfg.FallbackText
	}

	s.rngMu.Lock()
	particles := scene.BuildParticles(text, s.cfg, s.rng)
	dust := scene.BuildDust(s.cfg, s.rng)
	s.rngMu.Unlock()

	s.store.Replace(text, scene.Hue(text, s.cfg), particles, dust)

	if err := s.out.Start(); err != nil {
		// Visuals and pulses continue without sound
		if s.silent.CompareAndSwap(false, true) {
			log.Printf("session: audio unavailable, running silent: %v", err)
		}
	} else {
		s.silent.Store(false)
	}

	s.seq.Start(text)
	n := s.submissions.Add(1)
	log.Printf("session: submission %d, %d runes, %d particles", n, len([]rune(text)), len(particles))
}

// SetDynamics sets hit force, wobble and brightness (0-100, clamped)
func (s *Session) SetDynamics(v int) {
	s.live.SetDynamics(v)
}

// SetTempo sets rotation speed and step interval (0-100, clamped)
func (s *Session) SetTempo(v int) {
	s.live.SetTempo(v)
}

// ViewportResized changes the screen mapping; particles are untouched
func (s *Session) ViewportResized(width, height float64) {
	s.composer.SetViewport(render.Viewport{Width: width, Height: height})
}

// Stop halts the sequencer; sounding notes ring out
func (s *Session) Stop() {
	s.seq.Stop()
}

// Close stops the sequencer and releases audio
func (s *Session) Close() error {
	s.seq.Stop()
	if err := s.out.Close(); err != nil && !errors.Is(err, audio.ErrEngineClosed) {
		return err
	}
	return nil
}

// Run draws frames onto surface until ctx is cancelled
func (s *Session) Run(ctx context.Context, surface render.Surface) error {
	loop := render.NewLoop(s.composer, surface, s.live, s.clock, s.cfg.FPS)
	return loop.Run(ctx)
}

// State returns the sequencer play state
func (s *Session) State() audio.State {
	return s.seq.State()
}

// Silent reports whether the last submission ran without audio
func (s *Session) Silent() bool {
	return s.silent.Load()
}

func (s *Session) Live() *parameter.Live {
	return s.live
}

func (s *Session) Store() *scene.Store {
	return s.store
}

func (s *Session) Composer() *render.Composer {
	return s.composer
}

func (s *Session) Sequencer() *audio.Sequencer {
	return s.seq
}
