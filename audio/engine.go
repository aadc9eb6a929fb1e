package audio

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/resonance/constant"
)

// Engine is the synth output: a beep streamer mixing queued voices through
// a dry bus and a convolution reverb send, then master volume and a soft limiter
// Stream may be driven by the speaker or directly (headless)
type Engine struct {
	config *Config
	rate   beep.SampleRate

	queue chan Voice
	ctrl  *beep.Ctrl
	out   beep.Streamer

	mu          sync.Mutex // protects initialized
	initialized bool
	closed      atomic.Bool

	// Accessed only by the stream goroutine
	voices []*voiceState
	dry    []float64
	wet    []float64
	wetL   []float64
	wetR   []float64
	reverb [2]*Convolver

	sample    atomic.Int64
	lookahead int64 // samples; one speaker buffer
	running   atomic.Bool
	active    atomic.Int32
	played  atomic.Uint64
	dropped atomic.Uint64
}

// NewEngine creates a suspended engine; rng seeds the reverb impulse response
func NewEngine(cfg *Config, rng *rand.Rand) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	e := &Engine{
		config: cfg,
		rate:   beep.SampleRate(cfg.SampleRate),
		queue:  make(chan Voice, cfg.QueueSize),
		voices: make([]*voiceState, 0, 32),
	}
	e.lookahead = int64(e.rate.N(cfg.BufferDuration))

	ir := NewImpulseResponse(cfg.SampleRate, constant.ReverbSeconds, constant.ReverbDecay, rng)
	e.reverb[0] = NewConvolver(ir[0], cfg.ReverbBlock)
	e.reverb[1] = NewConvolver(ir[1], cfg.ReverbBlock)

	mixed := beep.StreamerFunc(e.mix)
	e.out = limiter(newVolume(mixed, cfg.MasterVolume))
	e.ctrl = &beep.Ctrl{Streamer: e.out, Paused: true}
	return e
}

// SampleRate returns the output sample rate
func (e *Engine) SampleRate() beep.SampleRate {
	return e.rate
}

// Now returns the earliest start time in seconds a voice submitted now can
// still meet: the mixed sample count plus one speaker buffer of lookahead
// It only advances while streaming
func (e *Engine) Now() float64 {
	return float64(e.sample.Load()+e.lookahead) / float64(e.rate)
}

// Init acquires the audio device once; later calls are no-ops
func (e *Engine) Init() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed.Load() {
		return ErrEngineClosed
	}
	if e.initialized {
		return nil
	}
	if !e.config.Enabled {
		return fmt.Errorf("%w: disabled by configuration", ErrAudioUnavailable)
	}

	if err := speaker.Init(e.rate, e.rate.N(e.config.BufferDuration)); err != nil {
		return fmt.Errorf("%w: %v", ErrAudioUnavailable, err)
	}
	speaker.Play(e.ctrl)
	e.initialized = true
	return nil
}

// Start initialises the device if needed and resumes output
func (e *Engine) Start() error {
	if err := e.Init(); err != nil {
		return err
	}
	e.setPaused(false)
	return nil
}

// Resume unpauses output without touching the device, for headless use
func (e *Engine) Resume() {
	e.setPaused(false)
}

// Suspend pauses output and freezes the engine clock; queued voices wait
// and new submissions are discarded until resumed
func (e *Engine) Suspend() {
	e.setPaused(true)
}

// Suspended reports whether output is paused
func (e *Engine) Suspended() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return e.ctrl.Paused
}

func (e *Engine) setPaused(p bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.running.Store(!p)
	if e.initialized {
		speaker.Lock()
		e.ctrl.Paused = p
		speaker.Unlock()
		return
	}
	e.ctrl.Paused = p
}

// Submit queues a voice; a full queue drops it
// Voices submitted while suspended are discarded so they cannot pile up and
// sound together on resume
func (e *Engine) Submit(v Voice) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}
	if !e.running.Load() {
		return nil
	}
	select {
	case e.queue <- v:
	default:
		if e.dropped.Add(1) == 1 {
			log.Printf("audio: voice queue full, dropping voices")
		}
	}
	return nil
}

// Close stops output and releases the device
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}
	e.Suspend()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.initialized {
		speaker.Clear()
		speaker.Close()
		e.initialized = false
	}
	return nil
}

// Stats returns played and dropped voice counts and voices currently sounding
func (e *Engine) Stats() (played, dropped uint64, active int) {
	return e.played.Load(), e.dropped.Load(), int(e.active.Load())
}

// Stream implements beep.Streamer through the pause control
func (e *Engine) Stream(samples [][2]float64) (int, bool) {
	return e.ctrl.Stream(samples)
}

func (e *Engine) Err() error {
	return nil
}

// mix renders one block: drain queue, voices to dry/wet, reverb, stereo out
func (e *Engine) mix(samples [][2]float64) (int, bool) {
	n := len(samples)
	e.grow(n)
	dry, wet := e.dry[:n], e.wet[:n]
	for i := range dry {
		dry[i] = 0
		wet[i] = 0
	}

	s0 := e.sample.Load()
	e.drainQueue(s0)
	remaining := e.voices[:0]
	for _, vs := range e.voices {
		if vs.render(dry, wet, s0) {
			remaining = append(remaining, vs)
		}
	}
	for i := len(remaining); i < len(e.voices); i++ {
		e.voices[i] = nil
	}
	e.voices = remaining
	e.active.Store(int32(len(e.voices)))

	wetL, wetR := e.wetL[:n], e.wetR[:n]
	e.reverb[0].Process(wet, wetL)
	e.reverb[1].Process(wet, wetR)

	send := e.config.ReverbSend
	for i := range samples {
		samples[i][0] = dry[i] + wetL[i]*send
		samples[i][1] = dry[i] + wetR[i]*send
	}

	e.sample.Add(int64(n))
	return n, true
}

// drainQueue moves every waiting voice into the active set
// A voice whose start already passed is moved to s0 so its attack is not cut
func (e *Engine) drainQueue(s0 int64) {
	rate := float64(e.rate)
	for {
		select {
		case v := <-e.queue:
			if int64(math.Round(v.Start*rate)) < s0 {
				v.Start = float64(s0) / rate
			}
			e.voices = append(e.voices, newVoiceState(v, rate))
			e.played.Add(1)
		default:
			return
		}
	}
}

func (e *Engine) grow(n int) {
	if cap(e.dry) >= n {
		return
	}
	e.dry = make([]float64, n)
	e.wet = make([]float64, n)
	e.wetL = make([]float64, n)
	e.wetR = make([]float64, n)
}

// newVolume wraps s in a beep volume effect at linear gain vol
// math.Log2(0) is -Inf, so zero volume is made silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// limiter applies softLimit to both channels
func limiter(s beep.Streamer) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := s.Stream(samples)
		for i := range samples[:n] {
			samples[i][0] = softLimit(samples[i][0])
			samples[i][1] = softLimit(samples[i][1])
		}
		return n, ok
	})
}

// softLimit compresses above ±0.8, then hard clips at ±1
func softLimit(v float64) float64 {
	if v > 0.8 {
		v = 0.8 + 0.2*(1.0-1.0/(1.0+(v-0.8)*5.0))
	} else if v < -0.8 {
		v = -0.8 - 0.2*(1.0-1.0/(1.0+(-v-0.8)*5.0))
	}

	if v > 1.0 {
		v = 1.0
	} else if v < -1.0 {
		v = -1.0
	}
	return v
}
