package audio

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/lixenwraith/resonance/constant"
)

func newHeadlessEngine(t *testing.T, cfg *Config) *Engine {
	t.Helper()
	if cfg == nil {
		cfg = DefaultConfig()
	}
	e := NewEngine(cfg, rand.New(rand.NewSource(1)))
	t.Cleanup(func() { e.Close() })
	return e
}

func stream(e *Engine, n int) [][2]float64 {
	buf := make([][2]float64, n)
	e.Stream(buf)
	return buf
}

func peak(buf [][2]float64) float64 {
	p := 0.0
	for _, s := range buf {
		p = math.Max(p, math.Max(math.Abs(s[0]), math.Abs(s[1])))
	}
	return p
}

// TestEngineStartsSuspended verifies output and clock are frozen until resumed
func TestEngineStartsSuspended(t *testing.T) {
	e := newHeadlessEngine(t, nil)

	if !e.Suspended() {
		t.Error("Expected new engine suspended")
	}
	lead := constant.AudioBufferDuration.Seconds()
	if p := peak(stream(e, 1024)); p != 0 {
		t.Errorf("Expected silence while suspended, got peak %f", p)
	}
	if math.Abs(e.Now()-lead) > 1e-12 {
		t.Errorf("Expected frozen clock at %fs, got %f", lead, e.Now())
	}

	e.Resume()
	stream(e, 441)
	if math.Abs(e.Now()-(lead+0.01)) > 1e-12 {
		t.Errorf("Expected clock at %fs, got %f", lead+0.01, e.Now())
	}
}

func TestEngineRendersTone(t *testing.T) {
	e := newHeadlessEngine(t, nil)
	e.Resume()

	e.Submit(Voice{Kind: VoiceTone, Freq: 261.63, Start: 0, Hit: 0.9})
	buf := stream(e, 4410)

	p := peak(buf)
	if p <= 0.01 {
		t.Errorf("Expected audible tone, got peak %f", p)
	}
	if p > 1 {
		t.Errorf("Expected limited output, got peak %f", p)
	}
	played, dropped, active := e.Stats()
	if played != 1 || dropped != 0 || active != 1 {
		t.Errorf("Expected 1 played, 0 dropped, 1 active, got %d %d %d", played, dropped, active)
	}
}

// TestEngineScheduledStart verifies a voice stays silent until its start time
func TestEngineScheduledStart(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ReverbSend = 0
	e := newHeadlessEngine(t, cfg)
	e.Resume()

	e.Submit(Voice{Kind: VoiceTone, Freq: 440, Start: 0.05, Hit: 0.9})
	buf := stream(e, 4410)

	start := int(0.05 * float64(constant.AudioSampleRate))
	if p := peak(buf[:start]); p != 0 {
		t.Errorf("Expected silence before start, got %f", p)
	}
	if p := peak(buf[start:]); p == 0 {
		t.Error("Expected sound after start")
	}
}

// TestEngineThudEnds verifies short voices are retired after they stop
func TestEngineThudEnds(t *testing.T) {
	e := newHeadlessEngine(t, nil)
	e.Resume()

	e.Submit(Voice{Kind: VoiceThud, Freq: constant.ThudFreq, Start: 0, Hit: 1})
	stream(e, 2205)
	if _, _, active := e.Stats(); active != 1 {
		t.Errorf("Expected thud active at 50ms, got %d", active)
	}
	stream(e, 4410)
	if _, _, active := e.Stats(); active != 0 {
		t.Errorf("Expected thud retired after 100ms, got %d", active)
	}
}

// TestEngineThudDry verifies the thud bypasses the reverb send
func TestEngineThudDry(t *testing.T) {
	e := newHeadlessEngine(t, nil)
	e.Resume()

	e.Submit(Voice{Kind: VoiceThud, Freq: constant.ThudFreq, Start: 0, Hit: 1})
	stream(e, 44100/5)
	if p := peak(stream(e, 44100/2)); p != 0 {
		t.Errorf("Expected no reverb tail from a dry voice, got %f", p)
	}
}

func TestEngineQueueFull(t *testing.T) {
	cfg := DefaultConfig()
	cfg.QueueSize = 2
	e := newHeadlessEngine(t, cfg)
	e.Resume()

	for i := 0; i < 3; i++ {
		if err := e.Submit(Voice{Kind: VoiceThud, Hit: 1}); err != nil {
			t.Fatalf("Unexpected submit error: %v", err)
		}
	}
	if _, dropped, _ := e.Stats(); dropped != 1 {
		t.Errorf("Expected 1 dropped voice, got %d", dropped)
	}
}

// TestEngineDiscardsWhileSuspended verifies voices submitted before output
// starts never reach the mixer
func TestEngineDiscardsWhileSuspended(t *testing.T) {
	e := newHeadlessEngine(t, nil)

	for i := 0; i < 5; i++ {
		if err := e.Submit(Voice{Kind: VoiceTone, Freq: 440, Start: 0, Hit: 0.9}); err != nil {
			t.Fatalf("Unexpected submit error: %v", err)
		}
	}

	e.Resume()
	if p := peak(stream(e, 4410)); p != 0 {
		t.Errorf("Expected silence after resume, got peak %f", p)
	}
	played, dropped, active := e.Stats()
	if played != 0 || dropped != 0 || active != 0 {
		t.Errorf("Expected nothing played or dropped, got %d %d %d", played, dropped, active)
	}
}

// TestEngineNowLeadsOutput verifies a voice started at Now survives the
// block the speaker mixes before the submit lands
func TestEngineNowLeadsOutput(t *testing.T) {
	e := newHeadlessEngine(t, nil)
	e.Resume()

	block := int(constant.AudioBufferDuration.Seconds() * constant.AudioSampleRate)
	now := e.Now()
	stream(e, block)
	e.Submit(Voice{Kind: VoiceThud, Freq: constant.ThudFreq, Start: now, Hit: 0.9})

	want := 0.9 * constant.ThudGain * constant.MasterGain
	if p := peak(stream(e, block)); p < 0.8*want || p > want+1e-9 {
		t.Errorf("Expected thud peak near %f, got %f", want, p)
	}
}

// TestEngineLateVoiceKeepsAttack verifies a voice whose start already passed
// is moved to the next block instead of starting mid-envelope
func TestEngineLateVoiceKeepsAttack(t *testing.T) {
	e := newHeadlessEngine(t, nil)
	e.Resume()

	stream(e, 3*2205)
	e.Submit(Voice{Kind: VoiceThud, Freq: constant.ThudFreq, Start: 0, Hit: 0.9})

	want := 0.9 * constant.ThudGain * constant.MasterGain
	if p := peak(stream(e, 2205)); p < 0.8*want || p > want+1e-9 {
		t.Errorf("Expected full thud from a late voice, got peak %f (want near %f)", p, want)
	}
}

func TestEngineClosed(t *testing.T) {
	e := newHeadlessEngine(t, nil)
	if err := e.Close(); err != nil {
		t.Fatalf("Unexpected close error: %v", err)
	}
	if err := e.Submit(Voice{}); !errors.Is(err, ErrEngineClosed) {
		t.Errorf("Expected ErrEngineClosed from Submit, got %v", err)
	}
	if err := e.Start(); !errors.Is(err, ErrEngineClosed) {
		t.Errorf("Expected ErrEngineClosed from Start, got %v", err)
	}
	if err := e.Close(); err != nil {
		t.Errorf("Expected second close to be a no-op, got %v", err)
	}
}

func TestEngineDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	e := newHeadlessEngine(t, cfg)

	if err := e.Start(); !errors.Is(err, ErrAudioUnavailable) {
		t.Errorf("Expected ErrAudioUnavailable, got %v", err)
	}
	if !e.Suspended() {
		t.Error("Expected engine to stay suspended after failed start")
	}
}

func TestSoftLimit(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{0.5, 0.5},
		{-0.8, -0.8},
	}
	for _, tt := range tests {
		if got := softLimit(tt.in); got != tt.want {
			t.Errorf("softLimit(%f): Expected %f, got %f", tt.in, tt.want, got)
		}
	}
	for _, v := range []float64{0.9, 2, 50, -3} {
		got := softLimit(v)
		if math.Abs(got) > 1 || math.Abs(got) < 0.8 {
			t.Errorf("softLimit(%f): Expected within (0.8, 1], got %f", v, got)
		}
	}
}

func TestDetune(t *testing.T) {
	if got := Detune(440, 1200); math.Abs(got-880) > 1e-9 {
		t.Errorf("Expected octave up 880, got %f", got)
	}
	if got := Detune(440, 0); got != 440 {
		t.Errorf("Expected unchanged 440, got %f", got)
	}
}

func TestTriangle(t *testing.T) {
	tests := []struct{ p, want float64 }{
		{0, 0}, {0.25, 1}, {0.5, 0}, {0.75, -1}, {0.875, -0.5},
	}
	for _, tt := range tests {
		if got := triangle(tt.p); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("triangle(%f): Expected %f, got %f", tt.p, tt.want, got)
		}
	}
}
