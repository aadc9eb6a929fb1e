package main

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/resonance/audio"
	"github.com/lixenwraith/resonance/parameter"
)

type fakeNow struct{ t time.Time }

func (f *fakeNow) Now() time.Time { return f.t }

func newTestHUD(maxChars int, st *hudState) (*hud, *fakeNow) {
	now := &fakeNow{t: time.Unix(100, 0)}
	return newHUD(maxChars, 60, now.Now, func() hudState { return *st }), now
}

// rowText reads a screen row back as a string
func rowText(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestHUDInputLimit(t *testing.T) {
	st := &hudState{Live: parameter.Snapshot{Dynamics: 35, Tempo: 45}}
	h, _ := newTestHUD(3, st)

	for _, r := range "abcd" {
		h.insert(r)
	}
	if got := h.text(); got != "abc" {
		t.Errorf("Expected input capped at 3 runes, got %q", got)
	}

	h.backspace()
	if got := h.text(); got != "ab" {
		t.Errorf("Expected backspace to remove a rune, got %q", got)
	}
	h.backspace()
	h.backspace()
	h.backspace()
	if got := h.text(); got != "" {
		t.Errorf("Expected empty input, got %q", got)
	}

	h.setInput("ñéíóú")
	if got := h.text(); got != "ñéí" {
		t.Errorf("Expected rune-wise truncation, got %q", got)
	}
}

func TestHUDTuningLabel(t *testing.T) {
	st := &hudState{Live: parameter.Snapshot{Dynamics: 35, Tempo: 45}}
	h, now := newTestHUD(50, st)

	h.markTuning()
	if !h.tuning() {
		t.Error("Expected tuning right after submit")
	}
	now.t = now.t.Add(tuningDuration)
	if h.tuning() {
		t.Error("Expected tuning label gone after its duration")
	}
}

func TestHUDDraw(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	defer sim.Fini()
	sim.SetSize(100, 10)

	st := &hudState{Live: parameter.Snapshot{Dynamics: 35, Tempo: 45}, State: audio.StatePlaying, Hue: 210}
	h, _ := newTestHUD(50, st)
	h.setInput("Piano")

	h.draw(sim)

	top := rowText(sim, 8)
	if !strings.Contains(top, "> Piano_") {
		t.Errorf("Expected input line, got %q", top)
	}
	if !strings.Contains(top, "5 / 50") {
		t.Errorf("Expected character counter, got %q", top)
	}

	bottom := rowText(sim, 9)
	for _, want := range []string{"DYNAMICS", "TEMPO", " 35", " 45", "PLAYING"} {
		if !strings.Contains(bottom, want) {
			t.Errorf("Expected %q in gauge row, got %q", want, bottom)
		}
	}

	h.markTuning()
	h.draw(sim)
	if bottom := rowText(sim, 9); !strings.Contains(bottom, "TUNING...") {
		t.Errorf("Expected TUNING label, got %q", bottom)
	}
}

// TestGaugeEases verifies the spring approaches a new target over frames
func TestGaugeEases(t *testing.T) {
	g := newGauge("X", 60, 0)

	first := g.step(100)
	if first <= 0 || first >= 100 {
		t.Errorf("Expected partial move on first frame, got %f", first)
	}
	for i := 0; i < 600; i++ {
		g.step(100)
	}
	if g.pos < 99 || g.pos > 101 {
		t.Errorf("Expected gauge settled near 100, got %f", g.pos)
	}
}

func TestHUDDrawTinyScreen(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	defer sim.Fini()
	sim.SetSize(10, 1)

	st := &hudState{}
	h, _ := newTestHUD(50, st)
	h.draw(sim)
}
