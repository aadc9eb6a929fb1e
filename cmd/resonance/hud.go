package main

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/resonance/audio"
	"github.com/lixenwraith/resonance/parameter"
	"github.com/lixenwraith/resonance/render"
	"github.com/lixenwraith/resonance/terminal"
)

const (
	hudRows        = 2
	gaugeWidth     = 20
	tuningDuration = 400 * time.Millisecond
	springFreq     = 6.0
	springDamping  = 0.6
)

// hudState is what the overlay shows besides the input line
type hudState struct {
	Live  parameter.Snapshot
	State audio.State
	Hue   float64
}

// gauge is a slider readout that eases toward its value
type gauge struct {
	label  string
	spring harmonica.Spring
	pos    float64
	vel    float64
}

func newGauge(label string, fps int, initial float64) gauge {
	return gauge{
		label:  label,
		spring: harmonica.NewSpring(harmonica.FPS(fps), springFreq, springDamping),
		pos:    initial,
	}
}

func (g *gauge) step(target float64) float64 {
	g.pos, g.vel = g.spring.Update(g.pos, g.vel, target)
	return g.pos
}

// hud is the bottom overlay: input line, counter, gauges and play state
// Edited from the event loop, drawn from the render loop
type hud struct {
	mu          sync.Mutex
	maxChars    int
	input       []rune
	tuningUntil time.Time
	now         func() time.Time
	state       func() hudState
	dynamics    gauge
	tempo       gauge
}

func newHUD(maxChars, fps int, now func() time.Time, state func() hudState) *hud {
	initial := state()
	return &hud{
		maxChars: maxChars,
		now:      now,
		state:    state,
		dynamics: newGauge("DYNAMICS", fps, float64(initial.Live.Dynamics)),
		tempo:    newGauge("TEMPO", fps, float64(initial.Live.Tempo)),
	}
}

// insert appends r unless the input is full
func (h *hud) insert(r rune) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.input) >= h.maxChars {
		return false
	}
	h.input = append(h.input, r)
	return true
}

func (h *hud) backspace() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.input) > 0 {
		h.input = h.input[:len(h.input)-1]
	}
}

func (h *hud) setInput(s string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	r := []rune(s)
	if len(r) > h.maxChars {
		r = r[:h.maxChars]
	}
	h.input = r
}

func (h *hud) text() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return string(h.input)
}

// markTuning shows the TUNING label for the submission delay
func (h *hud) markTuning() {
	h.mu.Lock()
	h.tuningUntil = h.now().Add(tuningDuration)
	h.mu.Unlock()
}

func (h *hud) tuning() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.now().Before(h.tuningUntil)
}

// draw is the surface overlay
func (h *hud) draw(screen tcell.Screen) {
	w, sh := screen.Size()
	if sh < hudRows || w <= 0 {
		return
	}
	st := h.state()

	h.mu.Lock()
	input := string(h.input)
	count := len(h.input)
	tuning := h.now().Before(h.tuningUntil)
	dyn := h.dynamics.step(float64(st.Live.Dynamics))
	tmp := h.tempo.step(float64(st.Live.Tempo))
	h.mu.Unlock()

	base := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorSilver)
	accent := base.Foreground(terminal.ToTcell(render.HSL(st.Hue, 0.8, 0.7)))
	dim := base.Foreground(tcell.ColorGray)

	top, bottom := sh-2, sh-1
	clearRow(screen, top, w, base)
	clearRow(screen, bottom, w, base)

	x := drawText(screen, 1, top, "> ", accent)
	x = drawText(screen, x, top, input, base.Bold(true))
	x = drawText(screen, x, top, "_", accent)
	counter := fmt.Sprintf("%d / %d", count, h.maxChars)
	drawText(screen, max(x+2, w-runewidth.StringWidth(counter)-1), top, counter, dim)

	x = drawGauge(screen, 1, bottom, h.dynamics.label, dyn, st.Live.Dynamics, accent, dim)
	x = drawGauge(screen, x+3, bottom, h.tempo.label, tmp, st.Live.Tempo, accent, dim)

	label := strings.ToUpper(st.State.String())
	if tuning {
		label = "TUNING..."
	}
	drawText(screen, x+3, bottom, label, accent.Bold(true))
}

func clearRow(screen tcell.Screen, y, w int, style tcell.Style) {
	for x := 0; x < w; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
}

// drawText writes s from x honouring rune widths; returns the column after it
func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x += max(1, runewidth.RuneWidth(r))
	}
	return x
}

// drawGauge renders "LABEL [████░░░░] 35" with the bar at the eased position
func drawGauge(screen tcell.Screen, x, y int, label string, pos float64, value int, fill, empty tcell.Style) int {
	x = drawText(screen, x, y, label+" ", empty)
	filled := int(pos/parameter.MaxLevel*gaugeWidth + 0.5)
	filled = max(0, min(filled, gaugeWidth))
	for i := 0; i < gaugeWidth; i++ {
		if i < filled {
			screen.SetContent(x+i, y, '█', nil, fill)
		} else {
			screen.SetContent(x+i, y, '░', nil, empty)
		}
	}
	return drawText(screen, x+gaugeWidth+1, y, fmt.Sprintf("%3d", value), fill)
}
