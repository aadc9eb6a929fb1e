package main

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/resonance/clock"
	"github.com/lixenwraith/resonance/engine"
	"github.com/lixenwraith/resonance/render"
)

// levelStep is the slider change per arrow key
const levelStep = 5

// viewportSource reports the drawable size after a terminal resize
type viewportSource interface {
	Resize() render.Viewport
}

// app routes terminal events to the session and the HUD
type app struct {
	session *engine.Session
	surface viewportSource
	hud     *hud
	clock   clock.Clock

	mu      sync.Mutex
	pending clock.Timer
}

func newApp(session *engine.Session, surface viewportSource, h *hud, clk clock.Clock) *app {
	return &app{session: session, surface: surface, hud: h, clock: clk}
}

// handleEvent returns false when the program should exit
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventResize:
		v := a.surface.Resize()
		a.session.ViewportResized(v.Width, v.Height)
	}
	return true
}

func (a *app) handleKey(ev *tcell.EventKey) bool {
	live := a.session.Live()

	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyEscape:
		a.cancelPending()
		a.session.Stop()
	case tcell.KeyEnter:
		a.submit(a.hud.text())
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.hud.backspace()
	case tcell.KeyUp:
		a.session.SetDynamics(live.Dynamics() + levelStep)
	case tcell.KeyDown:
		a.session.SetDynamics(live.Dynamics() - levelStep)
	case tcell.KeyRight:
		a.session.SetTempo(live.Tempo() + levelStep)
	case tcell.KeyLeft:
		a.session.SetTempo(live.Tempo() - levelStep)
	case tcell.KeyRune:
		a.hud.insert(ev.Rune())
	}
	return true
}

// submit shows TUNING and applies text once the label has had its moment
// A newer submission replaces one still waiting
func (a *app) submit(text string) {
	a.hud.markTuning()

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pending != nil {
		a.pending.Stop()
	}
	a.pending = a.clock.AfterFunc(tuningDuration, func() {
		a.session.SubmitText(text)
	})
}

func (a *app) cancelPending() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pending != nil {
		a.pending.Stop()
		a.pending = nil
	}
}
