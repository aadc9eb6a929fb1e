package render

import (
	"math"
	"sort"
	"sync"

	"github.com/lixenwraith/resonance/constant"
	"github.com/lixenwraith/resonance/parameter"
	"github.com/lixenwraith/resonance/scene"
)

type itemKind uint8

const (
	itemText itemKind = iota
	itemDust
)

// item is one projected element awaiting depth sort
type item struct {
	proj  Projection
	kind  itemKind
	index int     // into the frame's particle or dust slice
	blink float64 // dust only
}

// FrameStats summarises one composed frame
type FrameStats struct {
	Particles int
	Dust      int
	Edges     int
}

// Composer draws the scene store onto a Canvas, one frame per call
// Scratch slices are reused between frames; Frame is not safe for concurrent use
type Composer struct {
	cfg   *parameter.Config
	store *scene.Store

	viewMu sync.RWMutex
	view   Viewport

	frame scene.Frame
	items []item
	text  []Projection
}

// NewComposer creates a composer reading from store
func NewComposer(cfg *parameter.Config, store *scene.Store, view Viewport) *Composer {
	return &Composer{
		cfg:   cfg,
		store: store,
		view:  view,
	}
}

// SetViewport changes the screen-space mapping used from the next frame on
func (c *Composer) SetViewport(v Viewport) {
	c.viewMu.Lock()
	c.view = v
	c.viewMu.Unlock()
}

// Viewport returns the current render surface size
func (c *Composer) Viewport() Viewport {
	c.viewMu.RLock()
	defer c.viewMu.RUnlock()
	return c.view
}

// Frame composes the scene at time t (ms) with the given live parameters
// Order: clear, background glow, pulse decay, projection, depth sort, edges, points
func (c *Composer) Frame(t float64, live parameter.Snapshot, cv Canvas) FrameStats {
	view := c.Viewport()
	pr := NewProjector(c.cfg, view)
	omega := RotationSpeed(c.cfg, live)

	c.frame = c.store.Advance(c.cfg.PulseDecay, c.frame)
	hue := c.frame.Hue

	cv.Clear()
	c.drawGlow(cv, view, t, hue)

	c.items = c.items[:0]
	for i := range c.frame.Particles {
		c.items = append(c.items, item{
			proj:  pr.ProjectText(&c.frame.Particles[i], t, omega, live),
			kind:  itemText,
			index: i,
		})
	}
	for i := range c.frame.Dust {
		proj, blink := pr.ProjectDust(&c.frame.Dust[i], t, omega)
		c.items = append(c.items, item{proj: proj, kind: itemDust, index: i, blink: blink})
	}

	// Painter's order: farthest (smallest scale) first, nearer drawn over it
	sort.SliceStable(c.items, func(i, j int) bool {
		return c.items[i].proj.Scale < c.items[j].proj.Scale
	})

	c.text = c.text[:0]
	for _, it := range c.items {
		if it.kind == itemText {
			c.text = append(c.text, it.proj)
		}
	}
	edges := c.drawEdges(cv, hue)

	dyn := live.DynamicsLevel()
	for _, it := range c.items {
		switch it.kind {
		case itemText:
			c.drawGlyph(cv, &c.frame.Particles[it.index], it.proj, hue, dyn)
		case itemDust:
			c.drawDust(cv, &c.frame.Dust[it.index], it.proj, it.blink, hue)
		}
	}

	return FrameStats{
		Particles: len(c.frame.Particles),
		Dust:      len(c.frame.Dust),
		Edges:     edges,
	}
}

func (c *Composer) drawGlow(cv Canvas, view Viewport, t, hue float64) {
	glowHue := hue + math.Sin(t*c.cfg.GlowHueSpeed)*c.cfg.GlowHueSwing
	radius := math.Max(view.Width, view.Height) * constant.GlowRadiusFactor
	cv.Glow(view.Width/2, view.Height/constant.VerticalAnchor, radius,
		HSL(glowHue, constant.GlowSaturation, constant.GlowLightness))
}

// drawEdges links each near text point to close neighbours among the next
// EdgeWindow-1 points in depth order. Windowed on purpose: O(n·k), not all pairs
func (c *Composer) drawEdges(cv Canvas, hue float64) int {
	color := HSL(hue, constant.EdgeSaturation, constant.EdgeLightness)
	n := len(c.text)
	drawn := 0

	for i := 0; i < n; i++ {
		p1 := c.text[i]
		if p1.Scale < c.cfg.EdgeMinScale {
			continue
		}
		limit := c.cfg.ConnectionDist * p1.Scale
		end := min(i+c.cfg.EdgeWindow, n)
		for j := i + 1; j < end; j++ {
			p2 := c.text[j]
			dist := math.Hypot(p1.X-p2.X, p1.Y-p2.Y)
			if dist >= limit {
				continue
			}
			alpha := (1 - dist/limit) * constant.EdgeAlphaMax
			cv.Line(p1.X, p1.Y, p2.X, p2.Y, color, alpha)
			drawn++
		}
	}
	return drawn
}

func (c *Composer) drawGlyph(cv Canvas, p *scene.TextParticle, proj Projection, hue, dyn float64) {
	alpha := math.Max(constant.GlyphMinAlpha, proj.Alpha()-constant.GlyphAlphaOffset)
	size := (constant.GlyphBaseSize + p.Pulse*constant.GlyphPulseSize) * proj.Scale
	light := constant.GlyphLightness + dyn*constant.GlyphDynLight + p.Pulse*constant.GlyphPulseLight
	color := HSL(hue, constant.GlyphSaturation, light/100)

	glow := 0.0
	if p.Pulse > constant.GlyphGlowPulse {
		glow = constant.GlyphGlowBlur * proj.Scale
	}
	cv.Glyph(proj.X, proj.Y, p.Char, size, color, alpha, glow)
}

func (c *Composer) drawDust(cv Canvas, d *scene.DustMote, proj Projection, blink, hue float64) {
	color := HSL(hue, constant.DustSaturation, constant.DustLightness)
	cv.Dot(proj.X, proj.Y, d.Size*proj.Scale, color, blink*proj.Alpha())
}
