package terminal

import (
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/resonance/constant"
	"github.com/lixenwraith/resonance/render"
)

// Overlay draws directly on the screen after the scene is flushed
type Overlay func(screen tcell.Screen)

// Surface implements render.Surface on a tcell screen
// Virtual pixel (x, y) falls in cell (x/cellW, y/cellH)
type Surface struct {
	mu      sync.Mutex
	screen  tcell.Screen
	buf     *Buffer
	cellW   float64
	cellH   float64
	overlay Overlay
}

// NewSurface creates a surface sized to the screen
func NewSurface(screen tcell.Screen, cellW, cellH float64) *Surface {
	w, h := screen.Size()
	return &Surface{
		screen: screen,
		buf:    NewBuffer(w, h),
		cellW:  cellW,
		cellH:  cellH,
	}
}

// Resize re-reads the screen size; returns the new viewport in virtual pixels
func (s *Surface) Resize() render.Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, h := s.screen.Size()
	s.buf.Resize(w, h)
	return s.viewport(w, h)
}

// Viewport returns the surface size in virtual pixels
func (s *Surface) Viewport() render.Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, h := s.buf.Size()
	return s.viewport(w, h)
}

func (s *Surface) viewport(w, h int) render.Viewport {
	return render.Viewport{Width: float64(w) * s.cellW, Height: float64(h) * s.cellH}
}

// SetOverlay installs the function drawn on top of every frame
func (s *Surface) SetOverlay(o Overlay) {
	s.mu.Lock()
	s.overlay = o
	s.mu.Unlock()
}

// cell maps a virtual pixel to its cell
func (s *Surface) cell(x, y float64) (int, int) {
	return int(math.Floor(x / s.cellW)), int(math.Floor(y / s.cellH))
}

func (s *Surface) Clear() {
	s.mu.Lock()
	s.buf.Clear()
	s.mu.Unlock()
}

func (s *Surface) Glow(cx, cy, radius float64, c colorful.Color) {
	if radius <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	w, h := s.buf.Size()
	for y := 0; y < h; y++ {
		py := (float64(y) + 0.5) * s.cellH
		for x := 0; x < w; x++ {
			px := (float64(x) + 0.5) * s.cellW
			d := math.Hypot(px-cx, py-cy) / radius
			if d >= 1 {
				continue
			}
			s.buf.SetBg(x, y, c, BlendMaxBg, math.Pow(1-d, constant.TermGlowFalloff))
		}
	}
}

// Line walks the segment cell by cell (DDA) with a rune matching its slope
func (s *Surface) Line(x0, y0, x1, y1 float64, c colorful.Color, alpha float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := slopeRune(x1-x0, y1-y0)
	a := alpha * constant.TermLineGain

	cx0, cy0 := s.cell(x0, y0)
	cx1, cy1 := s.cell(x1, y1)
	dx, dy := cx1-cx0, cy1-cy0
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		return
	}
	// Endpoints belong to the glyphs; only interior cells get stroke runes
	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps)
		x := cx0 + int(math.Round(float64(dx)*t))
		y := cy0 + int(math.Round(float64(dy)*t))
		s.buf.Set(x, y, r, c, Black, BlendAlphaFg, a, false)
	}
}

func (s *Surface) Dot(x, y, radius float64, c colorful.Color, alpha float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cx, cy := s.cell(x, y)
	s.buf.Set(cx, cy, dotRune(radius), c, Black, BlendAlphaFg, alpha*constant.TermDotGain, false)
}

func (s *Surface) Glyph(x, y float64, ch rune, size float64, c colorful.Color, alpha, glow float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cx, cy := s.cell(x, y)
	if glow > 0 {
		s.halo(cx, cy, glow, c)
	}
	s.buf.Set(cx, cy, ch, c, Black, BlendAlphaFg, alpha, size >= constant.TermBoldSize)
}

// halo tints the background of cells within glow virtual pixels of (cx, cy)
func (s *Surface) halo(cx, cy int, glow float64, c colorful.Color) {
	rx := int(math.Ceil(glow / s.cellW))
	ry := int(math.Ceil(glow / s.cellH))
	for dy := -ry; dy <= ry; dy++ {
		for dx := -rx; dx <= rx; dx++ {
			d := math.Hypot(float64(dx)*s.cellW, float64(dy)*s.cellH) / glow
			if d >= 1 {
				continue
			}
			s.buf.SetBg(cx+dx, cy+dy, c, BlendAddBg, (1-d)*constant.TermHaloAlpha)
		}
	}
}

// Show flushes the buffer, draws the overlay and presents the screen
func (s *Surface) Show() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf.Flush(s.screen)
	if s.overlay != nil {
		s.overlay(s.screen)
	}
	s.screen.Show()
}

// At returns the composed cell, for inspection
func (s *Surface) At(x, y int) Cell {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.At(x, y)
}

// slopeRune picks a stroke rune from the on-screen direction (y grows down)
func slopeRune(dx, dy float64) rune {
	angle := math.Atan2(-dy, dx) * 180 / math.Pi
	if angle < 0 {
		angle += 180
	}
	switch {
	case angle < 22.5 || angle >= 157.5:
		return '─'
	case angle < 67.5:
		return '╱'
	case angle < 112.5:
		return '│'
	default:
		return '╲'
	}
}

func dotRune(radius float64) rune {
	switch {
	case radius < constant.TermDotSmall:
		return '·'
	case radius < constant.TermDotMedium:
		return '∙'
	default:
		return '•'
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
