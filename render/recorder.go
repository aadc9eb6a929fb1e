package render

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// OpKind identifies a recorded canvas call
type OpKind uint8

const (
	OpClear OpKind = iota
	OpGlow
	OpLine
	OpDot
	OpGlyph
)

// Op is one recorded canvas call
type Op struct {
	Kind   OpKind
	X, Y   float64
	X2, Y2 float64 // line end
	Size   float64 // dot radius, glyph size, glow radius
	Rune   rune
	Color  colorful.Color
	Alpha  float64
	Halo   float64
}

// Recorder is a Surface that records calls instead of drawing, for tests and
// headless runs
type Recorder struct {
	Ops   []Op
	Shows int
}

func (r *Recorder) Clear() {
	r.Ops = append(r.Ops[:0], Op{Kind: OpClear})
}

func (r *Recorder) Glow(cx, cy, radius float64, c colorful.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpGlow, X: cx, Y: cy, Size: radius, Color: c, Alpha: 1})
}

func (r *Recorder) Line(x0, y0, x1, y1 float64, c colorful.Color, alpha float64) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, X: x0, Y: y0, X2: x1, Y2: y1, Color: c, Alpha: alpha})
}

func (r *Recorder) Dot(x, y, radius float64, c colorful.Color, alpha float64) {
	r.Ops = append(r.Ops, Op{Kind: OpDot, X: x, Y: y, Size: radius, Color: c, Alpha: alpha})
}

func (r *Recorder) Glyph(x, y float64, ch rune, size float64, c colorful.Color, alpha, glow float64) {
	r.Ops = append(r.Ops, Op{Kind: OpGlyph, X: x, Y: y, Size: size, Rune: ch, Color: c, Alpha: alpha, Halo: glow})
}

func (r *Recorder) Show() {
	r.Shows++
}

// Count returns the number of recorded ops of kind k
func (r *Recorder) Count(k OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}
