package terminal

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Cell is one character position of the composed frame
type Cell struct {
	Rune rune
	Fg   colorful.Color
	Bg   colorful.Color
	Bold bool
}

// Buffer is a cell compositor flushed to a tcell screen once per frame
type Buffer struct {
	cells  []Cell
	width  int
	height int
}

// NewBuffer creates a buffer with the specified dimensions
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *Buffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Size returns the buffer dimensions in cells
func (b *Buffer) Size() (int, int) {
	return b.width, b.height
}

// Clear resets all cells to empty using exponential copy
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Fg: Black, Bg: Black}
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// At returns the cell at (x, y), zero Cell when out of bounds
func (b *Buffer) At(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// Set composites a cell with the specified blend mode
// A zero rune keeps the existing rune and bold flag
func (b *Buffer) Set(x, y int, r rune, fg, bg colorful.Color, mode BlendMode, alpha float64, bold bool) {
	if !b.inBounds(x, y) {
		return
	}
	dst := &b.cells[y*b.width+x]

	op := uint8(mode) & 0x0F
	flags := uint8(mode) & 0xF0

	if r != 0 {
		dst.Rune = r
		dst.Bold = bold
	}
	if flags&flagBg != 0 {
		dst.Bg = blend(op, dst.Bg, bg, alpha)
	}
	if flags&flagFg != 0 {
		// Glyph colour is composited against the cell background, not the previous glyph
		base := dst.Bg
		if op == opReplace {
			base = dst.Fg
		}
		dst.Fg = blend(op, base, fg, alpha)
	}
}

// SetBg updates the background while preserving rune and foreground
func (b *Buffer) SetBg(x, y int, bg colorful.Color, mode BlendMode, alpha float64) {
	if !b.inBounds(x, y) {
		return
	}
	dst := &b.cells[y*b.width+x]
	dst.Bg = blend(uint8(mode)&0x0F, dst.Bg, bg, alpha)
}

// Flush writes every cell to the screen; the caller calls Show
func (b *Buffer) Flush(screen tcell.Screen) {
	for y := 0; y < b.height; y++ {
		row := b.cells[y*b.width : (y+1)*b.width]
		for x := range row {
			c := &row[x]
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			style := tcell.StyleDefault.
				Foreground(ToTcell(c.Fg)).
				Background(ToTcell(c.Bg)).
				Bold(c.Bold)
			screen.SetContent(x, y, r, nil, style)
		}
	}
}

// ToTcell converts a colour to a tcell true colour
func ToTcell(c colorful.Color) tcell.Color {
	r, g, bl := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(bl))
}
