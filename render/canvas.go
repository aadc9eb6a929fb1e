package render

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Canvas is a 2D drawing target in virtual pixel coordinates
// Calls within a frame arrive in painter order: Clear, Glow, Lines, then Dots/Glyphs
type Canvas interface {
	Clear()
	// Glow paints a radial background gradient fading from c at the centre to black at radius
	Glow(cx, cy, radius float64, c colorful.Color)
	Line(x0, y0, x1, y1 float64, c colorful.Color, alpha float64)
	Dot(x, y, radius float64, c colorful.Color, alpha float64)
	// Glyph draws r centred at (x, y); glow > 0 adds a halo of that blur radius
	Glyph(x, y float64, r rune, size float64, c colorful.Color, alpha, glow float64)
}

// Surface is a Canvas that can present a finished frame
type Surface interface {
	Canvas
	Show()
}
