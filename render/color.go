package render

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/resonance/vmath"
)

// HSL builds a colour from hue in degrees (any range) and saturation/lightness in [0,1]
func HSL(hue, sat, light float64) colorful.Color {
	h := math.Mod(hue, 360)
	if h < 0 {
		h += 360
	}
	return colorful.Hsl(h, vmath.Clamp(sat, 0, 1), vmath.Clamp(light, 0, 1)).Clamped()
}
