package terminal

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// BlendMode defines compositing operations using a bitmask (Flags | Op)
type BlendMode uint8

// Blend operations (0-15)
const (
	opReplace uint8 = 0x00
	opAlpha   uint8 = 0x01
	opAdd     uint8 = 0x02
	opMax     uint8 = 0x03
	opScreen  uint8 = 0x04
)

// Blend flags
const (
	flagBg uint8 = 0x10
	flagFg uint8 = 0x20
)

// Pre-defined blend modes
const (
	BlendReplace = BlendMode(opReplace | flagBg | flagFg)
	BlendAlpha   = BlendMode(opAlpha | flagBg | flagFg)
	BlendAdd     = BlendMode(opAdd | flagBg | flagFg)
	BlendScreen  = BlendMode(opScreen | flagBg | flagFg)

	BlendFgOnly  = BlendMode(opReplace | flagFg)
	BlendAlphaFg = BlendMode(opAlpha | flagFg)
	BlendAlphaBg = BlendMode(opAlpha | flagBg)
	BlendMaxBg   = BlendMode(opMax | flagBg)
	BlendAddBg   = BlendMode(opAdd | flagBg)
)

// Black is the cleared background
var Black = colorful.Color{}

// blend applies op to dst with src at alpha
func blend(op uint8, dst, src colorful.Color, alpha float64) colorful.Color {
	switch op {
	case opAlpha:
		return dst.BlendRgb(src, clamp01(alpha))
	case opAdd:
		return colorful.Color{
			R: dst.R + src.R*alpha,
			G: dst.G + src.G*alpha,
			B: dst.B + src.B*alpha,
		}.Clamped()
	case opMax:
		return colorful.Color{
			R: math.Max(dst.R, src.R*alpha),
			G: math.Max(dst.G, src.G*alpha),
			B: math.Max(dst.B, src.B*alpha),
		}
	case opScreen:
		return colorful.Color{
			R: 1 - (1-dst.R)*(1-src.R*alpha),
			G: 1 - (1-dst.G)*(1-src.G*alpha),
			B: 1 - (1-dst.B)*(1-src.B*alpha),
		}.Clamped()
	default:
		return src
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
