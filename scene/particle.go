package scene

import (
	"math"
	"math/rand"

	"github.com/lixenwraith/resonance/parameter"
	"github.com/lixenwraith/resonance/vmath"
)

// TextParticle is one glyph of the working string placed on the unit sphere
type TextParticle struct {
	Char   rune
	Index  int         // position in the working string
	Origin vmath.Vec3F // unit direction, fixed at creation
	Phase  float64     // radial wave offset, [0, 2π)
	Pulse  float64     // flash intensity, [0, 1]
}

// NewTextParticle places char at slot index of total on the Fibonacci sphere
func NewTextParticle(char rune, index, total int, rng *rand.Rand) TextParticle {
	return TextParticle{
		Char:   char,
		Index:  index,
		Origin: vmath.FibonacciSphere(index, total),
		Phase:  rng.Float64() * 2 * math.Pi,
	}
}

// BuildParticles creates one particle per non-space rune of the working string
// Spaces keep their slot on the sphere but spawn nothing
func BuildParticles(text string, cfg *parameter.Config, rng *rand.Rand) []TextParticle {
	work := WorkingString(text, cfg)
	particles := make([]TextParticle, 0, len(work))
	for i, r := range work {
		if r == ' ' {
			continue
		}
		particles = append(particles, NewTextParticle(r, i, len(work), rng))
	}
	return particles
}
