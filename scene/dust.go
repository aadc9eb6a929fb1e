package scene

import (
	"math"
	"math/rand"

	"github.com/lixenwraith/resonance/parameter"
	"github.com/lixenwraith/resonance/vmath"
)

// DustMote is an ambient background point with no relation to the text
type DustMote struct {
	Pos        vmath.Vec3F // world units, on the shell band outside the text sphere
	Size       float64
	BlinkSpeed float64 // rad/ms
	BlinkPhase float64
}

// BuildDust samples cfg.DustCount motes uniformly on the dust shell band
func BuildDust(cfg *parameter.Config, rng *rand.Rand) []DustMote {
	dust := make([]DustMote, cfg.DustCount)
	lo := cfg.DustRadius[0] * cfg.BaseRadius
	hi := cfg.DustRadius[1] * cfg.BaseRadius

	for i := range dust {
		dir := vmath.RandomUnit(rng)
		// Volume-uniform radius within the shell: cube-root of uniform r³
		u := rng.Float64()
		r := math.Cbrt(lo*lo*lo + u*(hi*hi*hi-lo*lo*lo))

		dust[i] = DustMote{
			Pos:        vmath.V3FScale(dir, r),
			Size:       vmath.Lerp(cfg.DustSize[0], cfg.DustSize[1], rng.Float64()),
			BlinkSpeed: vmath.Lerp(cfg.DustBlinkSpeed[0], cfg.DustBlinkSpeed[1], rng.Float64()),
			BlinkPhase: rng.Float64() * 2 * math.Pi,
		}
	}
	return dust
}
