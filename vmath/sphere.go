package vmath

import (
	"math"
	"math/rand"
)

// GoldenAngle is the azimuth increment of the Fibonacci sphere, π(3-√5)
var GoldenAngle = math.Pi * (3 - math.Sqrt(5))

// FibonacciSphere returns the unit direction of point i out of n spread evenly
// over the sphere surface. y runs linearly from +1 (i=0) to -1 (i=n-1) while the
// azimuth advances by the golden angle, giving near-uniform neighbour spacing.
// n < 2 has no spread and yields the north pole
func FibonacciSphere(i, n int) Vec3F {
	if n < 2 {
		return Vec3F{0, 1, 0}
	}

	y := 1 - (float64(i)/float64(n-1))*2
	r := math.Sqrt(math.Max(0, 1-y*y))
	theta := GoldenAngle * float64(i)

	// Renormalised so rounding near the poles stays on the unit sphere
	return V3FNormalize(Vec3F{
		X: math.Cos(theta) * r,
		Y: y,
		Z: math.Sin(theta) * r,
	})
}

// RandomUnit returns a direction uniformly distributed on the unit sphere
func RandomUnit(rng *rand.Rand) Vec3F {
	// Archimedes: uniform z and azimuth give uniform area coverage
	z := rng.Float64()*2 - 1
	phi := rng.Float64() * 2 * math.Pi
	r := math.Sqrt(1 - z*z)
	return Vec3F{X: r * math.Cos(phi), Y: z, Z: r * math.Sin(phi)}
}
