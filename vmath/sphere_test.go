package vmath

import (
	"math"
	"math/rand"
	"testing"
)

// angleBetween returns the angle in radians between two unit vectors
func angleBetween(a, b Vec3F) float64 {
	d := a.X*b.X + a.Y*b.Y + a.Z*b.Z
	return math.Acos(Clamp(d, -1, 1))
}

// TestFibonacciSphereUnitNorm verifies every point lies on the unit sphere
func TestFibonacciSphereUnitNorm(t *testing.T) {
	for _, n := range []int{2, 3, 10, 120, 300, 1000} {
		for i := 0; i < n; i++ {
			p := FibonacciSphere(i, n)
			if mag := V3FMag(p); math.Abs(mag-1) > 1e-9 {
				t.Fatalf("n=%d i=%d: expected unit norm, got %f", n, i, mag)
			}
		}
	}
}

// TestFibonacciSpherePoles verifies y runs from the north to the south pole
func TestFibonacciSpherePoles(t *testing.T) {
	n := 50
	first := FibonacciSphere(0, n)
	last := FibonacciSphere(n-1, n)

	if first.Y != 1 {
		t.Errorf("Expected first point at y=1, got %f", first.Y)
	}
	if last.Y != -1 {
		t.Errorf("Expected last point at y=-1, got %f", last.Y)
	}

	prev := first.Y
	for i := 1; i < n; i++ {
		y := FibonacciSphere(i, n).Y
		if y >= prev {
			t.Fatalf("Expected y to decrease monotonically at i=%d", i)
		}
		prev = y
	}
}

// TestFibonacciSphereDegenerate verifies n<2 does not divide by zero
func TestFibonacciSphereDegenerate(t *testing.T) {
	for _, n := range []int{0, 1} {
		p := FibonacciSphere(0, n)
		if p != (Vec3F{0, 1, 0}) {
			t.Errorf("n=%d: expected north pole, got %+v", n, p)
		}
	}
}

// TestFibonacciSphereEvenSpacing checks nearest-neighbour angles are close to uniform
func TestFibonacciSphereEvenSpacing(t *testing.T) {
	n := 800
	pts := make([]Vec3F, n)
	for i := range pts {
		pts[i] = FibonacciSphere(i, n)
	}

	nearest := make([]float64, n)
	sum := 0.0
	for i := range pts {
		best := math.Pi
		for j := range pts {
			if i == j {
				continue
			}
			if a := angleBetween(pts[i], pts[j]); a < best {
				best = a
			}
		}
		nearest[i] = best
		sum += best
	}
	mean := sum / float64(n)

	// Skip the polar caps, where the spiral necessarily pinches
	outliers := 0
	for i := n / 20; i < n-n/20; i++ {
		if nearest[i] < mean*0.5 || nearest[i] > mean*1.5 {
			outliers++
		}
	}
	if outliers > 0 {
		t.Errorf("Expected near-uniform spacing, %d points deviate >50%% from mean %f", outliers, mean)
	}
}

// TestRandomUnit verifies random directions are normalised
func TestRandomUnit(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		if mag := V3FMag(RandomUnit(rng)); math.Abs(mag-1) > 1e-9 {
			t.Fatalf("Expected unit vector, got magnitude %f", mag)
		}
	}
}

// TestRotateYPreservesLength verifies rotation is rigid and leaves Y untouched
func TestRotateYPreservesLength(t *testing.T) {
	v := Vec3F{3, -2, 5}
	for _, angle := range []float64{0, 0.3, math.Pi / 2, math.Pi, 5.1} {
		r := V3FRotateY(v, angle)
		if math.Abs(V3FMag(r)-V3FMag(v)) > 1e-9 {
			t.Errorf("angle %f: length changed %f -> %f", angle, V3FMag(v), V3FMag(r))
		}
		if r.Y != v.Y {
			t.Errorf("angle %f: expected Y unchanged, got %f", angle, r.Y)
		}
	}

	q := V3FRotateY(Vec3F{1, 0, 0}, math.Pi/2)
	if math.Abs(q.X) > 1e-12 || math.Abs(q.Z-1) > 1e-12 {
		t.Errorf("Expected +X to rotate onto +Z, got %+v", q)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%f,%f,%f) = %f, want %f", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
	if ClampInt(110, 0, 100) != 100 || ClampInt(-5, 0, 100) != 0 {
		t.Error("ClampInt did not clamp to bounds")
	}
}
