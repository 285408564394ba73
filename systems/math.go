package systems

import (
	"math"
	"math/rand"
)

// length returns the magnitude of a 2D vector on the ground plane.
func length(x, z float32) float32 {
	return float32(math.Sqrt(float64(x*x + z*z)))
}

// normalize returns the unit vector of (x, z), or (0, 0) for a zero vector.
func normalize(x, z float32) (float32, float32) {
	mag := length(x, z)
	if mag == 0 {
		return 0, 0
	}
	return x / mag, z / mag
}

// distSq returns the squared distance between two points.
func distSq(x1, z1, x2, z2 float32) float32 {
	dx := x1 - x2
	dz := z1 - z2
	return dx*dx + dz*dz
}

// randUnit returns a uniformly distributed unit vector.
func randUnit(rng *rand.Rand) (float32, float32) {
	a := rng.Float64() * 2 * math.Pi
	return float32(math.Cos(a)), float32(math.Sin(a))
}

// maxFloat returns the larger of two float32 values.
func maxFloat(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
