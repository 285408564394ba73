package systems

import (
	"math"

	"github.com/pthm-cable/anthill/components"
	"github.com/pthm-cable/anthill/config"
)

// ClampLength scales (x, z) down to maxLen if it is longer, preserving
// direction. Vectors already within the limit pass through unchanged.
func ClampLength(x, z, maxLen float32) (float32, float32) {
	mag := length(x, z)
	if mag <= maxLen || mag == 0 {
		return x, z
	}
	s := maxLen / mag
	return x * s, z * s
}

// Steer advances a velocity toward a desired heading using bounded
// steering forces. The desired direction is scaled to the agent's top
// speed, the correcting force is capped at the steering strength, and
// the resulting velocity is capped at the top speed. A zero desired
// direction decays the velocity toward rest under the same force cap.
func Steer(vel components.Velocity, desiredX, desiredZ, maxSpeed float32) components.Velocity {
	cfg := config.Cfg()
	strength := cfg.Derived.SteerStrength32
	dt := cfg.Derived.DT32

	dx, dz := normalize(desiredX, desiredZ)
	wantX := dx * maxSpeed
	wantZ := dz * maxSpeed

	forceX, forceZ := ClampLength((wantX-vel.X)*strength, (wantZ-vel.Z)*strength, strength)

	nx, nz := ClampLength(vel.X+forceX*dt, vel.Z+forceZ*dt, maxSpeed)
	return components.Velocity{X: nx, Z: nz}
}

// Yaw converts a velocity into a facing angle in radians measured from
// the +Z axis, negated on the -X side so the angle is signed. A zero
// velocity faces +Z.
func Yaw(vel components.Velocity) float32 {
	mag := length(vel.X, vel.Z)
	if mag == 0 {
		return 0
	}
	angle := float32(math.Acos(float64(vel.Z / mag)))
	if vel.X < 0 {
		angle = -angle
	}
	return angle
}
