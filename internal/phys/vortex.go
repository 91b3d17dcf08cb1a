package phys

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// Vortex is a drifting rotational attractor sampled by the wind force.
type Vortex struct {
	Position mgl64.Vec3
	Axis     mgl64.Vec3
	Strength float64
	Radius   float64
	Falloff  float64

	phase float64
	drift mgl64.Vec3
}

func randomVortex(rng *rand.Rand, extent float64) *Vortex {
	axis := mgl64.Vec3{
		rng.Float64()*2 - 1,
		rng.Float64()*2 - 1,
		rng.Float64()*2 - 1,
	}
	if axis.Len() < 1e-6 {
		axis = mgl64.Vec3{0, 1, 0}
	}
	return &Vortex{
		Position: mgl64.Vec3{
			(rng.Float64()*2 - 1) * extent,
			rng.Float64() * extent,
			(rng.Float64()*2 - 1) * extent,
		},
		Axis:     axis.Normalize(),
		Strength: 0.5 + rng.Float64()*2.0,
		Radius:   1.5 + rng.Float64()*3.0,
		Falloff:  1.0 + rng.Float64(),
		phase:    rng.Float64() * 2 * math.Pi,
		drift: mgl64.Vec3{
			(rng.Float64()*2 - 1) * 0.3,
			(rng.Float64()*2 - 1) * 0.1,
			(rng.Float64()*2 - 1) * 0.3,
		},
	}
}

// update drifts the vortex and slowly precesses its axis.
func (v *Vortex) update(dt, t float64) {
	v.Position = v.Position.Add(v.drift.Mul(dt))
	v.Position[1] += math.Sin(t*0.5+v.phase) * 0.2 * dt

	angle := 0.05 * dt
	rotated := mgl64.Vec3{
		v.Axis.X()*math.Cos(angle) - v.Axis.Z()*math.Sin(angle),
		v.Axis.Y(),
		v.Axis.X()*math.Sin(angle) + v.Axis.Z()*math.Cos(angle),
	}
	if l := rotated.Len(); l > 1e-9 {
		v.Axis = rotated.Mul(1 / l)
	}
}

// force is the tangential contribution of this vortex at p, zero outside
// its radius.
func (v *Vortex) force(p mgl64.Vec3) mgl64.Vec3 {
	diff := p.Sub(v.Position)
	d := diff.Len()
	if d >= v.Radius || d < 1e-9 {
		return mgl64.Vec3{}
	}
	falloff := 1 - math.Pow(d/v.Radius, v.Falloff)
	tangent := v.Axis.Cross(diff)
	if l := tangent.Len(); l > 1e-9 {
		tangent = tangent.Mul(1 / l)
	}
	return tangent.Mul(v.Strength * falloff)
}
