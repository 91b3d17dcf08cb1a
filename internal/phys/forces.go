package phys

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Force maps a body and a timestep to a force vector. Forces are summed per
// sub-step before integration, scaled by the body's inverse mass.
type Force func(obj *PhysicsObject, dt float64) mgl64.Vec3

// Constraint corrects a body in place after integration. Constraints run in
// registration order.
type Constraint func(obj *PhysicsObject)

// registry keeps insertion order while letting re-registration replace the
// function under an existing name without moving it.
type registry[T any] struct {
	names []string
	fns   map[string]T
}

func newRegistry[T any]() *registry[T] {
	return &registry[T]{fns: make(map[string]T)}
}

func (r *registry[T]) add(name string, fn T) {
	if _, ok := r.fns[name]; !ok {
		r.names = append(r.names, name)
	}
	r.fns[name] = fn
}

func (r *registry[T]) remove(name string) {
	if _, ok := r.fns[name]; !ok {
		return
	}
	delete(r.fns, name)
	for i, n := range r.names {
		if n == name {
			r.names = append(r.names[:i], r.names[i+1:]...)
			return
		}
	}
}

func (r *registry[T]) each(fn func(T)) {
	for _, name := range r.names {
		fn(r.fns[name])
	}
}

func (r *registry[T]) len() int { return len(r.names) }

// Gravity returns a constant-acceleration force (F = m*g).
func Gravity(g mgl64.Vec3) Force {
	return func(obj *PhysicsObject, _ float64) mgl64.Vec3 {
		return g.Mul(obj.Mass)
	}
}

// Drag returns a linear drag force opposing velocity.
func Drag(coeff float64) Force {
	return func(obj *PhysicsObject, _ float64) mgl64.Vec3 {
		return obj.Velocity.Mul(-coeff * obj.Mass)
	}
}

// Attraction pulls bodies toward a point with inverse-square falloff,
// clamped near the center to avoid blowups.
func Attraction(center mgl64.Vec3, strength float64) Force {
	return func(obj *PhysicsObject, _ float64) mgl64.Vec3 {
		diff := center.Sub(obj.Position)
		d2 := diff.LenSqr()
		if d2 < 0.25 {
			d2 = 0.25
		}
		return diff.Normalize().Mul(strength * obj.Mass / d2)
	}
}

// Floor keeps bodies above a plane, reflecting the vertical velocity with
// the body's own restitution.
func Floor(y float64) Constraint {
	return func(obj *PhysicsObject) {
		bottom := obj.Position.Y() - obj.Radius
		if bottom >= y {
			return
		}
		obj.Position[1] = y + obj.Radius
		if obj.Velocity.Y() < 0 {
			obj.Velocity[1] = -obj.Velocity.Y() * obj.Restitution
			obj.Velocity[0] *= 1 - obj.Friction
			obj.Velocity[2] *= 1 - obj.Friction
		}
	}
}

// Bounds clamps positions to an axis-aligned box, zeroing the velocity
// component that crossed.
func Bounds(min, max mgl64.Vec3) Constraint {
	return func(obj *PhysicsObject) {
		for i := 0; i < 3; i++ {
			if obj.Position[i] < min[i] {
				obj.Position[i] = min[i]
				if obj.Velocity[i] < 0 {
					obj.Velocity[i] = 0
				}
			} else if obj.Position[i] > max[i] {
				obj.Position[i] = max[i]
				if obj.Velocity[i] > 0 {
					obj.Velocity[i] = 0
				}
			}
		}
	}
}
