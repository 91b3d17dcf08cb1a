// Package scene holds the minimal scene graph the simulation core mutates:
// transform targets for animated objects and a container for visual
// primitives (particles, bodies, meshes). Rendering is someone else's job.
package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is a position/rotation/scale triple. Rotation is Euler radians.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    mgl64.Vec3
}

func IdentityTransform() Transform {
	return Transform{Scale: mgl64.Vec3{1, 1, 1}}
}

// Object is an animation/physics target: a named transform with an optional
// vertex buffer for geometry-deforming animations.
type Object struct {
	Name      string
	Transform Transform
	Geometry  []mgl64.Vec3
}

func NewObject(name string) *Object {
	return &Object{Name: name, Transform: IdentityTransform()}
}

func (o *Object) Kind() string { return "object" }

// Primitive is anything a Scene can hold.
type Primitive interface {
	Kind() string
}

// Scene is the add/remove container the emitter and engine populate.
type Scene interface {
	Add(Primitive)
	Remove(Primitive)
}

// Stage is the default in-memory Scene.
type Stage struct {
	prims []Primitive
}

func NewStage() *Stage {
	return &Stage{prims: make([]Primitive, 0, 64)}
}

func (s *Stage) Add(p Primitive) {
	s.prims = append(s.prims, p)
}

func (s *Stage) Remove(p Primitive) {
	for i, q := range s.prims {
		if q == p {
			s.prims[i] = s.prims[len(s.prims)-1]
			s.prims = s.prims[:len(s.prims)-1]
			return
		}
	}
}

func (s *Stage) Len() int { return len(s.prims) }

// Each visits primitives until fn returns false.
func (s *Stage) Each(fn func(Primitive) bool) {
	for _, p := range s.prims {
		if !fn(p) {
			return
		}
	}
}

// SphereGeometry builds a lat/long shell of vertices. Used as the fallback
// buffer when a geometry-deforming animation targets an object without one.
func SphereGeometry(radius float64, rings, segments int) []mgl64.Vec3 {
	if rings < 2 {
		rings = 2
	}
	if segments < 3 {
		segments = 3
	}
	verts := make([]mgl64.Vec3, 0, (rings+1)*segments)
	for r := 0; r <= rings; r++ {
		phi := math.Pi * float64(r) / float64(rings)
		for s := 0; s < segments; s++ {
			theta := 2 * math.Pi * float64(s) / float64(segments)
			verts = append(verts, mgl64.Vec3{
				radius * math.Sin(phi) * math.Cos(theta),
				radius * math.Cos(phi),
				radius * math.Sin(phi) * math.Sin(theta),
			})
		}
	}
	return verts
}
