// Package phys implements the physics world: rigid bodies, soft bodies and
// cloth, named force/constraint registries, sub-stepped integration, and
// sphere-based collision detection with impulse resolution.
//
// All mutation happens synchronously inside Step; the package assumes a
// single writer. Registration calls belong outside the per-frame hot path.
package phys

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/san-kum/motionlab/internal/scene"
)

// Config tunes the world. DefaultConfig matches a 60fps visualization.
type Config struct {
	Gravity        mgl64.Vec3
	FixedStep      float64
	MaxSubSteps    int
	SubStepping    bool
	SleepThreshold float64
	VortexExtent   float64
	Seed           int64
}

func DefaultConfig() Config {
	return Config{
		Gravity:        mgl64.Vec3{0, -9.8, 0},
		FixedStep:      1.0 / 120.0,
		MaxSubSteps:    4,
		SubStepping:    true,
		SleepThreshold: DefaultSleepThreshold,
		VortexExtent:   4.0,
		Seed:           1,
	}
}

// World owns every simulated body. Bodies are created via the factory
// methods and removed only by explicit Remove calls.
type World struct {
	cfg Config
	log *zap.Logger
	rng *rand.Rand

	bodies []*PhysicsObject
	softs  []*SoftBody
	cloths []*Cloth
	groups map[string][]*PhysicsObject

	forces      *registry[Force]
	constraints *registry[Constraint]

	vortices []*Vortex

	time   float64
	nextID int

	skippedShapes map[[2]ColliderShape]bool
}

func NewWorld(cfg Config, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.FixedStep <= 0 {
		cfg.FixedStep = 1.0 / 120.0
	}
	if cfg.MaxSubSteps <= 0 {
		cfg.MaxSubSteps = 4
	}
	if cfg.SleepThreshold <= 0 {
		cfg.SleepThreshold = DefaultSleepThreshold
	}
	w := &World{
		cfg:           cfg,
		log:           log,
		rng:           rand.New(rand.NewSource(cfg.Seed)),
		groups:        make(map[string][]*PhysicsObject),
		forces:        newRegistry[Force](),
		constraints:   newRegistry[Constraint](),
		skippedShapes: make(map[[2]ColliderShape]bool),
	}
	return w
}

// CreateObject builds a rigid body from params, applying defaults for
// missing optional fields, and registers it with its collision group.
func (w *World) CreateObject(p ObjectParams) *PhysicsObject {
	if p.Mass <= 0 {
		p.Mass = 1.0
	}
	if p.Radius <= 0 {
		p.Radius = 1.0
	}
	if p.Group == "" {
		p.Group = "default"
	}
	shape := ColliderSphere
	if p.NoCollider {
		shape = ColliderNone
	}

	obj := &PhysicsObject{
		Position:     p.Position,
		Velocity:     p.Velocity,
		Rotation:     p.Rotation,
		Mass:         p.Mass,
		InvMass:      1.0 / p.Mass,
		Restitution:  p.Restitution,
		Friction:     p.Friction,
		Shape:        shape,
		Radius:       p.Radius,
		Group:        p.Group,
		CollidesWith: p.CollidesWith,
		Static:       p.Static,
		OnCollision:  p.OnCollision,
		UserData:     p.UserData,
		id:           w.nextID,
	}
	if p.Static {
		obj.InvMass = 0
	}
	w.nextID++
	w.bodies = append(w.bodies, obj)
	w.groups[obj.Group] = append(w.groups[obj.Group], obj)
	return obj
}

// CreateSoftBody builds a deformable mesh from the target's geometry. When
// the target has no geometry a fallback sphere shell is substituted and a
// warning logged.
func (w *World) CreateSoftBody(target *scene.Object, p SoftBodyParams) *SoftBody {
	if target == nil {
		target = scene.NewObject("softbody")
	}
	if len(target.Geometry) == 0 {
		w.log.Warn("soft body target has no geometry, substituting sphere shell",
			zap.String("target", target.Name))
		target.Geometry = scene.SphereGeometry(1.0, 6, 8)
	}
	sb := newSoftBody(target, p)
	w.softs = append(w.softs, sb)
	return sb
}

// CreateCloth builds a grid cloth anchored along its top row.
func (w *World) CreateCloth(target *scene.Object, p ClothParams) *Cloth {
	if target == nil {
		target = scene.NewObject("cloth")
	}
	cloth := newCloth(target, p)
	w.softs = append(w.softs, &cloth.SoftBody)
	w.cloths = append(w.cloths, cloth)
	return cloth
}

// Remove disposes a rigid body. There is no automatic garbage pass.
func (w *World) Remove(obj *PhysicsObject) {
	for i, b := range w.bodies {
		if b == obj {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	members := w.groups[obj.Group]
	for i, b := range members {
		if b == obj {
			w.groups[obj.Group] = append(members[:i], members[i+1:]...)
			return
		}
	}
}

// RemoveSoftBody disposes a soft body or cloth.
func (w *World) RemoveSoftBody(sb *SoftBody) {
	for i, s := range w.softs {
		if s == sb {
			w.softs = append(w.softs[:i], w.softs[i+1:]...)
			break
		}
	}
	for i, c := range w.cloths {
		if &c.SoftBody == sb {
			w.cloths = append(w.cloths[:i], w.cloths[i+1:]...)
			return
		}
	}
}

// AddForce registers a named force; re-registering a name replaces it.
func (w *World) AddForce(name string, f Force) { w.forces.add(name, f) }

// RemoveForce unregisters a named force.
func (w *World) RemoveForce(name string) { w.forces.remove(name) }

// AddConstraint registers a named constraint; re-registering replaces.
func (w *World) AddConstraint(name string, c Constraint) { w.constraints.add(name, c) }

// RemoveConstraint unregisters a named constraint.
func (w *World) RemoveConstraint(name string) { w.constraints.remove(name) }

// ForceCount reports how many named forces are registered.
func (w *World) ForceCount() int { return w.forces.len() }

// ConstraintCount reports how many named constraints are registered.
func (w *World) ConstraintCount() int { return w.constraints.len() }

// Bodies returns the live rigid body list. Callers must not mutate it
// during a Step.
func (w *World) Bodies() []*PhysicsObject { return w.bodies }

// SoftBodies returns the live soft body list.
func (w *World) SoftBodies() []*SoftBody { return w.softs }

// Vortices returns the current vortex pool.
func (w *World) Vortices() []*Vortex { return w.vortices }

// Time returns total simulated seconds.
func (w *World) Time() float64 { return w.time }

// SetVortexCount regenerates the vortex pool at the given size. The quality
// governor calls this when the level changes.
func (w *World) SetVortexCount(n int) {
	if n < 0 {
		n = 0
	}
	w.vortices = make([]*Vortex, n)
	for i := range w.vortices {
		w.vortices[i] = randomVortex(w.rng, w.cfg.VortexExtent)
	}
}

// SetFixedStep adjusts the sub-step size.
func (w *World) SetFixedStep(h float64) {
	if h > 0 {
		w.cfg.FixedStep = h
	}
}

// SetMaxSubSteps bounds the per-frame sub-step count.
func (w *World) SetMaxSubSteps(n int) {
	if n > 0 {
		w.cfg.MaxSubSteps = n
	}
}

// SetClothResolution resamples every cloth at n nodes per axis. The quality
// governor calls this when the level changes.
func (w *World) SetClothResolution(n int) {
	if n < 2 {
		return
	}
	for _, c := range w.cloths {
		c.resample(n)
	}
}

// SetSoftIterations overrides the relaxation round count on every soft body.
func (w *World) SetSoftIterations(n int) {
	if n <= 0 {
		return
	}
	for _, sb := range w.softs {
		sb.Iterations = n
	}
}

// VortexWind returns a force sampling the world's vortex pool. Register it
// under a stable name so quality changes can hot-swap it.
func (w *World) VortexWind(scale float64) Force {
	return func(obj *PhysicsObject, _ float64) mgl64.Vec3 {
		var sum mgl64.Vec3
		for _, v := range w.vortices {
			sum = sum.Add(v.force(obj.Position))
		}
		return sum.Mul(scale * obj.Mass)
	}
}

// Step advances the world by dt seconds, possibly split into fixed
// sub-steps. Every sub-step runs the full force/constraint/collision pass
// in a fixed order: forces, integration, constraints, sleep bookkeeping,
// soft bodies, collisions.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	sub := 1
	h := dt
	if w.cfg.SubStepping {
		sub = int(math.Ceil(dt / w.cfg.FixedStep))
		if sub < 1 {
			sub = 1
		}
		if sub > w.cfg.MaxSubSteps {
			sub = w.cfg.MaxSubSteps
		}
		h = dt / float64(sub)
	}

	for s := 0; s < sub; s++ {
		for _, v := range w.vortices {
			v.update(h, w.time)
		}
		w.integrate(h)
		for _, sb := range w.softs {
			sb.step(h, w.cfg.Gravity)
		}
		w.detectAndResolve()
		for _, sb := range w.softs {
			sb.refreshGeometry()
		}
		for _, c := range w.cloths {
			c.recomputeNormals()
		}
		w.time += h
	}
}

func (w *World) integrate(h float64) {
	for _, obj := range w.bodies {
		if obj.Static {
			continue
		}
		if obj.Sleeping {
			continue
		}

		obj.Acceleration = mgl64.Vec3{}
		w.forces.each(func(f Force) {
			obj.Acceleration = obj.Acceleration.Add(f(obj, h).Mul(obj.InvMass))
		})

		// Semi-implicit Euler: velocity first, then position.
		obj.Velocity = obj.Velocity.Add(obj.Acceleration.Mul(h))
		obj.Position = obj.Position.Add(obj.Velocity.Mul(h))

		obj.AngularVelocity = obj.AngularVelocity.Add(obj.AngularAcceleration.Mul(h))
		obj.Rotation = obj.Rotation.Add(obj.AngularVelocity.Mul(h))

		w.constraints.each(func(c Constraint) { c(obj) })

		obj.updateSleep(h, w.cfg.SleepThreshold)
	}
}
