package phys

import (
	"github.com/go-gl/mathgl/mgl64"
)

// ColliderShape selects the narrow-phase test for a rigid body. Only spheres
// are supported; anything else is skipped by collision detection.
type ColliderShape int

const (
	ColliderNone ColliderShape = iota
	ColliderSphere
)

const (
	// DefaultSleepThreshold is compared against velocity^2 + angularVelocity^2.
	DefaultSleepThreshold = 0.01
	// SleepDelay is how long a body must stay below the threshold before it sleeps.
	SleepDelay = 1.0
)

// CollisionFunc is invoked after a resolved contact. normal points from the
// other body toward the receiver; depth is the penetration at detection time.
type CollisionFunc func(other *PhysicsObject, normal mgl64.Vec3, depth float64)

// PhysicsObject is a rigid body. Instances are created through
// World.CreateObject and removed only by World.Remove.
type PhysicsObject struct {
	Position     mgl64.Vec3
	Velocity     mgl64.Vec3
	Acceleration mgl64.Vec3

	Rotation            mgl64.Vec3
	AngularVelocity     mgl64.Vec3
	AngularAcceleration mgl64.Vec3

	Mass    float64
	InvMass float64

	Restitution float64
	Friction    float64

	Shape  ColliderShape
	Radius float64

	Group        string
	CollidesWith []string

	Static   bool
	Sleeping bool

	OnCollision CollisionFunc
	UserData    any

	id        int
	stillTime float64
}

// ObjectParams configures CreateObject. Zero Mass defaults to 1, zero Radius
// to 1, empty Group to "default". A zero Shape means ColliderSphere unless
// NoCollider is set.
type ObjectParams struct {
	Position     mgl64.Vec3
	Velocity     mgl64.Vec3
	Rotation     mgl64.Vec3
	Mass         float64
	Restitution  float64
	Friction     float64
	Radius       float64
	Group        string
	CollidesWith []string
	Static       bool
	NoCollider   bool
	OnCollision  CollisionFunc
	UserData     any
}

func (o *PhysicsObject) Kind() string { return "body" }

// Wake clears the sleeping flag and the accumulated still-time.
func (o *PhysicsObject) Wake() {
	o.Sleeping = false
	o.stillTime = 0
}

func (o *PhysicsObject) updateSleep(dt, threshold float64) {
	speed2 := o.Velocity.LenSqr() + o.AngularVelocity.LenSqr()
	if speed2 < threshold {
		o.stillTime += dt
		if o.stillTime > SleepDelay {
			o.Sleeping = true
		}
		return
	}
	o.stillTime = 0
}

func (o *PhysicsObject) collidesWithGroup() bool {
	return len(o.CollidesWith) > 0 && o.Shape == ColliderSphere
}
