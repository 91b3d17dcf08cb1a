package phys

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNoPhantomMotion(t *testing.T) {
	w := NewWorld(DefaultConfig(), nil)
	obj := w.CreateObject(ObjectParams{Position: mgl64.Vec3{1, 2, 3}})

	w.Step(1.0 / 60.0)

	if obj.Velocity.Len() != 0 {
		t.Errorf("velocity changed with no forces: %v", obj.Velocity)
	}
	if obj.Position != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("position changed with no forces: %v", obj.Position)
	}
}

func TestGravityFreeFall(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SubStepping = false
	w := NewWorld(cfg, nil)
	w.AddForce("gravity", Gravity(mgl64.Vec3{0, -9.8, 0}))

	obj := w.CreateObject(ObjectParams{Mass: 1, Restitution: 0.8})

	dt := 1.0 / 60.0
	for i := 0; i < 60; i++ {
		w.Step(dt)
	}

	if math.Abs(obj.Velocity.Y()+9.8)/9.8 > 0.01 {
		t.Errorf("expected velocity ~-9.8, got %f", obj.Velocity.Y())
	}
	if math.Abs(obj.Position.Y()+4.9)/4.9 > 0.02 {
		t.Errorf("expected displacement ~-4.9, got %f", obj.Position.Y())
	}
}

func TestCreateObjectDefaults(t *testing.T) {
	w := NewWorld(DefaultConfig(), nil)
	obj := w.CreateObject(ObjectParams{})

	if obj.Mass != 1.0 {
		t.Errorf("expected default mass 1.0, got %f", obj.Mass)
	}
	if obj.InvMass != 1.0 {
		t.Errorf("expected inverse mass 1.0, got %f", obj.InvMass)
	}
	if obj.Radius != 1.0 {
		t.Errorf("expected default radius 1.0, got %f", obj.Radius)
	}
	if obj.Group != "default" {
		t.Errorf("expected default group, got %s", obj.Group)
	}
	if obj.Shape != ColliderSphere {
		t.Error("expected sphere collider by default")
	}
}

func TestStaticObjectHasZeroInvMass(t *testing.T) {
	w := NewWorld(DefaultConfig(), nil)
	obj := w.CreateObject(ObjectParams{Static: true, Mass: 5})

	if obj.InvMass != 0 {
		t.Errorf("static body should have zero inverse mass, got %f", obj.InvMass)
	}

	w.AddForce("gravity", Gravity(mgl64.Vec3{0, -9.8, 0}))
	w.Step(0.1)
	if obj.Position.Y() != 0 {
		t.Error("static body moved under gravity")
	}
}

func TestForceRegistrationIdempotent(t *testing.T) {
	w := NewWorld(DefaultConfig(), nil)

	w.AddForce("wind", func(o *PhysicsObject, dt float64) mgl64.Vec3 {
		return mgl64.Vec3{100, 0, 0}
	})
	w.AddForce("wind", func(o *PhysicsObject, dt float64) mgl64.Vec3 {
		return mgl64.Vec3{1, 0, 0}
	})

	if w.ForceCount() != 1 {
		t.Fatalf("re-registration leaked an entry: %d forces", w.ForceCount())
	}

	cfg := DefaultConfig()
	cfg.SubStepping = false
	w2 := NewWorld(cfg, nil)
	w2.AddForce("wind", func(o *PhysicsObject, dt float64) mgl64.Vec3 {
		return mgl64.Vec3{100, 0, 0}
	})
	w2.AddForce("wind", func(o *PhysicsObject, dt float64) mgl64.Vec3 {
		return mgl64.Vec3{1, 0, 0}
	})
	obj := w2.CreateObject(ObjectParams{Mass: 1})
	w2.Step(1.0)

	// Only the replacement applies: a = 1 for 1s.
	if math.Abs(obj.Velocity.X()-1.0) > 1e-9 {
		t.Errorf("expected replaced force only, velocity %f", obj.Velocity.X())
	}
}

func TestConstraintOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SubStepping = false
	w := NewWorld(cfg, nil)
	obj := w.CreateObject(ObjectParams{})

	var order []string
	w.AddConstraint("first", func(o *PhysicsObject) { order = append(order, "first") })
	w.AddConstraint("second", func(o *PhysicsObject) { order = append(order, "second") })
	// Replacing keeps the original slot.
	w.AddConstraint("first", func(o *PhysicsObject) { order = append(order, "first'") })

	w.Step(0.01)

	if len(order) != 2 || order[0] != "first'" || order[1] != "second" {
		t.Errorf("unexpected constraint order: %v", order)
	}
	_ = obj
}

func TestSleepingAfterStillness(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SubStepping = false
	w := NewWorld(cfg, nil)
	obj := w.CreateObject(ObjectParams{Velocity: mgl64.Vec3{0.01, 0, 0}})

	dt := 1.0 / 60.0
	for i := 0; i < 80; i++ {
		w.Step(dt)
	}

	if !obj.Sleeping {
		t.Error("body below sleep threshold for >1s should be sleeping")
	}

	pos := obj.Position
	w.Step(dt)
	if obj.Position != pos {
		t.Error("sleeping body should be excluded from integration")
	}
}

func TestFastBodyStaysAwake(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SubStepping = false
	w := NewWorld(cfg, nil)
	obj := w.CreateObject(ObjectParams{Velocity: mgl64.Vec3{5, 0, 0}})

	for i := 0; i < 120; i++ {
		w.Step(1.0 / 60.0)
	}
	if obj.Sleeping {
		t.Error("moving body should not sleep")
	}
}

func TestFloorConstraint(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SubStepping = false
	w := NewWorld(cfg, nil)
	w.AddForce("gravity", Gravity(mgl64.Vec3{0, -9.8, 0}))
	w.AddConstraint("floor", Floor(0))

	obj := w.CreateObject(ObjectParams{
		Position:    mgl64.Vec3{0, 3, 0},
		Radius:      0.5,
		Restitution: 0.5,
	})

	for i := 0; i < 600; i++ {
		w.Step(1.0 / 60.0)
	}

	if obj.Position.Y() < 0.5-1e-6 {
		t.Errorf("body sank through floor: y=%f", obj.Position.Y())
	}
}

func TestRemoveObject(t *testing.T) {
	w := NewWorld(DefaultConfig(), nil)
	a := w.CreateObject(ObjectParams{Group: "g"})
	b := w.CreateObject(ObjectParams{Group: "g"})

	w.Remove(a)

	if len(w.Bodies()) != 1 || w.Bodies()[0] != b {
		t.Error("remove did not dispose the right body")
	}
	if len(w.groups["g"]) != 1 {
		t.Error("group index not updated on remove")
	}
}

func TestSetVortexCount(t *testing.T) {
	w := NewWorld(DefaultConfig(), nil)
	w.SetVortexCount(5)
	if len(w.Vortices()) != 5 {
		t.Fatalf("expected 5 vortices, got %d", len(w.Vortices()))
	}
	w.SetVortexCount(2)
	if len(w.Vortices()) != 2 {
		t.Fatalf("expected regenerated pool of 2, got %d", len(w.Vortices()))
	}
}

func TestVortexWindInsideRadius(t *testing.T) {
	w := NewWorld(DefaultConfig(), nil)
	w.SetVortexCount(1)
	v := w.Vortices()[0]
	v.Position = mgl64.Vec3{0, 0, 0}
	v.Axis = mgl64.Vec3{0, 1, 0}
	v.Strength = 1
	v.Radius = 10
	v.Falloff = 1

	wind := w.VortexWind(1.0)
	obj := w.CreateObject(ObjectParams{Position: mgl64.Vec3{1, 0, 0}})

	f := wind(obj, 0.01)
	if f.Len() == 0 {
		t.Error("expected tangential force inside vortex radius")
	}
	// Tangential: no radial component.
	if math.Abs(f.Dot(mgl64.Vec3{1, 0, 0})) > 1e-9 {
		t.Errorf("vortex force has radial component: %v", f)
	}

	far := w.CreateObject(ObjectParams{Position: mgl64.Vec3{50, 0, 0}})
	if wind(far, 0.01).Len() != 0 {
		t.Error("expected zero force outside vortex radius")
	}
}
