// Package scenario assembles engines from configuration and drives timed
// runs. Each named scene is a builder that populates a fresh engine.
package scenario

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/motionlab/internal/anim"
	"github.com/san-kum/motionlab/internal/config"
	"github.com/san-kum/motionlab/internal/engine"
	"github.com/san-kum/motionlab/internal/particles"
	"github.com/san-kum/motionlab/internal/phys"
	"github.com/san-kum/motionlab/internal/scene"
)

// SetupFunc populates an engine for one scene.
type SetupFunc func(e *engine.Engine, cfg *config.Config) error

type Registry struct {
	scenes map[string]SetupFunc
}

func NewRegistry() *Registry {
	r := &Registry{scenes: make(map[string]SetupFunc)}

	r.scenes["companion"] = setupCompanion
	r.scenes["fountain"] = setupFountain
	r.scenes["drape"] = setupDrape
	r.scenes["ballpit"] = setupBallpit
	r.scenes["storm"] = setupStorm

	return r
}

func (r *Registry) Get(name string) (SetupFunc, error) {
	fn, ok := r.scenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene: %s", name)
	}
	return fn, nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.scenes))
	for name := range r.scenes {
		names = append(names, name)
	}
	return names
}

// applyPhysics wires the config's ambient forces and constraints. Every
// scene starts from this.
func applyPhysics(e *engine.Engine, cfg *config.Config) {
	w := e.World()
	gy := cfg.Physics.GravityY
	if gy == 0 {
		gy = config.DefaultGravityY
	}
	w.AddForce("gravity", phys.Gravity(mgl64.Vec3{0, gy, 0}))
	if cfg.Physics.Drag > 0 {
		w.AddForce("drag", phys.Drag(cfg.Physics.Drag))
	}
	if cfg.Physics.VortexStrength > 0 {
		w.AddForce("vortexWind", w.VortexWind(cfg.Physics.VortexStrength))
	}
	if cfg.Physics.Floor {
		w.AddConstraint("floor", phys.Floor(cfg.Physics.FloorY))
	}
	if cfg.Physics.FixedStep > 0 {
		w.SetFixedStep(cfg.Physics.FixedStep)
	}
	if cfg.Physics.MaxSubSteps > 0 {
		w.SetMaxSubSteps(cfg.Physics.MaxSubSteps)
	}
}

func applyEmotion(e *engine.Engine, cfg *config.Config) error {
	emotion := anim.Emotion(cfg.Emotion)
	if emotion == "" {
		emotion = anim.EmotionNeutral
	}
	return e.SetEmotionalState(emotion, cfg.Intensity)
}

func emitterParams(cfg *config.Config) particles.Params {
	ec := cfg.Emitter
	var shape particles.Shape
	switch ec.Shape {
	case "sphere":
		shape = particles.ShapeSphere
	case "box":
		shape = particles.ShapeBox
	case "disc":
		shape = particles.ShapeDisc
	default:
		shape = particles.ShapePoint
	}
	return particles.Params{
		Shape:    shape,
		Radius:   ec.Radius,
		Extents:  mgl64.Vec3{4, 2, 4},
		Rate:     ec.Rate,
		Spread:   ec.Spread,
		Speed:    particles.Range{Min: ec.Speed * 0.8, Max: ec.Speed * 1.2},
		Lifetime: particles.Range{Min: ec.LifetimeMin, Max: ec.LifetimeMax},
		Physics:  ec.Physics,
		Wiggle:   ec.Wiggle,
		Seed:     cfg.Seed,
	}
}

func setupCompanion(e *engine.Engine, cfg *config.Config) error {
	applyPhysics(e, cfg)
	if err := applyEmotion(e, cfg); err != nil {
		return err
	}

	blob := scene.NewObject("companion")
	blob.Geometry = scene.SphereGeometry(1.0, 8, 12)
	e.Animate(blob)

	if cfg.Emitter.Enabled {
		e.AddEmitter(emitterParams(cfg))
	}
	return nil
}

func setupFountain(e *engine.Engine, cfg *config.Config) error {
	applyPhysics(e, cfg)
	if err := applyEmotion(e, cfg); err != nil {
		return err
	}
	e.AddEmitter(emitterParams(cfg))
	return nil
}

func setupDrape(e *engine.Engine, cfg *config.Config) error {
	applyPhysics(e, cfg)
	if err := applyEmotion(e, cfg); err != nil {
		return err
	}

	w := e.World()
	w.CreateObject(phys.ObjectParams{
		Position: mgl64.Vec3{0, 0, 0},
		Radius:   1.0,
		Group:    "obstacles",
		Static:   true,
	})

	cc := cfg.Cloth
	cols, rows := cc.Cols, cc.Rows
	if cols == 0 {
		cols = 8
	}
	if rows == 0 {
		rows = 8
	}
	cloth := w.CreateCloth(nil, phys.ClothParams{
		Cols: cols, Rows: rows, Spacing: cc.Spacing,
		Origin:       mgl64.Vec3{-float64(cols) * cc.Spacing / 2, 1.8, 0},
		CollidesWith: []string{"obstacles"},
	})
	e.Stage().Add(cloth.Target)
	return nil
}

func setupBallpit(e *engine.Engine, cfg *config.Config) error {
	applyPhysics(e, cfg)
	if err := applyEmotion(e, cfg); err != nil {
		return err
	}

	bc := cfg.Bodies
	count := bc.Count
	if count == 0 {
		count = config.DefaultBodies
	}
	w := e.World()
	for i := 0; i < count; i++ {
		// Staggered grid drop so bodies collide on the way down.
		col := float64(i%4) - 1.5
		row := float64(i / 4)
		w.CreateObject(phys.ObjectParams{
			Position:     mgl64.Vec3{col * bc.Radius * 2.2, bc.SpawnHeight + row*bc.Radius*2.5, 0},
			Radius:       bc.Radius,
			Restitution:  bc.Restitution,
			Friction:     0.2,
			CollidesWith: []string{"default"},
		})
	}
	return nil
}

func setupStorm(e *engine.Engine, cfg *config.Config) error {
	applyPhysics(e, cfg)
	if err := applyEmotion(e, cfg); err != nil {
		return err
	}

	if cfg.Emitter.Enabled {
		e.AddEmitter(emitterParams(cfg))
	}
	bc := cfg.Bodies
	for i := 0; i < bc.Count; i++ {
		e.World().CreateObject(phys.ObjectParams{
			Position:     mgl64.Vec3{float64(i) - float64(bc.Count)/2, bc.SpawnHeight, 0},
			Radius:       bc.Radius,
			Restitution:  bc.Restitution,
			CollidesWith: []string{"default"},
		})
	}
	return nil
}
