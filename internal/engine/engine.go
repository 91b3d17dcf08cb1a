// Package engine ties the simulation core together: one physics world, any
// number of particle emitters, the animation generator, and the quality
// governor that retunes all of them from measured frame cost.
package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/motionlab/internal/anim"
	"github.com/san-kum/motionlab/internal/particles"
	"github.com/san-kum/motionlab/internal/phys"
	"github.com/san-kum/motionlab/internal/quality"
	"github.com/san-kum/motionlab/internal/scene"
)

type Config struct {
	Seed        int64
	Physics     phys.Config
	AutoQuality bool
}

func DefaultConfig() Config {
	return Config{
		Seed:        1,
		Physics:     phys.DefaultConfig(),
		AutoQuality: true,
	}
}

// Stats is one frame's accounting, handed to the step observer and the
// governor.
type Stats struct {
	Tick       uint64
	SimTime    float64
	StepMs     float64
	Bodies     int
	SoftBodies int
	Particles  int
	Animations int
	Level      quality.Level
}

type Engine struct {
	log *zap.Logger
	cfg Config

	stage *scene.Stage
	world *phys.World
	gen   *anim.Generator
	gov   *quality.Governor

	emitters []*particles.Emitter
	updates  []func(dt float64)

	onStep func(Stats)
	tick   uint64
}

func New(cfg Config, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{
		log:   log,
		cfg:   cfg,
		stage: scene.NewStage(),
		world: phys.NewWorld(cfg.Physics, log.Named("phys")),
		gen:   anim.NewGenerator(cfg.Seed, log.Named("anim")),
		gov:   quality.NewGovernor(log.Named("quality")),
	}
	e.gov.OnChange(e.applySettings)
	e.applySettings(e.gov.Level(), e.gov.Settings())
	return e
}

func (e *Engine) Stage() *scene.Stage         { return e.stage }
func (e *Engine) World() *phys.World          { return e.world }
func (e *Engine) Generator() *anim.Generator  { return e.gen }
func (e *Engine) Governor() *quality.Governor { return e.gov }

// AddEmitter creates an emitter bound to the engine's stage, capped at the
// current quality level.
func (e *Engine) AddEmitter(p particles.Params) *particles.Emitter {
	if max := e.gov.Settings().MaxParticles; p.MaxParticles == 0 || p.MaxParticles > max {
		p.MaxParticles = max
	}
	em := particles.NewEmitter(e.stage, p)
	e.emitters = append(e.emitters, em)
	return em
}

// Animate binds a procedural animation to target under the current emotion.
func (e *Engine) Animate(target *scene.Object) {
	e.stage.Add(target)
	e.updates = append(e.updates, e.gen.GenerateAnimation(target))
}

// AnimateRandom binds a randomly drawn sequence biased by the current
// emotion.
func (e *Engine) AnimateRandom(target *scene.Object, steps int) {
	e.stage.Add(target)
	e.updates = append(e.updates, e.gen.GenerateRandomAnimation(target, steps))
}

// SetEmotionalState forwards to the animation generator.
func (e *Engine) SetEmotionalState(emotion anim.Emotion, intensity float64) error {
	return e.gen.SetEmotionalState(emotion, intensity)
}

// SetQuality forces a quality level, bypassing the governor's window.
func (e *Engine) SetQuality(l quality.Level) { e.gov.SetLevel(l) }

// OnStep registers a per-frame stats observer.
func (e *Engine) OnStep(fn func(Stats)) { e.onStep = fn }

// Update advances the whole simulation by dt seconds and reports the
// frame's stats. Measured cost feeds the governor when auto quality is on.
func (e *Engine) Update(dt float64) Stats {
	start := time.Now()

	e.world.Step(dt)
	for _, em := range e.emitters {
		em.Update(dt)
	}
	for _, fn := range e.updates {
		fn(dt)
	}

	ms := float64(time.Since(start).Nanoseconds()) / 1e6
	e.tick++

	if e.cfg.AutoQuality {
		e.gov.Observe(ms)
	}

	st := Stats{
		Tick:       e.tick,
		SimTime:    e.world.Time(),
		StepMs:     ms,
		Bodies:     len(e.world.Bodies()),
		SoftBodies: len(e.world.SoftBodies()),
		Particles:  e.particleCount(),
		Animations: e.gen.Active(),
		Level:      e.gov.Level(),
	}
	if e.onStep != nil {
		e.onStep(st)
	}
	return st
}

func (e *Engine) particleCount() int {
	n := 0
	for _, em := range e.emitters {
		n += em.Len()
	}
	return n
}

// applySettings pushes a quality level's knobs into every subsystem.
func (e *Engine) applySettings(l quality.Level, s quality.Settings) {
	e.world.SetFixedStep(s.FixedStep)
	e.world.SetMaxSubSteps(s.MaxSubSteps)
	e.world.SetSoftIterations(s.SoftIterations)
	e.world.SetClothResolution(s.ClothResolution)
	e.world.SetVortexCount(s.VortexCount)
	for _, em := range e.emitters {
		em.SetMaxParticles(s.MaxParticles)
	}
	e.log.Info("quality applied",
		zap.Int("level", int(l)),
		zap.Int("vortices", s.VortexCount),
		zap.Int("maxParticles", s.MaxParticles))
}
