// Package particles implements shaped particle emission with physics-driven
// or purely visual motion. Emitters add and remove primitives on the scene
// the caller supplies; scene lifetime stays the caller's problem.
package particles

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/motionlab/internal/scene"
)

// Shape selects the emission volume.
type Shape int

const (
	ShapePoint Shape = iota
	ShapeSphere
	ShapeBox
	ShapeDisc
)

const gravityY = -9.8

// Range is a uniform [Min, Max] sampling interval.
type Range struct {
	Min, Max float64
}

func (r Range) sample(rng *rand.Rand) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Params describes an emitter. Missing optional fields get defaults; see
// NewEmitter.
type Params struct {
	Shape    Shape
	Position mgl64.Vec3
	Radius   float64    // sphere and disc shapes
	Extents  mgl64.Vec3 // box shape

	Direction mgl64.Vec3
	Spread    float64 // radians of randomized deviation on X and Y

	Rate         float64 // particles per second; 0 means manual bursts only
	MaxParticles int

	Lifetime Range
	Speed    Range
	Size     Range
	EndSize  Range
	Opacity  Range
	Rotation Range // rotation speed, radians per second

	ColorStart colorful.Color
	ColorEnd   colorful.Color

	Physics      bool
	GravityScale float64
	Drag         float64
	Wiggle       float64 // lateral amplitude; 0 disables
	WiggleFreq   float64

	OnExpire func(*Particle)
	Seed     int64
}

// Emitter owns its live particle list. The fractional emission accumulator
// carries "time owed" across ticks so fractional particles-per-frame are
// neither dropped nor double-counted.
type Emitter struct {
	params Params
	sc     scene.Scene
	rng    *rand.Rand
	live   []*Particle
	owed   float64
	time   float64
}

func NewEmitter(sc scene.Scene, p Params) *Emitter {
	if p.MaxParticles <= 0 {
		p.MaxParticles = 256
	}
	if p.Lifetime.Min <= 0 && p.Lifetime.Max <= 0 {
		p.Lifetime = Range{1, 2}
	}
	if p.Speed.Min == 0 && p.Speed.Max == 0 {
		p.Speed = Range{1, 2}
	}
	if p.Size.Min == 0 && p.Size.Max == 0 {
		p.Size = Range{0.1, 0.3}
	}
	if p.EndSize.Min == 0 && p.EndSize.Max == 0 {
		p.EndSize = p.Size
	}
	if p.Opacity.Min == 0 && p.Opacity.Max == 0 {
		p.Opacity = Range{1, 1}
	}
	if p.Direction.Len() == 0 {
		p.Direction = mgl64.Vec3{0, 1, 0}
	}
	if p.GravityScale == 0 {
		p.GravityScale = 1
	}
	if p.WiggleFreq == 0 {
		p.WiggleFreq = 3
	}
	if p.ColorStart == (colorful.Color{}) {
		p.ColorStart = colorful.Color{R: 1, G: 1, B: 1}
	}
	if p.ColorEnd == (colorful.Color{}) {
		p.ColorEnd = p.ColorStart
	}
	seed := p.Seed
	if seed == 0 {
		seed = 1
	}
	return &Emitter{
		params: p,
		sc:     sc,
		rng:    rand.New(rand.NewSource(seed)),
		live:   make([]*Particle, 0, p.MaxParticles),
	}
}

// Params returns the emitter's (defaulted) configuration.
func (e *Emitter) Params() Params { return e.params }

// Particles returns the live list.
func (e *Emitter) Particles() []*Particle { return e.live }

// Len reports the live particle count.
func (e *Emitter) Len() int { return len(e.live) }

// Emit spawns up to count particles, bounded by MaxParticles.
func (e *Emitter) Emit(count int) {
	for i := 0; i < count; i++ {
		if len(e.live) >= e.params.MaxParticles {
			return
		}
		p := e.spawn()
		e.live = append(e.live, p)
		if e.sc != nil {
			e.sc.Add(p)
		}
	}
}

func (e *Emitter) spawn() *Particle {
	p := &Particle{
		Position:      e.samplePosition(),
		Lifetime:      e.params.Lifetime.sample(e.rng),
		SizeStart:     e.params.Size.sample(e.rng),
		SizeEnd:       e.params.EndSize.sample(e.rng),
		OpacityStart:  e.params.Opacity.sample(e.rng),
		RotationSpeed: e.params.Rotation.sample(e.rng),
		Color:         e.params.ColorStart,
		phase:         e.rng.Float64() * 2 * math.Pi,
	}
	p.Size = p.SizeStart
	p.Opacity = p.OpacityStart

	dir := e.params.Direction
	if e.params.Spread > 0 {
		dir = mgl64.Vec3{
			dir.X() + (e.rng.Float64()*2-1)*e.params.Spread,
			dir.Y() + (e.rng.Float64()*2-1)*e.params.Spread,
			dir.Z(),
		}
	}
	if l := dir.Len(); l > 1e-9 {
		dir = dir.Mul(1 / l)
	}
	p.Velocity = dir.Mul(e.params.Speed.sample(e.rng))
	return p
}

// samplePosition draws uniformly from the declared emission volume. Sphere
// radii scale by the cube root and disc radii by the square root so samples
// do not cluster near the center.
func (e *Emitter) samplePosition() mgl64.Vec3 {
	base := e.params.Position
	switch e.params.Shape {
	case ShapeSphere:
		r := e.params.Radius * math.Cbrt(e.rng.Float64())
		cosTheta := e.rng.Float64()*2 - 1
		sinTheta := math.Sqrt(1 - cosTheta*cosTheta)
		phi := e.rng.Float64() * 2 * math.Pi
		return base.Add(mgl64.Vec3{
			r * sinTheta * math.Cos(phi),
			r * cosTheta,
			r * sinTheta * math.Sin(phi),
		})
	case ShapeBox:
		ext := e.params.Extents
		return base.Add(mgl64.Vec3{
			(e.rng.Float64() - 0.5) * ext.X(),
			(e.rng.Float64() - 0.5) * ext.Y(),
			(e.rng.Float64() - 0.5) * ext.Z(),
		})
	case ShapeDisc:
		r := e.params.Radius * math.Sqrt(e.rng.Float64())
		phi := e.rng.Float64() * 2 * math.Pi
		return base.Add(mgl64.Vec3{r * math.Cos(phi), 0, r * math.Sin(phi)})
	default:
		return base
	}
}

// Update ages, retires, and integrates the live particles, then services
// rate-based emission. Expired particles leave the list and the scene
// before any motion update, so a dead particle is never rendered.
func (e *Emitter) Update(dt float64) {
	if dt <= 0 {
		return
	}
	e.time += dt

	for i := 0; i < len(e.live); {
		p := e.live[i]
		p.Age += dt

		if p.Age >= p.Lifetime {
			e.live[i] = e.live[len(e.live)-1]
			e.live = e.live[:len(e.live)-1]
			if e.sc != nil {
				e.sc.Remove(p)
			}
			if e.params.OnExpire != nil {
				e.params.OnExpire(p)
			}
			continue
		}

		if e.params.Physics {
			accel := mgl64.Vec3{0, gravityY * e.params.GravityScale, 0}
			if e.params.Drag > 0 {
				p.Velocity = p.Velocity.Mul(1 - e.params.Drag*dt)
			}
			if e.params.Wiggle > 0 {
				s := math.Sin(p.Age*e.params.WiggleFreq*2*math.Pi + p.phase)
				c := math.Cos(p.Age*e.params.WiggleFreq*2*math.Pi + p.phase)
				accel[0] += s * e.params.Wiggle
				accel[2] += c * e.params.Wiggle
			}
			p.Velocity = p.Velocity.Add(accel.Mul(dt))
			p.Position = p.Position.Add(p.Velocity.Mul(dt))
		}

		// Visual interpolation is independent of the physics flag.
		progress := p.Age / p.Lifetime
		p.Size = p.SizeStart + (p.SizeEnd-p.SizeStart)*progress
		p.Opacity = p.OpacityStart * (1 - progress)
		p.Rotation += p.RotationSpeed * dt
		p.Color = e.params.ColorStart.BlendRgb(e.params.ColorEnd, progress)

		i++
	}

	if e.params.Rate > 0 {
		e.owed += e.params.Rate * dt
		n := int(e.owed)
		if n > 0 {
			e.owed -= float64(n)
			e.Emit(n)
		}
	}
}

// SetMaxParticles rebounds the live cap. Excess particles are retired from
// the tail of the live list; retirement order is arbitrary because expiry
// swap-removes slots.
func (e *Emitter) SetMaxParticles(n int) {
	if n <= 0 {
		return
	}
	e.params.MaxParticles = n
	for len(e.live) > n {
		p := e.live[len(e.live)-1]
		e.live = e.live[:len(e.live)-1]
		if e.sc != nil {
			e.sc.Remove(p)
		}
	}
}

// Clear retires every live particle immediately.
func (e *Emitter) Clear() {
	for _, p := range e.live {
		if e.sc != nil {
			e.sc.Remove(p)
		}
	}
	e.live = e.live[:0]
}
