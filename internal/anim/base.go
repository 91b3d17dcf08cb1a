package anim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/motionlab/internal/noise"
	"github.com/san-kum/motionlab/internal/scene"
)

// Params tunes one base animation instance. Zero values get per-field
// defaults when a step is compiled.
type Params struct {
	Amplitude float64
	Frequency float64 // cycles per second
	Radius    float64
	Phase     float64
	Axis      mgl64.Vec3
}

func (p Params) withDefaults() Params {
	if p.Amplitude == 0 {
		p.Amplitude = 0.2
	}
	if p.Frequency == 0 {
		p.Frequency = 1
	}
	if p.Radius == 0 {
		p.Radius = 1
	}
	if p.Axis.Len() == 0 {
		p.Axis = mgl64.Vec3{0, 1, 0}
	}
	return p
}

// Context carries everything a base animation may touch: the target, its
// captured rest pose, and the shared noise generator. Animations always
// write absolute poses derived from the rest pose, never accumulate, so a
// reset is just restoring the snapshot.
type Context struct {
	Target         *scene.Object
	Origin         scene.Transform
	OriginGeometry []mgl64.Vec3
	Noise          *noise.Simplex
	Emotion        Emotion
	Intensity      float64
}

// BaseFunc is one of the named base motions.
type BaseFunc func(ctx *Context, p Params, t float64)

var baseAnimations = map[string]BaseFunc{
	"pulse":  animPulse,
	"rotate": animRotate,
	"float":  animFloat,
	"sway":   animSway,
	"bounce": animBounce,
	"shake":  animShake,
	"morph":  animMorph,
	"wave":   animWave,
	"spiral": animSpiral,
	"orbit":  animOrbit,
}

// BaseNames lists the available base animations in a stable order.
func BaseNames() []string {
	return []string{
		"pulse", "rotate", "float", "sway", "bounce",
		"shake", "morph", "wave", "spiral", "orbit",
	}
}

func animPulse(ctx *Context, p Params, t float64) {
	s := 1 + p.Amplitude*math.Sin(2*math.Pi*p.Frequency*t+p.Phase)
	o := ctx.Origin.Scale
	ctx.Target.Transform.Scale = mgl64.Vec3{o.X() * s, o.Y() * s, o.Z() * s}
}

func animRotate(ctx *Context, p Params, t float64) {
	axis := p.Axis.Normalize()
	angle := 2 * math.Pi * p.Frequency * t
	ctx.Target.Transform.Rotation = ctx.Origin.Rotation.Add(axis.Mul(angle))
}

func animFloat(ctx *Context, p Params, t float64) {
	dy := p.Amplitude * math.Sin(2*math.Pi*p.Frequency*t+p.Phase)
	pos := ctx.Origin.Position
	ctx.Target.Transform.Position = mgl64.Vec3{pos.X(), pos.Y() + dy, pos.Z()}
}

func animSway(ctx *Context, p Params, t float64) {
	s := math.Sin(2*math.Pi*p.Frequency*t + p.Phase)
	rot := ctx.Origin.Rotation
	pos := ctx.Origin.Position
	ctx.Target.Transform.Rotation = mgl64.Vec3{rot.X(), rot.Y(), rot.Z() + p.Amplitude*s}
	ctx.Target.Transform.Position = mgl64.Vec3{pos.X() + 0.5*p.Amplitude*s, pos.Y(), pos.Z()}
}

func animBounce(ctx *Context, p Params, t float64) {
	dy := p.Amplitude * math.Abs(math.Sin(math.Pi*p.Frequency*t+p.Phase))
	pos := ctx.Origin.Position
	ctx.Target.Transform.Position = mgl64.Vec3{pos.X(), pos.Y() + dy, pos.Z()}
}

// animShake jitters position with band-limited noise so the motion is
// erratic but frame-coherent.
func animShake(ctx *Context, p Params, t float64) {
	ft := t * p.Frequency * 4
	dx := (ctx.Noise.Noise3(ft, p.Phase, 0)*2 - 1) * p.Amplitude
	dy := (ctx.Noise.Noise3(0, ft, p.Phase+31.7)*2 - 1) * p.Amplitude * 0.5
	dz := (ctx.Noise.Noise3(p.Phase+17.3, 0, ft)*2 - 1) * p.Amplitude
	ctx.Target.Transform.Position = ctx.Origin.Position.Add(mgl64.Vec3{dx, dy, dz})
}

// animMorph displaces vertices radially by noise sampled in rest space, a
// blobby breathing deformation.
func animMorph(ctx *Context, p Params, t float64) {
	ensureGeometry(ctx)
	for i, v := range ctx.OriginGeometry {
		l := v.Len()
		if l < 1e-9 {
			ctx.Target.Geometry[i] = v
			continue
		}
		dir := v.Mul(1 / l)
		n := ctx.Noise.Noise3(v.X()*0.8+t*p.Frequency, v.Y()*0.8, v.Z()*0.8)
		ctx.Target.Geometry[i] = v.Add(dir.Mul((n*2 - 1) * p.Amplitude))
	}
}

// animWave runs a traveling sine across the rest-space X axis.
func animWave(ctx *Context, p Params, t float64) {
	ensureGeometry(ctx)
	for i, v := range ctx.OriginGeometry {
		dy := p.Amplitude * math.Sin(v.X()*2-2*math.Pi*p.Frequency*t+p.Phase)
		ctx.Target.Geometry[i] = mgl64.Vec3{v.X(), v.Y() + dy, v.Z()}
	}
}

// animSpiral is a helix: circular motion with a vertical oscillation at
// half the angular rate.
func animSpiral(ctx *Context, p Params, t float64) {
	angle := 2*math.Pi*p.Frequency*t + p.Phase
	pos := ctx.Origin.Position
	ctx.Target.Transform.Position = mgl64.Vec3{
		pos.X() + p.Radius*math.Cos(angle),
		pos.Y() + p.Amplitude*math.Sin(angle*0.5),
		pos.Z() + p.Radius*math.Sin(angle),
	}
}

func animOrbit(ctx *Context, p Params, t float64) {
	angle := 2*math.Pi*p.Frequency*t + p.Phase
	pos := ctx.Origin.Position
	ctx.Target.Transform.Position = mgl64.Vec3{
		pos.X() + p.Radius*math.Cos(angle),
		pos.Y(),
		pos.Z() + p.Radius*math.Sin(angle),
	}
}

// ensureGeometry substitutes a sphere shell when a geometry-deforming
// animation targets an object without a vertex buffer.
func ensureGeometry(ctx *Context) {
	if len(ctx.OriginGeometry) == 0 {
		ctx.OriginGeometry = scene.SphereGeometry(1.0, 6, 8)
	}
	if len(ctx.Target.Geometry) != len(ctx.OriginGeometry) {
		ctx.Target.Geometry = make([]mgl64.Vec3, len(ctx.OriginGeometry))
		copy(ctx.Target.Geometry, ctx.OriginGeometry)
	}
}
