package anim

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/motionlab/internal/scene"
)

// noiseOctaves is the band-limited detail of the "noise" modifier.
const noiseOctaves = 3

// Modifier wraps a base animation. Chains apply in declared order, each
// entry wrapping the result of the previous one, so the last modifier sees
// raw step time first.
type Modifier struct {
	Kind   string  // "ease", "noise", "emotional", "blend", "delay"
	Ease   string  // curve name for "ease"
	Amount float64 // noise strength for "noise"
	Offset float64 // seconds for "delay"
	With   string  // second base animation for "blend"
	Mix    float64 // blend weight toward With, [0, 1]
}

func wrapModifier(fn BaseFunc, m Modifier, duration float64) BaseFunc {
	switch m.Kind {
	case "ease":
		curve := EaseByName(m.Ease)
		return func(ctx *Context, p Params, t float64) {
			u := clamp01(t / duration)
			fn(ctx, p, curve(u)*duration)
		}

	case "noise":
		amount := m.Amount
		return func(ctx *Context, p Params, t float64) {
			n := ctx.Noise.FBM(t*0.5, 13.7, 0, noiseOctaves)
			p.Amplitude *= 1 + n*amount
			fn(ctx, p, t)
		}

	case "emotional":
		return func(ctx *Context, p Params, t float64) {
			prof := profileFor(ctx.Emotion)
			p.Amplitude *= lerp(1, prof.Scale, ctx.Intensity)
			fn(ctx, p, t*lerp(1, prof.Speed, ctx.Intensity))
		}

	case "blend":
		other, ok := baseAnimations[m.With]
		if !ok {
			return fn
		}
		mix := clamp01(m.Mix)
		return func(ctx *Context, p Params, t float64) {
			fn(ctx, p, t)
			first := ctx.Target.Transform
			ctx.Target.Transform = ctx.Origin
			other(ctx, p, t)
			ctx.Target.Transform = lerpTransform(first, ctx.Target.Transform, mix)
		}

	case "delay":
		off := m.Offset
		return func(ctx *Context, p Params, t float64) {
			if t < off {
				return
			}
			fn(ctx, p, t-off)
		}

	default:
		return fn
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func lerp(a, b, u float64) float64 { return a + (b-a)*u }

func lerpVec(a, b mgl64.Vec3, u float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(u))
}

func lerpTransform(a, b scene.Transform, u float64) scene.Transform {
	return scene.Transform{
		Position: lerpVec(a.Position, b.Position, u),
		Rotation: lerpVec(a.Rotation, b.Rotation, u),
		Scale:    lerpVec(a.Scale, b.Scale, u),
	}
}
