package anim

import "math"

// EaseFunc maps normalized progress [0, 1] to eased progress.
type EaseFunc func(float64) float64

func EaseLinear(u float64) float64 { return u }

func EaseQuadIn(u float64) float64  { return u * u }
func EaseQuadOut(u float64) float64 { return u * (2 - u) }
func EaseQuadInOut(u float64) float64 {
	if u < 0.5 {
		return 2 * u * u
	}
	return -1 + (4-2*u)*u
}

func EaseCubicIn(u float64) float64 { return u * u * u }
func EaseCubicOut(u float64) float64 {
	u--
	return u*u*u + 1
}
func EaseCubicInOut(u float64) float64 {
	if u < 0.5 {
		return 4 * u * u * u
	}
	v := 2*u - 2
	return 0.5*v*v*v + 1
}

func EaseElasticIn(u float64) float64 {
	if u == 0 || u == 1 {
		return u
	}
	return -math.Pow(2, 10*u-10) * math.Sin((u*10-10.75)*(2*math.Pi/3))
}
func EaseElasticOut(u float64) float64 {
	if u == 0 || u == 1 {
		return u
	}
	return math.Pow(2, -10*u)*math.Sin((u*10-0.75)*(2*math.Pi/3)) + 1
}
func EaseElasticInOut(u float64) float64 {
	if u == 0 || u == 1 {
		return u
	}
	const c = 2 * math.Pi / 4.5
	if u < 0.5 {
		return -math.Pow(2, 20*u-10) * math.Sin((20*u-11.125)*c) / 2
	}
	return math.Pow(2, -20*u+10)*math.Sin((20*u-11.125)*c)/2 + 1
}

func EaseBackIn(u float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	return c3*u*u*u - c1*u*u
}
func EaseBackOut(u float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	v := u - 1
	return 1 + c3*v*v*v + c1*v*v
}
func EaseBackInOut(u float64) float64 {
	const c1 = 1.70158
	const c2 = c1 * 1.525
	if u < 0.5 {
		v := 2 * u
		return v * v * ((c2+1)*v - c2) / 2
	}
	v := 2*u - 2
	return (v*v*((c2+1)*v+c2) + 2) / 2
}

func EaseBounceIn(u float64) float64 { return 1 - EaseBounceOut(1-u) }

func EaseBounceOut(u float64) float64 {
	const n1 = 7.5625
	const d1 = 2.75
	switch {
	case u < 1/d1:
		return n1 * u * u
	case u < 2/d1:
		u -= 1.5 / d1
		return n1*u*u + 0.75
	case u < 2.5/d1:
		u -= 2.25 / d1
		return n1*u*u + 0.9375
	default:
		u -= 2.625 / d1
		return n1*u*u + 0.984375
	}
}

func EaseBounceInOut(u float64) float64 {
	if u < 0.5 {
		return (1 - EaseBounceOut(1-2*u)) / 2
	}
	return (1 + EaseBounceOut(2*u-1)) / 2
}

var eases = map[string]EaseFunc{
	"linear":       EaseLinear,
	"quadIn":       EaseQuadIn,
	"quadOut":      EaseQuadOut,
	"quadInOut":    EaseQuadInOut,
	"cubicIn":      EaseCubicIn,
	"cubicOut":     EaseCubicOut,
	"cubicInOut":   EaseCubicInOut,
	"elasticIn":    EaseElasticIn,
	"elasticOut":   EaseElasticOut,
	"elasticInOut": EaseElasticInOut,
	"backIn":       EaseBackIn,
	"backOut":      EaseBackOut,
	"backInOut":    EaseBackInOut,
	"bounceIn":     EaseBounceIn,
	"bounceOut":    EaseBounceOut,
	"bounceInOut":  EaseBounceInOut,
}

// EaseByName resolves an easing curve, defaulting to linear for unknown
// names so a bad sequence definition degrades instead of panicking.
func EaseByName(name string) EaseFunc {
	if f, ok := eases[name]; ok {
		return f
	}
	return EaseLinear
}
