package particles

import (
	"github.com/go-gl/mathgl/mgl64"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Particle is a single live quad. It satisfies scene.Primitive so renderers
// can pick particles out of the stage without knowing about emitters.
type Particle struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3

	Age      float64
	Lifetime float64

	SizeStart float64
	SizeEnd   float64
	Size      float64

	OpacityStart float64
	Opacity      float64

	Rotation      float64
	RotationSpeed float64

	Color colorful.Color

	phase float64
}

func (p *Particle) Kind() string { return "particle" }

// Progress reports normalized age in [0, 1).
func (p *Particle) Progress() float64 {
	if p.Lifetime <= 0 {
		return 1
	}
	return p.Age / p.Lifetime
}
