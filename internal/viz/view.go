package viz

import (
	"github.com/san-kum/motionlab/internal/engine"
	"github.com/san-kum/motionlab/internal/particles"
	"github.com/san-kum/motionlab/internal/scene"
)

// View projects the XY plane of a scene onto a braille canvas. Depth is
// dropped; the terminal gets a front elevation.
type View struct {
	canvas *Canvas
	scale  float64 // pixels per world unit
}

func NewView(w, h int, scale float64) *View {
	if scale <= 0 {
		scale = 8
	}
	return &View{canvas: NewCanvas(w, h), scale: scale}
}

func (v *View) project(x, y float64) (int, int) {
	pw, ph := v.canvas.PixelSize()
	px := pw/2 + int(x*v.scale)
	py := ph/2 - int(y*v.scale)
	return px, py
}

// Render draws the engine's current state and returns the frame as text.
func (v *View) Render(e *engine.Engine) string {
	v.canvas.Clear()

	for _, b := range e.World().Bodies() {
		px, py := v.project(b.Position.X(), b.Position.Y())
		r := int(b.Radius * v.scale)
		if b.Static {
			v.canvas.Ring(px, py, r)
			continue
		}
		v.canvas.Circle(px, py, r)
	}

	for _, sb := range e.World().SoftBodies() {
		for _, conn := range sb.Connections {
			a := sb.Nodes[conn.A].Position
			b := sb.Nodes[conn.B].Position
			ax, ay := v.project(a.X(), a.Y())
			bx, by := v.project(b.X(), b.Y())
			v.canvas.Line(ax, ay, bx, by)
		}
	}

	e.Stage().Each(func(p scene.Primitive) bool {
		switch prim := p.(type) {
		case *particles.Particle:
			px, py := v.project(prim.Position.X(), prim.Position.Y())
			v.canvas.Set(px, py)
		case *scene.Object:
			px, py := v.project(prim.Transform.Position.X(), prim.Transform.Position.Y())
			r := int(prim.Transform.Scale.X() * v.scale * 0.5)
			v.canvas.Ring(px, py, r)
		}
		return true
	})

	return v.canvas.String()
}
