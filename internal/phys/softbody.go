package phys

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/motionlab/internal/scene"
)

// Node is one mass point of a deformable mesh.
type Node struct {
	Position     mgl64.Vec3
	PrevPosition mgl64.Vec3
	RestPosition mgl64.Vec3
	Velocity     mgl64.Vec3
	Fixed        bool
}

// Connection is a distance constraint between two nodes. RestLength is
// captured once at creation and never recomputed. Stiffness in (0,1]
// controls how much of the error one relaxation round removes.
type Connection struct {
	A, B       int
	RestLength float64
	Stiffness  float64
}

// SoftBody is a deformable mesh advanced by explicit Euler integration plus
// iterative distance-constraint relaxation.
type SoftBody struct {
	Nodes       []Node
	Connections []Connection

	Iterations    int
	Damping       float64
	AirResistance float64

	Group        string
	CollidesWith []string

	// Target's geometry buffer is refreshed from node positions each step.
	Target *scene.Object
}

func (s *SoftBody) Kind() string { return "softbody" }

// SoftBodyParams configures CreateSoftBody. ConnectionRadius bounds which
// vertex pairs get a distance constraint.
type SoftBodyParams struct {
	Stiffness        float64
	Iterations       int
	Damping          float64
	AirResistance    float64
	ConnectionRadius float64
	Group            string
	CollidesWith     []string
	Fixed            []int
}

// Cloth is a soft body laid out on a grid with one fixed edge and normals
// recomputed from the grid neighbors.
type Cloth struct {
	SoftBody
	Cols, Rows int
	Normals    []mgl64.Vec3

	// Normalized creation params, kept so the grid can be resampled at a
	// different resolution when the quality level changes.
	params ClothParams
}

func (c *Cloth) Kind() string { return "cloth" }

// ClothParams configures CreateCloth. Cols and Rows count nodes per axis;
// Spacing is the rest distance between neighbors. The top row is anchored.
type ClothParams struct {
	Cols, Rows int
	Spacing    float64
	Origin     mgl64.Vec3
	Stiffness  float64
	Iterations int
	Damping    float64

	Group        string
	CollidesWith []string
}

func newSoftBody(target *scene.Object, p SoftBodyParams) *SoftBody {
	if p.Stiffness <= 0 || p.Stiffness > 1 {
		p.Stiffness = 0.5
	}
	if p.Iterations <= 0 {
		p.Iterations = 3
	}
	if p.Damping <= 0 {
		p.Damping = 0.98
	}
	if p.AirResistance <= 0 {
		p.AirResistance = 0.1
	}
	if p.ConnectionRadius <= 0 {
		p.ConnectionRadius = 1.0
	}

	verts := target.Geometry
	nodes := make([]Node, len(verts))
	for i, v := range verts {
		nodes[i] = Node{Position: v, PrevPosition: v, RestPosition: v}
	}
	for _, idx := range p.Fixed {
		if idx >= 0 && idx < len(nodes) {
			nodes[idx].Fixed = true
		}
	}

	conns := make([]Connection, 0, len(verts)*4)
	r2 := p.ConnectionRadius * p.ConnectionRadius
	for i := 0; i < len(verts); i++ {
		for j := i + 1; j < len(verts); j++ {
			d2 := verts[i].Sub(verts[j]).LenSqr()
			if d2 > 1e-12 && d2 <= r2 {
				conns = append(conns, Connection{
					A: i, B: j,
					RestLength: verts[i].Sub(verts[j]).Len(),
					Stiffness:  p.Stiffness,
				})
			}
		}
	}

	group := p.Group
	if group == "" {
		group = "soft"
	}
	return &SoftBody{
		Nodes:         nodes,
		Connections:   conns,
		Iterations:    p.Iterations,
		Damping:       p.Damping,
		AirResistance: p.AirResistance,
		Group:         group,
		CollidesWith:  p.CollidesWith,
		Target:        target,
	}
}

func newCloth(target *scene.Object, p ClothParams) *Cloth {
	if p.Cols < 2 {
		p.Cols = 8
	}
	if p.Rows < 2 {
		p.Rows = 8
	}
	if p.Spacing <= 0 {
		p.Spacing = 0.25
	}
	if p.Stiffness <= 0 || p.Stiffness > 1 {
		p.Stiffness = 0.8
	}
	if p.Iterations <= 0 {
		p.Iterations = 4
	}
	if p.Damping <= 0 {
		p.Damping = 0.97
	}

	nodes := make([]Node, 0, p.Cols*p.Rows)
	for r := 0; r < p.Rows; r++ {
		for c := 0; c < p.Cols; c++ {
			pos := p.Origin.Add(mgl64.Vec3{
				float64(c) * p.Spacing,
				-float64(r) * p.Spacing,
				0,
			})
			nodes = append(nodes, Node{
				Position:     pos,
				PrevPosition: pos,
				RestPosition: pos,
				Fixed:        r == 0,
			})
		}
	}

	idx := func(r, c int) int { return r*p.Cols + c }
	conns := make([]Connection, 0, p.Cols*p.Rows*4)
	link := func(a, b int) {
		rest := nodes[a].Position.Sub(nodes[b].Position).Len()
		conns = append(conns, Connection{A: a, B: b, RestLength: rest, Stiffness: p.Stiffness})
	}
	for r := 0; r < p.Rows; r++ {
		for c := 0; c < p.Cols; c++ {
			if c+1 < p.Cols {
				link(idx(r, c), idx(r, c+1))
			}
			if r+1 < p.Rows {
				link(idx(r, c), idx(r+1, c))
			}
			// Shear constraints keep the grid from collapsing diagonally.
			if c+1 < p.Cols && r+1 < p.Rows {
				link(idx(r, c), idx(r+1, c+1))
				link(idx(r, c+1), idx(r+1, c))
			}
		}
	}

	group := p.Group
	if group == "" {
		group = "cloth"
	}
	cloth := &Cloth{
		SoftBody: SoftBody{
			Nodes:         nodes,
			Connections:   conns,
			Iterations:    p.Iterations,
			Damping:       p.Damping,
			AirResistance: 0.15,
			Group:         group,
			CollidesWith:  p.CollidesWith,
			Target:        target,
		},
		Cols:    p.Cols,
		Rows:    p.Rows,
		Normals: make([]mgl64.Vec3, p.Cols*p.Rows),
		params:  p,
	}
	cloth.refreshGeometry()
	return cloth
}

// resample rebuilds the cloth grid at n nodes per axis, preserving its
// physical width, origin, and anchored top row. Current deformation is
// discarded, matching how the vortex pool is regenerated on level changes.
func (c *Cloth) resample(n int) {
	if n < 2 || (n == c.Cols && n == c.Rows) {
		return
	}
	p := c.params
	width := float64(p.Cols-1) * p.Spacing
	p.Spacing = width / float64(n-1)
	p.Cols = n
	p.Rows = n

	fresh := newCloth(c.Target, p)
	c.Nodes = fresh.Nodes
	c.Connections = fresh.Connections
	c.Cols = fresh.Cols
	c.Rows = fresh.Rows
	c.Normals = fresh.Normals
	c.params = fresh.params
}

// step runs one soft-body sub-step: explicit Euler for free nodes, the
// relaxation rounds, then Verlet-style velocity reconstruction.
func (s *SoftBody) step(dt float64, gravity mgl64.Vec3) {
	if dt <= 0 {
		return
	}

	for i := range s.Nodes {
		n := &s.Nodes[i]
		if n.Fixed {
			continue
		}
		n.Velocity = n.Velocity.Add(gravity.Mul(dt))
		n.Velocity = n.Velocity.Mul(1 - s.AirResistance*dt)
		n.PrevPosition = n.Position
		n.Position = n.Position.Add(n.Velocity.Mul(dt))
	}

	for it := 0; it < s.Iterations; it++ {
		s.relaxOnce()
	}

	inv := 1 / dt
	for i := range s.Nodes {
		n := &s.Nodes[i]
		if n.Fixed {
			continue
		}
		n.Velocity = n.Position.Sub(n.PrevPosition).Mul(inv * s.Damping)
	}
}

// relaxOnce pulls every connection's endpoints toward its rest length,
// split 50/50 unless one endpoint is fixed.
func (s *SoftBody) relaxOnce() {
	for _, c := range s.Connections {
		a := &s.Nodes[c.A]
		b := &s.Nodes[c.B]
		if a.Fixed && b.Fixed {
			continue
		}
		diff := b.Position.Sub(a.Position)
		dist := diff.Len()
		if dist < 1e-9 {
			continue
		}
		corr := diff.Mul((dist - c.RestLength) / dist * c.Stiffness)
		switch {
		case a.Fixed:
			b.Position = b.Position.Sub(corr)
		case b.Fixed:
			a.Position = a.Position.Add(corr)
		default:
			half := corr.Mul(0.5)
			a.Position = a.Position.Add(half)
			b.Position = b.Position.Sub(half)
		}
	}
}

// refreshGeometry copies node positions into the target's vertex buffer.
func (s *SoftBody) refreshGeometry() {
	if s.Target == nil {
		return
	}
	if len(s.Target.Geometry) != len(s.Nodes) {
		s.Target.Geometry = make([]mgl64.Vec3, len(s.Nodes))
	}
	for i := range s.Nodes {
		s.Target.Geometry[i] = s.Nodes[i].Position
	}
}

// recomputeNormals rebuilds per-node normals from grid neighbors.
func (c *Cloth) recomputeNormals() {
	idx := func(r, col int) int { return r*c.Cols + col }
	for r := 0; r < c.Rows; r++ {
		for col := 0; col < c.Cols; col++ {
			c1 := col + 1
			r2 := r + 1
			if c1 >= c.Cols {
				c1 = col - 1
			}
			if r2 >= c.Rows {
				r2 = r - 1
			}
			p := c.Nodes[idx(r, col)].Position
			du := c.Nodes[idx(r, c1)].Position.Sub(p)
			dv := c.Nodes[idx(r2, col)].Position.Sub(p)
			n := du.Cross(dv)
			if l := n.Len(); l > 1e-9 {
				n = n.Mul(1 / l)
			} else {
				n = mgl64.Vec3{0, 0, 1}
			}
			c.Normals[idx(r, col)] = n
		}
	}
}
