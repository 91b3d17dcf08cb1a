package phys

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

const (
	// Baumgarte positional correction: remove this fraction of the
	// penetration beyond the slop each resolution, without adding energy.
	correctionPercent = 0.2
	correctionSlop    = 0.01

	// Soft contacts are deliberately gentler to keep meshes from exploding.
	softRestitution = 0.3
	softCorrection  = 0.1
)

// detectAndResolve runs once per sub-step after integration. Broad phase is
// group membership; narrow phase is sphere-sphere for rigid pairs and
// per-node sphere tests for soft bodies.
func (w *World) detectAndResolve() {
	checked := make(map[[2]int]bool)

	for _, a := range w.bodies {
		if !a.collidesWithGroup() {
			continue
		}
		for _, group := range a.CollidesWith {
			for _, b := range w.groups[group] {
				if a == b {
					continue
				}
				lo, hi := a.id, b.id
				if lo > hi {
					lo, hi = hi, lo
				}
				key := [2]int{lo, hi}
				if checked[key] {
					continue
				}
				checked[key] = true
				if a.Sleeping && b.Sleeping {
					continue
				}
				w.collideSpheres(a, b)
			}
		}
	}

	for _, sb := range w.softs {
		for _, group := range sb.CollidesWith {
			for _, b := range w.groups[group] {
				w.collideSoftBody(sb, b)
			}
		}
	}
}

// collideSpheres tests and resolves one rigid pair. Unsupported shape
// combinations are skipped and logged once; physics in a visualization
// context degrades instead of crashing the render loop.
func (w *World) collideSpheres(a, b *PhysicsObject) {
	if a.Shape != ColliderSphere || b.Shape != ColliderSphere {
		key := [2]ColliderShape{a.Shape, b.Shape}
		if !w.skippedShapes[key] {
			w.skippedShapes[key] = true
			w.log.Warn("unsupported collider pair, skipping",
				zap.Int("shapeA", int(a.Shape)),
				zap.Int("shapeB", int(b.Shape)))
		}
		return
	}

	diff := a.Position.Sub(b.Position)
	dist := diff.Len()
	minDist := a.Radius + b.Radius
	if dist >= minDist || dist < 1e-9 {
		return
	}

	normal := diff.Mul(1 / dist)
	depth := minDist - dist
	w.resolveContact(a, b, normal, depth)
}

// resolveContact applies an impulse along the normal plus a fractional
// positional correction. normal points from b toward a.
func (w *World) resolveContact(a, b *PhysicsObject, normal mgl64.Vec3, depth float64) {
	relVel := a.Velocity.Sub(b.Velocity)
	velAlongNormal := relVel.Dot(normal)
	if velAlongNormal > 0 {
		return
	}

	invSum := a.InvMass + b.InvMass
	if invSum == 0 {
		return
	}

	e := math.Min(a.Restitution, b.Restitution)
	j := -(1 + e) * velAlongNormal / invSum

	impulse := normal.Mul(j)
	a.Velocity = a.Velocity.Add(impulse.Mul(a.InvMass))
	b.Velocity = b.Velocity.Sub(impulse.Mul(b.InvMass))

	corr := math.Max(depth-correctionSlop, 0) / invSum * correctionPercent
	a.Position = a.Position.Add(normal.Mul(corr * a.InvMass))
	b.Position = b.Position.Sub(normal.Mul(corr * b.InvMass))

	a.Wake()
	b.Wake()

	if a.OnCollision != nil {
		a.OnCollision(b, normal, depth)
	}
	if b.OnCollision != nil {
		b.OnCollision(a, normal.Mul(-1), depth)
	}
}

// collideSoftBody tests every free node against a rigid sphere. Each
// penetrating node is pushed out individually; the single deepest node is
// the contact representative reported to the rigid side. A known
// approximation: simultaneous multi-point contact loses information.
func (w *World) collideSoftBody(sb *SoftBody, b *PhysicsObject) {
	if b.Shape != ColliderSphere {
		return
	}

	deepest := -1
	maxDepth := 0.0
	var repNormal mgl64.Vec3

	for i := range sb.Nodes {
		n := &sb.Nodes[i]
		if n.Fixed {
			continue
		}
		diff := n.Position.Sub(b.Position)
		dist := diff.Len()
		if dist >= b.Radius || dist < 1e-9 {
			continue
		}
		normal := diff.Mul(1 / dist)
		depth := b.Radius - dist

		n.Position = n.Position.Add(normal.Mul(depth * softCorrection))
		vn := n.Velocity.Dot(normal)
		if vn < 0 {
			n.Velocity = n.Velocity.Sub(normal.Mul((1 + softRestitution) * vn))
		}

		if depth > maxDepth {
			maxDepth = depth
			deepest = i
			repNormal = normal
		}
	}

	if deepest < 0 {
		return
	}

	b.Wake()
	if !b.Static && b.InvMass > 0 {
		node := &sb.Nodes[deepest]
		relVel := node.Velocity.Sub(b.Velocity)
		vn := relVel.Dot(repNormal)
		if vn < 0 {
			// Half impulse: the node is not actually infinite mass.
			b.Velocity = b.Velocity.Add(repNormal.Mul((1 + softRestitution) * vn * 0.5))
		}
	}
	if b.OnCollision != nil {
		b.OnCollision(nil, repNormal.Mul(-1), maxDepth)
	}
}
