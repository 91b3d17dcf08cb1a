package phys

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/motionlab/internal/scene"
)

func TestRelaxationConvergesToRestLength(t *testing.T) {
	target := scene.NewObject("pair")
	target.Geometry = []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}}

	w := NewWorld(DefaultConfig(), nil)
	sb := w.CreateSoftBody(target, SoftBodyParams{
		Stiffness:        0.5,
		ConnectionRadius: 1.5,
	})

	if len(sb.Connections) != 1 {
		t.Fatalf("expected 1 connection, got %d", len(sb.Connections))
	}
	rest := sb.Connections[0].RestLength
	if math.Abs(rest-1.0) > 1e-9 {
		t.Fatalf("rest length should be captured at creation: %f", rest)
	}

	// Stretch one endpoint and relax with no external force.
	sb.Nodes[1].Position = mgl64.Vec3{2, 0, 0}

	prevErr := math.Inf(1)
	for it := 0; it < 50; it++ {
		sb.relaxOnce()
		dist := sb.Nodes[1].Position.Sub(sb.Nodes[0].Position).Len()
		err := math.Abs(dist - rest)
		if err > prevErr+1e-12 {
			t.Fatalf("relaxation error grew at iteration %d: %f -> %f", it, prevErr, err)
		}
		prevErr = err
	}
	if prevErr > 1e-6 {
		t.Errorf("distance did not converge to rest length, error %f", prevErr)
	}
}

func TestRelaxationSplit(t *testing.T) {
	target := scene.NewObject("pair")
	target.Geometry = []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}}

	w := NewWorld(DefaultConfig(), nil)
	sb := w.CreateSoftBody(target, SoftBodyParams{
		Stiffness:        1.0,
		ConnectionRadius: 1.5,
	})

	sb.Nodes[1].Position = mgl64.Vec3{2, 0, 0}
	sb.relaxOnce()

	// Full-stiffness correction of a 1-unit error, split 50/50.
	if math.Abs(sb.Nodes[0].Position.X()-0.5) > 1e-9 {
		t.Errorf("free endpoint A moved %f, want 0.5", sb.Nodes[0].Position.X())
	}
	if math.Abs(sb.Nodes[1].Position.X()-1.5) > 1e-9 {
		t.Errorf("free endpoint B moved to %f, want 1.5", sb.Nodes[1].Position.X())
	}
}

func TestRelaxationFixedEndpoint(t *testing.T) {
	target := scene.NewObject("pair")
	target.Geometry = []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}}

	w := NewWorld(DefaultConfig(), nil)
	sb := w.CreateSoftBody(target, SoftBodyParams{
		Stiffness:        1.0,
		ConnectionRadius: 1.5,
		Fixed:            []int{0},
	})

	sb.Nodes[1].Position = mgl64.Vec3{2, 0, 0}
	sb.relaxOnce()

	if sb.Nodes[0].Position.X() != 0 {
		t.Error("fixed endpoint must not move")
	}
	if math.Abs(sb.Nodes[1].Position.X()-1.0) > 1e-9 {
		t.Errorf("free endpoint should take the full correction, got %f",
			sb.Nodes[1].Position.X())
	}
}

func TestClothAnchoredTopRow(t *testing.T) {
	w := NewWorld(DefaultConfig(), nil)
	w.AddForce("gravity", Gravity(mgl64.Vec3{0, -9.8, 0}))

	cloth := w.CreateCloth(nil, ClothParams{
		Cols: 5, Rows: 5, Spacing: 0.2,
		Origin: mgl64.Vec3{0, 2, 0},
	})

	anchors := make([]mgl64.Vec3, cloth.Cols)
	for c := 0; c < cloth.Cols; c++ {
		anchors[c] = cloth.Nodes[c].Position
	}

	for i := 0; i < 120; i++ {
		w.Step(1.0 / 60.0)
	}

	for c := 0; c < cloth.Cols; c++ {
		if cloth.Nodes[c].Position != anchors[c] {
			t.Errorf("anchored node %d drifted: %v", c, cloth.Nodes[c].Position)
		}
	}

	// The rest of the mesh must actually hang.
	bottom := cloth.Nodes[len(cloth.Nodes)-1]
	if bottom.Position.Y() >= anchors[0].Y() {
		t.Error("free nodes did not fall under gravity")
	}
}

func TestClothResamplePreservesExtent(t *testing.T) {
	w := NewWorld(DefaultConfig(), nil)
	cloth := w.CreateCloth(nil, ClothParams{
		Cols: 8, Rows: 8, Spacing: 0.25,
		Origin: mgl64.Vec3{1, 2, 0},
	})
	width := cloth.Nodes[cloth.Cols-1].Position.Sub(cloth.Nodes[0].Position).Len()

	w.SetClothResolution(4)

	if cloth.Cols != 4 || cloth.Rows != 4 {
		t.Fatalf("grid is %dx%d, want 4x4", cloth.Cols, cloth.Rows)
	}
	if len(cloth.Nodes) != 16 {
		t.Fatalf("expected 16 nodes, got %d", len(cloth.Nodes))
	}
	if cloth.Nodes[0].Position != (mgl64.Vec3{1, 2, 0}) {
		t.Errorf("origin moved: %v", cloth.Nodes[0].Position)
	}
	got := cloth.Nodes[cloth.Cols-1].Position.Sub(cloth.Nodes[0].Position).Len()
	if math.Abs(got-width) > 1e-9 {
		t.Errorf("physical width changed: %f -> %f", width, got)
	}
	for c := 0; c < cloth.Cols; c++ {
		if !cloth.Nodes[c].Fixed {
			t.Errorf("top-row node %d lost its anchor", c)
		}
	}
}

func TestClothResampleSameSizeKeepsState(t *testing.T) {
	w := NewWorld(DefaultConfig(), nil)
	cloth := w.CreateCloth(nil, ClothParams{Cols: 6, Rows: 6, Spacing: 0.2})

	deformed := mgl64.Vec3{9, 9, 9}
	cloth.Nodes[len(cloth.Nodes)-1].Position = deformed
	cloth.Iterations = 9

	w.SetClothResolution(6)

	if cloth.Nodes[len(cloth.Nodes)-1].Position != deformed {
		t.Error("same-size resolution change must not rebuild the grid")
	}

	w.SetClothResolution(10)
	if cloth.Iterations != 9 {
		t.Errorf("resample overwrote the iteration override: %d", cloth.Iterations)
	}
}

func TestSoftBodyFallbackGeometry(t *testing.T) {
	w := NewWorld(DefaultConfig(), nil)
	target := scene.NewObject("empty")

	sb := w.CreateSoftBody(target, SoftBodyParams{ConnectionRadius: 1.2})

	if len(sb.Nodes) == 0 {
		t.Fatal("expected fallback geometry to be substituted")
	}
	if len(target.Geometry) != len(sb.Nodes) {
		t.Error("target geometry should mirror node count")
	}
}

func TestGeometryRefreshedFromNodes(t *testing.T) {
	target := scene.NewObject("pair")
	target.Geometry = []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}}

	w := NewWorld(DefaultConfig(), nil)
	w.AddForce("gravity", Gravity(mgl64.Vec3{0, -9.8, 0}))
	sb := w.CreateSoftBody(target, SoftBodyParams{ConnectionRadius: 1.5})

	w.Step(1.0 / 30.0)

	for i := range sb.Nodes {
		if target.Geometry[i] != sb.Nodes[i].Position {
			t.Fatalf("vertex %d not refreshed from node position", i)
		}
	}
}

func TestClothNormalsUnit(t *testing.T) {
	w := NewWorld(DefaultConfig(), nil)
	cloth := w.CreateCloth(nil, ClothParams{Cols: 4, Rows: 4, Spacing: 0.3})

	w.Step(1.0 / 60.0)

	for i, n := range cloth.Normals {
		if math.Abs(n.Len()-1.0) > 1e-6 {
			t.Errorf("normal %d not unit length: %v", i, n)
		}
	}
}
