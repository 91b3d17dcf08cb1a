package metrics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/motionlab/internal/engine"
	"github.com/san-kum/motionlab/internal/phys"
)

func TestKineticEnergy(t *testing.T) {
	w := phys.NewWorld(phys.DefaultConfig(), nil)
	w.CreateObject(phys.ObjectParams{Mass: 2, Velocity: mgl64.Vec3{3, 0, 0}})

	m := NewKineticEnergy()
	m.Observe(engine.Stats{}, w)

	// 0.5 * 2 * 9 = 9
	if math.Abs(m.Value()-9.0) > 1e-9 {
		t.Errorf("expected energy 9.0, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("reset did not clear the accumulator")
	}
}

func TestStepTimeAvgAndMax(t *testing.T) {
	m := NewStepTime()
	for _, ms := range []float64{2, 4, 12} {
		m.Observe(engine.Stats{StepMs: ms}, nil)
	}

	if math.Abs(m.Value()-6.0) > 1e-9 {
		t.Errorf("expected avg 6.0, got %f", m.Value())
	}
	if m.Max() != 12 {
		t.Errorf("expected max 12, got %f", m.Max())
	}
}

func TestParticleLoad(t *testing.T) {
	m := NewParticleLoad()
	m.Observe(engine.Stats{Particles: 10}, nil)
	m.Observe(engine.Stats{Particles: 30}, nil)

	if math.Abs(m.Value()-20.0) > 1e-9 {
		t.Errorf("expected avg 20, got %f", m.Value())
	}
}

func TestRestlessness(t *testing.T) {
	w := phys.NewWorld(phys.DefaultConfig(), nil)
	awake := w.CreateObject(phys.ObjectParams{Velocity: mgl64.Vec3{1, 0, 0}})
	asleep := w.CreateObject(phys.ObjectParams{})
	asleep.Sleeping = true
	_ = awake

	m := NewRestlessness()
	m.Observe(engine.Stats{}, w)

	if math.Abs(m.Value()-0.5) > 1e-9 {
		t.Errorf("expected 0.5 awake fraction, got %f", m.Value())
	}
}

func TestDefaultsNamed(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Defaults() {
		if m.Name() == "" {
			t.Error("metric with empty name")
		}
		if seen[m.Name()] {
			t.Errorf("duplicate metric name %s", m.Name())
		}
		seen[m.Name()] = true
	}
}
