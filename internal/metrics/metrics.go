// Package metrics aggregates per-frame measurements over a run.
package metrics

import (
	"github.com/san-kum/motionlab/internal/engine"
	"github.com/san-kum/motionlab/internal/phys"
)

type Metric interface {
	Name() string
	Observe(st engine.Stats, w *phys.World)
	Value() float64
	Reset()
}

// Defaults returns the standard run metrics.
func Defaults() []Metric {
	return []Metric{
		NewKineticEnergy(),
		NewStepTime(),
		NewParticleLoad(),
		NewRestlessness(),
	}
}
