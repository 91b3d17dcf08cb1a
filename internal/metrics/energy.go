package metrics

import (
	"github.com/san-kum/motionlab/internal/engine"
	"github.com/san-kum/motionlab/internal/phys"
)

// KineticEnergy averages the total kinetic energy of all rigid bodies.
type KineticEnergy struct {
	name    string
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(_ engine.Stats, w *phys.World) {
	sum := 0.0
	for _, b := range w.Bodies() {
		v := b.Velocity.Len()
		sum += 0.5 * b.Mass * v * v
	}
	k.total += sum
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.total = 0
	k.samples = 0
}
