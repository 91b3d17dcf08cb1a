package metrics

import (
	"github.com/san-kum/motionlab/internal/engine"
	"github.com/san-kum/motionlab/internal/phys"
)

// ParticleLoad averages the live particle count.
type ParticleLoad struct {
	name    string
	total   float64
	samples int
}

func NewParticleLoad() *ParticleLoad {
	return &ParticleLoad{name: "particle_load"}
}

func (p *ParticleLoad) Name() string { return p.name }

func (p *ParticleLoad) Observe(st engine.Stats, _ *phys.World) {
	p.total += float64(st.Particles)
	p.samples++
}

func (p *ParticleLoad) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.total / float64(p.samples)
}

func (p *ParticleLoad) Reset() {
	p.total = 0
	p.samples = 0
}

// Restlessness reports the fraction of body-samples spent awake. A settled
// scene trends toward zero.
type Restlessness struct {
	name    string
	awake   int
	samples int
}

func NewRestlessness() *Restlessness {
	return &Restlessness{name: "restlessness"}
}

func (r *Restlessness) Name() string { return r.name }

func (r *Restlessness) Observe(_ engine.Stats, w *phys.World) {
	for _, b := range w.Bodies() {
		r.samples++
		if !b.Sleeping && !b.Static {
			r.awake++
		}
	}
}

func (r *Restlessness) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return float64(r.awake) / float64(r.samples)
}

func (r *Restlessness) Reset() {
	r.awake = 0
	r.samples = 0
}
