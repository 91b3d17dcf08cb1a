package metrics

import (
	"github.com/san-kum/motionlab/internal/engine"
	"github.com/san-kum/motionlab/internal/phys"
)

// StepTime averages measured frame cost and remembers the worst frame.
type StepTime struct {
	name    string
	total   float64
	max     float64
	samples int
}

func NewStepTime() *StepTime {
	return &StepTime{name: "step_ms"}
}

func (s *StepTime) Name() string { return s.name }

func (s *StepTime) Observe(st engine.Stats, _ *phys.World) {
	s.total += st.StepMs
	if st.StepMs > s.max {
		s.max = st.StepMs
	}
	s.samples++
}

func (s *StepTime) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.total / float64(s.samples)
}

// Max reports the single worst frame in milliseconds.
func (s *StepTime) Max() float64 { return s.max }

func (s *StepTime) Reset() {
	s.total = 0
	s.max = 0
	s.samples = 0
}
