package anim

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/motionlab/internal/noise"
	"github.com/san-kum/motionlab/internal/scene"
)

// State is one target's playback position within a sequence. The rest pose
// is captured once at creation; every tick writes an absolute pose derived
// from it, so resetting never accumulates drift.
type State struct {
	ctx      Context
	seq      Sequence
	compiled []BaseFunc
	params   []Params
	idx      int
	stepT    float64
}

func newState(target *scene.Object, seq Sequence, n *noise.Simplex, e Emotion, intensity float64) *State {
	var og []mgl64.Vec3
	if len(target.Geometry) > 0 {
		og = make([]mgl64.Vec3, len(target.Geometry))
		copy(og, target.Geometry)
	}
	s := &State{ctx: Context{
		Target:         target,
		Origin:         target.Transform,
		OriginGeometry: og,
		Noise:          n,
		Emotion:        e,
		Intensity:      intensity,
	}}
	s.setSequence(seq)
	return s
}

func (s *State) setSequence(seq Sequence) {
	s.seq = seq
	s.compiled = make([]BaseFunc, len(seq))
	s.params = make([]Params, len(seq))
	for i, st := range seq {
		s.compiled[i] = st.compile()
		s.params[i] = st.Params.withDefaults()
	}
	s.idx = 0
	s.stepT = 0
}

// Advance moves playback forward and applies the current step's pose.
func (s *State) Advance(dt float64) {
	if len(s.seq) == 0 {
		return
	}
	s.stepT += dt
	for s.stepT >= s.seq[s.idx].duration() {
		s.stepT -= s.seq[s.idx].duration()
		s.idx = (s.idx + 1) % len(s.seq)
	}
	s.compiled[s.idx](&s.ctx, s.params[s.idx], s.stepT)
}

// Reset restores the captured rest pose and rewinds to the first step.
func (s *State) Reset() {
	s.ctx.Target.Transform = s.ctx.Origin
	if len(s.ctx.OriginGeometry) > 0 &&
		len(s.ctx.Target.Geometry) == len(s.ctx.OriginGeometry) {
		copy(s.ctx.Target.Geometry, s.ctx.OriginGeometry)
	}
	s.idx = 0
	s.stepT = 0
}

// retarget swaps the sequence for an emotional state change. Playback and
// pose reset; the rest-pose snapshot is kept.
func (s *State) retarget(seq Sequence, e Emotion, intensity float64) {
	s.Reset()
	s.ctx.Emotion = e
	s.ctx.Intensity = intensity
	s.setSequence(seq)
}

// Emotion reports the state's current emotion.
func (s *State) Emotion() Emotion { return s.ctx.Emotion }

// StepIndex reports the active step within the sequence.
func (s *State) StepIndex() int { return s.idx }
