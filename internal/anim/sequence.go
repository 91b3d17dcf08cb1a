package anim

import "math/rand"

// Step is one segment of a sequence: a base animation, its parameters, a
// duration, and a modifier chain.
type Step struct {
	Base      string
	Params    Params
	Duration  float64
	Modifiers []Modifier
}

// Sequence loops forever; when the last step's duration elapses playback
// wraps to the first.
type Sequence []Step

// compile resolves names and defaults once so the per-tick path is just
// closure calls.
func (st Step) compile() BaseFunc {
	base, ok := baseAnimations[st.Base]
	if !ok {
		base = animFloat
	}
	fn := base
	for _, m := range st.Modifiers {
		fn = wrapModifier(fn, m, st.duration())
	}
	return fn
}

func (st Step) duration() float64 {
	if st.Duration <= 0 {
		return 1
	}
	return st.Duration
}

// sequences is the hand-tuned library: each emotion gets a loop that reads
// as that mood at default intensity.
var sequences = map[Emotion]Sequence{
	EmotionJoy: {
		{Base: "bounce", Duration: 1.2,
			Params:    Params{Amplitude: 0.35, Frequency: 1.4},
			Modifiers: []Modifier{{Kind: "ease", Ease: "bounceOut"}, {Kind: "emotional"}}},
		{Base: "pulse", Duration: 0.8,
			Params:    Params{Amplitude: 0.15, Frequency: 2},
			Modifiers: []Modifier{{Kind: "emotional"}}},
		{Base: "spiral", Duration: 2.0,
			Params:    Params{Amplitude: 0.2, Frequency: 0.8, Radius: 0.4},
			Modifiers: []Modifier{{Kind: "ease", Ease: "quadInOut"}}},
	},
	EmotionReflective: {
		{Base: "sway", Duration: 3.0,
			Params:    Params{Amplitude: 0.12, Frequency: 0.3},
			Modifiers: []Modifier{{Kind: "ease", Ease: "cubicInOut"}, {Kind: "emotional"}}},
		{Base: "float", Duration: 4.0,
			Params: Params{Amplitude: 0.15, Frequency: 0.25}},
		{Base: "rotate", Duration: 5.0,
			Params: Params{Frequency: 0.1}},
	},
	EmotionCurious: {
		{Base: "rotate", Duration: 1.5,
			Params:    Params{Frequency: 0.5},
			Modifiers: []Modifier{{Kind: "ease", Ease: "backOut"}}},
		{Base: "orbit", Duration: 2.5,
			Params:    Params{Frequency: 0.4, Radius: 0.5},
			Modifiers: []Modifier{{Kind: "emotional"}}},
		{Base: "pulse", Duration: 1.0,
			Params:    Params{Amplitude: 0.1, Frequency: 1.5},
			Modifiers: []Modifier{{Kind: "delay", Offset: 0.2}}},
	},
	EmotionExcited: {
		{Base: "shake", Duration: 0.6,
			Params:    Params{Amplitude: 0.08, Frequency: 3},
			Modifiers: []Modifier{{Kind: "emotional"}}},
		{Base: "bounce", Duration: 0.8,
			Params:    Params{Amplitude: 0.4, Frequency: 2.5},
			Modifiers: []Modifier{{Kind: "emotional"}}},
		{Base: "pulse", Duration: 0.5,
			Params:    Params{Amplitude: 0.25, Frequency: 3},
			Modifiers: []Modifier{{Kind: "noise", Amount: 0.3}}},
	},
	EmotionEmpathetic: {
		{Base: "pulse", Duration: 2.0,
			Params:    Params{Amplitude: 0.08, Frequency: 0.6},
			Modifiers: []Modifier{{Kind: "ease", Ease: "quadInOut"}}},
		{Base: "sway", Duration: 3.0,
			Params:    Params{Amplitude: 0.1, Frequency: 0.35},
			Modifiers: []Modifier{{Kind: "emotional"}}},
		{Base: "wave", Duration: 2.5,
			Params: Params{Amplitude: 0.12, Frequency: 0.5}},
	},
	EmotionCalm: {
		{Base: "float", Duration: 5.0,
			Params:    Params{Amplitude: 0.1, Frequency: 0.2},
			Modifiers: []Modifier{{Kind: "ease", Ease: "cubicInOut"}, {Kind: "emotional"}}},
		{Base: "pulse", Duration: 4.0,
			Params: Params{Amplitude: 0.05, Frequency: 0.25}},
	},
	EmotionNeutral: {
		{Base: "float", Duration: 3.0,
			Params: Params{Amplitude: 0.12, Frequency: 0.35}},
		{Base: "pulse", Duration: 2.0,
			Params: Params{Amplitude: 0.06, Frequency: 0.5}},
	},
}

// SequenceFor returns the library sequence for the emotion; unknown
// emotions fall back to neutral.
func SequenceFor(e Emotion) Sequence {
	if s, ok := sequences[e]; ok {
		return s
	}
	return sequences[EmotionNeutral]
}

// preferredBases biases random generation toward motions that read as the
// emotion.
var preferredBases = map[Emotion][]string{
	EmotionJoy:        {"bounce", "pulse", "spiral"},
	EmotionReflective: {"sway", "float", "rotate"},
	EmotionCurious:    {"rotate", "orbit", "pulse"},
	EmotionExcited:    {"shake", "bounce", "pulse"},
	EmotionEmpathetic: {"pulse", "sway", "wave"},
	EmotionCalm:       {"float", "pulse"},
	EmotionNeutral:    {"float", "pulse", "sway"},
}

const preferredBias = 0.7

// RandomSequence draws n steps: 70% of draws come from the emotion's
// preferred bases, the rest from the full catalog.
func RandomSequence(rng *rand.Rand, e Emotion, n int) Sequence {
	if n <= 0 {
		n = 3
	}
	pref := preferredBases[e]
	if len(pref) == 0 {
		pref = preferredBases[EmotionNeutral]
	}
	all := BaseNames()

	seq := make(Sequence, 0, n)
	for i := 0; i < n; i++ {
		var base string
		if rng.Float64() < preferredBias {
			base = pref[rng.Intn(len(pref))]
		} else {
			base = all[rng.Intn(len(all))]
		}
		seq = append(seq, Step{
			Base:     base,
			Duration: 0.8 + rng.Float64()*2.4,
			Params: Params{
				Amplitude: 0.05 + rng.Float64()*0.3,
				Frequency: 0.25 + rng.Float64()*1.5,
				Phase:     rng.Float64() * 6.28,
			},
			Modifiers: []Modifier{{Kind: "emotional"}},
		})
	}
	return seq
}
