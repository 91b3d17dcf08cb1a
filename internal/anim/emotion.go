// Package anim generates procedural animations: looping sequences of base
// motions shaped by modifier chains and the current emotional state.
package anim

import "errors"

var ErrUnknownEmotion = errors.New("anim: unknown emotion")

// Emotion names a mood that biases animation selection and scaling.
type Emotion string

const (
	EmotionJoy        Emotion = "joy"
	EmotionReflective Emotion = "reflective"
	EmotionCurious    Emotion = "curious"
	EmotionExcited    Emotion = "excited"
	EmotionEmpathetic Emotion = "empathetic"
	EmotionCalm       Emotion = "calm"
	EmotionNeutral    Emotion = "neutral"
)

// profile scales amplitude and playback speed. Neutral is the identity;
// everything else multiplies away from it, weighted by intensity.
type profile struct {
	Scale float64
	Speed float64
}

var profiles = map[Emotion]profile{
	EmotionJoy:        {Scale: 1.2, Speed: 1.3},
	EmotionReflective: {Scale: 0.9, Speed: 0.7},
	EmotionCurious:    {Scale: 1.1, Speed: 1.1},
	EmotionExcited:    {Scale: 1.4, Speed: 1.6},
	EmotionEmpathetic: {Scale: 1.0, Speed: 0.9},
	EmotionCalm:       {Scale: 0.8, Speed: 0.6},
	EmotionNeutral:    {Scale: 1.0, Speed: 1.0},
}

func (e Emotion) Valid() bool {
	_, ok := profiles[e]
	return ok
}

// Emotions lists every valid emotion in a stable order.
func Emotions() []Emotion {
	return []Emotion{
		EmotionJoy, EmotionReflective, EmotionCurious, EmotionExcited,
		EmotionEmpathetic, EmotionCalm, EmotionNeutral,
	}
}

func profileFor(e Emotion) profile {
	if p, ok := profiles[e]; ok {
		return p
	}
	return profiles[EmotionNeutral]
}
