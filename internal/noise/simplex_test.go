package noise

import (
	"math"
	"testing"
)

func TestDeterministicPerSeed(t *testing.T) {
	a := NewSimplex(42)
	b := NewSimplex(42)

	for i := 0; i < 100; i++ {
		x := float64(i) * 0.173
		if a.Eval3(x, x*0.5, x*0.25) != b.Eval3(x, x*0.5, x*0.25) {
			t.Fatalf("same seed produced different noise at sample %d", i)
		}
	}
}

func TestDifferentSeedsDiffer(t *testing.T) {
	a := NewSimplex(1)
	b := NewSimplex(2)

	same := 0
	for i := 0; i < 50; i++ {
		x := float64(i)*0.31 + 0.1
		if a.Eval3(x, x, x) == b.Eval3(x, x, x) {
			same++
		}
	}
	if same == 50 {
		t.Error("different seeds produced identical fields")
	}
}

func TestNoise3Range(t *testing.T) {
	s := NewSimplex(7)
	for i := 0; i < 1000; i++ {
		x := float64(i) * 0.0917
		v := s.Noise3(x, x*1.3, x*0.7)
		if v < 0 || v > 1 {
			t.Fatalf("Noise3 out of [0,1]: %f at sample %d", v, i)
		}
	}
}

func TestEval3Continuity(t *testing.T) {
	s := NewSimplex(99)
	prev := s.Eval3(0, 0, 0)
	for i := 1; i < 500; i++ {
		x := float64(i) * 0.001
		v := s.Eval3(x, 0, 0)
		if math.Abs(v-prev) > 0.05 {
			t.Fatalf("discontinuity at x=%f: %f -> %f", x, prev, v)
		}
		prev = v
	}
}

func TestFBMRange(t *testing.T) {
	s := NewSimplex(5)
	for i := 0; i < 500; i++ {
		x := float64(i) * 0.113
		v := s.FBM(x, x*0.9, x*1.1, 4)
		if v < -1 || v > 1 {
			t.Fatalf("FBM out of [-1,1]: %f", v)
		}
	}
}

func TestFBMOneOctaveMatchesEval(t *testing.T) {
	s := NewSimplex(11)
	if s.FBM(1.5, 2.5, 3.5, 1) != s.Eval3(1.5, 2.5, 3.5) {
		t.Error("single-octave FBM should equal raw noise")
	}
}
