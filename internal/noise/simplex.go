// Package noise provides seeded simplex noise used for organic motion
// perturbation. One generator instance is shared by the animation noise
// modifier and the particle wiggle path so a fixed seed reproduces the
// same "personality" everywhere.
package noise

import (
	"math"
	"math/rand"
)

const (
	f3 = 1.0 / 3.0
	g3 = 1.0 / 6.0
)

var grad3 = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

// Simplex is a deterministic-per-seed 3D simplex noise field.
type Simplex struct {
	seed int64
	perm [512]int
}

func NewSimplex(seed int64) *Simplex {
	s := &Simplex{seed: seed}
	rng := rand.New(rand.NewSource(seed))
	var p [256]int
	for i := range p {
		p[i] = i
	}
	rng.Shuffle(256, func(i, j int) { p[i], p[j] = p[j], p[i] })
	for i := 0; i < 512; i++ {
		s.perm[i] = p[i&255]
	}
	return s
}

func (s *Simplex) Seed() int64 { return s.seed }

// Eval3 returns raw simplex noise in roughly [-1, 1].
func (s *Simplex) Eval3(x, y, z float64) float64 {
	skew := (x + y + z) * f3
	i := int(math.Floor(x + skew))
	j := int(math.Floor(y + skew))
	k := int(math.Floor(z + skew))

	unskew := float64(i+j+k) * g3
	x0 := x - (float64(i) - unskew)
	y0 := y - (float64(j) - unskew)
	z0 := z - (float64(k) - unskew)

	// Rank the simplex corner offsets.
	var i1, j1, k1, i2, j2, k2 int
	if x0 >= y0 {
		switch {
		case y0 >= z0:
			i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 1, 0
		case x0 >= z0:
			i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 0, 1
		default:
			i1, j1, k1, i2, j2, k2 = 0, 0, 1, 1, 0, 1
		}
	} else {
		switch {
		case y0 < z0:
			i1, j1, k1, i2, j2, k2 = 0, 0, 1, 0, 1, 1
		case x0 < z0:
			i1, j1, k1, i2, j2, k2 = 0, 1, 0, 0, 1, 1
		default:
			i1, j1, k1, i2, j2, k2 = 0, 1, 0, 1, 1, 0
		}
	}

	x1 := x0 - float64(i1) + g3
	y1 := y0 - float64(j1) + g3
	z1 := z0 - float64(k1) + g3
	x2 := x0 - float64(i2) + 2*g3
	y2 := y0 - float64(j2) + 2*g3
	z2 := z0 - float64(k2) + 2*g3
	x3 := x0 - 1 + 3*g3
	y3 := y0 - 1 + 3*g3
	z3 := z0 - 1 + 3*g3

	ii, jj, kk := i&255, j&255, k&255
	gi0 := s.perm[ii+s.perm[jj+s.perm[kk]]] % 12
	gi1 := s.perm[ii+i1+s.perm[jj+j1+s.perm[kk+k1]]] % 12
	gi2 := s.perm[ii+i2+s.perm[jj+j2+s.perm[kk+k2]]] % 12
	gi3 := s.perm[ii+1+s.perm[jj+1+s.perm[kk+1]]] % 12

	total := corner(x0, y0, z0, gi0) +
		corner(x1, y1, z1, gi1) +
		corner(x2, y2, z2, gi2) +
		corner(x3, y3, z3, gi3)

	return 32.0 * total
}

func corner(x, y, z float64, gi int) float64 {
	t := 0.6 - x*x - y*y - z*z
	if t < 0 {
		return 0
	}
	t *= t
	g := grad3[gi]
	return t * t * (g[0]*x + g[1]*y + g[2]*z)
}

// Noise3 returns noise normalized to [0, 1].
func (s *Simplex) Noise3(x, y, z float64) float64 {
	return (s.Eval3(x, y, z) + 1) * 0.5
}

// FBM sums octaves of Eval3 with halving amplitude and doubling frequency,
// normalized back to [-1, 1].
func (s *Simplex) FBM(x, y, z float64, octaves int) float64 {
	if octaves < 1 {
		octaves = 1
	}
	sum := 0.0
	amp := 1.0
	freq := 1.0
	norm := 0.0
	for o := 0; o < octaves; o++ {
		sum += amp * s.Eval3(x*freq, y*freq, z*freq)
		norm += amp
		amp *= 0.5
		freq *= 2
	}
	return sum / norm
}
