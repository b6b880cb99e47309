// Package noise implements the coherent noise used for terrain synthesis:
// a seeded Perlin permutation table with 2D gradient noise, plus adapters for
// the simplex and classic Perlin libraries behind a common Sampler interface.
package noise

import (
	"math"
	"math/rand"
)

// TableSize is the number of distinct lattice hashes.
const TableSize = 256

// Permutation is a shuffled 0..255 table duplicated to 512 entries so that
// lookups of p[p[x]+y] never need to wrap.
type Permutation [2 * TableSize]int

// NewPermutation builds the table for a seed. The same seed always yields the same table.
func NewPermutation(seed int64) *Permutation {
	base := make([]int, TableSize)
	for i := range base {
		base[i] = i
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(base), func(i, j int) {
		base[i], base[j] = base[j], base[i]
	})

	var p Permutation
	for i, v := range base {
		p[i] = v
		p[i+TableSize] = v
	}
	return &p
}

// Perlin is classic 2D gradient noise over a single permutation table.
// The zero value is usable: the table is built from Seed on first use and
// kept for every later sample.
type Perlin struct {
	Seed int64
	perm *Permutation
}

// NewPerlin returns a generator with its table already built.
func NewPerlin(seed int64) *Perlin {
	return &Perlin{Seed: seed, perm: NewPermutation(seed)}
}

// Table returns the permutation in use, building it if needed.
func (p *Perlin) Table() *Permutation {
	if p.perm == nil {
		p.perm = NewPermutation(p.Seed)
	}
	return p.perm
}

// Noise2D samples the noise at (x, y). Output lies roughly within [-1, 1]
// and is exactly 0 at integer lattice points.
func (p *Perlin) Noise2D(x, y float64) float64 {
	perm := p.Table()

	fx := math.Floor(x)
	fy := math.Floor(y)

	// Unit cell containing the point
	xi := int(fx) & 255
	yi := int(fy) & 255

	// Position inside the cell
	x -= fx
	y -= fy

	u := Fade(x)
	v := Fade(y)

	// Hash the four corners
	a := perm[xi] + yi
	aa := perm[a&255]
	ab := perm[(a+1)&255]
	b := perm[(xi+1)&255] + yi
	ba := perm[b&255]
	bb := perm[(b+1)&255]

	return Lerp(v,
		Lerp(u, Grad(perm[aa], x, y), Grad(perm[ba], x-1, y)),
		Lerp(u, Grad(perm[ab], x, y-1), Grad(perm[bb], x-1, y-1)),
	)
}

// Fade is the quintic smoothing curve 6t^5 - 15t^4 + 10t^3.
func Fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

// Lerp linearly interpolates between a and b.
func Lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

// Grad picks one of four diagonal gradients from the low two hash bits
// and returns its dot product with (x, y).
func Grad(hash int, x, y float64) float64 {
	switch hash & 3 {
	case 0:
		return x + y
	case 1:
		return -x + y
	case 2:
		return x - y
	default:
		return -x - y
	}
}
