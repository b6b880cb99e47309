package terrain

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"
)

// Limits for the iterative shapers.
const (
	MaxFaultIterations = 1000
	MaxParticles       = 200000
)

// SmoothTerrain blends every height with the mean of its 3x3 neighbourhood.
// factor 0 leaves the field unchanged, 1 replaces each height with the mean.
func (s *Synthesizer) SmoothTerrain(factor float32) error {
	factor = clampf(factor, 0, 1)
	f := s.field
	src := f.Heights()

	for j := range f.Height {
		for i := range f.Width {
			var sum float32
			n := 0
			for dj := -1; dj <= 1; dj++ {
				for di := -1; di <= 1; di++ {
					x, z := i+di, j+dj
					if x < 0 || z < 0 || x >= f.Width || z >= f.Height {
						continue
					}
					sum += src[f.Index(x, z)]
					n++
				}
			}
			idx := f.Index(i, j)
			mean := sum / float32(n)
			f.Cells[idx].Position.Y = src[idx]*(1-factor) + mean*factor
		}
	}
	return s.finish(StrategySmooth, zap.Float32("factor", factor))
}

// GenerateFaultTerrain starts flat and applies random straight faults: cells
// on one side of each line rise, the rest sink. Displacement shrinks linearly
// from a quarter of the amplitude to a hundredth over the iterations.
func (s *Synthesizer) GenerateFaultTerrain(iterations int) error {
	if iterations < 1 || iterations > MaxFaultIterations {
		return fmt.Errorf("fault iterations %d outside [1, %d]", iterations, MaxFaultIterations)
	}

	rng := rand.New(rand.NewSource(s.seed))
	f := s.field
	heights := make([]float32, len(f.Cells))

	dMax := s.amplitude * 0.25
	dMin := s.amplitude * 0.01
	w, h := float32(f.Width-1), float32(f.Height-1)

	for it := range iterations {
		d := dMax - (dMax-dMin)*float32(it)/float32(iterations)

		x1, z1 := rng.Float32()*w, rng.Float32()*h
		x2, z2 := rng.Float32()*w, rng.Float32()*h
		dx, dz := x2-x1, z2-z1

		for j := range f.Height {
			for i := range f.Width {
				side := dx*(float32(j)-z1) - dz*(float32(i)-x1)
				if side > 0 {
					heights[f.Index(i, j)] += d
				} else {
					heights[f.Index(i, j)] -= d
				}
			}
		}
	}

	if err := f.SetHeights(heights); err != nil {
		return err
	}
	return s.finish(StrategyFault, zap.Int("iterations", iterations), zap.Int64("seed", s.seed))
}

// GenerateParticleDepositionTerrain starts flat and drops particles from a
// wandering vent. Each particle rolls to its lowest lower neighbour until it
// settles, then raises that cell by a fixed step.
func (s *Synthesizer) GenerateParticleDepositionTerrain(particles int) error {
	if particles < 1 || particles > MaxParticles {
		return fmt.Errorf("particle count %d outside [1, %d]", particles, MaxParticles)
	}

	rng := rand.New(rand.NewSource(s.seed))
	f := s.field
	heights := make([]float32, len(f.Cells))

	// Enough particles land per cell on average to reach the amplitude near the vents.
	step := s.amplitude * float32(f.Width*f.Height) / float32(particles) / 4
	if step <= 0 {
		step = 0.01
	}

	ventX, ventZ := rng.Intn(f.Width), rng.Intn(f.Height)
	for p := range particles {
		if p%64 == 0 && rng.Intn(4) == 0 {
			ventX = min(max(ventX+rng.Intn(3)-1, 0), f.Width-1)
			ventZ = min(max(ventZ+rng.Intn(3)-1, 0), f.Height-1)
		}

		x, z := ventX, ventZ
		for moves := 0; moves < f.Width+f.Height; moves++ {
			nx, nz, ok := lowestNeighbour(f, heights, x, z, step)
			if !ok {
				break
			}
			x, z = nx, nz
		}
		heights[f.Index(x, z)] += step
	}

	if err := f.SetHeights(heights); err != nil {
		return err
	}
	return s.finish(StrategyParticles, zap.Int("particles", particles), zap.Int64("seed", s.seed))
}

// lowestNeighbour returns the 4-neighbour lower than (x, z) by more than step,
// preferring the lowest.
func lowestNeighbour(f *HeightField, heights []float32, x, z int, step float32) (int, int, bool) {
	here := heights[f.Index(x, z)]
	bestX, bestZ := x, z
	best := here - step
	found := false

	for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		nx, nz := x+d[0], z+d[1]
		if nx < 0 || nz < 0 || nx >= f.Width || nz >= f.Height {
			continue
		}
		if h := heights[f.Index(nx, nz)]; h < best {
			best = h
			bestX, bestZ = nx, nz
			found = true
		}
	}
	return bestX, bestZ, found
}
