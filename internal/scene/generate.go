package scene

import (
	"math/rand"

	"github.com/Faultbox/procscape/internal/terrain"
	"github.com/Faultbox/procscape/internal/voronoi"
)

// GenerateHeightMap replaces the terrain with a sine wave.
func (s *Scene) GenerateHeightMap() error {
	s.gen.Lock()
	defer s.gen.Unlock()

	return s.rebuild("sine terrain", func(w *world) error {
		if err := w.synth.GenerateHeightMap(); err != nil {
			return err
		}
		w.terrainChanged(Params{Strategy: terrain.StrategySine})
		return nil
	})
}

// GenerateRandomHeightMap replaces the terrain with uniform noise from the
// terrain seed.
func (s *Scene) GenerateRandomHeightMap() error {
	s.gen.Lock()
	defer s.gen.Unlock()

	return s.rebuild("random terrain", func(w *world) error {
		if err := w.synth.GenerateRandomHeightMap(); err != nil {
			return err
		}
		w.terrainChanged(Params{Strategy: terrain.StrategyRandom})
		return nil
	})
}

// GeneratePerlinNoiseTerrain replaces the terrain with fractal noise.
// Octaves are clamped to [1, 8].
func (s *Scene) GeneratePerlinNoiseTerrain(scale float32, octaves int) error {
	s.gen.Lock()
	defer s.gen.Unlock()

	return s.rebuild("perlin terrain", func(w *world) error {
		return perlinTerrain(w, scale, octaves)
	})
}

func perlinTerrain(w *world, scale float32, octaves int) error {
	if err := w.synth.GeneratePerlinNoiseTerrain(scale, octaves); err != nil {
		return err
	}
	w.terrainChanged(Params{
		Strategy: terrain.StrategyPerlin,
		Backend:  w.synth.NoiseBackend(),
		Scale:    scale,
		Octaves:  terrain.ClampOctaves(octaves),
	})
	return nil
}

// GenerateFaultTerrain replaces the terrain with accumulated fault lines.
func (s *Scene) GenerateFaultTerrain(iterations int) error {
	s.gen.Lock()
	defer s.gen.Unlock()

	return s.rebuild("fault terrain", func(w *world) error {
		if err := w.synth.GenerateFaultTerrain(iterations); err != nil {
			return err
		}
		w.terrainChanged(Params{Strategy: terrain.StrategyFault, Iterations: iterations})
		return nil
	})
}

// GenerateParticleDepositionTerrain replaces the terrain with deposited particles.
func (s *Scene) GenerateParticleDepositionTerrain(particles int) error {
	s.gen.Lock()
	defer s.gen.Unlock()

	return s.rebuild("particle terrain", func(w *world) error {
		if err := w.synth.GenerateParticleDepositionTerrain(particles); err != nil {
			return err
		}
		w.terrainChanged(Params{Strategy: terrain.StrategyParticles, Iterations: particles})
		return nil
	})
}

// SmoothTerrain blends the current base heights with their neighbours.
// Regions are dropped since their offsets were computed on the old surface.
func (s *Scene) SmoothTerrain(factor float32) error {
	s.gen.Lock()
	defer s.gen.Unlock()

	return s.rebuild("smooth terrain", func(w *world) error {
		if err := w.synth.Field().SetHeights(w.base); err != nil {
			return err
		}
		prev := w.params
		if err := w.synth.SmoothTerrain(factor); err != nil {
			return err
		}
		prev.Regions = 0
		w.terrainChanged(prev)
		return nil
	})
}

// GenerateVoronoiRegions partitions the current terrain into numRegions
// regions, replacing any earlier regions and their obstacles. Offsets are
// applied to the base heights, so regenerating does not accumulate them.
func (s *Scene) GenerateVoronoiRegions(numRegions int) error {
	s.gen.Lock()
	defer s.gen.Unlock()

	rng := s.nextRand()
	return s.rebuild("voronoi regions", func(w *world) error {
		return s.regions(w, numRegions, rng)
	})
}

func (s *Scene) regions(w *world, numRegions int, rng *rand.Rand) error {
	field := w.synth.Field()
	if err := field.SetHeights(w.base); err != nil {
		return err
	}
	regions, err := s.partitioner.Generate(field, numRegions, rng)
	if err != nil {
		return err
	}
	if err := w.synth.Rebuild(); err != nil {
		return err
	}
	w.regions = regions
	w.obstacles = nil
	w.params.Regions = numRegions
	return nil
}

// GenerateObstacles grows an obstacle at the centroid of every region.
func (s *Scene) GenerateObstacles() error {
	s.gen.Lock()
	defer s.gen.Unlock()

	return s.rebuild("obstacles", func(w *world) error {
		return s.obstacles(w)
	})
}

func (s *Scene) obstacles(w *world) error {
	if len(w.regions) == 0 {
		return voronoi.ErrEmpty
	}
	obs, err := s.generator.Generate(w.regions, w.synth.Field().HeightAt)
	if err != nil {
		return err
	}
	w.obstacles = obs
	return nil
}
