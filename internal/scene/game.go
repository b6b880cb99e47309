package scene

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/procscape/internal/voronoi"
)

// SelectTargetRegion picks the colour of a random region as the new target.
func (s *Scene) SelectTargetRegion() (voronoi.Colour, error) {
	s.gen.Lock()
	defer s.gen.Unlock()
	return s.selectTarget()
}

// selectTarget must be called with s.gen held.
func (s *Scene) selectTarget() (voronoi.Colour, error) {
	rng := s.nextRand()

	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := voronoi.RandomColour(s.w.regions, rng)
	if err != nil {
		return 0, err
	}
	s.target = c
	s.hasTarget = true
	return c, nil
}

// Target returns the current target colour, if one has been selected.
func (s *Scene) Target() (voronoi.Colour, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.target, s.hasTarget
}

// IsTargetRegion reports whether c is the target colour.
func (s *Scene) IsTargetRegion(c voronoi.Colour) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasTarget && c == s.target
}

// Level returns the current level, starting at 1.
func (s *Scene) Level() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.level
}

// CheckPosition advances to the next level when (x, z) lies in a region of
// the target colour. It reports whether the target was reached.
func (s *Scene) CheckPosition(x, z float32) (bool, error) {
	s.gen.Lock()
	defer s.gen.Unlock()

	s.mu.RLock()
	if !s.hasTarget {
		s.mu.RUnlock()
		return false, ErrNoTarget
	}
	c, err := voronoi.ColourAt(s.w.regions, x, z)
	reached := err == nil && c == s.target
	s.mu.RUnlock()
	if err != nil {
		return false, err
	}
	if !reached {
		return false, nil
	}

	s.log.Info("target region reached", zap.Stringer("colour", c), zap.Int("level", s.Level()))
	return true, s.buildLevel(true)
}

// NextLevel builds a fresh level: new fractal terrain, new regions and
// obstacles, and a new target. The level counter only advances when the
// whole build succeeds.
func (s *Scene) NextLevel() error {
	s.gen.Lock()
	defer s.gen.Unlock()
	return s.buildLevel(true)
}

// Start builds the first level, resets the counter to 1 and starts the
// round clock.
func (s *Scene) Start(now time.Time) error {
	s.gen.Lock()
	defer s.gen.Unlock()

	if err := s.buildLevel(false); err != nil {
		return err
	}
	s.mu.Lock()
	s.level = 1
	s.roundStart = now
	s.mu.Unlock()
	return nil
}

func (s *Scene) buildLevel(advance bool) error {
	terrainSeed := s.nextRand().Int63()
	regionRng := s.nextRand()

	err := s.rebuild("level", func(w *world) error {
		w.synth.SetRandomSeed(terrainSeed)
		if err := perlinTerrain(w, s.cfg.PerlinScale, s.cfg.PerlinOctaves); err != nil {
			return err
		}
		if err := s.regions(w, s.cfg.Regions, regionRng); err != nil {
			return err
		}
		return s.obstacles(w)
	})
	if err != nil {
		return err
	}
	if _, err := s.selectTarget(); err != nil {
		return err
	}

	s.mu.Lock()
	if advance {
		s.level++
	}
	level, target := s.level, s.target
	s.mu.Unlock()

	s.log.Info("level built", zap.Int("level", level), zap.Stringer("target", target))
	return nil
}

// StartRound starts the round clock at now.
func (s *Scene) StartRound(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roundStart = now
}

// Remaining returns the time left in the current round, never negative.
func (s *Scene) Remaining(now time.Time) time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return max(s.cfg.RoundTime-now.Sub(s.roundStart), 0)
}

// Tick ends the round when its time has run out: the next level is built and
// the clock restarts. It reports whether a new level was built.
func (s *Scene) Tick(now time.Time) (bool, error) {
	if s.cfg.RoundTime <= 0 || s.Remaining(now) > 0 {
		return false, nil
	}
	if err := s.NextLevel(); err != nil {
		return false, err
	}
	s.StartRound(now)
	return true, nil
}
