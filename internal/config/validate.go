package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Faultbox/procscape/internal/noise"
	"github.com/Faultbox/procscape/internal/terrain"
)

var ErrInvalid = errors.New("invalid config")

var strategies = []terrain.Strategy{
	terrain.StrategyFlat,
	terrain.StrategySine,
	terrain.StrategyRandom,
	terrain.StrategyPerlin,
	terrain.StrategyFault,
	terrain.StrategyParticles,
}

// Validate reports the first setting no generator would accept.
// Octave counts outside 1-8 are clamped later and pass.
func (c *Config) Validate() error {
	switch {
	case c.Terrain.Width < 1 || c.Terrain.Height < 1:
		return fmt.Errorf("%w: terrain size %dx%d", ErrInvalid, c.Terrain.Width, c.Terrain.Height)
	case !slices.Contains(strategies, terrain.Strategy(c.Terrain.Strategy)):
		return fmt.Errorf("%w: terrain strategy %q", ErrInvalid, c.Terrain.Strategy)
	case c.Terrain.Smooth < 0 || c.Terrain.Smooth > 1:
		return fmt.Errorf("%w: smooth %v outside 0-1", ErrInvalid, c.Terrain.Smooth)
	case c.Noise.Backend != "" && !slices.Contains(noise.Backends(), c.Noise.Backend):
		return fmt.Errorf("%w: noise backend %q", ErrInvalid, c.Noise.Backend)
	case c.Voronoi.Regions < 0:
		return fmt.Errorf("%w: %d regions", ErrInvalid, c.Voronoi.Regions)
	case c.Game.RoundTime < 0:
		return fmt.Errorf("%w: round time %v", ErrInvalid, c.Game.RoundTime)
	case c.Store.Path == "":
		return fmt.Errorf("%w: empty store path", ErrInvalid)
	}
	return nil
}
