package scene

import (
	"errors"
	gomath "math"

	"github.com/Faultbox/procscape/internal/route"
	"github.com/Faultbox/procscape/internal/voronoi"
)

var ErrNoRoute = errors.New("no walkable route to the target region")

// RouteToTarget returns a walkable cell path from (x, z) to the closest cell
// of a target-coloured region. Obstacle footprints are impassable.
func (s *Scene) RouteToTarget(x, z float32) ([][2]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasTarget {
		return nil, ErrNoTarget
	}
	f := s.w.synth.Field()

	pf := route.NewPathFinder(f)
	if s.cfg.MaxClimb > 0 {
		pf.MaxClimb = s.cfg.MaxClimb
	}

	startX := min(max(int(gomath.Round(float64(x))), 0), f.Width-1)
	startZ := min(max(int(gomath.Round(float64(z))), 0), f.Height-1)

	// A walker already standing on an obstacle can still step off it.
	for _, o := range s.w.obstacles {
		ox, oz := int(gomath.Round(float64(o.Origin.X))), int(gomath.Round(float64(o.Origin.Z)))
		if ox != startX || oz != startZ {
			pf.Block(ox, oz)
		}
	}

	// Closest walkable target cell by straight-line distance.
	goalX, goalZ := -1, -1
	best := gomath.Inf(1)
	for j := range f.Height {
		for i := range f.Width {
			r := voronoi.Nearest(s.w.regions, float32(i), float32(j))
			if r < 0 || s.w.regions[r].Colour != s.target || !pf.IsWalkable(i, j) {
				continue
			}
			if d := gomath.Hypot(float64(i-startX), float64(j-startZ)); d < best {
				best, goalX, goalZ = d, i, j
			}
		}
	}
	if goalX < 0 {
		return nil, ErrNoRoute
	}

	path := pf.FindPath(startX, startZ, goalX, goalZ)
	if path == nil {
		return nil, ErrNoRoute
	}
	return path, nil
}
