package scene

import (
	"time"

	"github.com/Faultbox/procscape/internal/obstacle"
	"github.com/Faultbox/procscape/internal/terrain"
	"github.com/Faultbox/procscape/internal/voronoi"
)

// Snapshot is a detached copy of the published scene for persistence and export.
type Snapshot struct {
	CreatedAt time.Time
	Seed      int64
	Level     int
	Target    voronoi.Colour
	HasTarget bool
	Params    Params
	Field     *terrain.HeightField
	Regions   []voronoi.Region
	Obstacles []obstacle.Obstacle
}

// Snapshot copies the published world. Later regenerations do not affect it.
func (s *Scene) Snapshot() *Snapshot {
	s.gen.Lock()
	seed := s.seed
	s.gen.Unlock()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return &Snapshot{
		CreatedAt: time.Now().UTC(),
		Seed:      seed,
		Level:     s.level,
		Target:    s.target,
		HasTarget: s.hasTarget,
		Params:    s.w.params,
		Field:     s.w.synth.Field().Clone(),
		Regions:   append([]voronoi.Region(nil), s.w.regions...),
		Obstacles: append([]obstacle.Obstacle(nil), s.w.obstacles...),
	}
}
