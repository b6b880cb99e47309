package voronoi

import (
	"errors"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/Faultbox/procscape/internal/logger"
	"github.com/Faultbox/procscape/internal/terrain"
	"github.com/Faultbox/procscape/pkg/math"
)

// DefaultRegionSize is the side length of the approximate region bounding box.
const DefaultRegionSize = 30.0

// HeightOffsetWeight scales a region's offset before it is added to its cells.
const HeightOffsetWeight = 0.5

// ErrNoRegions is returned when fewer than one region is requested.
var ErrNoRegions = errors.New("at least one region is required")

// Partitioner scatters seeds over a height field and assigns every cell to
// its nearest seed.
type Partitioner struct {
	RegionSize float32
}

// NewPartitioner returns a partitioner with the default bounding box size.
func NewPartitioner() *Partitioner {
	return &Partitioner{RegionSize: DefaultRegionSize}
}

// Generate replaces any previous partition of f with numRegions fresh regions.
// Each cell takes the colour of its nearest region and is raised by half that
// region's height offset. Centroids are computed from the same assignment.
// The caller is expected to recompute normals afterwards.
func (p *Partitioner) Generate(f *terrain.HeightField, numRegions int, rng *rand.Rand) ([]Region, error) {
	if numRegions < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrNoRegions, numRegions)
	}

	size := p.RegionSize
	if size <= 0 {
		size = DefaultRegionSize
	}
	maxX := float32(f.Width - 1)
	maxZ := float32(f.Height - 1)

	regions := make([]Region, numRegions)
	for i := range regions {
		seed := math.Vec2{X: rng.Float32() * maxX, Y: rng.Float32() * maxZ}
		colour := Colour(rng.Intn(int(NumColours)))

		regions[i] = Region{
			Seed:         seed,
			Colour:       colour,
			ColourVector: colour.Vector(),
			Bounds: Bounds{
				MinX: max(0, seed.X-size/2),
				MaxX: min(maxX, seed.X+size/2),
				MinZ: max(0, seed.Y-size/2),
				MaxZ: min(maxZ, seed.Y+size/2),
			},
			HeightOffset: rng.Float32()*2 - 1,
		}
	}

	Assign(f, regions)

	logger.Named("voronoi").Debug("regions generated",
		zap.Int("regions", numRegions),
		zap.Float32("region_size", size),
		zap.Int("cells", len(f.Cells)),
	)
	return regions, nil
}

// Assign colours and offsets every cell of f by its nearest region, then
// fills in CellCount and Centroid. Regions that win no cell keep their seed
// as centroid, at the field height under the seed.
func Assign(f *terrain.HeightField, regions []Region) {
	sums := make([]math.Vec3, len(regions))
	for i := range regions {
		regions[i].CellCount = 0
	}

	for j := range f.Height {
		for i := range f.Width {
			c := &f.Cells[f.Index(i, j)]
			r := Nearest(regions, float32(i), float32(j))
			if r < 0 {
				continue
			}
			c.Color = regions[r].ColourVector
			c.Position.Y += regions[r].HeightOffset * HeightOffsetWeight

			sums[r] = sums[r].Add(c.Position)
			regions[r].CellCount++
		}
	}

	for i := range regions {
		if regions[i].CellCount == 0 {
			s := regions[i].Seed
			regions[i].Centroid = math.Vec3{X: s.X, Y: f.HeightAt(s.X, s.Y), Z: s.Y}
			continue
		}
		regions[i].Centroid = sums[i].Scale(1 / float32(regions[i].CellCount))
	}
}
