package voronoi

import (
	"github.com/Faultbox/procscape/pkg/math"
)

// Bounds is an axis-aligned box in grid space.
type Bounds struct {
	MinX, MaxX float32
	MinZ, MaxZ float32
}

// Contains reports whether (x, z) lies inside the box, edges included.
func (b Bounds) Contains(x, z float32) bool {
	return x >= b.MinX && x <= b.MaxX && z >= b.MinZ && z <= b.MaxZ
}

// Region is one Voronoi cell.
//
// Membership is always decided by nearest seed. Bounds is a fixed-size square
// around the seed clipped to the grid and only approximates the true cell; use
// it for coarse culling, never to decide which region owns a point.
type Region struct {
	Seed         math.Vec2 // X = column, Y = row (world Z)
	Colour       Colour
	ColourVector math.Vec4
	Bounds       Bounds
	HeightOffset float32
	Centroid     math.Vec3 // mean position of the cells assigned to this region
	CellCount    int
}

// Nearest returns the index of the region whose seed is closest to (x, z),
// or -1 when there are no regions. Ties go to the earliest region.
func Nearest(regions []Region, x, z float32) int {
	p := math.Vec2{X: x, Y: z}
	best := -1
	var bestDist float32
	for i := range regions {
		d := p.DistanceSq(regions[i].Seed)
		if best < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}
