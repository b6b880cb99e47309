package voronoi

import (
	"errors"
	"math/rand"
)

// ErrEmpty is returned by queries made before any regions exist.
var ErrEmpty = errors.New("no regions have been generated")

// RegionAt returns the region owning grid position (x, z) by nearest seed.
func RegionAt(regions []Region, x, z float32) (*Region, error) {
	i := Nearest(regions, x, z)
	if i < 0 {
		return nil, ErrEmpty
	}
	return &regions[i], nil
}

// ColourAt returns the colour of the region owning (x, z).
func ColourAt(regions []Region, x, z float32) (Colour, error) {
	r, err := RegionAt(regions, x, z)
	if err != nil {
		return 0, err
	}
	return r.Colour, nil
}

// RandomColour returns the colour of a uniformly chosen region. Colours used
// by several regions are proportionally more likely.
func RandomColour(regions []Region, rng *rand.Rand) (Colour, error) {
	if len(regions) == 0 {
		return 0, ErrEmpty
	}
	return regions[rng.Intn(len(regions))].Colour, nil
}

// InBounds returns the indices of regions whose approximate bounding box
// contains (x, z). The result is a candidate list, not an ownership answer.
func InBounds(regions []Region, x, z float32) []int {
	var out []int
	for i := range regions {
		if regions[i].Bounds.Contains(x, z) {
			out = append(out, i)
		}
	}
	return out
}
