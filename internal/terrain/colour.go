package terrain

import (
	"github.com/Faultbox/procscape/pkg/math"
)

// Height band colours.
var (
	ColorWater     = math.RGBA(0, 0, 255, 255)
	ColorShallows  = math.RGBA(173, 216, 230, 255)
	ColorLowland   = math.RGBA(0, 128, 0, 255)
	ColorHills     = math.RGBA(0, 100, 0, 255)
	ColorMountains = math.RGBA(165, 42, 42, 255)
	ColorSnow      = math.RGBA(255, 255, 255, 255)
)

// ColorByHeight maps an elevation to its band colour.
func ColorByHeight(height float32) math.Vec4 {
	switch {
	case height < -1:
		return ColorWater
	case height < 0:
		return ColorShallows
	case height < 1:
		return ColorLowland
	case height < 3:
		return ColorHills
	case height < 5:
		return ColorMountains
	default:
		return ColorSnow
	}
}

// PaintByHeight colours every cell from its elevation band.
func PaintByHeight(f *HeightField) {
	for i := range f.Cells {
		f.Cells[i].Color = ColorByHeight(f.Cells[i].Position.Y)
	}
}
