package terrain

import (
	"github.com/Faultbox/procscape/pkg/math"
)

// minNormalLength is the shortest accumulated normal that is still normalised;
// anything shorter falls back to straight up.
const minNormalLength = 1e-6

// Up is the normal given to vertices with no usable face data.
var Up = math.Vec3{X: 0, Y: 1, Z: 0}

// CalculateNormals recomputes every vertex normal from the current heights.
// Each quad contributes one face normal; a vertex averages the (up to four)
// faces touching it. Vertices with no faces, or whose faces cancel out, face up.
func CalculateNormals(f *HeightField) {
	quadsX := f.Width - 1
	quadsZ := f.Height - 1

	var faces []math.Vec3
	if quadsX > 0 && quadsZ > 0 {
		faces = make([]math.Vec3, quadsX*quadsZ)
		for j := range quadsZ {
			for i := range quadsX {
				v1 := f.Cells[f.Index(i, j)].Position
				v2 := f.Cells[f.Index(i+1, j)].Position
				v3 := f.Cells[f.Index(i, j+1)].Position

				edge1 := v1.Sub(v3)
				edge2 := v3.Sub(v2)
				faces[j*quadsX+i] = edge1.Cross(edge2)
			}
		}
	}

	face := func(i, j int) (math.Vec3, bool) {
		if i < 0 || j < 0 || i >= quadsX || j >= quadsZ {
			return math.Vec3{}, false
		}
		return faces[j*quadsX+i], true
	}

	for j := range f.Height {
		for i := range f.Width {
			var sum math.Vec3
			count := 0
			for _, q := range [4][2]int{{i - 1, j - 1}, {i, j - 1}, {i - 1, j}, {i, j}} {
				if n, ok := face(q[0], q[1]); ok {
					sum = sum.Add(n)
					count++
				}
			}

			c := &f.Cells[f.Index(i, j)]
			if count == 0 {
				c.Normal = Up
				continue
			}

			avg := sum.Scale(1 / float32(count))
			if avg.Length() < minNormalLength {
				c.Normal = Up
				continue
			}
			c.Normal = avg.Normalize()
		}
	}
}
