package terrain

import "fmt"

// VerticesPerQuad is the number of vertices emitted per grid quad (two triangles).
const VerticesPerQuad = 6

// BuildMesh converts the field into a triangle list ready for upload.
// Each quad emits upper-left, upper-right, bottom-left, bottom-left,
// upper-right, bottom-right; the index buffer is the identity sequence.
func BuildMesh(f *HeightField) (*Mesh, error) {
	if f.Width < 2 || f.Height < 2 {
		return nil, fmt.Errorf("%w: %dx%d", ErrDegenerateField, f.Width, f.Height)
	}

	count := (f.Width - 1) * (f.Height - 1) * VerticesPerQuad
	vertices := make([]Vertex, 0, count)
	indices := make([]uint32, 0, count)

	bounds := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}

	for j := range f.Height - 1 {
		for i := range f.Width - 1 {
			bottomLeft := f.Index(i, j)
			bottomRight := f.Index(i+1, j)
			upperLeft := f.Index(i, j+1)
			upperRight := f.Index(i+1, j+1)

			for _, idx := range [VerticesPerQuad]int{upperLeft, upperRight, bottomLeft, bottomLeft, upperRight, bottomRight} {
				c := &f.Cells[idx]
				v := Vertex{
					Position: c.Position.Array(),
					Normal:   c.Normal.Array(),
					TexCoord: [2]float32{c.U, c.V},
					Color:    c.Color,
				}
				updateBounds(&bounds, v.Position)
				indices = append(indices, uint32(len(vertices)))
				vertices = append(vertices, v)
			}
		}
	}

	return &Mesh{
		Vertices: vertices,
		Indices:  indices,
		Bounds:   bounds,
	}, nil
}

func updateBounds(b *Bounds, p [3]float32) {
	for k := range 3 {
		if p[k] < b.Min[k] {
			b.Min[k] = p[k]
		}
		if p[k] > b.Max[k] {
			b.Max[k] = p[k]
		}
	}
}
