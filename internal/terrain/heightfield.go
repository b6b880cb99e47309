package terrain

import (
	"errors"
	"fmt"
	gomath "math"
	"math/rand"

	"github.com/Faultbox/procscape/pkg/math"
)

// TextureRepeat is how many times the ground texture tiles across the field.
const TextureRepeat = 5.0

var (
	// ErrInvalidSize is returned for a field with a non-positive dimension.
	ErrInvalidSize = errors.New("terrain dimensions must be positive")
	// ErrDegenerateField is returned when the field has no quads to build geometry from.
	ErrDegenerateField = errors.New("terrain needs at least 2x2 samples to build geometry")
)

// HeightField is a Width x Height grid of cells stored row-major (index j*Width+i).
type HeightField struct {
	Width  int
	Height int
	Cells  []Cell
}

// NewHeightField creates a flat field with positions and texture coordinates initialised.
func NewHeightField(width, height int) (*HeightField, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	f := &HeightField{
		Width:  width,
		Height: height,
		Cells:  make([]Cell, width*height),
	}

	step := float32(TextureRepeat) / float32(width)
	for j := range height {
		for i := range width {
			c := &f.Cells[f.Index(i, j)]
			c.Position = math.Vec3{X: float32(i), Y: 0, Z: float32(j)}
			c.U = float32(i) * step
			c.V = float32(j) * step
		}
	}

	CalculateNormals(f)
	return f, nil
}

// Index converts grid coordinates to a Cells index.
func (f *HeightField) Index(i, j int) int {
	return j*f.Width + i
}

// At returns the cell at column i, row j, or nil when out of range.
func (f *HeightField) At(i, j int) *Cell {
	if i < 0 || j < 0 || i >= f.Width || j >= f.Height {
		return nil
	}
	return &f.Cells[f.Index(i, j)]
}

// Clone returns a deep copy.
func (f *HeightField) Clone() *HeightField {
	out := &HeightField{Width: f.Width, Height: f.Height, Cells: make([]Cell, len(f.Cells))}
	copy(out.Cells, f.Cells)
	return out
}

// Heights returns a copy of the elevation values in row-major order.
func (f *HeightField) Heights() []float32 {
	out := make([]float32, len(f.Cells))
	for i := range f.Cells {
		out[i] = f.Cells[i].Position.Y
	}
	return out
}

// SetHeights overwrites all elevations. Callers must recompute normals afterwards.
func (f *HeightField) SetHeights(h []float32) error {
	if len(h) != len(f.Cells) {
		return fmt.Errorf("height count mismatch: expected %d, got %d", len(f.Cells), len(h))
	}
	for i := range f.Cells {
		f.Cells[i].Position.Y = h[i]
	}
	return nil
}

// HeightRange returns the lowest and highest elevation.
func (f *HeightField) HeightRange() (lo, hi float32) {
	lo, hi = float32(gomath.Inf(1)), float32(gomath.Inf(-1))
	for i := range f.Cells {
		y := f.Cells[i].Position.Y
		if y < lo {
			lo = y
		}
		if y > hi {
			hi = y
		}
	}
	return lo, hi
}

// HeightAt returns the bilinearly interpolated elevation at grid-space (x, z).
// Positions outside the field are clamped to the nearest edge.
func (f *HeightField) HeightAt(x, z float32) float32 {
	x = clampf(x, 0, float32(f.Width-1))
	z = clampf(z, 0, float32(f.Height-1))

	i := int(x)
	j := int(z)
	if i >= f.Width-1 {
		i = max(f.Width-2, 0)
	}
	if j >= f.Height-1 {
		j = max(f.Height-2, 0)
	}

	fracX := clampf(x-float32(i), 0, 1)
	fracZ := clampf(z-float32(j), 0, 1)

	h00 := f.heightOrEdge(i, j)
	h10 := f.heightOrEdge(i+1, j)
	h01 := f.heightOrEdge(i, j+1)
	h11 := f.heightOrEdge(i+1, j+1)

	// Lerp along X on both rows, then between the rows along Z.
	near := h00*(1-fracX) + h10*fracX
	far := h01*(1-fracX) + h11*fracX
	return near*(1-fracZ) + far*fracZ
}

func (f *HeightField) heightOrEdge(i, j int) float32 {
	i = min(i, f.Width-1)
	j = min(j, f.Height-1)
	return f.Cells[f.Index(i, j)].Position.Y
}

// RandomPosition picks a uniformly random grid position with its interpolated height.
func (f *HeightField) RandomPosition(rng *rand.Rand) math.Vec3 {
	x := rng.Float32() * float32(f.Width-1)
	z := rng.Float32() * float32(f.Height-1)
	return math.Vec3{X: x, Y: f.HeightAt(x, z), Z: z}
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
