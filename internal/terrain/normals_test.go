package terrain

import (
	"errors"
	gomath "math"
	"testing"
)

func assertUnitNormals(t *testing.T, f *HeightField) {
	t.Helper()
	for idx, c := range f.Cells {
		l := float64(c.Normal.Length())
		if gomath.IsNaN(l) || gomath.Abs(l-1) > 1e-4 {
			t.Fatalf("cell %d normal %v has length %v", idx, c.Normal, l)
		}
	}
}

func TestFlatNormalsFaceUp(t *testing.T) {
	f, _ := NewHeightField(5, 5)
	for _, c := range f.Cells {
		if c.Normal.Sub(Up).Length() > 1e-6 {
			t.Fatalf("flat normal = %v, want %v", c.Normal, Up)
		}
	}
}

func TestSlopeNormal(t *testing.T) {
	f, _ := NewHeightField(3, 3)
	// Rising one unit per column: normal tilts towards -X.
	for j := range 3 {
		for i := range 3 {
			f.At(i, j).Position.Y = float32(i)
		}
	}
	CalculateNormals(f)

	want := float32(1 / gomath.Sqrt2)
	n := f.At(1, 1).Normal
	if gomath.Abs(float64(n.X+want)) > 1e-5 || gomath.Abs(float64(n.Y-want)) > 1e-5 || gomath.Abs(float64(n.Z)) > 1e-5 {
		t.Errorf("slope normal = %v, want (-%v, %v, 0)", n, want, want)
	}
}

func TestDegenerateNormals(t *testing.T) {
	// A single row has no quads: every vertex touches zero faces.
	f, _ := NewHeightField(6, 1)
	for i := range 6 {
		f.At(i, 0).Position.Y = float32(i * i)
	}
	CalculateNormals(f)

	for _, c := range f.Cells {
		if c.Normal != Up {
			t.Fatalf("degenerate normal = %v, want %v", c.Normal, Up)
		}
	}

	if _, err := BuildMesh(f); !errors.Is(err, ErrDegenerateField) {
		t.Errorf("BuildMesh() error = %v, want ErrDegenerateField", err)
	}
}

func TestBuildMeshLayout(t *testing.T) {
	f, _ := NewHeightField(3, 4)
	f.At(1, 1).Position.Y = 2

	m, err := BuildMesh(f)
	if err != nil {
		t.Fatalf("BuildMesh: %v", err)
	}

	wantVerts := 2 * 3 * VerticesPerQuad
	if len(m.Vertices) != wantVerts || len(m.Indices) != wantVerts {
		t.Fatalf("got %d vertices / %d indices, want %d", len(m.Vertices), len(m.Indices), wantVerts)
	}
	for i, idx := range m.Indices {
		if idx != uint32(i) {
			t.Fatalf("index %d = %d, want identity", i, idx)
		}
	}
	if m.QuadCount() != 6 {
		t.Errorf("QuadCount() = %d, want 6", m.QuadCount())
	}

	// First quad: UL, UR, BL, BL, UR, BR
	want := [][3]float32{{0, 0, 1}, {1, 2, 1}, {0, 0, 0}, {0, 0, 0}, {1, 2, 1}, {1, 0, 0}}
	for k, p := range want {
		if m.Vertices[k].Position != p {
			t.Errorf("vertex %d position = %v, want %v", k, m.Vertices[k].Position, p)
		}
	}

	if m.Bounds.Min != [3]float32{0, 0, 0} || m.Bounds.Max != [3]float32{2, 2, 3} {
		t.Errorf("Bounds = %+v", m.Bounds)
	}
}
