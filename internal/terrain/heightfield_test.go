package terrain

import (
	"errors"
	gomath "math"
	"math/rand"
	"testing"

	"github.com/Faultbox/procscape/pkg/math"
)

func TestNewHeightFieldInvalid(t *testing.T) {
	for _, dims := range [][2]int{{0, 4}, {4, 0}, {-1, -1}} {
		if _, err := NewHeightField(dims[0], dims[1]); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("NewHeightField(%d, %d) error = %v, want ErrInvalidSize", dims[0], dims[1], err)
		}
	}
}

func TestNewHeightFieldLayout(t *testing.T) {
	f, err := NewHeightField(10, 4)
	if err != nil {
		t.Fatalf("NewHeightField: %v", err)
	}

	if len(f.Cells) != 40 {
		t.Fatalf("len(Cells) = %d, want 40", len(f.Cells))
	}

	c := f.At(3, 2)
	if c.Position != (math.Vec3{X: 3, Y: 0, Z: 2}) {
		t.Errorf("At(3, 2).Position = %v, want (3, 0, 2)", c.Position)
	}
	if c.U != 1.5 || c.V != 1.0 {
		t.Errorf("At(3, 2) uv = (%v, %v), want (1.5, 1.0)", c.U, c.V)
	}
	if f.At(10, 0) != nil || f.At(0, -1) != nil {
		t.Error("At() outside the grid should return nil")
	}
}

func TestHeightAtBilinear(t *testing.T) {
	f, _ := NewHeightField(3, 3)
	// Row 0: 0 2 4, row 1: 2 4 6, row 2: 4 6 8
	for j := range 3 {
		for i := range 3 {
			f.At(i, j).Position.Y = float32(2*i + 2*j)
		}
	}

	tests := []struct {
		x, z float32
		want float32
	}{
		{0, 0, 0},
		{1, 1, 4},
		{0.5, 0, 1},
		{0.5, 0.5, 2},
		{1.5, 1.25, 5.5},
		{2, 2, 8},
		{-5, -5, 0},
		{10, 10, 8},
	}
	for _, tt := range tests {
		got := f.HeightAt(tt.x, tt.z)
		if gomath.Abs(float64(got-tt.want)) > 1e-5 {
			t.Errorf("HeightAt(%v, %v) = %v, want %v", tt.x, tt.z, got, tt.want)
		}
	}
}

func TestHeightAtSingleRow(t *testing.T) {
	f, _ := NewHeightField(4, 1)
	f.At(2, 0).Position.Y = 3
	if got := f.HeightAt(2, 0); got != 3 {
		t.Errorf("HeightAt(2, 0) = %v, want 3", got)
	}
}

func TestRandomPositionInside(t *testing.T) {
	f, _ := NewHeightField(16, 8)
	rng := rand.New(rand.NewSource(5))
	for range 100 {
		p := f.RandomPosition(rng)
		if p.X < 0 || p.X > 15 || p.Z < 0 || p.Z > 7 {
			t.Fatalf("RandomPosition() = %v, outside the grid", p)
		}
	}
}

func TestSetHeightsMismatch(t *testing.T) {
	f, _ := NewHeightField(2, 2)
	if err := f.SetHeights([]float32{1, 2, 3}); err == nil {
		t.Error("SetHeights() with wrong length should fail")
	}
}

func TestCloneIsDeep(t *testing.T) {
	f, _ := NewHeightField(4, 4)
	c := f.Clone()
	c.At(1, 1).Position.Y = 9
	if f.At(1, 1).Position.Y != 0 {
		t.Error("mutating the clone changed the original")
	}
}
