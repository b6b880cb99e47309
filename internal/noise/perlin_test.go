package noise

import (
	"errors"
	"math"
	"testing"
)

func TestPermutationIsDuplicatedShuffle(t *testing.T) {
	p := NewPermutation(7)

	seen := make(map[int]bool)
	for i := 0; i < TableSize; i++ {
		v := p[i]
		if v < 0 || v >= TableSize {
			t.Fatalf("p[%d] = %d, out of range", i, v)
		}
		if seen[v] {
			t.Fatalf("value %d appears twice", v)
		}
		seen[v] = true

		if p[i+TableSize] != v {
			t.Errorf("p[%d] = %d, want duplicate %d", i+TableSize, p[i+TableSize], v)
		}
	}
}

func TestPermutationSeeded(t *testing.T) {
	if *NewPermutation(99) != *NewPermutation(99) {
		t.Error("same seed produced different tables")
	}
	if *NewPermutation(1) == *NewPermutation(2) {
		t.Error("different seeds produced identical tables")
	}
}

func TestPerlinDeterminism(t *testing.T) {
	p1 := NewPerlin(12345)
	p2 := NewPerlin(12345)

	for i := 0; i < 200; i++ {
		x := float64(i) * 0.37
		y := float64(i) * 0.53
		if p1.Noise2D(x, y) != p2.Noise2D(x, y) {
			t.Fatalf("Noise2D not deterministic at (%f, %f)", x, y)
		}
	}
}

func TestPerlinLazyTable(t *testing.T) {
	var lazy Perlin
	lazy.Seed = 42
	eager := NewPerlin(42)

	first := lazy.Table()
	if *first != *eager.Table() {
		t.Fatal("lazily built table differs from eager table for the same seed")
	}

	lazy.Noise2D(1.5, 2.5)
	if lazy.Table() != first {
		t.Error("table was rebuilt after first use")
	}
}

func TestPerlinRange(t *testing.T) {
	p := NewPerlin(42)
	for i := 0; i < 10000; i++ {
		x := float64(i)*0.1 - 500
		y := float64(i)*0.07 - 350
		v := p.Noise2D(x, y)
		if math.Abs(v) > 1+1e-9 {
			t.Errorf("Noise2D(%f, %f) = %f, out of [-1, 1]", x, y, v)
		}
	}
}

func TestPerlinLatticeIsZero(t *testing.T) {
	p := NewPerlin(3)
	for x := -4; x <= 4; x++ {
		for y := -4; y <= 4; y++ {
			if v := p.Noise2D(float64(x), float64(y)); v != 0 {
				t.Errorf("Noise2D(%d, %d) = %f, want 0", x, y, v)
			}
		}
	}
}

func TestPerlinSmooth(t *testing.T) {
	p := NewPerlin(77)
	prev := p.Noise2D(0.05, 0.3)
	for i := 1; i < 1000; i++ {
		v := p.Noise2D(0.05+float64(i)*0.01, 0.3)
		if math.Abs(v-prev) > 0.1 {
			t.Fatalf("step %d jumped from %f to %f", i, prev, v)
		}
		prev = v
	}
}

func TestFade(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{1, 1},
		{0.5, 0.5},
	}
	for _, tt := range tests {
		if got := Fade(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Fade(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestGrad(t *testing.T) {
	x, y := 0.25, 0.75
	want := []float64{x + y, -x + y, x - y, -x - y}
	for hash := 0; hash < 8; hash++ {
		if got := Grad(hash, x, y); got != want[hash&3] {
			t.Errorf("Grad(%d) = %v, want %v", hash, got, want[hash&3])
		}
	}
}

func TestNewSampler(t *testing.T) {
	for _, name := range append(Backends(), "") {
		t.Run(name, func(t *testing.T) {
			s1, err := NewSampler(name, 11)
			if err != nil {
				t.Fatalf("NewSampler(%q) error: %v", name, err)
			}
			s2, _ := NewSampler(name, 11)

			for i := 0; i < 50; i++ {
				x, y := float64(i)*0.31+0.1, float64(i)*0.17+0.2
				a, b := s1.Noise2D(x, y), s2.Noise2D(x, y)
				if a != b {
					t.Fatalf("backend %q not deterministic at (%f, %f)", name, x, y)
				}
				if math.IsNaN(a) || a < -1.5 || a > 1.5 {
					t.Errorf("backend %q sample %f out of range", name, a)
				}
			}
		})
	}
}

func TestNewSamplerUnknown(t *testing.T) {
	_, err := NewSampler("worley", 1)
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("NewSampler(worley) error = %v, want ErrUnknownBackend", err)
	}
}
