package export

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/procscape/internal/terrain"
	"github.com/Faultbox/procscape/pkg/math"
)

func rampField(t *testing.T) *terrain.HeightField {
	t.Helper()
	f, err := terrain.NewHeightField(5, 3)
	if err != nil {
		t.Fatalf("NewHeightField() error = %v", err)
	}
	for j := 0; j < f.Height; j++ {
		for i := 0; i < f.Width; i++ {
			c := &f.Cells[f.Index(i, j)]
			c.Position.Y = float32(i)
			c.Color = math.RGBA(uint8(i*50), uint8(j*100), 7, 255)
		}
	}
	return f
}

func TestHeightImage(t *testing.T) {
	img := HeightImage(rampField(t))
	if b := img.Bounds(); b.Dx() != 5 || b.Dy() != 3 {
		t.Fatalf("HeightImage() bounds = %v, want 5x3", b)
	}
	tests := []struct {
		x    int
		want uint8
	}{
		{0, 0},
		{2, 128},
		{4, 255},
	}
	for _, tt := range tests {
		if got := img.GrayAt(tt.x, 1).Y; got != tt.want {
			t.Errorf("GrayAt(%d, 1) = %d, want %d", tt.x, got, tt.want)
		}
	}

	flat, _ := terrain.NewHeightField(2, 2)
	if got := HeightImage(flat).GrayAt(1, 1).Y; got != 128 {
		t.Errorf("flat GrayAt() = %d, want 128", got)
	}
}

func TestColourImage(t *testing.T) {
	img := ColourImage(rampField(t))
	c := img.RGBAAt(3, 2)
	if c.R != 150 || c.G != 200 || c.B != 7 || c.A != 255 {
		t.Errorf("RGBAAt(3, 2) = %v, want {150 200 7 255}", c)
	}
}

func TestPNGFiles(t *testing.T) {
	dir := t.TempDir()
	f := rampField(t)

	path := filepath.Join(dir, "h.png")
	if err := HeightPNG(f, path); err != nil {
		t.Fatalf("HeightPNG() error = %v", err)
	}
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer file.Close()
	cfg, err := png.DecodeConfig(file)
	if err != nil {
		t.Fatalf("png.DecodeConfig() error = %v", err)
	}
	if cfg.Width != 5 || cfg.Height != 3 {
		t.Errorf("PNG size = %dx%d, want 5x3", cfg.Width, cfg.Height)
	}

	if err := RegionPNG(f, filepath.Join(dir, "missing", "r.png")); err == nil {
		t.Error("RegionPNG() into missing dir expected error")
	}
}

func TestExporter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	e := NewExporter(dir, "scene")

	hp, rp, err := e.Export(rampField(t))
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	for _, p := range []string{hp, rp} {
		if !strings.HasPrefix(filepath.Base(p), "scene_") {
			t.Errorf("Export() path %q missing prefix", p)
		}
		if _, err := os.Stat(p); err != nil {
			t.Errorf("Stat(%q) error = %v", p, err)
		}
	}
}

func TestUpscale(t *testing.T) {
	img := ColourImage(rampField(t))

	if got := Upscale(img, 1); got != img {
		t.Error("Upscale(1) should return the image unchanged")
	}

	big := Upscale(img, 3)
	if got := big.Bounds().Dx(); got != 15 {
		t.Errorf("Upscale(3) width = %d, want 15", got)
	}
	if got := big.Bounds().Dy(); got != 9 {
		t.Errorf("Upscale(3) height = %d, want 9", got)
	}
	for _, p := range [][2]int{{0, 0}, {7, 4}, {14, 8}} {
		want := img.At(p[0]/3, p[1]/3)
		if got := big.At(p[0], p[1]); got != want {
			t.Errorf("Upscale(3).At(%d, %d) = %v, want %v", p[0], p[1], got, want)
		}
	}
}

func TestExporterScale(t *testing.T) {
	e := NewExporter(t.TempDir(), "big")
	e.Scale = 4

	hp, _, err := e.Export(rampField(t))
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	file, err := os.Open(hp)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer file.Close()
	cfg, err := png.DecodeConfig(file)
	if err != nil {
		t.Fatalf("DecodeConfig() error = %v", err)
	}
	if cfg.Width != 20 || cfg.Height != 12 {
		t.Errorf("exported size = %dx%d, want 20x12", cfg.Width, cfg.Height)
	}
}
