// Package export writes height fields out as PNG images.
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"github.com/Faultbox/procscape/internal/logger"
	"github.com/Faultbox/procscape/internal/terrain"
)

// HeightImage maps heights linearly onto 0-255 grey, lowest to highest.
// A flat field is mid grey. Image rows follow grid rows (z).
func HeightImage(f *terrain.HeightField) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, f.Width, f.Height))
	lo, hi := f.HeightRange()
	span := hi - lo

	for j := 0; j < f.Height; j++ {
		for i := 0; i < f.Width; i++ {
			v := uint8(128)
			if span > 0 {
				y := f.Cells[f.Index(i, j)].Position.Y
				v = uint8((y-lo)/span*255 + 0.5)
			}
			img.SetGray(i, j, color.Gray{Y: v})
		}
	}
	return img
}

// ColourImage copies the per-cell colours, region or height band, into an image.
func ColourImage(f *terrain.HeightField) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for j := 0; j < f.Height; j++ {
		for i := 0; i < f.Width; i++ {
			b := f.Cells[f.Index(i, j)].Color.Bytes()
			off := img.PixOffset(i, j)
			copy(img.Pix[off:off+4], b[:])
		}
	}
	return img
}

// Upscale enlarges img by an integer factor, one block of pixels per cell.
// Factors below 2 return img unchanged.
func Upscale(img image.Image, factor int) image.Image {
	if factor < 2 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// HeightPNG writes the grey height map of f to path.
func HeightPNG(f *terrain.HeightField, path string) error {
	return writePNG(path, HeightImage(f))
}

// RegionPNG writes the cell colours of f to path.
func RegionPNG(f *terrain.HeightField, path string) error {
	return writePNG(path, ColourImage(f))
}

func writePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return file.Close()
}

// Exporter writes timestamped image pairs into a directory.
type Exporter struct {
	outputDir string
	prefix    string

	// Scale enlarges each cell to Scale x Scale pixels.
	Scale int
}

// NewExporter creates an exporter writing <prefix>_<time>_{height,regions}.png.
func NewExporter(outputDir, prefix string) *Exporter {
	return &Exporter{
		outputDir: outputDir,
		prefix:    prefix,
	}
}

// Export writes both images of f and returns their paths.
func (e *Exporter) Export(f *terrain.HeightField) (heightPath, regionPath string, err error) {
	if e.outputDir != "" {
		if err := os.MkdirAll(e.outputDir, 0755); err != nil {
			return "", "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	base := e.GenerateBase()
	heightPath = base + "_height.png"
	regionPath = base + "_regions.png"

	if err := writePNG(heightPath, Upscale(HeightImage(f), e.Scale)); err != nil {
		return "", "", err
	}
	if err := writePNG(regionPath, Upscale(ColourImage(f), e.Scale)); err != nil {
		return "", "", err
	}

	logger.Named("export").Info("images written",
		zap.String("height", heightPath),
		zap.String("regions", regionPath),
	)
	return heightPath, regionPath, nil
}

// GenerateBase returns the path prefix the next Export would use.
func (e *Exporter) GenerateBase() string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	name := fmt.Sprintf("%s_%s", e.prefix, timestamp)
	if e.outputDir != "" {
		name = filepath.Join(e.outputDir, name)
	}
	return name
}
