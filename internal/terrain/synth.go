package terrain

import (
	"fmt"
	gomath "math"
	"math/rand"

	"go.uber.org/zap"

	"github.com/Faultbox/procscape/internal/logger"
	"github.com/Faultbox/procscape/internal/noise"
)

// Octave bounds for fractal noise.
const (
	MinOctaves = 1
	MaxOctaves = 8
)

// Defaults taken from the demo scene.
const (
	DefaultAmplitude  = 3.0
	DefaultWavelength = 1.0
)

// Strategy names a height field generator.
type Strategy string

// Generation strategies.
const (
	StrategyFlat      Strategy = "flat"
	StrategySine      Strategy = "sine"
	StrategyRandom    Strategy = "random"
	StrategyPerlin    Strategy = "perlin"
	StrategyFault     Strategy = "fault"
	StrategyParticles Strategy = "particles"
	StrategySmooth    Strategy = "smooth"
)

// Synthesizer owns a height field and regenerates it in place. Every
// generation method finishes by recomputing normals and rebuilding the mesh,
// so Field and Mesh always agree with the current heights.
type Synthesizer struct {
	field *HeightField
	mesh  *Mesh

	amplitude  float32
	wavelength float32

	seed         int64
	noiseBackend string
	sampler      noise.Sampler

	last Strategy
}

// NewSynthesizer creates a flat width x height field.
func NewSynthesizer(width, height int, seed int64) (*Synthesizer, error) {
	f, err := NewHeightField(width, height)
	if err != nil {
		return nil, err
	}

	s := &Synthesizer{
		field:        f,
		amplitude:    DefaultAmplitude,
		wavelength:   DefaultWavelength,
		seed:         seed,
		noiseBackend: noise.BackendPerlin,
		sampler:      noise.NewPerlin(seed),
		last:         StrategyFlat,
	}
	if err := s.Rebuild(); err != nil {
		return nil, err
	}
	return s, nil
}

// Field returns the current height field. The synthesizer keeps ownership.
func (s *Synthesizer) Field() *HeightField { return s.field }

// Mesh returns the geometry built from the current heights.
func (s *Synthesizer) Mesh() *Mesh { return s.mesh }

// LastStrategy reports which generator produced the current heights.
func (s *Synthesizer) LastStrategy() Strategy { return s.last }

// Amplitude returns the height scale.
func (s *Synthesizer) Amplitude() float32 { return s.amplitude }

// SetAmplitude sets the height scale used by every generator.
func (s *Synthesizer) SetAmplitude(a float32) { s.amplitude = a }

// Wavelength returns the sine wavelength, in multiples of the terrain depth.
func (s *Synthesizer) Wavelength() float32 { return s.wavelength }

// SetWavelength sets the sine wavelength. Non-positive values are ignored.
func (s *Synthesizer) SetWavelength(w float32) {
	if w > 0 {
		s.wavelength = w
	}
}

// Seed returns the seed driving random, fault, particle and noise generation.
func (s *Synthesizer) Seed() int64 { return s.seed }

// SetRandomSeed reseeds the generators. The noise permutation is rebuilt once
// here and then reused by every sample until the next reseed.
func (s *Synthesizer) SetRandomSeed(seed int64) {
	s.seed = seed
	sampler, err := noise.NewSampler(s.noiseBackend, seed)
	if err != nil {
		// backend was validated when it was set
		sampler = noise.NewPerlin(seed)
	}
	s.sampler = sampler
}

// NoiseBackend returns the name of the active noise backend.
func (s *Synthesizer) NoiseBackend() string { return s.noiseBackend }

// SetNoiseBackend switches the sampler used by fractal terrain.
func (s *Synthesizer) SetNoiseBackend(name string) error {
	sampler, err := noise.NewSampler(name, s.seed)
	if err != nil {
		return err
	}
	if name == "" {
		name = noise.BackendPerlin
	}
	s.noiseBackend = name
	s.sampler = sampler
	return nil
}

// Clone returns an independent copy sharing no mutable state with s.
func (s *Synthesizer) Clone() *Synthesizer {
	out := *s
	out.field = s.field.Clone()
	out.SetRandomSeed(s.seed)
	if s.mesh != nil {
		m := *s.mesh
		m.Vertices = append([]Vertex(nil), s.mesh.Vertices...)
		m.Indices = append([]uint32(nil), s.mesh.Indices...)
		out.mesh = &m
	}
	return &out
}

// Rebuild recomputes normals and the mesh from the current heights.
func (s *Synthesizer) Rebuild() error {
	CalculateNormals(s.field)
	mesh, err := BuildMesh(s.field)
	if err != nil {
		return fmt.Errorf("building terrain mesh: %w", err)
	}
	s.mesh = mesh
	return nil
}

func (s *Synthesizer) finish(strategy Strategy, fields ...zap.Field) error {
	PaintByHeight(s.field)
	if err := s.Rebuild(); err != nil {
		return err
	}
	s.last = strategy

	lo, hi := s.field.HeightRange()
	logger.Named("terrain").Debug("height map generated", append(fields,
		zap.String("strategy", string(strategy)),
		zap.Int("width", s.field.Width),
		zap.Int("height", s.field.Height),
		zap.Float32("min", lo),
		zap.Float32("max", hi),
	)...)
	return nil
}

// GenerateHeightMap runs a sine wave along the X axis. A wavelength of 1
// spans exactly one full wave over the terrain depth.
func (s *Synthesizer) GenerateHeightMap() error {
	f := s.field
	frequency := 2 * gomath.Pi / float64(f.Height) / float64(s.wavelength)

	for j := range f.Height {
		for i := range f.Width {
			f.Cells[f.Index(i, j)].Position.Y = float32(gomath.Sin(float64(i)*frequency)) * s.amplitude
		}
	}
	return s.finish(StrategySine, zap.Float64("frequency", frequency))
}

// GenerateRandomHeightMap assigns uniform heights in [0, amplitude). A fresh
// generator is seeded on every call, so the same seed reproduces the same field.
func (s *Synthesizer) GenerateRandomHeightMap() error {
	rng := rand.New(rand.NewSource(s.seed))
	f := s.field

	for j := range f.Height {
		for i := range f.Width {
			f.Cells[f.Index(i, j)].Position.Y = rng.Float32() * s.amplitude
		}
	}
	return s.finish(StrategyRandom, zap.Int64("seed", s.seed))
}

// ClampOctaves limits an octave count to [MinOctaves, MaxOctaves].
func ClampOctaves(octaves int) int {
	return min(max(octaves, MinOctaves), MaxOctaves)
}

// FBM sums octaves of the sampler, halving amplitude and doubling frequency
// each layer, and normalises by the total amplitude. The octave count is
// clamped, and a single octave returns the raw sample.
func FBM(s noise.Sampler, x, y float64, octaves int) float64 {
	octaves = ClampOctaves(octaves)

	amplitude := 1.0
	frequency := 1.0
	var sum, total float64
	for range octaves {
		sum += s.Noise2D(x*frequency, y*frequency) * amplitude
		total += amplitude
		amplitude *= 0.5
		frequency *= 2
	}
	return sum / total
}

// GeneratePerlinNoiseTerrain builds fractal terrain. scale stretches the
// noise (larger is smoother); non-positive scales are treated as 1.
func (s *Synthesizer) GeneratePerlinNoiseTerrain(scale float32, octaves int) error {
	if scale <= 0 {
		scale = 1
	}
	octaves = ClampOctaves(octaves)

	f := s.field
	for j := range f.Height {
		for i := range f.Width {
			x := float64(i) / float64(scale)
			y := float64(j) / float64(scale)
			f.Cells[f.Index(i, j)].Position.Y = float32(FBM(s.sampler, x, y, octaves)) * s.amplitude
		}
	}
	return s.finish(StrategyPerlin,
		zap.String("backend", s.noiseBackend),
		zap.Float32("scale", scale),
		zap.Int("octaves", octaves),
	)
}
