// Package scene is the facade game and UI code talk to. It owns the terrain,
// the Voronoi regions and the obstacles grown on them, and publishes every
// regeneration atomically: work happens on a private copy that replaces the
// visible one only when all steps succeed.
package scene

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/procscape/internal/logger"
	"github.com/Faultbox/procscape/internal/obstacle"
	"github.com/Faultbox/procscape/internal/terrain"
	"github.com/Faultbox/procscape/internal/voronoi"
	"github.com/Faultbox/procscape/pkg/math"
)

var ErrNoTarget = errors.New("no target region selected")

// Config holds scene construction and level parameters.
type Config struct {
	Width        int
	Height       int
	Seed         int64
	Amplitude    float32
	Wavelength   float32
	NoiseBackend string
	RegionSize   float32
	Rules        []obstacle.RegionRule
	MaxClimb     float32 // steepest step a walker can take; 0 uses the route default

	// Used when a level is (re)built.
	PerlinScale   float32
	PerlinOctaves int
	Regions       int
	RoundTime     time.Duration
}

// DefaultConfig matches the demo: 128x128 terrain, five regions, ten second rounds.
func DefaultConfig() Config {
	return Config{
		Width:         128,
		Height:        128,
		Seed:          1,
		Amplitude:     terrain.DefaultAmplitude,
		Wavelength:    terrain.DefaultWavelength,
		RegionSize:    voronoi.DefaultRegionSize,
		Rules:         obstacle.DefaultRules(),
		PerlinScale:   10,
		PerlinOctaves: 5,
		Regions:       5,
		RoundTime:     10 * time.Second,
	}
}

// Params records how the published terrain was produced.
type Params struct {
	Strategy    terrain.Strategy `json:"strategy"`
	TerrainSeed int64            `json:"terrain_seed"`
	Amplitude   float32          `json:"amplitude"`
	Wavelength  float32          `json:"wavelength"`
	Backend     string           `json:"backend,omitempty"`
	Scale       float32          `json:"scale,omitempty"`
	Octaves     int              `json:"octaves,omitempty"`
	Iterations  int              `json:"iterations,omitempty"`
	Regions     int              `json:"regions,omitempty"`
}

// world is everything a regeneration replaces.
type world struct {
	synth     *terrain.Synthesizer
	base      []float32 // heights before region offsets were applied
	regions   []voronoi.Region
	obstacles []obstacle.Obstacle
	params    Params
}

func (w *world) clone() *world {
	return &world{
		synth:     w.synth.Clone(),
		base:      append([]float32(nil), w.base...),
		regions:   append([]voronoi.Region(nil), w.regions...),
		obstacles: append([]obstacle.Obstacle(nil), w.obstacles...),
		params:    w.params,
	}
}

// terrainChanged records new base heights. Regions and obstacles belong to
// the old heights and are dropped.
func (w *world) terrainChanged(p Params) {
	p.TerrainSeed = w.synth.Seed()
	p.Amplitude = w.synth.Amplitude()
	p.Wavelength = w.synth.Wavelength()
	w.base = w.synth.Field().Heights()
	w.regions = nil
	w.obstacles = nil
	w.params = p
}

// Scene is safe for concurrent use. Regenerations are serialised; queries
// always see a complete, published world.
type Scene struct {
	gen sync.Mutex // serialises regenerations and the rng counter
	mu  sync.RWMutex

	cfg         Config
	seed        int64
	calls       uint64
	partitioner *voronoi.Partitioner
	generator   *obstacle.Generator
	w           *world

	target     voronoi.Colour
	hasTarget  bool
	level      int
	roundStart time.Time

	log *zap.Logger
}

// New builds a scene with flat terrain and no regions.
func New(cfg Config) (*Scene, error) {
	synth, err := terrain.NewSynthesizer(cfg.Width, cfg.Height, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("creating terrain: %w", err)
	}
	if cfg.Amplitude != 0 {
		synth.SetAmplitude(cfg.Amplitude)
	}
	synth.SetWavelength(cfg.Wavelength)
	if err := synth.SetNoiseBackend(cfg.NoiseBackend); err != nil {
		return nil, err
	}

	rules := cfg.Rules
	if rules == nil {
		rules = obstacle.DefaultRules()
	}
	gen, err := obstacle.NewGenerator(rules)
	if err != nil {
		return nil, fmt.Errorf("loading obstacle rules: %w", err)
	}

	part := voronoi.NewPartitioner()
	if cfg.RegionSize > 0 {
		part.RegionSize = cfg.RegionSize
	}

	w := &world{synth: synth}
	w.terrainChanged(Params{Strategy: terrain.StrategyFlat})

	s := &Scene{
		cfg:         cfg,
		seed:        cfg.Seed,
		partitioner: part,
		generator:   gen,
		w:           w,
		level:       1,
		log:         logger.Named("scene"),
	}
	s.log.Info("scene created",
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int64("seed", cfg.Seed),
		zap.String("noise", synth.NoiseBackend()),
	)
	return s, nil
}

// nextRand derives a fresh generator from the scene seed and a call counter.
// Callers must hold s.gen.
func (s *Scene) nextRand() *rand.Rand {
	s.calls++
	return rand.New(rand.NewSource(s.seed ^ int64(s.calls*0x9E3779B97F4A7C15)))
}

// rebuild runs fn on a copy of the published world and swaps it in on success.
// Callers must hold s.gen.
func (s *Scene) rebuild(op string, fn func(w *world) error) error {
	s.mu.RLock()
	next := s.w.clone()
	s.mu.RUnlock()

	start := time.Now()
	if err := fn(next); err != nil {
		s.log.Warn("regeneration failed, keeping previous scene", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	s.w = next
	s.mu.Unlock()

	s.log.Debug("scene published",
		zap.String("op", op),
		zap.Int("regions", len(next.regions)),
		zap.Int("obstacles", len(next.obstacles)),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

// SetRandomSeed reseeds the scene. The terrain noise is rebuilt from the new
// seed and the per-call counter restarts, so the same call sequence after the
// same seed reproduces the same scene.
func (s *Scene) SetRandomSeed(seed int64) {
	s.gen.Lock()
	defer s.gen.Unlock()

	s.seed = seed
	s.calls = 0

	s.mu.Lock()
	s.w.synth.SetRandomSeed(seed)
	s.mu.Unlock()
}

// Seed returns the scene seed.
func (s *Scene) Seed() int64 {
	s.gen.Lock()
	defer s.gen.Unlock()
	return s.seed
}

// GetHeightAt returns the interpolated terrain height at grid-space (x, z).
func (s *Scene) GetHeightAt(x, z float32) float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.w.synth.Field().HeightAt(x, z)
}

// GetRegionColourAtPosition returns the colour of the region whose seed is
// nearest to (x, z), the same rule used to colour the cells.
func (s *Scene) GetRegionColourAtPosition(x, z float32) (voronoi.Colour, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return voronoi.ColourAt(s.w.regions, x, z)
}

// GetRandomVoronoiRegionColour picks the colour of a random region.
func (s *Scene) GetRandomVoronoiRegionColour() (voronoi.Colour, error) {
	s.gen.Lock()
	defer s.gen.Unlock()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return voronoi.RandomColour(s.w.regions, s.nextRand())
}

// GetVoronoiRegionColourVector returns the RGBA vector of a palette colour.
func (s *Scene) GetVoronoiRegionColourVector(c voronoi.Colour) math.Vec4 {
	return c.Vector()
}

// GetVoronoiRegions returns a copy of the current regions.
func (s *Scene) GetVoronoiRegions() []voronoi.Region {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]voronoi.Region(nil), s.w.regions...)
}

// GetRandomPosition returns a random point on the terrain surface.
func (s *Scene) GetRandomPosition() math.Vec3 {
	s.gen.Lock()
	defer s.gen.Unlock()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.w.synth.Field().RandomPosition(s.nextRand())
}

// Obstacles returns the obstacles grown on the current regions.
func (s *Scene) Obstacles() []obstacle.Obstacle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]obstacle.Obstacle(nil), s.w.obstacles...)
}

// Mesh returns the upload-ready geometry of the published terrain. The mesh
// is replaced, never modified, by later regenerations.
func (s *Scene) Mesh() *terrain.Mesh {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.w.synth.Mesh()
}

// Params describes how the published terrain was generated.
func (s *Scene) Params() Params {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.w.params
}
