package noise

import (
	"errors"
	"fmt"
	"strings"

	perlinlib "github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Backend names accepted by NewSampler.
const (
	BackendPerlin  = "perlin"
	BackendSimplex = "simplex"
	BackendClassic = "classic"
)

// ErrUnknownBackend is returned for an unrecognised backend name.
var ErrUnknownBackend = errors.New("unknown noise backend")

// Sampler is a deterministic 2D noise source with output roughly in [-1, 1].
type Sampler interface {
	Noise2D(x, y float64) float64
}

// Backends lists the accepted backend names.
func Backends() []string {
	return []string{BackendPerlin, BackendSimplex, BackendClassic}
}

// NewSampler creates the named backend seeded with seed. An empty name selects Perlin.
func NewSampler(backend string, seed int64) (Sampler, error) {
	switch strings.ToLower(backend) {
	case "", BackendPerlin:
		return NewPerlin(seed), nil
	case BackendSimplex:
		return &Simplex{noise: opensimplex.New(seed)}, nil
	case BackendClassic:
		// One octave: alpha and beta only weight the higher octaves.
		return &Classic{p: perlinlib.NewPerlin(2, 2, 1, seed)}, nil
	default:
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownBackend, backend, strings.Join(Backends(), ", "))
	}
}

// Simplex adapts OpenSimplex noise.
type Simplex struct {
	noise opensimplex.Noise
}

// Noise2D samples the simplex field.
func (s *Simplex) Noise2D(x, y float64) float64 {
	return s.noise.Eval2(x, y)
}

// Classic adapts the go-perlin implementation of Ken Perlin's reference noise.
type Classic struct {
	p *perlinlib.Perlin
}

// Noise2D samples the classic Perlin field.
func (c *Classic) Noise2D(x, y float64) float64 {
	return c.p.Noise2D(x, y)
}
