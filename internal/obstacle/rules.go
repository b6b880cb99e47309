// Package obstacle grows L-system obstacles on Voronoi regions, one rule per
// region colour.
package obstacle

import (
	"fmt"
	"strings"

	"github.com/Faultbox/procscape/internal/voronoi"
)

// ObstacleType selects the look and default turtle parameters of an obstacle.
type ObstacleType int

const (
	Spikes ObstacleType = iota
	Crystals
	Vines
)

var typeNames = []string{"spikes", "crystals", "vines"}

func (t ObstacleType) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("obstacle(%d)", int(t))
	}
	return typeNames[t]
}

// MarshalText encodes the type by name.
func (t ObstacleType) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(typeNames) {
		return nil, fmt.Errorf("invalid obstacle type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a type name.
func (t *ObstacleType) UnmarshalText(text []byte) error {
	v, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ParseType looks an obstacle type up by name, ignoring case.
func ParseType(name string) (ObstacleType, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, tn := range typeNames {
		if tn == n {
			return ObstacleType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown obstacle type %q", name)
}

// Turtle defaults per type: branching angle in degrees and trunk length.
func (t ObstacleType) defaults() (angle, length float32) {
	switch t {
	case Crystals:
		return 60, 0.8
	case Vines:
		return 22.5, 0.6
	default:
		return 15, 1
	}
}

// RegionRule describes the obstacle grown on regions of one colour.
// Angle and Length fall back to the type defaults when zero.
type RegionRule struct {
	Colour     voronoi.Colour `yaml:"colour"`
	Type       ObstacleType   `yaml:"type"`
	Axiom      string         `yaml:"axiom"`
	Rules      []string       `yaml:"rules"`
	Iterations int            `yaml:"iterations"`
	Angle      float32        `yaml:"angle,omitempty"`
	Length     float32        `yaml:"length,omitempty"`
}

// DefaultRules returns one rule per palette colour, cycling through the
// obstacle types.
func DefaultRules() []RegionRule {
	shapes := [...]struct {
		axiom string
		rules []string
		n     int
	}{
		Spikes:   {"F", []string{"F=F[+F]F[-F]F"}, 2},
		Crystals: {"F", []string{"F=F[+F][-F]"}, 3},
		Vines:    {"X", []string{"X=F[+X][-X]FX", "F=FF"}, 3},
	}

	rules := make([]RegionRule, 0, voronoi.NumColours)
	for _, c := range voronoi.Palette() {
		t := ObstacleType(int(c) % len(shapes))
		s := shapes[t]
		rules = append(rules, RegionRule{
			Colour:     c,
			Type:       t,
			Axiom:      s.axiom,
			Rules:      append([]string(nil), s.rules...),
			Iterations: s.n,
		})
	}
	return rules
}
