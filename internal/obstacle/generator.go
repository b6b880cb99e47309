package obstacle

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/procscape/internal/logger"
	"github.com/Faultbox/procscape/internal/lsystem"
	"github.com/Faultbox/procscape/internal/turtle"
	"github.com/Faultbox/procscape/internal/voronoi"
	"github.com/Faultbox/procscape/pkg/math"
)

// Obstacle is the segment list grown on one region.
type Obstacle struct {
	Colour   voronoi.Colour
	Type     ObstacleType
	Origin   math.Vec3
	Segments []turtle.Segment
}

// HeightFunc samples terrain height at grid-space (x, z).
type HeightFunc func(x, z float32) float32

type compiled struct {
	rule   RegionRule
	system *lsystem.System
	angle  float32
	length float32
}

// Generator holds validated rules keyed by colour.
type Generator struct {
	byColour map[voronoi.Colour]*compiled
}

// NewGenerator validates every rule. A later rule for the same colour
// replaces an earlier one.
func NewGenerator(rules []RegionRule) (*Generator, error) {
	g := &Generator{byColour: make(map[voronoi.Colour]*compiled, len(rules))}
	for _, r := range rules {
		if !r.Colour.Valid() {
			return nil, fmt.Errorf("rule for colour %d: invalid colour", int(r.Colour))
		}
		parsed, err := lsystem.ParseRules(r.Rules)
		if err != nil {
			return nil, fmt.Errorf("rule for %s: %w", r.Colour, err)
		}
		sys, err := lsystem.New(r.Axiom, parsed, r.Iterations)
		if err != nil {
			return nil, fmt.Errorf("rule for %s: %w", r.Colour, err)
		}

		angle, length := r.Type.defaults()
		if r.Angle != 0 {
			angle = r.Angle
		}
		if r.Length > 0 {
			length = r.Length
		}
		g.byColour[r.Colour] = &compiled{rule: r, system: sys, angle: angle, length: length}
	}
	return g, nil
}

// Rule returns the rule used for colour c.
func (g *Generator) Rule(c voronoi.Colour) (RegionRule, bool) {
	cr, ok := g.byColour[c]
	if !ok {
		return RegionRule{}, false
	}
	return cr.rule, true
}

// Generate grows one obstacle at the centroid of every region that has a
// rule, standing on the terrain and facing +Y. Regions without a rule are
// skipped.
func (g *Generator) Generate(regions []voronoi.Region, heightAt HeightFunc) ([]Obstacle, error) {
	expanded := make(map[voronoi.Colour]string)
	var out []Obstacle

	for _, r := range regions {
		cr, ok := g.byColour[r.Colour]
		if !ok {
			continue
		}
		symbols, ok := expanded[r.Colour]
		if !ok {
			symbols = cr.system.Expand()
			expanded[r.Colour] = symbols
		}

		origin := r.Centroid
		if heightAt != nil {
			origin.Y = heightAt(origin.X, origin.Z)
		}
		segs, err := turtle.Interpret(symbols, turtle.DefaultState(origin, cr.length, cr.angle))
		if err != nil {
			return nil, fmt.Errorf("obstacle for %s region: %w", r.Colour, err)
		}
		out = append(out, Obstacle{
			Colour:   r.Colour,
			Type:     cr.rule.Type,
			Origin:   origin,
			Segments: segs,
		})
	}

	logger.Named("obstacle").Debug("obstacles generated",
		zap.Int("regions", len(regions)),
		zap.Int("obstacles", len(out)),
	)
	return out, nil
}

// SegmentCount sums the segments of all obstacles.
func SegmentCount(obstacles []Obstacle) int {
	n := 0
	for _, o := range obstacles {
		n += len(o.Segments)
	}
	return n
}
