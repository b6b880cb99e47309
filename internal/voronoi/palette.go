// Package voronoi partitions a height field into nearest-seed regions,
// colours and offsets the cells of each region, and answers region queries.
package voronoi

import (
	"fmt"
	"strings"

	"github.com/Faultbox/procscape/pkg/math"
)

// Colour is one of the fixed region palette entries.
type Colour int

// Palette entries.
const (
	Red Colour = iota
	Blue
	Green
	Goldenrod
	Yellow
	Orange
	Pink
	SlateGray
	Violet
	RosyBrown

	// NumColours is the palette size.
	NumColours
)

var colourNames = [NumColours]string{
	Red:       "red",
	Blue:      "blue",
	Green:     "green",
	Goldenrod: "goldenrod",
	Yellow:    "yellow",
	Orange:    "orange",
	Pink:      "pink",
	SlateGray: "slategray",
	Violet:    "violet",
	RosyBrown: "rosybrown",
}

var colourVectors = [NumColours]math.Vec4{
	Red:       math.RGBA(255, 0, 0, 255),
	Blue:      math.RGBA(0, 0, 255, 255),
	Green:     math.RGBA(0, 128, 0, 255),
	Goldenrod: math.RGBA(218, 165, 32, 255),
	Yellow:    math.RGBA(255, 255, 0, 255),
	Orange:    math.RGBA(255, 165, 0, 255),
	Pink:      math.RGBA(255, 192, 203, 255),
	SlateGray: math.RGBA(112, 128, 144, 255),
	Violet:    math.RGBA(238, 130, 238, 255),
	RosyBrown: math.RGBA(188, 143, 143, 255),
}

// Palette returns every colour in declaration order.
func Palette() []Colour {
	out := make([]Colour, NumColours)
	for i := range out {
		out[i] = Colour(i)
	}
	return out
}

// Valid reports whether c is a palette entry.
func (c Colour) Valid() bool {
	return c >= 0 && c < NumColours
}

// String returns the lower-case colour name.
func (c Colour) String() string {
	if !c.Valid() {
		return fmt.Sprintf("colour(%d)", int(c))
	}
	return colourNames[c]
}

// Vector returns the RGBA vector for the colour, or opaque black if c is invalid.
func (c Colour) Vector() math.Vec4 {
	if !c.Valid() {
		return math.Vec4{0, 0, 0, 1}
	}
	return colourVectors[c]
}

// ParseColour looks a colour up by name, ignoring case.
func ParseColour(name string) (Colour, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, cn := range colourNames {
		if cn == n {
			return Colour(i), nil
		}
	}
	return 0, fmt.Errorf("unknown colour %q", name)
}

// MarshalText encodes the colour by name, for YAML and JSON.
func (c Colour) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid colour %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes a colour name.
func (c *Colour) UnmarshalText(text []byte) error {
	v, err := ParseColour(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
