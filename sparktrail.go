package sparktrail

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// RGBA returns the color as a premultiplied color.RGBA scaled by alpha.
func (c Color) RGBA(alpha float64) color.RGBA {
	a := clamp01(c.A * alpha)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// Vec2 is a 2D vector used for positions and velocities in viewport units.
type Vec2 struct {
	X, Y float64
}

// finite reports whether both components are real numbers.
func (v Vec2) finite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) &&
		!math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Range is a min/max range sampled uniformly in [Min, Max).
type Range struct {
	Min, Max float64
}

// Swatch selects one of the two palette entries a particle can be drawn with.
type Swatch uint8

const (
	SwatchAccent  Swatch = iota // gold
	SwatchNeutral               // white
)

// Palette holds the two particle colors as hex strings ("#D4A32C").
type Palette struct {
	Accent  string
	Neutral string
}

// DefaultPalette is the gold/white trail palette.
var DefaultPalette = Palette{Accent: "#D4A32C", Neutral: "#FFFFFF"}

// resolve parses both entries. The first parse error is returned alongside
// the default color for the failing entry.
func (p Palette) resolve() ([2]Color, error) {
	var out [2]Color
	var firstErr error
	for i, pair := range [2][2]string{
		{p.Accent, DefaultPalette.Accent},
		{p.Neutral, DefaultPalette.Neutral},
	} {
		hex := pair[0]
		if hex == "" {
			hex = pair[1]
		}
		c, err := colorful.Hex(hex)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			c, _ = colorful.Hex(pair[1])
		}
		out[i] = Color{R: c.R, G: c.G, B: c.B, A: 1}
	}
	return out, firstErr
}

// EventType identifies a kind of pointer event delivered by a Host.
type EventType uint8

const (
	EventPointerMove EventType = iota // raw pointer moved
	EventPointerOver                  // pointer entered a new target
	EventPointerDown                  // primary button pressed
	EventPointerUp                    // primary button released
)

// Target is a node in the host's UI tree. The classifier only needs to know
// whether a node is interactive (button- or link-like) and who its parent is.
type Target interface {
	Interactive() bool
	Parent() Target
}

// PointerEvent carries one pointer event from the host input layer.
// Coordinates are in viewport space. Target is only meaningful for
// EventPointerOver and may be nil.
type PointerEvent struct {
	Type   EventType
	X, Y   float64
	Target Target
}

// Pos returns the event position as a Vec2.
func (ev PointerEvent) Pos() Vec2 {
	return Vec2{ev.X, ev.Y}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
