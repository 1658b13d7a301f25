package sparktrail

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// CursorConfig controls the smoothed cursor glyph.
type CursorConfig struct {
	// Stiffness and Damping describe a unit-mass spring.
	Stiffness float64
	Damping   float64
	// Start is the initial glyph position and target, usually offscreen.
	Start Vec2
	// HoverScale and PressScale are the glyph scale targets; 1 otherwise.
	HoverScale float64
	PressScale float64
	// ScaleDuration is the scale tween duration in seconds.
	ScaleDuration float32
}

// DefaultCursorConfig returns a fast, slightly lagged follow.
func DefaultCursorConfig() CursorConfig {
	return CursorConfig{
		Stiffness:     500,
		Damping:       25,
		Start:         Vec2{-100, -100},
		HoverScale:    1.5,
		PressScale:    0.8,
		ScaleDuration: 0.15,
	}
}

// springParams converts stiffness/damping on a unit mass into harmonica's
// angular frequency and damping ratio.
func springParams(stiffness, damping float64) (freq, ratio float64) {
	if stiffness <= 0 {
		return 0, 1
	}
	freq = math.Sqrt(stiffness)
	ratio = damping / (2 * freq)
	return freq, ratio
}

// pointerFilter smooths the raw pointer with two independent springs.
type pointerFilter struct {
	spring harmonica.Spring
	pos    Vec2
	vel    Vec2
	target Vec2
}

func newPointerFilter(tps int, cfg CursorConfig) pointerFilter {
	freq, ratio := springParams(cfg.Stiffness, cfg.Damping)
	return pointerFilter{
		spring: harmonica.NewSpring(harmonica.FPS(tps), freq, ratio),
		pos:    cfg.Start,
		target: cfg.Start,
	}
}

// setTarget moves the equilibrium point; the filter catches up in step.
func (f *pointerFilter) setTarget(v Vec2) {
	f.target = v
}

// step advances both springs by one tick and returns the smoothed position.
func (f *pointerFilter) step() Vec2 {
	f.pos.X, f.vel.X = f.spring.Update(f.pos.X, f.vel.X, f.target.X)
	f.pos.Y, f.vel.Y = f.spring.Update(f.pos.Y, f.vel.Y, f.target.Y)
	return f.pos
}
