package sparktrail

// InteractionState is the pointer's hover/press state. It only drives the
// glyph's scale and styling.
type InteractionState struct {
	Hovering bool
	Pressed  bool
}

// glyphScale returns the scale target for the current state. Press wins
// over hover.
func (s InteractionState) glyphScale(cfg CursorConfig) float64 {
	switch {
	case s.Pressed:
		return cfg.PressScale
	case s.Hovering:
		return cfg.HoverScale
	default:
		return 1
	}
}

// IsInteractive reports whether t or any of its ancestors is interactive.
// A nil target is never interactive.
func IsInteractive(t Target) bool {
	for ; t != nil; t = t.Parent() {
		if t.Interactive() {
			return true
		}
	}
	return false
}

// Region is a rectangular Target for hosts without a UI tree of their own.
// Regions nest through ParentRegion; a leaf inside a clickable region
// classifies as interactive.
type Region struct {
	Name         string
	X, Y         float64
	Width        float64
	Height       float64
	Clickable    bool
	ParentRegion *Region
}

// Interactive implements Target.
func (r *Region) Interactive() bool {
	return r.Clickable
}

// Parent implements Target. A nil ParentRegion yields a nil Target rather
// than a typed nil.
func (r *Region) Parent() Target {
	if r.ParentRegion == nil {
		return nil
	}
	return r.ParentRegion
}

// Contains reports whether (x, y) lies inside the region. Points on the edge
// are considered inside.
func (r *Region) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitTest returns the last region in regions containing (x, y), or nil.
// Later regions are considered to be on top.
func HitTest(regions []*Region, x, y float64) Target {
	for i := len(regions) - 1; i >= 0; i-- {
		if regions[i].Contains(x, y) {
			return regions[i]
		}
	}
	return nil
}
