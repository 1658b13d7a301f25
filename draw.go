package sparktrail

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	glyphRingRadius = 16
	glyphCoreRadius = 4
	glyphCoreGlow   = 15
	sparkGlowAlpha  = 0.25
)

// drawFrame renders the trail and then the cursor glyph on top.
func drawFrame(dst *ebiten.Image, f *Frame) {
	for _, p := range f.Particles {
		c := f.ColorOf(p)
		x, y := float32(p.Pos.X), float32(p.Pos.Y)
		r := float32(p.Size() / 2)
		if glow := float32(p.Glow()); glow > 0 {
			vector.DrawFilledCircle(dst, x, y, r+glow, c.RGBA(p.Life*sparkGlowAlpha), true)
		}
		vector.DrawFilledCircle(dst, x, y, r, c.RGBA(p.Life), true)
	}
	drawGlyph(dst, f)
}

// drawGlyph draws the smoothed cursor: a glowing core and an outer ring
// that turns white and grows further while hovering.
func drawGlyph(dst *ebiten.Image, f *Frame) {
	accent, neutral := f.Palette[SwatchAccent], f.Palette[SwatchNeutral]
	cx, cy := float32(f.Cursor.X), float32(f.Cursor.Y)
	s := float32(f.Scale)

	vector.DrawFilledCircle(dst, cx, cy, glyphCoreGlow*s, accent.RGBA(0.15), true)
	vector.DrawFilledCircle(dst, cx, cy, glyphCoreRadius*s, neutral.RGBA(1), true)

	ring, ringColor := float32(glyphRingRadius)*s, accent
	if f.Hovering {
		ring *= 1.25
		ringColor = neutral
	}
	vector.StrokeCircle(dst, cx, cy, ring, 1, ringColor.RGBA(1), true)
}

// drawRegions draws host targets as flat panels; the hovered one is lighter.
func drawRegions(dst *ebiten.Image, regions []*Region, over Target) {
	for _, r := range regions {
		c := Color{R: 0.16, G: 0.16, B: 0.2, A: 1}
		if r.Clickable {
			c = Color{R: 0.22, G: 0.2, B: 0.12, A: 1}
		}
		if over != nil && over == Target(r) {
			c.R, c.G, c.B = c.R*1.4, c.G*1.4, c.B*1.4
		}
		vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), c.RGBA(1), true)
	}
}
