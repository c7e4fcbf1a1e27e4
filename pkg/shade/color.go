// Package shade provides the colour type and material variants that turn
// light arriving at a surface point into a final colour.
package shade

import (
	"image/color"
	"math"
)

// Color is a straight-alpha RGBA colour with channels in [0, 1].
type Color struct {
	R, G, B, A float64
}

// RGB returns an opaque colour.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA returns a colour with explicit alpha.
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// FromNRGBA converts a standard library colour.
func FromNRGBA(c color.NRGBA) Color {
	return Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}

// Opaque reports whether the colour has full alpha.
func (c Color) Opaque() bool {
	return c.A >= 1
}

// Over composites c over dst (c is in front).
func (c Color) Over(dst Color) Color {
	if c.A >= 1 {
		return c
	}
	ia := 1 - c.A
	a := c.A + dst.A*ia
	if a == 0 {
		return Color{}
	}
	return Color{
		R: (c.R*c.A + dst.R*dst.A*ia) / a,
		G: (c.G*c.A + dst.G*dst.A*ia) / a,
		B: (c.B*c.A + dst.B*dst.A*ia) / a,
		A: a,
	}
}

// Scale returns the colour with RGB channels scaled by s; alpha is kept.
func (c Color) Scale(s float64) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A}
}

// WithAlpha returns the colour with alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Clamped returns the colour with all channels clamped to [0, 1].
func (c Color) Clamped() Color {
	return Color{
		R: clamp01(c.R),
		G: clamp01(c.G),
		B: clamp01(c.B),
		A: clamp01(c.A),
	}
}

// NRGBA converts to a standard library colour, clamping first.
func (c Color) NRGBA() color.NRGBA {
	cc := c.Clamped()
	return color.NRGBA{
		R: uint8(math.Round(cc.R * 255)),
		G: uint8(math.Round(cc.G * 255)),
		B: uint8(math.Round(cc.B * 255)),
		A: uint8(math.Round(cc.A * 255)),
	}
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
