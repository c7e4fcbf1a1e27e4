package shade

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/prism/pkg/geom"
	"github.com/Faultbox/prism/pkg/light"
)

// Material turns the light arriving at a surface point into a colour.
//
// p is the point being shaded, n its unit shading normal, and view the
// camera's viewpoint. obstr holds per-light obstruction values parallel
// to lights; a nil slice means no shadowing was requested.
type Material interface {
	At(p, n, view geom.Vec3, lights []light.Source, obstr []float64) Color
}

// Flat is a constant colour, independent of lighting.
type Flat struct {
	Color Color
}

// At returns the flat colour.
func (m *Flat) At(_, _, _ geom.Vec3, _ []light.Source, _ []float64) Color {
	return m.Color
}

// Phong is a local Phong reflectance material. At construction it
// decomposes its base colour into hue, saturation, and lightness; shading
// then maps the accumulated scalar intensity back to a colour along that
// perceptual path, so a brighter surface keeps its hue instead of merely
// saturating channel-wise.
type Phong struct {
	Ambient   float64 // ambient reflection coefficient
	Diffuse   float64 // diffuse reflection coefficient
	Specular  float64 // specular reflection coefficient
	Shininess float64 // specular exponent
	Alpha     float64 // output alpha

	// immutable after construction
	hue, sat, lum float64
}

// NewPhong builds a Phong material over a base colour. The default
// coefficients give a matte surface: ambient and diffuse 1, no specular.
func NewPhong(base Color) *Phong {
	h, s, l := colorful.Color{R: base.R, G: base.G, B: base.B}.Hsl()
	return &Phong{
		Ambient:   1,
		Diffuse:   1,
		Specular:  0,
		Shininess: 1,
		Alpha:     base.A,
		hue:       h,
		sat:       s,
		lum:       l,
	}
}

// At accumulates the Phong intensity over all lights and maps it to a
// colour through the material's interpolation path. The sum is not
// clamped while accumulating; only the final colour is.
func (m *Phong) At(p, n, view geom.Vec3, lights []light.Source, obstr []float64) Color {
	sum := 0.0
	for i, l := range lights {
		intensity, dir := l.At(p)
		if intensity == 0 {
			continue
		}
		if dir.IsNoDirection() {
			sum += m.Ambient * intensity
			continue
		}

		unblocked := 1.0
		if obstr != nil {
			unblocked = 1 - obstr[i]
		}
		if unblocked <= 0 {
			continue
		}

		if cos := dir.Dot(n); cos > 0 {
			sum += m.Diffuse * cos * intensity * unblocked
		}
		if m.Specular > 0 {
			// Reflection of the light direction about the normal.
			refl := n.Scale(2 * dir.Dot(n)).Sub(dir)
			toView := view.Sub(p).Normalize()
			if cos := refl.Dot(toView); cos > 0 {
				sum += m.Specular * math.Pow(cos, m.Shininess) * intensity * unblocked
			}
		}
	}
	return m.Shade(sum)
}

// Shade maps a scalar intensity to a colour along the material's
// lightness path: intensity 1 reproduces the base colour, lower values
// darken it, higher values push the lightness towards white. Hue and
// saturation are preserved throughout.
func (m *Phong) Shade(intensity float64) Color {
	if intensity < 0 {
		intensity = 0
	}
	var l float64
	if intensity <= 1 {
		l = m.lum * intensity
	} else {
		l = 1 - (1-m.lum)/intensity
	}
	c := colorful.Hsl(m.hue, m.sat, l).Clamped()
	return Color{R: c.R, G: c.G, B: c.B, A: m.Alpha}
}
