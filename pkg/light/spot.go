package light

import (
	"math"

	"github.com/Faultbox/prism/pkg/geom"
)

// Spot is a cone-shaped light: a point light restricted to a cone around
// its axis, with an angular falloff towards the cone's edge.
type Spot struct {
	Intensity  float64
	Pos        geom.Vec3
	Axis       geom.Vec3 // direction the cone points, away from Pos
	HalfAngle  float64   // cone half-angle in radians
	Exponent   float64   // angular falloff exponent, 0 for a hard-edged cone
	Falloff    float64   // distance attenuation exponent, 0 disables attenuation
	CastShadow bool
}

// At returns the cone-attenuated intensity and the unit direction from p
// towards the light's position. Points outside the cone receive zero.
func (l *Spot) At(p geom.Vec3) (float64, geom.Vec3) {
	to := l.Pos.Sub(p)
	d := to.Length()
	if d < geom.Eps {
		return 0, geom.NoDirection()
	}
	dir := to.Scale(1 / d)

	// Angle between the cone axis and the line towards p.
	cosA := l.Axis.Normalize().Dot(dir.Neg())
	cosCut := math.Cos(l.HalfAngle)
	if cosA < cosCut {
		return 0, dir
	}

	i := l.Intensity
	if l.Exponent > 0 {
		// Normalized angular position inside the cone, 1 on axis, 0 at edge.
		edge := (cosA - cosCut) / (1 - cosCut)
		i *= math.Pow(edge, l.Exponent)
	}
	if l.Falloff > 0 {
		i /= math.Pow(d, l.Falloff)
	}
	return i, dir
}

// Obstruction returns 1 when a caster sits between p and the light's
// position, otherwise 0.
func (l *Spot) Obstruction(p geom.Vec3, casters []geom.Triangle) float64 {
	if !l.CastShadow || len(casters) == 0 {
		return 0
	}
	to := l.Pos.Sub(p)
	d := to.Length()
	if d < geom.Eps {
		return 0
	}
	if blockedTowards(p, to.Scale(1/d), d, casters) {
		return 1
	}
	return 0
}

// Shadows reports whether the light participates in shadowing.
func (l *Spot) Shadows() bool {
	return l.CastShadow
}

// Masked shapes another light's beam with a stencil: light only reaches
// points whose line towards the source passes through one of the stencil
// triangles.
type Masked struct {
	Base    Source
	Stencil []geom.Triangle
}

// At returns the base light's contribution when the path towards it passes
// through the stencil, and zero otherwise.
func (l *Masked) At(p geom.Vec3) (float64, geom.Vec3) {
	i, dir := l.Base.At(p)
	if i == 0 || dir.IsNoDirection() {
		return i, dir
	}
	r := geom.Ray{Origin: p.Add(dir.Scale(shadowBias)), Dir: dir}
	for _, s := range l.Stencil {
		if _, ok := s.IntersectRay(r); ok {
			return i, dir
		}
	}
	return 0, dir
}

// Obstruction delegates to the base light.
func (l *Masked) Obstruction(p geom.Vec3, casters []geom.Triangle) float64 {
	return l.Base.Obstruction(p, casters)
}

// Shadows delegates to the base light.
func (l *Masked) Shadows() bool {
	return l.Base.Shadows()
}
