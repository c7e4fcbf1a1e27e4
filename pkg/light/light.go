// Package light provides the light source variants used by the renderer.
// A source answers two questions: how much light arrives at a point and
// from which direction, and what fraction of that light is blocked by a
// given set of shadow-casting triangles.
package light

import (
	"math"

	"github.com/Faultbox/prism/pkg/geom"
)

// Source is the capability set shared by all light variants.
//
// At returns the incident intensity at a point together with the unit
// direction from the point towards the light. Non-directional light
// returns the geom.NoDirection sentinel.
//
// Obstruction returns the fraction of the light blocked at the point by
// the given shadow casters, always in [0, 1]. It is 0 whenever Shadows
// reports false or the caster list is empty.
type Source interface {
	At(p geom.Vec3) (intensity float64, dir geom.Vec3)
	Obstruction(p geom.Vec3, casters []geom.Triangle) float64
	Shadows() bool
}

// shadowBias offsets shadow-ray origins off the receiving surface so a
// caster is never shadowed by itself.
const shadowBias = 1e-4

// blockedTowards reports whether any caster blocks the ray from p in
// direction dir before maxDist. A non-positive maxDist means the light is
// infinitely far (directional).
func blockedTowards(p, dir geom.Vec3, maxDist float64, casters []geom.Triangle) bool {
	r := geom.Ray{Origin: p.Add(dir.Scale(shadowBias)), Dir: dir}
	for _, c := range casters {
		if d, ok := c.IntersectRay(r); ok {
			if maxDist <= 0 || d < maxDist-shadowBias {
				return true
			}
		}
	}
	return false
}

// Ambient is uniform, non-directional light. It casts no shadows.
type Ambient struct {
	Intensity float64
}

// At returns the ambient intensity and the NoDirection sentinel.
func (l *Ambient) At(geom.Vec3) (float64, geom.Vec3) {
	return l.Intensity, geom.NoDirection()
}

// Obstruction always returns 0 for ambient light.
func (l *Ambient) Obstruction(geom.Vec3, []geom.Triangle) float64 {
	return 0
}

// Shadows reports false: ambient light is never obstructed.
func (l *Ambient) Shadows() bool {
	return false
}

// Directional is parallel light travelling along a fixed direction, like
// sunlight.
type Directional struct {
	Intensity  float64
	Dir        geom.Vec3 // travel direction of the light
	CastShadow bool
}

// At returns the intensity and the unit direction towards the light
// (opposite the travel direction).
func (l *Directional) At(geom.Vec3) (float64, geom.Vec3) {
	return l.Intensity, l.Dir.Neg().Normalize()
}

// Obstruction returns 1 when a caster blocks the reverse light direction,
// otherwise 0.
func (l *Directional) Obstruction(p geom.Vec3, casters []geom.Triangle) float64 {
	if !l.CastShadow || len(casters) == 0 {
		return 0
	}
	if blockedTowards(p, l.Dir.Neg().Normalize(), 0, casters) {
		return 1
	}
	return 0
}

// Shadows reports whether the light participates in shadowing.
func (l *Directional) Shadows() bool {
	return l.CastShadow
}

// Point is an omnidirectional light at a position, with optional
// distance attenuation.
type Point struct {
	Intensity  float64
	Pos        geom.Vec3
	Falloff    float64 // distance attenuation exponent, 0 disables attenuation
	CastShadow bool
}

// At returns the attenuated intensity and the unit direction from p
// towards the light's position.
func (l *Point) At(p geom.Vec3) (float64, geom.Vec3) {
	to := l.Pos.Sub(p)
	d := to.Length()
	if d < geom.Eps {
		return l.Intensity, geom.NoDirection()
	}
	i := l.Intensity
	if l.Falloff > 0 {
		i /= math.Pow(d, l.Falloff)
	}
	return i, to.Scale(1 / d)
}

// Obstruction returns 1 when a caster sits between p and the light's
// position, otherwise 0.
func (l *Point) Obstruction(p geom.Vec3, casters []geom.Triangle) float64 {
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
func (l *Point) Shadows() bool {
	return l.CastShadow
}
