package light

import (
	"math"

	"github.com/Faultbox/prism/pkg/geom"
)

// DefaultAreaSamples is the number of disc sample points an Area light
// uses when none is configured. The nominal center is always included on
// top of these.
const DefaultAreaSamples = 8

// Area is a soft-shadow emitting disc. Intensity behaves like a point
// light at the disc's center; obstruction is the fraction of sample
// sub-rays towards the disc that are blocked, which produces penumbrae.
type Area struct {
	Intensity  float64
	Center     geom.Vec3
	Normal     geom.Vec3 // disc orientation
	Radius     float64
	Samples    int // disc samples per query, DefaultAreaSamples when 0
	Falloff    float64
	CastShadow bool
}

// At returns the attenuated intensity and the unit direction from p
// towards the disc's center.
func (l *Area) At(p geom.Vec3) (float64, geom.Vec3) {
	to := l.Center.Sub(p)
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

// Obstruction samples several points on the emitting disc plus the
// nominal center and returns the fraction of sub-rays that are blocked.
func (l *Area) Obstruction(p geom.Vec3, casters []geom.Triangle) float64 {
	if !l.CastShadow || len(casters) == 0 {
		return 0
	}

	n := l.Samples
	if n <= 0 {
		n = DefaultAreaSamples
	}

	// Build an orthonormal frame in the disc's plane.
	axis := l.Normal.Normalize()
	if axis == (geom.Vec3{}) {
		axis = geom.Vec3{Z: 1}
	}
	ref := geom.Vec3{X: 1}
	if math.Abs(axis.X) > 0.9 {
		ref = geom.Vec3{Y: 1}
	}
	u := axis.Cross(ref).Normalize()
	v := axis.Cross(u)

	targets := make([]geom.Vec3, 0, n+1)
	targets = append(targets, l.Center)
	for k := 0; k < n; k++ {
		// Deterministic spiral over the disc keeps renders repeatable.
		ang := 2 * math.Pi * float64(k) / float64(n)
		rad := l.Radius * math.Sqrt((float64(k)+0.5)/float64(n))
		offset := u.Scale(rad * math.Cos(ang)).Add(v.Scale(rad * math.Sin(ang)))
		targets = append(targets, l.Center.Add(offset))
	}

	blocked := 0
	for _, target := range targets {
		to := target.Sub(p)
		d := to.Length()
		if d < geom.Eps {
			continue
		}
		if blockedTowards(p, to.Scale(1/d), d, casters) {
			blocked++
		}
	}
	return float64(blocked) / float64(len(targets))
}

// Shadows reports whether the light participates in shadowing.
func (l *Area) Shadows() bool {
	return l.CastShadow
}
