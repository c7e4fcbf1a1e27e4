package geom

import "math"

// Ray is a half-line in 3D space. Dir is kept normalized by the callers
// that construct rays; intersection parameters are then true distances.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// Triangle is a plain geometric triangle, used as the shadow-caster
// representation and by the ray-casting strategy.
type Triangle struct {
	A, B, C Vec3
}

// Normal returns the (unnormalized) geometric normal from the cross
// product of the triangle's edges.
func (t Triangle) Normal() Vec3 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A))
}

// Centroid returns the triangle's centroid.
func (t Triangle) Centroid() Vec3 {
	return Vec3{
		(t.A.X + t.B.X + t.C.X) / 3,
		(t.A.Y + t.B.Y + t.C.Y) / 3,
		(t.A.Z + t.B.Z + t.C.Z) / 3,
	}
}

// Degenerate reports whether the triangle has (near) zero area.
func (t Triangle) Degenerate() bool {
	return t.Normal().Length() < Eps
}

// IntersectRay returns the distance along the ray to the triangle, if the
// ray hits it. The ray direction must be normalized.
func (t Triangle) IntersectRay(r Ray) (float64, bool) {
	n := t.Normal()
	denom := n.Dot(r.Dir)
	if math.Abs(denom) < Eps {
		return 0, false
	}
	d := (n.Dot(t.A) - n.Dot(r.Origin)) / denom
	if d < Eps {
		return 0, false
	}
	p := r.At(d)
	if t.B.Sub(t.A).Cross(p.Sub(t.A)).Dot(n) >= -Eps &&
		t.C.Sub(t.B).Cross(p.Sub(t.B)).Dot(n) >= -Eps &&
		t.A.Sub(t.C).Cross(p.Sub(t.C)).Dot(n) >= -Eps {
		return d, true
	}
	return 0, false
}

// IntersectPlane returns the distance along the ray to the triangle's
// plane, ignoring the triangle's outline. Used for deprojection where the
// 2D point is already known to lie inside the projected footprint.
func (t Triangle) IntersectPlane(r Ray) (float64, bool) {
	n := t.Normal()
	denom := n.Dot(r.Dir)
	if math.Abs(denom) < Eps {
		return 0, false
	}
	return (n.Dot(t.A) - n.Dot(r.Origin)) / denom, true
}

// Barycentric returns the barycentric coordinates of p with respect to the
// triangle. p is assumed to lie (near) the triangle's plane.
func (t Triangle) Barycentric(p Vec3) Vec3 {
	v0 := t.B.Sub(t.A)
	v1 := t.C.Sub(t.A)
	v2 := p.Sub(t.A)
	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)
	denom := d00*d11 - d01*d01
	if math.Abs(denom) < Eps {
		return Vec3{1, 0, 0}
	}
	v := (d11*d20 - d01*d21) / denom
	w := (d00*d21 - d01*d20) / denom
	return Vec3{1 - v - w, v, w}
}

// IntersectSphere returns the nearest positive distance along the ray to a
// sphere, if the ray hits it.
func IntersectSphere(r Ray, center Vec3, radius float64) (float64, bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	if d := -b - sq; d > Eps {
		return d, true
	}
	if d := -b + sq; d > Eps {
		return d, true
	}
	return 0, false
}

// IntersectCylinder returns the nearest positive distance along the ray to
// an uncapped cylinder around the segment ab, if the ray hits its side
// within the segment's parameter range.
func IntersectCylinder(r Ray, a, b Vec3, radius float64) (float64, bool) {
	axis := b.Sub(a)
	axisLen := axis.Length()
	if axisLen < Eps {
		return IntersectSphere(r, a, radius)
	}
	axis = axis.Scale(1 / axisLen)

	// Project ray direction and origin offset off the axis.
	d := r.Dir.Sub(axis.Scale(r.Dir.Dot(axis)))
	oc := r.Origin.Sub(a)
	o := oc.Sub(axis.Scale(oc.Dot(axis)))

	qa := d.Dot(d)
	if qa < Eps {
		return 0, false
	}
	qb := 2 * o.Dot(d)
	qc := o.Dot(o) - radius*radius
	disc := qb*qb - 4*qa*qc
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	for _, t := range [2]float64{(-qb - sq) / (2 * qa), (-qb + sq) / (2 * qa)} {
		if t <= Eps {
			continue
		}
		h := r.At(t).Sub(a).Dot(axis)
		if h >= 0 && h <= axisLen {
			return t, true
		}
	}
	return 0, false
}

// ClosestOnSegment returns the point on segment ab closest to the ray, along
// with the ray distance to that point. Used to deproject a 2D point that is
// known to lie within a segment's stroke footprint.
func ClosestOnSegment(r Ray, a, b Vec3) (Vec3, float64) {
	u := b.Sub(a)
	v := r.Dir
	w := a.Sub(r.Origin)

	uu := u.Dot(u)
	uv := u.Dot(v)
	vv := v.Dot(v)
	uw := u.Dot(w)
	vw := v.Dot(w)

	denom := uu*vv - uv*uv
	var s float64
	if math.Abs(denom) < Eps {
		s = 0 // lines are parallel, pick the segment's start
	} else {
		s = (uv*vw - vv*uw) / denom
	}
	s = math.Max(0, math.Min(1, s))
	p := a.Add(u.Scale(s))
	t := p.Sub(r.Origin).Dot(v)
	return p, t
}

// SegIntersect2D returns the intersection of segments p1-p2 and p3-p4 with
// both parameters, if the segments cross within their parameter ranges
// (inclusive of the shared tolerance at the ends).
func SegIntersect2D(p1, p2, p3, p4 Vec2) (Vec2, float64, float64, bool) {
	d1 := p2.Sub(p1)
	d2 := p4.Sub(p3)
	denom := d1.Cross(d2)
	if math.Abs(denom) < Eps {
		return Vec2{}, 0, 0, false
	}
	diff := p3.Sub(p1)
	t := diff.Cross(d2) / denom
	u := diff.Cross(d1) / denom
	if t < -Eps || t > 1+Eps || u < -Eps || u > 1+Eps {
		return Vec2{}, 0, 0, false
	}
	return p1.Add(d1.Scale(t)), t, u, true
}

// PointInTriangle2D reports whether p lies inside (or on the boundary of)
// the 2D triangle a, b, c.
func PointInTriangle2D(p, a, b, c Vec2) bool {
	d1 := b.Sub(a).Cross(p.Sub(a))
	d2 := c.Sub(b).Cross(p.Sub(b))
	d3 := a.Sub(c).Cross(p.Sub(c))
	hasNeg := d1 < -Eps || d2 < -Eps || d3 < -Eps
	hasPos := d1 > Eps || d2 > Eps || d3 > Eps
	return !(hasNeg && hasPos)
}

// DistToSegment2D returns the distance from p to the segment ab, along with
// the parameter of the closest point on the segment.
func DistToSegment2D(p, a, b Vec2) (float64, float64) {
	d := b.Sub(a)
	ll := d.Dot(d)
	if ll < Eps {
		return p.Distance(a), 0
	}
	t := math.Max(0, math.Min(1, p.Sub(a).Dot(d)/ll))
	return p.Distance(a.Add(d.Scale(t))), t
}

// Barycentric2D returns the barycentric coordinates of p with respect to
// the 2D triangle a, b, c. The coordinates are unreliable when the
// triangle is degenerate in projection.
func Barycentric2D(p, a, b, c Vec2) Vec3 {
	v0 := b.Sub(a)
	v1 := c.Sub(a)
	v2 := p.Sub(a)
	denom := v0.Cross(v1)
	if math.Abs(denom) < Eps {
		return Vec3{1, 0, 0}
	}
	v := v2.Cross(v1) / denom
	w := v0.Cross(v2) / denom
	return Vec3{1 - v - w, v, w}
}
