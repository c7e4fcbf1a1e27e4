package camera

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/prism/internal/logger"
	"github.com/Faultbox/prism/pkg/geom"
	"github.com/Faultbox/prism/pkg/scene"
)

// Comparison results: -1 means the first element is strictly in front,
// +1 the second, 0 that the order is indeterminate or the elements do
// not overlap on screen.
const (
	FirstInFront  = -1
	Indeterminate = 0
	SecondInFront = 1
)

// compare implements the front/behind policy shared by all cameras.
//
// An explicit z-index difference wins outright with no geometric test.
// Otherwise the elements' projected footprints are intersected in 2D and
// any overlap is deprojected back onto both elements so their true
// distances from the viewpoint can be compared, per the pair-kind rules
// below. Equal distances within the shared tolerance are indeterminate.
func compare(c Camera, a, b *scene.Element, pass *Pass) int {
	if a.ZIndex != b.ZIndex {
		if a.ZIndex > b.ZIndex {
			return FirstInFront
		}
		return SecondInFront
	}

	ka, kb := a.Kind(), b.Kind()
	switch {
	case ka == scene.KindPoint && kb == scene.KindPoint:
		return comparePoints(c, a, b, pass)
	case ka == scene.KindPoint:
		return comparePointOther(c, a, b, pass)
	case kb == scene.KindPoint:
		return -comparePointOther(c, b, a, pass)
	case ka == scene.KindSegment && kb == scene.KindSegment:
		return compareSegments(c, a, b, pass)
	case ka == scene.KindSegment && kb == scene.KindTriangle:
		return compareSegmentTriangle(c, a, b, pass)
	case ka == scene.KindTriangle && kb == scene.KindSegment:
		return -compareSegmentTriangle(c, b, a, pass)
	case ka == scene.KindTriangle && kb == scene.KindTriangle:
		return compareTriangles(c, a, b, pass)
	}
	// The element variant set is closed; reaching this is an internal
	// consistency failure, not a recoverable condition.
	panic(fmt.Sprintf("camera: unsupported element pair %v/%v", ka, kb))
}

// cmpDepth orders two depths, indeterminate within the shared tolerance.
func cmpDepth(da, db float64) int {
	if da < db-geom.Eps {
		return FirstInFront
	}
	if db < da-geom.Eps {
		return SecondInFront
	}
	return Indeterminate
}

// comparePoints projects both points; overlapping discs are ordered by
// true distance from the viewpoint.
func comparePoints(c Camera, a, b *scene.Element, pass *Pass) int {
	pa := pass.Projected(a)[0]
	pb := pass.Projected(b)[0]
	if pa.Distance(pb) > (a.Width+b.Width)/2 {
		return Indeterminate
	}
	return cmpDepth(c.Depth(a.Point(0)), c.Depth(b.Point(0)))
}

// comparePointOther projects the point and tests it against the other
// element's footprint: the segment's stroke or the triangle's outline.
// On overlap the 2D point is deprojected onto the other element and the
// true distances are compared.
func comparePointOther(c Camera, pt, other *scene.Element, pass *Pass) int {
	p2 := pass.Projected(pt)[0]
	op := pass.Projected(other)

	switch other.Kind() {
	case scene.KindSegment:
		d, _ := geom.DistToSegment2D(p2, op[0], op[1])
		if d > (other.Width+pt.Width)/2 {
			return Indeterminate
		}
	case scene.KindTriangle:
		if !geom.PointInTriangle2D(p2, op[0], op[1], op[2]) {
			return Indeterminate
		}
	}

	q, err := c.Deproject(p2, other)
	if err != nil {
		return Indeterminate
	}
	return cmpDepth(c.Depth(pt.Point(0)), c.Depth(q))
}

// strokeLines returns a projected segment's centerline plus its two
// parallel stroke-edge offsets.
func strokeLines(p0, p1 geom.Vec2, width float64) [3][2]geom.Vec2 {
	n := p1.Sub(p0).Normalize().Perp().Scale(width / 2)
	return [3][2]geom.Vec2{
		{p0, p1},
		{p0.Add(n), p1.Add(n)},
		{p0.Sub(n), p1.Sub(n)},
	}
}

// voteTally accumulates per-intersection-point comparisons. Multiple
// intersections that disagree in sign are the signature of true 3D
// interpenetration; the pair is then declared indeterminate and logged
// instead of silently picking one side.
type voteTally struct {
	front, behind bool
}

func (v *voteTally) add(sign int) {
	switch sign {
	case FirstInFront:
		v.front = true
	case SecondInFront:
		v.behind = true
	}
}

func (v *voteTally) result(a, b *scene.Element) int {
	switch {
	case v.front && v.behind:
		logger.Warn("indeterminate ordering: elements interpenetrate in 3D",
			zap.String("a", a.Tag), zap.String("b", b.Tag))
		return Indeterminate
	case v.front:
		return FirstInFront
	case v.behind:
		return SecondInFront
	}
	return Indeterminate
}

// depthVote deprojects a shared 2D point onto both elements and orders
// their true distances from the viewpoint.
func depthVote(c Camera, x geom.Vec2, a, b *scene.Element) int {
	qa, errA := c.Deproject(x, a)
	qb, errB := c.Deproject(x, b)
	if errA != nil || errB != nil {
		return Indeterminate
	}
	return cmpDepth(c.Depth(qa), c.Depth(qb))
}

// compareSegments intersects the two projected strokes, each taken as
// three parallel offset lines, and orders every crossing by deprojected
// distance.
func compareSegments(c Camera, a, b *scene.Element, pass *Pass) int {
	pa := pass.Projected(a)
	pb := pass.Projected(b)
	la := strokeLines(pa[0], pa[1], a.Width)
	lb := strokeLines(pb[0], pb[1], b.Width)

	var votes voteTally
	for _, sa := range la {
		for _, sb := range lb {
			if x, _, _, ok := geom.SegIntersect2D(sa[0], sa[1], sb[0], sb[1]); ok {
				votes.add(depthVote(c, x, a, b))
			}
		}
	}
	return votes.result(a, b)
}

// compareSegmentTriangle intersects the thickness-expanded projected
// segment against the triangle's outline. A stroke fully inside the
// outline produces no edge crossings, so the stroke midpoint stands in
// for it.
func compareSegmentTriangle(c Camera, seg, tri *scene.Element, pass *Pass) int {
	ps := pass.Projected(seg)
	pt := pass.Projected(tri)
	lines := strokeLines(ps[0], ps[1], seg.Width)
	edges := [3][2]geom.Vec2{{pt[0], pt[1]}, {pt[1], pt[2]}, {pt[2], pt[0]}}

	var votes voteTally
	crossed := false
	for _, sl := range lines {
		for _, te := range edges {
			if x, _, _, ok := geom.SegIntersect2D(sl[0], sl[1], te[0], te[1]); ok {
				crossed = true
				votes.add(depthVote(c, x, seg, tri))
			}
		}
	}
	if !crossed {
		mid := ps[0].Add(ps[1]).Scale(0.5)
		if !geom.PointInTriangle2D(mid, pt[0], pt[1], pt[2]) {
			return Indeterminate
		}
		votes.add(depthVote(c, mid, seg, tri))
	}
	return votes.result(seg, tri)
}

// compareTriangles clips the two projected triangles against each other:
// vertices of one inside the other plus all pairwise edge crossings. With
// fewer than three such points the triangles do not overlap; otherwise
// the intersection polygon's centroid is deprojected onto both planes
// and the true distances compared.
func compareTriangles(c Camera, a, b *scene.Element, pass *Pass) int {
	pa := pass.Projected(a)
	pb := pass.Projected(b)

	var pts []geom.Vec2
	for _, p := range pa {
		if geom.PointInTriangle2D(p, pb[0], pb[1], pb[2]) {
			pts = append(pts, p)
		}
	}
	for _, p := range pb {
		if geom.PointInTriangle2D(p, pa[0], pa[1], pa[2]) {
			pts = append(pts, p)
		}
	}
	ea := [3][2]geom.Vec2{{pa[0], pa[1]}, {pa[1], pa[2]}, {pa[2], pa[0]}}
	eb := [3][2]geom.Vec2{{pb[0], pb[1]}, {pb[1], pb[2]}, {pb[2], pb[0]}}
	for _, sa := range ea {
		for _, sb := range eb {
			if x, _, _, ok := geom.SegIntersect2D(sa[0], sa[1], sb[0], sb[1]); ok {
				pts = append(pts, x)
			}
		}
	}
	if len(pts) < 3 {
		return Indeterminate
	}

	var centroid geom.Vec2
	for _, p := range pts {
		centroid = centroid.Add(p)
	}
	centroid = centroid.Scale(1 / float64(len(pts)))
	return depthVote(c, centroid, a, b)
}
