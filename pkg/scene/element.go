// Package scene provides the renderable element kinds and the scene that
// holds them. Elements are produced by external geometry builders and
// handed over fully specified; the engine never mutates their geometry.
package scene

import (
	"fmt"

	"github.com/Faultbox/prism/pkg/geom"
	"github.com/Faultbox/prism/pkg/shade"
)

// Kind discriminates the closed set of element variants.
type Kind int

// The three element kinds.
const (
	KindPoint Kind = iota
	KindSegment
	KindTriangle
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindSegment:
		return "segment"
	case KindTriangle:
		return "triangle"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Element is a renderable scene element: a point, a segment, or a
// triangle. The point list is fixed-arity and read-only after
// construction. ZIndex is an explicit draw-order hint that wins over any
// geometric ordering test. Width is the stroke thickness for segments and
// the diameter for points, in output pixels.
type Element struct {
	kind Kind
	pts  [3]geom.Vec3

	Tag    string
	ZIndex int
	Width  float64
	Color  shade.Color // paint colour for points and segments

	// Triangle-only attributes.
	Materials     []shade.Material // stacked, later entries painted over earlier
	CastShadow    bool
	ReceiveShadow bool

	shadingNormal geom.Vec3 // zero until overridden
	vertexNormals [3]geom.Vec3
	hasVertexNorm bool
}

// NewPoint returns a point element.
func NewPoint(tag string, p geom.Vec3) *Element {
	return &Element{
		kind:  KindPoint,
		pts:   [3]geom.Vec3{p},
		Tag:   tag,
		Width: 1,
		Color: shade.RGB(0, 0, 0),
	}
}

// NewSegment returns a segment element.
func NewSegment(tag string, a, b geom.Vec3) *Element {
	return &Element{
		kind:  KindSegment,
		pts:   [3]geom.Vec3{a, b},
		Tag:   tag,
		Width: 1,
		Color: shade.RGB(0, 0, 0),
	}
}

// NewTriangle returns a triangle element with the given material stack.
// Shadow casting and receiving default to enabled.
func NewTriangle(tag string, a, b, c geom.Vec3, materials ...shade.Material) *Element {
	return &Element{
		kind:          KindTriangle,
		pts:           [3]geom.Vec3{a, b, c},
		Tag:           tag,
		Width:         1,
		Materials:     materials,
		CastShadow:    true,
		ReceiveShadow: true,
	}
}

// Kind returns the element's variant.
func (e *Element) Kind() Kind {
	return e.kind
}

// NumPoints returns the element's fixed arity: 1, 2, or 3.
func (e *Element) NumPoints() int {
	switch e.kind {
	case KindPoint:
		return 1
	case KindSegment:
		return 2
	default:
		return 3
	}
}

// Point returns the i-th defining point.
func (e *Element) Point(i int) geom.Vec3 {
	return e.pts[i]
}

// Centroid returns the mean of the element's points.
func (e *Element) Centroid() geom.Vec3 {
	n := e.NumPoints()
	var sum geom.Vec3
	for i := 0; i < n; i++ {
		sum = sum.Add(e.pts[i])
	}
	return sum.Scale(1 / float64(n))
}

// Triangle returns the element's geometry as a plain triangle. It must
// only be called on triangle elements.
func (e *Element) Triangle() geom.Triangle {
	return geom.Triangle{A: e.pts[0], B: e.pts[1], C: e.pts[2]}
}

// GeometricNormal returns the unit normal fixed by the triangle's
// vertices, from the cross product of its edges.
func (e *Element) GeometricNormal() geom.Vec3 {
	return e.Triangle().Normal().Normalize()
}

// ShadingNormal returns the normal used for lighting. It is the
// geometric normal unless overridden, flipped if needed so its dot
// product with the vertex-normal average stays positive.
func (e *Element) ShadingNormal() geom.Vec3 {
	if e.shadingNormal != (geom.Vec3{}) {
		return e.shadingNormal
	}
	n := e.GeometricNormal()
	if e.hasVertexNorm {
		avg := e.vertexNormals[0].Add(e.vertexNormals[1]).Add(e.vertexNormals[2])
		if n.Dot(avg) < 0 {
			n = n.Neg()
		}
	}
	return n
}

// SetShadingNormal overrides the shading normal, e.g. to fake curvature.
func (e *Element) SetShadingNormal(n geom.Vec3) {
	e.shadingNormal = n.Normalize()
}

// SetVertexNormals sets the three per-vertex shading normals.
func (e *Element) SetVertexNormals(a, b, c geom.Vec3) {
	e.vertexNormals = [3]geom.Vec3{a.Normalize(), b.Normalize(), c.Normalize()}
	e.hasVertexNorm = true
}

// VertexNormal returns the i-th per-vertex shading normal, falling back
// to the shading normal when none were set.
func (e *Element) VertexNormal(i int) geom.Vec3 {
	if !e.hasVertexNorm {
		return e.ShadingNormal()
	}
	return e.vertexNormals[i]
}

// NormalAt interpolates the per-vertex normals at a barycentric position.
// Without vertex normals it returns the flat shading normal.
func (e *Element) NormalAt(bary geom.Vec3) geom.Vec3 {
	if !e.hasVertexNorm {
		return e.ShadingNormal()
	}
	n := e.vertexNormals[0].Scale(bary.X).
		Add(e.vertexNormals[1].Scale(bary.Y)).
		Add(e.vertexNormals[2].Scale(bary.Z))
	return n.Normalize()
}

// clone returns a copy of the element with new points; subdivision uses
// this to keep every derived piece's attributes identical to its parent.
func (e *Element) clone(pts [3]geom.Vec3) *Element {
	dup := *e
	dup.pts = pts
	return &dup
}

// SplitSegment splits a segment element at its midpoint into two halves.
func (e *Element) SplitSegment() [2]*Element {
	mid := e.pts[0].Mid(e.pts[1])
	return [2]*Element{
		e.clone([3]geom.Vec3{e.pts[0], mid}),
		e.clone([3]geom.Vec3{mid, e.pts[1]}),
	}
}

// SplitTriangle splits a triangle element at its edge midpoints into four
// smaller triangles. Vertex normals are interpolated at the midpoints.
func (e *Element) SplitTriangle() [4]*Element {
	a, b, c := e.pts[0], e.pts[1], e.pts[2]
	ab, bc, ca := a.Mid(b), b.Mid(c), c.Mid(a)
	out := [4]*Element{
		e.clone([3]geom.Vec3{a, ab, ca}),
		e.clone([3]geom.Vec3{ab, b, bc}),
		e.clone([3]geom.Vec3{ca, bc, c}),
		e.clone([3]geom.Vec3{ab, bc, ca}),
	}
	if e.hasVertexNorm {
		na, nb, nc := e.vertexNormals[0], e.vertexNormals[1], e.vertexNormals[2]
		nab := na.Add(nb).Normalize()
		nbc := nb.Add(nc).Normalize()
		nca := nc.Add(na).Normalize()
		out[0].vertexNormals = [3]geom.Vec3{na, nab, nca}
		out[1].vertexNormals = [3]geom.Vec3{nab, nb, nbc}
		out[2].vertexNormals = [3]geom.Vec3{nca, nbc, nc}
		out[3].vertexNormals = [3]geom.Vec3{nab, nbc, nca}
	}
	return out
}
