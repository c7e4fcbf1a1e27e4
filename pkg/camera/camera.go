// Package camera provides the camera variants that project scene elements
// to the output plane, and the pairwise front/behind comparison the
// painter's-algorithm strategy is built on.
package camera

import (
	"math"

	"github.com/Faultbox/prism/pkg/geom"
	"github.com/Faultbox/prism/pkg/scene"
)

// nearLimit is the distance in front of the viewpoint below which
// projection is considered unreliable and elements are culled.
const nearLimit = 1e-3

// cullMargin is the number of pixels outside the output rectangle an
// element may project to before it is culled.
const cullMargin = 16

// Camera projects 3D points to the 2D output plane and orders elements
// front to back.
//
// Deproject inverts Project onto a specific element: it is only valid
// when the 2D point is known to lie within that element's projected
// footprint. Depth is monotonically increasing with distance from the
// viewpoint along the viewing direction; it is meaningful for relative
// ordering only. Compare returns -1 when a is strictly in front of b, +1
// when b is in front, and 0 when the order is indeterminate or the
// elements do not overlap on screen.
type Camera interface {
	Project(p geom.Vec3) geom.Vec2
	Deproject(p geom.Vec2, el *scene.Element) (geom.Vec3, error)
	Depth(p geom.Vec3) float64
	IsCulled(el *scene.Element) bool
	Compare(a, b *scene.Element, pass *Pass) int

	// RayThrough returns the world-space ray whose projection is the given
	// output point; the ray-casting strategy shoots these per pixel.
	RayThrough(p geom.Vec2) geom.Ray

	// PixelSize converts a length in output pixels at the given depth to
	// world units.
	PixelSize(px, depth float64) float64

	Viewpoint() geom.Vec3
	OutputSize() (w, h int)
}

// worldUp is the global up reference used to derive camera bases.
var worldUp = geom.Vec3{Y: 1}

// view holds the orientation state shared by the camera variants: a
// viewpoint with an orthonormal basis, the output size, and a scale
// factor from world units to pixels.
type view struct {
	pos     geom.Vec3
	forward geom.Vec3
	right   geom.Vec3
	up      geom.Vec3

	width, height int
	scale         float64
}

// newView derives an orthonormal basis from a view direction. A direction
// parallel to the global up vector falls back to the global Z axis as the
// up reference so every direction stays usable.
func newView(pos, dir geom.Vec3, width, height int, scale float64) view {
	forward := dir.Normalize()
	ref := worldUp
	if math.Abs(forward.Dot(ref)) > 1-geom.Eps {
		ref = geom.Vec3{Z: 1}
	}
	right := forward.Cross(ref).Normalize()
	up := right.Cross(forward)
	return view{
		pos:     pos,
		forward: forward,
		right:   right,
		up:      up,
		width:   width,
		height:  height,
		scale:   scale,
	}
}

// Viewpoint returns the camera position.
func (v *view) Viewpoint() geom.Vec3 {
	return v.pos
}

// OutputSize returns the declared output size in pixels.
func (v *view) OutputSize() (int, int) {
	return v.width, v.height
}

// Depth returns the true distance from the viewpoint; it increases
// monotonically along the viewing direction for points in front of the
// camera.
func (v *view) Depth(p geom.Vec3) float64 {
	return p.Distance(v.pos)
}

// Orbit rotates the viewpoint around a target, keeping the distance and
// re-aiming the camera at the target. Angles are radians: yaw around the
// global up axis, pitch around the camera's right axis.
func (v *view) Orbit(target geom.Vec3, yaw, pitch float64) {
	offset := v.pos.Sub(target)
	offset = geom.RotateAxis(worldUp, yaw).TransformDirection(offset)
	offset = geom.RotateAxis(v.right, pitch).TransformDirection(offset)
	v.pos = target.Add(offset)
	*v = newView(v.pos, target.Sub(v.pos), v.width, v.height, v.scale)
}

// Pan translates the viewpoint along its right and up axes.
func (v *view) Pan(dx, dy float64) {
	v.pos = v.pos.Add(v.right.Scale(dx)).Add(v.up.Scale(dy))
}

// Pass is a render-pass-scoped projection cache. Projections are computed
// once per element per pass and read many times by Compare; keeping them
// here, keyed by element identity, leaves the elements immutable during a
// render.
type Pass struct {
	cam  Camera
	proj map[*scene.Element][]geom.Vec2
}

// NewPass returns an empty projection cache for one render pass.
func NewPass(cam Camera) *Pass {
	return &Pass{cam: cam, proj: make(map[*scene.Element][]geom.Vec2)}
}

// Projected returns the element's projected points, computing and caching
// them on first use.
func (p *Pass) Projected(el *scene.Element) []geom.Vec2 {
	if pts, ok := p.proj[el]; ok {
		return pts
	}
	n := el.NumPoints()
	pts := make([]geom.Vec2, n)
	for i := 0; i < n; i++ {
		pts[i] = p.cam.Project(el.Point(i))
	}
	p.proj[el] = pts
	return pts
}

// Prime projects all given elements into the cache up front, so later
// concurrent reads need no synchronization.
func (p *Pass) Prime(els []*scene.Element) {
	for _, el := range els {
		p.Projected(el)
	}
}

// isCulled is the culling rule shared by the camera variants: every
// defining point closer than the near limit along the forward axis, or a
// projected bounding box wholly outside the output rectangle.
func (v *view) isCulled(el *scene.Element, project func(geom.Vec3) geom.Vec2) bool {
	n := el.NumPoints()
	anyFront := false
	for i := 0; i < n; i++ {
		if el.Point(i).Sub(v.pos).Dot(v.forward) > nearLimit {
			anyFront = true
			break
		}
	}
	if !anyFront {
		return true
	}

	// Projection of partially-behind elements is unreliable; keep those.
	for i := 0; i < n; i++ {
		if el.Point(i).Sub(v.pos).Dot(v.forward) <= nearLimit {
			return false
		}
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := 0; i < n; i++ {
		s := project(el.Point(i))
		minX = math.Min(minX, s.X)
		minY = math.Min(minY, s.Y)
		maxX = math.Max(maxX, s.X)
		maxY = math.Max(maxY, s.Y)
	}
	pad := el.Width/2 + cullMargin
	return maxX < -pad || maxY < -pad ||
		minX > float64(v.width)+pad || minY > float64(v.height)+pad
}
