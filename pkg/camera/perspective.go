package camera

import (
	"github.com/Faultbox/prism/pkg/geom"
	"github.com/Faultbox/prism/pkg/scene"
)

// Perspective is a pinhole camera: points are projected through the
// viewpoint onto a plane at the focal distance, then scaled to pixels.
type Perspective struct {
	view
	focal float64
}

// NewPerspective builds a perspective camera from the minimum
// configuration surface: viewpoint, view direction, focal distance,
// output size in pixels, and the world-to-pixel scale factor.
func NewPerspective(pos, dir geom.Vec3, focal float64, width, height int, scale float64) *Perspective {
	return &Perspective{
		view:  newView(pos, dir, width, height, scale),
		focal: focal,
	}
}

// Project maps a world point to output coordinates. Points at or behind
// the viewpoint plane are clamped to the near limit; culling keeps such
// elements out of the pipeline.
func (c *Perspective) Project(p geom.Vec3) geom.Vec2 {
	v := p.Sub(c.pos)
	z := v.Dot(c.forward)
	if z < nearLimit {
		z = nearLimit
	}
	f := c.focal * c.scale / z
	return geom.Vec2{
		X: v.Dot(c.right)*f + float64(c.width)/2,
		Y: -v.Dot(c.up)*f + float64(c.height)/2,
	}
}

// RayThrough returns the ray from the viewpoint through an output point.
func (c *Perspective) RayThrough(p geom.Vec2) geom.Ray {
	fs := c.focal * c.scale
	dir := c.forward.
		Add(c.right.Scale((p.X - float64(c.width)/2) / fs)).
		Add(c.up.Scale(-(p.Y - float64(c.height)/2) / fs))
	return geom.Ray{Origin: c.pos, Dir: dir.Normalize()}
}

// Deproject inverts Project onto a specific element's plane or line.
func (c *Perspective) Deproject(p geom.Vec2, el *scene.Element) (geom.Vec3, error) {
	return deproject(c.RayThrough(p), el)
}

// IsCulled reports whether the element cannot be visible.
func (c *Perspective) IsCulled(el *scene.Element) bool {
	return c.isCulled(el, c.Project)
}

// Compare performs the pairwise front/behind test between two elements.
func (c *Perspective) Compare(a, b *scene.Element, pass *Pass) int {
	return compare(c, a, b, pass)
}

// PixelSize converts a pixel length at the given depth to world units.
func (c *Perspective) PixelSize(px, depth float64) float64 {
	return px * depth / (c.focal * c.scale)
}

// Zoom moves the viewpoint along the viewing direction by the given
// world distance.
func (c *Perspective) Zoom(dist float64) {
	c.pos = c.pos.Add(c.forward.Scale(dist))
}

// deproject recovers the 3D point on an element that projects to the
// given ray. For points it is the point itself, for segments the closest
// point on the segment to the ray, for triangles the ray-plane
// intersection; a ray parallel to a triangle's plane is degenerate.
func deproject(r geom.Ray, el *scene.Element) (geom.Vec3, error) {
	switch el.Kind() {
	case scene.KindPoint:
		return el.Point(0), nil
	case scene.KindSegment:
		p, _ := geom.ClosestOnSegment(r, el.Point(0), el.Point(1))
		return p, nil
	case scene.KindTriangle:
		d, ok := el.Triangle().IntersectPlane(r)
		if !ok {
			return geom.Vec3{}, geom.ErrDegenerate
		}
		return r.At(d), nil
	}
	panic("camera: unsupported element kind " + el.Kind().String())
}
