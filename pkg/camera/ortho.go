package camera

import (
	"github.com/Faultbox/prism/pkg/geom"
	"github.com/Faultbox/prism/pkg/scene"
)

// Orthographic projects along parallel rays: distance from the camera
// does not change a point's projected size. Useful for technical views.
type Orthographic struct {
	view
}

// NewOrthographic builds an orthographic camera from a viewpoint, view
// direction, output size in pixels, and world-to-pixel scale factor.
func NewOrthographic(pos, dir geom.Vec3, width, height int, scale float64) *Orthographic {
	return &Orthographic{view: newView(pos, dir, width, height, scale)}
}

// Project maps a world point to output coordinates.
func (c *Orthographic) Project(p geom.Vec3) geom.Vec2 {
	v := p.Sub(c.pos)
	return geom.Vec2{
		X: v.Dot(c.right)*c.scale + float64(c.width)/2,
		Y: -v.Dot(c.up)*c.scale + float64(c.height)/2,
	}
}

// Depth returns the distance along the viewing direction. Unlike the
// perspective camera the lateral offset does not matter for parallel
// rays, so the axial distance is the monotonic measure here.
func (c *Orthographic) Depth(p geom.Vec3) float64 {
	return p.Sub(c.pos).Dot(c.forward)
}

// RayThrough returns the parallel ray through an output point.
func (c *Orthographic) RayThrough(p geom.Vec2) geom.Ray {
	origin := c.pos.
		Add(c.right.Scale((p.X - float64(c.width)/2) / c.scale)).
		Add(c.up.Scale(-(p.Y - float64(c.height)/2) / c.scale))
	return geom.Ray{Origin: origin, Dir: c.forward}
}

// Deproject inverts Project onto a specific element's plane or line.
func (c *Orthographic) Deproject(p geom.Vec2, el *scene.Element) (geom.Vec3, error) {
	return deproject(c.RayThrough(p), el)
}

// IsCulled reports whether the element cannot be visible.
func (c *Orthographic) IsCulled(el *scene.Element) bool {
	return c.isCulled(el, c.Project)
}

// Compare performs the pairwise front/behind test between two elements.
func (c *Orthographic) Compare(a, b *scene.Element, pass *Pass) int {
	return compare(c, a, b, pass)
}

// PixelSize converts a pixel length to world units; depth is irrelevant
// under parallel projection.
func (c *Orthographic) PixelSize(px, _ float64) float64 {
	return px / c.scale
}

// Zoom scales the world-to-pixel factor; parallel projection has no
// perspective zoom.
func (c *Orthographic) Zoom(factor float64) {
	if factor > 0 {
		c.scale *= factor
	}
}
