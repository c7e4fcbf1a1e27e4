package render

import (
	"image"
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/prism/internal/logger"
	"github.com/Faultbox/prism/pkg/camera"
	"github.com/Faultbox/prism/pkg/geom"
	"github.com/Faultbox/prism/pkg/light"
	"github.com/Faultbox/prism/pkg/scene"
	"github.com/Faultbox/prism/pkg/shade"
)

// subSamples are the fixed in-pixel offsets used when antialiasing; a
// rotated-grid pattern, the same every call so repeated renders are
// identical.
var subSamples = [4]geom.Vec2{
	{X: 0.375, Y: 0.125},
	{X: 0.875, Y: 0.375},
	{X: 0.125, Y: 0.625},
	{X: 0.625, Y: 0.875},
}

// Raycast is the per-pixel visibility strategy: a ray through every
// pixel is intersected against all elements, hits are sorted by distance
// from the viewpoint and composited front to back. Unlike the buffer
// strategy, stacked translucent surfaces composite in exact order. Every
// pixel is independent; rows run in parallel.
type Raycast struct {
	Camera camera.Camera
	Lights []light.Source

	// Antialias averages four sub-samples per pixel using a fixed offset
	// pattern.
	Antialias bool
}

// hit is one ray-element intersection, ordered by distance.
type hit struct {
	dist float64
	el   *scene.Element
	p    geom.Vec3
}

// Render casts rays through every pixel of the camera's declared output
// size. The caller must hold the scene's lock for the duration of the
// call.
func (r *Raycast) Render(sc *scene.Scene) (*image.NRGBA, error) {
	cam := r.Camera
	w, h := cam.OutputSize()
	els := visible(cam, sc.Elements())
	casters := shadowCasters(els)

	offsets := []geom.Vec2{{X: 0.5, Y: 0.5}}
	if r.Antialias {
		offsets = subSamples[:]
	}
	inv := 1 / float64(len(offsets))

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	parallelRows(0, h, func(y0, y1 int) {
		hits := make([]hit, 0, 16)
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				var sum shade.Color
				for _, off := range offsets {
					at := geom.Vec2{X: float64(x), Y: float64(y)}.Add(off)
					sum = addColor(sum, r.castPixel(at, els, casters, hits[:0]))
				}
				n := shade.Color{
					R: sum.R * inv, G: sum.G * inv,
					B: sum.B * inv, A: sum.A * inv,
				}.NRGBA()
				i := img.PixOffset(x, y)
				img.Pix[i+0] = n.R
				img.Pix[i+1] = n.G
				img.Pix[i+2] = n.B
				img.Pix[i+3] = n.A
			}
		}
	})

	logger.Debug("raycast pass",
		zap.Int("elements", len(els)),
		zap.Bool("antialias", r.Antialias))
	return img, nil
}

// castPixel shoots one ray and composites its hits front to back until
// the accumulated colour is opaque.
func (r *Raycast) castPixel(at geom.Vec2, els []*scene.Element, casters []geom.Triangle, hits []hit) shade.Color {
	ray := r.Camera.RayThrough(at)
	viewpoint := r.Camera.Viewpoint()

	for _, el := range els {
		d, ok := intersectElement(r.Camera, ray, el)
		if !ok {
			continue
		}
		hits = append(hits, hit{dist: d, el: el, p: ray.At(d)})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })

	var out shade.Color
	for _, h := range hits {
		var n geom.Vec3
		if h.el.Kind() == scene.KindTriangle {
			n = h.el.NormalAt(h.el.Triangle().Barycentric(h.p))
		}
		out = out.Over(surfaceColor(h.el, h.p, n, viewpoint, r.Lights, casters))
		if out.Opaque() {
			break
		}
	}
	return out
}

// intersectElement intersects a ray with an element's 3D footprint:
// triangles directly, segments as cylinders of the stroke radius, points
// as spheres of the dot radius. Stroke radii are screen-space widths, so
// they are converted to world units at the element's depth.
func intersectElement(cam camera.Camera, ray geom.Ray, el *scene.Element) (float64, bool) {
	switch el.Kind() {
	case scene.KindPoint:
		radius := cam.PixelSize(el.Width/2, cam.Depth(el.Point(0)))
		return geom.IntersectSphere(ray, el.Point(0), radius)
	case scene.KindSegment:
		radius := cam.PixelSize(el.Width/2, cam.Depth(el.Centroid()))
		return geom.IntersectCylinder(ray, el.Point(0), el.Point(1), radius)
	case scene.KindTriangle:
		return el.Triangle().IntersectRay(ray)
	}
	return 0, false
}

// addColor accumulates premultiplied-by-count averaging input.
func addColor(a, b shade.Color) shade.Color {
	return shade.Color{R: a.R + b.R, G: a.G + b.G, B: a.B + b.B, A: a.A + b.A}
}
