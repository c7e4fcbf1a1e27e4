package render

import (
	"github.com/Faultbox/prism/pkg/camera"
	"github.com/Faultbox/prism/pkg/scene"
)

// maxSplitDepth bounds recursive subdivision so geometry grazing the
// viewpoint cannot split without end.
const maxSplitDepth = 6

// subdivide recursively splits segments and triangles whose projected
// footprint exceeds maxFootprint pixels. Smaller pieces bound the
// painter's-algorithm artifacts that large overlapping shapes produce,
// at the cost of element count. Points are never split. A non-positive
// threshold disables subdivision.
func subdivide(cam camera.Camera, els []*scene.Element, maxFootprint float64) []*scene.Element {
	if maxFootprint <= 0 {
		return els
	}
	out := make([]*scene.Element, 0, len(els))
	for _, el := range els {
		out = splitInto(out, cam, el, maxFootprint, 0)
	}
	return out
}

func splitInto(out []*scene.Element, cam camera.Camera, el *scene.Element, maxFootprint float64, depth int) []*scene.Element {
	if depth >= maxSplitDepth || footprint(cam, el) <= maxFootprint {
		return append(out, el)
	}
	switch el.Kind() {
	case scene.KindSegment:
		for _, part := range el.SplitSegment() {
			out = splitInto(out, cam, part, maxFootprint, depth+1)
		}
	case scene.KindTriangle:
		for _, part := range el.SplitTriangle() {
			out = splitInto(out, cam, part, maxFootprint, depth+1)
		}
	default:
		out = append(out, el)
	}
	return out
}

// footprint returns the largest pairwise distance between an element's
// projected points, in pixels.
func footprint(cam camera.Camera, el *scene.Element) float64 {
	n := el.NumPoints()
	max := 0.0
	for i := 0; i < n; i++ {
		pi := cam.Project(el.Point(i))
		for j := i + 1; j < n; j++ {
			if d := pi.Distance(cam.Project(el.Point(j))); d > max {
				max = d
			}
		}
	}
	return max
}
