// Package render implements the three visibility strategies that turn a
// scene into output: Painter (exact pairwise ordering and a vector
// document), ZBuffer (depth-and-index buffer rasterization) and Raycast
// (per-pixel ray casting with depth-sorted compositing). All three share
// the same illumination contract through pkg/light and pkg/shade.
package render

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/prism/pkg/camera"
	"github.com/Faultbox/prism/pkg/geom"
	"github.com/Faultbox/prism/pkg/light"
	"github.com/Faultbox/prism/pkg/scene"
	"github.com/Faultbox/prism/pkg/shade"
)

// visible filters out the elements the camera culls.
func visible(cam camera.Camera, els []*scene.Element) []*scene.Element {
	kept := make([]*scene.Element, 0, len(els))
	for _, el := range els {
		if !cam.IsCulled(el) {
			kept = append(kept, el)
		}
	}
	return kept
}

// shadowCasters collects the plain triangles of every shadow-casting
// triangle element. Lights test obstruction against this list only.
func shadowCasters(els []*scene.Element) []geom.Triangle {
	var casters []geom.Triangle
	for _, el := range els {
		if el.Kind() == scene.KindTriangle && el.CastShadow {
			casters = append(casters, el.Triangle())
		}
	}
	return casters
}

// surfaceColor evaluates an element's colour at a surface point. Points
// and segments carry a flat colour; triangles run their material stack,
// later materials painted over earlier ones. Obstruction is computed per
// light when the triangle receives shadows.
func surfaceColor(el *scene.Element, p, n, viewpoint geom.Vec3, lights []light.Source, casters []geom.Triangle) shade.Color {
	if el.Kind() != scene.KindTriangle {
		return el.Color
	}

	var obstr []float64
	if el.ReceiveShadow && len(casters) > 0 {
		obstr = make([]float64, len(lights))
		for i, l := range lights {
			obstr[i] = l.Obstruction(p, casters)
		}
	}

	var out shade.Color
	for _, m := range el.Materials {
		out = m.At(p, n, viewpoint, lights, obstr).Over(out)
	}
	return out
}

// parallelRows splits the half-open row range [lo, hi) across the
// available CPUs and runs fn on each chunk. Chunks are disjoint, so fn
// may write freely to per-row state.
func parallelRows(lo, hi int, fn func(y0, y1 int)) {
	n := hi - lo
	if n <= 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	var g errgroup.Group
	for y0 := lo; y0 < hi; y0 += chunk {
		y0, y1 := y0, y0+chunk
		if y1 > hi {
			y1 = hi
		}
		g.Go(func() error {
			fn(y0, y1)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors
}
