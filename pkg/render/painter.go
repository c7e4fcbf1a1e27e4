package render

import (
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/prism/internal/logger"
	"github.com/Faultbox/prism/pkg/camera"
	"github.com/Faultbox/prism/pkg/light"
	"github.com/Faultbox/prism/pkg/scene"
)

// Painter is the exact visibility strategy: every surviving element pair
// is ordered by the camera's comparator, the resulting partial order is
// topologically sorted, and the elements are painted back to front into
// a vector Document. Triangle colour is evaluated once at the centroid.
type Painter struct {
	Camera camera.Camera
	Lights []light.Source

	// MaxFootprint, when positive, recursively splits segments and
	// triangles until their projected footprint fits within this many
	// pixels before ordering.
	MaxFootprint float64
}

// Render produces the vector document for the scene. The caller must
// hold the scene's lock for the duration of the call.
func (p *Painter) Render(sc *scene.Scene) (*Document, error) {
	cam := p.Camera
	els := visible(cam, sc.Elements())
	els = subdivide(cam, els, p.MaxFootprint)

	pass := camera.NewPass(cam)
	pass.Prime(els)
	casters := shadowCasters(els)

	order := drawOrder(cam, els, pass)

	w, h := cam.OutputSize()
	doc := &Document{Width: w, Height: h}
	viewpoint := cam.Viewpoint()
	for _, i := range order {
		el := els[i]
		switch el.Kind() {
		case scene.KindPoint:
			doc.append(OpDot, pass.Projected(el), el.Color, el.Width, el.Tag)
		case scene.KindSegment:
			doc.append(OpStroke, pass.Projected(el), el.Color, el.Width, el.Tag)
		case scene.KindTriangle:
			c := surfaceColor(el, el.Centroid(), el.ShadingNormal(), viewpoint, p.Lights, casters)
			doc.append(OpFill, pass.Projected(el), c, 0, el.Tag)
		}
	}

	logger.Debug("painter pass",
		zap.Int("elements", len(els)),
		zap.Int("ops", len(doc.Ops)))
	return doc, nil
}

// drawOrder runs the pairwise comparisons in parallel and converts the
// strict front/behind results into a back-to-front paint order. Each
// comparison is independent, so the upper triangle of the result matrix
// is split across CPUs.
func drawOrder(cam camera.Camera, els []*scene.Element, pass *camera.Pass) []int {
	n := len(els)
	cmp := make([][]int8, n)
	for i := range cmp {
		cmp[i] = make([]int8, n)
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			for j := i + 1; j < n; j++ {
				cmp[i][j] = int8(cam.Compare(els[i], els[j], pass))
			}
			return nil
		})
	}
	_ = g.Wait() // comparisons never return errors

	// An element strictly in front must be painted after everything it
	// occludes.
	before := make([][]int, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			switch int(cmp[i][j]) {
			case camera.FirstInFront:
				before[i] = append(before[i], j)
			case camera.SecondInFront:
				before[j] = append(before[j], i)
			}
		}
	}
	return topoSort(before)
}
