package render

import (
	"image"
	"math"

	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"github.com/Faultbox/prism/internal/logger"
	"github.com/Faultbox/prism/pkg/camera"
	"github.com/Faultbox/prism/pkg/geom"
	"github.com/Faultbox/prism/pkg/light"
	"github.com/Faultbox/prism/pkg/scene"
	"github.com/Faultbox/prism/pkg/shade"
)

// ZBuffer is the rasterizing visibility strategy: a per-pixel depth
// buffer and z-index buffer decide the winner at every covered pixel,
// with per-pixel material evaluation. Elements are rasterized one at a
// time; rows of a single element run in parallel.
//
// When a covered pixel loses the depth test but the colour already there
// is not fully opaque, the loser is still blended behind it without
// touching the buffers. This mis-orders three or more stacked translucent
// surfaces; the ray-casting strategy composites those exactly.
type ZBuffer struct {
	Camera camera.Camera
	Lights []light.Source

	// Supersample rasterizes at this multiple of the output size and
	// scales down at the end. Values below 1 behave as 1.
	Supersample int
}

// Render rasterizes the scene into an image of the camera's declared
// output size. The caller must hold the scene's lock for the duration of
// the call. Buffers are freshly allocated per call, so a render never
// exposes partial state.
func (r *ZBuffer) Render(sc *scene.Scene) (*image.NRGBA, error) {
	cam := r.Camera
	outW, outH := cam.OutputSize()
	ss := r.Supersample
	if ss < 1 {
		ss = 1
	}
	w, h := outW*ss, outH*ss

	buf := &rasterBuf{
		w: w, h: h, scale: float64(ss),
		col:   make([]shade.Color, w*h),
		depth: make([]float64, w*h),
		zidx:  make([]int, w*h),
	}
	for i := range buf.depth {
		buf.depth[i] = math.Inf(1)
		buf.zidx[i] = math.MinInt
	}

	els := visible(cam, sc.Elements())
	pass := camera.NewPass(cam)
	pass.Prime(els)
	casters := shadowCasters(els)

	for _, el := range els {
		r.rasterize(buf, el, pass, casters)
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i, c := range buf.col {
		n := c.NRGBA()
		img.Pix[i*4+0] = n.R
		img.Pix[i*4+1] = n.G
		img.Pix[i*4+2] = n.B
		img.Pix[i*4+3] = n.A
	}
	if ss > 1 {
		scaled := image.NewNRGBA(image.Rect(0, 0, outW, outH))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)
		img = scaled
	}

	logger.Debug("zbuffer pass",
		zap.Int("elements", len(els)),
		zap.Int("supersample", ss))
	return img, nil
}

// rasterBuf holds the per-pixel state of one render call. scale converts
// buffer pixels to the camera's output coordinates.
type rasterBuf struct {
	w, h  int
	scale float64
	col   []shade.Color
	depth []float64
	zidx  []int
}

// rasterize composites one element into the buffers. Rows are split
// across CPUs; rows are disjoint, so no pixel is written twice
// concurrently.
func (r *ZBuffer) rasterize(buf *rasterBuf, el *scene.Element, pass *camera.Pass, casters []geom.Triangle) {
	pts := pass.Projected(el)
	pad := el.Width/2 + 1
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	x0 := clampInt(int(math.Floor((minX-pad)*buf.scale)), 0, buf.w)
	x1 := clampInt(int(math.Ceil((maxX+pad)*buf.scale))+1, 0, buf.w)
	y0 := clampInt(int(math.Floor((minY-pad)*buf.scale)), 0, buf.h)
	y1 := clampInt(int(math.Ceil((maxY+pad)*buf.scale))+1, 0, buf.h)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	viewpoint := r.Camera.Viewpoint()
	parallelRows(y0, y1, func(ry0, ry1 int) {
		for y := ry0; y < ry1; y++ {
			for x := x0; x < x1; x++ {
				q := geom.Vec2{
					X: (float64(x) + 0.5) / buf.scale,
					Y: (float64(y) + 0.5) / buf.scale,
				}
				cover := coverage(el, pts, q)
				if cover <= 0 {
					continue
				}
				p3, err := r.Camera.Deproject(q, el)
				if err != nil {
					continue // edge-on in projection, no reliable surface point
				}
				depth := r.Camera.Depth(p3)

				var n geom.Vec3
				if el.Kind() == scene.KindTriangle {
					n = el.NormalAt(el.Triangle().Barycentric(p3))
				}
				c := surfaceColor(el, p3, n, viewpoint, r.Lights, casters)
				if cover < 1 {
					c = c.WithAlpha(c.A * cover)
				}

				i := y*buf.w + x
				switch {
				case el.ZIndex > buf.zidx[i],
					el.ZIndex == buf.zidx[i] && depth < buf.depth[i]:
					buf.col[i] = c.Over(buf.col[i])
					buf.depth[i] = depth
					buf.zidx[i] = el.ZIndex
				case !buf.col[i].Opaque():
					// Lost the depth test but the pixel still has
					// transparency: blend behind without updating the
					// buffers. See the type comment for the limitation.
					buf.col[i] = buf.col[i].Over(c)
				}
			}
		}
	})
}

// coverage returns the element's coverage of an output point: hard-edged
// for triangles, a one-pixel distance falloff on point and segment edges.
func coverage(el *scene.Element, pts []geom.Vec2, q geom.Vec2) float64 {
	switch el.Kind() {
	case scene.KindPoint:
		return clamp01(el.Width/2 + 0.5 - q.Distance(pts[0]))
	case scene.KindSegment:
		d, _ := geom.DistToSegment2D(q, pts[0], pts[1])
		return clamp01(el.Width/2 + 0.5 - d)
	case scene.KindTriangle:
		if geom.PointInTriangle2D(q, pts[0], pts[1], pts[2]) {
			return 1
		}
	}
	return 0
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
