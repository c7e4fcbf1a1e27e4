package scene

import (
	"math"
	"testing"

	"github.com/Faultbox/prism/pkg/geom"
	"github.com/Faultbox/prism/pkg/shade"
)

func TestKinds(t *testing.T) {
	p := NewPoint("p", geom.Vec3{})
	s := NewSegment("s", geom.Vec3{}, geom.Vec3{X: 1})
	tr := NewTriangle("t", geom.Vec3{}, geom.Vec3{X: 1}, geom.Vec3{Y: 1})

	if p.Kind() != KindPoint || p.NumPoints() != 1 {
		t.Errorf("point kind/arity wrong: %v/%d", p.Kind(), p.NumPoints())
	}
	if s.Kind() != KindSegment || s.NumPoints() != 2 {
		t.Errorf("segment kind/arity wrong: %v/%d", s.Kind(), s.NumPoints())
	}
	if tr.Kind() != KindTriangle || tr.NumPoints() != 3 {
		t.Errorf("triangle kind/arity wrong: %v/%d", tr.Kind(), tr.NumPoints())
	}
}

func TestGeometricNormal(t *testing.T) {
	tr := NewTriangle("t", geom.Vec3{}, geom.Vec3{X: 1}, geom.Vec3{Y: 1})
	got := tr.GeometricNormal()
	want := geom.Vec3{Z: 1}
	if got.Distance(want) > 1e-12 {
		t.Errorf("GeometricNormal() = %v, want %v", got, want)
	}
}

func TestShadingNormalAgreesWithVertexNormals(t *testing.T) {
	tr := NewTriangle("t", geom.Vec3{}, geom.Vec3{X: 1}, geom.Vec3{Y: 1})
	// Vertex normals pointing the other way flip the shading normal.
	tr.SetVertexNormals(geom.Vec3{Z: -1}, geom.Vec3{Z: -1}, geom.Vec3{Z: -1})
	n := tr.ShadingNormal()
	avg := tr.VertexNormal(0).Add(tr.VertexNormal(1)).Add(tr.VertexNormal(2))
	if n.Dot(avg) <= 0 {
		t.Errorf("shading normal %v disagrees with vertex-normal average %v", n, avg)
	}
}

func TestShadingNormalOverride(t *testing.T) {
	tr := NewTriangle("t", geom.Vec3{}, geom.Vec3{X: 1}, geom.Vec3{Y: 1})
	tr.SetShadingNormal(geom.Vec3{X: 3})
	got := tr.ShadingNormal()
	if got.Distance(geom.Vec3{X: 1}) > 1e-12 {
		t.Errorf("overridden shading normal = %v, want unit (1,0,0)", got)
	}
}

func TestNormalAtInterpolates(t *testing.T) {
	tr := NewTriangle("t", geom.Vec3{}, geom.Vec3{X: 1}, geom.Vec3{Y: 1})
	tr.SetVertexNormals(geom.Vec3{Z: 1}, geom.Vec3{X: 1}, geom.Vec3{Z: 1})
	n := tr.NormalAt(geom.Vec3{X: 0, Y: 1, Z: 0})
	if n.Distance(geom.Vec3{X: 1}) > 1e-12 {
		t.Errorf("NormalAt(vertex B) = %v, want (1,0,0)", n)
	}
	if l := tr.NormalAt(geom.Vec3{X: 0.5, Y: 0.25, Z: 0.25}).Length(); math.Abs(l-1) > 1e-12 {
		t.Errorf("interpolated normal length = %v, want 1", l)
	}
}

func TestSplitTriangle(t *testing.T) {
	tr := NewTriangle("t", geom.Vec3{}, geom.Vec3{X: 2}, geom.Vec3{Y: 2})
	tr.ZIndex = 7
	parts := tr.SplitTriangle()
	var area float64
	for _, p := range parts {
		if p.Tag != "t" || p.ZIndex != 7 {
			t.Errorf("split part lost attributes: tag=%q zindex=%d", p.Tag, p.ZIndex)
		}
		area += p.Triangle().Normal().Length() / 2
	}
	want := tr.Triangle().Normal().Length() / 2
	if math.Abs(area-want) > 1e-12 {
		t.Errorf("split area sum = %v, want %v", area, want)
	}
}

func TestSplitSegment(t *testing.T) {
	s := NewSegment("s", geom.Vec3{}, geom.Vec3{X: 4})
	parts := s.SplitSegment()
	if parts[0].Point(1) != (geom.Vec3{X: 2}) || parts[1].Point(0) != (geom.Vec3{X: 2}) {
		t.Errorf("segment split midpoints wrong: %v, %v", parts[0].Point(1), parts[1].Point(0))
	}
}

func TestSceneAddReplace(t *testing.T) {
	s := New()
	a := NewPoint("a", geom.Vec3{})
	b := NewPoint("b", geom.Vec3{X: 1})

	s.Lock()
	defer s.Unlock()

	s.Add(a)
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if !s.Replace(a, b) {
		t.Fatal("Replace() did not find the element")
	}
	if s.Elements()[0] != b {
		t.Error("Replace() did not keep position")
	}
	if s.Replace(a, b) {
		t.Error("Replace() of a removed element should report false")
	}
}

func TestTriangleMaterialStack(t *testing.T) {
	m1 := &shade.Flat{Color: shade.RGB(1, 0, 0)}
	m2 := &shade.Flat{Color: shade.RGBA(0, 0, 1, 0.5)}
	tr := NewTriangle("t", geom.Vec3{}, geom.Vec3{X: 1}, geom.Vec3{Y: 1}, m1, m2)
	if len(tr.Materials) != 2 {
		t.Fatalf("material stack size = %d, want 2", len(tr.Materials))
	}
	if tr.Materials[0] != shade.Material(m1) || tr.Materials[1] != shade.Material(m2) {
		t.Error("material stack order lost")
	}
}
