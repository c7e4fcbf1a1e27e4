package geom

import (
	"math"
	"testing"
)

var testTri = Triangle{
	A: Vec3{-1, -1, 5},
	B: Vec3{1, -1, 5},
	C: Vec3{0, 1, 5},
}

func TestTriangleIntersectRayHit(t *testing.T) {
	r := Ray{Origin: Vec3{0, 0, 0}, Dir: Vec3{0, 0, 1}}
	d, ok := testTri.IntersectRay(r)
	if !ok {
		t.Fatal("expected hit")
	}
	if math.Abs(d-5) > 1e-9 {
		t.Errorf("distance = %v, want 5", d)
	}
}

func TestTriangleIntersectRayMiss(t *testing.T) {
	r := Ray{Origin: Vec3{5, 5, 0}, Dir: Vec3{0, 0, 1}}
	if _, ok := testTri.IntersectRay(r); ok {
		t.Error("expected miss")
	}
}

func TestTriangleIntersectRayBehind(t *testing.T) {
	r := Ray{Origin: Vec3{0, 0, 10}, Dir: Vec3{0, 0, 1}}
	if _, ok := testTri.IntersectRay(r); ok {
		t.Error("triangle behind ray origin should not hit")
	}
}

func TestTriangleBarycentric(t *testing.T) {
	bc := testTri.Barycentric(testTri.A)
	if bc.Distance(Vec3{1, 0, 0}) > 1e-9 {
		t.Errorf("Barycentric(A) = %v, want (1,0,0)", bc)
	}
	c := testTri.Centroid()
	bc = testTri.Barycentric(c)
	want := Vec3{1.0 / 3, 1.0 / 3, 1.0 / 3}
	if bc.Distance(want) > 1e-9 {
		t.Errorf("Barycentric(centroid) = %v, want %v", bc, want)
	}
}

func TestTriangleDegenerate(t *testing.T) {
	tri := Triangle{A: Vec3{0, 0, 0}, B: Vec3{1, 1, 1}, C: Vec3{2, 2, 2}}
	if !tri.Degenerate() {
		t.Error("collinear triangle should be degenerate")
	}
	if testTri.Degenerate() {
		t.Error("proper triangle reported degenerate")
	}
}

func TestIntersectSphere(t *testing.T) {
	r := Ray{Origin: Vec3{0, 0, 0}, Dir: Vec3{0, 0, 1}}
	d, ok := IntersectSphere(r, Vec3{0, 0, 10}, 2)
	if !ok {
		t.Fatal("expected hit")
	}
	if math.Abs(d-8) > 1e-9 {
		t.Errorf("distance = %v, want 8", d)
	}
	if _, ok := IntersectSphere(r, Vec3{10, 0, 10}, 2); ok {
		t.Error("expected miss")
	}
}

func TestIntersectCylinder(t *testing.T) {
	r := Ray{Origin: Vec3{0, 0, 0}, Dir: Vec3{0, 0, 1}}
	d, ok := IntersectCylinder(r, Vec3{-1, 0, 10}, Vec3{1, 0, 10}, 0.5)
	if !ok {
		t.Fatal("expected hit")
	}
	if math.Abs(d-9.5) > 1e-9 {
		t.Errorf("distance = %v, want 9.5", d)
	}
	// Side hit outside the segment's parameter range.
	if _, ok := IntersectCylinder(r, Vec3{2, 0, 10}, Vec3{4, 0, 10}, 0.5); ok {
		t.Error("expected miss beyond segment end")
	}
}

func TestSegIntersect2D(t *testing.T) {
	p, s, u, ok := SegIntersect2D(Vec2{0, 0}, Vec2{2, 2}, Vec2{0, 2}, Vec2{2, 0})
	if !ok {
		t.Fatal("expected intersection")
	}
	if p.Distance(Vec2{1, 1}) > 1e-9 {
		t.Errorf("intersection = %v, want (1,1)", p)
	}
	if math.Abs(s-0.5) > 1e-9 || math.Abs(u-0.5) > 1e-9 {
		t.Errorf("params = %v, %v, want 0.5, 0.5", s, u)
	}
	if _, _, _, ok := SegIntersect2D(Vec2{0, 0}, Vec2{1, 0}, Vec2{0, 1}, Vec2{1, 1}); ok {
		t.Error("parallel segments should not intersect")
	}
}

func TestPointInTriangle2D(t *testing.T) {
	a, b, c := Vec2{0, 0}, Vec2{4, 0}, Vec2{0, 4}
	if !PointInTriangle2D(Vec2{1, 1}, a, b, c) {
		t.Error("interior point rejected")
	}
	if PointInTriangle2D(Vec2{3, 3}, a, b, c) {
		t.Error("exterior point accepted")
	}
	if !PointInTriangle2D(Vec2{2, 0}, a, b, c) {
		t.Error("boundary point rejected")
	}
}

func TestDistToSegment2D(t *testing.T) {
	d, s := DistToSegment2D(Vec2{1, 1}, Vec2{0, 0}, Vec2{2, 0})
	if math.Abs(d-1) > 1e-9 {
		t.Errorf("distance = %v, want 1", d)
	}
	if math.Abs(s-0.5) > 1e-9 {
		t.Errorf("param = %v, want 0.5", s)
	}
	// Beyond the segment end the distance is to the endpoint.
	d, s = DistToSegment2D(Vec2{3, 0}, Vec2{0, 0}, Vec2{2, 0})
	if math.Abs(d-1) > 1e-9 || s != 1 {
		t.Errorf("endpoint clamp: d=%v s=%v, want 1, 1", d, s)
	}
}

func TestClosestOnSegment(t *testing.T) {
	r := Ray{Origin: Vec3{0, 0, 0}, Dir: Vec3{0, 0, 1}}
	p, d := ClosestOnSegment(r, Vec3{-1, 0, 4}, Vec3{1, 0, 4})
	if p.Distance(Vec3{0, 0, 4}) > 1e-9 {
		t.Errorf("closest point = %v, want (0,0,4)", p)
	}
	if math.Abs(d-4) > 1e-9 {
		t.Errorf("ray distance = %v, want 4", d)
	}
}
