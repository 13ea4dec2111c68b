package physics

import "testing"

func TestAABBClearIsDegenerate(t *testing.T) {
	var a AABB
	a.Clear()
	if !a.isDegenerate() {
		t.Fatalf("cleared AABB should be degenerate")
	}
	if a.Contains(Vector2{}) {
		t.Fatalf("degenerate AABB should contain nothing")
	}
}

func TestAABBExpandToInclude(t *testing.T) {
	var a AABB
	a.Clear()
	a.ExpandToInclude(Vector2{X: 1, Y: 1})
	a.ExpandToInclude(Vector2{X: -1, Y: 3})
	if a.Min != (Vector2{X: -1, Y: 1}) || a.Max != (Vector2{X: 1, Y: 3}) {
		t.Fatalf("unexpected bounds after expand: %+v", a)
	}
}

func TestAABBIntersects(t *testing.T) {
	a := AABB{Min: Vector2{X: 0, Y: 0}, Max: Vector2{X: 2, Y: 2}}
	b := AABB{Min: Vector2{X: 1, Y: 1}, Max: Vector2{X: 3, Y: 3}}
	c := AABB{Min: Vector2{X: 5, Y: 5}, Max: Vector2{X: 6, Y: 6}}
	if !a.Intersects(b) {
		t.Fatalf("expected a and b to intersect")
	}
	if a.Intersects(c) {
		t.Fatalf("expected a and c to not intersect")
	}
}

func TestAABBWidthHeight(t *testing.T) {
	a := AABB{Min: Vector2{X: 0, Y: 0}, Max: Vector2{X: 4, Y: 2}}
	if a.Width() != 4 || a.Height() != 2 {
		t.Fatalf("unexpected width/height: %v %v", a.Width(), a.Height())
	}
}
