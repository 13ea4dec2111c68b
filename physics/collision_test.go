package physics

import "testing"

func floorBody(t *testing.T) *Body {
	t.Helper()
	shape, err := NewClosedShape([]Vector2{
		{X: -10, Y: -1},
		{X: 10, Y: -1},
		{X: 10, Y: 1},
		{X: -10, Y: 1},
	})
	if err != nil {
		t.Fatalf("NewClosedShape: %v", err)
	}
	b, err := NewBody(shape, []float64{StaticMass}, Vector2{X: 0, Y: 0}, 0, 1)
	if err != nil {
		t.Fatalf("NewBody: %v", err)
	}
	b.IsStatic = true
	return b
}

func TestNarrowPhaseDetectsPointInsideBody(t *testing.T) {
	floor := floorBody(t)
	shape := squareShape(t)
	falling, err := NewBody(shape, []float64{1}, Vector2{X: 0, Y: 0.5}, 0, 1)
	if err != nil {
		t.Fatalf("NewBody: %v", err)
	}

	infos := narrowPhase(falling, floor)
	if len(infos) == 0 {
		t.Fatalf("expected at least one point of the falling body to be recorded inside the floor")
	}
}

func TestNarrowPhaseEmptyWhenSeparated(t *testing.T) {
	floor := floorBody(t)
	shape := squareShape(t)
	falling, err := NewBody(shape, []float64{1}, Vector2{X: 0, Y: 50}, 0, 1)
	if err != nil {
		t.Fatalf("NewBody: %v", err)
	}

	if infos := narrowPhase(falling, floor); len(infos) != 0 {
		t.Fatalf("expected no contacts when bodies are far apart, got %d", len(infos))
	}
}

// The square's bottom edge sits 0.5 below the floor's top surface, so its
// bottom point masses resolve against that top edge.
func TestResolveCollisionPushesPointOutAndReflectsVelocity(t *testing.T) {
	floor := floorBody(t)
	shape := squareShape(t)
	falling, err := NewBody(shape, []float64{1}, Vector2{X: 0, Y: 1.5}, 0, 1)
	if err != nil {
		t.Fatalf("NewBody: %v", err)
	}
	for _, pm := range falling.PointMasses {
		pm.Velocity = Vector2{X: 0, Y: -5}
	}

	infos := narrowPhase(falling, floor)
	if len(infos) == 0 {
		t.Fatalf("expected contacts to resolve")
	}

	material := Material{Restitution: 1, Friction: 0}
	for _, info := range infos {
		resolveCollision(info, material, 0)
	}

	for _, pm := range falling.PointMasses {
		if pm.Position.Y < 1-1e-9 {
			t.Fatalf("point should have been pushed back out of the floor, got %v", pm.Position)
		}
	}
	for _, info := range infos {
		if info.Point.Velocity.Y <= 0 {
			t.Fatalf("restitution 1 should have reflected the downward velocity, got %v", info.Point.Velocity)
		}
	}
}

func TestCombinedMaterialTakesWeakerRestitution(t *testing.T) {
	a := Material{Restitution: 0.8, Friction: 0}
	b := Material{Restitution: 0.2, Friction: 0}
	got := combinedMaterial(a, b)
	if got.Restitution != 0.2 {
		t.Fatalf("expected weaker restitution 0.2, got %v", got.Restitution)
	}
}

func TestCombinedMaterialGeometricFriction(t *testing.T) {
	a := Material{Restitution: 0, Friction: 0.25}
	b := Material{Restitution: 0, Friction: 0.25}
	got := combinedMaterial(a, b)
	if got.Friction < 0.2499 || got.Friction > 0.2501 {
		t.Fatalf("expected sqrt(0.25*0.25) = 0.25, got %v", got.Friction)
	}
}
