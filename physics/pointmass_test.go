package physics

import "testing"

func TestPointMassStaticNeverMoves(t *testing.T) {
	pm := NewPointMass(StaticMass, Vector2{X: 1, Y: 1})
	pm.ApplyForce(Vector2{X: 100, Y: 100})
	pm.Integrate(1.0 / 60)
	if pm.Position != (Vector2{X: 1, Y: 1}) {
		t.Fatalf("static point mass moved: %v", pm.Position)
	}
	if pm.InverseMass() != 0 {
		t.Fatalf("static point mass should have zero inverse mass")
	}
}

func TestPointMassIntegratesUnderConstantForce(t *testing.T) {
	pm := NewPointMass(1, Vector2{})
	pm.ApplyForce(Vector2{X: 10})
	pm.Integrate(1)
	if pm.Velocity.X != 10 {
		t.Fatalf("velocity = %v, want 10", pm.Velocity.X)
	}
	if pm.Position.X != 10 {
		t.Fatalf("position = %v, want 10", pm.Position.X)
	}
}

func TestPointMassForceClearedAfterIntegrate(t *testing.T) {
	pm := NewPointMass(1, Vector2{})
	pm.ApplyForce(Vector2{X: 5, Y: 5})
	pm.Integrate(1.0 / 60)
	if pm.Force != (Vector2{}) {
		t.Fatalf("force accumulator not cleared: %v", pm.Force)
	}
}
