package physics

import (
	"math"
	"testing"
)

func TestNewPressureRejectsNegativeGas(t *testing.T) {
	if _, err := NewPressure(-1); err == nil {
		t.Fatalf("expected error for negative gas amount")
	}
}

// A symmetric polygon under pressure alone is an internal self-balancing
// force, so the forces it applies to every point mass should sum to ~zero
// net force.
func TestPressureNetForceIsZeroOnRegularPolygon(t *testing.T) {
	shape, err := NewRegularPolygon(6, 2)
	if err != nil {
		t.Fatalf("NewRegularPolygon: %v", err)
	}
	pressure, err := NewPressure(10)
	if err != nil {
		t.Fatalf("NewPressure: %v", err)
	}
	body, err := NewBody(shape, []float64{1}, Vector2{}, 0, 1, pressure)
	if err != nil {
		t.Fatalf("NewBody: %v", err)
	}

	body.AccumulateInternalForces()

	var net Vector2
	for _, pm := range body.PointMasses {
		net = net.Add(pm.Force)
	}
	if net.Length() > 1e-9 {
		t.Fatalf("expected net internal pressure force ~0 on a regular polygon, got %v", net)
	}
}

func TestPressureAreaFloorPreventsSingularity(t *testing.T) {
	// A near-degenerate (collapsed) triangle should not blow up the force
	// magnitude, thanks to the area floor.
	shape, err := NewClosedShape([]Vector2{{X: 0, Y: 0}, {X: 0.001, Y: 0}, {X: 0, Y: 0.001}})
	if err != nil {
		t.Fatalf("NewClosedShape: %v", err)
	}
	pressure, err := NewPressure(10)
	if err != nil {
		t.Fatalf("NewPressure: %v", err)
	}
	body, err := NewBody(shape, []float64{1}, Vector2{}, 0, 1, pressure)
	if err != nil {
		t.Fatalf("NewBody: %v", err)
	}

	body.AccumulateInternalForces()
	for _, pm := range body.PointMasses {
		if math.IsNaN(pm.Force.X) || math.IsInf(pm.Force.X, 0) {
			t.Fatalf("pressure force exploded on near-degenerate shape: %v", pm.Force)
		}
	}
}

func TestPressurePushesOutward(t *testing.T) {
	shape, err := NewRegularPolygon(4, 1)
	if err != nil {
		t.Fatalf("NewRegularPolygon: %v", err)
	}
	pressure, err := NewPressure(5)
	if err != nil {
		t.Fatalf("NewPressure: %v", err)
	}
	body, err := NewBody(shape, []float64{1}, Vector2{}, 0, 1, pressure)
	if err != nil {
		t.Fatalf("NewBody: %v", err)
	}

	body.AccumulateInternalForces()
	for _, pm := range body.PointMasses {
		outward := pm.Position.Normalize()
		if pm.Force.Dot(outward) <= 0 {
			t.Fatalf("expected outward-pointing force at %v, got %v", pm.Position, pm.Force)
		}
	}
}
