package physics

import "fmt"

// ApplyTorque adds perpendicular(normalize(p_i - derivedPos)) * torque to
// every point mass's force accumulator.
func (b *Body) ApplyTorque(torque float64) {
	for _, pm := range b.PointMasses {
		r := pm.Position.Sub(b.derivedPos).Normalize()
		pm.ApplyForce(r.Perp().Scale(torque))
	}
}

// SetAngularVelocity and AddAngularVelocity act on velocity the way
// ApplyTorque acts on force.
func (b *Body) SetAngularVelocity(omega float64) {
	for _, pm := range b.PointMasses {
		r := pm.Position.Sub(b.derivedPos).Normalize()
		pm.Velocity = r.Perp().Scale(omega)
	}
	b.derivedOmega = omega
}

func (b *Body) AddAngularVelocity(omega float64) {
	for _, pm := range b.PointMasses {
		r := pm.Position.Sub(b.derivedPos).Normalize()
		pm.Velocity = pm.Velocity.Add(r.Perp().Scale(omega))
	}
	b.derivedOmega += omega
}

// AddGlobalForce adds f to every point mass, plus a per-point torque
// perpendicular(p_i - pt) * cross(derivedPos - pt, f).
func (b *Body) AddGlobalForce(pt Vector2, f Vector2) {
	torqueScalar := b.derivedPos.Sub(pt).Cross(f)
	for _, pm := range b.PointMasses {
		pm.ApplyForce(f)
		r := pm.Position.Sub(pt)
		pm.ApplyForce(r.Perp().Scale(torqueScalar))
	}
}

// SetShape replaces the body's rest shape, re-transforming point masses into
// the new template at the current pose. The vertex count must match.
func (b *Body) SetShape(shape *ClosedShape) error {
	if shape.Count() != len(b.PointMasses) {
		return fmt.Errorf("physics: SetShape vertex count %d does not match body's %d", shape.Count(), len(b.PointMasses))
	}
	b.baseShape = shape
	worldVerts := shape.TransformVertices(b.derivedPos, b.derivedAngle, b.scale)
	for i, pm := range b.PointMasses {
		pm.Position = worldVerts[i]
	}
	return nil
}

// SetMassAll broadcasts a single mass value to every point mass.
func (b *Body) SetMassAll(mass float64) error {
	if mass < 0 {
		return fmt.Errorf("physics: mass must be non-negative, got %v", mass)
	}
	for _, pm := range b.PointMasses {
		pm.Mass = mass
	}
	return nil
}

// SetMassFromList assigns per-point masses; the list length must match the
// point-mass count.
func (b *Body) SetMassFromList(masses []float64) error {
	if len(masses) != len(b.PointMasses) {
		return fmt.Errorf("physics: mass list length %d does not match body's %d point masses", len(masses), len(b.PointMasses))
	}
	for i, m := range masses {
		if m < 0 {
			return fmt.Errorf("physics: mass must be non-negative, got %v at index %d", m, i)
		}
		b.PointMasses[i].Mass = m
	}
	return nil
}
