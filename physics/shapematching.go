package physics

import "fmt"

// ShapeMatching is an internal BodyComponent that pulls each point mass
// toward where it would sit if the body's rest shape were rigidly
// transformed to the body's current derived pose. It restores silhouette
// without forbidding deformation.
//
// This reads the derived pose computed at the end of the *previous* tick:
// World.Step accumulates forces (reading last tick's pose) before it
// re-derives pose for the current tick.
type ShapeMatching struct {
	Stiffness float64
	Damping   float64

	body *Body
}

func NewShapeMatching(stiffness, damping float64) (*ShapeMatching, error) {
	if stiffness < 0 || damping < 0 {
		return nil, fmt.Errorf("physics: shape-matching stiffness and damping must be non-negative, got k=%v c=%v", stiffness, damping)
	}
	return &ShapeMatching{Stiffness: stiffness, Damping: damping}, nil
}

func (s *ShapeMatching) Prepare(b *Body) {
	s.body = b
}

func (s *ShapeMatching) AccumulateInternalForces() {
	b := s.body
	pos := b.derivedPos
	angle := b.derivedAngle
	scale := b.scale

	for i, pm := range b.PointMasses {
		target := b.baseShape.LocalVertices[i].Rotate(angle).Scale(scale).Add(pos)
		force := target.Sub(pm.Position).Scale(s.Stiffness).Sub(pm.Velocity.Scale(s.Damping))
		pm.ApplyForce(force)
	}
}

func (s *ShapeMatching) AccumulateExternalForces() {}
