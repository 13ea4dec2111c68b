package physics

// Gravity is an external BodyComponent: a constant acceleration applied to
// every non-static point mass every step.
type Gravity struct {
	Acceleration Vector2

	body *Body
}

func NewGravity(acceleration Vector2) *Gravity {
	return &Gravity{Acceleration: acceleration}
}

func (g *Gravity) Prepare(b *Body) {
	g.body = b
}

func (g *Gravity) AccumulateInternalForces() {}

func (g *Gravity) AccumulateExternalForces() {
	for _, pm := range g.body.PointMasses {
		if pm.IsStatic() {
			continue
		}
		pm.ApplyForce(g.Acceleration.Scale(pm.Mass))
	}
}
