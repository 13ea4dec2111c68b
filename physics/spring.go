package physics

import "fmt"

// SpringEntry connects two of a body's point masses by index, the way the
// teacher's Rope connects a player to a chain of ChainSegments.
type SpringEntry struct {
	A, B       int
	RestLength float64
	Stiffness  float64
	Damping    float64
}

// Spring is an internal BodyComponent: an ordered list of point-mass pairs
// held at a rest length by a damped linear force. Edge springs and interior
// shape-holding springs are both just entries in Entries.
type Spring struct {
	Entries []SpringEntry

	body *Body
}

// NewSpring validates that stiffness/damping are non-negative and builds
// the component. edges are typically the body's own ring edges;
// internalSprings are additional shape-holding diagonals.
func NewSpring(edges []SpringEntry, stiffness, damping float64, internalSprings []SpringEntry) (*Spring, error) {
	if stiffness < 0 || damping < 0 {
		return nil, fmt.Errorf("physics: spring stiffness and damping must be non-negative, got k=%v c=%v", stiffness, damping)
	}
	entries := make([]SpringEntry, 0, len(edges)+len(internalSprings))
	for _, e := range edges {
		if e.Stiffness == 0 && e.Damping == 0 {
			e.Stiffness, e.Damping = stiffness, damping
		}
		entries = append(entries, e)
	}
	entries = append(entries, internalSprings...)
	return &Spring{Entries: entries}, nil
}

// NewEdgeSpring builds the common case: one spring per ring edge of the
// shape the body was constructed from, all sharing stiffness/damping, plus
// whatever extra shape-holding entries the caller supplies.
func NewEdgeSpring(shape *ClosedShape, stiffness, damping float64, internalSprings []SpringEntry) (*Spring, error) {
	n := shape.Count()
	edges := make([]SpringEntry, n)
	for i := 0; i < n; i++ {
		rest := shape.LocalVertices[i].Distance(shape.LocalVertices[(i+1)%n])
		edges[i] = SpringEntry{A: i, B: (i + 1) % n, RestLength: rest, Stiffness: stiffness, Damping: damping}
	}
	return NewSpring(edges, stiffness, damping, internalSprings)
}

func (s *Spring) Prepare(b *Body) {
	s.body = b
}

// AccumulateInternalForces applies F = k*(len-L) + c*(u.v) along the spring
// axis to both endpoints, in opposite directions.
func (s *Spring) AccumulateInternalForces() {
	pm := s.body.PointMasses
	for _, e := range s.Entries {
		a, b := pm[e.A], pm[e.B]

		d := b.Position.Sub(a.Position)
		length := d.Length()
		u := d.Normalize()

		relVel := b.Velocity.Sub(a.Velocity)
		forceMag := e.Stiffness*(length-e.RestLength) + e.Damping*u.Dot(relVel)

		force := u.Scale(forceMag)
		a.ApplyForce(force)
		b.ApplyForce(force.Neg())
	}
}

// AccumulateExternalForces: a spring only contributes internal forces.
func (s *Spring) AccumulateExternalForces() {}
