package physics

import (
	"fmt"
	"math"
)

// BodyState is the per-step state machine a Body passes through under the
// World's scheduling. Bodies never self-advance; World drives every
// transition.
type BodyState int

const (
	StateIdle BodyState = iota
	StateForcesAccumulated
	StateIntegrated
	StatePoseDerived
	StateBroadphased
	StateResolved
)

// Body is a deformable polygon: a ring of PointMasses derived from a
// ClosedShape, plus the components that push forces onto those point
// masses every step.
type Body struct {
	baseShape *ClosedShape

	PointMasses []*PointMass
	components  []BodyComponent

	aabb AABB

	derivedPos   Vector2
	derivedAngle float64
	derivedVel   Vector2
	derivedOmega float64
	lastAngle    float64

	scale       float64
	VelDamping  float64
	IsStatic    bool
	IsKinematic bool
	IsPinned    bool
	FreeRotate  bool
	Render      bool

	Material       int
	CollisionMask  uint32
	CollisionLayer uint32
	Tag            any

	state BodyState
}

// NewBody constructs a Body from a shape and initial pose. masses must have
// either length 1 (broadcast to every point) or length equal to the shape's
// vertex count. Components are attached in the given order.
func NewBody(shape *ClosedShape, masses []float64, position Vector2, angle, scale float64, components ...BodyComponent) (*Body, error) {
	if shape == nil || shape.Count() < 3 {
		return nil, fmt.Errorf("physics: body requires a shape with at least 3 vertices")
	}
	if scale == 0 {
		return nil, fmt.Errorf("physics: body scale must be non-zero")
	}
	if math.IsNaN(position.X) || math.IsNaN(position.Y) || math.IsInf(position.X, 0) || math.IsInf(position.Y, 0) {
		return nil, fmt.Errorf("physics: body position must be finite, got %v", position)
	}
	n := shape.Count()
	resolvedMasses, err := resolveMasses(masses, n)
	if err != nil {
		return nil, err
	}

	b := &Body{
		baseShape:      shape,
		scale:          scale,
		VelDamping:     DefaultVelocityDamping,
		CollisionMask:  ^uint32(0),
		CollisionLayer: 1,
		derivedPos:     position,
		derivedAngle:   angle,
		lastAngle:      angle,
		Render:         true,
	}

	worldVerts := shape.TransformVertices(position, angle, scale)
	b.PointMasses = make([]*PointMass, n)
	for i := 0; i < n; i++ {
		b.PointMasses[i] = NewPointMass(resolvedMasses[i], worldVerts[i])
	}

	for _, c := range components {
		b.attach(c)
	}

	b.updateAABB(0)
	return b, nil
}

func resolveMasses(masses []float64, n int) ([]float64, error) {
	switch len(masses) {
	case 0:
		return nil, fmt.Errorf("physics: body requires at least one mass value")
	case 1:
		out := make([]float64, n)
		for i := range out {
			out[i] = masses[0]
		}
		return out, nil
	default:
		if len(masses) != n {
			return nil, fmt.Errorf("physics: mass array length %d does not match vertex count %d", len(masses), n)
		}
		for _, m := range masses {
			if m < 0 || math.IsNaN(m) || math.IsInf(m, 0) {
				return nil, fmt.Errorf("physics: mass values must be finite and non-negative, got %v", m)
			}
		}
		return masses, nil
	}
}

func (b *Body) attach(c BodyComponent) {
	c.Prepare(b)
	b.components = append(b.components, c)
}

// AddComponent attaches a new component after construction, e.g. adding
// gravity to an already-built body.
func (b *Body) AddComponent(c BodyComponent) {
	b.attach(c)
}

// BaseShape returns the body's rest-shape template.
func (b *Body) BaseShape() *ClosedShape {
	return b.baseShape
}

func (b *Body) Scale() float64 { return b.scale }

func (b *Body) DerivedPosition() Vector2   { return b.derivedPos }
func (b *Body) DerivedAngle() float64      { return b.derivedAngle }
func (b *Body) DerivedVelocity() Vector2   { return b.derivedVel }
func (b *Body) DerivedAngularVel() float64 { return b.derivedOmega }
func (b *Body) AABB() AABB                 { return b.aabb }
func (b *Body) State() BodyState           { return b.state }

// Vertices returns the current world-space point-mass positions, in ring
// order — what rendering consumers read.
func (b *Body) Vertices() []Vector2 {
	out := make([]Vector2, len(b.PointMasses))
	for i, pm := range b.PointMasses {
		out[i] = pm.Position
	}
	return out
}

// edgeDifference returns p[(i+1)%n] - p[i], the edge vector leaving vertex i.
func (b *Body) edgeDifference(i int) Vector2 {
	n := len(b.PointMasses)
	return b.PointMasses[(i+1)%n].Position.Sub(b.PointMasses[i].Position)
}

// edgeOutwardNormal returns the outward normal of the edge leaving vertex i,
// under the shape's counter-clockwise winding convention.
func (b *Body) edgeOutwardNormal(i int) Vector2 {
	return b.edgeDifference(i).Perp().Scale(-1).Normalize()
}

// --- force phase ---

func (b *Body) clearForces() {
	for _, pm := range b.PointMasses {
		pm.Force = Vector2{}
	}
}

func (b *Body) AccumulateExternalForces() {
	for _, c := range b.components {
		c.AccumulateExternalForces()
	}
}

func (b *Body) AccumulateInternalForces() {
	for _, c := range b.components {
		c.AccumulateInternalForces()
	}
}

// Integrate advances every non-static point mass by dt.
func (b *Body) Integrate(dt float64) {
	if b.IsStatic {
		b.clearForces()
		return
	}
	for _, pm := range b.PointMasses {
		pm.Integrate(dt)
	}
}

// DampenVelocity multiplies every point mass's velocity by VelDamping.
func (b *Body) DampenVelocity() {
	for _, pm := range b.PointMasses {
		pm.Velocity = pm.Velocity.Scale(b.VelDamping)
	}
}

// updateAABB recomputes the AABB as the union of point positions, padded by
// velocity*dt to cover the step's sweep.
func (b *Body) updateAABB(dt float64) {
	b.aabb.Clear()
	for _, pm := range b.PointMasses {
		b.aabb.ExpandToInclude(pm.Position)
	}
	if dt > 0 {
		for _, pm := range b.PointMasses {
			sweep := pm.Velocity.Scale(dt)
			b.aabb.ExpandToInclude(pm.Position.Add(sweep))
		}
	}
}
