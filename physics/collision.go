package physics

import "math"

// Material is a (restitution, friction) pair; bodies reference one by index
// into World.materials.
type Material struct {
	Restitution float64
	Friction    float64
}

// BodyCollisionInformation is one recorded point-vs-edge contact from the
// narrow phase.
type BodyCollisionInformation struct {
	BodyA      *Body
	PointIndex int
	Point      *PointMass

	BodyB *Body
	E1    *PointMass
	E2    *PointMass
	T     float64

	HitPoint    Vector2
	Normal      Vector2
	Penetration float64
}

// narrowPhase finds every point of a inside b, and every point of b inside
// a, recording BodyCollisionInformation for each.
func narrowPhase(a, b *Body) []BodyCollisionInformation {
	var infos []BodyCollisionInformation
	infos = append(infos, pointsIntoBody(a, b)...)
	infos = append(infos, pointsIntoBody(b, a)...)
	return infos
}

func pointsIntoBody(from, into *Body) []BodyCollisionInformation {
	var infos []BodyCollisionInformation
	for idx, pm := range from.PointMasses {
		if !into.Contains(pm.Position) {
			continue
		}
		edge := into.GetClosestEdge(pm.Position, math.Inf(1))
		if !edge.Ok {
			continue
		}
		infos = append(infos, BodyCollisionInformation{
			BodyA:       from,
			PointIndex:  idx,
			Point:       pm,
			BodyB:       into,
			E1:          edge.E1,
			E2:          edge.E2,
			T:           edge.Hit.T,
			HitPoint:    edge.Hit.Point,
			Normal:      edge.Hit.Normal,
			Penetration: edge.Hit.Distance,
		})
	}
	return infos
}

// resolveCollision applies the position correction and impulse for one
// contact. slop is the penetration threshold below which contacts are
// tolerated rather than corrected; only the excess past slop is pushed out,
// so repeated resolution passes bleed off deep penetration without
// fighting resting contacts. The colliding point's own inverse mass scales
// its share of the impulse the same way the edge endpoints' does.
func resolveCollision(info BodyCollisionInformation, material Material, slop float64) {
	p := info.Point
	e1, e2 := info.E1, info.E2
	t := info.T
	n := info.Normal

	edgeVel := e1.Velocity.Scale(1 - t).Add(e2.Velocity.Scale(t))

	relVel := p.Velocity.Sub(edgeVel)
	vrn := relVel.Dot(n)

	wp := p.InverseMass()
	we := (1-t)*(1-t)*e1.InverseMass() + t*t*e2.InverseMass()
	totalW := wp + we

	if totalW == 0 {
		return
	}

	if depth := info.Penetration - slop; depth > 0 {
		correction := depth / totalW
		if !p.IsStatic() {
			p.Position = p.Position.Add(n.Scale(correction * wp))
		}
		if !e1.IsStatic() {
			e1.Position = e1.Position.Sub(n.Scale(correction * (1 - t) * e1.InverseMass()))
		}
		if !e2.IsStatic() {
			e2.Position = e2.Position.Sub(n.Scale(correction * t * e2.InverseMass()))
		}
	}

	if vrn >= 0 {
		return
	}

	e := material.Restitution
	j := -(1 + e) * vrn / totalW

	if !p.IsStatic() {
		p.Velocity = p.Velocity.Add(n.Scale(j * wp))
	}
	if !e1.IsStatic() {
		e1.Velocity = e1.Velocity.Sub(n.Scale(j * (1 - t) * e1.InverseMass()))
	}
	if !e2.IsStatic() {
		e2.Velocity = e2.Velocity.Sub(n.Scale(j * t * e2.InverseMass()))
	}

	applyFriction(info, j, material.Friction, wp, we, totalW)
}

// applyFriction dampens the tangential component of relative velocity,
// clamped by Coulomb friction (mu * normal impulse magnitude).
func applyFriction(info BodyCollisionInformation, normalImpulse, mu, wp, we, totalW float64) {
	if mu <= 0 || totalW == 0 {
		return
	}
	p := info.Point
	e1, e2 := info.E1, info.E2
	t := info.T
	n := info.Normal

	edgeVel := e1.Velocity.Scale(1 - t).Add(e2.Velocity.Scale(t))
	relVel := p.Velocity.Sub(edgeVel)

	tangent := relVel.Sub(n.Scale(relVel.Dot(n)))
	tangentLenSq := tangent.LengthSquared()
	if tangentLenSq < epsilonSquared {
		return
	}
	tangent = tangent.Scale(1.0 / math.Sqrt(tangentLenSq))

	jt := -relVel.Dot(tangent) / totalW
	maxFriction := mu * math.Abs(normalImpulse)
	if jt > maxFriction {
		jt = maxFriction
	} else if jt < -maxFriction {
		jt = -maxFriction
	}

	if !p.IsStatic() {
		p.Velocity = p.Velocity.Add(tangent.Scale(jt * wp))
	}
	if !e1.IsStatic() {
		e1.Velocity = e1.Velocity.Sub(tangent.Scale(jt * (1 - t) * e1.InverseMass()))
	}
	if !e2.IsStatic() {
		e2.Velocity = e2.Velocity.Sub(tangent.Scale(jt * t * e2.InverseMass()))
	}
}
