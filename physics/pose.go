package physics

import "math"

// derivePositionAndAngle recomputes the body's centroid, mean orientation,
// and linear/angular velocity from its current point masses. Skipped
// entirely for static or kinematic bodies, which carry their pose
// externally.
func (b *Body) derivePositionAndAngle(dt float64) {
	if b.IsStatic || b.IsKinematic {
		return
	}

	if !b.IsPinned {
		b.derivedPos = meanPosition(b.PointMasses)
		b.derivedVel = meanVelocity(b.PointMasses)
	}

	if b.FreeRotate {
		b.deriveAngleFreeRotate(dt)
	}
}

func meanPosition(points []*PointMass) Vector2 {
	var sum Vector2
	for _, pm := range points {
		sum = sum.Add(pm.Position)
	}
	return sum.Scale(1.0 / float64(len(points)))
}

func meanVelocity(points []*PointMass) Vector2 {
	var sum Vector2
	for _, pm := range points {
		sum = sum.Add(pm.Velocity)
	}
	return sum.Scale(1.0 / float64(len(points)))
}

// deriveAngleFreeRotate implements per-point angle averaging, including the
// ±2π unwrap that keeps the running mean continuous across the seam at
// ±π.
func (b *Body) deriveAngleFreeRotate(dt float64) {
	n := len(b.PointMasses)
	angles := make([]float64, n)

	var firstAngle float64
	for i, pm := range b.PointMasses {
		local := b.baseShape.LocalVertices[i].Normalize()
		current := pm.Position.Sub(b.derivedPos).Normalize()

		dot := clamp(local.Dot(current), -1, 1)
		angle := math.Acos(dot)
		if !VectorsAreCCW(local, current) {
			angle = -angle
		}

		if i == 0 {
			firstAngle = angle
		} else {
			diff := angle - firstAngle
			if diff > math.Pi {
				angle -= 2 * math.Pi
			} else if diff < -math.Pi {
				angle += 2 * math.Pi
			}
		}
		angles[i] = angle
	}

	var sum float64
	for _, a := range angles {
		sum += a
	}
	newAngle := sum / float64(n)

	if dt > 0 {
		b.derivedOmega = wrapAngleDiff(newAngle - b.lastAngle) / dt
	}
	b.derivedAngle = newAngle
	b.lastAngle = newAngle
}

// wrapAngleDiff keeps an angle difference in (-π, π].
func wrapAngleDiff(d float64) float64 {
	for d > math.Pi {
		d -= 2 * math.Pi
	}
	for d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// SetPositionAngle repositions a kinematic/static body directly, bypassing
// pose derivation — used to drive bodies whose pose is authoritative from
// outside the simulation.
func (b *Body) SetPositionAngle(pos Vector2, angle, scale float64) {
	b.scale = scale
	worldVerts := b.baseShape.TransformVertices(pos, angle, scale)
	for i, pm := range b.PointMasses {
		pm.Position = worldVerts[i]
	}
	b.derivedPos = pos
	b.derivedAngle = angle
	b.lastAngle = angle
}
