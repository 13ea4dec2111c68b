package physics

import "math"

// EdgeHit describes a projection of a point onto a single body edge.
type EdgeHit struct {
	EdgeIndex int
	Point     Vector2
	Normal    Vector2
	Distance  float64 // unsigned distance from the query point to Point
	T         float64 // parametric position in [0,1] along the edge
}

// Contains reports whether pt lies inside the body's current polygon, using
// an even-odd horizontal ray cast.
func (b *Body) Contains(pt Vector2) bool {
	if !b.aabb.Contains(pt) {
		return false
	}

	n := len(b.PointMasses)
	inside := false
	for i := 0; i < n; i++ {
		st := b.PointMasses[i].Position
		end := b.PointMasses[(i+1)%n].Position

		crosses := (st.Y <= pt.Y && end.Y > pt.Y) || (st.Y > pt.Y && end.Y <= pt.Y)
		if !crosses {
			continue
		}
		hitX := st.X + (pt.Y-st.Y)*(end.X-st.X)/(end.Y-st.Y)
		if hitX > pt.X {
			inside = !inside
		}
	}
	return inside
}

// IntersectsLine reports whether segment a-b crosses the body's polygon, or
// has an endpoint inside it.
func (b *Body) IntersectsLine(a, c Vector2) bool {
	if b.Contains(a) || b.Contains(c) {
		return true
	}
	n := len(b.PointMasses)
	for i := 0; i < n; i++ {
		st := b.PointMasses[i].Position
		end := b.PointMasses[(i+1)%n].Position
		if segmentsIntersect(a, c, st, end) {
			return true
		}
	}
	return false
}

// segmentsIntersect solves the parametric line intersection of p1-p2 and
// p3-p4, returning true only if both parameters land within [0,1].
func segmentsIntersect(p1, p2, p3, p4 Vector2) bool {
	d1 := p2.Sub(p1)
	d2 := p4.Sub(p3)
	denom := d1.Cross(d2)
	if math.Abs(denom) < epsilon {
		return false
	}
	diff := p3.Sub(p1)
	t := diff.Cross(d2) / denom
	u := diff.Cross(d1) / denom
	return t >= 0 && t <= 1 && u >= 0 && u <= 1
}

// Raycast walks every edge and returns the nearest hit along segment a-b, if
// any.
func (b *Body) Raycast(a, c Vector2) (Vector2, bool) {
	n := len(b.PointMasses)
	d1 := c.Sub(a)

	bestT := math.Inf(1)
	var bestPoint Vector2
	found := false

	for i := 0; i < n; i++ {
		st := b.PointMasses[i].Position
		end := b.PointMasses[(i+1)%n].Position
		d2 := end.Sub(st)

		denom := d1.Cross(d2)
		if math.Abs(denom) < epsilon {
			continue
		}
		diff := st.Sub(a)
		t := diff.Cross(d2) / denom
		u := diff.Cross(d1) / denom
		if t < 0 || t > 1 || u < 0 || u > 1 {
			continue
		}
		if t < bestT {
			bestT = t
			bestPoint = a.Add(d1.Scale(t))
			found = true
		}
	}
	return bestPoint, found
}

// GetClosestPointOnEdge projects pt onto edge i (clamped to the segment) and
// reports distance, hit point, outward normal and the parametric position.
func (b *Body) GetClosestPointOnEdge(pt Vector2, edgeIndex int) EdgeHit {
	n := len(b.PointMasses)
	st := b.PointMasses[edgeIndex].Position
	end := b.PointMasses[(edgeIndex+1)%n].Position

	edge := end.Sub(st)
	lenSq := edge.LengthSquared()

	var t float64
	if lenSq > epsilonSquared {
		t = clamp(pt.Sub(st).Dot(edge)/lenSq, 0, 1)
	}
	hit := st.Add(edge.Scale(t))

	return EdgeHit{
		EdgeIndex: edgeIndex,
		Point:     hit,
		Normal:    b.edgeOutwardNormal(edgeIndex),
		Distance:  pt.Distance(hit),
		T:         t,
	}
}

// GetClosestPoint returns the argmin over all edges of GetClosestPointOnEdge.
func (b *Body) GetClosestPoint(pt Vector2) EdgeHit {
	best := b.GetClosestPointOnEdge(pt, 0)
	for i := 1; i < len(b.PointMasses); i++ {
		hit := b.GetClosestPointOnEdge(pt, i)
		if hit.Distance < best.Distance {
			best = hit
		}
	}
	return best
}

// ClosestEdge is the result of GetClosestEdge: the two flanking point
// masses, the hit, and whether it qualified under the tolerance.
type ClosestEdge struct {
	Hit EdgeHit
	E1  *PointMass
	E2  *PointMass
	Ok  bool
}

// GetClosestEdge is like GetClosestPoint but also returns the two flanking
// point masses; it reports Ok=false if the minimum distance exceeds
// tolerance, since a miss is an expected outcome, not an error.
func (b *Body) GetClosestEdge(pt Vector2, tolerance float64) ClosestEdge {
	hit := b.GetClosestPoint(pt)
	if hit.Distance > tolerance {
		return ClosestEdge{Hit: hit, Ok: false}
	}
	n := len(b.PointMasses)
	return ClosestEdge{
		Hit: hit,
		E1:  b.PointMasses[hit.EdgeIndex],
		E2:  b.PointMasses[(hit.EdgeIndex+1)%n],
		Ok:  true,
	}
}
