package physics

import "math"

// AABB is an axis-aligned bounding box. It is degenerate (and therefore
// contains/intersects nothing) whenever Min.X > Max.X or Min.Y > Max.Y, which
// is exactly the state Clear() puts it in.
type AABB struct {
	Min, Max Vector2
}

// Clear resets the box to a degenerate state: min > max on both axes.
func (b *AABB) Clear() {
	b.Min = Vector2{X: math.Inf(1), Y: math.Inf(1)}
	b.Max = Vector2{X: math.Inf(-1), Y: math.Inf(-1)}
}

func (b AABB) isDegenerate() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y
}

// ExpandToInclude grows the box, if necessary, so it contains p.
func (b *AABB) ExpandToInclude(p Vector2) {
	if b.isDegenerate() {
		b.Min, b.Max = p, p
		return
	}
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
}

// Expand grows both corners outward by margin on each axis (e.g. to sweep by
// velocity*dt).
func (b AABB) Expand(margin Vector2) AABB {
	return AABB{
		Min: Vector2{X: b.Min.X - math.Abs(margin.X), Y: b.Min.Y - math.Abs(margin.Y)},
		Max: Vector2{X: b.Max.X + math.Abs(margin.X), Y: b.Max.Y + math.Abs(margin.Y)},
	}
}

func (b AABB) Intersects(o AABB) bool {
	if b.isDegenerate() || o.isDegenerate() {
		return false
	}
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y
}

func (b AABB) Contains(p Vector2) bool {
	if b.isDegenerate() {
		return false
	}
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

func (b AABB) Width() float64  { return b.Max.X - b.Min.X }
func (b AABB) Height() float64 { return b.Max.Y - b.Min.Y }
