package physics

import (
	"fmt"
	"math"
)

// ClosedShape is a template polygon in local, centroid-relative,
// unit-scale coordinates. It owns no mutable simulation state; a Body
// transforms it into world space at construction time and then evolves
// its own point masses independently.
type ClosedShape struct {
	LocalVertices []Vector2
}

// NewClosedShape validates and wraps a local vertex ring. A shape with
// fewer than 3 vertices is a precondition violation.
func NewClosedShape(localVertices []Vector2) (*ClosedShape, error) {
	if len(localVertices) < 3 {
		return nil, fmt.Errorf("physics: closed shape needs at least 3 vertices, got %d", len(localVertices))
	}
	verts := make([]Vector2, len(localVertices))
	copy(verts, localVertices)
	return &ClosedShape{LocalVertices: verts}, nil
}

// NewRegularPolygon builds a CCW-wound regular N-gon of the given radius,
// centered on the origin — a convenience used by gas-filled bodies and by
// tests.
func NewRegularPolygon(sides int, radius float64) (*ClosedShape, error) {
	if sides < 3 {
		return nil, fmt.Errorf("physics: regular polygon needs at least 3 sides, got %d", sides)
	}
	verts := make([]Vector2, sides)
	for i := 0; i < sides; i++ {
		angle := (float64(i) / float64(sides)) * 2 * math.Pi
		verts[i] = Vector2{X: radius, Y: 0}.Rotate(angle)
	}
	return &ClosedShape{LocalVertices: verts}, nil
}

// TransformVertices maps the local ring into world space given a pose.
func (s *ClosedShape) TransformVertices(pos Vector2, angle, scale float64) []Vector2 {
	out := make([]Vector2, len(s.LocalVertices))
	for i, v := range s.LocalVertices {
		out[i] = v.Rotate(angle).Scale(scale).Add(pos)
	}
	return out
}

func (s *ClosedShape) Count() int {
	return len(s.LocalVertices)
}
