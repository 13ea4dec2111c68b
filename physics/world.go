package physics

import (
	"fmt"
	"math"
)

// World owns a set of Bodies and steps them on a fixed Δt: accumulate
// forces, integrate, dampen, derive pose, update AABBs, broad phase, then
// narrow phase + resolve (repeated PenetrationIterations times). Nothing
// here spawns a goroutine; callers drive Step themselves from a single
// logical thread, on whatever cadence they choose.
type World struct {
	Bodies []*Body

	Gravity               Vector2
	PenetrationThreshold  float64
	PenetrationIterations int
	BitmaskGridSize       int
	Bounds                AABB

	materials []Material

	grid *bitmaskGrid
}

// NewWorld constructs a World bounded by bounds (used only to size the
// broad-phase grid; bodies may exist outside it). Material slot 0 is always
// the spec defaults (DefaultRestitution, DefaultFriction).
func NewWorld(bounds AABB) *World {
	w := &World{
		Gravity:               Vector2{X: DefaultGravityX, Y: DefaultGravityY},
		PenetrationThreshold:  DefaultPenetrationThreshold,
		PenetrationIterations: DefaultPenetrationIterations,
		BitmaskGridSize:       DefaultBitmaskGridSize,
		Bounds:                bounds,
		materials:             []Material{{Restitution: DefaultRestitution, Friction: DefaultFriction}},
	}
	w.grid = newBitmaskGrid(bounds, w.BitmaskGridSize)
	return w
}

// AddBody adds a body to the simulation.
func (w *World) AddBody(b *Body) {
	w.Bodies = append(w.Bodies, b)
}

// RemoveBody removes a body by identity. Reports false if b was not found.
func (w *World) RemoveBody(b *Body) bool {
	for i, existing := range w.Bodies {
		if existing == b {
			w.Bodies = append(w.Bodies[:i], w.Bodies[i+1:]...)
			return true
		}
	}
	return false
}

// AddMaterial appends a (restitution, friction) pair and returns its index
// for use as a Body's Material field.
func (w *World) AddMaterial(m Material) int {
	w.materials = append(w.materials, m)
	return len(w.materials) - 1
}

func (w *World) materialFor(idx int) Material {
	if idx < 0 || idx >= len(w.materials) {
		return w.materials[0]
	}
	return w.materials[idx]
}

// combinedMaterial applies the pairing rule for two contacting materials:
// the weaker restitution wins, friction combines geometrically.
func combinedMaterial(a, b Material) Material {
	restitution := a.Restitution
	if b.Restitution < restitution {
		restitution = b.Restitution
	}
	friction := a.Friction * b.Friction
	if friction > 0 {
		friction = math.Sqrt(friction)
	}
	return Material{Restitution: restitution, Friction: friction}
}

// Step advances the world by dt: force accumulation, integration, pose
// derivation, then collision resolution. dt must be positive.
func (w *World) Step(dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("physics: Step requires dt > 0, got %v", dt)
	}

	if w.grid == nil || w.BitmaskGridSize != w.grid.gridSize {
		w.grid = newBitmaskGrid(w.Bounds, w.BitmaskGridSize)
	}

	for _, b := range w.Bodies {
		b.AccumulateExternalForces()
		b.AccumulateInternalForces()
		b.state = StateForcesAccumulated
	}

	for _, b := range w.Bodies {
		b.Integrate(dt)
		b.DampenVelocity()
		b.state = StateIntegrated
	}

	for _, b := range w.Bodies {
		b.derivePositionAndAngle(dt)
		b.state = StatePoseDerived
	}

	for _, b := range w.Bodies {
		b.updateAABB(dt)
		b.state = StateBroadphased
	}

	iterations := w.PenetrationIterations
	if iterations < 1 {
		iterations = 1
	}
	for i := 0; i < iterations; i++ {
		w.resolveAllCollisions()
	}

	for _, b := range w.Bodies {
		b.updateAABB(0)
		b.state = StateResolved
	}

	return nil
}

// resolveAllCollisions runs narrow phase over every broad-phase candidate
// pair and resolves the contacts it finds. Penetration at or below
// PenetrationThreshold is tolerated slop and left alone; anything deeper
// gets a position correction and impulse.
func (w *World) resolveAllCollisions() {
	pairs := w.grid.broadPhasePairs(w.Bodies)
	for _, pair := range pairs {
		a, b := pair[0], pair[1]
		material := combinedMaterial(w.materialFor(a.Material), w.materialFor(b.Material))
		for _, info := range narrowPhase(a, b) {
			if info.Penetration <= w.PenetrationThreshold {
				continue
			}
			resolveCollision(info, material, w.PenetrationThreshold)
		}
	}
}

// BodiesIntersecting returns every body whose polygon contains pt.
func (w *World) BodiesIntersecting(pt Vector2) []*Body {
	var hits []*Body
	for _, b := range w.Bodies {
		if b.Contains(pt) {
			hits = append(hits, b)
		}
	}
	return hits
}

// Raycast casts a segment a-c against every body and returns the nearest
// hit across the whole world, if any.
type RaycastHit struct {
	Body  *Body
	Point Vector2
}

func (w *World) Raycast(a, c Vector2) (RaycastHit, bool) {
	d := c.Sub(a)
	bestDistSq := d.LengthSquared()
	var best RaycastHit
	found := false

	for _, b := range w.Bodies {
		point, ok := b.Raycast(a, c)
		if !ok {
			continue
		}
		distSq := a.DistanceSquared(point)
		if distSq <= bestDistSq {
			bestDistSq = distSq
			best = RaycastHit{Body: b, Point: point}
			found = true
		}
	}
	return best, found
}
