package physics

import "math"

// bitmaskGrid is the broad-phase: a bounded world divided into gridSize
// columns and gridSize rows; each body marks the X columns and Y rows its
// AABB overlaps as a bitmask, and two bodies are broad-phase candidates
// only if both their column masks and their row masks overlap. gridSize is
// capped at 64 so each axis mask fits a uint64.
type bitmaskGrid struct {
	bounds   AABB
	gridSize int
	cellW    float64
	cellH    float64
}

func newBitmaskGrid(bounds AABB, gridSize int) *bitmaskGrid {
	if gridSize <= 0 {
		gridSize = DefaultBitmaskGridSize
	}
	if gridSize > 64 {
		gridSize = 64
	}
	return &bitmaskGrid{
		bounds:   bounds,
		gridSize: gridSize,
		cellW:    bounds.Width() / float64(gridSize),
		cellH:    bounds.Height() / float64(gridSize),
	}
}

// columnMasks returns the X-column and Y-row bitmasks an AABB overlaps.
func (g *bitmaskGrid) columnMasks(box AABB) (xMask, yMask uint64) {
	if g.cellW <= 0 || g.cellH <= 0 {
		full := uint64(1)<<uint(g.gridSize) - 1
		return full, full
	}

	minX := g.cellIndex(box.Min.X, g.bounds.Min.X, g.cellW)
	maxX := g.cellIndex(box.Max.X, g.bounds.Min.X, g.cellW)
	minY := g.cellIndex(box.Min.Y, g.bounds.Min.Y, g.cellH)
	maxY := g.cellIndex(box.Max.Y, g.bounds.Min.Y, g.cellH)

	for i := minX; i <= maxX; i++ {
		xMask |= 1 << uint(i)
	}
	for i := minY; i <= maxY; i++ {
		yMask |= 1 << uint(i)
	}
	return xMask, yMask
}

func (g *bitmaskGrid) cellIndex(v, origin, cellSize float64) int {
	idx := int(math.Floor((v - origin) / cellSize))
	if idx < 0 {
		idx = 0
	}
	if idx >= g.gridSize {
		idx = g.gridSize - 1
	}
	return idx
}

type gridEntry struct {
	body         *Body
	xMask, yMask uint64
}

// broadPhasePairs enumerates candidate body pairs: overlapping bitmask
// columns AND overlapping AABBs AND compatible collision masks AND at
// least one non-static.
func (g *bitmaskGrid) broadPhasePairs(bodies []*Body) [][2]*Body {
	entries := make([]gridEntry, len(bodies))
	for i, b := range bodies {
		xm, ym := g.columnMasks(b.aabb)
		entries[i] = gridEntry{body: b, xMask: xm, yMask: ym}
	}

	var pairs [][2]*Body
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			a, b := entries[i], entries[j]
			if a.xMask&b.xMask == 0 || a.yMask&b.yMask == 0 {
				continue
			}
			if !a.body.aabb.Intersects(b.body.aabb) {
				continue
			}
			if a.body.CollisionMask&b.body.CollisionLayer == 0 && b.body.CollisionMask&a.body.CollisionLayer == 0 {
				continue
			}
			if a.body.IsStatic && b.body.IsStatic {
				continue
			}
			pairs = append(pairs, [2]*Body{a.body, b.body})
		}
	}
	return pairs
}
