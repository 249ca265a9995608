package fdl

import "github.com/go-gl/mathgl/mgl32"

// SpatialIndex is a uniform spatial hash over a State's current positions,
// built fresh each time the caller wants a broad-phase radius query -
// useful for inspection and demo tooling (e.g. "what's near particle X
// right now") without walking every particle. It is not part of the tick
// pipeline itself: the engine's own near-field term uses SFC-sorted slot
// adjacency instead, which needs no auxiliary structure.
type SpatialIndex struct {
	cellSize float32
	cells    map[int64][]uint32
}

// BuildSpatialIndex buckets every slot in s by its position, divided into
// cubes of the given cell size.
func BuildSpatialIndex(s *State, cellSize float32) *SpatialIndex {
	if cellSize <= 0 {
		cellSize = 1.0
	}
	idx := &SpatialIndex{
		cellSize: cellSize,
		cells:    make(map[int64][]uint32),
	}
	for slot, p := range s.Pos {
		key := idx.cellKey(p)
		idx.cells[key] = append(idx.cells[key], uint32(slot))
	}
	return idx
}

// QueryRadius returns every slot whose cell lies within the axis-aligned
// box enclosing a sphere of the given radius around center. Candidates are
// broad-phase only: callers wanting an exact sphere test should filter the
// result against the true distance.
func (idx *SpatialIndex) QueryRadius(center mgl32.Vec3, radius float32) []uint32 {
	minX, maxX := idx.cellIndex(center.X()-radius), idx.cellIndex(center.X()+radius)
	minY, maxY := idx.cellIndex(center.Y()-radius), idx.cellIndex(center.Y()+radius)
	minZ, maxZ := idx.cellIndex(center.Z()-radius), idx.cellIndex(center.Z()+radius)

	seen := make(map[uint32]struct{})
	var out []uint32
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				for _, slot := range idx.cells[packCell(x, y, z)] {
					if _, ok := seen[slot]; !ok {
						seen[slot] = struct{}{}
						out = append(out, slot)
					}
				}
			}
		}
	}
	return out
}

func (idx *SpatialIndex) cellIndex(v float32) int32 {
	return int32(v / idx.cellSize)
}

func (idx *SpatialIndex) cellKey(p mgl32.Vec3) int64 {
	return packCell(idx.cellIndex(p.X()), idx.cellIndex(p.Y()), idx.cellIndex(p.Z()))
}

// packCell folds three cell coordinates into a single map key. Each axis
// is offset to stay non-negative within a generous working volume before
// being packed into disjoint 21-bit fields.
func packCell(x, y, z int32) int64 {
	const offset = 1 << 20
	ux := int64(x) + offset
	uy := int64(y) + offset
	uz := int64(z) + offset
	return (ux << 42) | (uy << 21) | uz
}
