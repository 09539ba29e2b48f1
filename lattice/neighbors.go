// Package lattice implements the algebra of the BCC lattice: the
// 14-neighborhood, parent/child hierarchy across levels of detail, range
// queries, and batch kernels over slices of coordinates.
package lattice

import (
	"fmt"

	"github.com/bcc3d/bcc/ident"
)

// Displacement14 is the canonical, fixed order of the 14 nearest-neighbor
// displacements: the 8 cube corners in lexicographic sign order (+++, ++-,
// +-+, +--, -++, -+-, --+, ---), then the 6 face centers in +x,-x,+y,-y,
// +z,-z order. This order is part of the testable contract.
var Displacement14 = [14][3]int64{
	{1, 1, 1}, {1, 1, -1}, {1, -1, 1}, {1, -1, -1},
	{-1, 1, 1}, {-1, 1, -1}, {-1, -1, 1}, {-1, -1, -1},
	{2, 0, 0}, {-2, 0, 0}, {0, 2, 0}, {0, -2, 0}, {0, 0, 2}, {0, 0, -2},
}

// NeighborCoords applies the 14 canonical displacements to (x, y, z). Every
// result preserves BCC parity, since each displacement's component sum is
// even.
func NeighborCoords(x, y, z int64) [14][3]int64 {
	var out [14][3]int64
	for i, d := range Displacement14 {
		out[i] = [3]int64{x + d[0], y + d[1], z + d[2]}
	}
	return out
}

// Id64Neighbors returns the 14 neighbors of id, preserving its LOD, frame,
// and scale fields.
func Id64Neighbors(id ident.Id64) ([14]ident.Id64, error) {
	x, y, z := id.Coords()
	lod := id.LOD()
	ft := id.Frame()
	tier, mant := id.Scale()

	var out [14]ident.Id64
	for i, c := range NeighborCoords(x, y, z) {
		n, err := ident.Id64FromCoords(c[0], c[1], c[2], lod, ft, tier, mant)
		if err != nil {
			return out, fmt.Errorf("neighbor %d: %w", i, err)
		}
		out[i] = n
	}

	return out, nil
}

// WideIdNeighbors returns the 14 neighbors of id, preserving its LOD,
// frame, and scale fields.
func WideIdNeighbors(id ident.WideId) ([14]ident.WideId, error) {
	x, y, z := id.Coords()
	lod := id.LOD()
	ft := id.Frame()
	tier, mant := id.Scale()

	var out [14]ident.WideId
	for i, c := range NeighborCoords(x, y, z) {
		n, err := ident.WideFromCoords(c[0], c[1], c[2], lod, ft, tier, mant)
		if err != nil {
			return out, fmt.Errorf("neighbor %d: %w", i, err)
		}
		out[i] = n
	}

	return out, nil
}
