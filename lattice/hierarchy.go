package lattice

import (
	"fmt"

	"github.com/bcc3d/bcc/errs"
	"github.com/bcc3d/bcc/ident"
)

// ParentCoords computes the LOD-1 parent of (x, y, z) by floor-dividing
// each axis by 2, then snapping to parity: if the floored triple violates
// BCC parity, the axis with the largest division remainder is decremented,
// ties broken in x, y, z order.
func ParentCoords(x, y, z int64) (px, py, pz int64) {
	px, rx := floorDiv2(x)
	py, ry := floorDiv2(y)
	pz, rz := floorDiv2(z)

	if (px+py+pz)&1 == 0 {
		return px, py, pz
	}

	switch largestRemainderAxis(rx, ry, rz) {
	case 0:
		px--
	case 1:
		py--
	default:
		pz--
	}

	return px, py, pz
}

// floorDiv2 returns v divided by 2, rounded toward negative infinity, and
// the non-negative remainder in {0, 1}.
func floorDiv2(v int64) (q, r int64) {
	q = v >> 1 // arithmetic shift: floors toward -inf for two's complement
	r = v - 2*q
	return q, r
}

func largestRemainderAxis(rx, ry, rz int64) int {
	best, axis := rx, 0
	if ry > best {
		best, axis = ry, 1
	}
	if rz > best {
		axis = 2
	}
	return axis
}

// ChildOffsets are the 8 canonical child offsets, in lexicographic order.
// Each parent has exactly 8 children: the offsets are the even-parity
// points closest to the parent's doubled coordinates that round-trip
// exactly back through ParentCoords' floor-then-snap rule above. The
// unit-cube corner offsets {0,1}^3 split evenly into 4 even-parity and 4
// odd-parity combinations (a cube's corners 2-color like a checkerboard
// under coordinate-sum parity); the 4 even ones recover the parent by
// plain floor division and need no correction. The remaining 4 children
// are reached by offsets with a component of 2 or 3 on the x or y axis:
// ParentCoords' floor step shifts that axis by exactly one cell, and its
// parity-snap step (which always prefers x, then y, over z on a tie)
// decrements precisely that axis back into place. See ParentCoords and
// TestP4_ParentChildClosure for the derivation and verification.
var ChildOffsets = [8][3]int64{
	{0, 0, 0}, {0, 1, 1}, {0, 3, 1}, {1, 0, 1},
	{1, 1, 0}, {2, 0, 0}, {3, 0, 1}, {3, 1, 0},
}

// ChildCoords returns the children of the cell at (px, py, pz).
func ChildCoords(px, py, pz int64) [8][3]int64 {
	var out [8][3]int64
	for i, o := range ChildOffsets {
		out[i] = [3]int64{2*px + o[0], 2*py + o[1], 2*pz + o[2]}
	}
	return out
}

// Id64Parent returns the parent of id, which must have LOD > 0.
func Id64Parent(id ident.Id64) (ident.Id64, error) {
	if id.LOD() == 0 {
		return 0, fmt.Errorf("%w: field lod, cell at LOD 0 has no parent", errs.ErrOutOfRange)
	}

	x, y, z := id.Coords()
	px, py, pz := ParentCoords(x, y, z)
	tier, mant := id.Scale()

	return ident.Id64FromCoords(px, py, pz, id.LOD()-1, id.Frame(), tier, mant)
}

// Id64Children returns the 8 children of id, which must have LOD <
// Id64LODMax.
func Id64Children(id ident.Id64) ([8]ident.Id64, error) {
	var out [8]ident.Id64

	if id.LOD() >= ident.Id64LODMax {
		return out, fmt.Errorf("%w: field lod, cell at max LOD has no children", errs.ErrOutOfRange)
	}

	x, y, z := id.Coords()
	tier, mant := id.Scale()

	for i, c := range ChildCoords(x, y, z) {
		child, err := ident.Id64FromCoords(c[0], c[1], c[2], id.LOD()+1, id.Frame(), tier, mant)
		if err != nil {
			return out, fmt.Errorf("child %d: %w", i, err)
		}
		out[i] = child
	}

	return out, nil
}

// WideIdParent returns the parent of id, which must have LOD > 0.
func WideIdParent(id ident.WideId) (ident.WideId, error) {
	if id.LOD() == 0 {
		return ident.WideId{}, fmt.Errorf("%w: field lod, cell at LOD 0 has no parent", errs.ErrOutOfRange)
	}

	x, y, z := id.Coords()
	px, py, pz := ParentCoords(x, y, z)
	tier, mant := id.Scale()

	return ident.WideFromCoords(px, py, pz, id.LOD()-1, id.Frame(), tier, mant)
}

// WideIdChildren returns the 8 children of id, which must have LOD <
// WideIdLODMax.
func WideIdChildren(id ident.WideId) ([8]ident.WideId, error) {
	var out [8]ident.WideId

	if id.LOD() >= ident.WideIdLODMax {
		return out, fmt.Errorf("%w: field lod, cell at max LOD has no children", errs.ErrOutOfRange)
	}

	x, y, z := id.Coords()
	tier, mant := id.Scale()

	for i, c := range ChildCoords(x, y, z) {
		child, err := ident.WideFromCoords(c[0], c[1], c[2], id.LOD()+1, id.Frame(), tier, mant)
		if err != nil {
			return out, fmt.Errorf("child %d: %w", i, err)
		}
		out[i] = child
	}

	return out, nil
}
