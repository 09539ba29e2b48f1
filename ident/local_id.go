package ident

import (
	"fmt"

	"github.com/bcc3d/bcc/codec"
	"github.com/bcc3d/bcc/errs"
)

// LocalId is a 64-bit identifier for short-range routing near an anchor: no
// LOD or frame tag, three 20-bit signed axis fields, and a 2-bit scale
// tier. Bit layout, fixed by the on-disk contract:
//
//	bits [ 0:20) x (signed)
//	bits [20:40) y (signed)
//	bits [40:60) z (signed)
//	bits [60:62) scale tier
//	bits [62:64) reserved, always zero
type LocalId uint64

const (
	localXShift     = 0
	localYShift     = 20
	localZShift     = 40
	localScaleShift = 60
	localFieldMask  = 1<<20 - 1
	localScaleMask  = 1<<2 - 1
)

// LocalFromCoords validates parity and axis range, then packs (x, y, z)
// into a LocalId at the given scale tier.
func LocalFromCoords(x, y, z int64, scaleTier uint8) (LocalId, error) {
	if !evenParity(x, y, z) {
		return 0, errs.ErrParityViolation
	}
	if !inRange(x, LocalIdAxisBits) || !inRange(y, LocalIdAxisBits) || !inRange(z, LocalIdAxisBits) {
		return 0, fmt.Errorf("%w: field axis, value (%d,%d,%d) exceeds %d-bit signed range", errs.ErrOutOfRange, x, y, z, LocalIdAxisBits)
	}
	if scaleTier > localScaleMask {
		return 0, fmt.Errorf("%w: field scaleTier, value %d exceeds 2-bit range", errs.ErrOutOfRange, scaleTier)
	}

	ux := codec.Bias(x, LocalIdAxisBits) & localFieldMask
	uy := codec.Bias(y, LocalIdAxisBits) & localFieldMask
	uz := codec.Bias(z, LocalIdAxisBits) & localFieldMask

	raw := ux<<localXShift | uy<<localYShift | uz<<localZShift | uint64(scaleTier)<<localScaleShift

	return LocalId(raw), nil
}

// Coords decodes the signed (x, y, z) axis fields.
func (id LocalId) Coords() (x, y, z int64) {
	ux := (uint64(id) >> localXShift) & localFieldMask
	uy := (uint64(id) >> localYShift) & localFieldMask
	uz := (uint64(id) >> localZShift) & localFieldMask

	return codec.Unbias(ux, LocalIdAxisBits), codec.Unbias(uy, LocalIdAxisBits), codec.Unbias(uz, LocalIdAxisBits)
}

// ScaleTier returns the 2-bit scale tier.
func (id LocalId) ScaleTier() uint8 {
	return uint8((uint64(id) >> localScaleShift) & localScaleMask)
}

// ToRaw returns the identifier's raw bits.
func (id LocalId) ToRaw() uint64 { return uint64(id) }

// LocalFromRawUnchecked reinterprets bits as a LocalId without validation.
// Reserved for deserialization and test fixtures; callers MUST validate
// (e.g. via Coords and a parity check) before trusting the result.
func LocalFromRawUnchecked(bits uint64) LocalId { return LocalId(bits) }

// Less reports whether id sorts before other in the type's total order
// (ascending raw bits).
func (id LocalId) Less(other LocalId) bool { return id < other }
