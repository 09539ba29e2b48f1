package ident

import (
	"fmt"

	"github.com/bcc3d/bcc/codec"
	"github.com/bcc3d/bcc/errs"
	"github.com/bcc3d/bcc/frame"
)

// Id64 is a 64-bit planet/regional identifier: a 48-bit Morton code over
// three 16-bit signed axes, a 4-bit LOD, an 8-bit frame tag, and a 4-bit
// scale descriptor. Bit layout, fixed by the on-disk contract:
//
//	bits [ 0:48) morton(x, y, z), 16 bits/axis after sign bias
//	bits [48:52) lod
//	bits [52:60) frame tag (0 = untagged)
//	bits [60:62) scale tier
//	bits [62:64) scale mantissa
type Id64 uint64

const (
	id64MortonShift = 0
	id64LODShift    = 48
	id64FrameShift  = 52
	id64ScaleTShift = 60
	id64ScaleMShift = 62

	id64MortonMask = 1<<48 - 1
	id64LODMask    = 1<<Id64LODBits - 1
	id64FrameMask  = 1<<8 - 1
	id64ScaleMask  = 1<<2 - 1
)

// Id64FromCoords validates parity, axis range, LOD range, and (if tagged)
// frame registration, then packs the fields into an Id64.
func Id64FromCoords(x, y, z int64, lod uint8, frameTag frame.Tag, scaleTier, scaleMantissa uint8) (Id64, error) {
	if !evenParity(x, y, z) {
		return 0, errs.ErrParityViolation
	}
	if !inRange(x, Id64MortonAxisBits) || !inRange(y, Id64MortonAxisBits) || !inRange(z, Id64MortonAxisBits) {
		return 0, fmt.Errorf("%w: field axis, value (%d,%d,%d) exceeds %d-bit signed range", errs.ErrOutOfRange, x, y, z, Id64MortonAxisBits)
	}
	if lod > Id64LODMax {
		return 0, fmt.Errorf("%w: field lod, value %d exceeds max %d", errs.ErrOutOfRange, lod, Id64LODMax)
	}
	if frameTag != frame.NoFrame {
		if frameTag > id64FrameMask {
			return 0, fmt.Errorf("%w: field frame, tag %d exceeds 8-bit field", errs.ErrOutOfRange, frameTag)
		}
		if !frame.IsRegistered(frameTag) {
			return 0, fmt.Errorf("%w: tag %d", errs.ErrUnknownFrame, frameTag)
		}
	}
	if scaleTier > id64ScaleMask || scaleMantissa > id64ScaleMask {
		return 0, fmt.Errorf("%w: field scale, (%d,%d) exceeds 2-bit range", errs.ErrOutOfRange, scaleTier, scaleMantissa)
	}

	ux := codec.Bias(x, Id64MortonAxisBits)
	uy := codec.Bias(y, Id64MortonAxisBits)
	uz := codec.Bias(z, Id64MortonAxisBits)
	morton := codec.Encode3(ux, uy, uz, Id64MortonAxisBits)

	raw := morton<<id64MortonShift |
		uint64(lod)<<id64LODShift |
		uint64(frameTag)<<id64FrameShift |
		uint64(scaleTier)<<id64ScaleTShift |
		uint64(scaleMantissa)<<id64ScaleMShift

	return Id64(raw), nil
}

// Coords decodes the signed (x, y, z) axis fields via the inverse Morton
// transform.
func (id Id64) Coords() (x, y, z int64) {
	morton := (uint64(id) >> id64MortonShift) & id64MortonMask
	ux, uy, uz := codec.Decode3(morton, Id64MortonAxisBits)

	return codec.Unbias(ux, Id64MortonAxisBits), codec.Unbias(uy, Id64MortonAxisBits), codec.Unbias(uz, Id64MortonAxisBits)
}

// LOD returns the level-of-detail field.
func (id Id64) LOD() uint8 {
	return uint8((uint64(id) >> id64LODShift) & id64LODMask)
}

// Frame returns the frame tag, or frame.NoFrame if untagged.
func (id Id64) Frame() frame.Tag {
	return frame.Tag((uint64(id) >> id64FrameShift) & id64FrameMask)
}

// Scale returns the (tier, mantissa) scale descriptor.
func (id Id64) Scale() (tier, mantissa uint8) {
	tier = uint8((uint64(id) >> id64ScaleTShift) & id64ScaleMask)
	mantissa = uint8((uint64(id) >> id64ScaleMShift) & id64ScaleMask)
	return tier, mantissa
}

// Morton returns the raw 48-bit Morton code, biased axes interleaved.
func (id Id64) Morton() uint64 {
	return (uint64(id) >> id64MortonShift) & id64MortonMask
}

// ToRaw returns the identifier's raw bits.
func (id Id64) ToRaw() uint64 { return uint64(id) }

// Id64FromRawUnchecked reinterprets bits as an Id64 without validation.
// Reserved for deserialization and test fixtures; callers MUST validate
// before trusting the result.
func Id64FromRawUnchecked(bits uint64) Id64 { return Id64(bits) }

// Less reports whether id sorts before other in the type's total order
// (ascending raw bits, which is Morton order when LOD/frame/scale match).
func (id Id64) Less(other Id64) bool { return id < other }
