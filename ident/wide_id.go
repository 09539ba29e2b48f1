package ident

import (
	"fmt"

	"github.com/bcc3d/bcc/errs"
	"github.com/bcc3d/bcc/frame"
)

// WideId is a 128-bit identifier for interplanetary/global anchors: three
// 32-bit signed axis fields, a 6-bit LOD, an 8-bit frame tag, and a
// 2+8-bit scale descriptor. It is represented as two uint64 words so that
// ordering and raw I/O need no big-integer support.
//
// Unlike Id64, WideId stores its axes plain (not Morton-interleaved):
// codec.Encode3/Decode3 top out at codec.MaxAxisBits (21) bits per axis
// so that a 3-axis code fits a single uint64, but WideId's axes are
// 32 bits wide, a 96-bit interleave that would need a second codec
// engine operating across both words. Container iteration order for
// WideId (see MemoryWideId/Less below) is therefore z-major raw-bit
// order, not Morton order; callers that need spatially-local iteration
// over a WideId-keyed container should prefer Id64 or pre-sort by
// Morton(x, y, z) computed from Coords() directly.
//
// Bit layout, fixed by the on-disk contract:
//
//	Lo bits [ 0:32) x (signed)
//	Lo bits [32:64) y (signed)
//	Hi bits [ 0:32) z (signed)
//	Hi bits [32:38) lod
//	Hi bits [38:46) frame tag (0 = untagged)
//	Hi bits [46:48) scale tier
//	Hi bits [48:56) scale mantissa
//	Hi bits [56:64) reserved, always zero
type WideId struct {
	Lo uint64
	Hi uint64
}

const (
	wideXShift      = 0
	wideYShift      = 32
	wideZShift      = 0
	wideLODShift    = 32
	wideFrameShift  = 38
	wideScaleTShift = 46
	wideScaleMShift = 48

	wideAxisMask   = 1<<32 - 1
	wideLODMask    = 1<<WideIdLODBits - 1
	wideFrameMask  = 1<<8 - 1
	wideScaleTMask = 1<<2 - 1
	wideScaleMMask = 1<<8 - 1
)

func wideBias(v int64) uint64 {
	return uint64(v) + 1<<(WideIdAxisBits-1)
}

func wideUnbias(v uint64) int64 {
	return int64(v) - 1<<(WideIdAxisBits-1)
}

// WideFromCoords validates parity, axis range, LOD range, and (if tagged)
// frame registration, then packs the fields into a WideId.
func WideFromCoords(x, y, z int64, lod uint8, frameTag frame.Tag, scaleTier, scaleMantissa uint8) (WideId, error) {
	if !evenParity(x, y, z) {
		return WideId{}, errs.ErrParityViolation
	}
	if !inRange(x, WideIdAxisBits) || !inRange(y, WideIdAxisBits) || !inRange(z, WideIdAxisBits) {
		return WideId{}, fmt.Errorf("%w: field axis, value (%d,%d,%d) exceeds %d-bit signed range", errs.ErrOutOfRange, x, y, z, WideIdAxisBits)
	}
	if lod > WideIdLODMax {
		return WideId{}, fmt.Errorf("%w: field lod, value %d exceeds max %d", errs.ErrOutOfRange, lod, WideIdLODMax)
	}
	if frameTag != frame.NoFrame {
		if frameTag > wideFrameMask {
			return WideId{}, fmt.Errorf("%w: field frame, tag %d exceeds 8-bit field", errs.ErrOutOfRange, frameTag)
		}
		if !frame.IsRegistered(frameTag) {
			return WideId{}, fmt.Errorf("%w: tag %d", errs.ErrUnknownFrame, frameTag)
		}
	}
	if scaleTier > wideScaleTMask || scaleMantissa > wideScaleMMask {
		return WideId{}, fmt.Errorf("%w: field scale, (%d,%d) exceeds field widths", errs.ErrOutOfRange, scaleTier, scaleMantissa)
	}

	lo := wideBias(x)<<wideXShift | wideBias(y)<<wideYShift
	hi := wideBias(z)<<wideZShift |
		uint64(lod)<<wideLODShift |
		uint64(frameTag)<<wideFrameShift |
		uint64(scaleTier)<<wideScaleTShift |
		uint64(scaleMantissa)<<wideScaleMShift

	return WideId{Lo: lo, Hi: hi}, nil
}

// Coords decodes the signed (x, y, z) axis fields.
func (id WideId) Coords() (x, y, z int64) {
	ux := (id.Lo >> wideXShift) & wideAxisMask
	uy := (id.Lo >> wideYShift) & wideAxisMask
	uz := (id.Hi >> wideZShift) & wideAxisMask

	return wideUnbias(ux), wideUnbias(uy), wideUnbias(uz)
}

// LOD returns the level-of-detail field.
func (id WideId) LOD() uint8 {
	return uint8((id.Hi >> wideLODShift) & wideLODMask)
}

// Frame returns the frame tag, or frame.NoFrame if untagged.
func (id WideId) Frame() frame.Tag {
	return frame.Tag((id.Hi >> wideFrameShift) & wideFrameMask)
}

// Scale returns the (tier, mantissa) scale descriptor.
func (id WideId) Scale() (tier, mantissa uint8) {
	tier = uint8((id.Hi >> wideScaleTShift) & wideScaleTMask)
	mantissa = uint8((id.Hi >> wideScaleMShift) & wideScaleMMask)
	return tier, mantissa
}

// ToRaw returns the identifier's raw bits as (hi, lo) words, most
// significant word first.
func (id WideId) ToRaw() (hi, lo uint64) { return id.Hi, id.Lo }

// WideFromRawUnchecked reinterprets (hi, lo) as a WideId without
// validation. Reserved for deserialization and test fixtures; callers
// MUST validate before trusting the result.
func WideFromRawUnchecked(hi, lo uint64) WideId { return WideId{Hi: hi, Lo: lo} }

// Less reports whether id sorts before other in the type's total order
// (ascending raw bits, most significant word first: z, then lod/frame/
// scale, then y, then x). This is not Morton order; see the WideId
// doc comment for why its axes aren't interleaved.
func (id WideId) Less(other WideId) bool {
	if id.Hi != other.Hi {
		return id.Hi < other.Hi
	}
	return id.Lo < other.Lo
}
