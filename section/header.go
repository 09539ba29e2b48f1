// Package section implements the on-disk layout of the sequential
// container: the fixed file header, block headers, and spatial index
// entries, all encoded field-by-field in little-endian (no pointer
// transmutes, per the portability requirement that layout survive across
// architectures).
package section

import (
	"fmt"

	"github.com/bcc3d/bcc/endian"
	"github.com/bcc3d/bcc/errs"
)

// FileHeaderSize is the fixed, on-disk size of a FileHeader in bytes.
const FileHeaderSize = 64

// Magic is the current (v2) file header's identifying byte sequence.
var Magic = [8]byte{'B', 'C', 'C', 'I', 'D', 'X', '2', 0}

// MagicV1 is the v1 file header's identifying byte sequence, recognized
// only by the migration path.
var MagicV1 = [8]byte{'B', 'C', 'C', 'I', 'D', 'X', '1', 0}

// Flag bits for FileHeader.Flags.
const (
	FlagHasSpatialIndex uint32 = 1 << 0
	FlagDeltaEncodedIDs uint32 = 1 << 1
	FlagChecksumsOn     uint32 = 1 << 2
	FlagRandomAccess    uint32 = 1 << 3

	// FlagFastCodecLZ4 disambiguates the "fast" (wire byte 1) compression
	// tier: set when the writer's fast codec was LZ4, clear when it was
	// S2. Readers and Recover only need this to reconstruct the
	// writer's exact Algorithm; S2 and LZ4 payloads are each self-framed
	// and a Decompressor would detect a mismatch regardless, but without
	// this bit a corrupted/truncated block's decode failure can't be told
	// apart from a genuine checksum-worthy drop.
	FlagFastCodecLZ4 uint32 = 1 << 4
)

// IdVariant identifies which identifier type a container holds.
type IdVariant uint8

const (
	IdVariantId64   IdVariant = 1
	IdVariantWideId IdVariant = 2
)

// CurrentVersionMajor and CurrentVersionMinor are the version this package
// writes; Migrate converts older majors forward.
const (
	CurrentVersionMajor = 2
	CurrentVersionMinor = 0
)

// FileHeader is the container's 64-byte leading header. It is written only
// at offset 0; the file carries no trailing copy of it.
type FileHeader struct {
	VersionMajor uint16
	VersionMinor uint16
	Flags        uint32
	NumBlocks    uint64
	TotalEntries uint64
	Compression  uint8
	IdVariant    IdVariant
	PayloadSize  uint16 // 0 = variable
}

// Encode writes h as 64 little-endian bytes.
func (h FileHeader) Encode() []byte {
	buf := make([]byte, FileHeaderSize)
	copy(buf[0:8], Magic[:])

	e := endian.GetLittleEndianEngine()
	e.PutUint16(buf[8:10], h.VersionMajor)
	e.PutUint16(buf[10:12], h.VersionMinor)
	e.PutUint32(buf[12:16], h.Flags)
	e.PutUint64(buf[16:24], h.NumBlocks)
	e.PutUint64(buf[24:32], h.TotalEntries)
	buf[32] = h.Compression
	buf[33] = byte(h.IdVariant)
	e.PutUint16(buf[34:36], h.PayloadSize)
	// bytes 36:64 are reserved and left zero.

	return buf
}

// DecodeFileHeader parses a 64-byte buffer into a FileHeader. It accepts
// both the current magic and the v1 magic (needed by the migration path)
// and performs no version-policy checks of its own; callers that only
// support the current format should check VersionMajor against
// CurrentVersionMajor themselves (see container.sequential.Open).
func DecodeFileHeader(buf []byte) (FileHeader, error) {
	if len(buf) < FileHeaderSize {
		return FileHeader{}, fmt.Errorf("%w: file header needs %d bytes, got %d", errs.ErrTruncatedBlock, FileHeaderSize, len(buf))
	}
	if string(buf[0:8]) != string(Magic[:]) && string(buf[0:8]) != string(MagicV1[:]) {
		return FileHeader{}, errs.ErrInvalidMagic
	}

	e := endian.GetLittleEndianEngine()
	h := FileHeader{
		VersionMajor: e.Uint16(buf[8:10]),
		VersionMinor: e.Uint16(buf[10:12]),
		Flags:        e.Uint32(buf[12:16]),
		NumBlocks:    e.Uint64(buf[16:24]),
		TotalEntries: e.Uint64(buf[24:32]),
		Compression:  buf[32],
		IdVariant:    IdVariant(buf[33]),
		PayloadSize:  e.Uint16(buf[34:36]),
	}

	return h, nil
}
