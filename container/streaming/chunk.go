package streaming

import (
	"encoding/binary"
	"fmt"

	"github.com/bcc3d/bcc/errs"
	"github.com/bcc3d/bcc/section"
)

// ChunkHeaderSize is the fixed size, in bytes, of a chunk header.
const ChunkHeaderSize = 40

// ChunkMagic identifies a streaming chunk.
var ChunkMagic = [8]byte{'S', 'T', 'R', 'C', 'H', 'U', 'N', 'K'}

// ChunkFlagTerminator marks the final, zero-entry chunk of a stream.
const ChunkFlagTerminator uint8 = 1 << 0

// ChunkHeader precedes every chunk's payload.
type ChunkHeader struct {
	Sequence      uint64
	TimestampUs   uint64
	Compression   uint8
	Flags         uint8
	NumEntries    uint32
	PayloadLength uint32
	Checksum      uint16
}

// IsTerminator reports whether this chunk marks end-of-stream.
func (h ChunkHeader) IsTerminator() bool {
	return h.Flags&ChunkFlagTerminator != 0
}

// Encode writes h as ChunkHeaderSize little-endian bytes.
func (h ChunkHeader) Encode() []byte {
	buf := make([]byte, ChunkHeaderSize)
	copy(buf[0:8], ChunkMagic[:])

	binary.LittleEndian.PutUint64(buf[8:16], h.Sequence)
	binary.LittleEndian.PutUint64(buf[16:24], h.TimestampUs)
	buf[24] = h.Compression
	buf[25] = h.Flags
	binary.LittleEndian.PutUint32(buf[28:32], h.NumEntries)
	binary.LittleEndian.PutUint32(buf[32:36], h.PayloadLength)
	binary.LittleEndian.PutUint16(buf[36:38], h.Checksum)

	return buf
}

// DecodeChunkHeader parses a ChunkHeaderSize-byte buffer into a ChunkHeader.
func DecodeChunkHeader(buf []byte) (ChunkHeader, error) {
	if len(buf) < ChunkHeaderSize {
		return ChunkHeader{}, fmt.Errorf("%w: chunk header needs %d bytes, got %d", errs.ErrTruncatedBlock, ChunkHeaderSize, len(buf))
	}
	if string(buf[0:8]) != string(ChunkMagic[:]) {
		return ChunkHeader{}, errs.ErrInvalidMagic
	}

	return ChunkHeader{
		Sequence:      binary.LittleEndian.Uint64(buf[8:16]),
		TimestampUs:   binary.LittleEndian.Uint64(buf[16:24]),
		Compression:   buf[24],
		Flags:         buf[25],
		NumEntries:    binary.LittleEndian.Uint32(buf[28:32]),
		PayloadLength: binary.LittleEndian.Uint32(buf[32:36]),
		Checksum:      binary.LittleEndian.Uint16(buf[36:38]),
	}, nil
}

// VerifyChecksum reports whether CRC16CCITT(payload) matches h.Checksum.
func (h ChunkHeader) VerifyChecksum(payload []byte) bool {
	return section.CRC16CCITT(payload) == h.Checksum
}
