package section

import (
	"fmt"

	"github.com/bcc3d/bcc/endian"
	"github.com/bcc3d/bcc/errs"
)

// BlockHeaderSize is the fixed, on-disk size of a BlockHeader in bytes.
const BlockHeaderSize = 32

// BlockFlagIndexBlock marks a block as a spatial index block rather than a
// data block.
const BlockFlagIndexBlock uint8 = 1 << 4

// BlockHeader precedes every block's payload, data or index.
type BlockHeader struct {
	BlockLength uint32 // total length including this header
	NumEntries  uint32
	FirstID     uint64 // raw Id64 bits of the first entry
	LastID      uint64 // raw Id64 bits of the last entry
	Compression uint8
	BlockFlags  uint8
	Checksum    uint16 // CRC-16 over the payload portion
}

// IsIndexBlock reports whether BlockFlags marks this as an index block.
func (h BlockHeader) IsIndexBlock() bool {
	return h.BlockFlags&BlockFlagIndexBlock != 0
}

// Encode writes h as 32 little-endian bytes.
func (h BlockHeader) Encode() []byte {
	buf := make([]byte, BlockHeaderSize)

	e := endian.GetLittleEndianEngine()
	e.PutUint32(buf[0:4], h.BlockLength)
	e.PutUint32(buf[4:8], h.NumEntries)
	e.PutUint64(buf[8:16], h.FirstID)
	e.PutUint64(buf[16:24], h.LastID)
	buf[24] = h.Compression
	buf[25] = h.BlockFlags
	e.PutUint16(buf[26:28], h.Checksum)
	// bytes 28:32 are reserved and left zero.

	return buf
}

// DecodeBlockHeader parses a 32-byte buffer into a BlockHeader.
func DecodeBlockHeader(buf []byte) (BlockHeader, error) {
	if len(buf) < BlockHeaderSize {
		return BlockHeader{}, fmt.Errorf("%w: block header needs %d bytes, got %d", errs.ErrTruncatedBlock, BlockHeaderSize, len(buf))
	}

	e := endian.GetLittleEndianEngine()
	return BlockHeader{
		BlockLength: e.Uint32(buf[0:4]),
		NumEntries:  e.Uint32(buf[4:8]),
		FirstID:     e.Uint64(buf[8:16]),
		LastID:      e.Uint64(buf[16:24]),
		Compression: buf[24],
		BlockFlags:  buf[25],
		Checksum:    e.Uint16(buf[26:28]),
	}, nil
}

// VerifyChecksum reports whether CRC16CCITT(payload) matches h.Checksum.
func (h BlockHeader) VerifyChecksum(payload []byte) bool {
	return CRC16CCITT(payload) == h.Checksum
}
