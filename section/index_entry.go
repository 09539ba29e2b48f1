package section

import (
	"fmt"

	"github.com/bcc3d/bcc/endian"
	"github.com/bcc3d/bcc/errs"
)

// IndexEntrySize is the fixed, on-disk size of an IndexEntry in bytes.
const IndexEntrySize = 24

// IndexEntry locates one data block within a spatial index block: the
// raw Id64 bits of its first entry, its byte offset from the start of the
// file, its total length, and the number of entries it holds. Index
// blocks hold these sorted by FirstMorton so a lookup can binary-search
// them directly.
type IndexEntry struct {
	FirstMorton uint64
	FileOffset  uint64
	BlockLength uint32
	NumEntries  uint32
}

// Encode writes e as 24 little-endian bytes.
func (e IndexEntry) Encode() []byte {
	buf := make([]byte, IndexEntrySize)

	eng := endian.GetLittleEndianEngine()
	eng.PutUint64(buf[0:8], e.FirstMorton)
	eng.PutUint64(buf[8:16], e.FileOffset)
	eng.PutUint32(buf[16:20], e.BlockLength)
	eng.PutUint32(buf[20:24], e.NumEntries)

	return buf
}

// DecodeIndexEntry parses a 24-byte buffer into an IndexEntry.
func DecodeIndexEntry(buf []byte) (IndexEntry, error) {
	if len(buf) < IndexEntrySize {
		return IndexEntry{}, fmt.Errorf("%w: index entry needs %d bytes, got %d", errs.ErrTruncatedBlock, IndexEntrySize, len(buf))
	}

	eng := endian.GetLittleEndianEngine()
	return IndexEntry{
		FirstMorton: eng.Uint64(buf[0:8]),
		FileOffset:  eng.Uint64(buf[8:16]),
		BlockLength: eng.Uint32(buf[16:20]),
		NumEntries:  eng.Uint32(buf[20:24]),
	}, nil
}

// EncodeIndexEntries encodes a slice of entries back-to-back, the layout
// an index block's payload uses.
func EncodeIndexEntries(entries []IndexEntry) []byte {
	buf := make([]byte, 0, len(entries)*IndexEntrySize)
	for _, e := range entries {
		buf = append(buf, e.Encode()...)
	}
	return buf
}

// DecodeIndexEntries splits buf into consecutive IndexEntrySize-byte
// records. len(buf) must be a multiple of IndexEntrySize.
func DecodeIndexEntries(buf []byte) ([]IndexEntry, error) {
	if len(buf)%IndexEntrySize != 0 {
		return nil, fmt.Errorf("%w: index block payload length %d is not a multiple of %d", errs.ErrTruncatedBlock, len(buf), IndexEntrySize)
	}

	n := len(buf) / IndexEntrySize
	entries := make([]IndexEntry, n)
	for i := 0; i < n; i++ {
		e, err := DecodeIndexEntry(buf[i*IndexEntrySize : (i+1)*IndexEntrySize])
		if err != nil {
			return nil, err
		}
		entries[i] = e
	}

	return entries, nil
}
