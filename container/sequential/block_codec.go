package sequential

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/bcc3d/bcc/compress"
	"github.com/bcc3d/bcc/errs"
	"github.com/bcc3d/bcc/ident"
	"github.com/bcc3d/bcc/internal/pool"
	"github.com/bcc3d/bcc/section"
)

// blockAlignment is the padding multiple applied to every on-disk block.
const blockAlignment = 64

// padLen returns how many zero bytes to append so n becomes a multiple
// of blockAlignment.
func padLen(n int) int {
	rem := n % blockAlignment
	if rem == 0 {
		return 0
	}
	return blockAlignment - rem
}

// encodeDataBlock serializes entries (already sorted by ID) into a
// block header and payload. The payload is: N raw identifiers (8 bytes
// each), N payload lengths (4 bytes each), then the payload bytes
// themselves, optionally compressed as a single unit. Only the
// trailing payload-bytes region is compressed, matching the on-disk
// contract's "compression applied to the concatenated payload" wording.
func encodeDataBlock(entries []Entry, algo compress.Algorithm, codec compress.Compressor, withChecksum bool) (section.BlockHeader, []byte, error) {
	ids := make([]byte, 8*len(entries))
	lens := make([]byte, 4*len(entries))

	rawBuf := pool.GetBlockBuffer()
	defer pool.PutBlockBuffer(rawBuf)

	for i, e := range entries {
		binary.LittleEndian.PutUint64(ids[i*8:i*8+8], e.ID.ToRaw())
		binary.LittleEndian.PutUint32(lens[i*4:i*4+4], uint32(len(e.Payload)))
		rawBuf.MustWrite(e.Payload)
	}
	raw := rawBuf.Bytes()

	payloadBytes := raw
	if algo != compress.AlgoNone {
		compressed, err := codec.Compress(raw)
		if err != nil {
			return section.BlockHeader{}, nil, fmt.Errorf("sequential: compress block payload: %w", err)
		}
		payloadBytes = compressed
	}

	body := make([]byte, 0, len(ids)+len(lens)+len(payloadBytes))
	body = append(body, ids...)
	body = append(body, lens...)
	body = append(body, payloadBytes...)

	total := section.BlockHeaderSize + len(body)
	pad := padLen(total)

	full := make([]byte, 0, total+pad)
	full = append(full, body...)
	full = append(full, make([]byte, pad)...)

	var checksum uint16
	if withChecksum {
		// Checksummed over the full padded payload (padding is always
		// zero bytes) so a reader can verify it without first knowing
		// the unpadded body length.
		checksum = section.CRC16CCITT(full)
	}

	var first, last uint64
	if len(entries) > 0 {
		first = entries[0].ID.ToRaw()
		last = entries[len(entries)-1].ID.ToRaw()
	}

	header := section.BlockHeader{
		BlockLength: uint32(total + pad),
		NumEntries:  uint32(len(entries)),
		FirstID:     first,
		LastID:      last,
		Compression: compress.WireByte(algo),
		BlockFlags:  0,
		Checksum:    checksum,
	}

	return header, full, nil
}

// decodeDataBlock reverses encodeDataBlock. body is the block payload
// with any trailing alignment padding already stripped by the caller
// (it uses header.BlockLength to know how much to strip).
func decodeDataBlock(header section.BlockHeader, body []byte, fastAlgo compress.Algorithm) ([]Entry, error) {
	n := int(header.NumEntries)
	headerLen := 8*n + 4*n
	if len(body) < headerLen {
		return nil, fmt.Errorf("%w: data block body too short for %d entries", errs.ErrTruncatedBlock, n)
	}

	ids := body[:8*n]
	lens := body[8*n : headerLen]
	payloadBytes := body[headerLen:]

	algo, err := compress.FromWireByte(header.Compression, fastAlgo)
	if err != nil {
		return nil, err
	}

	if algo != compress.AlgoNone {
		codec, err := compress.GetCodec(algo)
		if err != nil {
			return nil, err
		}
		payloadBytes, err = codec.Decompress(payloadBytes)
		if err != nil {
			return nil, fmt.Errorf("sequential: decompress block payload: %w", err)
		}
	}

	entries := make([]Entry, n)
	off := 0
	for i := 0; i < n; i++ {
		raw := binary.LittleEndian.Uint64(ids[i*8 : i*8+8])
		plen := int(binary.LittleEndian.Uint32(lens[i*4 : i*4+4]))
		if off+plen > len(payloadBytes) {
			return nil, fmt.Errorf("%w: payload entry %d exceeds decoded payload", errs.ErrTruncatedBlock, i)
		}
		entries[i] = Entry{
			ID:      ident.Id64FromRawUnchecked(raw),
			Payload: payloadBytes[off : off+plen],
		}
		off += plen
	}

	return entries, nil
}

// encodeIndexBlock serializes a sorted run of IndexEntry records. Index
// blocks are never compressed.
func encodeIndexBlock(entries []section.IndexEntry, withChecksum bool) (section.BlockHeader, []byte) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].FirstMorton < entries[j].FirstMorton })

	body := section.EncodeIndexEntries(entries)
	total := section.BlockHeaderSize + len(body)
	pad := padLen(total)

	full := make([]byte, 0, total+pad)
	full = append(full, body...)
	full = append(full, make([]byte, pad)...)

	var checksum uint16
	if withChecksum {
		checksum = section.CRC16CCITT(full)
	}

	var first, last uint64
	if len(entries) > 0 {
		first = entries[0].FirstMorton
		last = entries[len(entries)-1].FirstMorton
	}

	header := section.BlockHeader{
		BlockLength: uint32(total + pad),
		NumEntries:  uint32(len(entries)),
		FirstID:     first,
		LastID:      last,
		Compression: compress.WireByte(compress.AlgoNone),
		BlockFlags:  section.BlockFlagIndexBlock,
		Checksum:    checksum,
	}

	return header, full
}

func decodeIndexBlock(header section.BlockHeader, body []byte) ([]section.IndexEntry, error) {
	want := int(header.NumEntries) * section.IndexEntrySize
	if len(body) < want {
		return nil, fmt.Errorf("%w: index block body too short", errs.ErrTruncatedBlock)
	}
	return section.DecodeIndexEntries(body[:want])
}
