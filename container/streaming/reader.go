package streaming

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bcc3d/bcc/compress"
	"github.com/bcc3d/bcc/errs"
	"github.com/bcc3d/bcc/ident"
)

// GapWarning records a jump in chunk sequence numbers found while
// reading, the stream-level equivalent of the sequential container's
// crash-tolerant reads: a gap doesn't stop the read, it's surfaced to
// the caller to act on.
type GapWarning struct {
	After, Before uint64
}

// Read reads every chunk of path in order up to (but not including)
// the terminator chunk if one is present, decoding entries as it goes.
// It tolerates gaps in the sequence numbering, returning one
// GapWarning per detected gap.
func Read(path string) ([]Entry, []GapWarning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errs.ErrIO, err)
	}
	defer f.Close()

	var (
		entries  []Entry
		warnings []GapWarning
		lastSeq  uint64
		haveSeq  bool
	)

	for {
		hb := make([]byte, ChunkHeaderSize)
		if _, err := io.ReadFull(f, hb); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			// A short final read means a torn last chunk; the stream
			// is still usable up to here.
			break
		}

		header, err := DecodeChunkHeader(hb)
		if err != nil {
			break
		}

		body := make([]byte, header.PayloadLength)
		if _, err := io.ReadFull(f, body); err != nil {
			break
		}

		if !header.VerifyChecksum(body) {
			return entries, warnings, fmt.Errorf("%w: chunk %d", errs.ErrChecksumMismatch, header.Sequence)
		}

		if haveSeq && header.Sequence != lastSeq+1 {
			warnings = append(warnings, GapWarning{After: lastSeq, Before: header.Sequence})
		}
		lastSeq, haveSeq = header.Sequence, true

		if header.IsTerminator() {
			break
		}

		decoded, err := decodeChunkBody(header, body)
		if err != nil {
			return entries, warnings, err
		}
		entries = append(entries, decoded...)
	}

	return entries, warnings, nil
}

func decodeChunkBody(header ChunkHeader, body []byte) ([]Entry, error) {
	n := int(header.NumEntries)
	headerLen := 8*n + 4*n
	if len(body) < headerLen {
		return nil, fmt.Errorf("%w: chunk body too short for %d entries", errs.ErrTruncatedBlock, n)
	}

	ids := body[:8*n]
	lens := body[8*n : headerLen]
	payloadBytes := body[headerLen:]

	algo, err := compress.FromWireByte(header.Compression, compress.AlgoS2)
	if err != nil {
		return nil, err
	}
	if algo != compress.AlgoNone && len(payloadBytes) > 0 {
		codec, err := compress.GetCodec(algo)
		if err != nil {
			return nil, err
		}
		payloadBytes, err = codec.Decompress(payloadBytes)
		if err != nil {
			return nil, fmt.Errorf("streaming: decompress chunk payload: %w", err)
		}
	}

	entries := make([]Entry, n)
	off := 0
	for i := 0; i < n; i++ {
		raw := binary.LittleEndian.Uint64(ids[i*8 : i*8+8])
		plen := int(binary.LittleEndian.Uint32(lens[i*4 : i*4+4]))
		if off+plen > len(payloadBytes) {
			return nil, fmt.Errorf("%w: chunk payload entry %d exceeds decoded payload", errs.ErrTruncatedBlock, i)
		}
		entries[i] = Entry{ID: ident.Id64FromRawUnchecked(raw), Payload: payloadBytes[off : off+plen]}
		off += plen
	}

	return entries, nil
}
