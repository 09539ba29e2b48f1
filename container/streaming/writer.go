package streaming

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/bcc3d/bcc/compress"
	"github.com/bcc3d/bcc/errs"
	"github.com/bcc3d/bcc/internal/pool"
	"github.com/bcc3d/bcc/section"
)

// Writer appends chunks to a streaming container file and flushes
// after every chunk. A reader catching the file mid-write can still see
// a torn final chunk; Reader treats one as the end of the stream.
type Writer struct {
	f          *os.File
	algo       compress.Algorithm
	codec      compress.Codec
	seq        uint64
	closed     bool
	terminated bool
}

// NewWriter creates path and prepares it to accept Append calls.
func NewWriter(path string, algo compress.Algorithm) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrIO, err)
	}

	codec, err := compress.CreateCodec(algo)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	return &Writer{f: f, algo: algo, codec: codec}, nil
}

// Append writes one chunk containing entries, stamped with
// timestampUs and the writer's next sequence number, then flushes.
func (w *Writer) Append(entries []Entry, timestampUs uint64) error {
	if w.closed || w.terminated {
		return errs.ErrClosed
	}

	header, body, err := encodeChunk(w.seq, timestampUs, entries, w.algo, w.codec, 0)
	if err != nil {
		return err
	}
	w.seq++

	return w.write(header, body)
}

// Terminate appends the zero-entry terminator chunk and closes the file.
func (w *Writer) Terminate(timestampUs uint64) error {
	if w.closed {
		return errs.ErrClosed
	}

	header, body, err := encodeChunk(w.seq, timestampUs, nil, compress.AlgoNone, nil, ChunkFlagTerminator)
	if err != nil {
		return err
	}
	w.seq++
	w.terminated = true

	if err := w.write(header, body); err != nil {
		return err
	}

	w.closed = true
	return w.f.Close()
}

func (w *Writer) write(header ChunkHeader, body []byte) error {
	if _, err := w.f.Write(header.Encode()); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIO, err)
	}
	if _, err := w.f.Write(body); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIO, err)
	}
	return w.f.Sync()
}

// Close releases the underlying file without writing a terminator.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.f.Close()
}

func encodeChunk(seq, timestampUs uint64, entries []Entry, algo compress.Algorithm, codec compress.Compressor, flags uint8) (ChunkHeader, []byte, error) {
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
	if algo != compress.AlgoNone && len(raw) > 0 {
		compressed, err := codec.Compress(raw)
		if err != nil {
			return ChunkHeader{}, nil, fmt.Errorf("streaming: compress chunk payload: %w", err)
		}
		payloadBytes = compressed
	}

	body := make([]byte, 0, len(ids)+len(lens)+len(payloadBytes))
	body = append(body, ids...)
	body = append(body, lens...)
	body = append(body, payloadBytes...)

	header := ChunkHeader{
		Sequence:      seq,
		TimestampUs:   timestampUs,
		Compression:   compress.WireByte(algo),
		Flags:         flags,
		NumEntries:    uint32(len(entries)),
		PayloadLength: uint32(len(body)),
		Checksum:      section.CRC16CCITT(body),
	}

	return header, body, nil
}
