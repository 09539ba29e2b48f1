package sequential

import (
	"fmt"
	"os"
	"slices"

	"github.com/bcc3d/bcc/compress"
	"github.com/bcc3d/bcc/errs"
	"github.com/bcc3d/bcc/internal/options"
	"github.com/bcc3d/bcc/section"
)

// Writer creates a sequential container file. Entries inserted between
// block flushes are sorted by identifier before being written, so a
// single block's (first_id, last_id) span never overlaps another
// block's span as long as callers insert entries in non-decreasing
// identifier order overall; out-of-order inserts across block
// boundaries still round-trip correctly through a full scan, but index-
// accelerated point lookups assume non-decreasing insertion order.
type Writer struct {
	f   *os.File
	cfg *WriterConfig

	codec compress.Codec

	pending     []Entry
	pendingSize int

	offset       uint64
	numBlocks    uint64
	totalEntries uint64

	sinceIndex   int
	indexEntries []section.IndexEntry

	closed bool
}

// NewWriter creates path and writes a placeholder file header, ready
// to accept Insert calls.
func NewWriter(path string, opts ...Option) (*Writer, error) {
	cfg := newWriterConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrIO, err)
	}

	codec, err := compress.CreateCodec(cfg.compression)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	header := buildFileHeader(cfg, 0, 0)
	if _, err := f.Write(header.Encode()); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %v", errs.ErrIO, err)
	}

	return &Writer{
		f:      f,
		cfg:    cfg,
		codec:  codec,
		offset: section.FileHeaderSize,
	}, nil
}

// buildFileHeader builds the FileHeader this writer's configuration
// implies, for the given block/entry counts.
func buildFileHeader(cfg *WriterConfig, numBlocks, totalEntries uint64) section.FileHeader {
	var flags uint32
	if cfg.spatialIndex {
		flags |= section.FlagHasSpatialIndex
	}
	if cfg.checksums {
		flags |= section.FlagChecksumsOn
	}
	if cfg.compression == compress.AlgoLZ4 {
		flags |= section.FlagFastCodecLZ4
	}

	return section.FileHeader{
		VersionMajor: section.CurrentVersionMajor,
		VersionMinor: section.CurrentVersionMinor,
		Flags:        flags,
		NumBlocks:    numBlocks,
		TotalEntries: totalEntries,
		Compression:  compress.WireByte(cfg.compression),
		IdVariant:    section.IdVariantId64,
		PayloadSize:  0,
	}
}

// Insert buffers an (id, payload) pair, flushing the current block if
// the buffer has grown past the configured block size.
func (w *Writer) Insert(e Entry) error {
	if w.closed {
		return errs.ErrClosed
	}

	w.pending = append(w.pending, e)
	w.pendingSize += 8 + 4 + len(e.Payload)

	if w.pendingSize >= w.cfg.blockSize {
		return w.flushBlock()
	}
	return nil
}

func (w *Writer) flushBlock() error {
	if len(w.pending) == 0 {
		return nil
	}

	slices.SortFunc(w.pending, func(a, b Entry) int {
		switch {
		case a.ID.Less(b.ID):
			return -1
		case b.ID.Less(a.ID):
			return 1
		default:
			return 0
		}
	})

	header, body, err := encodeDataBlock(w.pending, w.cfg.compression, w.codec, w.cfg.checksums)
	if err != nil {
		return err
	}

	if _, err := w.f.Write(header.Encode()); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIO, err)
	}
	if _, err := w.f.Write(body); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIO, err)
	}

	w.indexEntries = append(w.indexEntries, section.IndexEntry{
		FirstMorton: header.FirstID,
		FileOffset:  w.offset,
		BlockLength: header.BlockLength,
		NumEntries:  header.NumEntries,
	})

	w.offset += uint64(header.BlockLength)
	w.numBlocks++
	w.totalEntries += uint64(len(w.pending))
	w.sinceIndex++

	w.pending = w.pending[:0]
	w.pendingSize = 0

	if w.cfg.spatialIndex && w.sinceIndex >= w.cfg.indexInterval {
		if err := w.flushIndexBlock(); err != nil {
			return err
		}
	}

	return nil
}

func (w *Writer) flushIndexBlock() error {
	if len(w.indexEntries) == 0 {
		return nil
	}

	header, body := encodeIndexBlock(w.indexEntries, w.cfg.checksums)
	if _, err := w.f.Write(header.Encode()); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIO, err)
	}
	if _, err := w.f.Write(body); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIO, err)
	}

	w.offset += uint64(header.BlockLength)
	w.numBlocks++
	w.indexEntries = nil
	w.sinceIndex = 0

	return nil
}

// Finalize flushes any buffered entries, writes a terminal index block
// over whatever entries have accumulated since the last one, and
// rewrites the file header in place with the final block/entry counts.
// The Writer must not be used after Finalize returns.
func (w *Writer) Finalize() error {
	if w.closed {
		return errs.ErrClosed
	}

	if err := w.flushBlock(); err != nil {
		return err
	}
	if w.cfg.spatialIndex {
		if err := w.flushIndexBlock(); err != nil {
			return err
		}
	}

	header := buildFileHeader(w.cfg, w.numBlocks, w.totalEntries)
	if _, err := w.f.Seek(0, 0); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIO, err)
	}
	if _, err := w.f.Write(header.Encode()); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIO, err)
	}

	if err := w.f.Sync(); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIO, err)
	}

	w.closed = true
	return w.f.Close()
}

// Close releases the underlying file without finalizing the header; it
// is a best-effort safety net for callers that abandon a Writer without
// calling Finalize; such a file keeps the placeholder header written by
// NewWriter (zero blocks, zero entries) and must not be read back as a
// complete container.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.f.Close()
}
