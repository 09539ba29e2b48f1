package sequential

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/bcc3d/bcc/compress"
	"github.com/bcc3d/bcc/errs"
	"github.com/bcc3d/bcc/ident"
	"github.com/bcc3d/bcc/section"
)

// dataBlock records where one data block lives in the file, without
// holding its payload in memory.
type dataBlock struct {
	offset uint64
	header section.BlockHeader
}

// Reader opens a sequential container file read-only. Multiple Readers
// (and multiple goroutines through the same Reader) may read
// concurrently; Reader performs no internal locking because *os.File
// reads at an explicit offset (ReadAt) are independently positioned.
type Reader struct {
	f        *os.File
	header   section.FileHeader
	blocks   []dataBlock
	fastAlgo compress.Algorithm
}

// ReaderOption configures Open.
type ReaderOption func(*Reader)

// WithReaderFastCompressor tells the reader which concrete codec (LZ4
// or S2) the "fast" wire compression byte should resolve to. Open
// already recovers this from the file header's FlagFastCodecLZ4 bit;
// this option overrides that choice (for example to force-test the
// other codec), and a mismatched choice surfaces as a decompression
// error, not silent corruption.
func WithReaderFastCompressor(algo compress.Algorithm) ReaderOption {
	return func(r *Reader) {
		if algo == compress.AlgoLZ4 || algo == compress.AlgoS2 {
			r.fastAlgo = algo
		}
	}
}

// Open validates the file header and performs one sequential pass over
// block headers to build an in-memory index of data block locations.
// It stops the scan (without error) at the first block whose declared
// length would run past the end of the file or whose header fails to
// decode, treating everything before that point as the readable prefix
// of the file (P7). Index blocks are skipped for lookup purposes; Open
// does not need to resolve them since it rebuilds equivalent
// information directly from the data block headers it scans.
func Open(path string, opts ...ReaderOption) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrIO, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %v", errs.ErrIO, err)
	}
	size := info.Size()

	hdrBuf := make([]byte, section.FileHeaderSize)
	if _, err := io.ReadFull(f, hdrBuf); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %v", errs.ErrTruncatedBlock, err)
	}

	fh, err := section.DecodeFileHeader(hdrBuf)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if fh.VersionMajor != section.CurrentVersionMajor {
		_ = f.Close()
		return nil, fmt.Errorf("%w: file is version %d, this reader supports %d (use Migrate)", errs.ErrUnsupportedVersion, fh.VersionMajor, section.CurrentVersionMajor)
	}

	fastAlgo := compress.AlgoS2
	if fh.Flags&section.FlagFastCodecLZ4 != 0 {
		fastAlgo = compress.AlgoLZ4
	}

	r := &Reader{f: f, header: fh, fastAlgo: fastAlgo}
	for _, opt := range opts {
		opt(r)
	}

	offset := uint64(section.FileHeaderSize)
	for offset+section.BlockHeaderSize <= uint64(size) {
		hb := make([]byte, section.BlockHeaderSize)
		if _, err := f.ReadAt(hb, int64(offset)); err != nil {
			break
		}
		bh, err := section.DecodeBlockHeader(hb)
		if err != nil {
			break
		}
		if bh.BlockLength < section.BlockHeaderSize || offset+uint64(bh.BlockLength) > uint64(size) {
			break
		}

		if !bh.IsIndexBlock() {
			r.blocks = append(r.blocks, dataBlock{offset: offset, header: bh})
		}

		offset += uint64(bh.BlockLength)
	}

	sort.Slice(r.blocks, func(i, j int) bool { return r.blocks[i].header.FirstID < r.blocks[j].header.FirstID })

	return r, nil
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.f.Close()
}

// NumBlocks returns the number of data blocks found during Open.
func (r *Reader) NumBlocks() int { return len(r.blocks) }

// readBlock reads and decodes a single data block's entries.
func (r *Reader) readBlock(b dataBlock) ([]Entry, error) {
	buf := make([]byte, b.header.BlockLength-section.BlockHeaderSize)
	if _, err := r.f.ReadAt(buf, int64(b.offset)+section.BlockHeaderSize); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrIO, err)
	}

	if r.header.Flags&section.FlagChecksumsOn != 0 && !b.header.VerifyChecksum(buf) {
		return nil, fmt.Errorf("%w: block at offset %d", errs.ErrChecksumMismatch, b.offset)
	}

	return decodeDataBlock(b.header, buf, r.fastAlgo)
}

// Get returns the payload stored for id, if present.
func (r *Reader) Get(id ident.Id64) ([]byte, bool, error) {
	raw := id.ToRaw()

	i := sort.Search(len(r.blocks), func(i int) bool { return r.blocks[i].header.LastID >= raw })
	if i >= len(r.blocks) || r.blocks[i].header.FirstID > raw {
		// raw might still fall inside block i-1's span if spans overlap
		// due to out-of-order inserts; fall back to a linear scan of
		// candidate blocks whose span could contain it.
		for _, b := range r.blocks {
			if b.header.FirstID <= raw && raw <= b.header.LastID {
				return r.getFrom(b, raw)
			}
		}
		return nil, false, nil
	}

	return r.getFrom(r.blocks[i], raw)
}

func (r *Reader) getFrom(b dataBlock, raw uint64) ([]byte, bool, error) {
	entries, err := r.readBlock(b)
	if err != nil {
		return nil, false, err
	}
	for _, e := range entries {
		if e.ID.ToRaw() == raw {
			return e.Payload, true, nil
		}
	}
	return nil, false, nil
}

// Range returns every entry whose identifier falls in [lo, hi]
// (inclusive), gathered by loading every block whose span intersects
// the range.
func (r *Reader) Range(lo, hi ident.Id64) ([]Entry, error) {
	loRaw, hiRaw := lo.ToRaw(), hi.ToRaw()

	var out []Entry
	for _, b := range r.blocks {
		if b.header.LastID < loRaw || b.header.FirstID > hiRaw {
			continue
		}
		entries, err := r.readBlock(b)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			raw := e.ID.ToRaw()
			if raw >= loRaw && raw <= hiRaw {
				out = append(out, e)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID.ToRaw() < out[j].ID.ToRaw() })
	return out, nil
}

// Iter calls fn for every entry in the container, in ascending
// identifier order by block, then by position within each block (which
// is itself sorted at write time).
func (r *Reader) Iter(fn func(Entry) bool) error {
	for _, b := range r.blocks {
		entries, err := r.readBlock(b)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if !fn(e) {
				return nil
			}
		}
	}
	return nil
}
