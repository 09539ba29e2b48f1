package sequential

import (
	"fmt"
	"io"
	"os"

	"github.com/bcc3d/bcc/compress"
	"github.com/bcc3d/bcc/errs"
	"github.com/bcc3d/bcc/section"
)

// Stats summarizes a Recover run.
type Stats struct {
	BlocksKept    int
	BlocksDropped int
	EntriesKept   int
}

// Recover reads damagedPath block by block and writes outputPath
// containing only the blocks that pass their checksum, with a freshly
// rebuilt index. Where Validate only reports a block that fails its
// checksum and a Reader's Get fails on it, Recover skips a bad block (its
// declared length is still trustworthy, so the scan can resume after it)
// and keeps going, since the point of recovery is to salvage everything
// usable rather than to report the break.
func Recover(damagedPath, outputPath string) (Stats, error) {
	f, err := os.Open(damagedPath)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %v", errs.ErrIO, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %v", errs.ErrIO, err)
	}
	size := info.Size()

	hdrBuf := make([]byte, section.FileHeaderSize)
	if _, err := io.ReadFull(f, hdrBuf); err != nil {
		return Stats{}, fmt.Errorf("%w: %v", errs.ErrTruncatedBlock, err)
	}
	fh, err := section.DecodeFileHeader(hdrBuf)
	if err != nil {
		return Stats{}, err
	}

	fastAlgo := compress.AlgoS2
	if fh.Flags&section.FlagFastCodecLZ4 != 0 {
		fastAlgo = compress.AlgoLZ4
	}

	algo, err := compress.FromWireByte(fh.Compression, fastAlgo)
	if err != nil {
		algo = compress.AlgoNone
	}

	w, err := NewWriter(outputPath,
		WithCompression(algo),
		WithChecksums(fh.Flags&section.FlagChecksumsOn != 0),
		WithSpatialIndex(fh.Flags&section.FlagHasSpatialIndex != 0),
	)
	if err != nil {
		return Stats{}, err
	}

	var stats Stats
	offset := int64(section.FileHeaderSize)
	for offset+section.BlockHeaderSize <= size {
		hb := make([]byte, section.BlockHeaderSize)
		if _, err := f.ReadAt(hb, offset); err != nil {
			break
		}
		bh, err := section.DecodeBlockHeader(hb)
		if err != nil {
			break
		}
		if bh.BlockLength < section.BlockHeaderSize || offset+int64(bh.BlockLength) > size {
			break
		}

		body := make([]byte, bh.BlockLength-section.BlockHeaderSize)
		if _, err := f.ReadAt(body, offset+section.BlockHeaderSize); err != nil {
			break
		}

		offset += int64(bh.BlockLength)

		if bh.IsIndexBlock() {
			continue
		}

		if fh.Flags&section.FlagChecksumsOn != 0 && !bh.VerifyChecksum(body) {
			stats.BlocksDropped++
			continue
		}

		entries, err := decodeDataBlock(bh, body, fastAlgo)
		if err != nil {
			stats.BlocksDropped++
			continue
		}

		for _, e := range entries {
			if err := w.Insert(e); err != nil {
				_ = w.Close()
				return stats, err
			}
		}
		stats.BlocksKept++
		stats.EntriesKept += len(entries)
	}

	if err := w.Finalize(); err != nil {
		return stats, err
	}

	return stats, nil
}
