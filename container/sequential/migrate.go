package sequential

import (
	"fmt"
	"io"
	"os"

	"github.com/bcc3d/bcc/compress"
	"github.com/bcc3d/bcc/errs"
	"github.com/bcc3d/bcc/section"
)

// MigrateV1ToV2 streams a version-1 container into a freshly written
// version-2 file. Block and entry layout are unchanged between the two
// major versions in this engine's history; the only difference is the
// header's magic and version fields, so migration is a matter of
// reading every data block's entries with the v1 decoder path and
// re-writing them through an ordinary Writer, which regenerates the
// index from scratch rather than attempting to translate it in place.
func MigrateV1ToV2(v1Path, v2Path string) error {
	f, err := os.Open(v1Path)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIO, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIO, err)
	}
	size := info.Size()

	hdrBuf := make([]byte, section.FileHeaderSize)
	if _, err := io.ReadFull(f, hdrBuf); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrTruncatedBlock, err)
	}
	fh, err := section.DecodeFileHeader(hdrBuf)
	if err != nil {
		return err
	}
	if fh.VersionMajor != 1 {
		return fmt.Errorf("%w: source is version %d, MigrateV1ToV2 only accepts version 1", errs.ErrUnsupportedVersion, fh.VersionMajor)
	}

	// v1 headers predate FlagFastCodecLZ4, so there is no recorded choice
	// to recover here; S2 is the best available default for a "fast"
	// byte from that era. Once rewritten through NewWriter below, the v2
	// output carries the flag and no longer needs this guess.
	algo, err := compress.FromWireByte(fh.Compression, compress.AlgoS2)
	if err != nil {
		algo = compress.AlgoNone
	}

	w, err := NewWriter(v2Path,
		WithCompression(algo),
		WithChecksums(fh.Flags&section.FlagChecksumsOn != 0),
		WithSpatialIndex(fh.Flags&section.FlagHasSpatialIndex != 0),
	)
	if err != nil {
		return err
	}

	offset := int64(section.FileHeaderSize)
	for offset+section.BlockHeaderSize <= size {
		hb := make([]byte, section.BlockHeaderSize)
		if _, err := f.ReadAt(hb, offset); err != nil {
			return fmt.Errorf("%w: %v", errs.ErrIO, err)
		}
		bh, err := section.DecodeBlockHeader(hb)
		if err != nil {
			return err
		}
		if bh.BlockLength < section.BlockHeaderSize || offset+int64(bh.BlockLength) > size {
			return fmt.Errorf("%w: block at offset %d", errs.ErrTruncatedBlock, offset)
		}

		body := make([]byte, bh.BlockLength-section.BlockHeaderSize)
		if _, err := f.ReadAt(body, offset+section.BlockHeaderSize); err != nil {
			return fmt.Errorf("%w: %v", errs.ErrIO, err)
		}
		offset += int64(bh.BlockLength)

		if bh.IsIndexBlock() {
			continue
		}

		entries, err := decodeDataBlock(bh, body, compress.AlgoS2)
		if err != nil {
			_ = w.Close()
			return err
		}
		for _, e := range entries {
			if err := w.Insert(e); err != nil {
				_ = w.Close()
				return err
			}
		}
	}

	return w.Finalize()
}
