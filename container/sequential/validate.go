package sequential

import (
	"fmt"
	"io"
	"os"

	"github.com/bcc3d/bcc/errs"
	"github.com/bcc3d/bcc/section"
)

// Issue describes one problem found by Validate, anchored to the byte
// offset of the block it affects so a caller can report it in a single
// line.
type Issue struct {
	Offset int64
	Err    error
}

// Validate performs its own sequential scan of path (independent of
// Open's index-building scan) and checksums every block it can fully
// read, reporting a checksum failure as an Issue and continuing with the
// next block, so a single corrupt block doesn't hide problems in blocks
// after it. It stops for good once a block header
// itself fails to decode or its length would run past EOF, since at
// that point there is no reliable way to locate the next block.
func Validate(path string) ([]Issue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrIO, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrIO, err)
	}
	size := info.Size()

	hdrBuf := make([]byte, section.FileHeaderSize)
	if _, err := io.ReadFull(f, hdrBuf); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrTruncatedBlock, err)
	}
	fh, err := section.DecodeFileHeader(hdrBuf)
	if err != nil {
		return nil, err
	}

	var issues []Issue
	offset := int64(section.FileHeaderSize)
	for offset+section.BlockHeaderSize <= size {
		hb := make([]byte, section.BlockHeaderSize)
		if _, err := f.ReadAt(hb, offset); err != nil {
			issues = append(issues, Issue{Offset: offset, Err: fmt.Errorf("%w: %v", errs.ErrIO, err)})
			break
		}
		bh, err := section.DecodeBlockHeader(hb)
		if err != nil {
			issues = append(issues, Issue{Offset: offset, Err: err})
			break
		}
		if bh.BlockLength < section.BlockHeaderSize || offset+int64(bh.BlockLength) > size {
			issues = append(issues, Issue{Offset: offset, Err: fmt.Errorf("%w: declared length %d exceeds file", errs.ErrTruncatedBlock, bh.BlockLength)})
			break
		}

		body := make([]byte, bh.BlockLength-section.BlockHeaderSize)
		if _, err := f.ReadAt(body, offset+section.BlockHeaderSize); err != nil {
			issues = append(issues, Issue{Offset: offset, Err: fmt.Errorf("%w: %v", errs.ErrIO, err)})
			break
		}

		if fh.Flags&section.FlagChecksumsOn != 0 && !bh.VerifyChecksum(body) {
			issues = append(issues, Issue{Offset: offset, Err: errs.ErrChecksumMismatch})
		}

		offset += int64(bh.BlockLength)
	}

	return issues, nil
}
