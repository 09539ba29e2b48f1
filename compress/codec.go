package compress

import (
	"fmt"

	"github.com/bcc3d/bcc/errs"
)

// Algorithm identifies a block payload compression scheme.
type Algorithm uint8

const (
	AlgoNone Algorithm = iota
	AlgoLZ4
	AlgoS2
	AlgoZstd
)

func (a Algorithm) String() string {
	switch a {
	case AlgoNone:
		return "none"
	case AlgoLZ4:
		return "lz4"
	case AlgoS2:
		return "s2"
	case AlgoZstd:
		return "zstd"
	default:
		return "unknown"
	}
}

// Compressor compresses a block payload.
//
// Memory management:
//   - Returned slice is newly allocated and owned by the caller
//   - Input slice is not modified
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a block payload previously produced by the
// matching Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec is a factory function that creates a Codec for the given algorithm.
func CreateCodec(algo Algorithm) (Codec, error) {
	switch algo {
	case AlgoNone:
		return NewNoOpCompressor(), nil
	case AlgoLZ4:
		return NewLZ4Compressor(), nil
	case AlgoS2:
		return NewS2Compressor(), nil
	case AlgoZstd:
		return NewZstdCompressor(), nil
	default:
		return nil, fmt.Errorf("compress: unsupported algorithm %d", algo)
	}
}

var builtinCodecs = map[Algorithm]Codec{
	AlgoNone: NewNoOpCompressor(),
	AlgoLZ4:  NewLZ4Compressor(),
	AlgoS2:   NewS2Compressor(),
	AlgoZstd: NewZstdCompressor(),
}

// GetCodec retrieves a built-in Codec for the given algorithm.
func GetCodec(algo Algorithm) (Codec, error) {
	if codec, ok := builtinCodecs[algo]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("compress: unsupported algorithm %d", algo)
}

// WireByte maps an Algorithm onto the on-disk 0=none/1=fast/2=strong
// compression byte used by the sequential container's file and block headers.
func WireByte(algo Algorithm) byte {
	switch algo {
	case AlgoNone:
		return 0
	case AlgoLZ4, AlgoS2:
		return 1
	case AlgoZstd:
		return 2
	default:
		return 0
	}
}

// FromWireByte maps an on-disk compression byte back onto an Algorithm.
// "fast" (1) is ambiguous between LZ4 and S2 on the wire, so it resolves
// to the caller-supplied fast codec, defaulting to S2 only when the
// caller has no better information; an LZ4 payload fed to an S2
// Decompressor (or vice versa) fails outright rather than silently
// decoding, so callers that can recover the writer's actual choice (the
// sequential container persists it in FileHeader.Flags) should pass it
// instead of relying on the default.
func FromWireByte(b byte, fast Algorithm) (Algorithm, error) {
	switch b {
	case 0:
		return AlgoNone, nil
	case 1:
		if fast != AlgoLZ4 && fast != AlgoS2 {
			fast = AlgoS2
		}

		return fast, nil
	case 2:
		return AlgoZstd, nil
	default:
		return 0, fmt.Errorf("%w: wire compression byte %d", errs.ErrUnknownCompression, b)
	}
}
