// Package bcc provides a space-efficient binary format and set of
// containers for indexing points on a body-centered-cubic lattice.
//
// bcc is optimized for scenarios with a sparse, spatially-local working
// set of identifiers (e.g. voxels, lattice cells, or snapped sample
// points) each carrying a small opaque payload, providing compact
// on-disk layout and fast range/point lookups through sorted-block
// indexing.
//
// # Core Features
//
//   - BCC lattice identifiers (Id64, WideId) with parity-checked
//     coordinates, level-of-detail, and frame tagging
//   - An in-memory sparse container for incremental work
//   - An append-only, crash-tolerant on-disk sequential container with
//     an optional spatial index
//   - A streaming (append-only chunked) container for ingest pipelines,
//     convertible to the sequential format
//   - Optional per-block/per-chunk compression (None, Zstd, S2, LZ4)
//   - Built-in CRC-16 checksums for block/chunk integrity
//
// # Basic Usage
//
// Building an in-memory index:
//
//	import "github.com/bcc3d/bcc"
//
//	idx := bcc.NewMemoryIndex[[]byte]()
//	id, _ := bcc.NewID(2, 4, 6, 0, frame.NoFrame, 0, 0)
//	idx.Insert(id, []byte("payload"))
//
// Writing a sequential container to disk:
//
//	w, _ := bcc.CreateSequential("cells.bcc", bcc.WithCompression(compress.AlgoS2))
//	_ = w.Insert(sequential.Entry{ID: id, Payload: []byte("payload")})
//	_ = w.Finalize()
//
//	r, _ := bcc.OpenSequential("cells.bcc")
//	defer r.Close()
//	payload, ok, _ := r.Get(id)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the
// ident, container, container/sequential, and container/streaming
// packages, simplifying the most common use cases. For advanced usage
// and fine-grained control, use those packages directly.
package bcc

import (
	"github.com/bcc3d/bcc/compress"
	"github.com/bcc3d/bcc/container"
	"github.com/bcc3d/bcc/container/sequential"
	"github.com/bcc3d/bcc/container/streaming"
	"github.com/bcc3d/bcc/frame"
	"github.com/bcc3d/bcc/ident"
)

// NewID constructs a 64-bit lattice identifier from integer
// coordinates, level of detail, frame tag, and scale fields. It is a
// thin rename of ident.Id64FromCoords for callers that only import
// this top-level package.
func NewID(x, y, z int64, lod uint8, frameTag frame.Tag, scaleTier, scaleMantissa uint8) (ident.Id64, error) {
	return ident.Id64FromCoords(x, y, z, lod, frameTag, scaleTier, scaleMantissa)
}

// NewMemoryIndex creates an empty in-memory sparse container keyed by
// 64-bit lattice identifiers, suitable for incremental workloads that
// don't need durability.
func NewMemoryIndex[V any]() *container.MemoryId64[V] {
	return container.NewMemoryId64[V]()
}

// NewWideMemoryIndex is NewMemoryIndex for the wide (128-bit)
// identifier variant, for lattices whose coordinate or scale range
// exceeds what Id64 can represent.
func NewWideMemoryIndex[V any]() *container.MemoryWideId[V] {
	return container.NewMemoryWideId[V]()
}

// CreateSequential creates a new on-disk sequential container file at
// path, ready to accept Insert calls. Callers must call Finalize (or
// Close, for a best-effort abandon) when done.
func CreateSequential(path string, opts ...sequential.Option) (*sequential.Writer, error) {
	return sequential.NewWriter(path, opts...)
}

// OpenSequential opens an existing sequential container file
// read-only.
func OpenSequential(path string, opts ...sequential.ReaderOption) (*sequential.Reader, error) {
	return sequential.Open(path, opts...)
}

// Re-exported so callers configuring a sequential writer don't need a
// second import for the common options.
var (
	WithBlockSize      = sequential.WithBlockSize
	WithCompression    = sequential.WithCompression
	WithFastCompressor = sequential.WithFastCompressor
	WithChecksums      = sequential.WithChecksums
	WithSpatialIndex   = sequential.WithSpatialIndex
	WithIndexInterval  = sequential.WithIndexInterval
)

// CreateStream creates a new append-only streaming container file at
// path, using algo to compress each chunk's payload.
func CreateStream(path string, algo compress.Algorithm) (*streaming.Writer, error) {
	return streaming.NewWriter(path, algo)
}
