// Package compress provides block payload compression codecs for the
// sequential container format.
//
// A container block's on-disk "compression" byte is one of none, fast, or
// strong (spec'd in section.FileHeader/section.BlockHeader). This package
// maps those three wire values onto concrete algorithms:
//
//   - none:   AlgoNone, a passthrough codec
//   - fast:   AlgoLZ4 or AlgoS2 (selected via sequential.WithCompression)
//   - strong: AlgoZstd
//
// Compressors and decompressors are safe for concurrent use.
package compress
