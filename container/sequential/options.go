package sequential

import (
	"github.com/bcc3d/bcc/compress"
	"github.com/bcc3d/bcc/internal/options"
)

// DefaultBlockSize is the target size, in bytes, of a data block before
// the writer rolls it and starts a new one.
const DefaultBlockSize = 4 * 1024

// DefaultIndexInterval is the number of data blocks (K) between flushed
// spatial index blocks.
const DefaultIndexInterval = 100

// WriterConfig holds construction-time writer settings, built up by
// Option values passed to NewWriter.
type WriterConfig struct {
	blockSize     int
	compression   compress.Algorithm
	fastAlgo      compress.Algorithm
	checksums     bool
	spatialIndex  bool
	indexInterval int
}

func newWriterConfig() *WriterConfig {
	return &WriterConfig{
		blockSize:     DefaultBlockSize,
		compression:   compress.AlgoNone,
		fastAlgo:      compress.AlgoS2,
		checksums:     true,
		spatialIndex:  true,
		indexInterval: DefaultIndexInterval,
	}
}

// Option configures a Writer at construction time.
type Option = options.Option[*WriterConfig]

// WithBlockSize sets the target data block size in bytes. A block is
// flushed as soon as its buffered entries (each payload plus 12 bytes of
// framing) reach this size; it is a target, not a hard cap, since the
// entry that crosses it stays in the block and a payload is never split.
func WithBlockSize(n int) Option {
	return options.NoError(func(c *WriterConfig) {
		if n > 0 {
			c.blockSize = n
		}
	})
}

// WithCompression sets the compression algorithm applied to data block
// payloads. AlgoLZ4 and AlgoS2 both map to the "fast" wire byte; the
// file header's FlagFastCodecLZ4 bit records which of the two was used,
// and readers decode with the codec that bit names.
func WithCompression(algo compress.Algorithm) Option {
	return options.NoError(func(c *WriterConfig) {
		c.compression = algo
	})
}

// WithFastCompressor stores an LZ4-or-S2 choice in the writer
// configuration. The writer does not consult it: the codec behind the
// "fast" wire byte, and the FlagFastCodecLZ4 header bit, follow the
// algorithm given to WithCompression.
func WithFastCompressor(algo compress.Algorithm) Option {
	return options.NoError(func(c *WriterConfig) {
		if algo == compress.AlgoLZ4 || algo == compress.AlgoS2 {
			c.fastAlgo = algo
		}
	})
}

// WithChecksums enables or disables per-block CRC-16 checksums.
func WithChecksums(enabled bool) Option {
	return options.NoError(func(c *WriterConfig) {
		c.checksums = enabled
	})
}

// WithSpatialIndex enables or disables emitting spatial index blocks.
// Disabling it produces a smaller file. The Reader builds its block index
// from data block headers, so lookups work the same either way.
func WithSpatialIndex(enabled bool) Option {
	return options.NoError(func(c *WriterConfig) {
		c.spatialIndex = enabled
	})
}

// WithIndexInterval sets K, the number of data blocks between flushed
// index blocks.
func WithIndexInterval(k int) Option {
	return options.NoError(func(c *WriterConfig) {
		if k > 0 {
			c.indexInterval = k
		}
	})
}
