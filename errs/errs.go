// Package errs collects the sentinel errors returned by the bcc module.
//
// Callers should test for a specific condition with errors.Is against one
// of these vars; fmt.Errorf("%w: ...", errs.ErrX, ...) is used throughout
// the module to attach contextual detail (offsets, field names, versions)
// without losing the sentinel identity.
package errs

import "errors"

// Validation errors.
var (
	// ErrParityViolation is returned when (x+y+z) is odd for a BCC lattice point.
	ErrParityViolation = errors.New("bcc: parity violation, x+y+z must be even")

	// ErrOutOfRange is returned when a field (axis coordinate, LOD, scale, ...)
	// falls outside the range its identifier variant can represent.
	ErrOutOfRange = errors.New("bcc: value out of range")

	// ErrUnknownFrame is returned when a frame tag has not been registered.
	ErrUnknownFrame = errors.New("bcc: unknown frame")

	// ErrUnknownCompression is returned when a compression wire byte does not
	// map to a known algorithm.
	ErrUnknownCompression = errors.New("bcc: unknown compression")

	// ErrUnsupportedVersion is returned when a container's on-disk version
	// cannot be read or migrated by this build.
	ErrUnsupportedVersion = errors.New("bcc: unsupported version")
)

// Integrity errors.
var (
	// ErrInvalidMagic is returned when a file or chunk's magic bytes do not match.
	ErrInvalidMagic = errors.New("bcc: invalid magic")

	// ErrChecksumMismatch is returned when a block's stored checksum does not
	// match the checksum computed over its bytes.
	ErrChecksumMismatch = errors.New("bcc: checksum mismatch")

	// ErrTruncatedBlock is returned when fewer bytes are available than a
	// block header declares.
	ErrTruncatedBlock = errors.New("bcc: truncated block")
)

// I/O errors.
var (
	// ErrIO wraps an underlying I/O failure (short read/write, disk error, ...).
	ErrIO = errors.New("bcc: i/o error")
)

// Control-flow errors.
var (
	// ErrCancelled is returned by batch kernels when their context is
	// cancelled or their cancellation token is tripped.
	ErrCancelled = errors.New("bcc: cancelled")

	// ErrNotFound reports a lookup that found no matching entry. Container
	// Get and frame Lookup report a miss with a false ok value instead.
	ErrNotFound = errors.New("bcc: not found")

	// ErrDuplicateFrame is returned by frame.Register when a different
	// transform is registered under a name that is already bound.
	ErrDuplicateFrame = errors.New("bcc: duplicate frame registration")

	// ErrClosed is returned by operations attempted on a closed container
	// or writer.
	ErrClosed = errors.New("bcc: use of closed resource")
)
