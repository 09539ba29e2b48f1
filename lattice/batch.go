package lattice

import (
	"context"
	"fmt"

	"github.com/bcc3d/bcc/errs"
	"github.com/bcc3d/bcc/frame"
	"github.com/bcc3d/bcc/ident"
)

// BatchCancelCheckInterval is how often (in elements) batch kernels poll
// ctx for cancellation.
const BatchCancelCheckInterval = 1024

// Coord3 is an integer lattice coordinate triple, the input element type
// for batch construction.
type Coord3 struct {
	X, Y, Z int64
}

// Id64FromCoordsBatch validates parity for every element before packing
// any of them: on the first parity violation it aborts the whole batch and
// reports that element's index, leaving no partial output observable. The
// Encode3/Decode3 calls made internally by Id64FromCoords already dispatch
// to the accelerated or portable codec.Engine, so the scalar loop here
// reproduces whatever that dispatch selects bit-for-bit; there is no
// separate batch-only code path to keep in sync.
func Id64FromCoordsBatch(ctx context.Context, coords []Coord3, lod uint8, tag frame.Tag, tier, mantissa uint8) ([]ident.Id64, error) {
	for i, c := range coords {
		if (c.X+c.Y+c.Z)&1 != 0 {
			return nil, fmt.Errorf("%w: index %d", errs.ErrParityViolation, i)
		}
	}

	out := make([]ident.Id64, len(coords))

	for i, c := range coords {
		if i%BatchCancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("%w: %v", errs.ErrCancelled, err)
			}
		}

		id, err := ident.Id64FromCoords(c.X, c.Y, c.Z, lod, tag, tier, mantissa)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out[i] = id
	}

	return out, nil
}
