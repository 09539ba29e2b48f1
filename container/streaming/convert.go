package streaming

import (
	"slices"

	"github.com/bcc3d/bcc/container/sequential"
)

// Convert reads the stream at streamPath in full, sorts its entries by
// identifier, and writes them out as a sequential container at
// outputPath, using opts the same way sequential.NewWriter does.
func Convert(streamPath, outputPath string, opts ...sequential.Option) ([]GapWarning, error) {
	entries, warnings, err := Read(streamPath)
	if err != nil {
		return warnings, err
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		switch {
		case a.ID.Less(b.ID):
			return -1
		case b.ID.Less(a.ID):
			return 1
		default:
			return 0
		}
	})

	w, err := sequential.NewWriter(outputPath, opts...)
	if err != nil {
		return warnings, err
	}

	for _, e := range entries {
		if err := w.Insert(sequential.Entry{ID: e.ID, Payload: e.Payload}); err != nil {
			_ = w.Close()
			return warnings, err
		}
	}

	return warnings, w.Finalize()
}
