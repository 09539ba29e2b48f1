package cli

import (
	"fmt"
	"io"

	"github.com/bcc3d/bcc/container/sequential"
)

// PrintIssues writes one line per validation issue, in the
// "offset: error" shape arx-os/arxos's cmd_migrate.go uses for its own
// status lines.
func PrintIssues(w io.Writer, issues []sequential.Issue) {
	for _, issue := range issues {
		fmt.Fprintf(w, "offset %d: %v\n", issue.Offset, issue.Err)
	}
}

// PrintDump writes a human-readable listing of every entry in the
// container at path.
func PrintDump(w io.Writer, path string) error {
	r, err := sequential.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	fmt.Fprintf(w, "# %d data block(s)\n", r.NumBlocks())

	return r.Iter(func(e sequential.Entry) bool {
		x, y, z := e.ID.Coords()
		fmt.Fprintf(w, "%d\t(%d,%d,%d)\tlod=%d\t%d byte(s)\n", e.ID.ToRaw(), x, y, z, e.ID.LOD(), len(e.Payload))
		return true
	})
}
