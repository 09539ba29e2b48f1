package sequential

import "github.com/bcc3d/bcc/ident"

// Entry is one stored (identifier, payload) pair.
type Entry struct {
	ID      ident.Id64
	Payload []byte
}
