package streaming

import "github.com/bcc3d/bcc/ident"

// Entry is one (identifier, payload) pair carried in a chunk.
type Entry struct {
	ID      ident.Id64
	Payload []byte
}
