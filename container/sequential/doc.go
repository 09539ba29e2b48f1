// Package sequential implements the on-disk sequential container: a
// 64-byte file header, a run of fixed-header/variable-payload data
// blocks, and one or more spatial index blocks. No footer replica of the
// file header is written; the header exists only at offset 0, and the
// file ends with its last block. Entries are (identifier, payload) pairs keyed by
// ident.Id64; payloads are caller-defined opaque byte slices.
//
// Layout and field meanings are defined by the section package; this
// package owns the write protocol (buffer, sort, flush, index, finalize),
// the read protocol (validate, index-accelerated lookup), and the
// recovery and migration utilities.
package sequential
