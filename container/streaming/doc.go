// Package streaming implements the append-only chunked container: a
// sequence of self-contained chunks, each with its own header (magic,
// sequence number, timestamp, compression, checksum) and payload,
// ending in a zero-entry terminator chunk. Streaming containers are
// meant for an active writer appending as data arrives; Convert
// buffers a finished stream, sorts it, and re-emits it as a sequential
// container for efficient random access.
package streaming
