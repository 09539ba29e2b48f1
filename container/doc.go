// Package container implements the in-memory sparse container: a
// sorted store keyed by a lattice identifier, offering point lookup,
// sorted iteration, and O(log N + k) range queries. MemoryId64 iterates
// in ascending raw-bit order, which is Morton order among keys of equal
// LOD, frame and scale; MemoryWideId iterates in WideId's raw-bit order
// (see WideId.Less), which is not Morton order.
//
// Two concrete stores are provided, one per identifier width, rather
// than a single store generic over the key type: Id64 and WideId have
// different raw representations (a single uint64 versus a Hi/Lo pair)
// and neither shares a common comparable core type, so a single
// generic key type would need its own wrapper type anyway. This
// mirrors the teacher's own preference for parallel concrete types
// (NumericBlob/TextBlob) over a generic blob.
package container
