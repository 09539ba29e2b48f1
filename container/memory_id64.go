package container

import (
	"sort"
	"sync"

	"github.com/bcc3d/bcc/ident"
)

// MemoryId64 is an in-memory sparse container keyed by ident.Id64,
// holding values of type V. Entries are kept sorted by the identifier's
// raw bits (which places Morton-adjacent cells near each other), so
// Range and Iter visit entries in ascending Morton order and Get uses
// binary search.
//
// The zero value is not usable; construct with NewMemoryId64.
type MemoryId64[V any] struct {
	mu   sync.RWMutex
	keys []ident.Id64
	vals []V
}

// NewMemoryId64 creates an empty container.
func NewMemoryId64[V any]() *MemoryId64[V] {
	return &MemoryId64[V]{}
}

// search returns the index of id in c.keys, or the index at which it
// would be inserted, and whether it was found. c.mu must be held.
func (c *MemoryId64[V]) search(id ident.Id64) (int, bool) {
	i := sort.Search(len(c.keys), func(i int) bool {
		return !c.keys[i].Less(id)
	})
	found := i < len(c.keys) && c.keys[i] == id
	return i, found
}

// Insert stores v under id, replacing any existing value for id.
func (c *MemoryId64[V]) Insert(id ident.Id64, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, found := c.search(id)
	if found {
		c.vals[i] = v
		return
	}

	c.keys = append(c.keys, ident.Id64(0))
	copy(c.keys[i+1:], c.keys[i:])
	c.keys[i] = id

	c.vals = append(c.vals, v)
	copy(c.vals[i+1:], c.vals[i:])
	c.vals[i] = v
}

// Get returns the value stored under id, if any.
func (c *MemoryId64[V]) Get(id ident.Id64) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, found := c.search(id)
	if !found {
		var zero V
		return zero, false
	}
	return c.vals[i], true
}

// Delete removes id from the container, reporting whether it was present.
func (c *MemoryId64[V]) Delete(id ident.Id64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, found := c.search(id)
	if !found {
		return false
	}

	c.keys = append(c.keys[:i], c.keys[i+1:]...)
	c.vals = append(c.vals[:i], c.vals[i+1:]...)
	return true
}

// Len returns the number of entries currently stored.
func (c *MemoryId64[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.keys)
}

// Iter calls fn for every entry in ascending Morton order. fn returning
// false stops iteration early.
func (c *MemoryId64[V]) Iter(fn func(id ident.Id64, v V) bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i, id := range c.keys {
		if !fn(id, c.vals[i]) {
			return
		}
	}
}

// Range returns the key of every entry with a key in [lo, hi]
// (inclusive), in ascending order; values are not returned. The lower bound is located by binary search, then
// entries are scanned forward until hi is exceeded: O(log N + k) for
// a result of size k.
func (c *MemoryId64[V]) Range(lo, hi ident.Id64) []ident.Id64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	start, _ := c.search(lo)

	var out []ident.Id64
	for i := start; i < len(c.keys); i++ {
		if hi.Less(c.keys[i]) {
			break
		}
		out = append(out, c.keys[i])
	}
	return out
}
