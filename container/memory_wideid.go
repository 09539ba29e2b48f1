package container

import (
	"sort"
	"sync"

	"github.com/bcc3d/bcc/ident"
)

// MemoryWideId is the WideId counterpart of MemoryId64, with the same
// complexity guarantees. Its keys are ordered by WideId.Less (raw-bit
// order, z first), not by Morton code.
type MemoryWideId[V any] struct {
	mu   sync.RWMutex
	keys []ident.WideId
	vals []V
}

// NewMemoryWideId creates an empty container.
func NewMemoryWideId[V any]() *MemoryWideId[V] {
	return &MemoryWideId[V]{}
}

func (c *MemoryWideId[V]) search(id ident.WideId) (int, bool) {
	i := sort.Search(len(c.keys), func(i int) bool {
		return !c.keys[i].Less(id)
	})
	found := i < len(c.keys) && c.keys[i] == id
	return i, found
}

// Insert stores v under id, replacing any existing value for id.
func (c *MemoryWideId[V]) Insert(id ident.WideId, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, found := c.search(id)
	if found {
		c.vals[i] = v
		return
	}

	c.keys = append(c.keys, ident.WideId{})
	copy(c.keys[i+1:], c.keys[i:])
	c.keys[i] = id

	c.vals = append(c.vals, v)
	copy(c.vals[i+1:], c.vals[i:])
	c.vals[i] = v
}

// Get returns the value stored under id, if any.
func (c *MemoryWideId[V]) Get(id ident.WideId) (V, bool) {
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
func (c *MemoryWideId[V]) Delete(id ident.WideId) bool {
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
func (c *MemoryWideId[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.keys)
}

// Iter calls fn for every entry in ascending order. fn returning false
// stops iteration early.
func (c *MemoryWideId[V]) Iter(fn func(id ident.WideId, v V) bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i, id := range c.keys {
		if !fn(id, c.vals[i]) {
			return
		}
	}
}

// Range returns the key of every entry with a key in [lo, hi]
// (inclusive), in ascending order; values are not returned.
func (c *MemoryWideId[V]) Range(lo, hi ident.WideId) []ident.WideId {
	c.mu.RLock()
	defer c.mu.RUnlock()

	start, _ := c.search(lo)

	var out []ident.WideId
	for i := start; i < len(c.keys); i++ {
		if hi.Less(c.keys[i]) {
			break
		}
		out = append(out, c.keys[i])
	}
	return out
}
