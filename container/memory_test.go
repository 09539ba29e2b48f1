package container

import (
	"math/rand"
	"testing"

	"github.com/bcc3d/bcc/frame"
	"github.com/bcc3d/bcc/ident"
	"github.com/stretchr/testify/require"
)

func mustId64(t *testing.T, x, y, z int64, lod uint8) ident.Id64 {
	t.Helper()
	id, err := ident.Id64FromCoords(x, y, z, lod, frame.NoFrame, 0, 0)
	require.NoError(t, err)
	return id
}

func TestMemoryId64_InsertGetDelete(t *testing.T) {
	c := NewMemoryId64[string]()

	a := mustId64(t, 0, 0, 0, 5)
	b := mustId64(t, 2, 0, 0, 5)

	c.Insert(a, "a")
	c.Insert(b, "b")
	require.Equal(t, 2, c.Len())

	v, ok := c.Get(a)
	require.True(t, ok)
	require.Equal(t, "a", v)

	c.Insert(a, "a2")
	require.Equal(t, 2, c.Len())
	v, ok = c.Get(a)
	require.True(t, ok)
	require.Equal(t, "a2", v)

	require.True(t, c.Delete(a))
	require.False(t, c.Delete(a))
	require.Equal(t, 1, c.Len())

	_, ok = c.Get(a)
	require.False(t, ok)
}

func TestMemoryId64_IterAscending(t *testing.T) {
	c := NewMemoryId64[int]()

	coords := [][3]int64{{4, 0, 0}, {0, 0, 0}, {2, 0, 0}, {-2, 0, 0}}
	for i, xyz := range coords {
		id := mustId64(t, xyz[0], xyz[1], xyz[2], 5)
		c.Insert(id, i)
	}

	var seen []ident.Id64
	c.Iter(func(id ident.Id64, v int) bool {
		seen = append(seen, id)
		return true
	})

	require.Len(t, seen, 4)
	for i := 1; i < len(seen); i++ {
		require.True(t, seen[i-1].Less(seen[i]), "iteration not ascending at %d", i)
	}
}

func TestMemoryId64_IterEarlyStop(t *testing.T) {
	c := NewMemoryId64[int]()
	for i, xyz := range [][3]int64{{0, 0, 0}, {2, 0, 0}, {4, 0, 0}} {
		c.Insert(mustId64(t, xyz[0], xyz[1], xyz[2], 5), i)
	}

	count := 0
	c.Iter(func(id ident.Id64, v int) bool {
		count++
		return false
	})
	require.Equal(t, 1, count)
}

func TestMemoryId64_Range(t *testing.T) {
	c := NewMemoryId64[bool]()

	var ids []ident.Id64
	for x := int64(0); x < 20; x += 2 {
		id := mustId64(t, x, 0, 0, 5)
		ids = append(ids, id)
		c.Insert(id, true)
	}

	got := c.Range(ids[2], ids[5])
	require.Len(t, got, 4)
	for i := 1; i < len(got); i++ {
		require.True(t, got[i-1].Less(got[i]))
	}
}

func TestMemoryId64_RandomOrderStaysSorted(t *testing.T) {
	c := NewMemoryId64[struct{}]()
	rng := rand.New(rand.NewSource(1))

	n := 200
	xs := make([]int64, n)
	for i := range xs {
		xs[i] = int64(i) * 2
	}
	rng.Shuffle(n, func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })

	for _, x := range xs {
		c.Insert(mustId64(t, x, 0, 0, 5), struct{}{})
	}
	require.Equal(t, n, c.Len())

	var last *ident.Id64
	c.Iter(func(id ident.Id64, _ struct{}) bool {
		if last != nil {
			require.True(t, last.Less(id))
		}
		idCopy := id
		last = &idCopy
		return true
	})
}

func TestMemoryWideId_InsertGetDelete(t *testing.T) {
	c := NewMemoryWideId[int]()

	a, err := ident.WideFromCoords(0, 0, 0, 10, frame.NoFrame, 0, 0)
	require.NoError(t, err)
	b, err := ident.WideFromCoords(4, 0, 0, 10, frame.NoFrame, 0, 0)
	require.NoError(t, err)

	c.Insert(a, 1)
	c.Insert(b, 2)
	require.Equal(t, 2, c.Len())

	v, ok := c.Get(b)
	require.True(t, ok)
	require.Equal(t, 2, v)

	require.True(t, c.Delete(a))
	require.Equal(t, 1, c.Len())
}
