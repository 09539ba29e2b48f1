package sequential

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bcc3d/bcc/compress"
	"github.com/bcc3d/bcc/errs"
	"github.com/bcc3d/bcc/frame"
	"github.com/bcc3d/bcc/ident"
	"github.com/stretchr/testify/require"
)

func mustId(t *testing.T, x, y, z int64) ident.Id64 {
	t.Helper()
	id, err := ident.Id64FromCoords(x, y, z, 5, frame.NoFrame, 0, 0)
	require.NoError(t, err)
	return id
}

// TestScenario3_RoundTripContainer matches end-to-end scenario 3.
func TestScenario3_RoundTripContainer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "container.bccidx")

	w, err := NewWriter(path, WithBlockSize(1<<20))
	require.NoError(t, err)

	ids := []ident.Id64{mustId(t, 0, 0, 0), mustId(t, 2, 2, 0), mustId(t, 4, 0, 0)}
	payloads := [][]byte{[]byte("1.0"), []byte("2.0"), []byte("3.0")}
	for i, id := range ids {
		require.NoError(t, w.Insert(Entry{ID: id, Payload: payloads[i]}))
	}
	require.NoError(t, w.Finalize())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	var gotIDs []ident.Id64
	require.NoError(t, r.Iter(func(e Entry) bool {
		gotIDs = append(gotIDs, e.ID)
		return true
	}))
	require.Len(t, gotIDs, 3)
	for i := 1; i < len(gotIDs); i++ {
		require.True(t, gotIDs[i-1].Less(gotIDs[i]))
	}

	payload, ok, err := r.Get(mustId(t, 2, 2, 0))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "2.0", string(payload))
}

func TestRoundTrip_MultipleBlocksAndIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "container.bccidx")

	w, err := NewWriter(path, WithBlockSize(256), WithIndexInterval(2))
	require.NoError(t, err)

	var ids []ident.Id64
	for x := int64(0); x < 400; x += 2 {
		id := mustId(t, x, 0, 0)
		ids = append(ids, id)
		require.NoError(t, w.Insert(Entry{ID: id, Payload: []byte{byte(x)}}))
	}
	require.NoError(t, w.Finalize())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()
	require.Greater(t, r.NumBlocks(), 1)

	for _, id := range ids {
		_, ok, err := r.Get(id)
		require.NoError(t, err)
		require.True(t, ok)
	}

	got, err := r.Range(ids[10], ids[20])
	require.NoError(t, err)
	require.Len(t, got, 11)
}

func TestRoundTrip_Compressed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "container.bccidx")

	w, err := NewWriter(path, WithCompression(compress.AlgoZstd), WithBlockSize(128))
	require.NoError(t, err)

	for x := int64(0); x < 40; x += 2 {
		require.NoError(t, w.Insert(Entry{ID: mustId(t, x, 0, 0), Payload: []byte("payload-data-here")}))
	}
	require.NoError(t, w.Finalize())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	count := 0
	require.NoError(t, r.Iter(func(e Entry) bool {
		require.Equal(t, "payload-data-here", string(e.Payload))
		count++
		return true
	}))
	require.Equal(t, 20, count)
}

// TestScenario4_CorruptionRecovery matches end-to-end scenario 4.
func TestScenario4_CorruptionRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "container.bccidx")

	w, err := NewWriter(path, WithBlockSize(64), WithIndexInterval(1000))
	require.NoError(t, err)

	for x := int64(0); x < 2000; x += 2 {
		require.NoError(t, w.Insert(Entry{ID: mustId(t, x, 0, 0), Payload: []byte{byte(x), byte(x >> 8)}}))
	}
	require.NoError(t, w.Finalize())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	// Flip a byte well inside the file's data region, simulating
	// scenario 4's "flip one byte inside a block's payload".
	flipOffset := len(raw) / 2
	raw[flipOffset] ^= 0xFF
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	issues, err := Validate(path)
	require.NoError(t, err)
	require.NotEmpty(t, issues)

	recoveredPath := filepath.Join(t.TempDir(), "recovered.bccidx")
	stats, err := Recover(path, recoveredPath)
	require.NoError(t, err)
	require.Greater(t, stats.BlocksDropped, 0)
	require.Greater(t, stats.BlocksKept, 0)

	r, err := Open(recoveredPath)
	require.NoError(t, err)
	defer r.Close()

	count := 0
	require.NoError(t, r.Iter(func(e Entry) bool {
		count++
		return true
	}))
	require.Equal(t, stats.EntriesKept, count)
	require.Less(t, count, 1000)
}

func TestOpen_RejectsUnknownMajorVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "container.bccidx")

	w, err := NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Finalize())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	raw[8] = 99 // version_major
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	_, err = Open(path)
	require.ErrorIs(t, err, errs.ErrUnsupportedVersion)
}

func TestOpen_ToleratesTruncatedTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "container.bccidx")

	w, err := NewWriter(path, WithBlockSize(64), WithIndexInterval(1000))
	require.NoError(t, err)
	for x := int64(0); x < 200; x += 2 {
		require.NoError(t, w.Insert(Entry{ID: mustId(t, x, 0, 0), Payload: []byte{byte(x)}}))
	}
	require.NoError(t, w.Finalize())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	truncated := raw[:len(raw)-10]
	require.NoError(t, os.WriteFile(path, truncated, 0o644))

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	count := 0
	require.NoError(t, r.Iter(func(e Entry) bool {
		count++
		return true
	}))
	require.Greater(t, count, 0)
}

func TestZeroEntryContainer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bccidx")

	w, err := NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Finalize())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()
	require.Equal(t, 0, r.NumBlocks())

	_, ok, err := r.Get(mustId(t, 0, 0, 0))
	require.NoError(t, err)
	require.False(t, ok)
}
