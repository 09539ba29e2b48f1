package bcc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bcc3d/bcc/compress"
	"github.com/bcc3d/bcc/container/sequential"
	"github.com/bcc3d/bcc/frame"
)

// TestNewID verifies the top-level constructor matches ident.Id64FromCoords.
func TestNewID(t *testing.T) {
	id, err := NewID(2, 4, 6, 0, frame.NoFrame, 0, 0)
	require.NoError(t, err)

	x, y, z := id.Coords()
	require.Equal(t, int64(2), x)
	require.Equal(t, int64(4), y)
	require.Equal(t, int64(6), z)
}

// TestNewMemoryIndex verifies the in-memory wrapper round-trips an entry.
func TestNewMemoryIndex(t *testing.T) {
	idx := NewMemoryIndex[string]()

	id, err := NewID(0, 0, 0, 0, frame.NoFrame, 0, 0)
	require.NoError(t, err)

	idx.Insert(id, "origin")

	got, ok := idx.Get(id)
	require.True(t, ok)
	require.Equal(t, "origin", got)
}

// TestCreateAndOpenSequential verifies the top-level wrappers drive a
// full write/finalize/open/get round trip.
func TestCreateAndOpenSequential(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cells.bcc")

	w, err := CreateSequential(path, WithBlockSize(256))
	require.NoError(t, err)

	id, err := NewID(2, 4, 6, 0, frame.NoFrame, 0, 0)
	require.NoError(t, err)

	require.NoError(t, w.Insert(sequential.Entry{ID: id, Payload: []byte("payload")}))
	require.NoError(t, w.Finalize())

	r, err := OpenSequential(path)
	require.NoError(t, err)
	defer r.Close()

	payload, ok, err := r.Get(id)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("payload"), payload)
}

// TestCreateStream verifies the streaming wrapper produces a readable file.
func TestCreateStream(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stream.bcc")

	w, err := CreateStream(path, compress.AlgoNone)
	require.NoError(t, err)
	require.NoError(t, w.Terminate(0))

	_, statErr := os.Stat(path)
	require.NoError(t, statErr)
}
