package section

import (
	"testing"

	"github.com/bcc3d/bcc/errs"
	"github.com/stretchr/testify/require"
)

func TestIndexEntry_RoundTrip(t *testing.T) {
	e := IndexEntry{
		FirstMorton: 1 << 40,
		FileOffset:  65536,
		BlockLength: 4096,
		NumEntries:  250,
	}

	buf := e.Encode()
	require.Len(t, buf, IndexEntrySize)

	got, err := DecodeIndexEntry(buf)
	require.NoError(t, err)
	require.Equal(t, e, got)
}

func TestIndexEntries_RoundTrip(t *testing.T) {
	entries := []IndexEntry{
		{FirstMorton: 0, FileOffset: 64, BlockLength: 128, NumEntries: 10},
		{FirstMorton: 500, FileOffset: 192, BlockLength: 256, NumEntries: 20},
		{FirstMorton: 1200, FileOffset: 448, BlockLength: 64, NumEntries: 3},
	}

	buf := EncodeIndexEntries(entries)
	require.Len(t, buf, len(entries)*IndexEntrySize)

	got, err := DecodeIndexEntries(buf)
	require.NoError(t, err)
	require.Equal(t, entries, got)
}

func TestDecodeIndexEntries_MisalignedLength(t *testing.T) {
	_, err := DecodeIndexEntries(make([]byte, IndexEntrySize+1))
	require.ErrorIs(t, err, errs.ErrTruncatedBlock)
}

func TestDecodeIndexEntry_Truncated(t *testing.T) {
	_, err := DecodeIndexEntry(make([]byte, 3))
	require.ErrorIs(t, err, errs.ErrTruncatedBlock)
}
