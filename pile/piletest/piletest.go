// Package piletest checks that a pile.Store behaves like an append-only
// pile.
package piletest

import (
	"bytes"
	"testing"

	"github.com/PlakarLabs/hoard/pile"
	"github.com/PlakarLabs/hoard/ptr"
	"github.com/stretchr/testify/require"
)

// Opener opens the same pile again after it was closed.
type Opener func(t *testing.T) pile.Store

func Run(t *testing.T, open Opener) {
	t.Run("AppendRead", func(t *testing.T) { testAppendRead(t, open(t)) })
	t.Run("OutOfRange", func(t *testing.T) { testOutOfRange(t, open(t)) })
	t.Run("Spanning", func(t *testing.T) { testSpanning(t, open(t)) })
	t.Run("Closed", func(t *testing.T) { testClosed(t, open(t)) })
}

// RunReopen checks persistence for backends that keep data across opens.
func RunReopen(t *testing.T, open Opener) {
	store := open(t)
	_, err := store.Append([]byte("hello"))
	require.NoError(t, err)
	_, err = store.Append([]byte(", world"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store = open(t)
	defer store.Close()
	require.Equal(t, uint64(12), store.Size())

	off, err := store.Append([]byte("!"))
	require.NoError(t, err)
	require.Equal(t, uint64(12), off.Get())

	buf, err := store.Read(ptr.MustOffset(0), 13)
	require.NoError(t, err)
	require.Equal(t, "hello, world!", string(buf))
}

func testAppendRead(t *testing.T, store pile.Store) {
	defer store.Close()
	require.Equal(t, uint64(0), store.Size())

	off, err := store.Append([]byte{0})
	require.NoError(t, err)
	require.Equal(t, uint64(0), off.Get())

	off, err = store.Append([]byte{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, uint64(1), off.Get())

	off, err = store.Append(nil)
	require.NoError(t, err)
	require.Equal(t, uint64(4), off.Get())
	require.Equal(t, uint64(4), store.Size())

	buf, err := store.Read(ptr.MustOffset(1), 3)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, buf)

	buf, err = store.Read(ptr.MustOffset(2), 1)
	require.NoError(t, err)
	require.Equal(t, []byte{2}, buf)

	buf, err = store.Read(ptr.MustOffset(4), 0)
	require.NoError(t, err)
	require.Empty(t, buf)
}

func testOutOfRange(t *testing.T, store pile.Store) {
	defer store.Close()
	_, err := store.Append([]byte{1, 2})
	require.NoError(t, err)

	_, err = store.Read(ptr.MustOffset(1), 2)
	require.ErrorIs(t, err, pile.ErrOutOfRange)

	_, err = store.Read(ptr.MustOffset(100), 1)
	require.ErrorIs(t, err, pile.ErrOutOfRange)

	_, err = store.Read(ptr.Offset{}, 1)
	require.ErrorIs(t, err, pile.ErrOutOfRange)
}

func testSpanning(t *testing.T, store pile.Store) {
	defer store.Close()
	var want []byte
	for i := 0; i < 10; i++ {
		chunk := bytes.Repeat([]byte{byte(i)}, i+1)
		_, err := store.Append(chunk)
		require.NoError(t, err)
		want = append(want, chunk...)
	}

	buf, err := store.Read(ptr.MustOffset(0), len(want))
	require.NoError(t, err)
	require.Equal(t, want, buf)

	buf, err = store.Read(ptr.MustOffset(2), 10)
	require.NoError(t, err)
	require.Equal(t, want[2:12], buf)
}

func testClosed(t *testing.T, store pile.Store) {
	_, err := store.Append([]byte{1})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = store.Append([]byte{2})
	require.ErrorIs(t, err, pile.ErrClosed)
	_, err = store.Read(ptr.MustOffset(0), 1)
	require.ErrorIs(t, err, pile.ErrClosed)
}
