package pile_test

import (
	"bytes"
	"testing"

	"github.com/PlakarLabs/hoard/pile"
	"github.com/PlakarLabs/hoard/pile/piletest"
	"github.com/PlakarLabs/hoard/ptr"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	piletest.Run(t, func(t *testing.T) pile.Store {
		return pile.NewMemory()
	})
}

func TestMemoryBytes(t *testing.T) {
	m := pile.NewMemory()
	_, err := m.Append([]byte{1, 2})
	require.NoError(t, err)
	view, err := m.Read(ptr.MustOffset(0), 2)
	require.NoError(t, err)

	_, err = m.Append(bytes.Repeat([]byte{9}, 1024))
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2}, view)
	require.Len(t, m.Bytes(), 1026)
}

func TestNextOffset(t *testing.T) {
	off, err := pile.NextOffset(10, 5)
	require.NoError(t, err)
	require.Equal(t, uint64(10), off.Get())

	_, err = pile.NextOffset(ptr.MaxOffset, 1)
	require.NoError(t, err)
	_, err = pile.NextOffset(ptr.MaxOffset, 2)
	require.ErrorIs(t, err, pile.ErrFull)
	_, err = pile.NextOffset(ptr.MaxOffset+1, 0)
	require.ErrorIs(t, err, pile.ErrFull)
}

func TestOpen(t *testing.T) {
	require.Contains(t, pile.Backends(), "mem")

	store, err := pile.Open("mem://")
	require.NoError(t, err)
	defer store.Close()
	_, ok := store.(*pile.Memory)
	require.True(t, ok)

	_, err = pile.Open("nosuch://x")
	require.Error(t, err)
}

func TestReadSegmentsCorrupt(t *testing.T) {
	segs := []pile.Segment{{Start: 0, Data: []byte{1, 2}}, {Start: 3, Data: []byte{4}}}
	floor := func(off uint64) (pile.Segment, error) {
		var ret pile.Segment
		for _, s := range segs {
			if s.Start <= off {
				ret = s
			}
		}
		return ret, nil
	}

	buf, err := pile.ReadSegments(floor, ptr.MustOffset(0), 2, 4)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2}, buf)

	_, err = pile.ReadSegments(floor, ptr.MustOffset(1), 3, 4)
	require.ErrorIs(t, err, pile.ErrCorrupt)
}

func TestCachedStore(t *testing.T) {
	mem := pile.NewMemory()
	cached, err := pile.NewCachedStore(mem, 2)
	require.NoError(t, err)

	off, err := cached.Append([]byte{1, 2, 3})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		buf, err := cached.Read(off, 3)
		require.NoError(t, err)
		require.Equal(t, []byte{1, 2, 3}, buf)
	}
	hits, misses := cached.Stats()
	require.Equal(t, uint64(2), hits)
	require.Equal(t, uint64(1), misses)

	_, err = cached.Read(ptr.MustOffset(2), 5)
	require.ErrorIs(t, err, pile.ErrOutOfRange)

	_, err = pile.NewCachedStore(mem, 0)
	require.Error(t, err)
}

func TestExportImport(t *testing.T) {
	for _, method := range []string{"lz4", "gzip"} {
		t.Run(method, func(t *testing.T) {
			src := pile.NewMemory()
			for i := 0; i < 100; i++ {
				_, err := src.Append(bytes.Repeat([]byte{byte(i)}, 97))
				require.NoError(t, err)
			}

			var out bytes.Buffer
			_, err := pile.Export(src, &out, method)
			require.NoError(t, err)

			dst := pile.NewMemory()
			n, err := pile.Import(&out, method, dst)
			require.NoError(t, err)
			require.Equal(t, src.Size(), n)
			require.Equal(t, src.Bytes(), dst.Bytes())

			_, err = pile.Import(bytes.NewReader(nil), method, dst)
			require.ErrorIs(t, err, pile.ErrNotEmpty)
		})
	}
}
