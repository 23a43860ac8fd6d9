package pointee

import (
	"testing"

	"github.com/PlakarLabs/hoard/blob"
	"github.com/stretchr/testify/require"
)

func TestHeightBounds(t *testing.T) {
	_, ok := NewHeight(63)
	require.True(t, ok)
	_, ok = NewHeight(64)
	require.False(t, ok)

	_, ok = NewNonZeroHeight(0)
	require.False(t, ok)
	_, ok = NewNonZeroHeight(1)
	require.True(t, ok)
	_, ok = NewNonZeroHeight(64)
	require.False(t, ok)
}

func TestHeightArithmetic(t *testing.T) {
	nz, ok := Height(0).TryIncrement()
	require.True(t, ok)
	require.Equal(t, NonZeroHeight(1), nz)
	require.Equal(t, Height(0), nz.Decrement())

	_, ok = Height(62).TryIncrement()
	require.True(t, ok)
	_, ok = Height(63).TryIncrement()
	require.False(t, ok)

	_, ok = Height(0).NonZero()
	require.False(t, ok)
}

func TestLen(t *testing.T) {
	require.Equal(t, uint64(1), Height(0).Len())
	require.Equal(t, uint64(2), NonZeroHeight(1).Len())
	require.Equal(t, uint64(1)<<63, Height(63).Len())
}

func TestHeightCodec(t *testing.T) {
	h, err := blob.Decode[Height](HeightCodec{}, []byte{63})
	require.NoError(t, err)
	require.Equal(t, Height(63), h)

	_, err = blob.Decode[Height](HeightCodec{}, []byte{64})
	require.ErrorIs(t, err, blob.ErrHeight)

	_, err = blob.Decode[NonZeroHeight](NonZeroHeightCodec{}, []byte{0})
	require.ErrorIs(t, err, blob.ErrHeight)

	_, err = blob.Decode[NonZeroHeight](NonZeroHeightCodec{}, []byte{})
	require.ErrorIs(t, err, blob.ErrLength)
}

func TestFat(t *testing.T) {
	f := MakeFat("blob", NonZeroHeight(3))
	require.Equal(t, "blob", f.Ptr)
	require.Equal(t, uint64(8), f.Meta.Len())
}
