package ptr

import (
	"testing"

	"github.com/PlakarLabs/hoard/blob"
	"github.com/stretchr/testify/require"
)

func TestOffsetRange(t *testing.T) {
	o, ok := NewOffset(0)
	require.True(t, ok)
	require.Equal(t, uint64(1), o.Raw())
	require.Equal(t, uint64(0), o.Get())

	o, ok = NewOffset(MaxOffset)
	require.True(t, ok)
	require.Equal(t, MaxOffset, o.Get())

	_, ok = NewOffset(MaxOffset + 1)
	require.False(t, ok)
	_, ok = NewOffset(1 << 63)
	require.False(t, ok)

	require.Panics(t, func() { MustOffset(1 << 62) })
}

func TestOffsetCodec(t *testing.T) {
	buf := blob.Encode[Offset](OffsetCodec{}, MustOffset(82))
	require.Equal(t, []byte{165, 0, 0, 0, 0, 0, 0, 0}, buf)

	o, err := blob.Decode[Offset](OffsetCodec{}, buf)
	require.NoError(t, err)
	require.Equal(t, uint64(82), o.Get())

	_, err = blob.Decode[Offset](OffsetCodec{}, []byte{164, 0, 0, 0, 0, 0, 0, 0})
	require.ErrorIs(t, err, blob.ErrPointer)

	_, err = blob.Decode[Offset](OffsetCodec{}, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	require.ErrorIs(t, err, blob.ErrPointer)

	_, err = blob.Decode[Offset](OffsetCodec{}, []byte{1, 0, 0})
	require.ErrorIs(t, err, blob.ErrLength)
}

func TestClassify(t *testing.T) {
	require.Equal(t, KindOffset, Classify(1))
	require.Equal(t, KindHeap, Classify(0))
	require.Equal(t, KindHeap, Classify(0x1000))
}

func TestOwn(t *testing.T) {
	p := Dirty(uint8(42))
	require.Equal(t, KindHeap, p.Kind())
	v, ok := p.TryDirty()
	require.True(t, ok)
	require.Equal(t, uint8(42), *v)
	_, ok = p.TryClean()
	require.False(t, ok)

	p.MarkClean(MustOffset(3))
	require.Equal(t, KindOffset, p.Kind())
	o, ok := p.TryClean()
	require.True(t, ok)
	require.Equal(t, uint64(3), o.Get())
	_, ok = p.TryDirty()
	require.False(t, ok)

	q := p.Take()
	require.True(t, p.IsZero())
	require.False(t, q.IsZero())

	q.Release()
	require.True(t, q.IsZero())

	require.Panics(t, func() { Clean[uint8](Offset{}) })
}
