package blob

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUintLittleEndian(t *testing.T) {
	require.Equal(t, []byte{0x34, 0x12}, Encode[uint16](Uint16{}, 0x1234))
	require.Equal(t, []byte{0x78, 0x56, 0x34, 0x12}, Encode[uint32](Uint32{}, 0x12345678))
	require.Equal(t, []byte{8, 7, 6, 5, 4, 3, 2, 1}, Encode[uint64](Uint64{}, 0x0102030405060708))

	v, err := Decode[uint64](Uint64{}, []byte{8, 7, 6, 5, 4, 3, 2, 1})
	require.NoError(t, err)
	require.Equal(t, uint64(0x0102030405060708), v)
}

func TestTruncated(t *testing.T) {
	_, err := Decode[uint32](Uint32{}, []byte{1, 2, 3})
	require.ErrorIs(t, err, ErrLength)

	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, KindLength, kind)
}

func TestBool(t *testing.T) {
	v, err := Decode[bool](Bool{}, []byte{1})
	require.NoError(t, err)
	require.True(t, v)

	_, err = Decode[bool](Bool{}, []byte{2})
	require.ErrorIs(t, err, ErrDiscriminant)
	require.False(t, errors.Is(err, ErrLength))
}

func TestOption(t *testing.T) {
	codec := Option[uint16]{Inner: Uint16{}}
	require.Equal(t, 3, codec.Size())

	x := uint16(7)
	require.Equal(t, []byte{1, 7, 0}, Encode[*uint16](codec, &x))
	require.Equal(t, []byte{0, 0, 0}, Encode[*uint16](codec, nil))

	got, err := Decode[*uint16](codec, []byte{1, 7, 0})
	require.NoError(t, err)
	require.Equal(t, uint16(7), *got)

	got, err = Decode[*uint16](codec, []byte{0, 0, 0})
	require.NoError(t, err)
	require.Nil(t, got)

	_, err = Decode[*uint16](codec, []byte{2, 0, 0})
	require.ErrorIs(t, err, ErrDiscriminant)

	_, err = Decode[*uint16](codec, []byte{0, 1, 0})
	require.ErrorIs(t, err, ErrDiscriminant)
}

type point struct {
	x uint8
	y uint32
}

type pointCodec struct{}

func (pointCodec) Size() int { return 5 }

func (pointCodec) Encode(dst []byte, p point) {
	w := NewWriter(dst)
	Put[uint8](w, Uint8{}, p.x)
	Put[uint32](w, Uint32{}, p.y)
	w.Done()
}

func (pointCodec) Decode(src []byte) (MaybeValid[point], error) {
	f := NewFields(src)
	x, err := Field[uint8](f, "x", Uint8{})
	if err != nil {
		return MaybeValid[point]{}, err
	}
	y, err := Field[uint32](f, "y", Uint32{})
	if err != nil {
		return MaybeValid[point]{}, err
	}
	if err := f.Done(); err != nil {
		return MaybeValid[point]{}, err
	}
	return Assume(point{x: x.Trust(), y: y.Trust()}), nil
}

func TestFields(t *testing.T) {
	buf := Encode[point](pointCodec{}, point{x: 1, y: 2})
	require.Equal(t, []byte{1, 2, 0, 0, 0}, buf)

	p, err := Decode[point](pointCodec{}, buf)
	require.NoError(t, err)
	require.Equal(t, point{x: 1, y: 2}, p)

	_, err = Decode[point](pointCodec{}, buf[:3])
	require.ErrorIs(t, err, ErrLength)

	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
	require.Equal(t, "y", derr.Field())

	_, err = Decode[point](pointCodec{}, append(buf, 0))
	require.ErrorIs(t, err, ErrLength)
}

func TestInFieldNests(t *testing.T) {
	err := InField("left", InField("offset", Errorf(KindPointer, "raw %d", 2)))
	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
	require.Equal(t, []string{"left", "offset"}, derr.Path)
	require.ErrorIs(t, err, ErrPointer)
	require.Equal(t, "blob: invalid pointer at left.offset: raw 2", err.Error())
}
