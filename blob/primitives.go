package blob

import "encoding/binary"

type Uint8 struct{}

func (Uint8) Size() int                  { return 1 }
func (Uint8) Encode(dst []byte, v uint8) { dst[0] = v }
func (Uint8) Decode(src []byte) (MaybeValid[uint8], error) {
	if err := CheckSize(src, 1); err != nil {
		return MaybeValid[uint8]{}, err
	}
	return Assume(src[0]), nil
}

type Uint16 struct{}

func (Uint16) Size() int                   { return 2 }
func (Uint16) Encode(dst []byte, v uint16) { binary.LittleEndian.PutUint16(dst, v) }
func (Uint16) Decode(src []byte) (MaybeValid[uint16], error) {
	if err := CheckSize(src, 2); err != nil {
		return MaybeValid[uint16]{}, err
	}
	return Assume(binary.LittleEndian.Uint16(src)), nil
}

type Uint32 struct{}

func (Uint32) Size() int                   { return 4 }
func (Uint32) Encode(dst []byte, v uint32) { binary.LittleEndian.PutUint32(dst, v) }
func (Uint32) Decode(src []byte) (MaybeValid[uint32], error) {
	if err := CheckSize(src, 4); err != nil {
		return MaybeValid[uint32]{}, err
	}
	return Assume(binary.LittleEndian.Uint32(src)), nil
}

type Uint64 struct{}

func (Uint64) Size() int                   { return 8 }
func (Uint64) Encode(dst []byte, v uint64) { binary.LittleEndian.PutUint64(dst, v) }
func (Uint64) Decode(src []byte) (MaybeValid[uint64], error) {
	if err := CheckSize(src, 8); err != nil {
		return MaybeValid[uint64]{}, err
	}
	return Assume(binary.LittleEndian.Uint64(src)), nil
}

// Bool is a single byte that must be 0 or 1.
type Bool struct{}

func (Bool) Size() int { return 1 }

func (Bool) Encode(dst []byte, v bool) {
	dst[0] = 0
	if v {
		dst[0] = 1
	}
}

func (Bool) Decode(src []byte) (MaybeValid[bool], error) {
	if err := CheckSize(src, 1); err != nil {
		return MaybeValid[bool]{}, err
	}
	switch src[0] {
	case 0:
		return Assume(false), nil
	case 1:
		return Assume(true), nil
	default:
		return MaybeValid[bool]{}, Errorf(KindDiscriminant, "bool byte %#02x", src[0])
	}
}

// Bytes32 is an opaque 32 byte array; every bit pattern is valid.
type Bytes32 struct{}

func (Bytes32) Size() int                     { return 32 }
func (Bytes32) Encode(dst []byte, v [32]byte) { copy(dst, v[:]) }
func (Bytes32) Decode(src []byte) (MaybeValid[[32]byte], error) {
	var v [32]byte
	if err := CheckSize(src, 32); err != nil {
		return MaybeValid[[32]byte]{}, err
	}
	copy(v[:], src)
	return Assume(v), nil
}

// Option encodes a nil-able value as a tag byte followed by the inner
// blob. An absent value is written as zeroes and must read back as zeroes.
type Option[T any] struct {
	Inner Codec[T]
}

func (o Option[T]) Size() int { return 1 + o.Inner.Size() }

func (o Option[T]) Encode(dst []byte, v *T) {
	if v == nil {
		clear(dst)
		return
	}
	dst[0] = 1
	o.Inner.Encode(dst[1:], *v)
}

func (o Option[T]) Decode(src []byte) (MaybeValid[*T], error) {
	if err := CheckSize(src, o.Size()); err != nil {
		return MaybeValid[*T]{}, err
	}
	switch src[0] {
	case 0:
		for _, b := range src[1:] {
			if b != 0 {
				return MaybeValid[*T]{}, Errorf(KindDiscriminant, "non-zero padding in absent option")
			}
		}
		return Assume[*T](nil), nil
	case 1:
		mv, err := o.Inner.Decode(src[1:])
		if err != nil {
			return MaybeValid[*T]{}, InField("some", err)
		}
		v := mv.Trust()
		return Assume(&v), nil
	default:
		return MaybeValid[*T]{}, Errorf(KindDiscriminant, "option tag %#02x", src[0])
	}
}
