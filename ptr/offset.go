package ptr

import (
	"encoding/binary"
	"fmt"

	"github.com/PlakarLabs/hoard/blob"
)

// MaxOffset is the largest offset representable once shifted into the
// tagged on-disk word.
const MaxOffset uint64 = 1<<62 - 1

// Offset is a position in a pile. It is kept in its tagged form,
// (offset << 1) | 1, so the zero value means "no offset".
type Offset struct {
	raw uint64
}

func NewOffset(o uint64) (Offset, bool) {
	if o > MaxOffset {
		return Offset{}, false
	}
	return Offset{raw: o<<1 | 1}, true
}

func MustOffset(o uint64) Offset {
	off, ok := NewOffset(o)
	if !ok {
		panic(fmt.Sprintf("ptr: offset %d out of range", o))
	}
	return off
}

// OffsetFromRaw validates a tagged word read from a blob.
func OffsetFromRaw(raw uint64) (Offset, error) {
	if Classify(raw) != KindOffset {
		return Offset{}, blob.Errorf(blob.KindPointer, "raw word %#x is not an offset", raw)
	}
	if raw>>1 > MaxOffset {
		return Offset{}, blob.Errorf(blob.KindPointer, "offset %d out of range", raw>>1)
	}
	return Offset{raw: raw}, nil
}

func (o Offset) Get() uint64 {
	return o.raw >> 1
}

func (o Offset) Raw() uint64 {
	return o.raw
}

func (o Offset) IsValid() bool {
	return o.raw&1 == 1
}

func (o Offset) String() string {
	if !o.IsValid() {
		return "@none"
	}
	return fmt.Sprintf("@%d", o.Get())
}

// Kind tells clean pointers from dirty ones.
type Kind int

const (
	KindOffset Kind = iota
	KindHeap
)

func (k Kind) String() string {
	if k == KindOffset {
		return "offset"
	}
	return "heap"
}

// Classify looks at the tag bit of a raw pointer word.
func Classify(raw uint64) Kind {
	if raw&1 == 1 {
		return KindOffset
	}
	return KindHeap
}

type OffsetCodec struct{}

func (OffsetCodec) Size() int { return 8 }

func (OffsetCodec) Encode(dst []byte, o Offset) {
	if !o.IsValid() {
		panic("ptr: encoding an unset offset")
	}
	binary.LittleEndian.PutUint64(dst, o.raw)
}

func (OffsetCodec) Decode(src []byte) (blob.MaybeValid[Offset], error) {
	if err := blob.CheckSize(src, 8); err != nil {
		return blob.MaybeValid[Offset]{}, err
	}
	o, err := OffsetFromRaw(binary.LittleEndian.Uint64(src))
	if err != nil {
		return blob.MaybeValid[Offset]{}, err
	}
	return blob.Assume(o), nil
}
