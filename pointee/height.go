package pointee

import (
	"fmt"

	"github.com/PlakarLabs/hoard/blob"
)

const MaxHeight = 63

// Height of a perfect tree: 0 for a single leaf, at most MaxHeight.
type Height uint8

// NonZeroHeight is a Height of at least 1, the height of a tip or pair.
type NonZeroHeight uint8

func NewHeight(h uint8) (Height, bool) {
	if h > MaxHeight {
		return 0, false
	}
	return Height(h), true
}

func NewNonZeroHeight(h uint8) (NonZeroHeight, bool) {
	if h == 0 || h > MaxHeight {
		return 0, false
	}
	return NonZeroHeight(h), true
}

// Len is the number of leaves below a tree of this height.
func (h Height) Len() uint64 {
	return 1 << h
}

func (h Height) IsZero() bool {
	return h == 0
}

// NonZero narrows h, failing for leaves.
func (h Height) NonZero() (NonZeroHeight, bool) {
	return NewNonZeroHeight(uint8(h))
}

// TryIncrement returns the height of a pair of trees of height h.
func (h Height) TryIncrement() (NonZeroHeight, bool) {
	if h >= MaxHeight {
		return 0, false
	}
	return NonZeroHeight(h + 1), true
}

func (h Height) String() string {
	return fmt.Sprintf("h%d", uint8(h))
}

func (h NonZeroHeight) Height() Height {
	return Height(h)
}

// Decrement returns the height of either child of a pair of height h.
func (h NonZeroHeight) Decrement() Height {
	return Height(h - 1)
}

func (h NonZeroHeight) Len() uint64 {
	return 1 << h
}

func (h NonZeroHeight) String() string {
	return Height(h).String()
}

type HeightCodec struct{}

func (HeightCodec) Size() int                   { return 1 }
func (HeightCodec) Encode(dst []byte, h Height) { dst[0] = uint8(h) }

func (HeightCodec) Decode(src []byte) (blob.MaybeValid[Height], error) {
	if err := blob.CheckSize(src, 1); err != nil {
		return blob.MaybeValid[Height]{}, err
	}
	h, ok := NewHeight(src[0])
	if !ok {
		return blob.MaybeValid[Height]{}, blob.Errorf(blob.KindHeight, "height %d above %d", src[0], MaxHeight)
	}
	return blob.Assume(h), nil
}

type NonZeroHeightCodec struct{}

func (NonZeroHeightCodec) Size() int                          { return 1 }
func (NonZeroHeightCodec) Encode(dst []byte, h NonZeroHeight) { dst[0] = uint8(h) }

func (NonZeroHeightCodec) Decode(src []byte) (blob.MaybeValid[NonZeroHeight], error) {
	if err := blob.CheckSize(src, 1); err != nil {
		return blob.MaybeValid[NonZeroHeight]{}, err
	}
	h, ok := NewNonZeroHeight(src[0])
	if !ok {
		return blob.MaybeValid[NonZeroHeight]{}, blob.Errorf(blob.KindHeight, "height %d not in 1..%d", src[0], MaxHeight)
	}
	return blob.Assume(h), nil
}
