// Package load reads blobs back out of a pile and validates them.
package load

import (
	"fmt"

	"github.com/PlakarLabs/hoard/blob"
	"github.com/PlakarLabs/hoard/ptr"
)

// Loader is the read half of a pile.
type Loader interface {
	Read(off ptr.Offset, n int) ([]byte, error)
}

// Blob reads the blob of c at off and checks it.
func Blob[T any](l Loader, off ptr.Offset, c blob.Codec[T]) (blob.MaybeValid[T], error) {
	buf, err := l.Read(off, c.Size())
	if err != nil {
		return blob.MaybeValid[T]{}, fmt.Errorf("load %s: %w", off, err)
	}
	mv, err := c.Decode(buf)
	if err != nil {
		return blob.MaybeValid[T]{}, fmt.Errorf("load %s: %w", off, err)
	}
	return mv, nil
}

// DynBlob is Blob for codecs sized by metadata.
func DynBlob[T any, M any](l Loader, off ptr.Offset, c blob.DynCodec[T, M], m M) (blob.MaybeValid[T], error) {
	buf, err := l.Read(off, c.Size(m))
	if err != nil {
		return blob.MaybeValid[T]{}, fmt.Errorf("load %s: %w", off, err)
	}
	mv, err := c.Decode(buf, m)
	if err != nil {
		return blob.MaybeValid[T]{}, fmt.Errorf("load %s: %w", off, err)
	}
	return mv, nil
}
