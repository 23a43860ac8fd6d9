// Package blob defines how values are laid out as fixed-size byte blobs
// and how untrusted blobs are checked before being turned back into values.
//
// Decoding is split in two. Decode checks the bytes of the blob itself and
// returns a MaybeValid; anything the value points to out of line has not
// been looked at yet and is checked when it is dereferenced. Trust hands
// out the value once the caller accepts that contract.
package blob

// Codec encodes values of T into blobs of a constant size.
type Codec[T any] interface {
	Size() int
	Encode(dst []byte, v T)
	Decode(src []byte) (MaybeValid[T], error)
}

// DynCodec is a Codec whose blob size is a function of metadata carried
// next to the pointer rather than inside the blob.
type DynCodec[T any, M any] interface {
	Size(m M) int
	Encode(dst []byte, m M, v T)
	Decode(src []byte, m M) (MaybeValid[T], error)
}

// MaybeValid wraps a value whose own blob validated but whose children
// have not.
type MaybeValid[T any] struct {
	value T
}

func Assume[T any](v T) MaybeValid[T] {
	return MaybeValid[T]{value: v}
}

// Trust returns the wrapped value.
func (m MaybeValid[T]) Trust() T {
	return m.value
}

func Encode[T any](c Codec[T], v T) []byte {
	buf := make([]byte, c.Size())
	c.Encode(buf, v)
	return buf
}

func EncodeDyn[T any, M any](c DynCodec[T, M], m M, v T) []byte {
	buf := make([]byte, c.Size(m))
	c.Encode(buf, m, v)
	return buf
}

// Decode validates src with c and trusts the result.
func Decode[T any](c Codec[T], src []byte) (T, error) {
	mv, err := c.Decode(src)
	if err != nil {
		var zero T
		return zero, err
	}
	return mv.Trust(), nil
}

// CheckSize reports a length error unless src is exactly want bytes.
func CheckSize(src []byte, want int) error {
	if len(src) != want {
		return Errorf(KindLength, "expected %d bytes, got %d", want, len(src))
	}
	return nil
}
