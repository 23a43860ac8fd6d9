package blob

// Writer lays fields out back to back into a destination buffer.
type Writer struct {
	dst []byte
	off int
}

func NewWriter(dst []byte) *Writer {
	return &Writer{dst: dst}
}

func Put[T any](w *Writer, c Codec[T], v T) *Writer {
	n := c.Size()
	c.Encode(w.dst[w.off:w.off+n], v)
	w.off += n
	return w
}

// Done panics unless every byte of the destination was written.
func (w *Writer) Done() {
	if w.off != len(w.dst) {
		panic("blob: writer finished with unwritten bytes")
	}
}

// Fields reads fields back to back out of a source blob.
type Fields struct {
	src []byte
	off int
}

func NewFields(src []byte) *Fields {
	return &Fields{src: src}
}

// Field decodes the next field and names it in any error.
func Field[T any](f *Fields, name string, c Codec[T]) (MaybeValid[T], error) {
	n := c.Size()
	if len(f.src)-f.off < n {
		return MaybeValid[T]{}, InField(name, Errorf(KindLength, "need %d bytes, have %d", n, len(f.src)-f.off))
	}
	mv, err := c.Decode(f.src[f.off : f.off+n])
	f.off += n
	if err != nil {
		return MaybeValid[T]{}, InField(name, err)
	}
	return mv, nil
}

// Done reports a length error if bytes remain unread.
func (f *Fields) Done() error {
	if f.off != len(f.src) {
		return Errorf(KindLength, "%d trailing bytes", len(f.src)-f.off)
	}
	return nil
}
