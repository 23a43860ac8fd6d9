package ptr

// Own is an owning pointer that is either clean, an offset of a blob
// already in the pile, or dirty, a value held in memory that has not been
// saved yet. The zero value is neither and must not be dereferenced.
type Own[T any] struct {
	offset Offset
	dirty  *T
}

func Dirty[T any](v T) Own[T] {
	return Own[T]{dirty: &v}
}

func Clean[T any](o Offset) Own[T] {
	if !o.IsValid() {
		panic("ptr: clean pointer without an offset")
	}
	return Own[T]{offset: o}
}

func (p Own[T]) Kind() Kind {
	if p.dirty != nil {
		return KindHeap
	}
	return KindOffset
}

func (p Own[T]) IsDirty() bool {
	return p.dirty != nil
}

func (p Own[T]) IsZero() bool {
	return p.dirty == nil && !p.offset.IsValid()
}

func (p Own[T]) TryDirty() (*T, bool) {
	return p.dirty, p.dirty != nil
}

func (p Own[T]) TryClean() (Offset, bool) {
	if p.dirty != nil || !p.offset.IsValid() {
		return Offset{}, false
	}
	return p.offset, true
}

// Take moves the pointer out, leaving p zero.
func (p *Own[T]) Take() Own[T] {
	ret := *p
	*p = Own[T]{}
	return ret
}

// MarkClean records that the dirty value now lives at o and releases it.
func (p *Own[T]) MarkClean(o Offset) {
	if !o.IsValid() {
		panic("ptr: clean pointer without an offset")
	}
	p.dirty = nil
	p.offset = o
}

// Release drops whatever p owns.
func (p *Own[T]) Release() {
	*p = Own[T]{}
}

func (p Own[T]) String() string {
	if p.dirty != nil {
		return "dirty"
	}
	return p.offset.String()
}
