package perfecttree

import (
	"fmt"
	"time"

	"github.com/PlakarLabs/hoard/load"
	"github.com/PlakarLabs/hoard/profiler"
)

// value returns the leaf value, reading it if the leaf is clean.
func (t *Tree[T]) value(z *Zone[T]) (T, error) {
	if v, ok := t.leaf.TryDirty(); ok {
		return *v, nil
	}
	off, ok := t.leaf.TryClean()
	if !ok {
		panic("perfecttree: leaf has no value")
	}

	t0 := time.Now()
	defer profiler.Since("perfecttree.LoadValue", t0)

	mv, err := load.Blob[T](z.store, off, z.codec)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("perfecttree: leaf value: %w", err)
	}
	z.logger.Trace("load", "value %s", off)
	return mv.Trust(), nil
}

// loadPair returns the children of a tip. Dirty pairs are returned in
// place; clean ones are read from the pile into a fresh Pair.
func (t *Tree[T]) loadPair(z *Zone[T]) (*Pair[T], error) {
	if p, ok := t.pair.TryDirty(); ok {
		return p, nil
	}
	h, ok := t.height.NonZero()
	if !ok {
		panic("perfecttree: leaf has no pair")
	}
	off, ok := t.pair.TryClean()
	if !ok {
		panic("perfecttree: tip has no pair")
	}

	t0 := time.Now()
	defer profiler.Since("perfecttree.LoadPair", t0)

	mv, err := load.DynBlob[Pair[T]](z.store, off, PairCodec[T]{}, h)
	if err != nil {
		return nil, fmt.Errorf("perfecttree: pair of height %d: %w", h, err)
	}
	z.logger.Trace("load", "pair %s %s", h, off)
	p := mv.Trust()
	p.left.hashedWith = z.hasher.Algorithm()
	p.right.hashedWith = z.hasher.Algorithm()
	return &p, nil
}

// takePair is loadPair for a tree being consumed.
func (t *Tree[T]) takePair(z *Zone[T]) (*Pair[T], error) {
	if p, ok := t.pair.TryDirty(); ok {
		t.pair.Release()
		return p, nil
	}
	return t.loadPair(z)
}

// Get returns the leaf at idx, counting from the left. It reports false
// when idx is not below Len.
func (t *Tree[T]) Get(z *Zone[T], idx uint64) (T, bool, error) {
	var zero T
	if idx >= t.Len() {
		return zero, false, nil
	}

	cur := t
	for cur.height != 0 {
		p, err := cur.loadPair(z)
		if err != nil {
			return zero, false, err
		}
		half := cur.Len() / 2
		if idx < half {
			cur = &p.left
		} else {
			cur = &p.right
			idx -= half
		}
	}
	v, err := cur.value(z)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

// Get on a pair indexes across both children.
func (p *Pair[T]) Get(z *Zone[T], idx uint64) (T, bool, error) {
	var zero T
	if idx >= p.Len() {
		return zero, false, nil
	}
	half := p.Len() / 2
	if idx < half {
		return p.left.Get(z, idx)
	}
	return p.right.Get(z, idx-half)
}

// IntoGet is Get for a tree the caller is done with: t is consumed and
// left zero, and branches not on the path to idx are dropped on the way
// down.
func (t *Tree[T]) IntoGet(z *Zone[T], idx uint64) (T, bool, error) {
	var zero T
	cur := *t
	*t = Tree[T]{}

	if idx >= cur.Len() {
		return zero, false, nil
	}
	for cur.height != 0 {
		p, err := cur.takePair(z)
		if err != nil {
			return zero, false, err
		}
		half := cur.Len() / 2
		left, right := p.Split()
		if idx < half {
			cur = left
		} else {
			cur = right
			idx -= half
		}
	}
	if v, ok := cur.leaf.TryDirty(); ok {
		cur.leaf.Release()
		return *v, true, nil
	}
	v, err := cur.value(z)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

// Split consumes a tip and returns its two children.
func (t *Tree[T]) Split(z *Zone[T]) (Tree[T], Tree[T], error) {
	if t.height == 0 {
		return Tree[T]{}, Tree[T]{}, ErrNotTip
	}
	p, err := t.takePair(z)
	if err != nil {
		return Tree[T]{}, Tree[T]{}, err
	}
	*t = Tree[T]{}
	left, right := p.Split()
	return left, right, nil
}

// Walk calls fn on every leaf in order and stops at the first error.
func (t *Tree[T]) Walk(z *Zone[T], fn func(idx uint64, v T) error) error {
	return t.walk(z, 0, fn)
}

func (t *Tree[T]) walk(z *Zone[T], base uint64, fn func(idx uint64, v T) error) error {
	if t.height == 0 {
		v, err := t.value(z)
		if err != nil {
			return err
		}
		return fn(base, v)
	}
	p, err := t.loadPair(z)
	if err != nil {
		return err
	}
	if err := p.left.walk(z, base, fn); err != nil {
		return err
	}
	return p.right.walk(z, base+t.Len()/2, fn)
}
