// Package perfecttree implements a merkleized perfect binary tree whose
// nodes live either in memory or in an append-only pile.
//
// A tree of height h holds exactly 2^h leaves. Nodes built in memory are
// dirty; saving writes them out bottom-up and turns them clean in place.
// Loading a tree only reads its root, the rest is read on demand.
//
// Trees memoize digests and mutate themselves while saving, so a tree
// must not be used from several goroutines at once.
package perfecttree

import (
	"errors"
	"fmt"

	"github.com/PlakarLabs/hoard/commit"
	"github.com/PlakarLabs/hoard/pointee"
	"github.com/PlakarLabs/hoard/ptr"
)

var (
	ErrHeightMismatch = errors.New("trees have different heights")
	ErrHeightOverflow = errors.New("tree would exceed the maximum height")
	ErrNotTip         = errors.New("tree is a single leaf")
	ErrNotPowerOfTwo  = errors.New("leaf count is not a power of two")
)

type Tree[T any] struct {
	height pointee.Height
	digest *commit.Digest

	// algorithm digest was computed with; a digest memoized under
	// another algorithm is recomputed on use
	hashedWith string

	// exactly one of leaf and pair is set, depending on height
	leaf ptr.Own[T]
	pair ptr.Own[Pair[T]]

	// offset of the standalone tree blob once saved or loaded
	root ptr.Offset
}

// Pair holds two trees of equal height.
type Pair[T any] struct {
	left  Tree[T]
	right Tree[T]
}

// JoinError hands both operands of a failed TryJoin back to the caller.
type JoinError[T any] struct {
	Left  Tree[T]
	Right Tree[T]
	Err   error
}

func (e *JoinError[T]) Error() string {
	return fmt.Sprintf("perfecttree: cannot join %s with %s: %v", e.Left.height, e.Right.height, e.Err)
}

func (e *JoinError[T]) Unwrap() error {
	return e.Err
}

func NewLeaf[T any](v T) Tree[T] {
	return Tree[T]{leaf: ptr.Dirty(v)}
}

// TryJoin makes left and right the children of a new dirty tip.
func TryJoin[T any](left, right Tree[T]) (Tree[T], error) {
	if left.height != right.height {
		return Tree[T]{}, &JoinError[T]{Left: left, Right: right, Err: ErrHeightMismatch}
	}
	h, ok := left.height.TryIncrement()
	if !ok {
		return Tree[T]{}, &JoinError[T]{Left: left, Right: right, Err: ErrHeightOverflow}
	}
	left.root = ptr.Offset{}
	right.root = ptr.Offset{}
	return Tree[T]{
		height: h.Height(),
		pair:   ptr.Dirty(Pair[T]{left: left, right: right}),
	}, nil
}

// Build pairs values up level by level into a tree holding them in order.
func Build[T any](values []T) (Tree[T], error) {
	n := len(values)
	if n == 0 || n&(n-1) != 0 {
		return Tree[T]{}, fmt.Errorf("perfecttree: %d leaves: %w", n, ErrNotPowerOfTwo)
	}

	level := make([]Tree[T], n)
	for i, v := range values {
		level[i] = NewLeaf(v)
	}
	for len(level) > 1 {
		next := make([]Tree[T], 0, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			t, err := TryJoin(level[i], level[i+1])
			if err != nil {
				return Tree[T]{}, err
			}
			next = append(next, t)
		}
		level = next
	}
	return level[0], nil
}

func (t *Tree[T]) Height() pointee.Height {
	return t.height
}

func (t *Tree[T]) Metadata() pointee.Height {
	return t.height
}

// Len is the number of leaves, 2^height.
func (t *Tree[T]) Len() uint64 {
	return t.height.Len()
}

func (t *Tree[T]) IsLeaf() bool {
	return t.height == 0
}

// IsDirty reports whether the root node still lives only in memory.
func (t *Tree[T]) IsDirty() bool {
	if t.height == 0 {
		return t.leaf.IsDirty()
	}
	return t.pair.IsDirty()
}

// Digest returns the memoized digest, if any, without computing one.
func (t *Tree[T]) Digest() (commit.Digest, bool) {
	if t.digest == nil {
		return commit.Digest{}, false
	}
	return *t.digest, true
}

func (t *Tree[T]) cachedDigest(z *Zone[T]) (commit.Digest, bool) {
	if t.digest == nil || t.hashedWith != z.hasher.Algorithm() {
		return commit.Digest{}, false
	}
	return *t.digest, true
}

func (t *Tree[T]) setDigest(z *Zone[T], d commit.Digest) {
	t.digest = &d
	t.hashedWith = z.hasher.Algorithm()
}

// Offset returns where the tree blob was saved or loaded from.
func (t *Tree[T]) Offset() (ptr.Offset, bool) {
	return t.root, t.root.IsValid()
}

func (t *Tree[T]) Leaf() (Leaf[T], bool) {
	if t.height != 0 {
		return Leaf[T]{}, false
	}
	return Leaf[T]{tree: t}, true
}

func (t *Tree[T]) Tip() (Tip[T], bool) {
	h, ok := t.height.NonZero()
	if !ok {
		return Tip[T]{}, false
	}
	return Tip[T]{pointee.MakeFat(t, h)}, true
}

// offset of the root node's target when it is clean.
func (t *Tree[T]) nodeOffset() (ptr.Offset, bool) {
	if t.height == 0 {
		return t.leaf.TryClean()
	}
	return t.pair.TryClean()
}

func (t *Tree[T]) String() string {
	state := "dirty"
	if off, ok := t.nodeOffset(); ok {
		state = "clean" + off.String()
	}
	if t.digest != nil {
		return fmt.Sprintf("Tree(%s %s %s)", t.height, state, t.digest.String()[:16])
	}
	return fmt.Sprintf("Tree(%s %s)", t.height, state)
}

// Leaf is a view of a tree of height zero.
type Leaf[T any] struct {
	tree *Tree[T]
}

func (l Leaf[T]) Tree() *Tree[T] {
	return l.tree
}

func (l Leaf[T]) Get(z *Zone[T]) (T, error) {
	return l.tree.value(z)
}

func (l Leaf[T]) Commit(z *Zone[T]) (commit.Digest, error) {
	return l.tree.Commit(z)
}

// Tip is a view of a tree of height at least one, carrying its height as
// pointer metadata.
type Tip[T any] struct {
	pointee.Fat[*Tree[T], pointee.NonZeroHeight]
}

func (tip Tip[T]) Tree() *Tree[T] {
	return tip.Ptr
}

func (tip Tip[T]) Height() pointee.NonZeroHeight {
	return tip.Meta
}

func (tip Tip[T]) Len() uint64 {
	return tip.Meta.Len()
}

// Pair returns the children, reading them from the pile if the tip is
// clean. A pair read from the pile is not kept by the tip.
func (tip Tip[T]) Pair(z *Zone[T]) (*Pair[T], error) {
	return tip.Ptr.loadPair(z)
}

// PairCommit is the digest the tip commits to, memoized on the tip.
func (tip Tip[T]) PairCommit(z *Zone[T]) (commit.Digest, error) {
	return tip.Ptr.Commit(z)
}

func (p *Pair[T]) Left() *Tree[T] {
	return &p.left
}

func (p *Pair[T]) Right() *Tree[T] {
	return &p.right
}

func (p *Pair[T]) Height() pointee.NonZeroHeight {
	h, ok := p.left.height.TryIncrement()
	if !ok {
		panic("perfecttree: pair children at maximum height")
	}
	return h
}

func (p *Pair[T]) Metadata() pointee.NonZeroHeight {
	return p.Height()
}

func (p *Pair[T]) Len() uint64 {
	return p.Height().Len()
}

// Split moves the children out of p.
func (p *Pair[T]) Split() (Tree[T], Tree[T]) {
	left, right := p.left, p.right
	*p = Pair[T]{}
	return left, right
}
