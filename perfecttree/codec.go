package perfecttree

import (
	"github.com/PlakarLabs/hoard/blob"
	"github.com/PlakarLabs/hoard/commit"
	"github.com/PlakarLabs/hoard/pointee"
	"github.com/PlakarLabs/hoard/ptr"
)

// A node blob is the digest of a subtree followed by the offset of its
// value blob (leaves) or pair blob (tips).
type node struct {
	digest commit.Digest
	offset ptr.Offset
}

const nodeSize = commit.DigestSize + 8

type nodeCodec struct{}

func (nodeCodec) Size() int { return nodeSize }

func (nodeCodec) Encode(dst []byte, n node) {
	w := blob.NewWriter(dst)
	blob.Put[commit.Digest](w, commit.DigestCodec{}, n.digest)
	blob.Put[ptr.Offset](w, ptr.OffsetCodec{}, n.offset)
	w.Done()
}

func (nodeCodec) Decode(src []byte) (blob.MaybeValid[node], error) {
	f := blob.NewFields(src)
	digest, err := blob.Field[commit.Digest](f, "digest", commit.DigestCodec{})
	if err != nil {
		return blob.MaybeValid[node]{}, err
	}
	offset, err := blob.Field[ptr.Offset](f, "offset", ptr.OffsetCodec{})
	if err != nil {
		return blob.MaybeValid[node]{}, err
	}
	if err := f.Done(); err != nil {
		return blob.MaybeValid[node]{}, err
	}
	return blob.Assume(node{digest: digest.Trust(), offset: offset.Trust()}), nil
}

// cleanNode panics unless the root node of t was saved.
func (t *Tree[T]) cleanNode() node {
	off, ok := t.nodeOffset()
	if !ok || t.digest == nil {
		panic("perfecttree: encoding a dirty node")
	}
	return node{digest: *t.digest, offset: off}
}

func fromNode[T any](n node, h pointee.Height) Tree[T] {
	d := n.digest
	t := Tree[T]{height: h, digest: &d}
	if h == 0 {
		t.leaf = ptr.Clean[T](n.offset)
	} else {
		t.pair = ptr.Clean[Pair[T]](n.offset)
	}
	return t
}

// PairCodec lays a pair out as its left node followed by its right node.
// The height is not stored; it comes with the pointer to the pair.
type PairCodec[T any] struct{}

var _ pointee.DynSized[pointee.NonZeroHeight] = PairCodec[uint8]{}

func (PairCodec[T]) Size(pointee.NonZeroHeight) int { return 2 * nodeSize }

func (PairCodec[T]) Encode(dst []byte, h pointee.NonZeroHeight, p Pair[T]) {
	if p.left.height != h.Decrement() || p.right.height != h.Decrement() {
		panic("perfecttree: pair height disagrees with its children")
	}
	w := blob.NewWriter(dst)
	blob.Put[node](w, nodeCodec{}, p.left.cleanNode())
	blob.Put[node](w, nodeCodec{}, p.right.cleanNode())
	w.Done()
}

func (PairCodec[T]) Decode(src []byte, h pointee.NonZeroHeight) (blob.MaybeValid[Pair[T]], error) {
	f := blob.NewFields(src)
	left, err := blob.Field[node](f, "left", nodeCodec{})
	if err != nil {
		return blob.MaybeValid[Pair[T]]{}, err
	}
	right, err := blob.Field[node](f, "right", nodeCodec{})
	if err != nil {
		return blob.MaybeValid[Pair[T]]{}, err
	}
	if err := f.Done(); err != nil {
		return blob.MaybeValid[Pair[T]]{}, err
	}
	child := h.Decrement()
	return blob.Assume(Pair[T]{
		left:  fromNode[T](left.Trust(), child),
		right: fromNode[T](right.Trust(), child),
	}), nil
}

// TreeCodec is the standalone form of a tree: its node followed by its
// height.
type TreeCodec[T any] struct{}

func (TreeCodec[T]) Size() int { return nodeSize + 1 }

func (TreeCodec[T]) Encode(dst []byte, t Tree[T]) {
	w := blob.NewWriter(dst)
	blob.Put[node](w, nodeCodec{}, t.cleanNode())
	blob.Put[pointee.Height](w, pointee.HeightCodec{}, t.height)
	w.Done()
}

func (TreeCodec[T]) Decode(src []byte) (blob.MaybeValid[Tree[T]], error) {
	f := blob.NewFields(src)
	n, err := blob.Field[node](f, "node", nodeCodec{})
	if err != nil {
		return blob.MaybeValid[Tree[T]]{}, err
	}
	h, err := blob.Field[pointee.Height](f, "height", pointee.HeightCodec{})
	if err != nil {
		return blob.MaybeValid[Tree[T]]{}, err
	}
	if err := f.Done(); err != nil {
		return blob.MaybeValid[Tree[T]]{}, err
	}
	return blob.Assume(fromNode[T](n.Trust(), h.Trust())), nil
}

// TipCodec is TreeCodec restricted to heights of at least one.
type TipCodec[T any] struct{}

func (TipCodec[T]) Size() int { return nodeSize + 1 }

func (TipCodec[T]) Encode(dst []byte, t Tree[T]) {
	h, ok := t.height.NonZero()
	if !ok {
		panic("perfecttree: encoding a leaf as a tip")
	}
	w := blob.NewWriter(dst)
	blob.Put[node](w, nodeCodec{}, t.cleanNode())
	blob.Put[pointee.NonZeroHeight](w, pointee.NonZeroHeightCodec{}, h)
	w.Done()
}

func (TipCodec[T]) Decode(src []byte) (blob.MaybeValid[Tree[T]], error) {
	f := blob.NewFields(src)
	n, err := blob.Field[node](f, "node", nodeCodec{})
	if err != nil {
		return blob.MaybeValid[Tree[T]]{}, err
	}
	h, err := blob.Field[pointee.NonZeroHeight](f, "height", pointee.NonZeroHeightCodec{})
	if err != nil {
		return blob.MaybeValid[Tree[T]]{}, err
	}
	if err := f.Done(); err != nil {
		return blob.MaybeValid[Tree[T]]{}, err
	}
	return blob.Assume(fromNode[T](n.Trust(), h.Trust().Height())), nil
}
