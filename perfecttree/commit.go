package perfecttree

import (
	"github.com/PlakarLabs/hoard/blob"
	"github.com/PlakarLabs/hoard/commit"
)

// Commit returns the digest of t under the hasher of z, computing and
// memoizing it when none was memoized under that hasher. Clean nodes carry
// the digest they were saved with.
func (t *Tree[T]) Commit(z *Zone[T]) (commit.Digest, error) {
	if d, ok := t.cachedDigest(z); ok {
		return d, nil
	}

	var d commit.Digest
	if t.height == 0 {
		v, err := t.value(z)
		if err != nil {
			return d, err
		}
		d = z.hasher.Leaf(blob.Encode(z.codec, v))
	} else {
		p, err := t.loadPair(z)
		if err != nil {
			return d, err
		}
		if d, err = p.Commit(z); err != nil {
			return d, err
		}
	}
	t.setDigest(z, d)
	return d, nil
}

// Commit returns the digest of the tip p would form. Children digests
// are memoized; the pair's own is not, having nowhere to go.
func (p *Pair[T]) Commit(z *Zone[T]) (commit.Digest, error) {
	left, err := p.left.Commit(z)
	if err != nil {
		return commit.Digest{}, err
	}
	right, err := p.right.Commit(z)
	if err != nil {
		return commit.Digest{}, err
	}
	return z.hasher.Pair(p.Height(), left, right), nil
}
