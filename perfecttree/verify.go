package perfecttree

import (
	"fmt"
	"time"

	"github.com/PlakarLabs/hoard/blob"
	"github.com/PlakarLabs/hoard/commit"
	"github.com/PlakarLabs/hoard/profiler"
)

// ErrDigestMismatch is reported by Verify when a stored digest does not
// match the subtree below it.
var ErrDigestMismatch = blob.ErrDigest

// Verify reads every blob below t, validates it and recomputes every
// digest from the leaves up.
func (t *Tree[T]) Verify(z *Zone[T]) error {
	t0 := time.Now()
	defer profiler.Since("perfecttree.Verify", t0)

	_, err := t.verify(z, nil)
	return err
}

// path spells the way down from the root, one L or R per level.
func (t *Tree[T]) verify(z *Zone[T], path []byte) (commit.Digest, error) {
	var d commit.Digest
	if t.height == 0 {
		var buf []byte
		if v, ok := t.leaf.TryDirty(); ok {
			buf = blob.Encode(z.codec, *v)
		} else {
			off, _ := t.leaf.TryClean()
			var err error
			if buf, err = z.store.Read(off, z.codec.Size()); err != nil {
				return d, fmt.Errorf("perfecttree: leaf %q: %w", string(path), err)
			}
			if _, err := z.codec.Decode(buf); err != nil {
				return d, fmt.Errorf("perfecttree: leaf %q: %w", string(path), err)
			}
		}
		d = z.hasher.Leaf(buf)
	} else {
		p, err := t.loadPair(z)
		if err != nil {
			return d, fmt.Errorf("perfecttree: tip %q: %w", string(path), err)
		}
		left, err := p.left.verify(z, append(path, 'L'))
		if err != nil {
			return d, err
		}
		right, err := p.right.verify(z, append(path, 'R'))
		if err != nil {
			return d, err
		}
		d = z.hasher.Pair(p.Height(), left, right)
	}

	if stored, ok := t.cachedDigest(z); ok && stored != d {
		return d, blob.Errorf(blob.KindDigest, "subtree %q stores %s, computed %s", string(path), stored, d)
	}
	z.logger.Trace("verify", "subtree %q %s", string(path), d)
	return d, nil
}
