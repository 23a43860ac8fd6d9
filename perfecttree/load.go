package perfecttree

import (
	"fmt"
	"time"

	"github.com/PlakarLabs/hoard/load"
	"github.com/PlakarLabs/hoard/profiler"
	"github.com/PlakarLabs/hoard/ptr"
)

// Load reads the tree blob at off. Only the root is read; its children
// stay clean until something walks into them.
func Load[T any](z *Zone[T], off ptr.Offset) (Tree[T], error) {
	t0 := time.Now()
	defer profiler.Since("perfecttree.Load", t0)

	mv, err := load.Blob[Tree[T]](z.store, off, TreeCodec[T]{})
	if err != nil {
		return Tree[T]{}, fmt.Errorf("perfecttree: tree: %w", err)
	}
	t := mv.Trust()
	t.root = off
	t.hashedWith = z.hasher.Algorithm()
	z.logger.Trace("load", "tree %s %s", t.height, off)
	return t, nil
}

// LoadTip reads a standalone tip blob, which must not describe a leaf.
func LoadTip[T any](z *Zone[T], off ptr.Offset) (Tree[T], error) {
	mv, err := load.Blob[Tree[T]](z.store, off, TipCodec[T]{})
	if err != nil {
		return Tree[T]{}, fmt.Errorf("perfecttree: tip: %w", err)
	}
	t := mv.Trust()
	t.hashedWith = z.hasher.Algorithm()
	z.logger.Trace("load", "tip %s %s", t.height, off)
	return t, nil
}
