package perfecttree

import (
	"context"
	"fmt"
	"time"

	"github.com/PlakarLabs/hoard/blob"
	"github.com/PlakarLabs/hoard/profiler"
	"github.com/PlakarLabs/hoard/ptr"
	"github.com/PlakarLabs/hoard/save"
)

type saveState int

const (
	// dirty nodes remain below the root
	stateDirty saveState = iota
	// every node is in the pile but the tree blob is not
	stateClean
	// the tree blob is in the pile
	stateDone
)

func (s saveState) String() string {
	switch s {
	case stateDirty:
		return "dirty"
	case stateClean:
		return "clean"
	default:
		return "done"
	}
}

// SavePoll saves a tree one blob at a time, children before parents.
// Dirty nodes become clean in place as soon as their blob is appended,
// so an interrupted save resumes where it stopped.
type SavePoll[T any] struct {
	zone  *Zone[T]
	tree  *Tree[T]
	stack []*Tree[T]
	state saveState
}

var _ save.Poll = (*SavePoll[uint8])(nil)

func (t *Tree[T]) SavePoll(z *Zone[T]) *SavePoll[T] {
	p := &SavePoll[T]{zone: z, tree: t}
	switch {
	case t.root.IsValid():
		p.state = stateDone
	case t.IsDirty():
		p.state = stateDirty
		p.stack = append(p.stack, t)
	default:
		p.state = stateClean
	}
	return p
}

// Step appends at most one blob.
func (p *SavePoll[T]) Step(s save.Saver) (bool, error) {
	t0 := time.Now()
	defer profiler.Since("perfecttree.SaveStep", t0)

	switch p.state {
	case stateDirty:
		return false, p.stepDirty(s)

	case stateClean:
		if _, err := p.tree.Commit(p.zone); err != nil {
			return false, fmt.Errorf("perfecttree: save tree: %w", err)
		}
		off, err := s.Append(blob.Encode[Tree[T]](TreeCodec[T]{}, *p.tree))
		if err != nil {
			return false, fmt.Errorf("perfecttree: save tree: %w", err)
		}
		p.tree.root = off
		p.state = stateDone
		p.zone.logger.Trace("save", "tree %s %s", p.tree.height, off)
		return true, nil

	default:
		return true, nil
	}
}

func (p *SavePoll[T]) pop() {
	p.stack = p.stack[:len(p.stack)-1]
}

func (p *SavePoll[T]) stepDirty(s save.Saver) error {
	z := p.zone
	for len(p.stack) != 0 {
		top := p.stack[len(p.stack)-1]
		if !top.IsDirty() {
			p.pop()
			continue
		}

		if top.height == 0 {
			v, _ := top.leaf.TryDirty()
			buf := blob.Encode(z.codec, *v)
			off, err := s.Append(buf)
			if err != nil {
				return fmt.Errorf("perfecttree: save leaf: %w", err)
			}
			if _, ok := top.cachedDigest(z); !ok {
				top.setDigest(z, z.hasher.Leaf(buf))
			}
			top.leaf.MarkClean(off)
			p.pop()
			z.logger.Trace("save", "leaf %s", off)
			return nil
		}

		pair, _ := top.pair.TryDirty()
		if pair.left.IsDirty() {
			p.stack = append(p.stack, &pair.left)
			continue
		}
		if pair.right.IsDirty() {
			p.stack = append(p.stack, &pair.right)
			continue
		}

		// clean children may hold digests from another hasher
		left, err := pair.left.Commit(z)
		if err != nil {
			return fmt.Errorf("perfecttree: save pair: %w", err)
		}
		right, err := pair.right.Commit(z)
		if err != nil {
			return fmt.Errorf("perfecttree: save pair: %w", err)
		}
		h := pair.Height()
		if _, ok := top.cachedDigest(z); !ok {
			top.setDigest(z, z.hasher.Pair(h, left, right))
		}
		off, err := s.Append(blob.EncodeDyn[Pair[T]](PairCodec[T]{}, h, *pair))
		if err != nil {
			return fmt.Errorf("perfecttree: save pair: %w", err)
		}
		top.pair.MarkClean(off)
		p.pop()
		z.logger.Trace("save", "pair %s %s", h, off)
		return nil
	}
	p.state = stateClean
	return nil
}

// Save writes every dirty node of t and then the tree blob, and returns
// the offset of the latter. Saving a tree that was already saved or
// loaded appends nothing.
func (t *Tree[T]) Save(z *Zone[T]) (ptr.Offset, error) {
	return t.SaveContext(context.Background(), z)
}

func (t *Tree[T]) SaveContext(ctx context.Context, z *Zone[T]) (ptr.Offset, error) {
	t0 := time.Now()
	defer profiler.Since("perfecttree.Save", t0)

	if err := save.Run(ctx, t.SavePoll(z), z.store); err != nil {
		return ptr.Offset{}, err
	}
	return t.root, nil
}
