// Package save drives incremental saves into an append-only pile.
package save

import (
	"context"

	"github.com/PlakarLabs/hoard/ptr"
)

// Saver is the write half of a pile.
type Saver interface {
	Append(buf []byte) (ptr.Offset, error)
}

// Poll is a resumable save. Each call to Step appends at most one blob and
// reports whether the save is complete.
type Poll interface {
	Step(s Saver) (bool, error)
}

// Run steps p until it completes, fails, or ctx is done. Blobs appended
// before an interruption stay in the pile, unreferenced.
func Run(ctx context.Context, p Poll, s Saver) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		done, err := p.Step(s)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// Counting wraps a Saver and tallies what went through it.
type Counting struct {
	Saver Saver
	Calls int
	Bytes uint64
}

func (c *Counting) Append(buf []byte) (ptr.Offset, error) {
	off, err := c.Saver.Append(buf)
	if err != nil {
		return off, err
	}
	c.Calls++
	c.Bytes += uint64(len(buf))
	return off, nil
}
