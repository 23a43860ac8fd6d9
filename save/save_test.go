package save

import (
	"context"
	"errors"
	"testing"

	"github.com/PlakarLabs/hoard/ptr"
	"github.com/stretchr/testify/require"
)

type sliceSaver struct {
	buf []byte
	err error
}

func (s *sliceSaver) Append(buf []byte) (ptr.Offset, error) {
	if s.err != nil {
		return ptr.Offset{}, s.err
	}
	off := ptr.MustOffset(uint64(len(s.buf)))
	s.buf = append(s.buf, buf...)
	return off, nil
}

// countdown appends one byte per step.
type countdown struct {
	left int
}

func (c *countdown) Step(s Saver) (bool, error) {
	if c.left == 0 {
		return true, nil
	}
	if _, err := s.Append([]byte{byte(c.left)}); err != nil {
		return false, err
	}
	c.left--
	return false, nil
}

func TestRun(t *testing.T) {
	saver := &sliceSaver{}
	counting := &Counting{Saver: saver}
	require.NoError(t, Run(context.Background(), &countdown{left: 3}, counting))
	require.Equal(t, []byte{3, 2, 1}, saver.buf)
	require.Equal(t, 3, counting.Calls)
	require.Equal(t, uint64(3), counting.Bytes)
}

func TestRunError(t *testing.T) {
	boom := errors.New("boom")
	err := Run(context.Background(), &countdown{left: 3}, &sliceSaver{err: boom})
	require.ErrorIs(t, err, boom)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	saver := &sliceSaver{}
	err := Run(ctx, &countdown{left: 3}, saver)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, saver.buf)
}
