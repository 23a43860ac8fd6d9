package pile

import (
	"sync"

	"github.com/PlakarLabs/hoard/ptr"
)

func init() {
	Register("mem", func(location string) (Store, error) {
		return NewMemory(), nil
	})
}

// Memory keeps the whole pile in a byte slice.
type Memory struct {
	mu     sync.RWMutex
	buf    []byte
	closed bool
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Append(buf []byte) (ptr.Offset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ptr.Offset{}, ErrClosed
	}
	off, err := NextOffset(uint64(len(m.buf)), len(buf))
	if err != nil {
		return ptr.Offset{}, err
	}
	m.buf = append(m.buf, buf...)
	logger.Trace("pile", "mem: append %d bytes %s", len(buf), off)
	return off, nil
}

// Read returns a view into the pile. Appends never move bytes that were
// already handed out, so the view stays valid.
func (m *Memory) Read(off ptr.Offset, n int) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}
	if err := CheckRange(off, n, uint64(len(m.buf))); err != nil {
		return nil, err
	}
	start := off.Get()
	end := start + uint64(n)
	return m.buf[start:end:end], nil
}

func (m *Memory) Size() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return uint64(len(m.buf))
}

// Bytes returns the whole pile.
func (m *Memory) Bytes() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.buf[:len(m.buf):len(m.buf)]
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
