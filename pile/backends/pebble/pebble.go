package pebble

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/PlakarLabs/hoard/pile"
	"github.com/PlakarLabs/hoard/profiler"
	"github.com/PlakarLabs/hoard/ptr"
	"github.com/cockroachdb/pebble"
	"github.com/pkg/errors"
)

// Pile is the leveldb layout on top of pebble.
type Pile struct {
	mu   sync.RWMutex
	db   *pebble.DB
	size uint64
}

func init() {
	pile.Register("pebble", func(location string) (pile.Store, error) {
		return Open(pile.Location("pebble", location))
	})
}

func key(off uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], off)
	return buf[:]
}

func Open(path string) (*Pile, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, errors.Wrap(err, "pebble pile")
	}

	p := &Pile{db: db}
	iter, err := db.NewIter(nil)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "pebble pile")
	}
	if iter.Last() {
		p.size = binary.BigEndian.Uint64(iter.Key()) + uint64(len(iter.Value()))
	}
	if err := iter.Close(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "pebble pile")
	}
	pile.Logger().Trace("pile", "pebble: opened %s, %d bytes", path, p.size)
	return p, nil
}

func (p *Pile) Append(buf []byte) (ptr.Offset, error) {
	t0 := time.Now()
	defer profiler.Since("pile.pebble.Append", t0)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db == nil {
		return ptr.Offset{}, pile.ErrClosed
	}
	off, err := pile.NextOffset(p.size, len(buf))
	if err != nil {
		return ptr.Offset{}, err
	}
	if len(buf) == 0 {
		return off, nil
	}
	if err := p.db.Set(key(off.Get()), buf, pebble.Sync); err != nil {
		return ptr.Offset{}, errors.Wrapf(err, "pebble pile: append %d bytes", len(buf))
	}
	p.size += uint64(len(buf))
	pile.Logger().Trace("pile", "pebble: append %d bytes %s", len(buf), off)
	return off, nil
}

func (p *Pile) floor(off uint64) (pile.Segment, error) {
	iter, err := p.db.NewIter(nil)
	if err != nil {
		return pile.Segment{}, errors.Wrap(err, "pebble pile")
	}
	defer iter.Close()

	if !iter.SeekLT(key(off + 1)) {
		return pile.Segment{}, errors.Wrapf(pile.ErrCorrupt, "no record at or before %d", off)
	}
	data := make([]byte, len(iter.Value()))
	copy(data, iter.Value())
	return pile.Segment{Start: binary.BigEndian.Uint64(iter.Key()), Data: data}, nil
}

func (p *Pile) Read(off ptr.Offset, n int) ([]byte, error) {
	t0 := time.Now()
	defer profiler.Since("pile.pebble.Read", t0)

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.db == nil {
		return nil, pile.ErrClosed
	}
	return pile.ReadSegments(p.floor, off, n, p.size)
}

func (p *Pile) Size() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.size
}

func (p *Pile) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}
