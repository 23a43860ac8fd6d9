package leveldb

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/PlakarLabs/hoard/pile"
	"github.com/PlakarLabs/hoard/profiler"
	"github.com/PlakarLabs/hoard/ptr"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
)

// Pile stores every append as one record keyed by its big-endian start
// offset, so key order is offset order.
type Pile struct {
	mu   sync.RWMutex
	db   *leveldb.DB
	size uint64
}

func init() {
	pile.Register("leveldb", func(location string) (pile.Store, error) {
		return Open(pile.Location("leveldb", location))
	})
}

func key(off uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], off)
	return buf[:]
}

func Open(path string) (*Pile, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.Wrap(err, "leveldb pile")
	}

	p := &Pile{db: db}
	iter := db.NewIterator(nil, nil)
	if iter.Last() {
		p.size = binary.BigEndian.Uint64(iter.Key()) + uint64(len(iter.Value()))
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "leveldb pile")
	}
	pile.Logger().Trace("pile", "leveldb: opened %s, %d bytes", path, p.size)
	return p, nil
}

func (p *Pile) Append(buf []byte) (ptr.Offset, error) {
	t0 := time.Now()
	defer profiler.Since("pile.leveldb.Append", t0)

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
	if err := p.db.Put(key(off.Get()), buf, nil); err != nil {
		return ptr.Offset{}, errors.Wrapf(err, "leveldb pile: append %d bytes", len(buf))
	}
	p.size += uint64(len(buf))
	pile.Logger().Trace("pile", "leveldb: append %d bytes %s", len(buf), off)
	return off, nil
}

func (p *Pile) floor(off uint64) (pile.Segment, error) {
	iter := p.db.NewIterator(nil, nil)
	defer iter.Release()

	var ok bool
	if iter.Seek(key(off + 1)) {
		ok = iter.Prev()
	} else {
		ok = iter.Last()
	}
	if err := iter.Error(); err != nil {
		return pile.Segment{}, errors.Wrap(err, "leveldb pile")
	}
	if !ok {
		return pile.Segment{}, errors.Wrapf(pile.ErrCorrupt, "no record at or before %d", off)
	}
	data := make([]byte, len(iter.Value()))
	copy(data, iter.Value())
	return pile.Segment{Start: binary.BigEndian.Uint64(iter.Key()), Data: data}, nil
}

func (p *Pile) Read(off ptr.Offset, n int) ([]byte, error) {
	t0 := time.Now()
	defer profiler.Since("pile.leveldb.Read", t0)

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
