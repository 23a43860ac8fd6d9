/*
 * Copyright (c) 2021 Gilles Chehade <gilles@poolp.org>
 *
 * Permission to use, copy, modify, and distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package fs

import (
	"os"
	"sync"
	"time"

	"github.com/PlakarLabs/hoard/pile"
	"github.com/PlakarLabs/hoard/profiler"
	"github.com/PlakarLabs/hoard/ptr"
	"github.com/pkg/errors"
)

// Pile is a single file that only ever grows.
type Pile struct {
	mu         sync.RWMutex
	fp         *os.File
	size       uint64
	syncWrites bool
}

func init() {
	pile.Register("fs", func(location string) (pile.Store, error) {
		return Open(pile.Location("fs", location), false)
	})
}

// Open opens or creates the pile file at path. With syncWrites set every
// append is flushed to disk before it returns.
func Open(path string, syncWrites bool) (*Pile, error) {
	fp, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return nil, errors.Wrap(err, "fs pile")
	}
	st, err := fp.Stat()
	if err != nil {
		fp.Close()
		return nil, errors.Wrap(err, "fs pile")
	}
	pile.Logger().Trace("pile", "fs: opened %s, %d bytes", path, st.Size())
	return &Pile{fp: fp, size: uint64(st.Size()), syncWrites: syncWrites}, nil
}

func (p *Pile) Append(buf []byte) (ptr.Offset, error) {
	t0 := time.Now()
	defer profiler.Since("pile.fs.Append", t0)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.fp == nil {
		return ptr.Offset{}, pile.ErrClosed
	}
	off, err := pile.NextOffset(p.size, len(buf))
	if err != nil {
		return ptr.Offset{}, err
	}
	if len(buf) == 0 {
		return off, nil
	}
	n, err := p.fp.Write(buf)
	if err != nil {
		// a short write leaves garbage past size, account for it so
		// offsets stay in step with the file
		p.size += uint64(n)
		return ptr.Offset{}, errors.Wrapf(err, "fs pile: append %d bytes", len(buf))
	}
	if p.syncWrites {
		if err := p.fp.Sync(); err != nil {
			p.size += uint64(n)
			return ptr.Offset{}, errors.Wrap(err, "fs pile: sync")
		}
	}
	p.size += uint64(n)
	pile.Logger().Trace("pile", "fs: append %d bytes %s", len(buf), off)
	return off, nil
}

func (p *Pile) Read(off ptr.Offset, n int) ([]byte, error) {
	t0 := time.Now()
	defer profiler.Since("pile.fs.Read", t0)

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.fp == nil {
		return nil, pile.ErrClosed
	}
	if err := pile.CheckRange(off, n, p.size); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := p.fp.ReadAt(buf, int64(off.Get())); err != nil {
		return nil, errors.Wrapf(err, "fs pile: read %d bytes at %s", n, off)
	}
	return buf, nil
}

func (p *Pile) Size() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.size
}

func (p *Pile) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fp == nil {
		return nil
	}
	err := p.fp.Close()
	p.fp = nil
	return err
}
