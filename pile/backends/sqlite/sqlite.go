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

package sqlite

import (
	"database/sql"
	"sync"
	"time"

	"github.com/PlakarLabs/hoard/pile"
	"github.com/PlakarLabs/hoard/profiler"
	"github.com/PlakarLabs/hoard/ptr"
	"github.com/pkg/errors"

	_ "github.com/mattn/go-sqlite3"
)

type Pile struct {
	mu   sync.RWMutex
	conn *sql.DB
	size uint64
}

func init() {
	pile.Register("sqlite", func(location string) (pile.Store, error) {
		return Open(pile.Location("sqlite", location))
	})
}

func Open(path string) (*Pile, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "sqlite pile")
	}
	// a single connection keeps appends ordered and the size in step
	conn.SetMaxOpenConns(1)

	for _, stmt := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=2000;",
		`CREATE TABLE IF NOT EXISTS blobs (
			pos	INTEGER NOT NULL PRIMARY KEY,
			data	BLOB NOT NULL
		);`,
	} {
		if _, err := conn.Exec(stmt); err != nil {
			conn.Close()
			return nil, errors.Wrap(err, "sqlite pile")
		}
	}

	p := &Pile{conn: conn}
	var end sql.NullInt64
	if err := conn.QueryRow("SELECT MAX(pos + LENGTH(data)) FROM blobs").Scan(&end); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "sqlite pile")
	}
	if end.Valid {
		p.size = uint64(end.Int64)
	}
	pile.Logger().Trace("pile", "sqlite: opened %s, %d bytes", path, p.size)
	return p, nil
}

func (p *Pile) Append(buf []byte) (ptr.Offset, error) {
	t0 := time.Now()
	defer profiler.Since("pile.sqlite.Append", t0)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil {
		return ptr.Offset{}, pile.ErrClosed
	}
	off, err := pile.NextOffset(p.size, len(buf))
	if err != nil {
		return ptr.Offset{}, err
	}
	if len(buf) == 0 {
		return off, nil
	}
	if _, err := p.conn.Exec("INSERT INTO blobs (pos, data) VALUES (?, ?)", int64(off.Get()), buf); err != nil {
		return ptr.Offset{}, errors.Wrapf(err, "sqlite pile: append %d bytes", len(buf))
	}
	p.size += uint64(len(buf))
	pile.Logger().Trace("pile", "sqlite: append %d bytes %s", len(buf), off)
	return off, nil
}

func (p *Pile) floor(off uint64) (pile.Segment, error) {
	var start int64
	var data []byte
	err := p.conn.QueryRow("SELECT pos, data FROM blobs WHERE pos <= ? ORDER BY pos DESC LIMIT 1", int64(off)).Scan(&start, &data)
	if err == sql.ErrNoRows {
		return pile.Segment{}, errors.Wrapf(pile.ErrCorrupt, "no record at or before %d", off)
	}
	if err != nil {
		return pile.Segment{}, errors.Wrap(err, "sqlite pile")
	}
	return pile.Segment{Start: uint64(start), Data: data}, nil
}

func (p *Pile) Read(off ptr.Offset, n int) ([]byte, error) {
	t0 := time.Now()
	defer profiler.Since("pile.sqlite.Read", t0)

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.conn == nil {
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
	if p.conn == nil {
		return nil
	}
	err := p.conn.Close()
	p.conn = nil
	return err
}
