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

// Package pile implements append-only byte stores addressed by offset.
package pile

import (
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/PlakarLabs/hoard/logging"
	"github.com/PlakarLabs/hoard/ptr"
	"github.com/pkg/errors"
)

var (
	ErrOutOfRange = errors.New("read outside of pile")
	ErrFull       = errors.New("pile is full")
	ErrClosed     = errors.New("pile is closed")
	ErrCorrupt    = errors.New("pile is corrupt")
	ErrNotEmpty   = errors.New("pile is not empty")
)

// Store is an append-only pile of bytes. Offsets start at zero and grow
// with every append; bytes once appended never change.
type Store interface {
	Append(buf []byte) (ptr.Offset, error)
	Read(off ptr.Offset, n int) ([]byte, error)
	Size() uint64
	Close() error
}

var muBackends sync.Mutex
var backends map[string]func(location string) (Store, error) = make(map[string]func(location string) (Store, error))

var logger = logging.NewDiscard()

func SetLogger(l *logging.Logger) {
	logger = l
}

func Logger() *logging.Logger {
	return logger
}

func Register(name string, backend func(location string) (Store, error)) {
	muBackends.Lock()
	defer muBackends.Unlock()

	if _, ok := backends[name]; ok {
		log.Fatalf("backend '%s' registered twice", name)
	}
	backends[name] = backend
}

func Backends() []string {
	muBackends.Lock()
	defer muBackends.Unlock()

	ret := make([]string, 0)
	for backendName := range backends {
		ret = append(ret, backendName)
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i] < ret[j]
	})
	return ret
}

// Open picks a backend from the location scheme. Locations without a
// scheme are files.
func Open(location string) (Store, error) {
	muBackends.Lock()
	backendName := "fs"
	if i := strings.Index(location, "://"); i != -1 {
		backendName = location[:i]
	}
	backend, exists := backends[backendName]
	muBackends.Unlock()

	if !exists {
		return nil, errors.Errorf("backend '%s' does not exist", backendName)
	}
	logger.Trace("pile", "open %s with backend %s", location, backendName)
	return backend(location)
}

// Location strips scheme:// from location.
func Location(scheme string, location string) string {
	return strings.TrimPrefix(location, scheme+"://")
}

// NextOffset checks that n more bytes fit after size and returns the
// offset they would start at.
func NextOffset(size uint64, n int) (ptr.Offset, error) {
	end := size + uint64(n)
	if size > ptr.MaxOffset || end < size || end > ptr.MaxOffset+1 {
		return ptr.Offset{}, ErrFull
	}
	return ptr.MustOffset(size), nil
}

// CheckRange reports ErrOutOfRange unless [off, off+n) lies within size.
func CheckRange(off ptr.Offset, n int, size uint64) error {
	if !off.IsValid() || n < 0 {
		return errors.Wrapf(ErrOutOfRange, "read %d bytes at %s", n, off)
	}
	start := off.Get()
	end := start + uint64(n)
	if end < start || end > size {
		return errors.Wrapf(ErrOutOfRange, "read %d bytes at %s, size %d", n, off, size)
	}
	return nil
}
