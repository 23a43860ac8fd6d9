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

package compression

import (
	"compress/gzip"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

func Methods() []string {
	return []string{"gzip", "lz4"}
}

func NewWriter(name string, w io.Writer) (io.WriteCloser, error) {
	switch name {
	case "gzip":
		return gzip.NewWriter(w), nil
	case "lz4":
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported compression method %q", name)
	}
}

func NewReader(name string, r io.Reader) (io.Reader, error) {
	switch name {
	case "gzip":
		return gzip.NewReader(r)
	case "lz4":
		return lz4.NewReader(r), nil
	default:
		return nil, fmt.Errorf("unsupported compression method %q", name)
	}
}

// DeflateStream returns a reader yielding the compressed bytes of r.
func DeflateStream(name string, r io.Reader) (io.Reader, error) {
	pr, pw := io.Pipe()
	w, err := NewWriter(name, pw)
	if err != nil {
		return nil, err
	}

	go func() {
		if _, err := io.Copy(w, r); err != nil {
			_ = w.Close()
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(w.Close())
	}()

	return pr, nil
}

// InflateStream returns a reader yielding the decompressed bytes of r.
// Gzip headers are read lazily so that an empty stream surfaces as an
// error on first read rather than here.
func InflateStream(name string, r io.Reader) (io.Reader, error) {
	if name == "gzip" {
		pr, pw := io.Pipe()
		go func() {
			rd, err := gzip.NewReader(r)
			if err != nil {
				pw.CloseWithError(err)
				return
			}
			defer rd.Close()
			_, err = io.Copy(pw, rd)
			pw.CloseWithError(err)
		}()
		return pr, nil
	}
	return NewReader(name, r)
}
