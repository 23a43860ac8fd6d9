package pile

import (
	"io"

	"github.com/PlakarLabs/hoard/compression"
	"github.com/PlakarLabs/hoard/ptr"
	"github.com/pkg/errors"
)

const chunkSize = 1 << 20

type reader struct {
	store Store
	off   uint64
	size  uint64
}

// NewReader streams the bytes of store as of now, from offset zero.
func NewReader(store Store) io.Reader {
	return &reader{store: store, size: store.Size()}
}

func (r *reader) Read(p []byte) (int, error) {
	if r.off >= r.size {
		return 0, io.EOF
	}
	n := uint64(len(p))
	if n > r.size-r.off {
		n = r.size - r.off
	}
	if n > chunkSize {
		n = chunkSize
	}
	buf, err := r.store.Read(ptr.MustOffset(r.off), int(n))
	if err != nil {
		return 0, err
	}
	copy(p, buf)
	r.off += n
	return int(n), nil
}

// Export writes a compressed copy of store to w.
func Export(store Store, w io.Writer, method string) (int64, error) {
	rd, err := compression.DeflateStream(method, NewReader(store))
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(w, rd)
	if err != nil {
		return n, errors.Wrap(err, "export")
	}
	logger.Trace("export", "exported %d bytes as %d %s bytes", store.Size(), n, method)
	return n, nil
}

// Import fills an empty store from an Export stream. Offsets are
// preserved.
func Import(r io.Reader, method string, dst Store) (uint64, error) {
	if dst.Size() != 0 {
		return 0, ErrNotEmpty
	}
	rd, err := compression.InflateStream(method, r)
	if err != nil {
		return 0, err
	}

	buf := make([]byte, chunkSize)
	var total uint64
	for {
		n, err := io.ReadFull(rd, buf)
		if n > 0 {
			if _, aerr := dst.Append(buf[:n]); aerr != nil {
				return total, errors.Wrap(aerr, "import")
			}
			total += uint64(n)
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return total, errors.Wrap(err, "import")
		}
	}
	logger.Trace("export", "imported %d bytes", total)
	return total, nil
}
