package pile

import (
	"github.com/PlakarLabs/hoard/ptr"
	"github.com/pkg/errors"
)

// Segment is one record of a keyed backend: the bytes of a single append,
// keyed by the offset they start at.
type Segment struct {
	Start uint64
	Data  []byte
}

func (s Segment) End() uint64 {
	return s.Start + uint64(len(s.Data))
}

// FloorFunc returns the segment starting at or before off.
type FloorFunc func(off uint64) (Segment, error)

// ReadSegments serves a read from a keyed backend, stitching segments
// together when the range spans more than one append.
func ReadSegments(floor FloorFunc, off ptr.Offset, n int, size uint64) ([]byte, error) {
	if err := CheckRange(off, n, size); err != nil {
		return nil, err
	}
	if n == 0 {
		return []byte{}, nil
	}

	start := off.Get()
	end := start + uint64(n)

	seg, err := floor(start)
	if err != nil {
		return nil, err
	}
	if seg.Start > start || seg.End() <= start {
		return nil, errors.Wrapf(ErrCorrupt, "no segment covers offset %d", start)
	}
	if end <= seg.End() {
		return seg.Data[start-seg.Start : end-seg.Start], nil
	}

	ret := make([]byte, 0, n)
	ret = append(ret, seg.Data[start-seg.Start:]...)
	for uint64(len(ret)) < uint64(n) {
		next := seg.End()
		seg, err = floor(next)
		if err != nil {
			return nil, err
		}
		if seg.Start != next || len(seg.Data) == 0 {
			return nil, errors.Wrapf(ErrCorrupt, "gap at offset %d", next)
		}
		want := uint64(n) - uint64(len(ret))
		if want > uint64(len(seg.Data)) {
			want = uint64(len(seg.Data))
		}
		ret = append(ret, seg.Data[:want]...)
	}
	return ret, nil
}
