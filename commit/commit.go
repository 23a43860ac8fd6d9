// Package commit computes the digests a perfect tree commits to.
//
// A leaf commits to H(0x00 || value blob). A pair of height h commits to
// H(0x01 || h || left digest || right digest), so equal subtrees of equal
// height always commit to the same digest.
package commit

import (
	"encoding/hex"
	"fmt"
	"hash"

	"github.com/PlakarLabs/hoard/blob"
	"github.com/PlakarLabs/hoard/hashing"
	"github.com/PlakarLabs/hoard/pointee"
)

const DigestSize = 32

const (
	leafPrefix byte = 0x00
	pairPrefix byte = 0x01
)

type Digest [DigestSize]byte

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

func (d Digest) IsZero() bool {
	return d == Digest{}
}

func ParseDigest(s string) (Digest, error) {
	var d Digest
	buf, err := hex.DecodeString(s)
	if err != nil {
		return d, err
	}
	if len(buf) != DigestSize {
		return d, fmt.Errorf("digest must be %d bytes, got %d", DigestSize, len(buf))
	}
	copy(d[:], buf)
	return d, nil
}

// DigestCodec accepts any 32 bytes.
type DigestCodec struct{}

func (DigestCodec) Size() int                   { return DigestSize }
func (DigestCodec) Encode(dst []byte, d Digest) { copy(dst, d[:]) }

func (DigestCodec) Decode(src []byte) (blob.MaybeValid[Digest], error) {
	var d Digest
	if err := blob.CheckSize(src, DigestSize); err != nil {
		return blob.MaybeValid[Digest]{}, err
	}
	copy(d[:], src)
	return blob.Assume(d), nil
}

type Hasher struct {
	algorithm string
	newHash   func() hash.Hash
}

func NewHasher(algorithm string) (*Hasher, error) {
	probe := hashing.GetHasher(algorithm)
	if probe == nil {
		return nil, fmt.Errorf("unsupported hashing algorithm %q", algorithm)
	}
	if probe.Size() != DigestSize {
		return nil, fmt.Errorf("hashing algorithm %q yields %d bytes, need %d", algorithm, probe.Size(), DigestSize)
	}
	return &Hasher{
		algorithm: algorithm,
		newHash:   func() hash.Hash { return hashing.GetHasher(algorithm) },
	}, nil
}

func DefaultHasher() *Hasher {
	h, err := NewHasher(hashing.DefaultAlgorithm())
	if err != nil {
		panic(err)
	}
	return h
}

func (h *Hasher) Algorithm() string {
	return h.algorithm
}

func (h *Hasher) Leaf(valueBlob []byte) Digest {
	hh := h.newHash()
	hh.Write([]byte{leafPrefix})
	hh.Write(valueBlob)
	return sum(hh)
}

func (h *Hasher) Pair(height pointee.NonZeroHeight, left, right Digest) Digest {
	hh := h.newHash()
	hh.Write([]byte{pairPrefix, uint8(height)})
	hh.Write(left[:])
	hh.Write(right[:])
	return sum(hh)
}

func sum(hh hash.Hash) Digest {
	var d Digest
	copy(d[:], hh.Sum(nil))
	return d
}
