package commit

import (
	"crypto/sha256"
	"testing"

	"github.com/PlakarLabs/hoard/blob"
	"github.com/PlakarLabs/hoard/pointee"
	"github.com/stretchr/testify/require"
)

func TestLeafDigest(t *testing.T) {
	h := DefaultHasher()
	require.Equal(t, "sha256", h.Algorithm())

	expected := sha256.Sum256([]byte{0x00, 0x2a})
	require.Equal(t, Digest(expected), h.Leaf([]byte{0x2a}))
}

func TestPairDigest(t *testing.T) {
	h := DefaultHasher()
	l := h.Leaf([]byte{0})
	r := h.Leaf([]byte{1})

	buf := []byte{0x01, 0x01}
	buf = append(buf, l[:]...)
	buf = append(buf, r[:]...)
	require.Equal(t, Digest(sha256.Sum256(buf)), h.Pair(pointee.NonZeroHeight(1), l, r))

	require.NotEqual(t, h.Pair(1, l, r), h.Pair(1, r, l))
	require.NotEqual(t, h.Pair(1, l, r), h.Pair(2, l, r))
}

func TestDomainSeparation(t *testing.T) {
	h := DefaultHasher()
	l := h.Leaf([]byte{0})
	r := h.Leaf([]byte{1})

	var forged []byte
	forged = append(forged, 0x01)
	forged = append(forged, l[:]...)
	forged = append(forged, r[:]...)
	require.NotEqual(t, h.Pair(1, l, r), h.Leaf(forged))
}

func TestHasherAlgorithms(t *testing.T) {
	b, err := NewHasher("blake2b-256")
	require.NoError(t, err)
	require.NotEqual(t, DefaultHasher().Leaf([]byte{1}), b.Leaf([]byte{1}))

	_, err = NewHasher("md5")
	require.Error(t, err)
}

func TestDigestCodec(t *testing.T) {
	d := DefaultHasher().Leaf([]byte{7})
	got, err := blob.Decode[Digest](DigestCodec{}, blob.Encode[Digest](DigestCodec{}, d))
	require.NoError(t, err)
	require.Equal(t, d, got)

	_, err = blob.Decode[Digest](DigestCodec{}, make([]byte, 31))
	require.ErrorIs(t, err, blob.ErrLength)

	parsed, err := ParseDigest(d.String())
	require.NoError(t, err)
	require.Equal(t, d, parsed)
}
