package hashing

import (
	"hash"
	"sort"

	"github.com/minio/sha256-simd"
	"golang.org/x/crypto/blake2b"
)

// Every algorithm here yields 32 byte sums so digests stay fixed-size
// whatever the pile was created with.
var algorithms = map[string]func() hash.Hash{
	"sha256": sha256.New,
	"blake2b-256": func() hash.Hash {
		h, err := blake2b.New256(nil)
		if err != nil {
			panic(err)
		}
		return h
	},
}

func DefaultAlgorithm() string {
	return "sha256"
}

func Algorithms() []string {
	ret := make([]string, 0, len(algorithms))
	for name := range algorithms {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

func GetHasher(name string) hash.Hash {
	if fn, exists := algorithms[name]; exists {
		return fn()
	}
	return nil
}
