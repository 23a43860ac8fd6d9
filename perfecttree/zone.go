package perfecttree

import (
	"github.com/PlakarLabs/hoard/blob"
	"github.com/PlakarLabs/hoard/commit"
	"github.com/PlakarLabs/hoard/load"
	"github.com/PlakarLabs/hoard/logging"
	"github.com/PlakarLabs/hoard/save"
)

// Store is the pile a zone reads from and appends to.
type Store interface {
	save.Saver
	load.Loader
}

// Zone ties trees of T to a pile, the codec of their leaves and the hash
// they commit with. Trees do not remember their zone; every operation that
// may touch the pile takes one.
type Zone[T any] struct {
	store  Store
	codec  blob.Codec[T]
	hasher *commit.Hasher
	logger *logging.Logger
}

func NewZone[T any](store Store, codec blob.Codec[T]) *Zone[T] {
	return &Zone[T]{
		store:  store,
		codec:  codec,
		hasher: commit.DefaultHasher(),
		logger: logging.NewDiscard(),
	}
}

func (z *Zone[T]) WithHasher(h *commit.Hasher) *Zone[T] {
	z.hasher = h
	return z
}

func (z *Zone[T]) WithLogger(l *logging.Logger) *Zone[T] {
	z.logger = l
	return z
}

func (z *Zone[T]) Store() Store {
	return z.store
}

func (z *Zone[T]) Codec() blob.Codec[T] {
	return z.codec
}

func (z *Zone[T]) Hasher() *commit.Hasher {
	return z.hasher
}
