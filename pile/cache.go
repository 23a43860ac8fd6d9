package pile

import (
	"sync/atomic"

	"github.com/PlakarLabs/hoard/ptr"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

type cacheKey struct {
	offset uint64
	length int
}

// CachedStore keeps recently read blobs in an LRU in front of a slower
// store. Appends go straight through.
type CachedStore struct {
	Store
	cache  *lru.Cache[cacheKey, []byte]
	hits   atomic.Uint64
	misses atomic.Uint64
}

func NewCachedStore(store Store, size int) (*CachedStore, error) {
	cache, err := lru.New[cacheKey, []byte](size)
	if err != nil {
		return nil, errors.Wrap(err, "cache")
	}
	return &CachedStore{
		Store: store,
		cache: cache,
	}, nil
}

func (c *CachedStore) Read(off ptr.Offset, n int) ([]byte, error) {
	key := cacheKey{offset: off.Get(), length: n}
	if buf, ok := c.cache.Get(key); ok {
		c.hits.Add(1)
		logger.Trace("cache", "hit %d bytes %s", n, off)
		return buf, nil
	}
	c.misses.Add(1)
	buf, err := c.Store.Read(off, n)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, buf)
	logger.Trace("cache", "miss %d bytes %s", n, off)
	return buf, nil
}

func (c *CachedStore) Stats() (hits uint64, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *CachedStore) Close() error {
	c.cache.Purge()
	return c.Store.Close()
}
